package session

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// styles are the text styles for menus and the HUD, bound to the session's
// writer so colours match what its terminal can show.
type styles struct {
	title    lipgloss.Style
	selected lipgloss.Style
	normal   lipgloss.Style
	dim      lipgloss.Style
	locked   lipgloss.Style
	defeated lipgloss.Style
	warn     lipgloss.Style
	money    lipgloss.Style
	open     lipgloss.Style
	notice   lipgloss.Style
}

func newStyles(w io.Writer, profile termenv.Profile) styles {
	r := lipgloss.NewRenderer(w)
	r.SetColorProfile(profile)

	return styles{
		title:    r.NewStyle().Foreground(lipgloss.Color("204")).Bold(true),
		selected: r.NewStyle().Foreground(lipgloss.Color("236")).Background(lipgloss.Color("110")).Bold(true),
		normal:   r.NewStyle().Foreground(lipgloss.Color("255")),
		dim:      r.NewStyle().Foreground(lipgloss.Color("245")),
		locked:   r.NewStyle().Foreground(lipgloss.Color("240")),
		defeated: r.NewStyle().Foreground(lipgloss.Color("150")),
		warn:     r.NewStyle().Foreground(lipgloss.Color("167")).Bold(true),
		money:    r.NewStyle().Foreground(lipgloss.Color("222")),
		open:     r.NewStyle().Foreground(lipgloss.Color("150")).Bold(true),
		notice:   r.NewStyle().Foreground(lipgloss.Color("222")).Italic(true),
	}
}

// item renders a menu entry, highlighted when selected.
func (st styles) item(label string, selected bool) string {
	if selected {
		return st.selected.Render("> " + label + " <")
	}
	return st.normal.Render("  " + label + "  ")
}
