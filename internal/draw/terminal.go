package draw

import (
	"fmt"
	"io"
	"os"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// TermSizeFunc reports the terminal dimensions in columns and rows.
type TermSizeFunc func() (width, height int, err error)

// DefaultTermSizeFunc reads the size of the local terminal on stdout.
var DefaultTermSizeFunc TermSizeFunc = func() (int, int, error) {
	return term.GetSize(int(os.Stdout.Fd()))
}

// TerminalSizeRawWith returns the unclamped terminal size reported by sizeFunc.
func TerminalSizeRawWith(sizeFunc TermSizeFunc) (width, height int, err error) {
	return sizeFunc()
}

var (
	clearSeq      = termenv.CSI + fmt.Sprintf(termenv.EraseDisplaySeq, 2) + termenv.CSI + fmt.Sprintf(termenv.CursorPositionSeq, 1, 1)
	hideCursorSeq = termenv.CSI + termenv.HideCursorSeq
	showCursorSeq = termenv.CSI + termenv.ShowCursorSeq
)

// ClearScreen erases the terminal and homes the cursor.
func ClearScreen(w io.Writer) {
	io.WriteString(w, clearSeq)
}

// HideCursor hides the terminal cursor while a session is drawing.
func HideCursor(w io.Writer) {
	io.WriteString(w, hideCursorSeq)
}

// ShowCursor restores the terminal cursor.
func ShowCursor(w io.Writer) {
	io.WriteString(w, showCursorSeq)
}

// Bell rings the terminal bell.
func Bell(w io.Writer) {
	io.WriteString(w, "\a")
}
