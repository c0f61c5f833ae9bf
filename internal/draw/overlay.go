package draw

import (
	"bytes"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// maxChunkSize keeps each write under a typical 1500 byte MTU.
const maxChunkSize = 1400

// Overlay queues everything a frame sends to the terminal: canvas cells,
// then HUD and menu text drawn on top of them. Flush hands the whole frame to
// the connection in MTU-sized pieces.
//
// Text positions are 1-based and relative to the canvas area; the centering
// offset is applied on write.
type Overlay struct {
	out      io.Writer
	frame    bytes.Buffer
	num      [20]byte
	col, row int
}

// NewOverlay creates an overlay writing to w with the given canvas offset.
func NewOverlay(w io.Writer, offsetCol, offsetRow int) *Overlay {
	return &Overlay{out: w, col: offsetCol, row: offsetRow}
}

// SetOffset moves the canvas origin, e.g. after the terminal was resized.
func (o *Overlay) SetOffset(offsetCol, offsetRow int) {
	o.col, o.row = offsetCol, offsetRow
}

// Write queues raw bytes. Canvas.Render and the bell write through it so they
// land in the same flush as the text.
func (o *Overlay) Write(p []byte) (int, error) {
	return o.frame.Write(p)
}

// Clear queues a full terminal clear ahead of the rest of the frame.
func (o *Overlay) Clear() {
	o.frame.WriteString(clearSeq)
}

// Text writes s with its first cell at (col, row).
func (o *Overlay) Text(col, row int, s string) {
	o.frame.WriteString(termenv.CSI)
	o.frame.Write(strconv.AppendInt(o.num[:0], int64(row+o.row), 10))
	o.frame.WriteByte(';')
	o.frame.Write(strconv.AppendInt(o.num[:0], int64(col+o.col), 10))
	o.frame.WriteByte('H')
	o.frame.WriteString(s)
}

// Centered writes s centered on column center. Styled strings are measured
// by their printable width.
func (o *Overlay) Centered(center, row int, s string) {
	o.Text(max(center-lipgloss.Width(s)/2, 1), row, s)
}

// Right writes s so that its last cell sits on column end.
func (o *Overlay) Right(end, row int, s string) {
	o.Text(max(end-lipgloss.Width(s)+1, 1), row, s)
}

// Flush sends the queued frame and empties the queue.
func (o *Overlay) Flush() error {
	defer o.frame.Reset()
	for data := o.frame.Bytes(); len(data) > 0; {
		n := min(len(data), maxChunkSize)
		if _, err := o.out.Write(data[:n]); err != nil {
			return err
		}
		data = data[n:]
	}
	return nil
}
