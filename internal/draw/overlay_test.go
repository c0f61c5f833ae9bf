package draw

import (
	"bytes"
	"strings"
	"testing"
)

type chunkRecorder struct {
	sizes []int
	buf   bytes.Buffer
}

func (c *chunkRecorder) Write(p []byte) (int, error) {
	c.sizes = append(c.sizes, len(p))
	return c.buf.Write(p)
}

func TestOverlayPositions(t *testing.T) {
	tests := []struct {
		name string
		draw func(o *Overlay)
		want string
	}{
		{"text", func(o *Overlay) { o.Text(3, 4, "hi") }, "\033[5;5Hhi"},
		{"right", func(o *Overlay) { o.Right(10, 1, "abc") }, "\033[2;10Habc"},
		{"centered", func(o *Overlay) { o.Centered(10, 1, "abcd") }, "\033[2;10Habcd"},
		{"centered styled", func(o *Overlay) { o.Centered(10, 1, "\033[1mab\033[0m") }, "\033[2;11H\033[1mab\033[0m"},
		{"clamped", func(o *Overlay) { o.Centered(1, 1, "abcdef") }, "\033[2;3Habcdef"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			o := NewOverlay(&out, 2, 1)
			tt.draw(o)
			if err := o.Flush(); err != nil {
				t.Fatal(err)
			}
			if got := out.String(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestOverlayFlushChunks(t *testing.T) {
	rec := &chunkRecorder{}
	o := NewOverlay(rec, 0, 0)
	o.Write([]byte(strings.Repeat("x", 2*maxChunkSize+200)))

	if err := o.Flush(); err != nil {
		t.Fatal(err)
	}
	want := []int{maxChunkSize, maxChunkSize, 200}
	if len(rec.sizes) != len(want) {
		t.Fatalf("chunks %v, want %v", rec.sizes, want)
	}
	for i := range want {
		if rec.sizes[i] != want[i] {
			t.Errorf("chunk %d = %d bytes, want %d", i, rec.sizes[i], want[i])
		}
	}

	if err := o.Flush(); err != nil {
		t.Fatal(err)
	}
	if len(rec.sizes) != len(want) {
		t.Errorf("second flush wrote %d extra chunks", len(rec.sizes)-len(want))
	}
}

func TestCanvasRendersOnlyChanges(t *testing.T) {
	c := NewCanvas(4, 2)
	var out bytes.Buffer

	c.Render(&out)
	if out.Len() == 0 {
		t.Fatal("first render wrote nothing")
	}

	out.Reset()
	c.Render(&out)
	if out.Len() != 0 {
		t.Fatalf("unchanged render wrote %q", out.String())
	}

	c.SetFloat(2, 0, Red)
	c.Render(&out)
	if got := out.String(); !strings.Contains(got, "\033[1;3H") || !strings.ContainsRune(got, BlockUpperHalf) {
		t.Errorf("render after SetFloat = %q", got)
	}

	out.Reset()
	c.MarkTextDirty(1, 2, 2)
	c.Render(&out)
	if got := out.String(); !strings.Contains(got, "\033[2;1H") {
		t.Errorf("stale cells not redrawn: %q", got)
	}
}
