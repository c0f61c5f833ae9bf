// Package audio plays fire-and-forget sound cues for game events.
package audio

import (
	"io"

	"github.com/tomz197/mrmissile/internal/draw"
)

// Event is a sound cue.
type Event uint8

const (
	Cursor Event = iota
	Confirm
	Graze
	Dodge
	BossHit
	Death
	Win
	eventCount
)

// Settings control volume. Volumes are in [0, 1].
type Settings struct {
	Enabled bool
	Master  float64
	Music   float64
	SFX     float64
}

// Sink receives sound cues. Play must not block.
type Sink interface {
	Play(e Event)
	Configure(s Settings)
}

// Nop discards every cue.
type Nop struct{}

func (Nop) Play(Event)          {}
func (Nop) Configure(Settings) {}

// Bell rings the terminal bell for the cues that matter, which is all a
// remote terminal can play.
type Bell struct {
	w       io.Writer
	enabled bool
}

// NewBell returns a bell sink writing to w.
func NewBell(w io.Writer) *Bell {
	return &Bell{w: w, enabled: true}
}

// Play rings for hits, deaths and wins.
func (b *Bell) Play(e Event) {
	if !b.enabled {
		return
	}
	switch e {
	case BossHit, Death, Win:
		draw.Bell(b.w)
	}
}

// Configure enables the bell when sound is on and audible.
func (b *Bell) Configure(s Settings) {
	b.enabled = s.Enabled && s.Master > 0 && s.SFX > 0
}
