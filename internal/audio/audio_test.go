package audio

import (
	"bytes"
	"testing"
	"time"
)

func TestBell(t *testing.T) {
	tests := []struct {
		event Event
		rings bool
	}{
		{Cursor, false},
		{Confirm, false},
		{Graze, false},
		{Dodge, false},
		{BossHit, true},
		{Death, true},
		{Win, true},
	}
	for _, tt := range tests {
		var buf bytes.Buffer
		b := NewBell(&buf)
		b.Play(tt.event)
		if got := buf.String() == "\a"; got != tt.rings {
			t.Errorf("event %d: rang=%v, want %v", tt.event, got, tt.rings)
		}
	}
}

func TestBellMuted(t *testing.T) {
	var buf bytes.Buffer
	b := NewBell(&buf)
	b.Configure(Settings{Enabled: false, Master: 1, SFX: 1})
	b.Play(Death)
	b.Configure(Settings{Enabled: true, Master: 0, SFX: 1})
	b.Play(Death)
	if buf.Len() != 0 {
		t.Fatalf("muted bell wrote %q", buf.String())
	}
}

func TestToneLength(t *testing.T) {
	for e, c := range cues {
		if c.duration <= 0 {
			t.Errorf("event %d has no cue", e)
			continue
		}
		tn := newTone(sampleRate, c)
		want := sampleRate.N(c.duration)
		buf := make([][2]float64, 512)
		total := 0
		for {
			n, ok := tn.Stream(buf)
			for i := range n {
				if v := buf[i][0]; v < -1 || v > 1 {
					t.Fatalf("event %d: sample %v out of range", e, v)
				}
			}
			total += n
			if !ok {
				break
			}
		}
		if total != want {
			t.Errorf("event %d: streamed %d samples, want %d", e, total, want)
		}
	}
}

func TestToneFadesOut(t *testing.T) {
	tn := newTone(sampleRate, cue{from: 440, to: 440, duration: 10 * time.Millisecond})
	buf := make([][2]float64, sampleRate.N(10*time.Millisecond))
	n, _ := tn.Stream(buf)
	peakHead, peakTail := 0.0, 0.0
	for i := range n {
		v := buf[i][0]
		if v < 0 {
			v = -v
		}
		if i < n/4 {
			peakHead = max(peakHead, v)
		} else if i > 3*n/4 {
			peakTail = max(peakTail, v)
		}
	}
	if peakTail >= peakHead {
		t.Fatalf("tail peak %v not below head peak %v", peakTail, peakHead)
	}
}

func TestNopSink(t *testing.T) {
	var s Sink = Nop{}
	s.Configure(Settings{Enabled: true})
	s.Play(Win)
}
