package input

import (
	"strings"
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		bytes string
		check func(Input) bool
	}{
		{"wasd up", "w", func(in Input) bool { return in.Up && in.NavUp }},
		{"arrow left", "\x1b[D", func(in Input) bool { return in.Left && in.NavLeft && !in.Cancel }},
		{"ss3 arrow", "\x1bOB", func(in Input) bool { return in.Down && !in.Cancel }},
		{"lone escape", "\x1b", func(in Input) bool { return in.Cancel }},
		{"enter", "\r", func(in Input) bool { return in.Confirm }},
		{"space", " ", func(in Input) bool { return in.Confirm }},
		{"pause", "p", func(in Input) bool { return in.Pause }},
		{"ctrl-c", "\x03", func(in Input) bool { return in.Quit }},
		{"diagonal", "wd", func(in Input) bool { return in.Up && in.Right && !in.Down }},
		{"unknown sequence", "\x1b[Z", func(in Input) bool { return !in.Cancel && !in.Up }},
	}
	for _, tt := range tests {
		s := &Stream{}
		in := s.parse([]byte(tt.bytes), time.Now())
		if !tt.check(in) {
			t.Errorf("%s: unexpected input %+v", tt.name, in)
		}
	}
}

func TestHeldDirectionExpires(t *testing.T) {
	s := &Stream{}
	now := time.Now()
	s.parse([]byte("a"), now)

	if in := s.parse(nil, now.Add(keyHoldDuration/2)); !in.Left || in.NavLeft {
		t.Fatalf("within hold: %+v", in)
	}
	if in := s.parse(nil, now.Add(keyHoldDuration)); in.Left {
		t.Fatal("direction still held after the hold duration")
	}

	s.parse([]byte("a"), now)
	ResetKeyInput(s)
	if in := s.parse(nil, now); in.Left {
		t.Fatal("reset must forget held directions")
	}
}

func TestStreamCloseQuits(t *testing.T) {
	s := StartStream(strings.NewReader("x"))
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if in := ReadInput(s); in.Quit {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("closed stream never reported Quit")
}
