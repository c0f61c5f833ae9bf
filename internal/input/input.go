// Package input turns a raw terminal byte stream into held directions and
// one-shot commands.
package input

import (
	"bufio"
	"io"
	"time"
)

// keyHoldDuration is how long a direction is considered "held" after its last
// press. Terminals send no key-up events, only auto-repeat.
const keyHoldDuration = 90 * time.Millisecond

// Input represents the current frame's input state.
type Input struct {
	// Held directions, for steering.
	Up, Down, Left, Right bool

	// Pressed this frame, for menus.
	NavUp, NavDown, NavLeft, NavRight bool
	Confirm                           bool // Space or Enter
	Cancel                            bool // Lone Escape
	Pause                             bool // P
	Quit                              bool // Q or Ctrl-C, or the stream closed

	Pressed []byte // Raw bytes read this frame
}

// Any reports whether any byte arrived this frame.
func (in Input) Any() bool {
	return len(in.Pressed) > 0
}

// keyState tracks the last time each direction was pressed.
type keyState struct {
	up    time.Time
	down  time.Time
	left  time.Time
	right time.Time
}

// Stream delivers input bytes via a channel and tracks key state for combinations.
type Stream struct {
	ch     chan byte
	state  keyState
	closed bool
	buf    []byte
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
// The goroutine exits when r returns an error.
func StartStream(r io.Reader) *Stream {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	s := &Stream{ch: make(chan byte, 128)}
	go func() {
		for {
			b, err := br.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// ReadInput drains all available bytes from the stream (non-blocking).
func ReadInput(s *Stream) Input {
	s.buf = s.buf[:0]
drain:
	for !s.closed {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			s.buf = append(s.buf, b)
		default:
			break drain
		}
	}

	in := s.parse(s.buf, time.Now())
	if s.closed {
		in.Quit = true
	}
	return in
}

// ResetKeyInput forgets held directions, e.g. when switching screens.
func ResetKeyInput(s *Stream) {
	s.state = keyState{}
}

// parse applies buf to the key state and builds the frame's input.
func (s *Stream) parse(buf []byte, now time.Time) Input {
	in := Input{Pressed: buf}

	for i := 0; i < len(buf); i++ {
		b := buf[i]

		if b == '\x1b' {
			// CSI or SS3 arrow: ESC [ A or ESC O A
			if i+2 < len(buf) && (buf[i+1] == '[' || buf[i+1] == 'O') {
				if s.applyArrow(&in, buf[i+2], now) {
					i += 2
					continue
				}
			}
			if i+1 < len(buf) && (buf[i+1] == '[' || buf[i+1] == 'O') {
				// Unknown or truncated sequence: swallow the introducer.
				i++
				continue
			}
			in.Cancel = true
			continue
		}

		s.applyByte(&in, b, now)
	}

	in.Up = in.Up || now.Sub(s.state.up) < keyHoldDuration
	in.Down = in.Down || now.Sub(s.state.down) < keyHoldDuration
	in.Left = in.Left || now.Sub(s.state.left) < keyHoldDuration
	in.Right = in.Right || now.Sub(s.state.right) < keyHoldDuration
	return in
}

// applyArrow handles the final byte of an arrow-key escape sequence.
func (s *Stream) applyArrow(in *Input, code byte, now time.Time) bool {
	switch code {
	case 'A':
		s.state.up = now
		in.NavUp = true
	case 'B':
		s.state.down = now
		in.NavDown = true
	case 'C':
		s.state.right = now
		in.NavRight = true
	case 'D':
		s.state.left = now
		in.NavLeft = true
	default:
		return false
	}
	return true
}

// applyByte updates the key state for a single plain byte.
func (s *Stream) applyByte(in *Input, b byte, now time.Time) {
	switch b {
	case 'q', 'Q', '\x03':
		in.Quit = true
	case 'w', 'W', 'k', 'K':
		s.state.up = now
		in.NavUp = true
	case 's', 'S', 'j', 'J':
		s.state.down = now
		in.NavDown = true
	case 'a', 'A', 'h', 'H':
		s.state.left = now
		in.NavLeft = true
	case 'd', 'D', 'l', 'L':
		s.state.right = now
		in.NavRight = true
	case ' ', '\n', '\r':
		in.Confirm = true
	case 'p', 'P':
		in.Pause = true
	}
}
