// Package input turns a raw terminal byte stream into per-frame key state.
package input

import (
	"bufio"
	"time"
)

// keyHoldDuration is how long a key counts as held after its last press.
// Terminals only report key repeats, never releases.
const keyHoldDuration = 30 * time.Millisecond

// Input is the key state for one frame.
type Input struct {
	Quit  bool
	Left  bool
	Right bool
	Up    bool
	Down  bool
	Space bool
	// Number is the digit pressed this frame, or -1.
	Number int
	// Active is set when any byte arrived this frame.
	Active bool
}

type keyState struct {
	quit      time.Time
	left      time.Time
	right     time.Time
	up        time.Time
	down      time.Time
	space     time.Time
	number    time.Time
	numberVal int
	closed    bool
}

// Stream delivers bytes read from a terminal and remembers recent key
// presses.
type Stream struct {
	ch    chan byte
	state keyState
}

// StartStream spawns a goroutine that feeds bytes from r into a new Stream.
// The stream reports Quit once r is exhausted.
func StartStream(r *bufio.Reader) *Stream {
	s := newStream()
	go func() {
		defer close(s.ch)
		for {
			b, err := r.ReadByte()
			if err != nil {
				return
			}
			s.ch <- b
		}
	}()
	return s
}

func newStream() *Stream {
	return &Stream{
		ch:    make(chan byte, 128),
		state: keyState{numberVal: -1},
	}
}

// ReadInput drains the bytes available on s without blocking and returns the
// resulting key state.
func ReadInput(s *Stream) Input {
	var buf []byte
drain:
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.state.closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}
	return s.apply(buf, time.Now())
}

// apply records the presses in buf at time now and builds the frame input.
func (s *Stream) apply(buf []byte, now time.Time) Input {
	for i := 0; i < len(buf); i++ {
		b := buf[i]
		// CSI arrow keys: ESC [ A..D
		if b == '\x1b' && i+2 < len(buf) && buf[i+1] == '[' {
			if field := s.state.arrow(buf[i+2]); field != nil {
				*field = now
				i += 2
				continue
			}
		}
		s.state.press(b, now)
	}

	held := func(t time.Time) bool { return now.Sub(t) < keyHoldDuration }
	in := Input{
		Quit:   s.state.closed || held(s.state.quit),
		Left:   held(s.state.left),
		Right:  held(s.state.right),
		Up:     held(s.state.up),
		Down:   held(s.state.down),
		Space:  held(s.state.space),
		Number: -1,
		Active: len(buf) > 0,
	}
	if held(s.state.number) {
		in.Number = s.state.numberVal
	}
	return in
}

func (k *keyState) arrow(code byte) *time.Time {
	switch code {
	case 'A':
		return &k.up
	case 'B':
		return &k.down
	case 'C':
		return &k.right
	case 'D':
		return &k.left
	}
	return nil
}

func (k *keyState) press(b byte, now time.Time) {
	switch b {
	case 'q', 'Q', 0x03: // ctrl-c arrives as a byte in raw mode
		k.quit = now
	case 'a', 'A', 'h', 'H':
		k.left = now
	case 'd', 'D', 'l', 'L':
		k.right = now
	case 'w', 'W', 'k', 'K':
		k.up = now
	case 's', 'S', 'j', 'J':
		k.down = now
	case ' ':
		k.space = now
	case '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		k.number = now
		k.numberVal = int(b - '0')
	}
}
