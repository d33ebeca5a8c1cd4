package input

import (
	"strings"

	"github.com/gdamore/tcell/v2"
)

// TcellSource pumps tcell events into a channel and decodes key events.
type TcellSource struct {
	events  chan tcell.Event
	closed  bool
	resized bool
}

// NewTcellSource starts polling screen. The pump stops when the screen is
// finalised (PollEvent returns nil).
func NewTcellSource(screen tcell.Screen) *TcellSource {
	s := &TcellSource{events: make(chan tcell.Event, 100)}
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				close(s.events)
				return
			}
			s.events <- ev
		}
	}()
	return s
}

// Poll drains pending events.
func (s *TcellSource) Poll() ([]Key, bool) {
	if s.closed {
		return nil, false
	}
	var keys []Key
	for {
		select {
		case ev, ok := <-s.events:
			if !ok {
				s.closed = true
				return keys, len(keys) > 0
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if k, ok := TcellKey(ev); ok {
					keys = append(keys, k)
				}
			case *tcell.EventResize:
				s.resized = true
			}
		default:
			return keys, true
		}
	}
}

// Resized reports (and resets) whether a resize event arrived since the last call.
func (s *TcellSource) Resized() bool {
	r := s.resized
	s.resized = false
	return r
}

// TcellKey maps a tcell key event to a key name.
func TcellKey(ev *tcell.EventKey) (Key, bool) {
	switch ev.Key() {
	case tcell.KeyLeft:
		return KeyLeft, true
	case tcell.KeyRight:
		return KeyRight, true
	case tcell.KeyUp:
		return KeyUp, true
	case tcell.KeyDown:
		return KeyDown, true
	case tcell.KeyEnter:
		return KeyEnter, true
	case tcell.KeyEscape:
		return KeyEscape, true
	case tcell.KeyTab:
		return KeyTab, true
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return KeyBackspace, true
	case tcell.KeyCtrlC:
		return KeyCtrlC, true
	case tcell.KeyRune:
		r := ev.Rune()
		if r == ' ' {
			return KeySpace, true
		}
		return Key(strings.ToLower(string(r))), true
	}
	return "", false
}
