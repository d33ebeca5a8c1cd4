// Package input decodes terminal key presses into per-frame game intents.
package input

import (
	"bufio"
	"io"
	"strings"
	"time"
)

// Key is a normalised key name such as "left", "space" or "w".
type Key string

// Named keys. Printable keys use their lowercase character as the name.
const (
	KeyLeft      Key = "left"
	KeyRight     Key = "right"
	KeyUp        Key = "up"
	KeyDown      Key = "down"
	KeySpace     Key = "space"
	KeyEnter     Key = "enter"
	KeyEscape    Key = "escape"
	KeyTab       Key = "tab"
	KeyBackspace Key = "backspace"
	KeyCtrlC     Key = "ctrl+c"
)

// Source produces the keys pressed since the previous poll without blocking.
// ok is false once the source is closed (stdin EOF, SSH disconnect).
type Source interface {
	Poll() (keys []Key, ok bool)
}

// EscapeTimeout is how long a trailing ESC or ESC [ waits for the rest of an
// arrow sequence before it counts as a plain escape. Over SSH a sequence can
// arrive split across frames.
const EscapeTimeout = 50 * time.Millisecond

// Stream delivers input bytes from a reader via a channel.
type Stream struct {
	ch     chan byte
	closed bool

	pending   []byte // unfinished escape sequence held from an earlier poll
	pendingAt time.Time
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
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

// Poll drains all available bytes (non-blocking) and decodes them.
func (s *Stream) Poll() ([]Key, bool) {
	if s.closed {
		return nil, false
	}
	buf := s.pending
	s.pending = nil
	fresh := false
drain:
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			buf = append(buf, b)
			fresh = true
		default:
			break drain
		}
	}

	if !s.closed {
		now := time.Now()
		if n := partialEscape(buf); n > 0 && (fresh || now.Sub(s.pendingAt) < EscapeTimeout) {
			if fresh {
				s.pendingAt = now
			}
			s.pending = append([]byte(nil), buf[len(buf)-n:]...)
			buf = buf[:len(buf)-n]
		}
	}
	return ParseBytes(buf), !s.closed || len(buf) > 0
}

// partialEscape returns the length of an escape sequence cut off at the end
// of buf: 1 for a trailing ESC, 2 for ESC [ or ESC O, otherwise 0.
func partialEscape(buf []byte) int {
	n := len(buf)
	switch {
	case n >= 1 && buf[n-1] == '\x1b':
		return 1
	case n >= 2 && buf[n-2] == '\x1b' && (buf[n-1] == '[' || buf[n-1] == 'O'):
		return 2
	}
	return 0
}

// ParseBytes decodes raw terminal bytes into key names.
// CSI arrow sequences (ESC [ A..D) become arrow keys; a lone ESC is escape.
func ParseBytes(buf []byte) []Key {
	var keys []Key
	for i := 0; i < len(buf); i++ {
		b := buf[i]

		if b == '\x1b' && i+2 < len(buf) && (buf[i+1] == '[' || buf[i+1] == 'O') {
			switch buf[i+2] {
			case 'A':
				keys = append(keys, KeyUp)
				i += 2
				continue
			case 'B':
				keys = append(keys, KeyDown)
				i += 2
				continue
			case 'C':
				keys = append(keys, KeyRight)
				i += 2
				continue
			case 'D':
				keys = append(keys, KeyLeft)
				i += 2
				continue
			}
		}

		if k, ok := byteKey(b); ok {
			keys = append(keys, k)
		}
	}
	return keys
}

func byteKey(b byte) (Key, bool) {
	switch b {
	case 0x03:
		return KeyCtrlC, true
	case ' ':
		return KeySpace, true
	case '\r', '\n':
		return KeyEnter, true
	case '\t':
		return KeyTab, true
	case '\b', 0x7f:
		return KeyBackspace, true
	case '\x1b':
		return KeyEscape, true
	}
	if b > ' ' && b < 0x7f {
		return Key(strings.ToLower(string(rune(b)))), true
	}
	return "", false
}
