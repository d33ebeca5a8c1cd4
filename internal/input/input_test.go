package input

import (
	"io"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
)

func TestParseBytes(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []Key
	}{
		{"arrows", "\x1b[A\x1b[B\x1b[C\x1b[D", []Key{KeyUp, KeyDown, KeyRight, KeyLeft}},
		{"application arrows", "\x1bOA", []Key{KeyUp}},
		{"lone escape", "\x1b", []Key{KeyEscape}},
		{"letters lowercased", "Wa", []Key{"w", "a"}},
		{"controls", " \r\t\x7f\x03", []Key{KeySpace, KeyEnter, KeyTab, KeyBackspace, KeyCtrlC}},
		{"unprintable ignored", "\x01", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseBytes([]byte(tt.in))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseBytes(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestStreamClosesOnEOF(t *testing.T) {
	s := StartStream(strings.NewReader("q"))
	var keys []Key
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		k, ok := s.Poll()
		keys = append(keys, k...)
		if !ok {
			break
		}
		time.Sleep(time.Millisecond)
	}
	if !reflect.DeepEqual(keys, []Key{"q"}) {
		t.Errorf("keys = %v, want [q]", keys)
	}
	if _, ok := s.Poll(); ok {
		t.Error("Poll after EOF must report closed")
	}
}

func TestStreamPollNonBlocking(t *testing.T) {
	r, w := io.Pipe()
	defer w.Close()
	s := StartStream(r)
	done := make(chan struct{})
	go func() {
		s.Poll()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Poll blocked with no input")
	}
}

// feed returns a stream whose bytes are pushed by the test.
func feed() *Stream {
	return &Stream{ch: make(chan byte, 16)}
}

func TestStreamJoinsSplitArrowSequence(t *testing.T) {
	s := feed()
	for _, part := range []string{"\x1b", "[", "D"} {
		for i := 0; i < len(part); i++ {
			s.ch <- part[i]
		}
		keys, ok := s.Poll()
		if !ok {
			t.Fatal("stream closed")
		}
		if part != "D" && len(keys) != 0 {
			t.Fatalf("after %q keys = %v, want none yet", part, keys)
		}
		if part == "D" && !reflect.DeepEqual(keys, []Key{KeyLeft}) {
			t.Fatalf("keys = %v, want [left]", keys)
		}
	}
}

func TestStreamLoneEscapeAfterTimeout(t *testing.T) {
	s := feed()
	s.ch <- 'w'
	s.ch <- '\x1b'
	if keys, _ := s.Poll(); !reflect.DeepEqual(keys, []Key{"w"}) {
		t.Fatalf("keys = %v, want [w] with escape held", keys)
	}
	if keys, _ := s.Poll(); len(keys) != 0 {
		t.Fatalf("escape released early: %v", keys)
	}
	time.Sleep(EscapeTimeout + 10*time.Millisecond)
	if keys, _ := s.Poll(); !reflect.DeepEqual(keys, []Key{KeyEscape}) {
		t.Fatalf("keys = %v, want [escape]", keys)
	}
}

func TestStreamFlushesHeldEscapeOnClose(t *testing.T) {
	s := feed()
	s.ch <- '\x1b'
	s.Poll()
	close(s.ch)
	keys, ok := s.Poll()
	if !reflect.DeepEqual(keys, []Key{KeyEscape}) || !ok {
		t.Fatalf("keys = %v ok = %v, want [escape] true", keys, ok)
	}
	if _, ok := s.Poll(); ok {
		t.Error("Poll after close must report closed")
	}
}

func TestTrackerHoldAndDebounce(t *testing.T) {
	tr := NewTracker()
	b := DefaultBindings()
	t0 := time.Unix(1000, 0)

	in := tr.Frame([]Key{"w", KeySpace}, t0, b)
	if !in.Thrust || !in.Fire {
		t.Fatalf("first frame: thrust=%v fire=%v", in.Thrust, in.Fire)
	}
	if !in.Confirm {
		t.Error("space should also confirm")
	}

	// Still held shortly after; fire debounced.
	in = tr.Frame(nil, t0.Add(50*time.Millisecond), b)
	if !in.Thrust {
		t.Error("thrust released within hold window")
	}
	if in.Fire {
		t.Error("fire repeated inside debounce window")
	}

	// Auto-repeat keeps fire held; after the debounce it fires again.
	in = tr.Frame([]Key{KeySpace}, t0.Add(170*time.Millisecond), b)
	if !in.Fire {
		t.Error("fire not repeated after debounce")
	}

	in = tr.Frame(nil, t0.Add(time.Second), b)
	if in.Thrust || in.Fire {
		t.Error("keys still held after hold window")
	}
}

func TestTrackerArrowsAlwaysSteer(t *testing.T) {
	tr := NewTracker()
	b := DefaultBindings()
	b[ActionTurnLeft] = "j"
	in := tr.Frame([]Key{KeyLeft, KeyUp}, time.Unix(0, 0), b)
	if !in.TurnLeft || !in.Thrust {
		t.Errorf("arrows ignored after rebinding: %+v", in)
	}
	if !in.Left || !in.Up {
		t.Error("arrow menu intents missing")
	}
}

func TestTrackerPauseDebounce(t *testing.T) {
	tr := NewTracker()
	b := DefaultBindings()
	t0 := time.Unix(50, 0)
	if !tr.Frame([]Key{"p"}, t0, b).Pause {
		t.Fatal("pause not reported")
	}
	if tr.Frame([]Key{"p"}, t0.Add(100*time.Millisecond), b).Pause {
		t.Error("pause repeated inside debounce window")
	}
	if !tr.Frame([]Key{"p"}, t0.Add(300*time.Millisecond), b).Pause {
		t.Error("pause not accepted after debounce window")
	}
}

func TestTrackerReset(t *testing.T) {
	tr := NewTracker()
	b := DefaultBindings()
	t0 := time.Unix(0, 0)
	tr.Frame([]Key{"w"}, t0, b)
	tr.Reset()
	if tr.Frame(nil, t0.Add(10*time.Millisecond), b).Thrust {
		t.Error("thrust survived Reset")
	}
}

func TestBindings(t *testing.T) {
	b := BindingsFromNames(map[string]string{"fire": "f", "bogus": "x", "pause": ""})
	if b[ActionFire] != "f" {
		t.Errorf("fire = %q, want f", b[ActionFire])
	}
	if b[ActionPause] != "p" {
		t.Errorf("empty pause binding should keep default, got %q", b[ActionPause])
	}
	if _, ok := b["bogus"]; ok {
		t.Error("unknown action accepted")
	}
	if c := b.Conflicts(); len(c) != 0 {
		t.Errorf("unexpected conflicts %v", c)
	}

	dup := b.Clone()
	dup[ActionThrust] = "f"
	if got := dup.Conflicts(); !reflect.DeepEqual(got, []Key{"f"}) {
		t.Errorf("Conflicts = %v, want [f]", got)
	}
	if b[ActionThrust] != "w" {
		t.Error("Clone shares storage with original")
	}

	names := DefaultBindings().Names()
	if names["fire"] != "space" || names["hyperspace"] != "h" {
		t.Errorf("Names = %v", names)
	}
}

func TestTcellKey(t *testing.T) {
	tests := []struct {
		ev   *tcell.EventKey
		want Key
	}{
		{tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), KeyLeft},
		{tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), KeyEnter},
		{tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl), KeyCtrlC},
		{tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone), KeySpace},
		{tcell.NewEventKey(tcell.KeyRune, 'W', tcell.ModNone), "w"},
	}
	for _, tt := range tests {
		got, ok := TcellKey(tt.ev)
		if !ok || got != tt.want {
			t.Errorf("TcellKey(%v) = %q,%v want %q", tt.ev.Name(), got, ok, tt.want)
		}
	}
}
