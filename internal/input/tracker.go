package input

import "time"

// keyHoldDuration is how long a key is considered "held" after its last press.
// Terminals only report presses (and auto-repeats), never releases.
const keyHoldDuration = 120 * time.Millisecond

// Debounce windows for repeating actions.
const (
	FireDebounce  = 160 * time.Millisecond
	PauseDebounce = 250 * time.Millisecond
)

// Intents is the decoded input for one frame.
type Intents struct {
	TurnLeft   bool
	TurnRight  bool
	Thrust     bool
	Fire       bool
	Hyperspace bool
	Pause      bool

	Confirm bool // enter or space
	Cancel  bool // escape
	Quit    bool // ctrl+c

	Up, Down, Left, Right bool
	Tab                   bool

	// Keys holds every key pressed this frame, in order (used for rebinding).
	Keys []Key
}

// Tracker turns raw key presses into intents, keeping hold state between
// frames and debouncing fire and pause.
type Tracker struct {
	lastSeen  map[Key]time.Time
	lastFire  time.Time
	lastPause time.Time
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{lastSeen: make(map[Key]time.Time)}
}

// Reset forgets held keys, e.g. after a screen change so a held key does not
// leak into the next state.
func (t *Tracker) Reset() {
	clear(t.lastSeen)
}

// Frame records keys pressed at now and returns this frame's intents.
func (t *Tracker) Frame(keys []Key, now time.Time, b Bindings) Intents {
	pressed := make(map[Key]bool, len(keys))
	for _, k := range keys {
		pressed[k] = true
		t.lastSeen[k] = now
	}
	held := func(k Key) bool {
		seen, ok := t.lastSeen[k]
		return ok && now.Sub(seen) < keyHoldDuration
	}

	in := Intents{
		TurnLeft:  held(KeyLeft) || held(b[ActionTurnLeft]),
		TurnRight: held(KeyRight) || held(b[ActionTurnRight]),
		Thrust:    held(KeyUp) || held(b[ActionThrust]),

		Confirm: pressed[KeyEnter] || pressed[KeySpace],
		Cancel:  pressed[KeyEscape],
		Quit:    pressed[KeyCtrlC],

		Up:    pressed[KeyUp],
		Down:  pressed[KeyDown],
		Left:  pressed[KeyLeft],
		Right: pressed[KeyRight],
		Tab:   pressed[KeyTab],

		Hyperspace: pressed[b[ActionHyperspace]],
		Keys:       keys,
	}

	if held(b[ActionFire]) && now.Sub(t.lastFire) >= FireDebounce {
		in.Fire = true
		t.lastFire = now
	}
	if pressed[b[ActionPause]] && now.Sub(t.lastPause) >= PauseDebounce {
		in.Pause = true
		t.lastPause = now
	}
	return in
}
