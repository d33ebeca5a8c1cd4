package input

import "sort"

// Action is a rebindable gameplay control.
type Action string

const (
	ActionThrust     Action = "thrust"
	ActionTurnLeft   Action = "turn_left"
	ActionTurnRight  Action = "turn_right"
	ActionFire       Action = "fire"
	ActionPause      Action = "pause"
	ActionHyperspace Action = "hyperspace"
)

// Actions lists the rebindable actions in menu order.
var Actions = []Action{
	ActionThrust,
	ActionTurnLeft,
	ActionTurnRight,
	ActionFire,
	ActionPause,
	ActionHyperspace,
}

// Label returns the human readable name shown in menus.
func (a Action) Label() string {
	switch a {
	case ActionThrust:
		return "Thrust"
	case ActionTurnLeft:
		return "Turn Left"
	case ActionTurnRight:
		return "Turn Right"
	case ActionFire:
		return "Fire"
	case ActionPause:
		return "Pause"
	case ActionHyperspace:
		return "Hyperspace"
	default:
		return string(a)
	}
}

// Bindings maps each action to one key.
type Bindings map[Action]Key

// DefaultBindings returns the stock control scheme.
func DefaultBindings() Bindings {
	return Bindings{
		ActionThrust:     "w",
		ActionTurnLeft:   "a",
		ActionTurnRight:  "d",
		ActionFire:       KeySpace,
		ActionPause:      "p",
		ActionHyperspace: "h",
	}
}

// BindingsFromNames builds bindings from persisted action→key names.
// Unknown actions and empty keys are ignored; missing actions keep their default.
func BindingsFromNames(names map[string]string) Bindings {
	b := DefaultBindings()
	for _, a := range Actions {
		if k, ok := names[string(a)]; ok && k != "" {
			b[a] = Key(k)
		}
	}
	return b
}

// Names converts bindings to the persisted action→key form.
func (b Bindings) Names() map[string]string {
	out := make(map[string]string, len(b))
	for a, k := range b {
		out[string(a)] = string(k)
	}
	return out
}

// Clone returns an independent copy.
func (b Bindings) Clone() Bindings {
	out := make(Bindings, len(b))
	for a, k := range b {
		out[a] = k
	}
	return out
}

// Conflicts returns the keys bound to more than one action, sorted.
func (b Bindings) Conflicts() []Key {
	seen := make(map[Key]int, len(b))
	for _, k := range b {
		seen[k]++
	}
	var dups []Key
	for k, n := range seen {
		if n > 1 {
			dups = append(dups, k)
		}
	}
	sort.Slice(dups, func(i, j int) bool { return dups[i] < dups[j] })
	return dups
}
