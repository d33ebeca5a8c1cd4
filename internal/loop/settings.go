package loop

import (
	"fmt"
	"math"
	"strings"

	"github.com/tomz197/asteroids-arcade/internal/input"
	"github.com/tomz197/asteroids-arcade/internal/loop/config"
	"github.com/tomz197/asteroids-arcade/internal/store"
)

type settingsTab int

const (
	tabAudio settingsTab = iota
	tabControls
)

func (t settingsTab) String() string {
	if t == tabControls {
		return "Controls"
	}
	return "Audio"
}

type settingsResult int

const (
	settingsOpen settingsResult = iota
	settingsSaved
	settingsCancelled
)

// Menu items shared by both tabs.
const (
	itemMaster = "master"
	itemMusic  = "music"
	itemSFX    = "sfx"
	itemSave   = "save"
	itemCancel = "cancel"
	itemReset  = "reset"
)

var audioItems = []string{itemMaster, itemMusic, itemSFX}

// settingsMenu edits a staged copy of the settings. Nothing takes effect
// until Save succeeds.
type settingsMenu struct {
	tab       settingsTab
	index     int
	staged    store.Settings
	rebinding input.Action
	message   string
}

func newSettingsMenu(current store.Settings) *settingsMenu {
	return &settingsMenu{staged: current.Clone()}
}

// items lists the selectable rows of the current tab.
func (m *settingsMenu) items() []string {
	var items []string
	if m.tab == tabAudio {
		items = append(items, audioItems...)
	} else {
		for _, a := range input.Actions {
			items = append(items, string(a))
		}
	}
	return append(items, itemSave, itemCancel, itemReset)
}

func (m *settingsMenu) selected() string {
	return m.items()[m.index]
}

// handle applies one frame of input.
func (m *settingsMenu) handle(in input.Intents) settingsResult {
	if m.rebinding != "" {
		if len(in.Keys) == 0 {
			return settingsOpen
		}
		key := in.Keys[0]
		if key == input.KeyEscape {
			m.message = "Rebind cancelled"
			m.rebinding = ""
			return settingsOpen
		}
		m.staged.Controls[string(m.rebinding)] = string(key)
		m.rebinding = ""
		if len(m.stagedBindings().Conflicts()) > 0 {
			m.message = "Conflict: duplicate key assignment"
		} else {
			m.message = "Bound successfully"
		}
		return settingsOpen
	}

	items := m.items()
	switch {
	case in.Tab:
		m.tab = 1 - m.tab
		m.index = 0
		m.message = ""
		return settingsOpen
	case in.Up:
		m.index = (m.index + len(items) - 1) % len(items)
		return settingsOpen
	case in.Down:
		m.index = (m.index + 1) % len(items)
		return settingsOpen
	case in.Cancel:
		return settingsCancelled
	}

	active := items[m.index]
	if m.tab == tabAudio && (in.Left || in.Right) {
		if level := m.volume(active); level != nil {
			step := config.VolumeStep
			if in.Left {
				step = -step
			}
			*level = math.Round(math.Max(0, math.Min(1, *level+step))*100) / 100
		}
		return settingsOpen
	}

	if !in.Confirm {
		return settingsOpen
	}
	switch active {
	case itemSave:
		if len(m.stagedBindings().Conflicts()) > 0 {
			m.message = "Cannot save: duplicate keybinds"
			return settingsOpen
		}
		return settingsSaved
	case itemCancel:
		return settingsCancelled
	case itemReset:
		m.staged = store.DefaultSettings()
		m.message = "Defaults restored (save to apply)"
	default:
		if m.tab == tabControls {
			m.rebinding = input.Action(active)
			m.message = fmt.Sprintf("Press new key for %s...", m.rebinding.Label())
		}
	}
	return settingsOpen
}

// volume returns a pointer to the staged level for an audio item.
func (m *settingsMenu) volume(item string) *float64 {
	switch item {
	case itemMaster:
		return &m.staged.Audio.Master
	case itemMusic:
		return &m.staged.Audio.Music
	case itemSFX:
		return &m.staged.Audio.SFX
	default:
		return nil
	}
}

func (m *settingsMenu) stagedBindings() input.Bindings {
	return m.staged.Bindings()
}

// lines renders the rows of the current tab.
func (m *settingsMenu) lines() []string {
	items := m.items()
	out := make([]string, len(items))
	for i, item := range items {
		cursor := "  "
		if i == m.index {
			cursor = "> "
		}
		var text string
		switch {
		case m.volume(item) != nil:
			text = fmt.Sprintf("%-12s %3d%%   (</>)", titleCase(item), int(math.Round(*m.volume(item)*100)))
		case m.tab == tabControls && i < len(input.Actions):
			a := input.Action(item)
			key := m.staged.Controls[item]
			if a == m.rebinding {
				key = "..."
			}
			text = fmt.Sprintf("%-12s %10s   (Enter to rebind)", a.Label(), key)
		default:
			text = strings.ToUpper(item)
		}
		out[i] = cursor + text
	}
	return out
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	if s == itemSFX {
		return "SFX"
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// updateSettings drives the settings overlay and returns to the state it
// was opened from.
func (g *Game) updateSettings(in input.Intents) {
	switch g.settings.handle(in) {
	case settingsSaved:
		g.applySettings(g.settings.staged)
		if err := g.store.SaveSettings(g.current); err != nil {
			g.logger.Debug("save settings", "err", err)
		}
		g.transition(g.settingsReturn)
	case settingsCancelled:
		g.transition(g.settingsReturn)
	}
}
