package loop

import (
	"testing"

	"github.com/tomz197/asteroids-arcade/internal/input"
	"github.com/tomz197/asteroids-arcade/internal/store"
)

// settingsGame opens the settings overlay from the title screen.
func settingsGame(t *testing.T) (*Game, *fakeAudio, *memStore) {
	t.Helper()
	g, a, st := newTestGame()
	g.Update(0, keys("s"))
	if g.State != StateSettings {
		t.Fatalf("state = %v, want settings", g.State)
	}
	return g, a, st
}

func press(g *Game, in input.Intents, times int) {
	for i := 0; i < times; i++ {
		g.Update(0, in)
	}
}

func TestSettingsVolumeSave(t *testing.T) {
	g, a, st := settingsGame(t)

	g.Update(0, input.Intents{Left: true}) // master 0.80 -> 0.75
	press(g, input.Intents{Down: true}, 3)
	if got := g.settings.selected(); got != itemSave {
		t.Fatalf("selected %q, want save", got)
	}
	g.Update(0, input.Intents{Confirm: true})

	if g.State != StateTitle {
		t.Fatalf("state = %v, want title", g.State)
	}
	if st.settingSaves != 1 || st.settings.Audio.Master != 0.75 {
		t.Errorf("saved master = %v (saves %d)", st.settings.Audio.Master, st.settingSaves)
	}
	if a.volumes.Master != 0.75 {
		t.Errorf("player master = %v", a.volumes.Master)
	}
}

func TestSettingsVolumeClamped(t *testing.T) {
	g, _, _ := settingsGame(t)
	press(g, input.Intents{Right: true}, 10)
	if got := g.settings.staged.Audio.Master; got != 1 {
		t.Errorf("master = %v, want 1", got)
	}
	press(g, input.Intents{Left: true}, 30)
	if got := g.settings.staged.Audio.Master; got != 0 {
		t.Errorf("master = %v, want 0", got)
	}
}

func TestSettingsRebind(t *testing.T) {
	g, _, st := settingsGame(t)
	g.Update(0, input.Intents{Tab: true})
	press(g, input.Intents{Down: true}, 3) // fire
	if got := g.settings.selected(); got != string(input.ActionFire) {
		t.Fatalf("selected %q", got)
	}
	g.Update(0, input.Intents{Confirm: true})
	if g.settings.rebinding != input.ActionFire {
		t.Fatal("rebinding did not start")
	}
	g.Update(0, keys("f"))
	if g.settings.message != "Bound successfully" {
		t.Errorf("message = %q", g.settings.message)
	}

	press(g, input.Intents{Down: true}, 3) // save
	g.Update(0, input.Intents{Confirm: true})
	if g.State != StateTitle {
		t.Fatalf("state = %v", g.State)
	}
	if g.Bindings()[input.ActionFire] != "f" {
		t.Errorf("fire bound to %q", g.Bindings()[input.ActionFire])
	}
	if st.settings.Controls["fire"] != "f" {
		t.Errorf("stored fire = %q", st.settings.Controls["fire"])
	}
}

func TestSettingsRejectsConflicts(t *testing.T) {
	g, _, st := settingsGame(t)
	g.Update(0, input.Intents{Tab: true})
	g.Update(0, input.Intents{Confirm: true}) // rebind thrust
	g.Update(0, keys("a"))                    // same as turn left
	if g.settings.message != "Conflict: duplicate key assignment" {
		t.Errorf("message = %q", g.settings.message)
	}

	press(g, input.Intents{Down: true}, len(input.Actions))
	g.Update(0, input.Intents{Confirm: true})
	if g.State != StateSettings {
		t.Fatal("settings with duplicate keys were saved")
	}
	if g.settings.message != "Cannot save: duplicate keybinds" {
		t.Errorf("message = %q", g.settings.message)
	}
	if st.settingSaves != 0 {
		t.Error("store written")
	}
	if g.Bindings()[input.ActionThrust] != "w" {
		t.Error("live bindings changed before save")
	}
}

func TestSettingsRebindEscapeAborts(t *testing.T) {
	g, _, _ := settingsGame(t)
	g.Update(0, input.Intents{Tab: true})
	g.Update(0, input.Intents{Confirm: true})
	g.Update(0, keys(input.KeyEscape))
	if g.settings.rebinding != "" || g.settings.staged.Controls["thrust"] != "w" {
		t.Error("escape should abort rebinding")
	}
	if g.State != StateSettings {
		t.Error("escape while rebinding left the menu")
	}
}

func TestSettingsCancelDiscards(t *testing.T) {
	g, a, st := settingsGame(t)
	g.Update(0, input.Intents{Right: true})
	g.Update(0, input.Intents{Cancel: true})
	if g.State != StateTitle {
		t.Fatalf("state = %v", g.State)
	}
	if st.settingSaves != 0 || a.volumes.Master != 0.8 {
		t.Error("cancel applied staged settings")
	}
}

func TestSettingsReset(t *testing.T) {
	g, _, st := settingsGame(t)
	custom := store.DefaultSettings()
	custom.Audio.Music = 0.1
	g.settings.staged = custom

	press(g, input.Intents{Down: true}, 5) // reset
	g.Update(0, input.Intents{Confirm: true})
	if g.settings.staged.Audio.Music != store.DefaultSettings().Audio.Music {
		t.Error("reset did not restore defaults")
	}
	if st.settingSaves != 0 {
		t.Error("reset saved without Save")
	}
}

func TestSettingsTabWrapsNavigation(t *testing.T) {
	g, _, _ := settingsGame(t)
	g.Update(0, input.Intents{Up: true})
	if got := g.settings.selected(); got != itemReset {
		t.Errorf("up from top selected %q, want reset", got)
	}
	g.Update(0, input.Intents{Tab: true})
	if g.settings.tab != tabControls || g.settings.index != 0 {
		t.Error("tab did not switch to controls")
	}
	if n := len(g.settings.lines()); n != len(input.Actions)+3 {
		t.Errorf("controls rows = %d", n)
	}
}
