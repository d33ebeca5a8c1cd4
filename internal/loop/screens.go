package loop

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/tomz197/asteroids-arcade/internal/draw"
	"github.com/tomz197/asteroids-arcade/internal/input"
	"github.com/tomz197/asteroids-arcade/internal/loop/config"
	"github.com/tomz197/asteroids-arcade/internal/object"
)

// Draw renders the current frame: entities onto the canvas, the canvas onto
// the surface, then the text overlay for the current state.
func (g *Game) Draw(c *draw.Canvas, s draw.Surface) {
	c.Clear()
	if g.showsField() {
		g.drawField(c)
	}
	c.Render(s)
	c.RenderBorder(s)

	t := textLayer{canvas: c, surface: s}
	switch g.State {
	case StateTitle:
		g.drawTitle(t)
	case StatePlaying:
		g.drawHUD(t)
		g.drawBanner(t)
	case StatePaused:
		g.drawHUD(t)
		g.drawPauseMenu(t)
	case StateSettings:
		g.drawSettings(t)
	case StateGameOver:
		g.drawGameOver(t)
	}
}

// showsField reports whether entities are visible behind the current screen.
func (g *Game) showsField() bool {
	switch g.State {
	case StatePlaying, StatePaused, StateGameOver:
		return true
	case StateSettings:
		return g.settingsReturn == StatePaused
	default:
		return false
	}
}

func (g *Game) drawField(c *draw.Canvas) {
	ctx := object.DrawContext{Canvas: c, World: g.world}
	for _, p := range g.Particles {
		p.Draw(ctx)
	}
	for _, a := range g.Asteroids {
		a.Draw(ctx)
	}
	for _, b := range g.Bullets {
		b.Draw(ctx)
	}
	for _, s := range g.Saucers {
		s.Draw(ctx)
	}
	g.Ship.Draw(ctx)
}

// textLayer writes text over the rendered canvas. Every written cell is
// marked dirty so the canvas repaints it once the text goes away.
type textLayer struct {
	canvas  *draw.Canvas
	surface draw.Surface
}

func (t textLayer) width() int  { return t.canvas.TerminalWidth() }
func (t textLayer) height() int { return t.canvas.TerminalHeight() }

// at writes s at the 1-based cell (col,row), clipped to the canvas.
func (t textLayer) at(col, row int, s string) {
	if row < 1 || row > t.height() {
		return
	}
	if col < 1 {
		s = dropRunes(s, 1-col)
		col = 1
	}
	room := t.width() - col + 1
	if room <= 0 {
		return
	}
	if utf8.RuneCountInString(s) > room {
		s = string([]rune(s)[:room])
	}
	if s == "" {
		return
	}
	t.surface.WriteAt(col, row, s)
	t.canvas.MarkTextDirty(col, row, utf8.RuneCountInString(s))
}

// centered writes s horizontally centered on row.
func (t textLayer) centered(row int, s string) {
	t.at((t.width()-utf8.RuneCountInString(s))/2+1, row, s)
}

// block writes lines centered as one left-aligned block starting at row.
func (t textLayer) block(row int, lines []string) {
	w := 0
	for _, l := range lines {
		w = max(w, utf8.RuneCountInString(l))
	}
	col := (t.width()-w)/2 + 1
	for i, l := range lines {
		t.at(col, row+i, l)
	}
}

func dropRunes(s string, n int) string {
	r := []rune(s)
	if n >= len(r) {
		return ""
	}
	return string(r[n:])
}

// blinkOn reports whether a blinking prompt is visible at elapsed seconds.
func blinkOn(elapsed float64) bool {
	return int(elapsed/config.PromptBlinkInterval)%2 == 0
}

func (g *Game) drawTitle(t textLayer) {
	art := bannerArt("ASTEROIDS")
	top := t.height()/2 - 9
	t.block(top, art)

	y := top + len(art) + 1
	t.centered(y, "~ Terminal Arcade ~")

	if blinkOn(g.stateTime) {
		t.centered(y+2, ">>  PRESS ENTER OR SPACE TO START  <<")
	}

	b := g.bindings
	controls := []string{
		fmt.Sprintf("%-16s Thrust", keyLabel(b[input.ActionThrust])+" / UP"),
		fmt.Sprintf("%-16s Rotate", keyLabel(b[input.ActionTurnLeft])+" "+keyLabel(b[input.ActionTurnRight])+" / < >"),
		fmt.Sprintf("%-16s Fire", keyLabel(b[input.ActionFire])),
		fmt.Sprintf("%-16s Hyperspace", keyLabel(b[input.ActionHyperspace])),
		fmt.Sprintf("%-16s Pause", keyLabel(b[input.ActionPause])+" / ESC"),
		fmt.Sprintf("%-16s Settings", "S"),
		fmt.Sprintf("%-16s Quit", "Q / ESC"),
	}
	t.centered(y+4, "Controls")
	t.block(y+5, controls)

	if g.Session.HighScore > 0 {
		t.centered(y+5+len(controls)+1, fmt.Sprintf("HIGH SCORE: %d", g.Session.HighScore))
	}
}

func keyLabel(k input.Key) string {
	return strings.ToUpper(string(k))
}

// drawHUD draws score, high score, wave and lives along the top.
func (g *Game) drawHUD(t textLayer) {
	t.at(2, 1, fmt.Sprintf("SCORE %d", g.Session.Score))
	t.centered(1, fmt.Sprintf("HI %d", max(g.Session.HighScore, g.Session.Score)))
	wave := fmt.Sprintf("WAVE %d", g.Session.Wave)
	t.at(t.width()-utf8.RuneCountInString(wave), 1, wave)
	t.at(2, 2, strings.Repeat("▲ ", min(g.Session.Lives, config.MaxLives)))
}

// drawBanner announces respawns and wave changes.
func (g *Game) drawBanner(t textLayer) {
	row := t.height()/2 - 3
	switch g.Phase {
	case PhaseRespawning:
		t.centered(row, "SHIP DESTROYED")
	case PhaseWaveTransition:
		t.centered(row, fmt.Sprintf("WAVE %d", g.Session.Wave+1))
	}
}

func (g *Game) drawPauseMenu(t textLayer) {
	row := t.height()/2 - 4
	t.centered(row, "P A U S E D")
	lines := make([]string, len(pauseOptions))
	for i, opt := range pauseOptions {
		if i == g.pauseIndex {
			lines[i] = fmt.Sprintf("> %-8s <", opt)
		} else {
			lines[i] = fmt.Sprintf("  %-8s  ", opt)
		}
	}
	t.block(row+2, lines)
	t.centered(row+2+len(lines)+1, "UP/DOWN select | ENTER confirm | ESC resume")
}

// drawSettings draws the settings panel.
func (g *Game) drawSettings(t textLayer) {
	m := g.settings
	const panelWidth = 56
	rows := []string{"SETTINGS", ""}

	var tabs []string
	for _, tab := range []settingsTab{tabAudio, tabControls} {
		if tab == m.tab {
			tabs = append(tabs, "["+tab.String()+"]")
		} else {
			tabs = append(tabs, " "+tab.String()+" ")
		}
	}
	rows = append(rows, strings.Join(tabs, "  "), "")
	rows = append(rows, m.lines()...)
	rows = append(rows, "")
	switch {
	case m.rebinding != "":
		rows = append(rows, "Listening: press key for "+m.rebinding.Label())
	default:
		rows = append(rows, m.message)
	}
	rows = append(rows, "TAB section | UP/DOWN select | ENTER confirm | ESC back")

	top := (t.height()-len(rows)-2)/2 + 1
	col := (t.width()-panelWidth-4)/2 + 1
	t.at(col, top, "┌"+strings.Repeat("─", panelWidth+2)+"┐")
	for i, r := range rows {
		t.at(col, top+1+i, "│ "+padRunes(r, panelWidth)+" │")
	}
	t.at(col, top+1+len(rows), "└"+strings.Repeat("─", panelWidth+2)+"┘")
}

func padRunes(s string, w int) string {
	n := utf8.RuneCountInString(s)
	if n >= w {
		return string([]rune(s)[:w])
	}
	return s + strings.Repeat(" ", w-n)
}

func (g *Game) drawGameOver(t textLayer) {
	row := t.height()/2 - 5
	art := bannerArt("GAME OVER")
	t.block(row, art)
	y := row + len(art) + 1

	t.centered(y, fmt.Sprintf("SCORE: %d", g.Session.Score))
	t.centered(y+1, fmt.Sprintf("HIGH SCORE: %d", g.Session.HighScore))
	if g.newRecord {
		t.centered(y+3, "NEW HIGH SCORE!")
	}
	if g.stateTime >= config.GameOverInputDelay && blinkOn(g.stateTime) {
		t.centered(y+5, ">>  PRESS ENTER, SPACE, OR ESC  <<")
	}
}

// drawNotice draws a centered message box over everything else.
func drawNotice(c *draw.Canvas, s draw.Surface, lines []string) {
	t := textLayer{canvas: c, surface: s}
	w := 0
	for _, l := range lines {
		w = max(w, utf8.RuneCountInString(l))
	}
	top := (t.height()-len(lines)-2)/2 + 1
	col := (t.width()-w-4)/2 + 1
	t.at(col, top, "┌"+strings.Repeat("─", w+2)+"┐")
	for i, l := range lines {
		t.at(col, top+1+i, "│ "+padRunes(l, w)+" │")
	}
	t.at(col, top+1+len(lines), "└"+strings.Repeat("─", w+2)+"┘")
}

// bannerGlyphs is a figlet "small" style alphabet for the letters we need.
var bannerGlyphs = map[rune][]string{
	'A': {`   _   `, `  /_\  `, ` / _ \ `, `/_/ \_\`},
	'D': {` ___  `, `|   \ `, `| |) |`, `|___/ `},
	'E': {` ___ `, `| __|`, `| _| `, `|___|`},
	'G': {`  ___ `, ` / __|`, `| (_ |`, ` \___|`},
	'I': {` ___ `, `|_ _|`, ` | | `, `|___|`},
	'M': {` __  __ `, `|  \/  |`, `| |\/| |`, `|_|  |_|`},
	'O': {`  ___  `, ` / _ \ `, `| (_) |`, ` \___/ `},
	'R': {` ___ `, `| _ \`, `|   /`, `|_|_\`},
	'S': {` ___ `, `/ __|`, `\__ \`, `|___/`},
	'T': {` _____ `, `|_   _|`, `  | |  `, `  |_|  `},
	'V': {`__   __`, `\ \ / /`, ` \ V / `, `  \_/  `},
	' ': {`  `, `  `, `  `, `  `},
}

// bannerArt renders word in large letters. Unknown letters are skipped.
func bannerArt(word string) []string {
	lines := make([]string, 4)
	for _, r := range word {
		g, ok := bannerGlyphs[r]
		if !ok {
			continue
		}
		for i := range lines {
			lines[i] += g[i]
		}
	}
	return lines
}
