package loop

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/tomz197/asteroids-arcade/internal/audio"
	"github.com/tomz197/asteroids-arcade/internal/input"
	"github.com/tomz197/asteroids-arcade/internal/loop/config"
	"github.com/tomz197/asteroids-arcade/internal/object"
	"github.com/tomz197/asteroids-arcade/internal/store"
)

// GameState is the top-level screen the game is on.
type GameState int

const (
	StateTitle GameState = iota
	StatePlaying
	StatePaused
	StateSettings
	StateGameOver
)

func (s GameState) String() string {
	switch s {
	case StateTitle:
		return "title"
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	case StateSettings:
		return "settings"
	case StateGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Phase sequences gameplay inside StatePlaying.
type Phase int

const (
	PhaseActive         Phase = iota // Normal play
	PhaseRespawning                  // Ship destroyed, waiting to respawn
	PhaseWaveTransition              // Wave cleared, waiting for the next one
)

func (p Phase) String() string {
	switch p {
	case PhaseActive:
		return "active"
	case PhaseRespawning:
		return "respawning"
	case PhaseWaveTransition:
		return "wave_transition"
	default:
		return "unknown"
	}
}

// Store persists the high score and settings.
type Store interface {
	LoadHighScore() int
	SaveHighScore(score int) error
	LoadSettings() store.Settings
	SaveSettings(s store.Settings) error
}

// Game holds everything one player's game needs. It is driven by Update and
// rendered by Draw, both from the same goroutine.
type Game struct {
	State   GameState
	Phase   Phase
	Session Session

	Ship      *object.Ship
	Asteroids []*object.Asteroid
	Bullets   []*object.Bullet
	Saucers   []*object.Saucer
	Particles []*object.Particle

	world       object.Screen
	phaseTimer  float64 // Countdown for respawn / wave transition
	saucerTimer float64 // Countdown to the next saucer
	stateTime   float64 // Seconds since the current state was entered
	newRecord   bool    // Last game beat the stored high score

	pauseIndex     int
	settings       *settingsMenu
	settingsReturn GameState

	store    Store
	audio    audio.Player
	logger   *log.Logger
	current  store.Settings
	bindings input.Bindings
	quit     bool
}

// NewGame creates a game on the title screen. A nil player or logger is
// replaced by a silent one.
func NewGame(st Store, player audio.Player, logger *log.Logger) *Game {
	if player == nil {
		player = audio.Nop{}
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	g := &Game{
		State:  StateTitle,
		world:  object.NewScreen(config.WorldWidth, config.WorldHeight),
		store:  st,
		audio:  player,
		logger: logger,
	}
	g.Ship = object.NewShip(g.world.Center())
	g.Ship.Kill()
	g.applySettings(st.LoadSettings())
	g.Session = NewSession(st.LoadHighScore())
	return g
}

// World returns the world dimensions.
func (g *Game) World() object.Screen {
	return g.world
}

// Bindings returns the active key bindings.
func (g *Game) Bindings() input.Bindings {
	return g.bindings
}

// Quit reports whether the player asked to leave.
func (g *Game) Quit() bool {
	return g.quit
}

// Update advances the game by dt seconds using this frame's intents.
func (g *Game) Update(dt float64, in input.Intents) {
	g.stateTime += dt
	switch g.State {
	case StateTitle:
		g.updateTitle(in)
	case StatePlaying:
		g.updatePlaying(dt, in)
	case StatePaused:
		g.updatePaused(in)
	case StateSettings:
		g.updateSettings(in)
	case StateGameOver:
		g.updateGameOver(in)
	}
}

// transition switches state and runs the entry hook of the new state.
func (g *Game) transition(to GameState) {
	g.logger.Debug("state change", "from", g.State, "to", to)
	g.State = to
	g.stateTime = 0
	switch to {
	case StatePlaying:
		g.Phase = PhaseActive
	case StatePaused:
		g.pauseIndex = 0
	case StateSettings:
		g.settings = newSettingsMenu(g.current)
	case StateGameOver:
		g.enterGameOver()
	}
}

// startGame resets the session and spawns the first wave.
func (g *Game) startGame() {
	g.Session.HighScore = g.store.LoadHighScore()
	g.Session.Reset()
	g.Bullets = g.Bullets[:0]
	g.Saucers = g.Saucers[:0]
	g.clearParticles()
	g.saucerTimer = config.SaucerSpawnIntervalBase
	g.phaseTimer = 0
	g.newRecord = false

	g.Ship.Respawn(g.world.Center())
	g.spawnWave(g.Session.Wave)
	g.transition(StatePlaying)
}

// enterGameOver records the high score if it was beaten.
func (g *Game) enterGameOver() {
	g.newRecord = g.Session.RecordHighScore()
	if !g.newRecord {
		return
	}
	if err := g.store.SaveHighScore(g.Session.HighScore); err != nil {
		g.logger.Debug("save high score", "err", err)
	}
}

// applySettings makes s the live settings.
func (g *Game) applySettings(s store.Settings) {
	g.current = s.Clone()
	g.bindings = s.Bindings()
	g.audio.SetVolumes(s.Volumes())
}

func (g *Game) updateTitle(in input.Intents) {
	switch {
	case in.Confirm:
		g.startGame()
	case pressed(in, "s"):
		g.settingsReturn = StateTitle
		g.transition(StateSettings)
	case in.Cancel || pressed(in, "q"):
		g.quit = true
	}
}

func (g *Game) updateGameOver(in input.Intents) {
	if g.stateTime < config.GameOverInputDelay {
		return
	}
	if in.Confirm || in.Cancel {
		g.transition(StateTitle)
	}
}

// pressed reports whether k was pressed this frame.
func pressed(in input.Intents, k input.Key) bool {
	return containsKey(in.Keys, k)
}
