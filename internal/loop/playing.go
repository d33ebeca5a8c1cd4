package loop

import (
	"time"

	"github.com/tomz197/asteroids-arcade/internal/audio"
	"github.com/tomz197/asteroids-arcade/internal/input"
	"github.com/tomz197/asteroids-arcade/internal/loop/config"
	"github.com/tomz197/asteroids-arcade/internal/object"
	"github.com/tomz197/asteroids-arcade/internal/physics"
)

// updatePlaying handles StatePlaying, dispatching on the phase.
func (g *Game) updatePlaying(dt float64, in input.Intents) {
	switch g.Phase {
	case PhaseActive:
		if in.Pause || in.Cancel {
			g.transition(StatePaused)
			return
		}
		g.updateActive(dt, in)
	case PhaseRespawning:
		g.updateDrift(dt)
		g.phaseTimer -= dt
		if g.phaseTimer <= 0 {
			g.Ship.Respawn(g.world.Center())
			g.Phase = PhaseActive
		}
	case PhaseWaveTransition:
		g.updateDrift(dt)
		g.phaseTimer -= dt
		if g.phaseTimer <= 0 {
			g.nextWave()
		}
	}
}

// updateActive runs one frame of normal play.
func (g *Game) updateActive(dt float64, in input.Intents) {
	ctx := g.updateContext(dt)

	if g.Ship.Alive {
		if in.Fire {
			g.fireBullet()
		}
		if in.Hyperspace && g.Ship.CanHyperspace() {
			if g.Ship.Hyperspace(g.world) {
				g.audio.Play(audio.SoundHyperspace)
			} else {
				g.destroyShip()
				return
			}
		}
		g.Ship.ApplyInput(in, dt)
		g.Ship.Update(ctx)
		ctx.Ship = g.Ship.View()
	}

	g.updateBullets(ctx)
	g.updateAsteroids(ctx)
	g.updateSaucers(ctx)
	g.updateParticles(ctx)

	g.saucerTimer -= dt
	if g.saucerTimer <= 0 {
		g.spawnSaucer()
		g.saucerTimer = SaucerSpawnInterval(g.Session.Wave)
	}

	g.audio.Heartbeat(dt, len(g.Asteroids))

	g.checkCollisions()

	if g.State == StatePlaying && g.Phase == PhaseActive && len(g.Asteroids) == 0 && len(g.Saucers) == 0 {
		g.Phase = PhaseWaveTransition
		g.phaseTimer = config.WaveTransitionDelay
	}
}

// updateDrift keeps the field moving while the player waits: no collisions,
// no saucer fire, no spawning.
func (g *Game) updateDrift(dt float64) {
	ctx := g.updateContext(dt)
	g.updateBullets(ctx)
	g.updateAsteroids(ctx)
	g.updateParticles(ctx)
}

func (g *Game) updateContext(dt float64) object.UpdateContext {
	return object.UpdateContext{
		Delta: time.Duration(dt * float64(time.Second)),
		World: g.world,
		Ship:  g.Ship.View(),
	}
}

// fireBullet shoots from the ship's nose while under the bullet limit.
func (g *Game) fireBullet() {
	if g.playerBullets() >= object.MaxBullets {
		return
	}
	g.Bullets = append(g.Bullets, object.NewBullet(g.Ship.Nose(), g.Ship.Angle, g.Ship.Vel, true))
	g.audio.Play(audio.SoundFire)
}

// playerBullets counts live player bullets.
func (g *Game) playerBullets() int {
	n := 0
	for _, b := range g.Bullets {
		if b.Player {
			n++
		}
	}
	return n
}

// updateBullets updates bullets and removes expired ones.
func (g *Game) updateBullets(ctx object.UpdateContext) {
	kept := g.Bullets[:0] // reuse backing array
	for _, b := range g.Bullets {
		if !b.Update(ctx) {
			kept = append(kept, b)
		}
	}
	clear(g.Bullets[len(kept):])
	g.Bullets = kept
}

func (g *Game) updateAsteroids(ctx object.UpdateContext) {
	for _, a := range g.Asteroids {
		a.Update(ctx)
	}
}

// updateSaucers moves saucers, drops expired ones and lets the rest fire.
func (g *Game) updateSaucers(ctx object.UpdateContext) {
	kept := g.Saucers[:0]
	for _, s := range g.Saucers {
		if s.Update(ctx) {
			continue
		}
		kept = append(kept, s)
		if s.WantsToFire() {
			g.Bullets = append(g.Bullets, s.CreateBullet(ctx.Ship))
		}
	}
	clear(g.Saucers[len(kept):])
	g.Saucers = kept
}

// updateParticles updates particles, returning expired ones to the pool.
func (g *Game) updateParticles(ctx object.UpdateContext) {
	kept := g.Particles[:0]
	for _, p := range g.Particles {
		if p.Update(ctx) {
			object.ReleaseObject(p)
			continue
		}
		kept = append(kept, p)
	}
	clear(g.Particles[len(kept):])
	g.Particles = kept
}

func (g *Game) clearParticles() {
	for _, p := range g.Particles {
		object.ReleaseObject(p)
	}
	clear(g.Particles)
	g.Particles = g.Particles[:0]
}

// explode adds a particle burst at pos.
func (g *Game) explode(pos physics.Vec) {
	g.Particles = append(g.Particles, object.NewExplosion(pos, object.ExplosionParticles)...)
}

// destroyShip kills the ship and either schedules a respawn or ends the game.
func (g *Game) destroyShip() {
	g.Ship.Kill()
	g.explode(g.Ship.Pos)
	g.audio.Play(audio.SoundExplosionShip)

	if g.Session.LoseLife() <= 0 {
		g.transition(StateGameOver)
		return
	}
	g.Phase = PhaseRespawning
	g.phaseTimer = config.RespawnDelay
}

// addScore adds points, announcing an extra life.
func (g *Game) addScore(points int) {
	if g.Session.AddScore(points) {
		g.audio.Play(audio.SoundExtraLife)
	}
}

// updatePaused handles the pause menu.
func (g *Game) updatePaused(in input.Intents) {
	if in.Pause || in.Cancel {
		g.transition(StatePlaying)
		return
	}
	switch {
	case in.Up:
		g.pauseIndex = (g.pauseIndex + len(pauseOptions) - 1) % len(pauseOptions)
	case in.Down:
		g.pauseIndex = (g.pauseIndex + 1) % len(pauseOptions)
	case in.Confirm:
		switch pauseOptions[g.pauseIndex] {
		case pauseResume:
			g.transition(StatePlaying)
		case pauseRestart:
			g.startGame()
		case pauseSettings:
			g.settingsReturn = StatePaused
			g.transition(StateSettings)
		case pauseQuit:
			g.quit = true
		}
	}
}

type pauseOption string

const (
	pauseResume   pauseOption = "Resume"
	pauseRestart  pauseOption = "Restart"
	pauseSettings pauseOption = "Settings"
	pauseQuit     pauseOption = "Quit"
)

var pauseOptions = []pauseOption{pauseResume, pauseRestart, pauseSettings, pauseQuit}
