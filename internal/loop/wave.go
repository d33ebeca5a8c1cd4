package loop

import (
	"github.com/tomz197/asteroids-arcade/internal/audio"
	"github.com/tomz197/asteroids-arcade/internal/loop/config"
	"github.com/tomz197/asteroids-arcade/internal/object"
)

// WaveAsteroidCount returns how many large asteroids wave n starts with.
func WaveAsteroidCount(n int) int {
	return min(config.WaveAsteroidStart+n-1, config.WaveAsteroidMax)
}

// SaucerSpawnInterval returns the seconds between saucers during wave n.
func SaucerSpawnInterval(n int) float64 {
	return max(config.SaucerSpawnIntervalBase-float64(n-1)*config.SaucerSpawnIntervalStep, config.SaucerSpawnIntervalMin)
}

// SaucerIsLarge reports whether the next saucer is a large one.
func SaucerIsLarge(score int) bool {
	return score < config.SmallSaucerScoreThreshold
}

// spawnWave replaces the asteroid field with wave n's large asteroids.
func (g *Game) spawnWave(n int) {
	g.Asteroids = g.Asteroids[:0]
	for i := 0; i < WaveAsteroidCount(n); i++ {
		g.Asteroids = append(g.Asteroids, object.SpawnLarge(g.Ship.Pos, g.world))
	}
}

// nextWave advances to the following wave.
func (g *Game) nextWave() {
	g.Session.Wave++
	g.Saucers = g.Saucers[:0]
	g.clearParticles()
	g.spawnWave(g.Session.Wave)
	if g.Ship.Alive {
		grace := config.WaveStartInvincibility
		if g.Ship.Invincible {
			grace = max(grace, g.Ship.InvincibleTimer)
		}
		g.Ship.GrantInvincibility(grace)
	}
	g.Phase = PhaseActive
	g.logger.Debug("wave start", "wave", g.Session.Wave, "asteroids", len(g.Asteroids))
}

// spawnSaucer adds a saucer whose size depends on the score.
func (g *Game) spawnSaucer() {
	large := SaucerIsLarge(g.Session.Score)
	g.Saucers = append(g.Saucers, object.NewSaucer(large, g.world))
	if large {
		g.audio.Play(audio.SoundSaucerLarge)
	} else {
		g.audio.Play(audio.SoundSaucerSmall)
	}
}
