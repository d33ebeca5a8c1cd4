package loop

import (
	"slices"

	"github.com/tomz197/asteroids-arcade/internal/audio"
	"github.com/tomz197/asteroids-arcade/internal/loop/config"
	"github.com/tomz197/asteroids-arcade/internal/object"
	"github.com/tomz197/asteroids-arcade/internal/physics"
)

// checkCollisions resolves this frame's overlaps in a fixed order. Removals
// take effect immediately, so a destroyed entity cannot collide twice.
func (g *Game) checkCollisions() {
	g.checkBulletAsteroidCollisions()
	if g.checkSaucerBulletShipCollisions() {
		return
	}
	g.checkBulletSaucerCollisions()
	if g.checkShipAsteroidCollisions() {
		return
	}
	g.checkShipSaucerCollisions()
}

// checkBulletAsteroidCollisions lets each player bullet destroy the first
// asteroid it overlaps.
func (g *Game) checkBulletAsteroidCollisions() {
	for i := 0; i < len(g.Bullets); {
		b := g.Bullets[i]
		if !b.Player {
			i++
			continue
		}
		hit := firstAsteroidHit(g.Asteroids, b.Pos, object.BulletRadius)
		if hit < 0 {
			i++
			continue
		}
		g.Bullets = slices.Delete(g.Bullets, i, i+1)
		a := g.Asteroids[hit]
		g.destroyAsteroid(hit)
		g.addScore(asteroidScore(a.Size))
		g.audio.Play(audio.SoundExplosionAsteroid)
	}
}

// checkSaucerBulletShipCollisions reports whether the game ended.
func (g *Game) checkSaucerBulletShipCollisions() bool {
	for i := 0; i < len(g.Bullets); i++ {
		if !g.shipVulnerable() {
			return false
		}
		b := g.Bullets[i]
		if b.Player || !physics.CirclesOverlap(b.Pos, object.BulletRadius, g.Ship.Pos, object.ShipRadius) {
			continue
		}
		g.Bullets = slices.Delete(g.Bullets, i, i+1)
		g.destroyShip()
		return g.State == StateGameOver
	}
	return false
}

func (g *Game) checkBulletSaucerCollisions() {
	for i := 0; i < len(g.Bullets); {
		b := g.Bullets[i]
		if !b.Player {
			i++
			continue
		}
		hit := -1
		for j, s := range g.Saucers {
			if physics.CirclesOverlap(b.Pos, object.BulletRadius, s.Pos, s.Radius) {
				hit = j
				break
			}
		}
		if hit < 0 {
			i++
			continue
		}
		s := g.Saucers[hit]
		g.Bullets = slices.Delete(g.Bullets, i, i+1)
		g.Saucers = slices.Delete(g.Saucers, hit, hit+1)
		if s.Large {
			g.addScore(config.ScoreLargeSaucer)
		} else {
			g.addScore(config.ScoreSmallSaucer)
		}
		g.explode(s.Pos)
		g.audio.Play(audio.SoundExplosionSaucer)
	}
}

// checkShipAsteroidCollisions reports whether the game ended.
func (g *Game) checkShipAsteroidCollisions() bool {
	if !g.shipVulnerable() {
		return false
	}
	hit := firstAsteroidHit(g.Asteroids, g.Ship.Pos, object.ShipRadius)
	if hit < 0 {
		return false
	}
	g.destroyAsteroid(hit)
	g.destroyShip()
	return g.State == StateGameOver
}

func (g *Game) checkShipSaucerCollisions() {
	if !g.shipVulnerable() {
		return
	}
	for i, s := range g.Saucers {
		if physics.CirclesOverlap(g.Ship.Pos, object.ShipRadius, s.Pos, s.Radius) {
			g.Saucers = slices.Delete(g.Saucers, i, i+1)
			g.destroyShip()
			return
		}
	}
}

// destroyAsteroid removes the asteroid at index i, adding its fragments and
// an explosion.
func (g *Game) destroyAsteroid(i int) {
	a := g.Asteroids[i]
	g.Asteroids = slices.Delete(g.Asteroids, i, i+1)
	g.Asteroids = append(g.Asteroids, a.Split()...)
	g.explode(a.Pos)
}

func (g *Game) shipVulnerable() bool {
	return g.Ship.Alive && !g.Ship.Invincible
}

// firstAsteroidHit returns the index of the first asteroid overlapping the
// circle, or -1.
func firstAsteroidHit(asteroids []*object.Asteroid, pos physics.Vec, radius float64) int {
	for i, a := range asteroids {
		if physics.CirclesOverlap(pos, radius, a.Pos, a.Radius) {
			return i
		}
	}
	return -1
}

// asteroidScore returns the score for destroying an asteroid of the given size.
func asteroidScore(size object.AsteroidSize) int {
	switch size {
	case object.AsteroidLarge:
		return config.ScoreLargeAsteroid
	case object.AsteroidMedium:
		return config.ScoreMediumAsteroid
	case object.AsteroidSmall:
		return config.ScoreSmallAsteroid
	default:
		return 0
	}
}
