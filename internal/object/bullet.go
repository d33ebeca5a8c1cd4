package object

import (
	"github.com/tomz197/asteroids-arcade/internal/physics"
)

// Bullet tuning.
const (
	BulletSpeed    = 800.0 // px/s
	BulletLifetime = 1.0   // Seconds
	BulletRadius   = 3.0   // Collision radius
	MaxBullets     = 4     // Live player bullets at once
)

// Bullet is a projectile fired by the player or a saucer.
type Bullet struct {
	Pos      physics.Vec
	Vel      physics.Vec
	Player   bool
	Lifetime float64 // Seconds remaining before removal
}

// NewBullet creates a bullet at origin traveling along heading (degrees).
// Player bullets inherit the shooter's velocity; saucer bullets do not.
func NewBullet(origin physics.Vec, heading float64, inherited physics.Vec, player bool) *Bullet {
	vel := physics.Heading(heading).Scale(BulletSpeed)
	if player {
		vel = vel.Add(inherited)
	}
	return &Bullet{
		Pos:      origin,
		Vel:      vel,
		Player:   player,
		Lifetime: BulletLifetime,
	}
}

// Expired reports whether the bullet ran out of lifetime.
func (b *Bullet) Expired() bool {
	return b.Lifetime <= 0
}

// Update moves the bullet and counts down its lifetime.
func (b *Bullet) Update(ctx UpdateContext) bool {
	dt := ctx.Delta.Seconds()
	b.Pos = ctx.World.Wrap(b.Pos.Add(b.Vel.Scale(dt)))
	b.Lifetime -= dt
	return b.Expired()
}

// Draw renders the bullet as a single pixel.
func (b *Bullet) Draw(ctx DrawContext) {
	ctx.Canvas.SetFloat(b.Pos.X, b.Pos.Y)
}
