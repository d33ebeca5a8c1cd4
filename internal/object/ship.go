package object

import (
	"math"
	"math/rand"

	"github.com/tomz197/asteroids-arcade/internal/physics"
)

// Ship tuning.
const (
	ShipRadius            = 14.0  // Collision radius
	ShipNoseOffset        = 20.0  // Distance from center to nose (bullet origin)
	ShipThrust            = 300.0 // px/s²
	ShipMaxSpeed          = 600.0 // px/s
	ShipRotationSpeed     = 270.0 // degrees/s
	ShipDrag              = 0.98  // Velocity factor per 1/60 s
	ShipInvincibility     = 3.0   // Seconds after (re)spawn
	ShipBlinkInterval     = 5.0 / 60
	HyperspaceCooldown    = 2.0
	HyperspaceDeathChance = 1.0 / 6
)

// Ship outline in local space, nose pointing up.
var (
	shipHull = []physics.Vec{
		{X: 0, Y: -20},
		{X: 12, Y: 10},
		{X: 0, Y: 5},
		{X: -12, Y: 10},
	}
	shipFlame = []physics.Vec{
		{X: 0, Y: 5},
		{X: 5, Y: 14},
		{X: 0, Y: 22},
		{X: -5, Y: 14},
	}
)

// ShipView is the read-only part of the ship other entities may look at.
type ShipView struct {
	Pos        physics.Vec
	Vel        physics.Vec
	Angle      float64
	Alive      bool
	Invincible bool
}

// Ship is the player-controlled spaceship. It is killed logically and
// respawned in place, never reallocated.
type Ship struct {
	Pos   physics.Vec
	Vel   physics.Vec
	Angle float64 // Degrees, 0 = nose up, clockwise positive

	Alive           bool
	Invincible      bool
	InvincibleTimer float64
	Thrusting       bool

	hyperCooldown float64
	blinkTimer    float64
	visible       bool
	flame         int
}

// NewShip creates a live ship at pos with spawn invincibility.
func NewShip(pos physics.Vec) *Ship {
	s := &Ship{}
	s.Respawn(pos)
	return s
}

// ApplyInput rotates and accelerates the ship from this frame's intents.
func (s *Ship) ApplyInput(in Intents, dt float64) {
	if in.TurnLeft {
		s.Angle -= ShipRotationSpeed * dt
	}
	if in.TurnRight {
		s.Angle += ShipRotationSpeed * dt
	}
	s.Angle = math.Mod(s.Angle, 360)

	s.Thrusting = in.Thrust
	if s.Thrusting {
		s.Vel = s.Vel.Add(physics.Heading(s.Angle).Scale(ShipThrust * dt))
	}
}

// Update applies drag, the speed cap, movement and the invincibility and
// cooldown timers. The ship is never removed.
func (s *Ship) Update(ctx UpdateContext) bool {
	dt := ctx.Delta.Seconds()

	// Drag is defined per 60 Hz frame; normalise so it is frame-rate independent.
	s.Vel = s.Vel.Scale(math.Pow(ShipDrag, dt*60))
	s.Vel = physics.ClampLen(s.Vel, ShipMaxSpeed)

	s.Pos = ctx.World.Wrap(s.Pos.Add(s.Vel.Scale(dt)))

	if s.Invincible {
		s.InvincibleTimer -= dt
		s.blinkTimer += dt
		for s.blinkTimer >= ShipBlinkInterval {
			s.blinkTimer -= ShipBlinkInterval
			s.visible = !s.visible
		}
		if s.InvincibleTimer <= 0 {
			s.Invincible = false
			s.InvincibleTimer = 0
			s.visible = true
		}
	}

	if s.hyperCooldown > 0 {
		s.hyperCooldown -= dt
	}

	if s.Thrusting {
		s.flame = (s.flame + 1) % 4
	}
	return false
}

// CanHyperspace reports whether the hyperspace cooldown has elapsed.
func (s *Ship) CanHyperspace() bool {
	return s.hyperCooldown <= 0
}

// Hyperspace jumps to a random position with zero velocity. There is a
// HyperspaceDeathChance the ship is destroyed instead; it then reports false
// and Alive is cleared. During cooldown nothing happens and it reports true.
func (s *Ship) Hyperspace(world Screen) (survived bool) {
	if !s.CanHyperspace() {
		return true
	}
	s.hyperCooldown = HyperspaceCooldown
	if rand.Float64() < HyperspaceDeathChance {
		s.Alive = false
		return false
	}
	s.Pos = physics.Vec{
		X: rand.Float64() * float64(world.Width),
		Y: rand.Float64() * float64(world.Height),
	}
	s.Vel = physics.Vec{}
	return true
}

// Respawn resets the ship at pos facing up, alive and invincible.
func (s *Ship) Respawn(pos physics.Vec) {
	s.Pos = pos
	s.Vel = physics.Vec{}
	s.Angle = 0
	s.Alive = true
	s.Thrusting = false
	s.hyperCooldown = 0
	s.GrantInvincibility(ShipInvincibility)
}

// GrantInvincibility makes the ship immune for seconds and restarts the blink.
func (s *Ship) GrantInvincibility(seconds float64) {
	if seconds <= 0 {
		return
	}
	s.Invincible = true
	s.InvincibleTimer = seconds
	s.blinkTimer = 0
	s.visible = true
}

// Kill marks the ship destroyed.
func (s *Ship) Kill() {
	s.Alive = false
	s.Thrusting = false
}

// Nose returns the bullet spawn point.
func (s *Ship) Nose() physics.Vec {
	return s.Pos.Add(physics.Heading(s.Angle).Scale(ShipNoseOffset))
}

// Visible reports whether the blink cycle currently shows the ship.
func (s *Ship) Visible() bool {
	return s.Alive && (!s.Invincible || s.visible)
}

// View returns a read-only snapshot.
func (s *Ship) View() ShipView {
	return ShipView{Pos: s.Pos, Vel: s.Vel, Angle: s.Angle, Alive: s.Alive, Invincible: s.Invincible}
}

// Draw renders the hull and, while thrusting, a flickering flame.
func (s *Ship) Draw(ctx DrawContext) {
	if !s.Visible() {
		return
	}
	drawShape(ctx, s.Pos, ShipNoseOffset, physics.Rotate(shipHull, s.Angle))
	if s.Thrusting && s.flame < 3 {
		drawShape(ctx, s.Pos, ShipNoseOffset+2, physics.Rotate(shipFlame, s.Angle))
	}
}
