package object

import (
	"math"
	"math/rand"

	"github.com/tomz197/asteroids-arcade/internal/physics"
)

// Saucer tuning.
const (
	SaucerLargeRadius       = 20.0
	SaucerSmallRadius       = 10.0
	SaucerLargeSpeed        = 120.0
	SaucerSmallSpeed        = 160.0
	SaucerLargeVerticalSpd  = 80.0
	SaucerSmallVerticalSpd  = 100.0
	SaucerLargeFireInterval = 1.5
	SaucerSmallFireInterval = 1.0
	SaucerAimSpread         = 15.0 // Degrees either side of the ship
	saucerDirTimerMin       = 1.5
	saucerDirTimerMax       = 3.0
)

// Saucer outline, scaled by radius.
var (
	saucerBody = []physics.Vec{
		{X: -1.0, Y: 0.0},
		{X: -0.6, Y: -0.4},
		{X: 0.6, Y: -0.4},
		{X: 1.0, Y: 0.0},
		{X: 0.6, Y: 0.4},
		{X: -0.6, Y: 0.4},
	}
	saucerDome = []physics.Vec{
		{X: -0.4, Y: -0.4},
		{X: -0.2, Y: -0.75},
		{X: 0.2, Y: -0.75},
		{X: 0.4, Y: -0.4},
	}
)

// Saucer is an enemy ship crossing the world horizontally. Large saucers
// fire at random, small ones aim at the ship.
type Saucer struct {
	Pos     physics.Vec
	Vel     physics.Vec
	Large   bool
	Radius  float64
	Expired bool // Left the horizontal bounds

	fireInterval float64
	fireTimer    float64
	dirTimer     float64
	wantsToFire  bool
}

// NewSaucer spawns a saucer on the left or right edge heading inward, at a
// height inside the central 20%-80% band.
func NewSaucer(large bool, world Screen) *Saucer {
	s := &Saucer{
		Large:        large,
		Radius:       SaucerSmallRadius,
		fireInterval: SaucerSmallFireInterval,
		dirTimer:     randRange(saucerDirTimerMin, saucerDirTimerMax),
	}
	speed := SaucerSmallSpeed
	if large {
		s.Radius = SaucerLargeRadius
		s.fireInterval = SaucerLargeFireInterval
		speed = SaucerLargeSpeed
	}
	s.fireTimer = s.fireInterval

	h := float64(world.Height)
	y := randRange(h*0.2, h*0.8)
	if rand.Intn(2) == 0 {
		s.Pos = physics.Vec{X: 0, Y: y}
		s.Vel = physics.Vec{X: speed}
	} else {
		s.Pos = physics.Vec{X: float64(world.Width), Y: y}
		s.Vel = physics.Vec{X: -speed}
	}
	return s
}

// Update moves the saucer, wrapping vertically only. Leaving the horizontal
// bounds by more than twice the radius expires it. Direction and fire timers
// tick afterwards; WantsToFire holds for exactly the frame the fire timer
// elapsed.
func (s *Saucer) Update(ctx UpdateContext) bool {
	dt := ctx.Delta.Seconds()
	s.wantsToFire = false

	s.Pos = s.Pos.Add(s.Vel.Scale(dt))
	s.Pos.Y = physics.WrapAxis(s.Pos.Y, float64(ctx.World.Height))

	if s.Pos.X < -s.Radius*2 || s.Pos.X > float64(ctx.World.Width)+s.Radius*2 {
		s.Expired = true
		return true
	}

	s.dirTimer -= dt
	if s.dirTimer <= 0 {
		vy := SaucerSmallVerticalSpd
		if s.Large {
			vy = SaucerLargeVerticalSpd
		}
		s.Vel.Y = float64(rand.Intn(3)-1) * vy
		s.dirTimer = randRange(saucerDirTimerMin, saucerDirTimerMax)
	}

	s.fireTimer -= dt
	if s.fireTimer <= 0 {
		s.fireTimer = s.fireInterval
		s.wantsToFire = true
	}
	return false
}

// WantsToFire reports whether the saucer fires this frame.
func (s *Saucer) WantsToFire() bool {
	return s.wantsToFire
}

// CreateBullet fires from the saucer center. Small saucers aim at a live ship
// with up to SaucerAimSpread degrees of error; otherwise the aim is random.
func (s *Saucer) CreateBullet(ship ShipView) *Bullet {
	var heading float64
	if s.Large || !ship.Alive {
		heading = rand.Float64() * 360
	} else {
		heading = AimHeading(s.Pos, ship.Pos) + randRange(-SaucerAimSpread, SaucerAimSpread)
	}
	return NewBullet(s.Pos, heading, physics.Vec{}, false)
}

// AimHeading returns the heading (degrees, 0 = up) pointing from from to to.
func AimHeading(from, to physics.Vec) float64 {
	d := to.Sub(from)
	return math.Atan2(d.X, -d.Y) * 180 / math.Pi
}

// Draw renders the body and dome.
func (s *Saucer) Draw(ctx DrawContext) {
	drawShape(ctx, s.Pos, s.Radius, scaled(saucerBody, s.Radius))
	drawShape(ctx, s.Pos, s.Radius, scaled(saucerDome, s.Radius))
}

func scaled(points []physics.Vec, k float64) []physics.Vec {
	out := make([]physics.Vec, len(points))
	for i, p := range points {
		out[i] = p.Scale(k)
	}
	return out
}

func randRange(lo, hi float64) float64 {
	return lo + rand.Float64()*(hi-lo)
}
