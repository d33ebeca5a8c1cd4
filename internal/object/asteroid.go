package object

import (
	"math"
	"math/rand"

	"github.com/tomz197/asteroids-arcade/internal/physics"
)

// AsteroidSize represents the size category of an asteroid.
type AsteroidSize int

const (
	AsteroidSmall  AsteroidSize = 1
	AsteroidMedium AsteroidSize = 2
	AsteroidLarge  AsteroidSize = 3
)

// AsteroidSpawnSafeRadius is the minimum spawn distance from the ship.
const AsteroidSpawnSafeRadius = 150.0

// edgeSpawnAttempts bounds the search for a safe edge point.
const edgeSpawnAttempts = 20

type asteroidSpec struct {
	radius   float64
	minSpeed float64
	maxSpeed float64
}

var asteroidSpecs = map[AsteroidSize]asteroidSpec{
	AsteroidLarge:  {radius: 50, minSpeed: 40, maxSpeed: 80},
	AsteroidMedium: {radius: 25, minSpeed: 80, maxSpeed: 140},
	AsteroidSmall:  {radius: 12, minSpeed: 140, maxSpeed: 220},
}

func (s AsteroidSize) String() string {
	switch s {
	case AsteroidLarge:
		return "large"
	case AsteroidMedium:
		return "medium"
	case AsteroidSmall:
		return "small"
	default:
		return "unknown"
	}
}

// Radius returns the collision radius for the size.
func (s AsteroidSize) Radius() float64 {
	return asteroidSpecs[s].radius
}

// SpeedRange returns the speed bounds (px/s) for the size.
func (s AsteroidSize) SpeedRange() (min, max float64) {
	r := asteroidSpecs[s]
	return r.minSpeed, r.maxSpeed
}

// Child returns the size fragments of s split into. Small asteroids have none.
func (s AsteroidSize) Child() (AsteroidSize, bool) {
	switch s {
	case AsteroidLarge:
		return AsteroidMedium, true
	case AsteroidMedium:
		return AsteroidSmall, true
	default:
		return 0, false
	}
}

// Asteroid is a destructible space rock.
type Asteroid struct {
	Pos           physics.Vec
	Vel           physics.Vec
	Angle         float64      // Current rotation (degrees)
	RotationSpeed float64      // Degrees per second
	Size          AsteroidSize // Size category
	Radius        float64      // Collision radius
	Vertices      []float64    // Vertex distances from center (for irregular shape)
}

// NewAsteroid creates an asteroid with a jagged outline of 8-12 vertices,
// each within ±30% of the size radius.
func NewAsteroid(pos, vel physics.Vec, size AsteroidSize) *Asteroid {
	radius := size.Radius()

	numVerts := 8 + rand.Intn(5)
	vertices := make([]float64, numVerts)
	for i := range vertices {
		vertices[i] = radius * (0.7 + rand.Float64()*0.6)
	}

	return &Asteroid{
		Pos:           pos,
		Vel:           vel,
		RotationSpeed: rand.Float64()*120 - 60,
		Size:          size,
		Radius:        radius,
		Vertices:      vertices,
	}
}

// RandomVelocity returns a vector in a uniformly random direction with a
// speed uniform in [min,max].
func RandomVelocity(min, max float64) physics.Vec {
	speed := min + rand.Float64()*(max-min)
	return physics.FromAngle(rand.Float64()*2*math.Pi, speed)
}

// EdgePosition picks a random point on the world border at least
// AsteroidSpawnSafeRadius away from shipPos. After edgeSpawnAttempts misses
// it falls back to the corner (0,0).
func EdgePosition(shipPos physics.Vec, world Screen) physics.Vec {
	w := float64(world.Width)
	h := float64(world.Height)
	for i := 0; i < edgeSpawnAttempts; i++ {
		var p physics.Vec
		switch rand.Intn(4) {
		case 0: // Top
			p = physics.Vec{X: rand.Float64() * w, Y: 0}
		case 1: // Bottom
			p = physics.Vec{X: rand.Float64() * w, Y: h}
		case 2: // Left
			p = physics.Vec{X: 0, Y: rand.Float64() * h}
		default: // Right
			p = physics.Vec{X: w, Y: rand.Float64() * h}
		}
		p = world.Wrap(p)
		if physics.Distance(p, shipPos) >= AsteroidSpawnSafeRadius {
			return p
		}
	}
	return physics.Vec{}
}

// SpawnLarge creates a large asteroid on a world edge away from the ship.
func SpawnLarge(shipPos physics.Vec, world Screen) *Asteroid {
	lo, hi := AsteroidLarge.SpeedRange()
	return NewAsteroid(EdgePosition(shipPos, world), RandomVelocity(lo, hi), AsteroidLarge)
}

// Split returns the two fragments that replace a destroyed asteroid, each
// with its own random direction and a speed from the child size range.
// Small asteroids return nil.
func (a *Asteroid) Split() []*Asteroid {
	child, ok := a.Size.Child()
	if !ok {
		return nil
	}
	lo, hi := child.SpeedRange()
	return []*Asteroid{
		NewAsteroid(a.Pos, RandomVelocity(lo, hi), child),
		NewAsteroid(a.Pos, RandomVelocity(lo, hi), child),
	}
}

// Update moves and rotates the asteroid. Asteroids never expire on their own.
func (a *Asteroid) Update(ctx UpdateContext) bool {
	dt := ctx.Delta.Seconds()
	a.Pos = ctx.World.Wrap(a.Pos.Add(a.Vel.Scale(dt)))
	a.Angle = math.Mod(a.Angle+a.RotationSpeed*dt, 360)
	return false
}

// Draw renders the asteroid as an irregular polygon.
func (a *Asteroid) Draw(ctx DrawContext) {
	n := len(a.Vertices)
	local := make([]physics.Vec, n)
	base := a.Angle * math.Pi / 180
	for i, dist := range a.Vertices {
		local[i] = physics.FromAngle(base+float64(i)*2*math.Pi/float64(n), dist)
	}
	drawShape(ctx, a.Pos, a.Radius*1.3, local)
}
