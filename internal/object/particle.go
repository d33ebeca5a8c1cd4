package object

import (
	"math"
	"math/rand"
	"sync"

	"github.com/tomz197/asteroids-arcade/internal/draw"
	"github.com/tomz197/asteroids-arcade/internal/physics"
)

// Particle tuning.
const (
	ExplosionParticles = 12
	particleMinSpeed   = 60.0
	particleMaxSpeed   = 220.0
	particleMinLife    = 0.4
	particleMaxLife    = 1.2
	particleMinLength  = 4.0
	particleMaxLength  = 12.0
	particleDrag       = 0.95 // Velocity factor per 1/60 s
	particleFadeCutoff = 0.25 // Terminal cells cannot dim; hide the last quarter instead
)

// particlePool is a sync.Pool for reusing Particle objects to reduce allocations.
var particlePool = sync.Pool{
	New: func() any {
		return &Particle{}
	},
}

// Particle is a short-lived line segment flying out of an explosion.
type Particle struct {
	Pos         physics.Vec
	Vel         physics.Vec
	End         physics.Vec // Segment end, relative to Pos
	Lifetime    float64     // Seconds remaining
	MaxLifetime float64     // Initial lifetime (for fade calculation)
}

// NewParticle takes a particle from the pool and launches it from pos in a
// random direction.
func NewParticle(pos physics.Vec) *Particle {
	p := particlePool.Get().(*Particle)
	angle := rand.Float64() * 2 * math.Pi
	p.Pos = pos
	p.Vel = physics.FromAngle(angle, randRange(particleMinSpeed, particleMaxSpeed))
	p.End = physics.FromAngle(angle, randRange(particleMinLength, particleMaxLength))
	p.Lifetime = randRange(particleMinLife, particleMaxLife)
	p.MaxLifetime = p.Lifetime
	return p
}

// NewExplosion creates count particles at pos.
func NewExplosion(pos physics.Vec, count int) []*Particle {
	out := make([]*Particle, count)
	for i := range out {
		out[i] = NewParticle(pos)
	}
	return out
}

// Release returns the particle to the pool for reuse.
// Should be called when the particle is removed from the game.
func (p *Particle) Release() {
	particlePool.Put(p)
}

// Fraction returns the remaining share of the particle's lifetime.
func (p *Particle) Fraction() float64 {
	if p.MaxLifetime <= 0 {
		return 0
	}
	return math.Max(0, p.Lifetime/p.MaxLifetime)
}

// Update moves the particle and checks lifetime.
func (p *Particle) Update(ctx UpdateContext) bool {
	dt := ctx.Delta.Seconds()

	p.Pos = ctx.World.Wrap(p.Pos.Add(p.Vel.Scale(dt)))
	p.Vel = p.Vel.Scale(math.Pow(particleDrag, dt*60))

	p.Lifetime -= dt
	return p.Lifetime <= 0
}

// Draw renders the particle as a short line, hidden once mostly faded.
func (p *Particle) Draw(ctx DrawContext) {
	if p.Fraction() < particleFadeCutoff {
		return
	}
	end := p.Pos.Add(p.End)
	ctx.Canvas.DrawLine(draw.Point{X: p.Pos.X, Y: p.Pos.Y}, draw.Point{X: end.X, Y: end.Y})
}
