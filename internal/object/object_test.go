package object

import (
	"math"
	"testing"
	"time"

	"github.com/tomz197/asteroids-arcade/internal/physics"
)

var testWorld = NewScreen(1280, 720)

func frame(dt float64) UpdateContext {
	return UpdateContext{
		Delta: time.Duration(dt * float64(time.Second)),
		World: testWorld,
	}
}

func approx(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

func TestWrapCopies(t *testing.T) {
	tests := []struct {
		name  string
		pos   physics.Vec
		count int
	}{
		{"center", physics.Vec{X: 640, Y: 360}, 1},
		{"left edge", physics.Vec{X: 5, Y: 360}, 2},
		{"corner", physics.Vec{X: 5, Y: 5}, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WrapCopies(tt.pos, 10, testWorld)
			if got.Count != tt.count {
				t.Errorf("WrapCopies(%v) count = %d, want %d", tt.pos, got.Count, tt.count)
			}
		})
	}
}

func TestShipDragAndCap(t *testing.T) {
	s := NewShip(testWorld.Center())
	s.Vel = physics.Vec{X: 100}
	s.Update(frame(1.0 / 60))
	if !approx(s.Vel.X, 98, 1e-4) {
		t.Errorf("vel after one frame = %v, want 98", s.Vel.X)
	}

	s.Vel = physics.Vec{X: 5000}
	s.Update(frame(1.0 / 60))
	if got := s.Vel.Len(); got > ShipMaxSpeed+1e-9 {
		t.Errorf("speed = %v, want <= %v", got, ShipMaxSpeed)
	}
}

func TestShipThrustAndTurn(t *testing.T) {
	s := NewShip(testWorld.Center())
	s.ApplyInput(Intents{Thrust: true}, 0.5)
	if !approx(s.Vel.Y, -ShipThrust*0.5, 1e-9) || !approx(s.Vel.X, 0, 1e-9) {
		t.Errorf("thrust facing up gave vel %v", s.Vel)
	}
	s.ApplyInput(Intents{TurnRight: true}, 1.0/3)
	if !approx(s.Angle, 90, 1e-9) {
		t.Errorf("angle = %v, want 90", s.Angle)
	}
}

func TestShipInvincibilityBlink(t *testing.T) {
	s := NewShip(testWorld.Center())
	if !s.Invincible || s.InvincibleTimer != ShipInvincibility {
		t.Fatalf("new ship should be invincible for %vs", ShipInvincibility)
	}

	toggles := 0
	prev := s.Visible()
	for i := 0; i < 60; i++ {
		s.Update(frame(1.0 / 60))
		if v := s.Visible(); v != prev {
			toggles++
			prev = v
		}
	}
	if toggles < 10 {
		t.Errorf("ship toggled visibility %d times in 1s, want about 12", toggles)
	}

	for i := 0; i < 150; i++ {
		s.Update(frame(1.0 / 60))
	}
	if s.Invincible || !s.Visible() {
		t.Errorf("invincibility should have ended and ship be visible")
	}
	if s.InvincibleTimer != 0 {
		t.Errorf("timer = %v, want 0", s.InvincibleTimer)
	}
}

func TestHyperspaceDeathRate(t *testing.T) {
	const trials = 12000
	deaths := 0
	for i := 0; i < trials; i++ {
		s := NewShip(testWorld.Center())
		s.Vel = physics.Vec{X: 50, Y: 50}
		if !s.Hyperspace(testWorld) {
			deaths++
			if s.Alive {
				t.Fatal("ship reported death but is alive")
			}
			continue
		}
		if s.Vel != (physics.Vec{}) {
			t.Fatalf("velocity after jump = %v, want zero", s.Vel)
		}
		if s.Pos.X < 0 || s.Pos.X >= 1280 || s.Pos.Y < 0 || s.Pos.Y >= 720 {
			t.Fatalf("jumped outside the world: %v", s.Pos)
		}
	}
	rate := float64(deaths) / trials
	if rate < 0.14 || rate > 0.195 {
		t.Errorf("death rate = %.3f, want about 1/6", rate)
	}
}

func TestHyperspaceCooldown(t *testing.T) {
	s := NewShip(testWorld.Center())
	for !s.Hyperspace(testWorld) {
		s.Respawn(testWorld.Center())
	}
	pos := s.Pos
	if s.CanHyperspace() {
		t.Fatal("cooldown should be active")
	}
	if !s.Hyperspace(testWorld) || s.Pos != pos {
		t.Error("jump during cooldown should be a surviving no-op")
	}
	for i := 0; i < 121; i++ {
		s.Update(frame(1.0 / 60))
	}
	if !s.CanHyperspace() {
		t.Error("cooldown should have elapsed")
	}
}

func TestBulletInheritance(t *testing.T) {
	inherited := physics.Vec{X: 100, Y: 0}

	p := NewBullet(physics.Vec{}, 0, inherited, true)
	if !approx(p.Vel.X, 100, 1e-9) || !approx(p.Vel.Y, -BulletSpeed, 1e-9) {
		t.Errorf("player bullet vel = %v", p.Vel)
	}

	e := NewBullet(physics.Vec{}, 0, inherited, false)
	if !approx(e.Vel.X, 0, 1e-9) {
		t.Errorf("saucer bullet inherited velocity: %v", e.Vel)
	}
}

func TestBulletExpires(t *testing.T) {
	b := NewBullet(physics.Vec{X: 1275, Y: 360}, 90, physics.Vec{}, true)
	if b.Update(frame(0.5)) {
		t.Fatal("bullet expired early")
	}
	if b.Pos.X < 0 || b.Pos.X >= 1280 {
		t.Errorf("bullet not wrapped: %v", b.Pos)
	}
	if !b.Update(frame(0.5)) || !b.Expired() {
		t.Error("bullet should expire after its lifetime")
	}
}

func TestAsteroidSizes(t *testing.T) {
	tests := []struct {
		size   AsteroidSize
		radius float64
		child  AsteroidSize
		splits bool
	}{
		{AsteroidLarge, 50, AsteroidMedium, true},
		{AsteroidMedium, 25, AsteroidSmall, true},
		{AsteroidSmall, 12, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.size.String(), func(t *testing.T) {
			if got := tt.size.Radius(); got != tt.radius {
				t.Errorf("Radius() = %v, want %v", got, tt.radius)
			}
			child, ok := tt.size.Child()
			if ok != tt.splits || child != tt.child {
				t.Errorf("Child() = %v,%v want %v,%v", child, ok, tt.child, tt.splits)
			}
		})
	}
}

func TestAsteroidSplit(t *testing.T) {
	parent := NewAsteroid(physics.Vec{X: 300, Y: 200}, physics.Vec{}, AsteroidLarge)
	children := parent.Split()
	if len(children) != 2 {
		t.Fatalf("large split into %d, want 2", len(children))
	}
	lo, hi := AsteroidMedium.SpeedRange()
	for _, c := range children {
		if c.Size != AsteroidMedium {
			t.Errorf("child size = %v", c.Size)
		}
		if c.Pos != parent.Pos {
			t.Errorf("child pos = %v, want %v", c.Pos, parent.Pos)
		}
		if s := c.Vel.Len(); s < lo-1e-9 || s > hi+1e-9 {
			t.Errorf("child speed %v outside [%v,%v]", s, lo, hi)
		}
	}

	small := NewAsteroid(physics.Vec{}, physics.Vec{}, AsteroidSmall)
	if got := small.Split(); got != nil {
		t.Errorf("small split = %v, want nil", got)
	}
}

func TestAsteroidOutline(t *testing.T) {
	a := NewAsteroid(physics.Vec{}, physics.Vec{}, AsteroidLarge)
	if n := len(a.Vertices); n < 8 || n > 12 {
		t.Errorf("vertex count = %d", n)
	}
	for _, d := range a.Vertices {
		if d < 35-1e-9 || d > 65+1e-9 {
			t.Errorf("vertex distance %v outside ±30%%", d)
		}
	}
	if a.RotationSpeed < -60 || a.RotationSpeed > 60 {
		t.Errorf("rotation speed = %v", a.RotationSpeed)
	}
}

func TestSpawnLargeKeepsDistance(t *testing.T) {
	ship := testWorld.Center()
	for i := 0; i < 200; i++ {
		a := SpawnLarge(ship, testWorld)
		if physics.Distance(a.Pos, ship) < AsteroidSpawnSafeRadius {
			t.Fatalf("spawned %v too close to ship", a.Pos)
		}
		if a.Size != AsteroidLarge {
			t.Fatalf("size = %v", a.Size)
		}
	}
}

func TestEdgePositionFallback(t *testing.T) {
	tiny := NewScreen(10, 10)
	got := EdgePosition(physics.Vec{X: 5, Y: 5}, tiny)
	if got != (physics.Vec{}) {
		t.Errorf("fallback = %v, want (0,0)", got)
	}
}

func TestSaucerSpawnAndExpiry(t *testing.T) {
	for i := 0; i < 50; i++ {
		s := NewSaucer(i%2 == 0, testWorld)
		if s.Pos.Y < 144 || s.Pos.Y > 576 {
			t.Fatalf("spawn height %v outside central band", s.Pos.Y)
		}
		if (s.Pos.X == 0) != (s.Vel.X > 0) {
			t.Fatalf("saucer at x=%v moving %v does not head inward", s.Pos.X, s.Vel.X)
		}
	}

	s := NewSaucer(true, testWorld)
	s.Pos.X = 1280 + s.Radius*2 - 1
	s.Vel = physics.Vec{X: SaucerLargeSpeed}
	if !s.Update(frame(0.1)) || !s.Expired {
		t.Error("saucer beyond the right edge should expire")
	}
}

func TestSaucerWrapsVertically(t *testing.T) {
	s := NewSaucer(false, testWorld)
	s.Pos = physics.Vec{X: 640, Y: 719}
	s.Vel = physics.Vec{Y: 100}
	s.Update(frame(0.1))
	if s.Pos.Y >= 720 || s.Pos.Y < 0 {
		t.Errorf("y = %v, want wrapped", s.Pos.Y)
	}
}

func TestSaucerFireFlagLastsOneFrame(t *testing.T) {
	s := NewSaucer(false, testWorld)
	s.Pos = testWorld.Center()
	fired := 0
	for i := 0; i < 61; i++ {
		s.Update(frame(1.0 / 60))
		if s.WantsToFire() {
			fired++
		}
	}
	if fired != 1 {
		t.Errorf("fired %d times in ~1s, want 1", fired)
	}
}

func TestSmallSaucerAims(t *testing.T) {
	s := NewSaucer(false, testWorld)
	s.Pos = physics.Vec{X: 100, Y: 100}
	ship := ShipView{Pos: physics.Vec{X: 100, Y: 400}, Alive: true}
	want := AimHeading(s.Pos, ship.Pos)
	if !approx(want, 180, 1e-9) {
		t.Fatalf("AimHeading straight down = %v, want 180", want)
	}
	for i := 0; i < 100; i++ {
		b := s.CreateBullet(ship)
		if b.Player {
			t.Fatal("saucer bullet flagged as player bullet")
		}
		got := math.Atan2(b.Vel.X, -b.Vel.Y) * 180 / math.Pi
		diff := math.Mod(got-want+540, 360) - 180
		if math.Abs(diff) > SaucerAimSpread+1e-6 {
			t.Fatalf("aim error %v exceeds spread", diff)
		}
	}
}

func TestParticleLifecycle(t *testing.T) {
	parts := NewExplosion(physics.Vec{X: 10, Y: 10}, ExplosionParticles)
	if len(parts) != 12 {
		t.Fatalf("explosion has %d particles", len(parts))
	}
	p := parts[0]
	speed := p.Vel.Len()
	if speed < 60 || speed > 220 {
		t.Errorf("speed = %v", speed)
	}
	p.Update(frame(1.0 / 60))
	if !approx(p.Vel.Len(), speed*0.95, 1e-6) {
		t.Errorf("drag: speed %v, want %v", p.Vel.Len(), speed*0.95)
	}
	if p.Fraction() >= 1 {
		t.Errorf("fraction did not decrease")
	}

	removed := false
	for i := 0; i < 100 && !removed; i++ {
		removed = p.Update(frame(1.0 / 60))
	}
	if !removed {
		t.Error("particle never expired")
	}
	for _, q := range parts {
		ReleaseObject(q)
	}
}
