// Package audio plays the game's synthesised sound effects and heartbeat.
package audio

import "math"

// Sound identifies one effect.
type Sound int

const (
	SoundFire Sound = iota
	SoundExplosionAsteroid
	SoundExplosionShip
	SoundExplosionSaucer
	SoundSaucerLarge
	SoundSaucerSmall
	SoundExtraLife
	SoundHyperspace
	SoundHeartbeatHi
	SoundHeartbeatLo
)

var soundNames = [...]string{
	SoundFire:              "fire",
	SoundExplosionAsteroid: "explosion_asteroid",
	SoundExplosionShip:     "explosion_ship",
	SoundExplosionSaucer:   "explosion_saucer",
	SoundSaucerLarge:       "saucer_large",
	SoundSaucerSmall:       "saucer_small",
	SoundExtraLife:         "extra_life",
	SoundHyperspace:        "hyperspace",
	SoundHeartbeatHi:       "heartbeat_hi",
	SoundHeartbeatLo:       "heartbeat_lo",
}

func (s Sound) String() string {
	if s >= 0 && int(s) < len(soundNames) {
		return soundNames[s]
	}
	return "unknown"
}

// IsMusic reports whether the sound belongs to the music layer (the heartbeat)
// rather than the effects layer.
func (s Sound) IsMusic() bool {
	return s == SoundHeartbeatHi || s == SoundHeartbeatLo
}

// Volumes are the three mixer levels, each in [0,1].
type Volumes struct {
	Master float64
	Music  float64
	SFX    float64
}

// DefaultVolumes returns the stock mix.
func DefaultVolumes() Volumes {
	return Volumes{Master: 0.8, Music: 0.6, SFX: 0.9}
}

// Clamped returns v with every level limited to [0,1].
func (v Volumes) Clamped() Volumes {
	return Volumes{Master: clamp01(v.Master), Music: clamp01(v.Music), SFX: clamp01(v.SFX)}
}

// For returns the effective gain of s.
func (v Volumes) For(s Sound) float64 {
	if s.IsMusic() {
		return v.Master * v.Music
	}
	return v.Master * v.SFX
}

func clamp01(f float64) float64 {
	if math.IsNaN(f) {
		return 0
	}
	return math.Max(0, math.Min(1, f))
}

// Player is what the game talks to. Implementations must never block the
// frame and must swallow device errors.
type Player interface {
	Play(s Sound)
	Heartbeat(dt float64, asteroids int)
	SetVolumes(v Volumes)
	Close() error
}

// Nop is a silent Player, used when no audio device is available and for
// SSH sessions.
type Nop struct{}

func (Nop) Play(Sound)             {}
func (Nop) Heartbeat(float64, int) {}
func (Nop) SetVolumes(Volumes)     {}
func (Nop) Close() error           { return nil }

// Heartbeat paces the alternating two-tone background beat. The beat speeds
// up as fewer asteroids remain.
type Heartbeat struct {
	interval float64
	timer    float64
	high     bool
}

// NewHeartbeat starts with a one second interval and a high beat first.
func NewHeartbeat() *Heartbeat {
	return &Heartbeat{interval: 1.0, high: true}
}

// TargetInterval is the beat spacing the heartbeat eases toward.
func TargetInterval(asteroids int) float64 {
	return math.Max(0.25, 1.0-float64(10-asteroids)*0.07)
}

// Interval returns the current beat spacing in seconds.
func (h *Heartbeat) Interval() float64 {
	return h.interval
}

// Tick advances by dt seconds and returns the beat to play, if one is due.
func (h *Heartbeat) Tick(dt float64, asteroids int) (Sound, bool) {
	h.interval += (TargetInterval(asteroids) - h.interval) * dt * 2

	h.timer -= dt
	if h.timer > 0 {
		return 0, false
	}
	h.timer = h.interval
	beat := SoundHeartbeatLo
	if h.high {
		beat = SoundHeartbeatHi
	}
	h.high = !h.high
	return beat, true
}
