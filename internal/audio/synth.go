package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator generates a raw wave, optionally sweeping its frequency.
type oscillator struct {
	freq     float64
	endFreq  float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// NewOscillator creates a fixed-frequency oscillator.
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return NewSweep(freq, freq, duration, wave, rate)
}

// NewSweep creates an oscillator gliding linearly from freq to endFreq.
func NewSweep(freq, endFreq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		endFreq:  endFreq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		case WaveNoise:
			val = rand.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		t := float64(o.position) / float64(o.duration)
		freq := o.freq + (o.endFreq-o.freq)*t
		o.phase += freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies attack/release shaping to a stream
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	sustainSamples int
	totalSamples   int
}

// NewEnvelope wraps s with a linear attack and release.
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	att := rate.N(attack)
	rel := rate.N(release)
	sus := max(total-att-rel, 0)

	return &envelope{
		streamer:       s,
		attackSamples:  att,
		releaseSamples: rel,
		sustainSamples: sus,
		totalSamples:   total,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}

		vol := 1.0
		if e.position < e.attackSamples && e.attackSamples > 0 {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		releaseStart := e.attackSamples + e.sustainSamples
		if e.position >= releaseStart && e.releaseSamples > 0 {
			vol = math.Max(0, float64(e.totalSamples-e.position)/float64(e.releaseSamples))
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}

	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume wraps s with a linear gain. math.Log2(0) is -Inf, so zero gain
// becomes a silent stream.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// tone is one layer of a patch.
type tone struct {
	wave     WaveType
	freq     float64
	endFreq  float64
	duration time.Duration
	attack   time.Duration
	release  time.Duration
	gain     float64
}

// patches describes every effect as a few enveloped oscillators.
var patches = map[Sound][]tone{
	SoundFire: {
		{WaveSquare, 1200, 400, 90 * time.Millisecond, 2 * time.Millisecond, 60 * time.Millisecond, 0.25},
	},
	SoundExplosionAsteroid: {
		{WaveNoise, 0, 0, 280 * time.Millisecond, 2 * time.Millisecond, 240 * time.Millisecond, 0.5},
		{WaveSine, 90, 50, 280 * time.Millisecond, 2 * time.Millisecond, 240 * time.Millisecond, 0.4},
	},
	SoundExplosionShip: {
		{WaveNoise, 0, 0, 700 * time.Millisecond, 5 * time.Millisecond, 600 * time.Millisecond, 0.6},
		{WaveSaw, 70, 30, 700 * time.Millisecond, 5 * time.Millisecond, 600 * time.Millisecond, 0.3},
	},
	SoundExplosionSaucer: {
		{WaveNoise, 0, 0, 450 * time.Millisecond, 2 * time.Millisecond, 380 * time.Millisecond, 0.5},
		{WaveSquare, 240, 60, 450 * time.Millisecond, 2 * time.Millisecond, 380 * time.Millisecond, 0.2},
	},
	SoundSaucerLarge: {
		{WaveSquare, 160, 200, 220 * time.Millisecond, 10 * time.Millisecond, 60 * time.Millisecond, 0.2},
	},
	SoundSaucerSmall: {
		{WaveSquare, 320, 420, 160 * time.Millisecond, 10 * time.Millisecond, 50 * time.Millisecond, 0.2},
	},
	SoundExtraLife: {
		{WaveSine, 1320, 1320, 320 * time.Millisecond, 5 * time.Millisecond, 200 * time.Millisecond, 0.5},
		{WaveSine, 1760, 1760, 320 * time.Millisecond, 5 * time.Millisecond, 250 * time.Millisecond, 0.3},
	},
	SoundHyperspace: {
		{WaveSine, 200, 1400, 300 * time.Millisecond, 10 * time.Millisecond, 120 * time.Millisecond, 0.4},
	},
	SoundHeartbeatHi: {
		{WaveSine, 110, 90, 100 * time.Millisecond, 3 * time.Millisecond, 80 * time.Millisecond, 0.8},
	},
	SoundHeartbeatLo: {
		{WaveSine, 82, 65, 100 * time.Millisecond, 3 * time.Millisecond, 80 * time.Millisecond, 0.8},
	},
}

// NewPatch builds the streamer for s at the given gain.
func NewPatch(s Sound, gain float64, rate beep.SampleRate) beep.Streamer {
	layers := patches[s]
	if len(layers) == 0 {
		return beep.Silence(0)
	}
	streams := make([]beep.Streamer, 0, len(layers))
	for _, l := range layers {
		osc := NewSweep(l.freq, l.endFreq, l.duration, l.wave, rate)
		shaped := NewEnvelope(osc, l.duration, l.attack, l.release, rate)
		streams = append(streams, newVolume(shaped, l.gain))
	}
	return newVolume(beep.Mix(streams...), gain)
}
