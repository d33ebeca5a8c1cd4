package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// Engine synthesises effects and plays them through the system speaker.
type Engine struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volumes     Volumes
	heartbeat   *Heartbeat
	initialized bool
}

// NewEngine opens the audio device. On error the caller should fall back to Nop.
func NewEngine(v Volumes) (*Engine, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return nil, fmt.Errorf("init speaker: %w", err)
	}
	e := &Engine{
		mixer:       &beep.Mixer{},
		volumes:     v.Clamped(),
		heartbeat:   NewHeartbeat(),
		initialized: true,
	}
	speaker.Play(e.mixer)
	return e, nil
}

// Play queues s on the mixer. Muted layers are skipped entirely.
func (e *Engine) Play(s Sound) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.initialized {
		return
	}
	gain := e.volumes.For(s)
	if gain <= 0 {
		return
	}
	streamer := NewPatch(s, gain, sampleRate)
	speaker.Lock()
	e.mixer.Add(streamer)
	speaker.Unlock()
}

// Heartbeat ticks the background beat.
func (e *Engine) Heartbeat(dt float64, asteroids int) {
	e.mu.Lock()
	beat, due := e.heartbeat.Tick(dt, asteroids)
	e.mu.Unlock()
	if due {
		e.Play(beat)
	}
}

// SetVolumes applies new mixer levels to sounds started afterwards.
func (e *Engine) SetVolumes(v Volumes) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.volumes = v.Clamped()
}

// Close stops all sounds and releases the device.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.initialized {
		return nil
	}
	speaker.Lock()
	e.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	e.initialized = false
	return nil
}

var (
	_ Player = (*Engine)(nil)
	_ Player = Nop{}
)
