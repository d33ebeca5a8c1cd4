package loop

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/tomz197/asteroids-arcade/internal/audio"
	"github.com/tomz197/asteroids-arcade/internal/input"
	"github.com/tomz197/asteroids-arcade/internal/store"
)

type fakeAudio struct {
	played     []audio.Sound
	heartbeats int
	volumes    audio.Volumes
}

func (f *fakeAudio) Play(s audio.Sound)          { f.played = append(f.played, s) }
func (f *fakeAudio) Heartbeat(dt float64, n int) { f.heartbeats++ }
func (f *fakeAudio) SetVolumes(v audio.Volumes)  { f.volumes = v }
func (f *fakeAudio) Close() error                { return nil }
func (f *fakeAudio) count(s audio.Sound) (n int) {
	for _, p := range f.played {
		if p == s {
			n++
		}
	}
	return n
}

var _ audio.Player = (*fakeAudio)(nil)

type memStore struct {
	mu           sync.Mutex
	high         int
	highSaves    int
	settings     store.Settings
	settingSaves int
	failSave     bool
}

func newMemStore() *memStore {
	return &memStore{settings: store.DefaultSettings()}
}

func (m *memStore) LoadHighScore() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.high
}

func (m *memStore) SaveHighScore(score int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failSave {
		return errors.New("disk full")
	}
	m.highSaves++
	m.high = max(m.high, score)
	return nil
}

func (m *memStore) LoadSettings() store.Settings {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.settings.Clone()
}

func (m *memStore) SaveSettings(s store.Settings) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failSave {
		return errors.New("disk full")
	}
	m.settingSaves++
	m.settings = s.Clone()
	return nil
}

var _ Store = (*memStore)(nil)

// newTestGame returns a game on the title screen.
func newTestGame() (*Game, *fakeAudio, *memStore) {
	a := &fakeAudio{}
	st := newMemStore()
	return NewGame(st, a, nil), a, st
}

// startedGame returns a game in PLAYING/ACTIVE.
func startedGame() (*Game, *fakeAudio, *memStore) {
	g, a, st := newTestGame()
	g.Update(0, input.Intents{Confirm: true})
	return g, a, st
}

// step advances the game n frames of dt with no input.
func step(g *Game, n int, dt float64) {
	for i := 0; i < n; i++ {
		g.Update(dt, input.Intents{})
	}
}

// keys builds intents carrying raw keys, the way the tracker reports them.
func keys(ks ...input.Key) input.Intents {
	return input.Intents{Keys: ks}
}

// recordSurface captures what the game writes.
type recordSurface struct {
	mu      sync.Mutex
	cells   map[[2]int]rune
	text    []string
	clears  int
	flushes int
}

func newRecordSurface() *recordSurface {
	return &recordSurface{cells: make(map[[2]int]rune)}
}

func (r *recordSurface) SetOffset(col, row int) {}

func (r *recordSurface) SetCell(col, row int, ch rune) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cells[[2]int{col, row}] = ch
}

func (r *recordSurface) WriteAt(col, row int, s string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.text = append(r.text, s)
}

func (r *recordSurface) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clears++
}

func (r *recordSurface) Flush() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.flushes++
	return nil
}

func (r *recordSurface) reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.text = nil
}

func (r *recordSurface) contains(sub string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.text {
		if strings.Contains(t, sub) {
			return true
		}
	}
	return false
}

// scriptSource replays one batch of keys per Poll and then reports closed.
type scriptSource struct {
	mu      sync.Mutex
	batches [][]input.Key
	open    bool // keep returning empty batches instead of closing
}

func (s *scriptSource) Poll() ([]input.Key, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.batches) == 0 {
		return nil, s.open
	}
	b := s.batches[0]
	s.batches = s.batches[1:]
	return b, true
}

func fixedSize(w, h int) func() (int, int, error) {
	return func() (int, int, error) { return w, h, nil }
}

const testTimeout = 2 * time.Second
