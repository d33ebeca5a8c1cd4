// Package store persists the high score and player settings as JSON files.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/tomz197/asteroids-arcade/internal/audio"
	"github.com/tomz197/asteroids-arcade/internal/input"
)

const (
	highScoreFile = "highscore.json"
	settingsFile  = "settings.json"
)

// AudioSettings are the persisted mixer levels.
type AudioSettings struct {
	Master float64 `json:"master"`
	Music  float64 `json:"music"`
	SFX    float64 `json:"sfx"`
}

// Settings is the persisted settings document.
type Settings struct {
	Audio    AudioSettings     `json:"audio"`
	Controls map[string]string `json:"controls"`
}

// DefaultSettings returns the stock settings.
func DefaultSettings() Settings {
	v := audio.DefaultVolumes()
	return Settings{
		Audio:    AudioSettings{Master: v.Master, Music: v.Music, SFX: v.SFX},
		Controls: input.DefaultBindings().Names(),
	}
}

// Volumes converts the audio section for the player.
func (s Settings) Volumes() audio.Volumes {
	return audio.Volumes{Master: s.Audio.Master, Music: s.Audio.Music, SFX: s.Audio.SFX}.Clamped()
}

// Bindings converts the controls section, filling gaps with defaults.
func (s Settings) Bindings() input.Bindings {
	return input.BindingsFromNames(s.Controls)
}

// Clone returns a deep copy.
func (s Settings) Clone() Settings {
	c := s
	c.Controls = make(map[string]string, len(s.Controls))
	for k, v := range s.Controls {
		c.Controls[k] = v
	}
	return c
}

// File stores both documents in one directory. It is safe for concurrent
// use by several game sessions.
type File struct {
	mu     sync.Mutex
	dir    string
	logger *log.Logger
}

// NewFile returns a store rooted at dir. The directory is created on first
// save. Unreadable documents are reported to logger and replaced by defaults.
func NewFile(dir string, logger *log.Logger) *File {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &File{dir: dir, logger: logger}
}

// Dir returns the storage directory.
func (f *File) Dir() string {
	return f.dir
}

type highScoreDoc struct {
	HighScore int `json:"high_score"`
}

// LoadHighScore returns the stored high score, or 0 when the file is missing,
// unreadable or malformed.
func (f *File) LoadHighScore() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loadHighScoreLocked()
}

func (f *File) loadHighScoreLocked() int {
	var doc highScoreDoc
	if err := f.readJSON(highScoreFile, &doc); err != nil {
		return 0
	}
	if doc.HighScore < 0 {
		return 0
	}
	return doc.HighScore
}

// SaveHighScore records score if it beats the stored value. A lower score is
// not an error; the stored value simply stays.
func (f *File) SaveHighScore(score int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if score <= f.loadHighScoreLocked() {
		return nil
	}
	return f.writeJSON(highScoreFile, highScoreDoc{HighScore: score})
}

// LoadSettings returns the stored settings merged over the defaults.
// A missing or corrupt file yields the defaults.
func (f *File) LoadSettings() Settings {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := DefaultSettings()
	var raw struct {
		Audio    map[string]float64 `json:"audio"`
		Controls map[string]string  `json:"controls"`
	}
	if err := f.readJSON(settingsFile, &raw); err != nil {
		return out
	}
	if v, ok := raw.Audio["master"]; ok {
		out.Audio.Master = v
	}
	if v, ok := raw.Audio["music"]; ok {
		out.Audio.Music = v
	}
	if v, ok := raw.Audio["sfx"]; ok {
		out.Audio.SFX = v
	}
	for k, v := range raw.Controls {
		if v != "" {
			out.Controls[k] = v
		}
	}
	return out
}

// SaveSettings writes s.
func (f *File) SaveSettings(s Settings) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.writeJSON(settingsFile, s)
}

func (f *File) readJSON(name string, v any) error {
	data, err := os.ReadFile(filepath.Join(f.dir, name))
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			f.logger.Warn("read failed, using defaults", "file", name, "err", err)
		}
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		f.logger.Warn("corrupt document, using defaults", "file", name, "err", err)
		return fmt.Errorf("decode %s: %w", name, err)
	}
	return nil
}

// writeJSON writes through a temp file and rename so a crash never leaves a
// truncated document behind.
func (f *File) writeJSON(name string, v any) error {
	if err := os.MkdirAll(f.dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	tmp, err := os.CreateTemp(f.dir, name+".*.tmp")
	if err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := os.Rename(tmp.Name(), filepath.Join(f.dir, name)); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}

// SessionStore gives one SSH session its own in-memory settings while
// sharing the high score file with every other session.
type SessionStore struct {
	shared   *File
	mu       sync.Mutex
	settings Settings
}

// NewSessionStore starts from the defaults.
func NewSessionStore(shared *File) *SessionStore {
	return &SessionStore{shared: shared, settings: DefaultSettings()}
}

func (s *SessionStore) LoadHighScore() int            { return s.shared.LoadHighScore() }
func (s *SessionStore) SaveHighScore(score int) error { return s.shared.SaveHighScore(score) }

func (s *SessionStore) LoadSettings() Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings.Clone()
}

func (s *SessionStore) SaveSettings(st Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = st.Clone()
	return nil
}
