package config

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
)

// NewLogger creates a structured logger writing to w. The level is read from
// LOG_LEVEL (debug, info, warn, error) and defaults to info.
func NewLogger(w io.Writer, prefix string) *log.Logger {
	level, err := log.ParseLevel(GetEnv("LOG_LEVEL", "info"))
	if err != nil {
		level = log.InfoLevel
	}
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		Prefix:          prefix,
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
	})
}

// OpenLogFile opens (or creates) path for appending log output.
// An empty path yields io.Discard so a full-screen game never logs over itself.
func OpenLogFile(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{io.Discard}, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// DataDir returns the directory holding the high score and settings files:
// ASTEROIDS_DATA_DIR if set, otherwise <user config dir>/asteroids.
func DataDir() string {
	if dir := GetEnv("ASTEROIDS_DATA_DIR", ""); dir != "" {
		return dir
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "."
	}
	return filepath.Join(base, "asteroids")
}
