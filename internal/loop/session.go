package loop

import "github.com/tomz197/asteroids-arcade/internal/loop/config"

// Session is the score bookkeeping of one game.
type Session struct {
	Score     int
	Lives     int
	Wave      int
	HighScore int

	nextExtraLife int
}

// NewSession creates a session ready to play with the given stored high score.
func NewSession(highScore int) Session {
	s := Session{HighScore: highScore}
	s.Reset()
	return s
}

// Reset starts a new game, keeping the high score.
func (s *Session) Reset() {
	s.Score = 0
	s.Lives = config.MaxLives
	s.Wave = 1
	s.nextExtraLife = config.ExtraLifeThreshold
}

// AddScore adds points and grants an extra life (capped at MaxLives) for each
// extra-life threshold crossed. It reports whether a threshold was crossed.
func (s *Session) AddScore(points int) (extraLife bool) {
	if points <= 0 {
		return false
	}
	s.Score += points
	for s.Score >= s.nextExtraLife {
		s.Lives = min(s.Lives+1, config.MaxLives)
		s.nextExtraLife += config.ExtraLifeThreshold
		extraLife = true
	}
	return extraLife
}

// LoseLife removes one life and returns how many are left.
func (s *Session) LoseLife() int {
	if s.Lives > 0 {
		s.Lives--
	}
	return s.Lives
}

// RecordHighScore raises HighScore to Score when beaten. It reports whether
// the score is a new record.
func (s *Session) RecordHighScore() bool {
	if s.Score > s.HighScore {
		s.HighScore = s.Score
		return true
	}
	return false
}

// NextExtraLife returns the score at which the next life is granted.
func (s *Session) NextExtraLife() int {
	return s.nextExtraLife
}
