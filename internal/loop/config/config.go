// Package config centralizes all tunable game parameters.
package config

import "time"

// World resolution in logical pixels. Rendering scales it to the terminal.
const (
	WorldWidth  = 1280
	WorldHeight = 720
)

// Max terminal render resolution. Larger terminals get a centered,
// bordered play area of this size.
const (
	MaxTermWidth  = 160
	MaxTermHeight = 45
)

// Frame pacing
const (
	TargetFPS = 60
	FrameTime = time.Second / TargetFPS
	MaxDelta  = 0.1 // Seconds; longer stalls are clamped
)

// Scoring
const (
	ScoreLargeAsteroid  = 20
	ScoreMediumAsteroid = 50
	ScoreSmallAsteroid  = 100
	ScoreLargeSaucer    = 200
	ScoreSmallSaucer    = 1000
)

// Player
const (
	MaxLives               = 5
	ExtraLifeThreshold     = 10000
	RespawnDelay           = 2.0 // Seconds
	WaveStartInvincibility = 2.0 // Seconds
)

// Waves
const (
	WaveAsteroidStart   = 4
	WaveAsteroidMax     = 12
	WaveTransitionDelay = 2.0 // Seconds
)

// Saucers
const (
	SaucerSpawnIntervalBase   = 15.0 // Seconds
	SaucerSpawnIntervalMin    = 10.0
	SaucerSpawnIntervalStep   = 1.0 // Shorter per wave
	SmallSaucerScoreThreshold = 40000
)

// Screens
const (
	PromptBlinkInterval = 0.6  // Seconds
	GameOverInputDelay  = 0.75 // Ignore keys right after dying (key repeat)
	VolumeStep          = 0.05
)

// Shutdown
const (
	ShutdownDisplaySeconds = 10.0 // Seconds to show shutdown message before auto-disconnect
)

// Inactivity (SSH sessions)
const (
	InactivityWarnUser       = 90 * time.Second
	InactivityDisconnectUser = 120 * time.Second
)
