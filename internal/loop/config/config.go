// Package config centralizes all tunable game parameters.
package config

import "time"

// Field resolution - the simulation coordinate space in logical units.
// Actual rendering scales to fit terminal size.
const (
	FieldWidth  = 960 // Logical field width
	FieldHeight = 600 // Logical field height (rendered at 2 sub-pixels per terminal row)
)

// Terminal render limits. Larger terminals get a centered, bordered render area.
const (
	MaxTermWidth  = 160
	MaxTermHeight = 50
)

// Frame cadence. Simulation rates are expressed per tick at the nominal rate.
const (
	TargetFPS       = 60
	TargetFrameTime = time.Second / TargetFPS
	TickMillis      = 1000.0 / TargetFPS
	MaxDeltaTicks   = 2.0 // Clamp for frame-rate hitches
)

// Pool capacities
const (
	MaxBullets   = 500
	MaxParticles = 300
)

// Scoring
const (
	ScoreGraze      = 10
	ScoreLuckyDodge = 100
	ScoreBossHit    = 500
	ComboTimerTicks = 180
	ComboBonusStep  = 0.05 // Extra multiplier per combo step
	ComboBonusCap   = 50   // Combo beyond which the multiplier stops growing
	RewardBase      = 50
	RewardPerLevel  = 25
)

// Match rules
const (
	GrazeRadius               = 25.0
	VulnerabilityChance       = 0.002 // Per tick, while the boss is not vulnerable
	BossHitInvincibilityTicks = 60.0
	VictoryExplosions         = 30
	VictoryExplosionSpread    = 50.0
	PlayerStartYRatio         = 0.8
	BossStartY                = -100.0
	MaxLevel                  = 20
)

// Screen shake intensities
const (
	ShakeBossHit    = 15.0
	ShakeDeath      = 20.0
	ShakeCursor     = 2.0
	ShakeConfirm    = 5.0
	ShakeLevelStart = 8.0
	ShakeReset      = 10.0
)

// Lobby
const (
	LobbyTickTime      = 100 * time.Millisecond // Registration and leaderboard refresh cadence
	LeaderboardSize    = 10
	DefaultMaxSessions = 64
)

// Shutdown
const (
	ShutdownDisplaySeconds = 10.0 // Seconds to show shutdown message before auto-disconnect
)

// Inactivity
const (
	InactivityWarnUser       = 90  // Seconds
	InactivityDisconnectUser = 120 // Seconds
)
