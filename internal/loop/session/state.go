package session

import (
	"time"

	"github.com/tomz197/mrmissile/internal/input"
	"github.com/tomz197/mrmissile/internal/loop/match"
	"github.com/tomz197/mrmissile/internal/object"
	"github.com/tomz197/mrmissile/internal/progress"
)

// Screen is the screen a session is showing.
type Screen int

const (
	ScreenTitle        Screen = iota // Title menu
	ScreenLevelSelect                // 5×4 level grid
	ScreenPlaying                    // Active match
	ScreenPaused                     // Match frozen, pause menu
	ScreenGameOver                   // Player was hit
	ScreenVictory                    // Boss destroyed
	ScreenUpgrades                   // Upgrade shop
	ScreenSettings                   // Audio settings and progress reset
	ScreenHowTo                      // Controls and rules
	ScreenAchievements               // Achievement list
	ScreenShutdown                   // Server is shutting down
)

// Title menu entries.
const (
	titlePlay = iota
	titleHowTo
	titleUpgrades
	titleAchievements
	titleSettings
	titleQuit
	titleItemCount
)

var titleItems = [titleItemCount]string{"Play", "How to play", "Upgrades", "Achievements", "Settings", "Quit"}

// Settings menu entries.
const (
	settingSound = iota
	settingMaster
	settingMusic
	settingSFX
	settingReset
	settingBack
	settingItemCount
)

// Pause menu entries.
const (
	pauseResume = iota
	pauseRestart
	pauseMenu
	pauseItemCount
)

// Level grid layout.
const (
	gridColumns = 5
	gridRows    = 4
)

// State holds everything a single session shows and navigates.
type State struct {
	Input   input.Input
	Screen  Screen
	Running bool
	Record  progress.Record
	Match   *match.Match

	cursor     int // Menu cursor on the current screen
	level      int // Selected level on the level grid
	resetArmed bool
	unlocked   []progress.Achievement // Unlocked by the last won match

	notice      string  // Transient message line
	noticeTimer float64 // Seconds the notice stays up

	backdrop  *object.Boss // Idle boss circling behind the menus
	menuShake match.Shake
	menuTime  float64 // Simulated ms for menu animation

	prevScreen    Screen
	shutdownTimer float64 // Countdown before auto-disconnect on shutdown
	isInactive    bool
	wasInactive   bool
	delta         time.Duration // Wall-clock frame time
	dt            float64       // Frame time in ticks
}

// NewState creates a state on the title screen.
func NewState(record progress.Record) *State {
	return &State{
		Screen:  ScreenTitle,
		Running: true,
		Record:  record,
		level:   max(1, record.MaxUnlockedLevel),
	}
}

// levelAt returns the level shown at a grid cell.
func levelAt(col, row int) int {
	return row*gridColumns + col + 1
}
