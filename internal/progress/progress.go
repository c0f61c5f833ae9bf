// Package progress holds the player's persistent progression: money,
// unlocked levels, upgrades, stats, achievements and audio settings.
package progress

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"time"
)

// Progression limits.
const (
	MaxLevel        = 20
	MaxUpgradeLevel = 5
	BaseUpgradeCost = 100
)

var (
	ErrMaxLevel          = errors.New("progress: upgrade already at max level")
	ErrInsufficientFunds = errors.New("progress: not enough money")
	ErrUnknownUpgrade    = errors.New("progress: unknown upgrade")
	ErrInvalidRecord     = errors.New("progress: invalid record")
)

// Upgrade identifies one of the purchasable upgrade tracks.
type Upgrade int

const (
	UpgradeSpeed Upgrade = iota
	UpgradeBulletSlow
	UpgradeLuckyDodge
	UpgradeAttackWindow
	UpgradeCount
)

var upgradeNames = [UpgradeCount]string{"Speed", "Bullet Slow", "Lucky Dodge", "Attack Window"}

var upgradeDescriptions = [UpgradeCount]string{
	"+15% max speed per level",
	"-10% bullet speed per level",
	"+5% chance to dodge a hit per level",
	"+1s vulnerability window per level",
}

// String returns the display name.
func (u Upgrade) String() string {
	if u < 0 || u >= UpgradeCount {
		return "Unknown"
	}
	return upgradeNames[u]
}

// Description returns the per-level effect.
func (u Upgrade) Description() string {
	if u < 0 || u >= UpgradeCount {
		return ""
	}
	return upgradeDescriptions[u]
}

// Upgrades are the purchased level of each track, 0 to MaxUpgradeLevel.
type Upgrades struct {
	Speed        int `yaml:"speed"`
	BulletSlow   int `yaml:"bullet_slow"`
	LuckyDodge   int `yaml:"lucky_dodge"`
	AttackWindow int `yaml:"attack_window"`
}

func (u *Upgrades) slot(up Upgrade) *int {
	switch up {
	case UpgradeSpeed:
		return &u.Speed
	case UpgradeBulletSlow:
		return &u.BulletSlow
	case UpgradeLuckyDodge:
		return &u.LuckyDodge
	case UpgradeAttackWindow:
		return &u.AttackWindow
	}
	return nil
}

// Stats are lifetime aggregates.
type Stats struct {
	TotalDeaths     int     `yaml:"total_deaths"`
	BossesDefeated  int     `yaml:"bosses_defeated"`
	TotalEarned     int     `yaml:"total_earned"`
	BestScore       int     `yaml:"best_score"`
	PlayTimeSeconds float64 `yaml:"play_time_seconds"`
	PerfectBosses   int     `yaml:"perfect_bosses"`
	FlawlessStreak  int     `yaml:"flawless_streak"`
}

// Settings are the audio preferences.
type Settings struct {
	Sound        bool    `yaml:"sound"`
	MasterVolume float64 `yaml:"master_volume"`
	MusicVolume  float64 `yaml:"music_volume"`
	SFXVolume    float64 `yaml:"sfx_volume"`
}

// DefaultSettings returns sound on at the default volumes.
func DefaultSettings() Settings {
	return Settings{Sound: true, MasterVolume: 0.7, MusicVolume: 0.5, SFXVolume: 0.8}
}

// Record is the whole persisted progression.
type Record struct {
	Money            int          `yaml:"money"`
	MaxUnlockedLevel int          `yaml:"max_unlocked_level"`
	Defeated         map[int]bool `yaml:"defeated,omitempty"`
	Upgrades         Upgrades     `yaml:"upgrades"`
	Stats            Stats        `yaml:"stats"`
	Settings         Settings     `yaml:"settings"`
	Achievements     []string     `yaml:"achievements,omitempty"` // Unlocked achievement IDs
}

// Default returns a fresh record: level 1 unlocked, nothing bought.
func Default() Record {
	return Record{
		MaxUnlockedLevel: 1,
		Defeated:         map[int]bool{},
		Settings:         DefaultSettings(),
	}
}

// Clone returns a deep copy safe to hand to another goroutine.
func (r Record) Clone() Record {
	r.Defeated = maps.Clone(r.Defeated)
	r.Achievements = slices.Clone(r.Achievements)
	if r.Defeated == nil {
		r.Defeated = map[int]bool{}
	}
	return r
}

// Validate reports whether every field is within its allowed range.
func (r *Record) Validate() error {
	if r.Money < 0 {
		return fmt.Errorf("%w: negative money %d", ErrInvalidRecord, r.Money)
	}
	if r.MaxUnlockedLevel < 1 || r.MaxUnlockedLevel > MaxLevel {
		return fmt.Errorf("%w: unlocked level %d", ErrInvalidRecord, r.MaxUnlockedLevel)
	}
	for level := range r.Defeated {
		if level < 1 || level > MaxLevel {
			return fmt.Errorf("%w: defeated level %d", ErrInvalidRecord, level)
		}
	}
	for up := range UpgradeCount {
		if l := r.UpgradeLevel(up); l < 0 || l > MaxUpgradeLevel {
			return fmt.Errorf("%w: %s level %d", ErrInvalidRecord, up, l)
		}
	}
	for _, id := range r.Achievements {
		if !knownAchievement(id) {
			return fmt.Errorf("%w: unknown achievement %q", ErrInvalidRecord, id)
		}
	}
	for _, v := range []float64{r.Settings.MasterVolume, r.Settings.MusicVolume, r.Settings.SFXVolume} {
		if v < 0 || v > 1 {
			return fmt.Errorf("%w: volume %v", ErrInvalidRecord, v)
		}
	}
	return nil
}

// UpgradeLevel returns the purchased level of up.
func (r *Record) UpgradeLevel(up Upgrade) int {
	if p := r.Upgrades.slot(up); p != nil {
		return *p
	}
	return 0
}

// UpgradeCost returns the price of the next level, 100 × 2^level.
// Returns false when the track is maxed out.
func UpgradeCost(level int) (int, bool) {
	if level < 0 || level >= MaxUpgradeLevel {
		return 0, false
	}
	return BaseUpgradeCost << level, true
}

// BuyUpgrade spends money on the next level of up.
func (r *Record) BuyUpgrade(up Upgrade) error {
	p := r.Upgrades.slot(up)
	if p == nil {
		return fmt.Errorf("%w: %d", ErrUnknownUpgrade, up)
	}
	cost, ok := UpgradeCost(*p)
	if !ok {
		return ErrMaxLevel
	}
	if r.Money < cost {
		return fmt.Errorf("%w: need %d, have %d", ErrInsufficientFunds, cost, r.Money)
	}
	r.Money -= cost
	*p++
	return nil
}

// SpeedMultiplier scales the player's max speed.
func (r *Record) SpeedMultiplier() float64 {
	return 1 + 0.15*float64(r.Upgrades.Speed)
}

// BulletSlowMultiplier scales projectile time.
func (r *Record) BulletSlowMultiplier() float64 {
	return 1 - 0.1*float64(r.Upgrades.BulletSlow)
}

// LuckyDodgeChance is the probability that a hit is dodged.
func (r *Record) LuckyDodgeChance() float64 {
	return 0.05 * float64(r.Upgrades.LuckyDodge)
}

// AttackWindowBonus is the extra vulnerability window in ticks.
func (r *Record) AttackWindowBonus() float64 {
	return 60 * float64(r.Upgrades.AttackWindow)
}

// AddMoney credits amount and counts it as earned.
func (r *Record) AddMoney(amount int) {
	if amount <= 0 {
		return
	}
	r.Money += amount
	r.Stats.TotalEarned += amount
}

// UnlockLevel raises the highest unlocked level to level, capped at MaxLevel.
func (r *Record) UnlockLevel(level int) {
	r.MaxUnlockedLevel = max(r.MaxUnlockedLevel, min(level, MaxLevel))
}

// DefeatBoss records a won match: reward, defeat flag, the next level and the best score.
func (r *Record) DefeatBoss(level, reward, score int) {
	if r.Defeated == nil {
		r.Defeated = map[int]bool{}
	}
	r.Defeated[level] = true
	r.Stats.BossesDefeated++
	r.Stats.BestScore = max(r.Stats.BestScore, score)
	r.AddMoney(reward)
	r.UnlockLevel(level + 1)
}

// RecordDeath counts a lost match.
func (r *Record) RecordDeath(score int) {
	r.Stats.TotalDeaths++
	r.Stats.FlawlessStreak = 0
	r.Stats.BestScore = max(r.Stats.BestScore, score)
}

// AddPlayTime accumulates time spent in matches.
func (r *Record) AddPlayTime(d time.Duration) {
	if d > 0 {
		r.Stats.PlayTimeSeconds += d.Seconds()
	}
}

// LevelUnlocked reports whether level can be played.
func (r *Record) LevelUnlocked(level int) bool {
	return level >= 1 && level <= r.MaxUnlockedLevel
}
