// Package match runs a single boss fight: the player, the boss, the bullet
// and particle fields, and the rules that tie them together.
package match

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/mrmissile/internal/loop/config"
	"github.com/tomz197/mrmissile/internal/object"
	"github.com/tomz197/mrmissile/internal/physics"
)

// ErrNoRand is returned when a match is created without a random source.
var ErrNoRand = errors.New("match: no random source")

// Modifiers are the upgrade-derived multipliers applied to a match.
type Modifiers struct {
	SpeedMultiplier   float64 // Player max speed
	BulletSlow        float64 // Time scale for projectiles
	LuckyDodge        float64 // Probability that a hit is dodged
	AttackWindowBonus float64 // Extra vulnerability ticks
}

// DefaultModifiers are the multipliers with no upgrades bought.
func DefaultModifiers() Modifiers {
	return Modifiers{SpeedMultiplier: 1, BulletSlow: 1}
}

// Outcome is how a match ended.
type Outcome uint8

const (
	OutcomeNone Outcome = iota
	OutcomeVictory
	OutcomeDefeat
)

// EventType identifies something that happened during a step.
type EventType uint8

const (
	EventGraze EventType = iota
	EventDodge
	EventBossHit
	EventBossDefeated
	EventBossContact
	EventPlayerDeath
	EventVictory
	EventComboMilestone
)

// Event is a notable step result for audio and screen effects.
type Event struct {
	Type  EventType
	Count int // Grazes in this step, or the combo for a milestone
	Score int // Points awarded
}

// Options configures a new match.
type Options struct {
	Level     int
	Modifiers Modifiers
	Field     object.Field // Defaults to the configured field size
	Rand      physics.Rand
	Logger    *log.Logger
}

// Match holds the whole state of one boss fight.
type Match struct {
	Level     int
	Field     object.Field
	Player    *object.Player
	Boss      *object.Boss
	Bullets   *object.BulletField
	Particles *object.ParticleField
	Shake     Shake

	Score      int
	Grazes     int
	Dodges     int
	Contacts   int // Boss contacts that sent the player back
	Combo      int
	MaxCombo   int
	ComboTimer float64 // Ticks until the combo resets
	Deaths     int
	Reward     int // Money earned on victory

	Time    float64 // Simulated milliseconds
	Ticks   float64 // Simulated ticks
	Outcome Outcome

	mods   Modifiers
	rng    physics.Rand
	logger *log.Logger
	events []Event
}

// New creates a match for opts.Level with the boss flying in from above.
func New(opts Options) (*Match, error) {
	if opts.Level < 1 || opts.Level > config.MaxLevel {
		return nil, fmt.Errorf("match: level %d out of range [1, %d]", opts.Level, config.MaxLevel)
	}
	if opts.Rand == nil {
		return nil, ErrNoRand
	}
	field := opts.Field
	if field.Width <= 0 || field.Height <= 0 {
		field = object.Field{Width: config.FieldWidth, Height: config.FieldHeight}
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	mods := opts.Modifiers
	if mods.SpeedMultiplier <= 0 {
		mods.SpeedMultiplier = 1
	}
	if mods.BulletSlow <= 0 {
		mods.BulletSlow = 1
	}

	bullets, err := object.NewBulletField(config.MaxBullets, field, logger)
	if err != nil {
		return nil, fmt.Errorf("match: bullets: %w", err)
	}
	particles, err := object.NewParticleField(config.MaxParticles, opts.Rand, logger)
	if err != nil {
		return nil, fmt.Errorf("match: particles: %w", err)
	}

	m := &Match{
		Level:     opts.Level,
		Field:     field,
		Bullets:   bullets,
		Particles: particles,
		mods:      mods,
		rng:       opts.Rand,
		logger:    logger.With("level", opts.Level),
	}
	px, py := m.PlayerStart()
	m.Player = object.NewPlayer(px, py, mods.SpeedMultiplier)
	m.Boss = object.NewBoss(field.Width/2, config.BossStartY, opts.Level, opts.Rand,
		object.BossOptions{AttackWindowBonus: mods.AttackWindowBonus})
	m.Shake.Add(config.ShakeLevelStart)
	return m, nil
}

// PlayerStart returns the player spawn point.
func (m *Match) PlayerStart() (x, y float64) {
	return m.Field.Width / 2, m.Field.Height * config.PlayerStartYRatio
}

// Modifiers returns the multipliers the match was created with.
func (m *Match) Modifiers() Modifiers {
	return m.mods
}

// PlayTime is the simulated time the fight has run. Paused time never counts
// because a paused match is not stepped.
func (m *Match) PlayTime() time.Duration {
	return time.Duration(m.Ticks * config.TickMillis * float64(time.Millisecond))
}

// Untouched reports whether no bullet or boss contact has landed on the player.
func (m *Match) Untouched() bool {
	return m.Dodges == 0 && m.Contacts == 0 && m.Deaths == 0
}

// Over reports whether the match has an outcome.
func (m *Match) Over() bool {
	return m.Outcome != OutcomeNone
}

// Draw renders the field contents, back to front, offset by the screen shake.
func (m *Match) Draw(ctx object.DrawContext) error {
	ctx.OffsetX, ctx.OffsetY = m.Shake.Offset()
	ctx.Time = m.Time

	if err := m.Particles.Draw(ctx); err != nil {
		return err
	}
	if err := m.Bullets.Draw(ctx); err != nil {
		return err
	}
	if m.Boss != nil && !m.Boss.DeathComplete() {
		if err := m.Boss.Draw(ctx); err != nil {
			return err
		}
	}
	if m.Outcome != OutcomeDefeat {
		if err := m.Player.Draw(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (m *Match) emit(e Event) {
	m.events = append(m.events, e)
}
