// Package object holds the simulation entities (projectiles, particles, the player
// and the boss) and the pooled fields that own them.
package object

import (
	"errors"
	"math"

	"github.com/tomz197/mrmissile/internal/draw"
	"github.com/tomz197/mrmissile/internal/physics"
)

// Entity update faults. The owning field deactivates the entity and keeps going.
var (
	ErrUnknownKind = errors.New("object: unknown kind")
	ErrNonFinite   = errors.New("object: non-finite position")
	ErrNoRand      = errors.New("object: no random source")
)

// Spawner allows projectiles and the boss to emit new projectiles during update.
type Spawner interface {
	// Spawn requests a new projectile. Returns nil if the request was rejected
	// or deferred until the current update pass completes.
	Spawn(x, y, vx, vy float64, kind Kind) *Projectile
}

// Controls is the directional input held this tick.
type Controls struct {
	Up, Down, Left, Right bool
}

// Field is the simulation area in logical units.
type Field struct {
	Width  float64
	Height float64
}

// Outside reports whether (x, y) lies further than margin beyond the field edges.
func (f Field) Outside(x, y, margin float64) bool {
	return x < -margin || x > f.Width+margin || y < -margin || y > f.Height+margin
}

// UpdateContext provides all the information an entity needs during update.
type UpdateContext struct {
	DT      float64      // Ticks elapsed (1.0 at the nominal 60 ticks/s)
	Time    float64      // Simulated milliseconds since the match started
	Field   Field        // Simulation bounds
	TargetX float64      // Player position, for aimed and homing behavior
	TargetY float64
	Input   Controls     // Player input for this tick
	Spawner Spawner      // Projectile sink (nil disables spawning)
	Rand    physics.Rand // Randomness source, required by a fighting boss
}

// DrawContext provides drawing resources for entities.
type DrawContext struct {
	Canvas  *draw.Canvas // High-resolution canvas (2x vertical)
	OffsetX float64      // Screen shake offset
	OffsetY float64
	Time    float64      // Simulated milliseconds, drives blinking
}

// Object is a drawable and updatable simulation entity.
type Object interface {
	// Update updates the entity state. Returns true if the entity should be removed.
	Update(ctx UpdateContext) (remove bool, err error)

	// Draw draws the entity onto ctx.Canvas.
	Draw(ctx DrawContext) error
}

// Blink reports whether a blinking entity is in its visible half-period.
// periodMillis is the length of each on/off half in simulated milliseconds.
func Blink(timeMillis, periodMillis float64) bool {
	return int(math.Floor(timeMillis/periodMillis))%2 != 0
}
