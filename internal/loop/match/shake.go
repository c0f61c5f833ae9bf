package match

import (
	"math"

	"github.com/tomz197/mrmissile/internal/physics"
)

const (
	shakeDecay = 0.9 // Per tick
	shakeFloor = 0.5 // Below this the shake stops
)

// Shake is a decaying screen-shake intensity in logical units. The offset is
// rolled once per update so drawing never consumes randomness.
type Shake struct {
	Intensity float64
	X, Y      float64 // Current offset
}

// Add raises the shake to at least intensity. Shakes do not stack.
func (s *Shake) Add(intensity float64) {
	s.Intensity = math.Max(s.Intensity, intensity)
}

// Update rolls a new offset in [-Intensity, Intensity] on both axes, then
// decays the shake by dt ticks. Below the floor everything resets to zero.
func (s *Shake) Update(dt float64, r physics.Rand) {
	if s.Intensity <= shakeFloor {
		s.Intensity, s.X, s.Y = 0, 0, 0
		return
	}
	if r != nil {
		s.X = physics.RandomRange(r, -s.Intensity, s.Intensity)
		s.Y = physics.RandomRange(r, -s.Intensity, s.Intensity)
	}
	s.Intensity = physics.Damp(s.Intensity, shakeDecay, dt)
}

// Offset returns the displacement rolled by the last update.
func (s *Shake) Offset() (x, y float64) {
	return s.X, s.Y
}
