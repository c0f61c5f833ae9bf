package object

import "github.com/tomz197/mrmissile/internal/draw"

// Kind selects a projectile's motion rule.
type Kind uint8

const (
	KindPlain Kind = iota
	KindFast
	KindLarge
	KindHoming
	KindBouncing
	KindSpiral
	KindSplitting
	KindAccelerating
	KindWave
	KindBomb
	KindFragment
	kindCount
)

var kindNames = [kindCount]string{
	"plain", "fast", "large", "homing", "bouncing", "spiral",
	"splitting", "accelerating", "wave", "bomb", "fragment",
}

// String returns the lowercase kind name.
func (k Kind) String() string {
	if !k.Valid() {
		return "unknown"
	}
	return kindNames[k]
}

// Valid reports whether k is one of the defined kinds.
func (k Kind) Valid() bool {
	return k < kindCount
}

// Size returns the collision radius for the kind.
func (k Kind) Size() float64 {
	switch k {
	case KindLarge, KindBomb:
		return 12
	case KindFast, KindFragment:
		return 4
	default:
		return 6
	}
}

// Color returns the draw color for the kind.
func (k Kind) Color() draw.Color {
	switch k {
	case KindFast, KindAccelerating:
		return draw.Orange
	case KindLarge:
		return draw.Purple
	case KindHoming, KindBomb:
		return draw.Red
	case KindBouncing:
		return draw.Green
	case KindSpiral:
		return draw.Accent
	case KindSplitting:
		return draw.Gold
	case KindWave:
		return draw.AccentLight
	case KindFragment:
		return draw.PrimaryLight
	default:
		return draw.Primary
	}
}
