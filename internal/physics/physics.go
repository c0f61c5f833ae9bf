// Package physics provides the numeric helpers shared by every entity:
// distances, interpolation, easing and angles.
package physics

import "math"

// Angle constants.
const (
	TwoPi    = 2 * math.Pi
	HalfPi   = math.Pi / 2
	InvSqrt2 = 1 / math.Sqrt2
)

// Distance calculates the Euclidean distance between two points.
func Distance(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return math.Sqrt(dx*dx + dy*dy)
}

// DistanceSquared calculates the squared distance between two points.
// Use this when comparing distances to avoid the sqrt cost.
func DistanceSquared(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return dx*dx + dy*dy
}

// Magnitude returns the length of the vector (x, y).
func Magnitude(x, y float64) float64 {
	return math.Sqrt(x*x + y*y)
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}

// Lerp interpolates linearly from a to b by t.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Ease moves current toward target by rate per tick, scaled for dt ticks.
// rate is the fraction of the remaining gap closed in one nominal tick.
func Ease(current, target, rate, dt float64) float64 {
	return target + (current-target)*math.Pow(1-rate, dt)
}

// Damp applies a per-tick multiplicative factor over dt ticks.
func Damp(v, factor, dt float64) float64 {
	return v * math.Pow(factor, dt)
}

// AngleTo returns the bearing from (x1, y1) to (x2, y2).
func AngleTo(x1, y1, x2, y2 float64) float64 {
	return math.Atan2(y2-y1, x2-x1)
}

// WrapAngle normalizes an angle to (-Pi, Pi].
func WrapAngle(a float64) float64 {
	a = math.Mod(a+math.Pi, TwoPi)
	if a <= 0 {
		a += TwoPi
	}
	return a - math.Pi
}

// AngleDiff returns the signed shortest rotation from one angle to another.
func AngleDiff(from, to float64) float64 {
	return WrapAngle(to - from)
}

// TurnToward rotates current toward target along the shortest path,
// by at most maxStep radians.
func TurnToward(current, target, maxStep float64) float64 {
	diff := AngleDiff(current, target)
	if math.Abs(diff) <= maxStep {
		return current + diff
	}
	if diff > 0 {
		return current + maxStep
	}
	return current - maxStep
}

// Finite reports whether both coordinates are neither NaN nor infinite.
func Finite(x, y float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0) && !math.IsNaN(y) && !math.IsInf(y, 0)
}
