package physics

// Rand is the source of randomness used by the simulation.
// *rand.Rand from math/rand/v2 satisfies it; tests supply fixed sequences.
type Rand interface {
	Float64() float64
}

// RandomRange returns a uniform value in [lo, hi).
func RandomRange(r Rand, lo, hi float64) float64 {
	return lo + r.Float64()*(hi-lo)
}

// RandomIndex returns a uniform index in [0, n). n must be positive.
func RandomIndex(r Rand, n int) int {
	i := int(r.Float64() * float64(n))
	if i >= n {
		i = n - 1
	}
	return i
}

// Chance reports true with probability p.
func Chance(r Rand, p float64) bool {
	return r.Float64() < p
}
