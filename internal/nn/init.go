package nn

import (
	"math/rand"
	"time"
)

// newRand returns rng, or a time-seeded source when rng is nil.
func newRand(rng *rand.Rand) *rand.Rand {
	if rng != nil {
		return rng
	}
	//nolint:gosec // Using math/rand for weight initialization (not security-critical)
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// Uniform draws a value from U(low, high).
func Uniform(rng *rand.Rand, low, high float64) float64 {
	return low + rng.Float64()*(high-low)
}
