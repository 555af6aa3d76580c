package gr

import (
	"math"
	"math/rand"
)

// MagnitudeSampler draws magnitudes from a right-truncated exponential
// tail of the Gutenberg-Richter distribution via inverse-transform
// sampling. The random source is always supplied by the caller; there is
// no implicit process-wide generator.
type MagnitudeSampler struct {
	B     float64 // Gutenberg-Richter slope
	Floor float64 // m0, minimum magnitude of the tail
	Cap   float64 // mMax, truncation magnitude
}

// NewMagnitudeSampler creates a sampler over [floor, cap].
func NewMagnitudeSampler(b, floor, cap float64) *MagnitudeSampler {
	return &MagnitudeSampler{B: b, Floor: floor, Cap: cap}
}

// Sample draws one magnitude:
//
//	M = m0 - log10(1 - u) / b, u ~ Uniform(0,1)
//
// clamped to the cap. The result always satisfies Floor <= M <= Cap.
func (s *MagnitudeSampler) Sample(rng *rand.Rand) float64 {
	u := rng.Float64()
	m := s.Floor - math.Log10(1-u)/s.B
	return math.Min(m, s.Cap)
}
