// Package gr implements Gutenberg-Richter statistics: maximum-likelihood
// b-value estimation and truncated magnitude sampling.
package gr

import (
	"errors"
	"math"
)

// ErrUndetermined is returned when fewer than two magnitudes reach the
// completeness threshold. Callers fall back to a documented default
// b-value rather than treating this as fatal.
var ErrUndetermined = errors.New("b-value undetermined: fewer than 2 magnitudes above threshold")

// BValue is a maximum-likelihood Gutenberg-Richter slope estimate.
type BValue struct {
	B           float64 // slope
	Uncertainty float64 // 2.3 * b / sqrt(n)
	N           int     // qualifying sample size
}

// EstimateBValue computes the Aki/Utsu maximum-likelihood estimate of the
// Gutenberg-Richter slope from the magnitudes at or above mMin:
//
//	b = log10(e) / (mean - mMin)
//
// The function is stateless and may be evaluated for any number of
// thresholds independently.
func EstimateBValue(magnitudes []float64, mMin float64) (BValue, error) {
	var sum float64
	var n int
	for _, m := range magnitudes {
		if m >= mMin {
			sum += m
			n++
		}
	}
	if n < 2 {
		return BValue{}, ErrUndetermined
	}

	mean := sum / float64(n)
	b := math.Log10(math.E) / (mean - mMin)
	return BValue{
		B:           b,
		Uncertainty: 2.3 * b / math.Sqrt(float64(n)),
		N:           n,
	}, nil
}
