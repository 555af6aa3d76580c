// Package synth generates synthetic seismic events. Three interchangeable
// strategies produce event records from distinct inputs; all draw their
// randomness from an explicitly supplied source so that a fixed seed
// reproduces the same catalog bit-for-bit.
package synth

import (
	"context"
	"math/rand"

	"seismic-catalog-lab/internal/domain"
)

// Strategy produces synthetic events from its configured input.
type Strategy interface {
	// Generate runs the strategy with the supplied random source and
	// returns the surviving events plus generation statistics. A strategy
	// producing zero valid events is reported via Stats, not an error.
	Generate(ctx context.Context, rng *rand.Rand) ([]*domain.Event, Stats, error)

	// ID returns the strategy identifier.
	ID() string
}

// Stats describes one generation run.
type Stats struct {
	Produced         int // raw events before the validity filter
	DroppedInvalid   int // removed by the validity filter
	SkippedNoSegment int // physics candidates with no hosting segment
}

// Kept returns the number of events that survived filtering.
func (s Stats) Kept() int {
	return s.Produced - s.DroppedInvalid
}
