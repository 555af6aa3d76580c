package synth

import "seismic-catalog-lab/internal/domain"

// FilterValid removes physically invalid events: negative depth or a
// rupture length over the configured ceiling. The filter is strategy
// agnostic and applied identically to every generator's raw output.
// Dropped events are counted, never raised as errors.
func FilterValid(events []*domain.Event) (kept []*domain.Event, dropped int) {
	kept = make([]*domain.Event, 0, len(events))
	for _, e := range events {
		if !IsValid(e) {
			dropped++
			continue
		}
		kept = append(kept, e)
	}
	return kept, dropped
}

// IsValid reports whether an event passes the physical sanity checks.
func IsValid(e *domain.Event) bool {
	if e.DepthKm < 0 {
		return false
	}
	if e.RuptureLengthKm != nil && *e.RuptureLengthKm > domain.MaxRuptureLengthKm {
		return false
	}
	return true
}
