// Package fault answers geometric queries over a set of fault segments,
// principally whether a segment's trace is long enough to host a rupture.
package fault

import (
	"seismic-catalog-lab/internal/domain"
	"seismic-catalog-lab/internal/geo"
)

// GeometryIndex wraps a set of fault segments with derived trace lengths.
// Segments are reference data: the index never mutates them.
type GeometryIndex struct {
	segments []*domain.FaultSegment
	lengths  map[string]float64 // segment_id -> derived trace length, km
}

// NewGeometryIndex builds an index over the given segments, computing the
// trace length of each as the sum of great-circle distances between
// consecutive vertices. Metadata length_km is deliberately not trusted.
func NewGeometryIndex(segments []*domain.FaultSegment) *GeometryIndex {
	idx := &GeometryIndex{
		segments: segments,
		lengths:  make(map[string]float64, len(segments)),
	}
	for _, s := range segments {
		idx.lengths[s.SegmentID] = traceLength(s)
	}
	return idx
}

// Segments returns the indexed segments in insertion order.
func (idx *GeometryIndex) Segments() []*domain.FaultSegment {
	return idx.segments
}

// SegmentLength returns the derived trace length of a segment in km.
func (idx *GeometryIndex) SegmentLength(s *domain.FaultSegment) float64 {
	if l, ok := idx.lengths[s.SegmentID]; ok {
		return l
	}
	return traceLength(s)
}

// CanHost reports whether the segment trace is at least ruptureLengthKm
// long. The boundary is inclusive: a rupture exactly as long as the trace
// still fits.
func (idx *GeometryIndex) CanHost(s *domain.FaultSegment, ruptureLengthKm float64) bool {
	return idx.SegmentLength(s) >= ruptureLengthKm
}

// QualifyingSegments returns every segment that can host a rupture of the
// given length, in insertion order. An empty result is a skip condition
// for callers, not an error. Selection among the result is up to the
// caller; nothing here biases toward the best-fitting segment.
func (idx *GeometryIndex) QualifyingSegments(ruptureLengthKm float64) []*domain.FaultSegment {
	var out []*domain.FaultSegment
	for _, s := range idx.segments {
		if idx.CanHost(s, ruptureLengthKm) {
			out = append(out, s)
		}
	}
	return out
}

// traceLength sums haversine distances over consecutive trace vertices.
func traceLength(s *domain.FaultSegment) float64 {
	var total float64
	for i := 0; i+1 < len(s.Coordinates); i++ {
		a, b := s.Coordinates[i], s.Coordinates[i+1]
		total += geo.Distance(a.Longitude, a.Latitude, b.Longitude, b.Latitude)
	}
	return total
}
