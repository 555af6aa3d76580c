package synth

import (
	"context"
	"math/rand"
	"strings"
	"testing"
	"time"

	"seismic-catalog-lab/internal/domain"
	"seismic-catalog-lab/internal/fault"
)

func makePhysicsStrategy(t *testing.T, n int) *PhysicsStrategy {
	t.Helper()
	index := fault.NewGeometryIndex(domain.MarmaraFaultSegments())
	return NewPhysicsStrategy(index, PhysicsOptions{
		TargetCount: n,
		BValue:      1.1,
		SpanStart:   time.Date(2003, 1, 1, 0, 0, 0, 0, time.UTC),
		SpanEnd:     time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
	}, nil)
}

func TestPhysicsStrategy_Generate(t *testing.T) {
	s := makePhysicsStrategy(t, 15)
	events, stats, err := s.Generate(context.Background(), rand.New(rand.NewSource(7)))
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if stats.Produced+stats.SkippedNoSegment != 15 {
		t.Fatalf("produced %d + skipped %d != target 15", stats.Produced, stats.SkippedNoSegment)
	}
	if len(events) == 0 {
		t.Fatal("expected at least one event")
	}

	segments := map[string]*domain.FaultSegment{}
	for _, seg := range domain.MarmaraFaultSegments() {
		segments[seg.SegmentID] = seg
	}

	for _, e := range events {
		if e.Magnitude < 6.5 || e.Magnitude > 7.3 {
			t.Errorf("%s: magnitude %.2f outside [6.5, 7.3]", e.ID, e.Magnitude)
		}
		if e.DepthKm < 5 || e.DepthKm > 15 {
			t.Errorf("%s: depth %.2f outside [5, 15]", e.ID, e.DepthKm)
		}
		if !strings.HasPrefix(e.ID, "SYN_PHYS_") {
			t.Errorf("unexpected id %q", e.ID)
		}
		if e.Method != domain.MethodPhysics || e.SampleWeight != domain.WeightPhysics || e.IsSynthetic != 1 {
			t.Errorf("%s: missing physics tagging", e.ID)
		}
		if e.AvgSlipM == nil || *e.AvgSlipM <= 0 {
			t.Errorf("%s: slip not set or non-positive", e.ID)
		}
		if e.SegmentID == nil {
			t.Fatalf("%s: segment not recorded", e.ID)
		}

		// The assigned segment must actually host the rupture, and the
		// focal mechanism must come from that segment.
		seg, ok := segments[*e.SegmentID]
		if !ok {
			t.Fatalf("%s: unknown segment %q", e.ID, *e.SegmentID)
		}
		if e.Strike == nil || *e.Strike != seg.Strike {
			t.Errorf("%s: strike does not match segment", e.ID)
		}
		if e.Dip == nil || *e.Dip != seg.Dip {
			t.Errorf("%s: dip does not match segment", e.ID)
		}
		if e.Rake == nil || *e.Rake != seg.Rake {
			t.Errorf("%s: rake does not match segment", e.ID)
		}

		if _, err := time.Parse("2006-01-02 15:04:05", e.Time); err != nil {
			t.Errorf("%s: unparsable time %q: %v", e.ID, e.Time, err)
		}
	}
}

func TestPhysicsStrategy_SegmentHostsRupture(t *testing.T) {
	index := fault.NewGeometryIndex(domain.MarmaraFaultSegments())
	s := makePhysicsStrategy(t, 30)

	events, _, err := s.Generate(context.Background(), rand.New(rand.NewSource(11)))
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	byID := map[string]*domain.FaultSegment{}
	for _, seg := range index.Segments() {
		byID[seg.SegmentID] = seg
	}

	for _, e := range events {
		if e.RuptureLengthKm == nil || e.SegmentID == nil {
			t.Fatalf("%s: missing rupture length or segment", e.ID)
		}
		seg, ok := byID[*e.SegmentID]
		if !ok {
			t.Fatalf("%s: unknown segment %q", e.ID, *e.SegmentID)
		}
		if length := index.SegmentLength(seg); *e.RuptureLengthKm > length {
			t.Errorf("%s: rupture %.1f km exceeds segment %q (%.1f km)",
				e.ID, *e.RuptureLengthKm, *e.SegmentID, length)
		}
	}
}

func TestPhysicsStrategy_SkipsWhenNoSegmentQualifies(t *testing.T) {
	// A single 10 km segment cannot host any M >= 6.5 rupture
	// (area law: M 6.5 needs ~25 km), so every candidate is skipped.
	short := &domain.FaultSegment{
		SegmentID: "short",
		Name:      "Short Test Segment",
		Coordinates: []domain.Coordinate{
			{Longitude: 28.0, Latitude: 40.7},
			{Longitude: 28.118, Latitude: 40.7}, // ~10 km at this latitude
		},
		Strike: 90, Dip: 90, Rake: 180,
	}
	index := fault.NewGeometryIndex([]*domain.FaultSegment{short})
	s := NewPhysicsStrategy(index, PhysicsOptions{
		TargetCount: 5,
		BValue:      1.1,
		SpanStart:   time.Date(2003, 1, 1, 0, 0, 0, 0, time.UTC),
	}, nil)

	events, stats, err := s.Generate(context.Background(), rand.New(rand.NewSource(5)))
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if len(events) != 0 {
		t.Errorf("expected no events, got %d", len(events))
	}
	if stats.SkippedNoSegment != 5 {
		t.Errorf("expected 5 skips, got %d", stats.SkippedNoSegment)
	}
}

func TestPhysicsStrategy_Deterministic(t *testing.T) {
	s := makePhysicsStrategy(t, 10)

	a, _, err := s.Generate(context.Background(), rand.New(rand.NewSource(2024)))
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	b, _, err := s.Generate(context.Background(), rand.New(rand.NewSource(2024)))
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if len(a) != len(b) {
		t.Fatalf("runs differ in length: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].ID != b[i].ID || a[i].Magnitude != b[i].Magnitude ||
			a[i].Longitude != b[i].Longitude || a[i].Time != b[i].Time ||
			*a[i].AvgSlipM != *b[i].AvgSlipM {
			t.Errorf("event %d differs across identically seeded runs", i)
		}
	}
}

func TestPhysicsStrategy_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := makePhysicsStrategy(t, 3)
	if _, _, err := s.Generate(ctx, rand.New(rand.NewSource(1))); err == nil {
		t.Fatal("expected context error")
	}
}
