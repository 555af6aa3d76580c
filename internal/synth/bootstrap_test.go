package synth

import (
	"context"
	"math"
	"math/rand"
	"testing"

	"seismic-catalog-lab/internal/domain"
)

func makeRealEvent(id string, mag float64) *domain.Event {
	return &domain.Event{
		ID:           id,
		Time:         "2010-05-01 12:00:00",
		Magnitude:    mag,
		Longitude:    28.5,
		Latitude:     40.7,
		DepthKm:      9.0,
		SampleWeight: domain.WeightReal,
		Method:       domain.MethodReal,
	}
}

func TestBootstrapStrategy_TemplateSelection(t *testing.T) {
	catalog := []*domain.Event{
		makeRealEvent("E1", 4.9), // below window
		makeRealEvent("E2", 5.0), // inclusive lower bound
		makeRealEvent("E3", 5.7),
		makeRealEvent("E4", 6.0), // exclusive upper bound
		makeRealEvent("E5", 6.4),
	}

	s := NewBootstrapStrategy(catalog, DefaultBootstrapOptions(), nil)
	if s.TemplateCount() != 2 {
		t.Fatalf("expected 2 templates in [5.0, 6.0), got %d", s.TemplateCount())
	}
}

func TestBootstrapStrategy_Generate(t *testing.T) {
	// Keep template magnitudes low enough that even the maximum lift
	// (M 5.7 + 2.3 = 8.0, ~190 km rupture) survives the validity filter.
	catalog := []*domain.Event{
		makeRealEvent("E1", 5.2),
		makeRealEvent("E2", 5.7),
	}

	s := NewBootstrapStrategy(catalog, DefaultBootstrapOptions(), nil)
	events, stats, err := s.Generate(context.Background(), rand.New(rand.NewSource(42)))
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if stats.Produced != 2 || stats.DroppedInvalid != 0 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	if len(events) != 2 {
		t.Fatalf("expected one synthetic per template, got %d", len(events))
	}

	for i, e := range events {
		tpl := catalog[i]
		if e.ID != "SYN_"+tpl.ID {
			t.Errorf("event %d: id %q, want SYN_%s", i, e.ID, tpl.ID)
		}
		deltaM := e.Magnitude - tpl.Magnitude
		if deltaM < 1.5 || deltaM > 2.3 {
			t.Errorf("event %d: magnitude lift %.3f outside [1.5, 2.3]", i, deltaM)
		}
		// Template hypocenter and time carry over unchanged.
		if e.Longitude != tpl.Longitude || e.Latitude != tpl.Latitude || e.DepthKm != tpl.DepthKm {
			t.Errorf("event %d: location not preserved", i)
		}
		if e.Time != tpl.Time {
			t.Errorf("event %d: time not preserved", i)
		}
		if e.IsSynthetic != 1 || e.Method != domain.MethodBootstrap || e.SampleWeight != domain.WeightBootstrap {
			t.Errorf("event %d: missing synthetic tagging", i)
		}
		if e.RuptureLengthKm == nil || e.RuptureWidthKm == nil || e.RuptureAreaKm2 == nil {
			t.Errorf("event %d: rupture dimensions not set", i)
		}

		// Energy lifts by 1.5 dM from the 1.5 M + 4.8 baseline.
		if e.LogEnergy == nil {
			t.Fatalf("event %d: log energy not set", i)
		}
		want := 1.5*tpl.Magnitude + 4.8 + 1.5*deltaM
		if math.Abs(*e.LogEnergy-want) > 1e-12 {
			t.Errorf("event %d: log energy %.6f, want %.6f", i, *e.LogEnergy, want)
		}
	}
}

func TestBootstrapStrategy_PreservesTemplateEnergy(t *testing.T) {
	tpl := makeRealEvent("E1", 5.5)
	le := 13.2
	tpl.LogEnergy = &le

	s := NewBootstrapStrategy([]*domain.Event{tpl}, DefaultBootstrapOptions(), nil)
	events, _, err := s.Generate(context.Background(), rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	deltaM := events[0].Magnitude - tpl.Magnitude
	want := le + 1.5*deltaM
	if math.Abs(*events[0].LogEnergy-want) > 1e-12 {
		t.Errorf("log energy %.6f, want %.6f (from template baseline)", *events[0].LogEnergy, want)
	}
}

func TestBootstrapStrategy_DoesNotMutateTemplates(t *testing.T) {
	tpl := makeRealEvent("E1", 5.5)
	s := NewBootstrapStrategy([]*domain.Event{tpl}, DefaultBootstrapOptions(), nil)

	if _, _, err := s.Generate(context.Background(), rand.New(rand.NewSource(3))); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if tpl.ID != "E1" || tpl.Magnitude != 5.5 || tpl.IsSynthetic != 0 || tpl.LogEnergy != nil {
		t.Error("template event was mutated")
	}
}

func TestBootstrapStrategy_Deterministic(t *testing.T) {
	catalog := []*domain.Event{
		makeRealEvent("E1", 5.1),
		makeRealEvent("E2", 5.5),
		makeRealEvent("E3", 5.9),
	}
	s := NewBootstrapStrategy(catalog, DefaultBootstrapOptions(), nil)

	a, _, err := s.Generate(context.Background(), rand.New(rand.NewSource(99)))
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	b, _, err := s.Generate(context.Background(), rand.New(rand.NewSource(99)))
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if len(a) != len(b) {
		t.Fatalf("runs differ in length: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].Magnitude != b[i].Magnitude || *a[i].LogEnergy != *b[i].LogEnergy {
			t.Errorf("event %d differs across identically seeded runs", i)
		}
	}
}

func TestBootstrapStrategy_NoTemplates(t *testing.T) {
	s := NewBootstrapStrategy([]*domain.Event{makeRealEvent("E1", 4.0)}, DefaultBootstrapOptions(), nil)
	events, stats, err := s.Generate(context.Background(), rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if len(events) != 0 || stats.Produced != 0 {
		t.Errorf("expected empty result without templates")
	}
}

func TestBootstrapStrategy_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := NewBootstrapStrategy([]*domain.Event{makeRealEvent("E1", 5.5)}, DefaultBootstrapOptions(), nil)
	if _, _, err := s.Generate(ctx, rand.New(rand.NewSource(1))); err == nil {
		t.Fatal("expected context error")
	}
}
