// Package main runs a single synthesis strategy against a catalog and
// writes the surviving synthetic events as CSV.
package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"seismic-catalog-lab/internal/catalogio"
	"seismic-catalog-lab/internal/domain"
	"seismic-catalog-lab/internal/fault"
	"seismic-catalog-lab/internal/synth"
)

func main() {
	strategyType := flag.String("strategy", "", "Strategy: BOOTSTRAP, PHYSICS, SIMPLE (required)")
	catalogPath := flag.String("catalog", "", "Input catalog CSV path (required)")
	faultsPath := flag.String("faults", "", "Fault segment CSV path (built-in Marmara geometry if empty)")
	bValuePath := flag.String("b-value-file", "", "b-value artifact path (PHYSICS)")
	count := flag.Int("count", 30, "Target or sample count (PHYSICS, SIMPLE)")
	seed := flag.Int64("seed", 42, "Random seed")
	output := flag.String("output", "synthetic.csv", "Output CSV path")
	flag.Parse()

	log := logrus.New()

	if *strategyType == "" || *catalogPath == "" {
		fmt.Fprintln(os.Stderr, "Error: --strategy and --catalog are required")
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	catalog, err := loadCatalog(*catalogPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading catalog: %v\n", err)
		os.Exit(1)
	}

	cfg := domain.StrategyConfig{StrategyType: domain.StrategyType(*strategyType)}
	in := synth.Inputs{
		RealCatalog:      catalog,
		AssembledCatalog: catalog,
		Log:              log,
	}

	switch cfg.StrategyType {
	case domain.StrategyTypePhysics:
		segments, err := loadSegments(*faultsPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading fault segments: %v\n", err)
			os.Exit(1)
		}
		b, err := loadBValue(*bValuePath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading b-value: %v\n", err)
			os.Exit(1)
		}
		in.Geometry = fault.NewGeometryIndex(segments)
		in.SpanStart, in.SpanEnd = catalogSpan(catalog)
		cfg.TargetCount = count
		cfg.BValue = &b
	case domain.StrategyTypeSimple:
		cfg.SampleCount = count
	}

	strat, err := synth.FromConfig(cfg, in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating strategy: %v\n", err)
		os.Exit(1)
	}

	rng := rand.New(rand.NewSource(*seed))
	events, stats, err := strat.Generate(ctx, rng)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Generation error: %v\n", err)
		os.Exit(1)
	}

	f, err := os.Create(*output)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output: %v\n", err)
		os.Exit(1)
	}
	if err := catalogio.WriteCatalog(f, events); err != nil {
		f.Close()
		fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
		os.Exit(1)
	}
	if err := f.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Error closing output: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("%s generated %d events (%d produced, %d dropped, %d skipped)\n",
		strat.ID(), len(events), stats.Produced, stats.DroppedInvalid, stats.SkippedNoSegment)
	fmt.Printf("Written to %s\n", *output)
}

func loadCatalog(path string) ([]*domain.Event, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return catalogio.PrepareCatalog(f)
}

func loadSegments(path string) ([]*domain.FaultSegment, error) {
	if path == "" {
		return domain.MarmaraFaultSegments(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return catalogio.ReadFaultSegments(f)
}

func loadBValue(path string) (float64, error) {
	if path == "" {
		return domain.DefaultBValue, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	return catalogio.ReadBValue(f)
}

// catalogSpan returns the catalog's time span, widened to the study
// period when no timestamps parse.
func catalogSpan(events []*domain.Event) (time.Time, time.Time) {
	start := time.Date(2003, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 12, 31, 23, 59, 59, 0, time.UTC)

	var tMin, tMax time.Time
	for _, e := range events {
		t, err := time.Parse("2006-01-02 15:04:05", e.Time)
		if err != nil {
			continue
		}
		if tMin.IsZero() || t.Before(tMin) {
			tMin = t
		}
		if tMax.IsZero() || t.After(tMax) {
			tMax = t
		}
	}
	if tMin.IsZero() || !tMin.Before(tMax) {
		return start, end
	}
	return tMin, tMax
}
