package reporting

import (
	"context"
	"sort"
	"time"

	"seismic-catalog-lab/internal/assembler"
	"seismic-catalog-lab/internal/domain"
	"seismic-catalog-lab/internal/idhash"
	"seismic-catalog-lab/internal/storage"
)

// Generator produces dataset reports from the stored assembled catalog.
type Generator struct {
	catalogStore storage.CatalogStore
	folds        []domain.FoldRange
	now          func() time.Time // Injectable clock for deterministic output
}

// NewGenerator creates a new report generator.
func NewGenerator(catalogStore storage.CatalogStore, folds []domain.FoldRange) *Generator {
	return &Generator{
		catalogStore: catalogStore,
		folds:        folds,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// WithClock sets a custom clock function for deterministic output.
func (g *Generator) WithClock(now func() time.Time) *Generator {
	g.now = now
	return g
}

// Generate produces a complete dataset report. The b-value section and
// run metadata come from the caller since they belong to the generation
// run, not the stored catalog.
func (g *Generator) Generate(ctx context.Context, runID string, seed int64, bValue BValueSection) (*Report, error) {
	events, err := g.catalogStore.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	return &Report{
		GeneratedAt:    g.now(),
		RunID:          runID,
		DatasetVersion: idhash.ComputeDatasetVersion(events),
		Seed:           seed,
		DataSummary:    summarize(events),
		BValue:         bValue,
		MagnitudeRows:  magnitudeRows(events),
		FoldRows:       g.foldRows(events),
	}, nil
}

func summarize(events []*domain.Event) DataSummary {
	s := DataSummary{TotalEvents: len(events)}
	for i, e := range events {
		switch e.Method {
		case domain.MethodReal:
			s.RealEvents++
		case domain.MethodBootstrap:
			s.BootstrapEvents++
		case domain.MethodPhysics:
			s.PhysicsEvents++
		case domain.MethodSimple:
			s.SimpleEvents++
		}

		if i == 0 {
			s.MagnitudeMin, s.MagnitudeMax = e.Magnitude, e.Magnitude
			s.YearMin, s.YearMax = e.Year, e.Year
			continue
		}
		if e.Magnitude < s.MagnitudeMin {
			s.MagnitudeMin = e.Magnitude
		}
		if e.Magnitude > s.MagnitudeMax {
			s.MagnitudeMax = e.Magnitude
		}
		if e.Year < s.YearMin {
			s.YearMin = e.Year
		}
		if e.Year > s.YearMax {
			s.YearMax = e.Year
		}
	}
	return s
}

func magnitudeRows(events []*domain.Event) []MagnitudeRow {
	byBin := make(map[string]*MagnitudeRow)
	for _, label := range assembler.BinLabels() {
		byBin[label] = &MagnitudeRow{MagRange: label}
	}

	for _, e := range events {
		row, ok := byBin[e.MagRange]
		if !ok {
			continue // outside every bin
		}
		row.Total++
		switch e.Method {
		case domain.MethodReal:
			row.Real++
		case domain.MethodBootstrap:
			row.Bootstrap++
		case domain.MethodPhysics:
			row.Physics++
		case domain.MethodSimple:
			row.Simple++
		}
	}

	rows := make([]MagnitudeRow, 0, len(byBin))
	for _, label := range assembler.BinLabels() {
		rows = append(rows, *byBin[label])
	}
	return rows
}

func (g *Generator) foldRows(events []*domain.Event) []FoldRow {
	counts := make(map[int]int)
	for _, e := range events {
		counts[e.CVFold]++
	}

	var rows []FoldRow
	if counts[-1] > 0 {
		rows = append(rows, FoldRow{Fold: -1, Events: counts[-1]})
	}
	for i, f := range g.folds {
		rows = append(rows, FoldRow{
			Fold:      i,
			StartYear: f.StartYear,
			EndYear:   f.EndYear,
			Events:    counts[i],
		})
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Fold < rows[j].Fold })
	return rows
}
