package reporting

import (
	"time"

	"seismic-catalog-lab/internal/gr"
)

// Report describes one assembled synthetic catalog.
type Report struct {
	// Metadata
	GeneratedAt    time.Time
	RunID          string
	DatasetVersion string
	Seed           int64

	// Data Summary
	DataSummary DataSummary

	// Frequency-magnitude analysis
	BValue BValueSection

	// Magnitude distribution (bin x method counts, sorted by bin)
	MagnitudeRows []MagnitudeRow

	// Fold occupancy (sorted by fold index, -1 first)
	FoldRows []FoldRow
}

// DataSummary describes the assembled catalog.
type DataSummary struct {
	TotalEvents     int
	RealEvents      int
	BootstrapEvents int
	PhysicsEvents   int
	SimpleEvents    int

	MagnitudeMin float64
	MagnitudeMax float64
	YearMin      int
	YearMax      int
}

// BValueSection carries the estimate the generation run used plus the
// multi-threshold diagnostic table.
type BValueSection struct {
	Estimate     float64
	Uncertainty  float64
	SampleSize   int
	UsedFallback bool
	Table        []gr.ThresholdRow
}

// MagnitudeRow is one magnitude bin with per-method counts.
type MagnitudeRow struct {
	MagRange  string
	Real      int
	Bootstrap int
	Physics   int
	Simple    int
	Total     int
}

// FoldRow is one cross-validation fold with its event count.
type FoldRow struct {
	Fold      int // -1 means outside every fold window
	StartYear int
	EndYear   int
	Events    int
}
