package domain

// BoundingBox bounds the study region in degrees.
type BoundingBox struct {
	LonMin, LonMax float64
	LatMin, LatMax float64
}

// ClampLon clamps a longitude into the box.
func (b BoundingBox) ClampLon(lon float64) float64 {
	return clamp(lon, b.LonMin, b.LonMax)
}

// ClampLat clamps a latitude into the box.
func (b BoundingBox) ClampLat(lat float64) float64 {
	return clamp(lat, b.LatMin, b.LatMax)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// FoldRange is one inclusive year window of the cross-validation table.
type FoldRange struct {
	StartYear int
	EndYear   int
}

// Contains reports whether year falls inside the inclusive window.
func (r FoldRange) Contains(year int) bool {
	return year >= r.StartYear && year <= r.EndYear
}

// Generation method identifiers for strategy configs.
type StrategyType string

const (
	StrategyTypeBootstrap StrategyType = "BOOTSTRAP"
	StrategyTypePhysics   StrategyType = "PHYSICS"
	StrategyTypeSimple    StrategyType = "SIMPLE"
)

// StrategyConfig selects and parameterizes one generation strategy.
// Pointer fields are required per strategy type; the factory validates them.
type StrategyConfig struct {
	StrategyType StrategyType

	// BOOTSTRAP
	TemplateMinMag *float64 // default 5.0
	TemplateMaxMag *float64 // default 6.0 (exclusive)
	DeltaMagMin    *float64 // default 1.5
	DeltaMagMax    *float64 // default 2.3

	// PHYSICS
	TargetCount *int     // required
	BValue      *float64 // required
	MagFloor    *float64 // default 6.5
	MagCap      *float64 // default 7.3

	// SIMPLE
	SampleCount  *int     // required
	SimpleMinMag *float64 // default 6.5
	SimpleMaxMag *float64 // default 7.3
}

// Region and physics constants treated as configuration.
const (
	// Marmara study bounding box.
	DefaultLonMin = 26.0
	DefaultLonMax = 30.5
	DefaultLatMin = 39.5
	DefaultLatMax = 41.5

	// Shear modulus for slip estimation, Pa.
	DefaultShearModulusPa = 3.2e10

	// Epicenter jitter for physics synthetics, degrees (~5 km).
	DefaultEpicenterJitterDeg = 0.045

	// Fallback Gutenberg-Richter slope when estimation is undetermined.
	DefaultBValue = 1.15

	// Validity limits. Events beyond these are physically invalid.
	MaxRuptureLengthKm = 200.0
)

// DefaultStudyRegion returns the Marmara bounding box.
func DefaultStudyRegion() BoundingBox {
	return BoundingBox{
		LonMin: DefaultLonMin, LonMax: DefaultLonMax,
		LatMin: DefaultLatMin, LatMax: DefaultLatMax,
	}
}

// DefaultFoldTable returns the time-based cross-validation windows
// used for the 2003-2025 study period.
func DefaultFoldTable() []FoldRange {
	return []FoldRange{
		{2003, 2005}, {2006, 2008}, {2009, 2011},
		{2012, 2014}, {2015, 2017}, {2018, 2020},
		{2021, 2025},
	}
}

// MagnitudeBins are the diagnostic magnitude bin edges; events fall in
// half-open intervals (edge[i], edge[i+1]].
var MagnitudeBins = []float64{3.0, 4.0, 5.0, 6.0, 7.0, 8.0}
