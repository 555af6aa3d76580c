package domain

// Event represents one seismic occurrence, real or synthetic.
// Corresponds to one row of the catalog table.
type Event struct {
	ID        string  // unique token, e.g. "EQ_000042" or "SYN_PHYS_007"
	Time      string  // ISO-like timestamp string, parseable to a calendar instant
	Magnitude float64 // moment magnitude
	Longitude float64 // degrees east
	Latitude  float64 // degrees north
	DepthKm   float64 // hypocentral depth, >= 0 for valid events

	IsSynthetic  int     // 0 = real, 1 = generated
	SampleWeight float64 // relative trust in (0, 1]
	Method       string  // generation method tag

	// Derived rupture fields (nullable, set by generators)
	RuptureLengthKm *float64
	RuptureWidthKm  *float64
	RuptureAreaKm2  *float64
	AvgSlipM        *float64
	LogEnergy       *float64 // log10(joules), 1.5*M + 4.8
	SegmentID       *string
	Strike          *float64
	Dip             *float64
	Rake            *float64

	// Assembly fields, set by the assembler only
	Year     int    // derived from Time
	CVFold   int    // fold index, or -1 if outside every fold window
	MagRange string // magnitude bin label, e.g. "(6.0,7.0]"
}

// Generation method tags.
const (
	MethodReal      = "real"
	MethodBootstrap = "bootstrap"
	MethodPhysics   = "physics"
	MethodSimple    = "simple"
)

// Sample weights per generation method.
const (
	WeightReal      = 1.0
	WeightBootstrap = 0.3
	WeightPhysics   = 0.5
	WeightSimple    = 0.2
)

// RequiredColumns lists the fields every assembled event must carry.
var RequiredColumns = []string{
	"id", "time", "magnitude", "longitude", "latitude",
	"depth_km", "is_synthetic", "sample_weight", "method",
}

// Clone returns a deep copy of the event, including pointer fields.
func (e *Event) Clone() *Event {
	c := *e
	c.RuptureLengthKm = clonePtr(e.RuptureLengthKm)
	c.RuptureWidthKm = clonePtr(e.RuptureWidthKm)
	c.RuptureAreaKm2 = clonePtr(e.RuptureAreaKm2)
	c.AvgSlipM = clonePtr(e.AvgSlipM)
	c.LogEnergy = clonePtr(e.LogEnergy)
	c.SegmentID = clonePtr(e.SegmentID)
	c.Strike = clonePtr(e.Strike)
	c.Dip = clonePtr(e.Dip)
	c.Rake = clonePtr(e.Rake)
	return &c
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
