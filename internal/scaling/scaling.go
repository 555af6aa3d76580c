// Package scaling maps magnitude to rupture geometry under two named
// scaling-law variants. The variants produce materially different rupture
// sizes for the same magnitude; both are preserved as distinct models and
// must never be silently unified.
package scaling

// Dimensions holds the rupture geometry derived from a magnitude.
type Dimensions struct {
	LengthKm float64
	WidthKm  float64
	AreaKm2  float64
}

// Model maps a moment magnitude to rupture dimensions.
type Model interface {
	// Dimensions returns the rupture geometry at the given magnitude.
	// Deterministic: same magnitude, same result.
	Dimensions(magnitude float64) Dimensions

	// ID returns the model identifier.
	ID() string
}
