package scaling

import "math"

// AreaLaw is the self-similar area scaling used by the physics and simple
// strategies: log10(area_km2) = M - 4.0 with a fixed 2:1 aspect ratio.
type AreaLaw struct{}

// NewAreaLaw creates the area-law scaling model.
func NewAreaLaw() *AreaLaw {
	return &AreaLaw{}
}

// ID returns the model identifier.
func (*AreaLaw) ID() string {
	return "AREA_LAW"
}

// Dimensions derives rupture geometry:
//
//	area   = 10^(M - 4.0)
//	length = sqrt(2 * area)   (2:1 aspect ratio)
//	width  = length / 2
func (*AreaLaw) Dimensions(magnitude float64) Dimensions {
	area := math.Pow(10, magnitude-4.0)
	length := math.Sqrt(2 * area)
	return Dimensions{
		LengthKm: length,
		WidthKm:  length / 2,
		AreaKm2:  area,
	}
}

var _ Model = (*AreaLaw)(nil)
