package scaling

import "math"

// WellsCoppersmith is the empirical subsurface-rupture regression used by
// the bootstrap strategy:
//
//	log10(L_km) = -2.44 + 0.59*M
//	log10(W_km) = -1.01 + 0.32*M
type WellsCoppersmith struct{}

// NewWellsCoppersmith creates the Wells-Coppersmith scaling model.
func NewWellsCoppersmith() *WellsCoppersmith {
	return &WellsCoppersmith{}
}

// ID returns the model identifier.
func (*WellsCoppersmith) ID() string {
	return "WELLS_COPPERSMITH"
}

// Dimensions derives rupture geometry from the length and width
// regressions; area is their product.
func (*WellsCoppersmith) Dimensions(magnitude float64) Dimensions {
	length := math.Pow(10, -2.44+0.59*magnitude)
	width := math.Pow(10, -1.01+0.32*magnitude)
	return Dimensions{
		LengthKm: length,
		WidthKm:  width,
		AreaKm2:  length * width,
	}
}

var _ Model = (*WellsCoppersmith)(nil)
