package scaling

import (
	"math"
	"math/rand"
)

// Slip scatter parameters: log-normal multiplicative noise with
// underlying normal mean 0 and sigma 0.3, drawn fresh per event.
const slipScatterSigma = 0.3

// SeismicMoment returns the scalar moment in Nm:
//
//	M0 = 10^(1.5*M + 9.1)
func SeismicMoment(magnitude float64) float64 {
	return math.Pow(10, 1.5*magnitude+9.1)
}

// AverageSlip returns the mean slip in meters for a rupture of the given
// area, assuming shear modulus mu (Pa):
//
//	slip = M0 / (mu * area_m2), area_m2 = area_km2 * 1e6
func AverageSlip(momentNm, areaKm2, shearModulusPa float64) float64 {
	return momentNm / (shearModulusPa * areaKm2 * 1e6)
}

// ScatterSlip applies the per-event log-normal multiplicative scatter to
// a slip value, drawing from the supplied random source.
func ScatterSlip(slipM float64, rng *rand.Rand) float64 {
	return slipM * math.Exp(rng.NormFloat64()*slipScatterSigma)
}
