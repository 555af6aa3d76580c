// Package geo provides great-circle geometry on the WGS-oblate-ignoring
// spherical Earth approximation used throughout the catalog pipeline.
package geo

import "math"

// EarthRadiusKm is the mean Earth radius used by the haversine formula.
const EarthRadiusKm = 6371.0

// Distance returns the great-circle distance in kilometers between two
// (longitude, latitude) points in degrees, via the haversine formula.
// NaN coordinates propagate as NaN.
func Distance(lon1, lat1, lon2, lat2 float64) float64 {
	rlat1 := lat1 * math.Pi / 180
	rlon1 := lon1 * math.Pi / 180
	rlat2 := lat2 * math.Pi / 180
	rlon2 := lon2 * math.Pi / 180

	dlat := rlat2 - rlat1
	dlon := rlon2 - rlon1

	a := math.Sin(dlat/2)*math.Sin(dlat/2) +
		math.Cos(rlat1)*math.Cos(rlat2)*math.Sin(dlon/2)*math.Sin(dlon/2)
	c := 2 * math.Asin(math.Sqrt(a))

	return c * EarthRadiusKm
}
