package matching

import "math"

const (
	// Earth radius used by the great-circle computation, in kilometres.
	earthRadiusKm = 6378.1

	// KmPerMile converts statute miles to kilometres.
	KmPerMile = 1.609344
)

// DistanceKm returns the great-circle distance between two coordinates
// (degrees) in kilometres, using the spherical law of cosines.
//
// The arc-cosine argument is clamped to [-1, 1]: for identical or
// near-identical points floating-point noise can push it a hair above 1,
// which would yield NaN instead of 0.
func DistanceKm(lat1, lng1, lat2, lng2 float64) float64 {
	rlat1 := lat1 * math.Pi / 180
	rlat2 := lat2 * math.Pi / 180
	rdlng := (lng2 - lng1) * math.Pi / 180

	arg := math.Sin(rlat1)*math.Sin(rlat2) + math.Cos(rlat1)*math.Cos(rlat2)*math.Cos(rdlng)
	if arg > 1 {
		arg = 1
	} else if arg < -1 {
		arg = -1
	}
	return math.Acos(arg) * earthRadiusKm
}

// DistanceMiles returns the great-circle distance in miles, rounded to one
// decimal place. Symmetric in its arguments within rounding.
func DistanceMiles(lat1, lng1, lat2, lng2 float64) float64 {
	miles := DistanceKm(lat1, lng1, lat2, lng2) / KmPerMile
	return math.Round(miles*10) / 10
}
