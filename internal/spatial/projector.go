package spatial

import "math"

// SubIonospheric calculates the sub-ionospheric point of a station-satellite
// line of sight: the geographic point where the ray pierces a thin ionospheric
// shell at the given height.
//
// stationLat, stationLon, az and el are in radians; the returned lat and lon
// are in radians, with lon wrapped into [-pi, pi]. NaN propagates if the
// inputs leave the formula's domain (e.g. cos(lat) == 0); callers accept that
// rather than correcting it.
func SubIonospheric(stationLat, stationLon, az, el, shellHeightKm, earthRadiusKm float64) (float64, float64) {
	psi := math.Pi/2 - el - math.Asin(math.Cos(el)*earthRadiusKm/(earthRadiusKm+shellHeightKm))

	lat := math.Asin(math.Sin(stationLat)*math.Cos(psi) + math.Cos(stationLat)*math.Sin(psi)*math.Cos(az))
	lon := stationLon + math.Asin(math.Sin(psi)*math.Sin(az)/math.Cos(lat))

	if lon > math.Pi {
		lon -= 2 * math.Pi
	}
	if lon < -math.Pi {
		lon += 2 * math.Pi
	}
	return lat, lon
}
