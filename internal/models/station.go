package models

// Station is a GNSS ground station. Coordinates are stored in radians, the
// unit the sub-ionospheric projection works in.
type Station struct {
	Name   string  `json:"name" db:"name"`
	LatRad float64 `json:"lat_rad" db:"lat_rad"`
	LonRad float64 `json:"lon_rad" db:"lon_rad"`
}
