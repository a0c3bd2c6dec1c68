package models

// GeoSample is a single geo-located ROTI observation on the ionospheric map
type GeoSample struct {
	Lon   float64 `json:"lon" db:"lon"`
	Lat   float64 `json:"lat" db:"lat"`
	Value float64 `json:"value" db:"value"`
}

// WindowCell is the median-aggregated value of one sliding-window position.
// A cell exists only if at least one sample fell inside the window.
type WindowCell struct {
	CenterLon float64 `json:"center_lon" db:"center_lon"`
	CenterLat float64 `json:"center_lat" db:"center_lat"`
	Value     float64 `json:"value" db:"value"`
}
