package models

import (
	"encoding/json"
	"math"
	"strconv"
)

// TrajectoryPoint is one sample of a satellite's sub-ionospheric trace.
// Gap markers are synthetic points with NaN coordinates; they carry a real
// timestamp but never a real observation.
type TrajectoryPoint struct {
	Timestamp float64 `json:"timestamp"` // unix seconds
	Lon       float64 `json:"lon"`
	Lat       float64 `json:"lat"`
}

// IsGapMarker reports whether the point is a synthetic gap marker
func (p TrajectoryPoint) IsGapMarker() bool {
	return math.IsNaN(p.Lon) || math.IsNaN(p.Lat)
}

// IndexRange is a half-open [Start, End) run of indices into a time series
type IndexRange struct {
	Start int
	End   int
}

// CoordSeries is a coordinate series that may hold NaN for out-of-domain
// projections. NaN entries serialize as JSON null and deserialize back to NaN;
// encoding/json rejects NaN outright.
type CoordSeries []float64

// MarshalJSON implements json.Marshaler
func (s CoordSeries) MarshalJSON() ([]byte, error) {
	buf := make([]byte, 0, len(s)*8+2)
	buf = append(buf, '[')
	for i, v := range s {
		if i > 0 {
			buf = append(buf, ',')
		}
		if math.IsNaN(v) {
			buf = append(buf, "null"...)
		} else {
			buf = strconv.AppendFloat(buf, v, 'g', -1, 64)
		}
	}
	return append(buf, ']'), nil
}

// UnmarshalJSON implements json.Unmarshaler
func (s *CoordSeries) UnmarshalJSON(data []byte) error {
	var raw []*float64
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(CoordSeries, len(raw))
	for i, v := range raw {
		if v == nil {
			out[i] = math.NaN()
		} else {
			out[i] = *v
		}
	}
	*s = out
	return nil
}

// Flyby is one contiguous pass of a station-satellite pair, split from the
// raw series wherever the time gap reaches the configured threshold.
// Flybys are 0-indexed per (station, satellite) in timestamp order.
type Flyby struct {
	Station    string      `json:"station"`
	Satellite  string      `json:"satellite"`
	Index      int         `json:"index"`
	Roti       []float64   `json:"roti"`
	Timestamps []float64   `json:"timestamps"`
	Lat        CoordSeries `json:"lat"`
	Lon        CoordSeries `json:"lon"`
	// LengthKm is the great-circle length of the sub-ionospheric ground track
	LengthKm float64 `json:"length_km"`
	// Summary statistics of the pass's ROTI series
	MeanRoti float64 `json:"mean_roti"`
	MinRoti  float64 `json:"min_roti"`
	MaxRoti  float64 `json:"max_roti"`
	P95Roti  float64 `json:"p95_roti"`
}
