package satellite

import (
	"fmt"
	"math"

	"github.com/auroralab/auroral-backend-go/internal/config"
	"github.com/auroralab/auroral-backend-go/internal/models"
	"github.com/auroralab/auroral-backend-go/internal/spatial"
	"github.com/auroralab/auroral-backend-go/internal/stats"
)

// markersPerGap is the number of synthetic points inserted into each large
// time gap: one at the midpoint and one on either side of it.
const markersPerGap = 3

// SegmentFlybys splits a time-sorted index sequence into contiguous passes
// wherever the gap between neighbouring timestamps reaches gapThreshold.
// Each returned range is half-open; ranges are 0-indexed in time order.
func SegmentFlybys(timestamps []float64, gapThreshold float64) []models.IndexRange {
	if len(timestamps) == 0 {
		return nil
	}

	var ranges []models.IndexRange
	start := 0
	for i := 1; i < len(timestamps); i++ {
		if timestamps[i]-timestamps[i-1] >= gapThreshold {
			ranges = append(ranges, models.IndexRange{Start: start, End: i})
			start = i
		}
	}
	return append(ranges, models.IndexRange{Start: start, End: len(timestamps)})
}

// Builder converts a station-satellite pair's raw az/el/time series into
// sub-ionospheric trajectories and flybys
type Builder struct {
	stationLat float64 // radians
	stationLon float64 // radians
	cfg        config.BoundaryConfig
}

// NewBuilder creates a trajectory builder for a station given in radians
func NewBuilder(stationLatRad, stationLonRad float64, cfg config.BoundaryConfig) *Builder {
	return &Builder{
		stationLat: stationLatRad,
		stationLon: stationLonRad,
		cfg:        cfg,
	}
}

// project converts az/el samples (radians) to sub-ionospheric lat/lon degrees
func (b *Builder) project(az, el []float64) ([]float64, []float64) {
	lat := make([]float64, len(az))
	lon := make([]float64, len(az))
	for i := range az {
		latRad, lonRad := spatial.SubIonospheric(
			b.stationLat, b.stationLon, az[i], el[i],
			b.cfg.ShellHeightKm, b.cfg.EarthRadiusKm,
		)
		lat[i] = latRad * 180 / math.Pi
		lon[i] = lonRad * 180 / math.Pi
	}
	return lat, lon
}

// BuildTrajectory projects every sample, drops points outside the region of
// interest and inserts three NaN gap markers at the midpoint of every
// remaining gap longer than the configured interval, keeping time order.
//
// The lat/lon/timestamp arrays must stay aligned through synthesis; a
// mismatch indicates a bug in the marker insertion, not bad input, and
// panics.
func (b *Builder) BuildTrajectory(az, el, timestamps []float64) []models.TrajectoryPoint {
	lat, lon := b.project(az, el)

	// ROI filter.
	fLat := lat[:0]
	fLon := lon[:0]
	var fTs []float64
	for i := range lat {
		if lon[i] >= b.cfg.MinLon && lon[i] <= b.cfg.LonCondition && lat[i] >= b.cfg.LatCondition {
			fLat = append(fLat, lat[i])
			fLon = append(fLon, lon[i])
			fTs = append(fTs, timestamps[i])
		}
	}

	// Gap markers around the midpoint of each large gap.
	var outLat, outLon, outTs []float64
	for i := range fTs {
		if i > 0 && fTs[i]-fTs[i-1] > b.cfg.GapMarkerIntervalSeconds {
			mid := fTs[i-1] + (fTs[i]-fTs[i-1])/2
			for _, t := range []float64{
				mid - b.cfg.GapMarkerOffsetSeconds,
				mid,
				mid + b.cfg.GapMarkerOffsetSeconds,
			} {
				outLat = append(outLat, math.NaN())
				outLon = append(outLon, math.NaN())
				outTs = append(outTs, t)
			}
		}
		outLat = append(outLat, fLat[i])
		outLon = append(outLon, fLon[i])
		outTs = append(outTs, fTs[i])
	}

	if len(outLat) != len(outLon) || len(outLon) != len(outTs) {
		panic(fmt.Sprintf("trajectory arrays misaligned: lat=%d lon=%d ts=%d",
			len(outLat), len(outLon), len(outTs)))
	}

	points := make([]models.TrajectoryPoint, len(outTs))
	for i := range outTs {
		points[i] = models.TrajectoryPoint{
			Timestamp: outTs[i],
			Lon:       outLon[i],
			Lat:       outLat[i],
		}
	}
	return points
}

// BuildFlybys projects the full raw series (no ROI filter) and splits it into
// flybys by time gap. Each flyby carries its ROTI series with summary
// statistics, coordinates and the great-circle length of its ground track.
func (b *Builder) BuildFlybys(station, satellite string, roti, az, el, timestamps []float64) []models.Flyby {
	lat, lon := b.project(az, el)

	ranges := SegmentFlybys(timestamps, b.cfg.FlybyGapSeconds)
	flybys := make([]models.Flyby, 0, len(ranges))

	for idx, r := range ranges {
		track := make([]spatial.Point, 0, r.End-r.Start)
		for i := r.Start; i < r.End; i++ {
			if !math.IsNaN(lat[i]) && !math.IsNaN(lon[i]) {
				track = append(track, spatial.Point{Lon: lon[i], Lat: lat[i]})
			}
		}

		series := roti[r.Start:r.End]
		minRoti, maxRoti := stats.MinMax(series)

		flybys = append(flybys, models.Flyby{
			Station:    station,
			Satellite:  satellite,
			Index:      idx,
			Roti:       series,
			Timestamps: timestamps[r.Start:r.End],
			Lat:        models.CoordSeries(lat[r.Start:r.End]),
			Lon:        models.CoordSeries(lon[r.Start:r.End]),
			LengthKm:   spatial.PathLength(track),
			MeanRoti:   stats.Mean(series),
			MinRoti:    minRoti,
			MaxRoti:    maxRoti,
			P95Roti:    stats.Quantile(series, 0.95),
		})
	}

	return flybys
}
