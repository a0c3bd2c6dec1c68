package boundary

import (
	"math"

	"github.com/auroralab/auroral-backend-go/internal/models"
	"github.com/auroralab/auroral-backend-go/internal/stats"
)

// WindowConfig is the sliding-window geometry in degrees. The step is usually
// smaller than the window, so neighbouring windows overlap; that overlap is
// the intended smoothing, not a tiling.
type WindowConfig struct {
	Width   float64 // window extent in longitude
	Height  float64 // window extent in latitude
	LonStep float64
	LatStep float64
}

// AggregateWindows bins an irregular point cloud into sliding-window cells,
// aggregating each window by the median of the samples inside it. Windows are
// half-open boxes [origin, origin+size) on each axis; a cell is emitted only
// when at least one sample falls inside.
func AggregateWindows(samples []models.GeoSample, cfg WindowConfig) []models.WindowCell {
	if len(samples) == 0 {
		return nil
	}

	minLon, maxLon := samples[0].Lon, samples[0].Lon
	minLat, maxLat := samples[0].Lat, samples[0].Lat
	for _, s := range samples[1:] {
		minLon = math.Min(minLon, s.Lon)
		maxLon = math.Max(maxLon, s.Lon)
		minLat = math.Min(minLat, s.Lat)
		maxLat = math.Max(maxLat, s.Lat)
	}

	latSteps := int(math.Ceil((maxLat-minLat+cfg.Height)/cfg.LatStep)) + 1
	lonSteps := int(math.Ceil((maxLon-minLon+cfg.Width)/cfg.LonStep)) + 1

	var cells []models.WindowCell
	values := make([]float64, 0, len(samples))

	for i := 0; i < latSteps; i++ {
		originLat := minLat - cfg.Height/2 + float64(i)*cfg.LatStep

		for j := 0; j < lonSteps; j++ {
			originLon := minLon - cfg.Width/2 + float64(j)*cfg.LonStep

			values = values[:0]
			for _, s := range samples {
				if s.Lon >= originLon && s.Lon < originLon+cfg.Width &&
					s.Lat >= originLat && s.Lat < originLat+cfg.Height {
					values = append(values, s.Value)
				}
			}

			if len(values) == 0 {
				continue
			}

			cells = append(cells, models.WindowCell{
				CenterLon: originLon + cfg.Width/2,
				CenterLat: originLat + cfg.Height/2,
				Value:     stats.Median(values),
			})
		}
	}

	return cells
}
