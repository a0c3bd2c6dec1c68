package boundary

import (
	"github.com/auroralab/auroral-backend-go/internal/config"
	"github.com/auroralab/auroral-backend-go/internal/models"
)

// Detector runs the full per-timestamp boundary pipeline:
// ROI filter -> sliding-window aggregation -> iso-contour -> clustering.
// It is a pure function over its input; one Detector is safe for concurrent
// use across timestamps.
type Detector struct {
	cfg       config.BoundaryConfig
	clusterer *Clusterer
}

// NewDetector creates a detector for the given pipeline configuration
func NewDetector(cfg config.BoundaryConfig) *Detector {
	return &Detector{
		cfg: cfg,
		clusterer: NewClusterer(ClusterConfig{
			Eps:            cfg.DBSCANEps,
			MinSamples:     cfg.DBSCANMinSamples,
			MinClusterSize: cfg.MinClusterSize,
			LatCondition:   cfg.LatCondition,
			MaxLatitude:    cfg.MaxLatitude,
		}),
	}
}

// FilterROI drops samples outside the configured region of interest
func (d *Detector) FilterROI(samples []models.GeoSample) []models.GeoSample {
	var out []models.GeoSample
	for _, s := range samples {
		if s.Lon >= d.cfg.MinLon && s.Lon <= d.cfg.LonCondition && s.Lat >= d.cfg.LatCondition {
			out = append(out, s)
		}
	}
	return out
}

// Process computes the boundary result for one timestamp's samples.
// A nil result means no usable boundary (empty input, all-NaN interpolation,
// or clusters below the minimum size); that is a skip, not an error.
func (d *Detector) Process(samples []models.GeoSample) *models.BoundaryResult {
	filtered := d.FilterROI(samples)
	if len(filtered) == 0 {
		return nil
	}

	cells := AggregateWindows(filtered, WindowConfig{
		Width:   d.cfg.WindowWidth,
		Height:  d.cfg.WindowHeight(),
		LonStep: d.cfg.SegmentLonStep,
		LatStep: d.cfg.SegmentLatStep,
	})

	points := ExtractBoundary(cells, d.cfg.GridPoints, d.cfg.BoundaryCondition)

	return d.clusterer.Cluster(points)
}
