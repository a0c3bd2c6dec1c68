package config

import (
	"os"
	"strconv"
)

// Config holds process-level configuration
type Config struct {
	Port    string
	DBPath  string
	Workers int // worker pool size for the per-timestamp boundary stage
}

// Load reads configuration from environment variables
func Load() *Config {
	port := os.Getenv("PORT")
	if port == "" {
		port = ":8080"
	}

	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "./data/auroral/auroral.db"
	}

	workers := 4
	if v := os.Getenv("WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			workers = n
		}
	}

	return &Config{
		Port:    port,
		DBPath:  dbPath,
		Workers: workers,
	}
}

// BoundaryConfig carries every tunable of the boundary and crossing pipeline.
// It is passed explicitly into each component; there is no process-wide state.
type BoundaryConfig struct {
	// Region of interest: lon in [MinLon, LonCondition], lat >= LatCondition
	MinLon       float64
	LonCondition float64
	LatCondition float64

	// Sliding window geometry (degrees). Window height is WindowArea/WindowWidth.
	SegmentLonStep float64
	SegmentLatStep float64
	WindowWidth    float64
	WindowArea     float64

	// Iso-contour extraction
	BoundaryCondition float64 // ROTI threshold of the auroral oval boundary
	GridPoints        int     // interpolation grid resolution per axis

	// Boundary clustering
	DBSCANEps        float64
	DBSCANMinSamples int
	MinClusterSize   int
	MaxLatitude      float64 // pole clamp for synthesized edge points

	// Sub-ionospheric projection
	EarthRadiusKm float64
	ShellHeightKm float64

	// Trajectory synthesis
	GapMarkerIntervalSeconds float64 // insert markers into gaps longer than this
	GapMarkerOffsetSeconds   float64 // marker offset around the gap midpoint

	// Temporal grouping
	FlybyGapSeconds   float64 // time gap that splits a satellite pass
	EpisodeGapSeconds float64 // time gap that splits crossing episodes

	// TimeGapLimitSeconds is the debounce window of event cleaning: runs of
	// crossing events flapping within this window collapse before storage.
	TimeGapLimitSeconds float64

	// MapStepSeconds is the time grid of the per-timestamp maps; satellite
	// positions are bucketed onto it for crossing detection.
	MapStepSeconds float64
}

// WindowHeight returns the sliding-window height in degrees
func (c BoundaryConfig) WindowHeight() float64 {
	return c.WindowArea / c.WindowWidth
}

// DefaultBoundaryConfig returns the pipeline defaults for the
// North-American auroral sector
func DefaultBoundaryConfig() BoundaryConfig {
	return BoundaryConfig{
		MinLon:       -120,
		LonCondition: -60,
		LatCondition: 40,

		SegmentLonStep: 0.2,
		SegmentLatStep: 0.7,
		WindowWidth:    10,
		WindowArea:     50,

		BoundaryCondition: 0.07,
		GridPoints:        100,

		DBSCANEps:        0.7,
		DBSCANMinSamples: 3,
		MinClusterSize:   100,
		MaxLatitude:      90,

		EarthRadiusKm: 6356,
		ShellHeightKm: 300,

		GapMarkerIntervalSeconds: 600,
		GapMarkerOffsetSeconds:   30,

		FlybyGapSeconds:   1800,
		EpisodeGapSeconds: 10800,

		TimeGapLimitSeconds: 900,

		MapStepSeconds: 300,
	}
}
