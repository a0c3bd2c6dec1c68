package service

import (
	"context"
	"fmt"
	"log"
	"math"

	"github.com/auroralab/auroral-backend-go/internal/config"
	"github.com/auroralab/auroral-backend-go/internal/crossing"
	"github.com/auroralab/auroral-backend-go/internal/models"
	"github.com/auroralab/auroral-backend-go/internal/repository"
	"github.com/auroralab/auroral-backend-go/internal/satellite"
)

// FlybyService builds trajectories and flybys from stored az/el series
type FlybyService struct {
	cfg     config.BoundaryConfig
	samples *repository.SampleRepository
	flybys  *repository.FlybyRepository
}

// NewFlybyService creates a new flyby service
func NewFlybyService(
	cfg config.BoundaryConfig,
	samples *repository.SampleRepository,
	flybys *repository.FlybyRepository,
) *FlybyService {
	return &FlybyService{cfg: cfg, samples: samples, flybys: flybys}
}

// BuildAll builds and stores flybys for every stored station-satellite pair
// and returns satellite positions bucketed onto the map time grid, keyed
// timestamp -> pair id, ready for crossing detection. Pairs whose station has
// no stored coordinates are skipped with a warning.
func (s *FlybyService) BuildAll(ctx context.Context) (map[float64]map[string]crossing.Position, error) {
	pairs, err := s.samples.ListPairs()
	if err != nil {
		return nil, err
	}

	positions := make(map[float64]map[string]crossing.Position)

	for _, pair := range pairs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		stationName, satName := pair[0], pair[1]

		station, err := s.samples.GetStation(stationName)
		if err != nil {
			return nil, err
		}
		if station == nil {
			log.Printf("[FlybyService] no coordinates for station %s, skipping %s_%s",
				stationName, stationName, satName)
			continue
		}

		timestamps, az, el, roti, err := s.samples.GetSeries(stationName, satName)
		if err != nil {
			return nil, err
		}
		if len(timestamps) == 0 {
			continue
		}

		builder := satellite.NewBuilder(station.LatRad, station.LonRad, s.cfg)

		flybys := builder.BuildFlybys(stationName, satName, roti, az, el, timestamps)
		if err := s.flybys.SaveFlybys(stationName, satName, flybys); err != nil {
			return nil, fmt.Errorf("failed to save flybys for %s_%s: %w", stationName, satName, err)
		}

		trajectory := builder.BuildTrajectory(az, el, timestamps)
		pairID := crossing.PairID(stationName, satName)
		for _, p := range trajectory {
			if p.IsGapMarker() {
				continue
			}
			ts := math.Round(p.Timestamp/s.cfg.MapStepSeconds) * s.cfg.MapStepSeconds
			if positions[ts] == nil {
				positions[ts] = make(map[string]crossing.Position)
			}
			positions[ts][pairID] = crossing.Position{Lon: p.Lon, Lat: p.Lat}
		}

		log.Printf("[FlybyService] %s_%s: %d flybys, %d trajectory points",
			stationName, satName, len(flybys), len(trajectory))
	}

	return positions, nil
}

// ListFlybys loads a pair's stored flybys
func (s *FlybyService) ListFlybys(station, satellite string) ([]models.Flyby, error) {
	return s.flybys.ListFlybys(station, satellite)
}
