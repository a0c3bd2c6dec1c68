package service

import (
	"fmt"
	"log"
	"sort"

	"github.com/auroralab/auroral-backend-go/internal/crossing"
	"github.com/auroralab/auroral-backend-go/internal/models"
	"github.com/auroralab/auroral-backend-go/internal/repository"
)

// CrossingService detects boundary crossings over the full timestamp set and
// persists episodes aligned with each pair's flybys
type CrossingService struct {
	detector     *crossing.Detector
	timeGapLimit float64 // debounce window for event cleaning, seconds
	flybys       *repository.FlybyRepository
	crossings    *repository.CrossingRepository
}

// NewCrossingService creates a new crossing service
func NewCrossingService(
	detector *crossing.Detector,
	timeGapLimitSeconds float64,
	flybys *repository.FlybyRepository,
	crossings *repository.CrossingRepository,
) *CrossingService {
	return &CrossingService{
		detector:     detector,
		timeGapLimit: timeGapLimitSeconds,
		flybys:       flybys,
		crossings:    crossings,
	}
}

// DetectAndStore runs crossing detection over the boundary results and
// satellite positions, then stores each pair's episodes index-aligned with
// its flybys. Episodes are time-sorted and cleaned (duplicate and flapping
// events collapsed) before storage. When a satellite has more flybys than
// detected episodes, its remaining flybys are skipped (not stored with an
// empty episode); this mirrors the historical early-break behavior.
func (s *CrossingService) DetectAndStore(
	boundaries map[float64]*models.BoundaryResult,
	positions map[float64]map[string]crossing.Position,
	pairs [][2]string,
) error {
	detected := s.detector.Detect(boundaries, positions)

	for _, pair := range pairs {
		station, satName := pair[0], pair[1]

		flybys, err := s.flybys.ListFlybys(station, satName)
		if err != nil {
			return err
		}

		episodes := detected[station][satName]

		var aligned []models.CrossingEpisode
		for i := range flybys {
			if i >= len(episodes) {
				log.Printf("[CrossingService] no crossing episode for %s_%s flyby %d, stopping pair",
					station, satName, i)
				break
			}
			aligned = append(aligned, crossing.CleanEvents(sortedEpisode(episodes[i]), s.timeGapLimit))
		}

		if err := s.crossings.SaveEpisodes(station, satName, aligned); err != nil {
			return fmt.Errorf("failed to save episodes for %s_%s: %w", station, satName, err)
		}
	}

	return nil
}

// ListEpisodes loads a pair's stored crossing episodes
func (s *CrossingService) ListEpisodes(station, satellite string) ([]models.CrossingEpisode, error) {
	return s.crossings.ListEpisodes(station, satellite)
}

// sortedEpisode returns a copy of the episode with events in time order
func sortedEpisode(ep models.CrossingEpisode) models.CrossingEpisode {
	out := make(models.CrossingEpisode, len(ep))
	copy(out, ep)
	sort.Slice(out, func(i, j int) bool { return out[i].Time < out[j].Time })
	return out
}
