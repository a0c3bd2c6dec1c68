package service

import (
	"context"
	"log"

	"github.com/auroralab/auroral-backend-go/internal/boundary"
	"github.com/auroralab/auroral-backend-go/internal/models"
	"github.com/auroralab/auroral-backend-go/internal/repository"
)

// BoundaryService runs the per-timestamp boundary stage over stored samples
// and serves the stored results
type BoundaryService struct {
	engine     *boundary.Engine
	samples    *repository.SampleRepository
	boundaries *repository.BoundaryRepository
}

// NewBoundaryService creates a new boundary service
func NewBoundaryService(
	engine *boundary.Engine,
	samples *repository.SampleRepository,
	boundaries *repository.BoundaryRepository,
) *BoundaryService {
	return &BoundaryService{engine: engine, samples: samples, boundaries: boundaries}
}

// ProcessAll computes boundary results for every stored timestamp and
// replaces the persisted products. It returns the in-memory result map so the
// crossing stage can run without a round trip through the store.
func (s *BoundaryService) ProcessAll(ctx context.Context) (map[float64]*models.BoundaryResult, error) {
	samplesByTime, err := s.samples.ListSamplesByTime()
	if err != nil {
		return nil, err
	}
	if len(samplesByTime) == 0 {
		log.Printf("[BoundaryService] no samples stored, nothing to process")
		return map[float64]*models.BoundaryResult{}, nil
	}

	results, err := s.engine.Run(ctx, samplesByTime)
	if err != nil {
		return nil, err
	}

	if err := s.boundaries.SaveResults(results); err != nil {
		return nil, err
	}
	return results, nil
}

// GetBoundaries loads stored boundary results for [from, to]
func (s *BoundaryService) GetBoundaries(from, to float64) (map[float64]*models.BoundaryResult, error) {
	return s.boundaries.ListRange(from, to)
}

// GetBoundary loads one timestamp's boundary result; nil when absent
func (s *BoundaryService) GetBoundary(ts float64) (*models.BoundaryResult, error) {
	return s.boundaries.GetByTimestamp(ts)
}
