package service

import (
	"context"
	"log"
)

// PipelineService orchestrates the full batch run: per-timestamp boundary
// computation (parallel), flyby/trajectory building, then crossing detection.
// Crossing detection is a strict barrier: it needs results for every
// timestamp before it can compare consecutive pairs.
type PipelineService struct {
	boundary *BoundaryService
	flyby    *FlybyService
	crossing *CrossingService
}

// NewPipelineService creates a new pipeline service
func NewPipelineService(b *BoundaryService, f *FlybyService, c *CrossingService) *PipelineService {
	return &PipelineService{boundary: b, flyby: f, crossing: c}
}

// Run executes the whole pipeline over the stored inputs
func (s *PipelineService) Run(ctx context.Context) error {
	log.Printf("[Pipeline] starting batch run")

	boundaries, err := s.boundary.ProcessAll(ctx)
	if err != nil {
		return err
	}

	positions, err := s.flyby.BuildAll(ctx)
	if err != nil {
		return err
	}

	pairs, err := s.flyby.samples.ListPairs()
	if err != nil {
		return err
	}

	if err := s.crossing.DetectAndStore(boundaries, positions, pairs); err != nil {
		return err
	}

	log.Printf("[Pipeline] batch run complete: %d timestamps, %d pairs", len(boundaries), len(pairs))
	return nil
}
