package boundary

import (
	"context"
	"log"
	"sort"
	"sync"

	"github.com/auroralab/auroral-backend-go/internal/models"
)

// Engine fans the per-timestamp boundary computation out over a worker pool.
// Timestamps are independent of each other, so the workers share nothing but
// the detector; results are merged by timestamp key afterwards. Crossing
// detection needs every timestamp, so callers run it only after Run returns.
type Engine struct {
	detector *Detector
	workers  int
}

// NewEngine creates an engine with the given worker count (minimum 1)
func NewEngine(detector *Detector, workers int) *Engine {
	if workers < 1 {
		workers = 1
	}
	return &Engine{detector: detector, workers: workers}
}

// Run computes boundary results for every timestamp in the input map.
// Timestamps whose pipeline yields no usable boundary map to a nil result, so
// downstream consumers see the full set of processed keys. Cancellation is
// cooperative: workers check the context between timestamps.
func (e *Engine) Run(ctx context.Context, samplesByTime map[float64][]models.GeoSample) (map[float64]*models.BoundaryResult, error) {
	timestamps := make([]float64, 0, len(samplesByTime))
	for ts := range samplesByTime {
		timestamps = append(timestamps, ts)
	}
	sort.Float64s(timestamps)

	jobs := make(chan float64)
	var mu sync.Mutex
	results := make(map[float64]*models.BoundaryResult, len(timestamps))

	var wg sync.WaitGroup
	for w := 0; w < e.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for ts := range jobs {
				res := e.detector.Process(samplesByTime[ts])
				if res == nil {
					log.Printf("[BoundaryEngine] no usable boundary at ts=%.0f", ts)
				}
				mu.Lock()
				results[ts] = res
				mu.Unlock()
			}
		}()
	}

	var runErr error
	for _, ts := range timestamps {
		select {
		case <-ctx.Done():
			runErr = ctx.Err()
		case jobs <- ts:
			continue
		}
		break
	}
	close(jobs)
	wg.Wait()

	if runErr != nil {
		return nil, runErr
	}

	log.Printf("[BoundaryEngine] processed %d timestamps (%d workers)", len(results), e.workers)
	return results, nil
}
