package boundary

import (
	"testing"

	"github.com/auroralab/auroral-backend-go/internal/models"
)

func TestAggregateWindowsEmpty(t *testing.T) {
	cells := AggregateWindows(nil, WindowConfig{Width: 1, Height: 1, LonStep: 1, LatStep: 1})
	if cells != nil {
		t.Errorf("expected nil for empty input, got %v", cells)
	}
}

func TestAggregateWindowsMedian(t *testing.T) {
	// Two samples at the same location: the window median averages them.
	samples := []models.GeoSample{
		{Lon: 0, Lat: 0, Value: 0},
		{Lon: 0, Lat: 0, Value: 1},
	}
	cells := AggregateWindows(samples, WindowConfig{Width: 1, Height: 1, LonStep: 1, LatStep: 1})

	if len(cells) != 1 {
		t.Fatalf("expected 1 cell, got %d", len(cells))
	}
	if cells[0].Value != 0.5 {
		t.Errorf("cell value = %v, want 0.5", cells[0].Value)
	}
	if cells[0].CenterLon != 0 || cells[0].CenterLat != 0 {
		t.Errorf("cell center = (%v, %v), want (0, 0)", cells[0].CenterLon, cells[0].CenterLat)
	}
}

func TestAggregateWindowsSeparateCells(t *testing.T) {
	// Samples one window apart stay in separate cells; windows are half-open,
	// so neither sample bleeds into the other's cell.
	samples := []models.GeoSample{
		{Lon: 0, Lat: 0, Value: 1},
		{Lon: 1, Lat: 0, Value: 3},
	}
	cells := AggregateWindows(samples, WindowConfig{Width: 1, Height: 1, LonStep: 1, LatStep: 1})

	if len(cells) != 2 {
		t.Fatalf("expected 2 cells, got %d: %v", len(cells), cells)
	}
	if cells[0].Value != 1 {
		t.Errorf("first cell value = %v, want 1", cells[0].Value)
	}
	if cells[1].Value != 3 {
		t.Errorf("second cell value = %v, want 3", cells[1].Value)
	}
}

func TestAggregateWindowsOverlap(t *testing.T) {
	// A step smaller than the window makes neighbouring windows share
	// samples; the same sample then contributes to several cells.
	samples := []models.GeoSample{
		{Lon: 0, Lat: 0, Value: 2},
	}
	cells := AggregateWindows(samples, WindowConfig{Width: 2, Height: 2, LonStep: 0.5, LatStep: 0.5})

	if len(cells) < 4 {
		t.Fatalf("expected overlapping windows to emit several cells, got %d", len(cells))
	}
	for _, c := range cells {
		if c.Value != 2 {
			t.Errorf("cell (%v, %v) value = %v, want 2", c.CenterLon, c.CenterLat, c.Value)
		}
	}
}
