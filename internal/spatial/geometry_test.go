package spatial

import (
	"math"
	"testing"
)

func TestCentroid(t *testing.T) {
	tests := []struct {
		name   string
		points []Point
		want   Point
	}{
		{"empty", nil, Point{}},
		{"single", []Point{{Lon: -90, Lat: 50}}, Point{Lon: -90, Lat: 50}},
		{"square", []Point{
			{Lon: 0, Lat: 0}, {Lon: 2, Lat: 0}, {Lon: 2, Lat: 2}, {Lon: 0, Lat: 2},
		}, Point{Lon: 1, Lat: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Centroid(tt.points); got != tt.want {
				t.Errorf("Centroid = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestBoundingBox(t *testing.T) {
	points := []Point{
		{Lon: -100, Lat: 45}, {Lon: -80, Lat: 55}, {Lon: -90, Lat: 50},
	}
	minLon, minLat, maxLon, maxLat := BoundingBox(points)
	if minLon != -100 || minLat != 45 || maxLon != -80 || maxLat != 55 {
		t.Errorf("BoundingBox = (%v, %v, %v, %v), want (-100, 45, -80, 55)",
			minLon, minLat, maxLon, maxLat)
	}
}

func TestPointInPolygon(t *testing.T) {
	square := []Point{
		{Lon: -100, Lat: 45},
		{Lon: -80, Lat: 45},
		{Lon: -80, Lat: 55},
		{Lon: -100, Lat: 55},
	}

	tests := []struct {
		name    string
		point   Point
		polygon []Point
		want    bool
	}{
		{"center", Point{Lon: -90, Lat: 50}, square, true},
		{"west of box", Point{Lon: -110, Lat: 50}, square, false},
		{"north of box", Point{Lon: -90, Lat: 60}, square, false},
		{"degenerate polygon", Point{Lon: -90, Lat: 50}, square[:2], false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PointInPolygon(tt.point, tt.polygon); got != tt.want {
				t.Errorf("PointInPolygon(%+v) = %v, want %v", tt.point, got, tt.want)
			}
		})
	}
}

func TestPathLength(t *testing.T) {
	if got := PathLength([]Point{{Lon: 0, Lat: 0}}); got != 0 {
		t.Errorf("single-point path length = %v, want 0", got)
	}

	// One degree of latitude along a meridian.
	got := PathLength([]Point{{Lon: 0, Lat: 0}, {Lon: 0, Lat: 1}})
	want := math.Pi / 180 * EarthRadiusMeters / 1000
	if math.Abs(got-want) > 0.01 {
		t.Errorf("one-degree meridian arc = %v km, want %v km", got, want)
	}

	// A path's length is the sum of its legs.
	twoLegs := PathLength([]Point{{Lon: 0, Lat: 0}, {Lon: 0, Lat: 1}, {Lon: 0, Lat: 2}})
	if math.Abs(twoLegs-2*want) > 0.02 {
		t.Errorf("two-degree meridian arc = %v km, want %v km", twoLegs, 2*want)
	}
}
