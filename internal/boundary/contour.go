package boundary

import (
	"math"

	"github.com/auroralab/auroral-backend-go/internal/models"
)

// ExtractBoundary interpolates the aggregated cells onto a dense regular grid
// and extracts the iso-line vertices at the given threshold. Every resulting
// polyline is flattened into one list; per-polyline contiguity survives only
// as insertion order. An empty result means "no boundary", not an error.
func ExtractBoundary(cells []models.WindowCell, gridPoints int, threshold float64) []models.BoundaryPoint {
	if len(cells) == 0 {
		return nil
	}

	grid := InterpolateGrid(cells, gridPoints)
	if grid.AllNaN() {
		return nil
	}

	var out []models.BoundaryPoint
	for _, line := range MarchingSquares(grid, threshold) {
		out = append(out, line...)
	}
	return out
}

type segment struct {
	a, b models.BoundaryPoint
}

// MarchingSquares extracts the iso-lines of the interpolated grid at the
// given level and returns them as ordered polylines. Cells touching a NaN
// node are skipped, so contours stop at the convex hull of the input points.
func MarchingSquares(g *Grid, level float64) [][]models.BoundaryPoint {
	var segs []segment

	for i := 0; i < len(g.Ys)-1; i++ {
		for j := 0; j < len(g.Xs)-1; j++ {
			bl := g.Values[i][j]
			br := g.Values[i][j+1]
			tr := g.Values[i+1][j+1]
			tl := g.Values[i+1][j]

			if math.IsNaN(bl) || math.IsNaN(br) || math.IsNaN(tr) || math.IsNaN(tl) {
				continue
			}

			idx := 0
			if bl >= level {
				idx |= 1
			}
			if br >= level {
				idx |= 2
			}
			if tr >= level {
				idx |= 4
			}
			if tl >= level {
				idx |= 8
			}
			if idx == 0 || idx == 15 {
				continue
			}

			x0, x1 := g.Xs[j], g.Xs[j+1]
			y0, y1 := g.Ys[i], g.Ys[i+1]

			bottom := models.BoundaryPoint{Lon: lerp(x0, x1, bl, br, level), Lat: y0}
			top := models.BoundaryPoint{Lon: lerp(x0, x1, tl, tr, level), Lat: y1}
			left := models.BoundaryPoint{Lon: x0, Lat: lerp(y0, y1, bl, tl, level)}
			right := models.BoundaryPoint{Lon: x1, Lat: lerp(y0, y1, br, tr, level)}

			switch idx {
			case 1, 14:
				segs = append(segs, segment{left, bottom})
			case 2, 13:
				segs = append(segs, segment{bottom, right})
			case 3, 12:
				segs = append(segs, segment{left, right})
			case 4, 11:
				segs = append(segs, segment{right, top})
			case 6, 9:
				segs = append(segs, segment{bottom, top})
			case 7, 8:
				segs = append(segs, segment{left, top})
			case 5, 10:
				// Saddle cell: disambiguate with the cell-center average.
				center := (bl + br + tr + tl) / 4
				if (idx == 5) == (center >= level) {
					segs = append(segs, segment{left, top}, segment{bottom, right})
				} else {
					segs = append(segs, segment{left, bottom}, segment{right, top})
				}
			}
		}
	}

	return chainSegments(segs)
}

// lerp finds the coordinate between c0 and c1 where the field crosses level
func lerp(c0, c1, v0, v1, level float64) float64 {
	if v1 == v0 {
		return (c0 + c1) / 2
	}
	return c0 + (c1-c0)*(level-v0)/(v1-v0)
}

type pointKey struct {
	lon, lat int64
}

func keyOf(p models.BoundaryPoint) pointKey {
	const scale = 1e9
	return pointKey{
		lon: int64(math.Round(p.Lon * scale)),
		lat: int64(math.Round(p.Lat * scale)),
	}
}

// chainSegments links the unordered cell segments into polylines by matching
// shared endpoints
func chainSegments(segs []segment) [][]models.BoundaryPoint {
	byEnd := make(map[pointKey][]int, len(segs)*2)
	for i, s := range segs {
		byEnd[keyOf(s.a)] = append(byEnd[keyOf(s.a)], i)
		byEnd[keyOf(s.b)] = append(byEnd[keyOf(s.b)], i)
	}

	visited := make([]bool, len(segs))
	var lines [][]models.BoundaryPoint

	takeNext := func(at models.BoundaryPoint) (models.BoundaryPoint, bool) {
		for _, id := range byEnd[keyOf(at)] {
			if visited[id] {
				continue
			}
			visited[id] = true
			if keyOf(segs[id].a) == keyOf(at) {
				return segs[id].b, true
			}
			return segs[id].a, true
		}
		return models.BoundaryPoint{}, false
	}

	for i := range segs {
		if visited[i] {
			continue
		}
		visited[i] = true

		line := []models.BoundaryPoint{segs[i].a, segs[i].b}

		// Walk forward from the tail, then backward from the head.
		for {
			next, ok := takeNext(line[len(line)-1])
			if !ok {
				break
			}
			line = append(line, next)
		}
		for {
			prev, ok := takeNext(line[0])
			if !ok {
				break
			}
			line = append([]models.BoundaryPoint{prev}, line...)
		}

		lines = append(lines, line)
	}

	return lines
}
