package boundary

import (
	"math"

	"github.com/fogleman/delaunay"

	"github.com/auroralab/auroral-backend-go/internal/models"
)

// Grid is a regular n×n grid of interpolated field values. Values[i][j] is
// the field at (Xs[j], Ys[i]); nodes outside the convex hull of the input
// points hold NaN.
type Grid struct {
	Xs     []float64
	Ys     []float64
	Values [][]float64
}

// AllNaN reports whether no grid node received an interpolated value
func (g *Grid) AllNaN() bool {
	for _, row := range g.Values {
		for _, v := range row {
			if !math.IsNaN(v) {
				return false
			}
		}
	}
	return true
}

// InterpolateGrid resamples scattered window cells onto a regular n×n grid
// spanning the cells' bounding box, using barycentric interpolation over the
// Delaunay triangulation of the cell centers. Degenerate inputs (fewer than
// three cells, or all cells collinear) yield an all-NaN grid rather than an
// error; downstream treats that as "no boundary".
func InterpolateGrid(cells []models.WindowCell, n int) *Grid {
	grid := &Grid{
		Xs:     make([]float64, n),
		Ys:     make([]float64, n),
		Values: make([][]float64, n),
	}
	for i := range grid.Values {
		row := make([]float64, n)
		for j := range row {
			row[j] = math.NaN()
		}
		grid.Values[i] = row
	}

	if len(cells) == 0 || n < 2 {
		return grid
	}

	minLon, maxLon := cells[0].CenterLon, cells[0].CenterLon
	minLat, maxLat := cells[0].CenterLat, cells[0].CenterLat
	for _, c := range cells[1:] {
		minLon = math.Min(minLon, c.CenterLon)
		maxLon = math.Max(maxLon, c.CenterLon)
		minLat = math.Min(minLat, c.CenterLat)
		maxLat = math.Max(maxLat, c.CenterLat)
	}

	for i := 0; i < n; i++ {
		t := float64(i) / float64(n-1)
		grid.Xs[i] = minLon + t*(maxLon-minLon)
		grid.Ys[i] = minLat + t*(maxLat-minLat)
	}

	points := make([]delaunay.Point, len(cells))
	for i, c := range cells {
		points[i] = delaunay.Point{X: c.CenterLon, Y: c.CenterLat}
	}

	tri, err := delaunay.Triangulate(points)
	if err != nil {
		return grid
	}

	for t := 0; t < len(tri.Triangles); t += 3 {
		a := tri.Points[tri.Triangles[t]]
		b := tri.Points[tri.Triangles[t+1]]
		c := tri.Points[tri.Triangles[t+2]]

		va := cells[tri.Triangles[t]].Value
		vb := cells[tri.Triangles[t+1]].Value
		vc := cells[tri.Triangles[t+2]].Value

		det := (b.Y-c.Y)*(a.X-c.X) + (c.X-b.X)*(a.Y-c.Y)
		if det == 0 {
			continue
		}

		fillTriangle(grid, a, b, c, va, vb, vc, det)
	}

	return grid
}

// fillTriangle rasterizes one triangle onto the grid nodes inside its
// bounding box using barycentric weights
func fillTriangle(grid *Grid, a, b, c delaunay.Point, va, vb, vc, det float64) {
	const eps = 1e-12

	minX := math.Min(a.X, math.Min(b.X, c.X))
	maxX := math.Max(a.X, math.Max(b.X, c.X))
	minY := math.Min(a.Y, math.Min(b.Y, c.Y))
	maxY := math.Max(a.Y, math.Max(b.Y, c.Y))

	jLo, jHi := gridIndexRange(grid.Xs, minX, maxX)
	iLo, iHi := gridIndexRange(grid.Ys, minY, maxY)

	for i := iLo; i <= iHi; i++ {
		y := grid.Ys[i]
		for j := jLo; j <= jHi; j++ {
			x := grid.Xs[j]

			w1 := ((b.Y-c.Y)*(x-c.X) + (c.X-b.X)*(y-c.Y)) / det
			w2 := ((c.Y-a.Y)*(x-c.X) + (a.X-c.X)*(y-c.Y)) / det
			w3 := 1 - w1 - w2

			if w1 < -eps || w2 < -eps || w3 < -eps {
				continue
			}
			grid.Values[i][j] = w1*va + w2*vb + w3*vc
		}
	}
}

// gridIndexRange returns the inclusive index range of grid coordinates that
// fall inside [lo, hi]. The axis is uniformly spaced and ascending.
func gridIndexRange(axis []float64, lo, hi float64) (int, int) {
	n := len(axis)
	if n == 0 || axis[n-1] < lo || axis[0] > hi {
		return 0, -1
	}

	step := (axis[n-1] - axis[0]) / float64(n-1)
	if step == 0 {
		return 0, n - 1
	}

	iLo := int(math.Ceil((lo - axis[0]) / step))
	iHi := int(math.Floor((hi - axis[0]) / step))
	if iLo < 0 {
		iLo = 0
	}
	if iHi > n-1 {
		iHi = n - 1
	}
	return iLo, iHi
}
