package boundary

import (
	"math"
	"sort"

	"github.com/auroralab/auroral-backend-go/internal/models"
	"github.com/auroralab/auroral-backend-go/internal/spatial"
)

// ClusterConfig holds the clustering and stitching parameters
type ClusterConfig struct {
	Eps            float64 // DBSCAN neighbourhood radius in degrees
	MinSamples     int     // DBSCAN core-point threshold
	MinClusterSize int     // clusters (and stitched rings) below this are discarded
	LatCondition   float64 // equatorward latitude clamp for the top ring
	MaxLatitude    float64 // pole latitude clamp
}

// Clusterer groups boundary points into clusters and stitches them into
// closed rings
type Clusterer struct {
	cfg ClusterConfig
}

// NewClusterer creates a new boundary clusterer
func NewClusterer(cfg ClusterConfig) *Clusterer {
	return &Clusterer{cfg: cfg}
}

// Cluster groups the boundary points into 0, 1 or 2 spatial clusters,
// classifies their layout and stitches each surviving cluster into a ring.
// A nil result means no usable boundary: empty input, only noise, or rings
// that fell below MinClusterSize after trimming.
func (c *Clusterer) Cluster(points []models.BoundaryPoint) *models.BoundaryResult {
	if len(points) == 0 {
		return nil
	}

	labels := dbscanLabels(points, c.cfg.Eps, c.cfg.MinSamples)

	counts := make(map[int]int)
	for _, l := range labels {
		if l >= 0 {
			counts[l]++
		}
	}

	var valid []int
	for l, n := range counts {
		if n >= c.cfg.MinClusterSize {
			valid = append(valid, l)
		}
	}
	if len(valid) == 0 {
		return nil
	}

	// Largest first; ties break on label for determinism.
	sort.Slice(valid, func(i, j int) bool {
		if counts[valid[i]] != counts[valid[j]] {
			return counts[valid[i]] > counts[valid[j]]
		}
		return valid[i] < valid[j]
	})

	clusters := make([]models.Ring, len(valid))
	for i, l := range valid {
		ring := make(models.Ring, 0, counts[l])
		for p, pl := range labels {
			if pl == l {
				ring = append(ring, points[p])
			}
		}
		clusters[i] = ring
	}

	if len(clusters) == 1 {
		return c.processSingle(clusters[0])
	}
	return c.processPair(clusters[0], clusters[1])
}

// processSingle closes a lone cluster toward the pole: copies of its
// westmost and eastmost points are clamped to MaxLatitude and inserted at the
// start and end of the ring, then the tail-trim heuristic is applied.
func (c *Clusterer) processSingle(ring models.Ring) *models.BoundaryResult {
	left := ring[argMinLon(ring)]
	right := ring[argMaxLon(ring)]
	left.Lat = c.cfg.MaxLatitude
	right.Lat = c.cfg.MaxLatitude

	closed := make(models.Ring, 0, len(ring)+2)
	closed = append(closed, left)
	closed = append(closed, ring...)
	closed = append(closed, right)

	closed = removeCircularPoints(closed, c.cfg.MaxLatitude)
	if len(closed) < c.cfg.MinClusterSize {
		return nil
	}

	return &models.BoundaryResult{
		Relation: models.RelationSingle,
		Rings:    []models.Ring{closed},
	}
}

// processPair classifies the two largest clusters by their centroid delta and
// stitches them when they are stacked in latitude. Side-by-side clusters are
// returned as-is: the left-right branch is intentionally left unclosed.
func (c *Clusterer) processPair(first, second models.Ring) *models.BoundaryResult {
	c1 := centroid(first)
	c2 := centroid(second)

	if math.Abs(c1.Lon-c2.Lon) > math.Abs(c1.Lat-c2.Lat) {
		return &models.BoundaryResult{
			Relation: models.RelationLeftRight,
			Rings:    []models.Ring{first, second},
		}
	}

	top, bottom := first, second
	if c2.Lat > c1.Lat {
		top, bottom = second, first
	}

	top, bottom = c.stitchTopBottom(top, bottom)

	top = removeCircularPoints(top, c.cfg.LatCondition)
	bottom = removeCircularPoints(bottom, c.cfg.MaxLatitude)

	if len(top) < c.cfg.MinClusterSize || len(bottom) < c.cfg.MinClusterSize {
		return nil
	}

	return &models.BoundaryResult{
		Relation: models.RelationTopBottom,
		Rings:    []models.Ring{top, bottom},
	}
}

// stitchTopBottom synthesizes edge points for a stacked cluster pair. When
// the bottom ring reaches further west than the top one, the top ring is
// extended to match (and symmetrically on the east side); then copies of each
// ring's extreme points are clamped to that ring's edge latitude and inserted.
func (c *Clusterer) stitchTopBottom(top, bottom models.Ring) (models.Ring, models.Ring) {
	leftTop := top[argMinLon(top)]
	rightTop := top[argMaxLon(top)]
	leftBottom := bottom[argMinLon(bottom)]
	rightBottom := bottom[argMaxLon(bottom)]

	if math.Abs(leftBottom.Lon) > math.Abs(leftTop.Lon) {
		leftTop.Lon = leftBottom.Lon
		top = appendPoint(top, leftTop)
	}
	if math.Abs(rightTop.Lon) > math.Abs(rightBottom.Lon) {
		rightTop.Lon = rightBottom.Lon
		top = prependPoint(top, rightTop)
	}

	leftTop.Lat = c.cfg.LatCondition
	rightTop.Lat = c.cfg.LatCondition
	leftBottom.Lat = c.cfg.MaxLatitude
	rightBottom.Lat = c.cfg.MaxLatitude

	top = appendPoint(top, leftTop)
	top = appendPoint(top, rightTop)
	bottom = prependPoint(bottom, leftBottom)
	bottom = appendPoint(bottom, rightBottom)

	return top, bottom
}

// removeCircularPoints trims the spurious return loop a contour can grow near
// the domain edge. The |lon| trend of the first two points decides the
// direction: every point up to the global |lon| extremum is kept, plus any
// point whose lon or lat exactly equals the edge condition (the synthesized
// edge points, which must survive regardless of position). Rings shorter than
// two points have no trend and are returned unchanged.
func removeCircularPoints(ring models.Ring, condition float64) models.Ring {
	if len(ring) < 2 {
		return ring
	}

	increasing := math.Abs(ring[1].Lon) > math.Abs(ring[0].Lon)

	pivot := 0
	for i, p := range ring {
		if increasing {
			if math.Abs(p.Lon) > math.Abs(ring[pivot].Lon) {
				pivot = i
			}
		} else {
			if math.Abs(p.Lon) < math.Abs(ring[pivot].Lon) {
				pivot = i
			}
		}
	}

	out := make(models.Ring, 0, pivot+1)
	for i, p := range ring {
		if i <= pivot || p.Lon == condition || p.Lat == condition {
			out = append(out, p)
		}
	}
	return out
}

// dbscanLabels runs density clustering over (lon, lat) and returns a label
// per point; -1 marks noise. A point is a core point when at least MinSamples
// points (itself included) lie within Eps of it.
func dbscanLabels(points []models.BoundaryPoint, eps float64, minSamples int) []int {
	n := len(points)
	labels := make([]int, n)
	for i := range labels {
		labels[i] = -1
	}
	visited := make([]bool, n)

	epsSq := eps * eps
	regionQuery := func(i int) []int {
		var neigh []int
		for j := 0; j < n; j++ {
			dLon := points[i].Lon - points[j].Lon
			dLat := points[i].Lat - points[j].Lat
			if dLon*dLon+dLat*dLat <= epsSq {
				neigh = append(neigh, j)
			}
		}
		return neigh
	}

	cluster := 0
	for i := 0; i < n; i++ {
		if visited[i] {
			continue
		}
		visited[i] = true

		neigh := regionQuery(i)
		if len(neigh) < minSamples {
			continue // noise unless later claimed as a border point
		}

		labels[i] = cluster
		for k := 0; k < len(neigh); k++ {
			q := neigh[k]
			if labels[q] == -1 {
				labels[q] = cluster
			}
			if visited[q] {
				continue
			}
			visited[q] = true
			labels[q] = cluster

			qNeigh := regionQuery(q)
			if len(qNeigh) >= minSamples {
				neigh = append(neigh, qNeigh...)
			}
		}
		cluster++
	}

	return labels
}

func centroid(ring models.Ring) spatial.Point {
	pts := make([]spatial.Point, len(ring))
	for i, p := range ring {
		pts[i] = spatial.Point{Lon: p.Lon, Lat: p.Lat}
	}
	return spatial.Centroid(pts)
}

// argMinLon returns the index of the first westmost point
func argMinLon(ring models.Ring) int {
	best := 0
	for i, p := range ring {
		if p.Lon < ring[best].Lon {
			best = i
		}
	}
	return best
}

// argMaxLon returns the index of the first eastmost point
func argMaxLon(ring models.Ring) int {
	best := 0
	for i, p := range ring {
		if p.Lon > ring[best].Lon {
			best = i
		}
	}
	return best
}

func appendPoint(ring models.Ring, p models.BoundaryPoint) models.Ring {
	out := make(models.Ring, 0, len(ring)+1)
	out = append(out, ring...)
	return append(out, p)
}

func prependPoint(ring models.Ring, p models.BoundaryPoint) models.Ring {
	out := make(models.Ring, 0, len(ring)+1)
	out = append(out, p)
	return append(out, ring...)
}
