package spatial

// Point represents a 2D point in plain longitude/latitude degrees
type Point struct {
	Lon float64
	Lat float64
}

// Centroid calculates the geographic centroid of a set of points
func Centroid(points []Point) Point {
	if len(points) == 0 {
		return Point{}
	}

	var sumLon, sumLat float64
	for _, p := range points {
		sumLon += p.Lon
		sumLat += p.Lat
	}

	return Point{
		Lon: sumLon / float64(len(points)),
		Lat: sumLat / float64(len(points)),
	}
}

// BoundingBox calculates the bounding box of a set of points.
// Returns (minLon, minLat, maxLon, maxLat).
func BoundingBox(points []Point) (float64, float64, float64, float64) {
	if len(points) == 0 {
		return 0, 0, 0, 0
	}

	minLon, maxLon := points[0].Lon, points[0].Lon
	minLat, maxLat := points[0].Lat, points[0].Lat

	for _, p := range points[1:] {
		if p.Lon < minLon {
			minLon = p.Lon
		}
		if p.Lon > maxLon {
			maxLon = p.Lon
		}
		if p.Lat < minLat {
			minLat = p.Lat
		}
		if p.Lat > maxLat {
			maxLat = p.Lat
		}
	}

	return minLon, minLat, maxLon, maxLat
}

// PointInPolygon checks if a point is inside a polygon using ray casting.
// The polygon is treated as planar in lon/lat degrees; it does not need to
// repeat its first vertex at the end.
func PointInPolygon(point Point, polygon []Point) bool {
	if len(polygon) < 3 {
		return false
	}

	inside := false
	j := len(polygon) - 1

	for i := 0; i < len(polygon); i++ {
		if ((polygon[i].Lat > point.Lat) != (polygon[j].Lat > point.Lat)) &&
			(point.Lon < (polygon[j].Lon-polygon[i].Lon)*(point.Lat-polygon[i].Lat)/(polygon[j].Lat-polygon[i].Lat)+polygon[i].Lon) {
			inside = !inside
		}
		j = i
	}

	return inside
}

// PathLength calculates the total great-circle length of a path in kilometers
func PathLength(points []Point) float64 {
	if len(points) < 2 {
		return 0
	}

	var totalKm float64
	for i := 1; i < len(points); i++ {
		totalKm += HaversineDistance(points[i-1].Lat, points[i-1].Lon, points[i].Lat, points[i].Lon) / 1000
	}

	return totalKm
}
