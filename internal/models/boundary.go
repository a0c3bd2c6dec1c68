package models

// Relation classifies the spatial layout of the surviving boundary clusters
// for one timestamp. It is decided once per timestamp and never changes.
type Relation string

const (
	// RelationSingle means one cluster closed into a single polygon
	RelationSingle Relation = "single-cluster"
	// RelationTopBottom means two clusters stacked in latitude, both closed
	RelationTopBottom Relation = "top-bottom"
	// RelationLeftRight means two clusters side by side in longitude.
	// These rings are never stitched closed; crossing detection skips them.
	RelationLeftRight Relation = "left-right"
)

// BoundaryPoint is a vertex of the extracted iso-contour
type BoundaryPoint struct {
	Lon float64 `json:"lon"`
	Lat float64 `json:"lat"`
}

// Ring is an ordered sequence of boundary points. After stitching it is
// suitable for polygon construction (except for the left-right relation).
type Ring []BoundaryPoint

// BoundaryResult holds the clustered boundary for one timestamp.
// A nil *BoundaryResult means "no usable boundary this timestamp".
type BoundaryResult struct {
	Relation Relation `json:"relation"`
	// Rings carries the cluster rings directly:
	// single-cluster: [ring]; top-bottom: [top, bottom];
	// left-right: [first, second] in descending cluster size.
	Rings []Ring `json:"rings"`
}

// Top returns the poleward ring of a top-bottom result
func (r *BoundaryResult) Top() Ring {
	if r.Relation != RelationTopBottom || len(r.Rings) < 2 {
		return nil
	}
	return r.Rings[0]
}

// Bottom returns the equatorward ring of a top-bottom result
func (r *BoundaryResult) Bottom() Ring {
	if r.Relation != RelationTopBottom || len(r.Rings) < 2 {
		return nil
	}
	return r.Rings[1]
}
