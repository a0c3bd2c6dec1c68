package crossing

import (
	"testing"

	"github.com/auroralab/auroral-backend-go/internal/models"
)

func squareRing(minLon, minLat, maxLon, maxLat float64) models.Ring {
	return models.Ring{
		{Lon: minLon, Lat: minLat},
		{Lon: maxLon, Lat: minLat},
		{Lon: maxLon, Lat: maxLat},
		{Lon: minLon, Lat: maxLat},
	}
}

func singleBoundary(ring models.Ring) *models.BoundaryResult {
	return &models.BoundaryResult{
		Relation: models.RelationSingle,
		Rings:    []models.Ring{ring},
	}
}

func TestPairID(t *testing.T) {
	id := PairID("STN1", "G01")
	if id != "STN1_G01" {
		t.Errorf("PairID = %q, want STN1_G01", id)
	}
	station, satellite := SplitPairID(id)
	if station != "STN1" || satellite != "G01" {
		t.Errorf("SplitPairID = %q, %q, want STN1, G01", station, satellite)
	}
}

func TestDetectExit(t *testing.T) {
	region := singleBoundary(squareRing(-100, 45, -80, 55))
	boundaries := map[float64]*models.BoundaryResult{
		0:   region,
		300: region,
	}
	positions := map[float64]map[string]Position{
		0:   {"STN1_G01": {Lon: -90, Lat: 50}},
		300: {"STN1_G01": {Lon: -90, Lat: 60}},
	}

	d := NewDetector(10800)
	crossings := d.Detect(boundaries, positions)

	episodes := crossings["STN1"]["G01"]
	if len(episodes) != 1 {
		t.Fatalf("expected 1 episode, got %d", len(episodes))
	}
	if len(episodes[0]) != 1 {
		t.Fatalf("expected 1 event, got %d", len(episodes[0]))
	}
	event := episodes[0][0]
	if event.Kind != models.EventExited {
		t.Errorf("event kind = %v, want %v", event.Kind, models.EventExited)
	}
	if event.Time != 300 {
		t.Errorf("event time = %v, want 300 (the later timestamp of the pair)", event.Time)
	}
}

func TestDetectEnter(t *testing.T) {
	region := singleBoundary(squareRing(-100, 45, -80, 55))
	boundaries := map[float64]*models.BoundaryResult{
		0:   region,
		300: region,
	}
	positions := map[float64]map[string]Position{
		0:   {"STN1_G01": {Lon: -110, Lat: 50}},
		300: {"STN1_G01": {Lon: -90, Lat: 50}},
	}

	d := NewDetector(10800)
	crossings := d.Detect(boundaries, positions)

	episodes := crossings["STN1"]["G01"]
	if len(episodes) != 1 || len(episodes[0]) != 1 {
		t.Fatalf("expected 1 episode with 1 event, got %v", episodes)
	}
	if episodes[0][0].Kind != models.EventEntered {
		t.Errorf("event kind = %v, want %v", episodes[0][0].Kind, models.EventEntered)
	}
}

func TestDetectNoTransition(t *testing.T) {
	region := singleBoundary(squareRing(-100, 45, -80, 55))
	boundaries := map[float64]*models.BoundaryResult{
		0:   region,
		300: region,
	}
	positions := map[float64]map[string]Position{
		0:   {"STN1_G01": {Lon: -110, Lat: 50}},
		300: {"STN1_G01": {Lon: -120, Lat: 50}},
	}

	d := NewDetector(10800)
	crossings := d.Detect(boundaries, positions)

	if len(crossings) != 0 {
		t.Errorf("outside both timestamps: expected no events, got %v", crossings)
	}
}

func TestDetectSkipsLeftRight(t *testing.T) {
	// Left-right rings never close, so they define no containment region.
	leftRight := &models.BoundaryResult{
		Relation: models.RelationLeftRight,
		Rings: []models.Ring{
			squareRing(-110, 45, -95, 55),
			squareRing(-85, 45, -70, 55),
		},
	}
	boundaries := map[float64]*models.BoundaryResult{
		0:   leftRight,
		300: leftRight,
	}
	positions := map[float64]map[string]Position{
		0:   {"STN1_G01": {Lon: -100, Lat: 50}},
		300: {"STN1_G01": {Lon: -90, Lat: 50}},
	}

	d := NewDetector(10800)
	if crossings := d.Detect(boundaries, positions); len(crossings) != 0 {
		t.Errorf("left-right boundaries must be skipped, got %v", crossings)
	}
}

func TestDetectSkipsMissingBoundary(t *testing.T) {
	region := singleBoundary(squareRing(-100, 45, -80, 55))
	boundaries := map[float64]*models.BoundaryResult{
		0:   region,
		300: nil, // processed but unusable
		600: region,
	}
	positions := map[float64]map[string]Position{
		0:   {"STN1_G01": {Lon: -90, Lat: 50}},
		300: {"STN1_G01": {Lon: -90, Lat: 60}},
		600: {"STN1_G01": {Lon: -90, Lat: 60}},
	}

	d := NewDetector(10800)
	if crossings := d.Detect(boundaries, positions); len(crossings) != 0 {
		t.Errorf("pairs without a region on both sides must be skipped, got %v", crossings)
	}
}

func TestDetectTopBottomIntersection(t *testing.T) {
	// Containment in a top-bottom result means inside both rings at once.
	topBottom := &models.BoundaryResult{
		Relation: models.RelationTopBottom,
		Rings: []models.Ring{
			squareRing(-100, 40, -80, 55), // top
			squareRing(-100, 50, -80, 90), // bottom
		},
	}
	boundaries := map[float64]*models.BoundaryResult{
		0:   topBottom,
		300: topBottom,
	}
	positions := map[float64]map[string]Position{
		0:   {"STN1_G01": {Lon: -90, Lat: 52}}, // inside the overlap
		300: {"STN1_G01": {Lon: -90, Lat: 45}}, // inside the top ring only
	}

	d := NewDetector(10800)
	crossings := d.Detect(boundaries, positions)

	episodes := crossings["STN1"]["G01"]
	if len(episodes) != 1 || len(episodes[0]) != 1 {
		t.Fatalf("expected 1 episode with 1 event, got %v", episodes)
	}
	if episodes[0][0].Kind != models.EventExited {
		t.Errorf("leaving the ring overlap must count as an exit, got %v", episodes[0][0].Kind)
	}
}

func TestDetectSkipsDisjointTopBottom(t *testing.T) {
	// A top-bottom pair whose rings do not touch has no containment region;
	// the timestamp pair is skipped, so a satellite inside a later valid
	// region does not get a spurious entry event.
	disjoint := &models.BoundaryResult{
		Relation: models.RelationTopBottom,
		Rings: []models.Ring{
			squareRing(-100, 40, -80, 48), // top
			squareRing(-100, 52, -80, 90), // bottom, no overlap with the top
		},
	}
	boundaries := map[float64]*models.BoundaryResult{
		0:   disjoint,
		300: singleBoundary(squareRing(-100, 45, -80, 55)),
	}
	positions := map[float64]map[string]Position{
		0:   {"STN1_G01": {Lon: -90, Lat: 50}},
		300: {"STN1_G01": {Lon: -90, Lat: 50}}, // inside the valid region
	}

	d := NewDetector(10800)
	if crossings := d.Detect(boundaries, positions); len(crossings) != 0 {
		t.Errorf("disjoint top-bottom rings must skip the pair, got %v", crossings)
	}
}

func TestDetectEpisodeGrouping(t *testing.T) {
	region := singleBoundary(squareRing(-100, 45, -80, 55))
	inside := Position{Lon: -90, Lat: 50}
	outside := Position{Lon: -90, Lat: 60}

	boundaries := map[float64]*models.BoundaryResult{
		0: region, 300: region, 600: region,
		20000: region, 20300: region,
	}
	positions := map[float64]map[string]Position{
		0:     {"STN1_G01": inside},
		300:   {"STN1_G01": outside}, // exit at 300
		600:   {"STN1_G01": outside},
		20000: {"STN1_G01": outside},
		20300: {"STN1_G01": inside}, // enter at 20300, far past the episode gap
	}

	d := NewDetector(10800)
	crossings := d.Detect(boundaries, positions)

	episodes := crossings["STN1"]["G01"]
	if len(episodes) != 2 {
		t.Fatalf("expected 2 episodes across the gap, got %d: %v", len(episodes), episodes)
	}
	if episodes[0][0].Kind != models.EventExited || episodes[0][0].Time != 300 {
		t.Errorf("first episode = %v, want exit at 300", episodes[0])
	}
	if episodes[1][0].Kind != models.EventEntered || episodes[1][0].Time != 20300 {
		t.Errorf("second episode = %v, want entry at 20300", episodes[1])
	}
}

func TestDetectMissingSatelliteAtLaterTimestamp(t *testing.T) {
	region := singleBoundary(squareRing(-100, 45, -80, 55))
	boundaries := map[float64]*models.BoundaryResult{
		0:   region,
		300: region,
	}
	positions := map[float64]map[string]Position{
		0:   {"STN1_G01": {Lon: -90, Lat: 50}},
		300: {}, // satellite dropped out
	}

	d := NewDetector(10800)
	if crossings := d.Detect(boundaries, positions); len(crossings) != 0 {
		t.Errorf("pair with a missing later position must be skipped, got %v", crossings)
	}
}
