package crossing

import (
	"log"
	"sort"
	"strings"

	"github.com/auroralab/auroral-backend-go/internal/models"
	"github.com/auroralab/auroral-backend-go/internal/spatial"
)

// Position is a satellite's sub-ionospheric point at one timestamp
type Position struct {
	Lon float64 `json:"lon"`
	Lat float64 `json:"lat"`
}

// PairID identifies a station-satellite pair as "station_satellite"
func PairID(station, satellite string) string {
	return station + "_" + satellite
}

// SplitPairID splits a "station_satellite" key back into its parts
func SplitPairID(id string) (string, string) {
	station, satellite, _ := strings.Cut(id, "_")
	return station, satellite
}

// Detector finds containment transitions of satellites against the
// per-timestamp boundary polygons and groups them into episodes
type Detector struct {
	episodeGap float64 // seconds between events that starts a new episode
}

// NewDetector creates a crossing detector with the given episode gap
func NewDetector(episodeGapSeconds float64) *Detector {
	return &Detector{episodeGap: episodeGapSeconds}
}

// Detect walks the timestamps in sorted order as consecutive pairs and emits
// an entered/exited event at t2 whenever a satellite's containment state
// differs between t1 and t2. Results are keyed station -> satellite ->
// episodes; positions maps are keyed by the "station_satellite" pair id.
//
// Timestamp pairs without a containment region on either side (no boundary,
// or a left-right relation, which never closes into a polygon) are skipped.
func (d *Detector) Detect(
	boundaries map[float64]*models.BoundaryResult,
	positions map[float64]map[string]Position,
) map[string]map[string][]models.CrossingEpisode {
	crossings := make(map[string]map[string][]models.CrossingEpisode)
	lastEventTime := make(map[string]float64)

	timestamps := make([]float64, 0, len(boundaries))
	for ts := range boundaries {
		timestamps = append(timestamps, ts)
	}
	sort.Float64s(timestamps)

	for i := 0; i+1 < len(timestamps); i++ {
		t1, t2 := timestamps[i], timestamps[i+1]

		region1 := containmentRegion(boundaries[t1])
		region2 := containmentRegion(boundaries[t2])
		if region1 == nil || region2 == nil {
			continue
		}

		for pairID, pos1 := range positions[t1] {
			pos2, ok := positions[t2][pairID]
			if !ok {
				log.Printf("[CrossingDetector] %s absent at ts=%.0f, skipping pair (%.0f, %.0f)",
					pairID, t2, t1, t2)
				continue
			}

			wasInside := regionContains(region1, pos1)
			isInside := regionContains(region2, pos2)

			var kind models.EventKind
			switch {
			case wasInside && !isInside:
				kind = models.EventExited
			case !wasInside && isInside:
				kind = models.EventEntered
			default:
				continue
			}

			d.storeEvent(crossings, lastEventTime, pairID, models.CrossingEvent{Time: t2, Kind: kind})
		}
	}

	return crossings
}

// storeEvent appends the event to the pair's current episode, starting a new
// episode when the gap since the pair's last stored event exceeds the
// threshold
func (d *Detector) storeEvent(
	crossings map[string]map[string][]models.CrossingEpisode,
	lastEventTime map[string]float64,
	pairID string,
	event models.CrossingEvent,
) {
	station, satellite := SplitPairID(pairID)

	if crossings[station] == nil {
		crossings[station] = make(map[string][]models.CrossingEpisode)
	}
	episodes := crossings[station][satellite]

	if len(episodes) == 0 {
		episodes = append(episodes, models.CrossingEpisode{})
	} else if event.Time-lastEventTime[pairID] > d.episodeGap {
		episodes = append(episodes, models.CrossingEpisode{})
	}

	episodes[len(episodes)-1] = append(episodes[len(episodes)-1], event)
	crossings[station][satellite] = episodes
	lastEventTime[pairID] = event.Time
}

// containmentRegion returns the rings a point must be inside to count as
// contained: the single ring for single-cluster, both rings for top-bottom
// (their intersection is the auroral-oval annulus approximation), and nil for
// left-right or no boundary. A top-bottom pair whose rings cannot intersect
// yields nil as well, so the timestamp pair is skipped rather than treated as
// an empty region the satellite could "enter".
func containmentRegion(res *models.BoundaryResult) []models.Ring {
	if res == nil {
		return nil
	}
	switch res.Relation {
	case models.RelationSingle:
		if len(res.Rings) == 1 {
			return res.Rings
		}
	case models.RelationTopBottom:
		if len(res.Rings) == 2 && ringsCanIntersect(res.Rings[0], res.Rings[1]) {
			return res.Rings
		}
	}
	return nil
}

// ringsCanIntersect reports whether the rings' bounding boxes overlap.
// Disjoint boxes guarantee disjoint rings; the converse is only an
// approximation, matching the pragmatic geometry used elsewhere.
func ringsCanIntersect(a, b models.Ring) bool {
	aMinLon, aMinLat, aMaxLon, aMaxLat := spatial.BoundingBox(ringPoints(a))
	bMinLon, bMinLat, bMaxLon, bMaxLat := spatial.BoundingBox(ringPoints(b))
	return aMinLon <= bMaxLon && bMinLon <= aMaxLon &&
		aMinLat <= bMaxLat && bMinLat <= aMaxLat
}

func ringPoints(ring models.Ring) []spatial.Point {
	pts := make([]spatial.Point, len(ring))
	for i, v := range ring {
		pts[i] = spatial.Point{Lon: v.Lon, Lat: v.Lat}
	}
	return pts
}

// regionContains reports whether the position lies inside every ring of the
// containment region
func regionContains(region []models.Ring, pos Position) bool {
	p := spatial.Point{Lon: pos.Lon, Lat: pos.Lat}
	for _, ring := range region {
		if !spatial.PointInPolygon(p, ringPoints(ring)) {
			return false
		}
	}
	return len(region) > 0
}
