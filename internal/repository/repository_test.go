package repository

import (
	"database/sql"
	"math"
	"path/filepath"
	"testing"

	"github.com/auroralab/auroral-backend-go/internal/database"
	"github.com/auroralab/auroral-backend-go/internal/models"
)

func testDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.Open(database.Config{Path: filepath.Join(t.TempDir(), "test.db")})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestSampleRoundTrip(t *testing.T) {
	db := testDB(t)
	repo := NewSampleRepository(db)

	samples := []models.GeoSample{
		{Lon: -90, Lat: 50, Value: 0.05},
		{Lon: -91, Lat: 51, Value: 0.12},
	}
	if err := repo.InsertSamples(300, samples); err != nil {
		t.Fatalf("InsertSamples failed: %v", err)
	}
	if err := repo.InsertSamples(600, samples[:1]); err != nil {
		t.Fatalf("InsertSamples failed: %v", err)
	}

	byTime, err := repo.ListSamplesByTime()
	if err != nil {
		t.Fatalf("ListSamplesByTime failed: %v", err)
	}
	if len(byTime) != 2 {
		t.Fatalf("expected 2 timestamps, got %d", len(byTime))
	}
	if len(byTime[300]) != 2 || len(byTime[600]) != 1 {
		t.Errorf("sample counts = %d, %d, want 2, 1", len(byTime[300]), len(byTime[600]))
	}
	if byTime[300][1].Value != 0.12 {
		t.Errorf("sample value = %v, want 0.12", byTime[300][1].Value)
	}
}

func TestStationUpsert(t *testing.T) {
	db := testDB(t)
	repo := NewSampleRepository(db)

	missing, err := repo.GetStation("NONE")
	if err != nil {
		t.Fatalf("GetStation failed: %v", err)
	}
	if missing != nil {
		t.Errorf("expected nil for an unknown station, got %+v", missing)
	}

	st := models.Station{Name: "STN1", LatRad: 0.87, LonRad: -1.57}
	if err := repo.UpsertStation(st); err != nil {
		t.Fatalf("UpsertStation failed: %v", err)
	}

	st.LatRad = 0.9
	if err := repo.UpsertStation(st); err != nil {
		t.Fatalf("second UpsertStation failed: %v", err)
	}

	got, err := repo.GetStation("STN1")
	if err != nil {
		t.Fatalf("GetStation failed: %v", err)
	}
	if got == nil || got.LatRad != 0.9 || got.LonRad != -1.57 {
		t.Errorf("station = %+v, want updated coordinates", got)
	}
}

func TestSeriesAndPairs(t *testing.T) {
	db := testDB(t)
	repo := NewSampleRepository(db)

	err := repo.InsertSeries("STN1", "G01",
		[]float64{0, 300}, []float64{1.0, 1.1}, []float64{0.5, 0.6}, []float64{0.01, 0.02})
	if err != nil {
		t.Fatalf("InsertSeries failed: %v", err)
	}
	err = repo.InsertSeries("STN1", "G02",
		[]float64{0}, []float64{2.0}, []float64{0.7}, []float64{0.03})
	if err != nil {
		t.Fatalf("InsertSeries failed: %v", err)
	}

	pairs, err := repo.ListPairs()
	if err != nil {
		t.Fatalf("ListPairs failed: %v", err)
	}
	if len(pairs) != 2 {
		t.Fatalf("expected 2 pairs, got %d: %v", len(pairs), pairs)
	}
	if pairs[0] != [2]string{"STN1", "G01"} || pairs[1] != [2]string{"STN1", "G02"} {
		t.Errorf("pairs = %v, want ordered STN1/G01, STN1/G02", pairs)
	}

	ts, az, el, roti, err := repo.GetSeries("STN1", "G01")
	if err != nil {
		t.Fatalf("GetSeries failed: %v", err)
	}
	if len(ts) != 2 || ts[1] != 300 || az[1] != 1.1 || el[1] != 0.6 || roti[1] != 0.02 {
		t.Errorf("series = %v %v %v %v, want the stored values in time order", ts, az, el, roti)
	}
}

func TestBoundaryRoundTrip(t *testing.T) {
	db := testDB(t)
	repo := NewBoundaryRepository(db)

	results := map[float64]*models.BoundaryResult{
		300: {
			Relation: models.RelationTopBottom,
			Rings: []models.Ring{
				{{Lon: -90, Lat: 55}, {Lon: -89, Lat: 56}},
				{{Lon: -90, Lat: 50}},
			},
		},
		600: nil, // unusable timestamps are not stored
	}
	if err := repo.SaveResults(results); err != nil {
		t.Fatalf("SaveResults failed: %v", err)
	}

	got, err := repo.GetByTimestamp(300)
	if err != nil {
		t.Fatalf("GetByTimestamp failed: %v", err)
	}
	if got == nil {
		t.Fatal("expected a stored boundary")
	}
	if got.Relation != models.RelationTopBottom {
		t.Errorf("relation = %v, want %v", got.Relation, models.RelationTopBottom)
	}
	if len(got.Rings) != 2 || len(got.Rings[0]) != 2 || len(got.Rings[1]) != 1 {
		t.Fatalf("rings = %v, want the stored shape", got.Rings)
	}
	if got.Rings[0][1] != (models.BoundaryPoint{Lon: -89, Lat: 56}) {
		t.Errorf("ring point = %+v, want the stored vertex order", got.Rings[0][1])
	}

	absent, err := repo.GetByTimestamp(600)
	if err != nil {
		t.Fatalf("GetByTimestamp failed: %v", err)
	}
	if absent != nil {
		t.Errorf("expected nil for an unstored timestamp, got %+v", absent)
	}

	// Saving again replaces, not appends.
	if err := repo.SaveResults(map[float64]*models.BoundaryResult{
		900: {Relation: models.RelationSingle, Rings: []models.Ring{{{Lon: -85, Lat: 52}}}},
	}); err != nil {
		t.Fatalf("second SaveResults failed: %v", err)
	}
	replaced, err := repo.GetByTimestamp(300)
	if err != nil {
		t.Fatalf("GetByTimestamp failed: %v", err)
	}
	if replaced != nil {
		t.Errorf("expected the first save to be replaced, got %+v", replaced)
	}
}

func TestBoundaryListRange(t *testing.T) {
	db := testDB(t)
	repo := NewBoundaryRepository(db)

	results := map[float64]*models.BoundaryResult{
		300: {Relation: models.RelationSingle, Rings: []models.Ring{{{Lon: -90, Lat: 50}}}},
		600: {Relation: models.RelationSingle, Rings: []models.Ring{{{Lon: -91, Lat: 51}}}},
		900: {Relation: models.RelationSingle, Rings: []models.Ring{{{Lon: -92, Lat: 52}}}},
	}
	if err := repo.SaveResults(results); err != nil {
		t.Fatalf("SaveResults failed: %v", err)
	}

	all, err := repo.ListRange(0, 0)
	if err != nil {
		t.Fatalf("ListRange failed: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("unbounded range: got %d results, want 3", len(all))
	}

	window, err := repo.ListRange(400, 900)
	if err != nil {
		t.Fatalf("ListRange failed: %v", err)
	}
	if len(window) != 2 {
		t.Fatalf("bounded range: got %d results, want 2", len(window))
	}
	if window[600] == nil || window[900] == nil {
		t.Errorf("bounded range keys = %v, want 600 and 900", window)
	}
}

func TestFlybyRoundTrip(t *testing.T) {
	db := testDB(t)
	repo := NewFlybyRepository(db)

	flybys := []models.Flyby{
		{
			Station:    "STN1",
			Satellite:  "G01",
			Index:      0,
			Roti:       []float64{0.1, 0.2},
			Timestamps: []float64{0, 300},
			Lat:        []float64{50, math.NaN()},
			Lon:        []float64{-90, math.NaN()},
			LengthKm:   12.5,
			MeanRoti:   0.15,
			MinRoti:    0.1,
			MaxRoti:    0.2,
			P95Roti:    0.195,
		},
		{
			Station:    "STN1",
			Satellite:  "G01",
			Index:      1,
			Roti:       []float64{0.3},
			Timestamps: []float64{3000},
			Lat:        []float64{51},
			Lon:        []float64{-91},
			LengthKm:   0,
		},
	}
	if err := repo.SaveFlybys("STN1", "G01", flybys); err != nil {
		t.Fatalf("SaveFlybys failed: %v", err)
	}

	got, err := repo.ListFlybys("STN1", "G01")
	if err != nil {
		t.Fatalf("ListFlybys failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 flybys, got %d", len(got))
	}

	first := got[0]
	if first.Index != 0 || first.LengthKm != 12.5 {
		t.Errorf("flyby header = %+v, want index 0 length 12.5", first)
	}
	if first.MeanRoti != 0.15 || first.MinRoti != 0.1 || first.MaxRoti != 0.2 || first.P95Roti != 0.195 {
		t.Errorf("flyby stats = (%v, %v, %v, %v), want the stored values",
			first.MeanRoti, first.MinRoti, first.MaxRoti, first.P95Roti)
	}
	if len(first.Roti) != 2 || first.Roti[1] != 0.2 || first.Timestamps[1] != 300 {
		t.Errorf("flyby points = %+v, want the stored series", first)
	}
	// NaN coordinates survive the round trip through NULL columns.
	if !math.IsNaN(first.Lat[1]) || !math.IsNaN(first.Lon[1]) {
		t.Errorf("expected NaN coordinates back, got (%v, %v)", first.Lat[1], first.Lon[1])
	}
	if first.Lat[0] != 50 || first.Lon[0] != -90 {
		t.Errorf("real coordinates = (%v, %v), want (50, -90)", first.Lat[0], first.Lon[0])
	}

	// Saving again replaces the pair's flybys.
	if err := repo.SaveFlybys("STN1", "G01", flybys[:1]); err != nil {
		t.Fatalf("second SaveFlybys failed: %v", err)
	}
	got, err = repo.ListFlybys("STN1", "G01")
	if err != nil {
		t.Fatalf("ListFlybys failed: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("expected the second save to replace, got %d flybys", len(got))
	}
}

func TestCrossingRoundTrip(t *testing.T) {
	db := testDB(t)
	repo := NewCrossingRepository(db)

	episodes := []models.CrossingEpisode{
		{
			{Time: 300, Kind: models.EventExited},
			{Time: 900, Kind: models.EventEntered},
		},
		{
			{Time: 20300, Kind: models.EventEntered},
		},
	}
	if err := repo.SaveEpisodes("STN1", "G01", episodes); err != nil {
		t.Fatalf("SaveEpisodes failed: %v", err)
	}

	got, err := repo.ListEpisodes("STN1", "G01")
	if err != nil {
		t.Fatalf("ListEpisodes failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 episodes, got %d", len(got))
	}
	if len(got[0]) != 2 || len(got[1]) != 1 {
		t.Fatalf("episode sizes = %d, %d, want 2, 1", len(got[0]), len(got[1]))
	}
	if got[0][0].Time != 300 || got[0][0].Kind != models.EventExited {
		t.Errorf("first event = %+v, want exit at 300", got[0][0])
	}
	if got[1][0].Time != 20300 || got[1][0].Kind != models.EventEntered {
		t.Errorf("second episode = %+v, want entry at 20300", got[1])
	}

	other, err := repo.ListEpisodes("STN1", "G02")
	if err != nil {
		t.Fatalf("ListEpisodes failed: %v", err)
	}
	if len(other) != 0 {
		t.Errorf("expected no episodes for an unknown pair, got %v", other)
	}
}
