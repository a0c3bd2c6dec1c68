package repository

import (
	"database/sql"
	"fmt"

	"github.com/auroralab/auroral-backend-go/internal/database"
	"github.com/auroralab/auroral-backend-go/internal/models"
)

// SampleRepository handles database operations for pipeline inputs: raw ROTI
// samples, station coordinates and satellite az/el series
type SampleRepository struct {
	db *sql.DB
}

// NewSampleRepository creates a new sample repository
func NewSampleRepository(db *sql.DB) *SampleRepository {
	return &SampleRepository{db: db}
}

// InsertSamples stores one timestamp's point cloud
func (r *SampleRepository) InsertSamples(timestamp float64, samples []models.GeoSample) error {
	return database.Transaction(r.db, func(tx *sql.Tx) error {
		stmt, err := tx.Prepare(
			"INSERT INTO geo_samples (timestamp, lon, lat, value) VALUES (?, ?, ?, ?)")
		if err != nil {
			return fmt.Errorf("failed to prepare sample insert: %w", err)
		}
		defer stmt.Close()

		for _, s := range samples {
			if _, err := stmt.Exec(timestamp, s.Lon, s.Lat, s.Value); err != nil {
				return fmt.Errorf("failed to insert sample: %w", err)
			}
		}
		return nil
	})
}

// ListSamplesByTime loads every stored point cloud keyed by timestamp
func (r *SampleRepository) ListSamplesByTime() (map[float64][]models.GeoSample, error) {
	rows, err := r.db.Query(
		"SELECT timestamp, lon, lat, value FROM geo_samples ORDER BY timestamp")
	if err != nil {
		return nil, fmt.Errorf("failed to query samples: %w", err)
	}
	defer rows.Close()

	byTime := make(map[float64][]models.GeoSample)
	for rows.Next() {
		var ts float64
		var s models.GeoSample
		if err := rows.Scan(&ts, &s.Lon, &s.Lat, &s.Value); err != nil {
			return nil, fmt.Errorf("failed to scan sample: %w", err)
		}
		byTime[ts] = append(byTime[ts], s)
	}
	return byTime, rows.Err()
}

// UpsertStation stores a station's coordinates (radians)
func (r *SampleRepository) UpsertStation(st models.Station) error {
	_, err := r.db.Exec(`
		INSERT INTO stations (name, lat_rad, lon_rad) VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET lat_rad = excluded.lat_rad, lon_rad = excluded.lon_rad`,
		st.Name, st.LatRad, st.LonRad)
	if err != nil {
		return fmt.Errorf("failed to upsert station: %w", err)
	}
	return nil
}

// GetStation loads one station; (nil, nil) when unknown
func (r *SampleRepository) GetStation(name string) (*models.Station, error) {
	var st models.Station
	err := r.db.QueryRow(
		"SELECT name, lat_rad, lon_rad FROM stations WHERE name = ?", name,
	).Scan(&st.Name, &st.LatRad, &st.LonRad)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query station: %w", err)
	}
	return &st, nil
}

// InsertSeries stores a station-satellite pair's raw az/el/roti series
func (r *SampleRepository) InsertSeries(station, satellite string, timestamps, azimuth, elevation, roti []float64) error {
	return database.Transaction(r.db, func(tx *sql.Tx) error {
		stmt, err := tx.Prepare(`
			INSERT INTO satellite_series (station, satellite, timestamp, azimuth, elevation, roti)
			VALUES (?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("failed to prepare series insert: %w", err)
		}
		defer stmt.Close()

		for i := range timestamps {
			if _, err := stmt.Exec(station, satellite, timestamps[i], azimuth[i], elevation[i], roti[i]); err != nil {
				return fmt.Errorf("failed to insert series sample: %w", err)
			}
		}
		return nil
	})
}

// ListPairs returns every distinct (station, satellite) pair with stored series
func (r *SampleRepository) ListPairs() ([][2]string, error) {
	rows, err := r.db.Query(
		"SELECT DISTINCT station, satellite FROM satellite_series ORDER BY station, satellite")
	if err != nil {
		return nil, fmt.Errorf("failed to query pairs: %w", err)
	}
	defer rows.Close()

	var pairs [][2]string
	for rows.Next() {
		var station, satellite string
		if err := rows.Scan(&station, &satellite); err != nil {
			return nil, fmt.Errorf("failed to scan pair: %w", err)
		}
		pairs = append(pairs, [2]string{station, satellite})
	}
	return pairs, rows.Err()
}

// GetSeries loads a pair's raw series in timestamp order
func (r *SampleRepository) GetSeries(station, satellite string) (timestamps, azimuth, elevation, roti []float64, err error) {
	rows, err := r.db.Query(`
		SELECT timestamp, azimuth, elevation, roti FROM satellite_series
		WHERE station = ? AND satellite = ? ORDER BY timestamp`,
		station, satellite)
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("failed to query series: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var ts, az, el, rt float64
		if err := rows.Scan(&ts, &az, &el, &rt); err != nil {
			return nil, nil, nil, nil, fmt.Errorf("failed to scan series sample: %w", err)
		}
		timestamps = append(timestamps, ts)
		azimuth = append(azimuth, az)
		elevation = append(elevation, el)
		roti = append(roti, rt)
	}
	return timestamps, azimuth, elevation, roti, rows.Err()
}
