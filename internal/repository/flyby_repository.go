package repository

import (
	"database/sql"
	"fmt"
	"math"

	"github.com/auroralab/auroral-backend-go/internal/database"
	"github.com/auroralab/auroral-backend-go/internal/models"
)

// FlybyRepository handles database operations for satellite flybys
type FlybyRepository struct {
	db *sql.DB
}

// NewFlybyRepository creates a new flyby repository
func NewFlybyRepository(db *sql.DB) *FlybyRepository {
	return &FlybyRepository{db: db}
}

// SaveFlybys replaces a pair's stored flybys with the given list
func (r *FlybyRepository) SaveFlybys(station, satellite string, flybys []models.Flyby) error {
	return database.Transaction(r.db, func(tx *sql.Tx) error {
		if _, err := tx.Exec(`
			DELETE FROM flyby_points WHERE flyby_id IN
				(SELECT id FROM flybys WHERE station = ? AND satellite = ?)`,
			station, satellite); err != nil {
			return fmt.Errorf("failed to clear flyby points: %w", err)
		}
		if _, err := tx.Exec(
			"DELETE FROM flybys WHERE station = ? AND satellite = ?",
			station, satellite); err != nil {
			return fmt.Errorf("failed to clear flybys: %w", err)
		}

		insPoint, err := tx.Prepare(`
			INSERT INTO flyby_points (flyby_id, point_index, roti, timestamp, lat, lon)
			VALUES (?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("failed to prepare flyby point insert: %w", err)
		}
		defer insPoint.Close()

		for _, f := range flybys {
			res, err := tx.Exec(`
				INSERT INTO flybys (station, satellite, flyby_index, length_km,
					mean_roti, min_roti, max_roti, p95_roti)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
				f.Station, f.Satellite, f.Index, f.LengthKm,
				f.MeanRoti, f.MinRoti, f.MaxRoti, f.P95Roti)
			if err != nil {
				return fmt.Errorf("failed to insert flyby: %w", err)
			}
			id, err := res.LastInsertId()
			if err != nil {
				return fmt.Errorf("failed to get flyby id: %w", err)
			}

			for i := range f.Timestamps {
				if _, err := insPoint.Exec(id, i, f.Roti[i], f.Timestamps[i],
					nullableCoord(f.Lat[i]), nullableCoord(f.Lon[i])); err != nil {
					return fmt.Errorf("failed to insert flyby point: %w", err)
				}
			}
		}
		return nil
	})
}

// ListFlybys loads a pair's flybys in index order
func (r *FlybyRepository) ListFlybys(station, satellite string) ([]models.Flyby, error) {
	rows, err := r.db.Query(`
		SELECT id, flyby_index, length_km, mean_roti, min_roti, max_roti, p95_roti
		FROM flybys
		WHERE station = ? AND satellite = ? ORDER BY flyby_index`,
		station, satellite)
	if err != nil {
		return nil, fmt.Errorf("failed to query flybys: %w", err)
	}
	defer rows.Close()

	var flybys []models.Flyby
	var ids []int64
	for rows.Next() {
		var id int64
		f := models.Flyby{Station: station, Satellite: satellite}
		if err := rows.Scan(&id, &f.Index, &f.LengthKm,
			&f.MeanRoti, &f.MinRoti, &f.MaxRoti, &f.P95Roti); err != nil {
			return nil, fmt.Errorf("failed to scan flyby: %w", err)
		}
		flybys = append(flybys, f)
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read flybys: %w", err)
	}

	for i, id := range ids {
		if err := r.loadPoints(id, &flybys[i]); err != nil {
			return nil, err
		}
	}
	return flybys, nil
}

func (r *FlybyRepository) loadPoints(id int64, f *models.Flyby) error {
	rows, err := r.db.Query(`
		SELECT roti, timestamp, lat, lon FROM flyby_points
		WHERE flyby_id = ? ORDER BY point_index`, id)
	if err != nil {
		return fmt.Errorf("failed to query flyby points: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var roti, ts float64
		var lat, lon sql.NullFloat64
		if err := rows.Scan(&roti, &ts, &lat, &lon); err != nil {
			return fmt.Errorf("failed to scan flyby point: %w", err)
		}
		f.Roti = append(f.Roti, roti)
		f.Timestamps = append(f.Timestamps, ts)
		f.Lat = append(f.Lat, coordValue(lat))
		f.Lon = append(f.Lon, coordValue(lon))
	}
	return rows.Err()
}

// nullableCoord maps NaN coordinates (out-of-domain projections) to NULL
func nullableCoord(v float64) interface{} {
	if v != v {
		return nil
	}
	return v
}

func coordValue(v sql.NullFloat64) float64 {
	if !v.Valid {
		return math.NaN()
	}
	return v.Float64
}
