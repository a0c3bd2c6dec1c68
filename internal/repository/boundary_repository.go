package repository

import (
	"database/sql"
	"fmt"

	"github.com/auroralab/auroral-backend-go/internal/database"
	"github.com/auroralab/auroral-backend-go/internal/models"
)

// BoundaryRepository handles database operations for per-timestamp boundary
// results
type BoundaryRepository struct {
	db *sql.DB
}

// NewBoundaryRepository creates a new boundary repository
func NewBoundaryRepository(db *sql.DB) *BoundaryRepository {
	return &BoundaryRepository{db: db}
}

// SaveResults replaces the stored boundary products with the given set.
// Timestamps with a nil result are not stored; they stay absent, which
// downstream reads as "no usable boundary".
func (r *BoundaryRepository) SaveResults(results map[float64]*models.BoundaryResult) error {
	return database.Transaction(r.db, func(tx *sql.Tx) error {
		if _, err := tx.Exec("DELETE FROM boundary_rings"); err != nil {
			return fmt.Errorf("failed to clear boundary rings: %w", err)
		}
		if _, err := tx.Exec("DELETE FROM boundaries"); err != nil {
			return fmt.Errorf("failed to clear boundaries: %w", err)
		}

		insBoundary, err := tx.Prepare(
			"INSERT INTO boundaries (timestamp, relation) VALUES (?, ?)")
		if err != nil {
			return fmt.Errorf("failed to prepare boundary insert: %w", err)
		}
		defer insBoundary.Close()

		insPoint, err := tx.Prepare(`
			INSERT INTO boundary_rings (timestamp, ring_index, point_index, lon, lat)
			VALUES (?, ?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("failed to prepare ring insert: %w", err)
		}
		defer insPoint.Close()

		for ts, res := range results {
			if res == nil {
				continue
			}
			if _, err := insBoundary.Exec(ts, string(res.Relation)); err != nil {
				return fmt.Errorf("failed to insert boundary: %w", err)
			}
			for ri, ring := range res.Rings {
				for pi, p := range ring {
					if _, err := insPoint.Exec(ts, ri, pi, p.Lon, p.Lat); err != nil {
						return fmt.Errorf("failed to insert ring point: %w", err)
					}
				}
			}
		}
		return nil
	})
}

// GetByTimestamp loads one timestamp's boundary result; (nil, nil) when the
// timestamp has no stored boundary
func (r *BoundaryRepository) GetByTimestamp(ts float64) (*models.BoundaryResult, error) {
	var relation string
	err := r.db.QueryRow(
		"SELECT relation FROM boundaries WHERE timestamp = ?", ts).Scan(&relation)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query boundary: %w", err)
	}

	rings, err := r.loadRings(ts)
	if err != nil {
		return nil, err
	}
	return &models.BoundaryResult{Relation: models.Relation(relation), Rings: rings}, nil
}

// ListRange loads boundary results for timestamps in [from, to], keyed by
// timestamp. Zero bounds mean unbounded.
func (r *BoundaryRepository) ListRange(from, to float64) (map[float64]*models.BoundaryResult, error) {
	query := "SELECT timestamp, relation FROM boundaries"
	var conditions []string
	var args []interface{}

	if from != 0 {
		conditions = append(conditions, "timestamp >= ?")
		args = append(args, from)
	}
	if to != 0 {
		conditions = append(conditions, "timestamp <= ?")
		args = append(args, to)
	}
	for i, c := range conditions {
		if i == 0 {
			query += " WHERE " + c
		} else {
			query += " AND " + c
		}
	}
	query += " ORDER BY timestamp"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query boundaries: %w", err)
	}
	defer rows.Close()

	results := make(map[float64]*models.BoundaryResult)
	for rows.Next() {
		var ts float64
		var relation string
		if err := rows.Scan(&ts, &relation); err != nil {
			return nil, fmt.Errorf("failed to scan boundary: %w", err)
		}
		results[ts] = &models.BoundaryResult{Relation: models.Relation(relation)}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read boundaries: %w", err)
	}

	for ts, res := range results {
		rings, err := r.loadRings(ts)
		if err != nil {
			return nil, err
		}
		res.Rings = rings
	}
	return results, nil
}

func (r *BoundaryRepository) loadRings(ts float64) ([]models.Ring, error) {
	rows, err := r.db.Query(`
		SELECT ring_index, lon, lat FROM boundary_rings
		WHERE timestamp = ? ORDER BY ring_index, point_index`, ts)
	if err != nil {
		return nil, fmt.Errorf("failed to query rings: %w", err)
	}
	defer rows.Close()

	var rings []models.Ring
	for rows.Next() {
		var ri int
		var p models.BoundaryPoint
		if err := rows.Scan(&ri, &p.Lon, &p.Lat); err != nil {
			return nil, fmt.Errorf("failed to scan ring point: %w", err)
		}
		for len(rings) <= ri {
			rings = append(rings, models.Ring{})
		}
		rings[ri] = append(rings[ri], p)
	}
	return rings, rows.Err()
}
