package repository

import (
	"database/sql"
	"fmt"

	"github.com/auroralab/auroral-backend-go/internal/database"
	"github.com/auroralab/auroral-backend-go/internal/models"
)

// CrossingRepository handles database operations for crossing episodes
type CrossingRepository struct {
	db *sql.DB
}

// NewCrossingRepository creates a new crossing repository
func NewCrossingRepository(db *sql.DB) *CrossingRepository {
	return &CrossingRepository{db: db}
}

// SaveEpisodes replaces a pair's stored episodes with the given list.
// Episode order is preserved: episode i index-aligns with flyby i.
func (r *CrossingRepository) SaveEpisodes(station, satellite string, episodes []models.CrossingEpisode) error {
	return database.Transaction(r.db, func(tx *sql.Tx) error {
		if _, err := tx.Exec(
			"DELETE FROM crossing_events WHERE station = ? AND satellite = ?",
			station, satellite); err != nil {
			return fmt.Errorf("failed to clear crossing events: %w", err)
		}

		stmt, err := tx.Prepare(`
			INSERT INTO crossing_events (station, satellite, episode_index, event_index, event_time, kind)
			VALUES (?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("failed to prepare event insert: %w", err)
		}
		defer stmt.Close()

		for ei, episode := range episodes {
			for vi, ev := range episode {
				if _, err := stmt.Exec(station, satellite, ei, vi, ev.Time, string(ev.Kind)); err != nil {
					return fmt.Errorf("failed to insert crossing event: %w", err)
				}
			}
		}
		return nil
	})
}

// ListEpisodes loads a pair's episodes in episode order
func (r *CrossingRepository) ListEpisodes(station, satellite string) ([]models.CrossingEpisode, error) {
	rows, err := r.db.Query(`
		SELECT episode_index, event_time, kind FROM crossing_events
		WHERE station = ? AND satellite = ? ORDER BY episode_index, event_index`,
		station, satellite)
	if err != nil {
		return nil, fmt.Errorf("failed to query crossing events: %w", err)
	}
	defer rows.Close()

	var episodes []models.CrossingEpisode
	for rows.Next() {
		var ei int
		var ev models.CrossingEvent
		var kind string
		if err := rows.Scan(&ei, &ev.Time, &kind); err != nil {
			return nil, fmt.Errorf("failed to scan crossing event: %w", err)
		}
		ev.Kind = models.EventKind(kind)
		for len(episodes) <= ei {
			episodes = append(episodes, models.CrossingEpisode{})
		}
		episodes[ei] = append(episodes[ei], ev)
	}
	return episodes, rows.Err()
}
