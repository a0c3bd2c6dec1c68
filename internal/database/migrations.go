package database

import (
	"database/sql"
	"fmt"
	"log"
)

// Migration represents a single schema migration
type Migration struct {
	Version int
	Name    string
	SQL     string
}

// migrations are embedded and applied in version order
var migrations = []Migration{
	{
		Version: 1,
		Name:    "inputs",
		SQL: `
			CREATE TABLE IF NOT EXISTS stations (
				name TEXT PRIMARY KEY,
				lat_rad REAL NOT NULL,
				lon_rad REAL NOT NULL
			);

			CREATE TABLE IF NOT EXISTS geo_samples (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				timestamp REAL NOT NULL,
				lon REAL NOT NULL,
				lat REAL NOT NULL,
				value REAL NOT NULL
			);
			CREATE INDEX IF NOT EXISTS idx_geo_samples_ts ON geo_samples(timestamp);

			CREATE TABLE IF NOT EXISTS satellite_series (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				station TEXT NOT NULL,
				satellite TEXT NOT NULL,
				timestamp REAL NOT NULL,
				azimuth REAL NOT NULL,
				elevation REAL NOT NULL,
				roti REAL NOT NULL
			);
			CREATE INDEX IF NOT EXISTS idx_satellite_series_pair
				ON satellite_series(station, satellite, timestamp);
		`,
	},
	{
		Version: 2,
		Name:    "results",
		SQL: `
			CREATE TABLE IF NOT EXISTS boundaries (
				timestamp REAL PRIMARY KEY,
				relation TEXT NOT NULL
			);

			CREATE TABLE IF NOT EXISTS boundary_rings (
				timestamp REAL NOT NULL,
				ring_index INTEGER NOT NULL,
				point_index INTEGER NOT NULL,
				lon REAL NOT NULL,
				lat REAL NOT NULL,
				PRIMARY KEY (timestamp, ring_index, point_index)
			);

			CREATE TABLE IF NOT EXISTS flybys (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				station TEXT NOT NULL,
				satellite TEXT NOT NULL,
				flyby_index INTEGER NOT NULL,
				length_km REAL NOT NULL,
				mean_roti REAL NOT NULL,
				min_roti REAL NOT NULL,
				max_roti REAL NOT NULL,
				p95_roti REAL NOT NULL,
				UNIQUE (station, satellite, flyby_index)
			);

			CREATE TABLE IF NOT EXISTS flyby_points (
				flyby_id INTEGER NOT NULL REFERENCES flybys(id) ON DELETE CASCADE,
				point_index INTEGER NOT NULL,
				roti REAL NOT NULL,
				timestamp REAL NOT NULL,
				lat REAL,
				lon REAL,
				PRIMARY KEY (flyby_id, point_index)
			);

			CREATE TABLE IF NOT EXISTS crossing_events (
				station TEXT NOT NULL,
				satellite TEXT NOT NULL,
				episode_index INTEGER NOT NULL,
				event_index INTEGER NOT NULL,
				event_time REAL NOT NULL,
				kind TEXT NOT NULL,
				PRIMARY KEY (station, satellite, episode_index, event_index)
			);
		`,
	},
}

// Migrate applies all pending migrations inside transactions
func Migrate(db *sql.DB) error {
	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS migrations (
			version INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	applied := make(map[int]bool)
	rows, err := db.Query("SELECT version FROM migrations ORDER BY version")
	if err != nil {
		return fmt.Errorf("failed to query migrations: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var version int
		if err := rows.Scan(&version); err != nil {
			return fmt.Errorf("failed to scan migration version: %w", err)
		}
		applied[version] = true
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to read migrations: %w", err)
	}

	for _, m := range migrations {
		if applied[m.Version] {
			continue
		}

		err := Transaction(db, func(tx *sql.Tx) error {
			if _, err := tx.Exec(m.SQL); err != nil {
				return fmt.Errorf("failed to apply migration %d (%s): %w", m.Version, m.Name, err)
			}
			if _, err := tx.Exec(
				"INSERT INTO migrations (version, name) VALUES (?, ?)", m.Version, m.Name,
			); err != nil {
				return fmt.Errorf("failed to record migration %d: %w", m.Version, err)
			}
			return nil
		})
		if err != nil {
			return err
		}

		log.Printf("[Database] applied migration %d_%s", m.Version, m.Name)
	}

	return nil
}
