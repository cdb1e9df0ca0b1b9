package database

import (
	"database/sql"
	"fmt"
	"log"
)

// Migration represents a database migration
type Migration struct {
	Version int
	Name    string
	SQL     string
}

// migrations are applied in version order; each runs at most once.
var migrations = []Migration{
	{
		Version: 1,
		Name:    "create_vehicles",
		SQL: `
			CREATE TABLE IF NOT EXISTS vehicles (
				vehicle_id TEXT PRIMARY KEY,
				make TEXT NOT NULL,
				model TEXT NOT NULL,
				description TEXT,
				active INTEGER NOT NULL DEFAULT 0,
				created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
				updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
			)
		`,
	},
	{
		Version: 2,
		Name:    "create_geofences",
		SQL: `
			CREATE TABLE IF NOT EXISTS geofences (
				geofence_id TEXT PRIMARY KEY,
				name TEXT NOT NULL UNIQUE,
				polygon_coordinates TEXT NOT NULL,
				authorized_vehicle_ids TEXT NOT NULL,
				validation_strategy TEXT NOT NULL,
				created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
				updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
			)
		`,
	},
	{
		Version: 3,
		Name:    "create_vehicle_positions",
		SQL: `
			CREATE TABLE IF NOT EXISTS vehicle_positions (
				vehicle_id TEXT PRIMARY KEY REFERENCES vehicles(vehicle_id) ON DELETE CASCADE,
				id TEXT NOT NULL,
				latitude REAL NOT NULL,
				longitude REAL NOT NULL,
				geofence_id TEXT,
				within_geofence INTEGER NOT NULL DEFAULT 0,
				distance_meters REAL NOT NULL DEFAULT 0,
				heading REAL NOT NULL DEFAULT 0,
				recorded_at TIMESTAMP NOT NULL
			)
		`,
	},
}

// Migrate applies all pending migrations to db.
func Migrate(db *sql.DB) error {
	if err := initMigrationsTable(db); err != nil {
		return err
	}

	applied, err := appliedMigrations(db)
	if err != nil {
		return err
	}

	for _, m := range migrations {
		if applied[m.Version] {
			continue
		}
		// Apply and record atomically so a failed migration leaves no
		// half-applied version behind.
		err := Transaction(db, func(tx *sql.Tx) error {
			if _, err := tx.Exec(m.SQL); err != nil {
				return fmt.Errorf("failed to apply migration %d (%s): %w", m.Version, m.Name, err)
			}
			if _, err := tx.Exec("INSERT INTO migrations (version, name) VALUES (?, ?)", m.Version, m.Name); err != nil {
				return fmt.Errorf("failed to record migration %d: %w", m.Version, err)
			}
			return nil
		})
		if err != nil {
			return err
		}
		log.Printf("Applied migration %d: %s", m.Version, m.Name)
	}

	return nil
}

func initMigrationsTable(db *sql.DB) error {
	query := `
		CREATE TABLE IF NOT EXISTS migrations (
			version INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`
	if _, err := db.Exec(query); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}
	return nil
}

func appliedMigrations(db *sql.DB) (map[int]bool, error) {
	rows, err := db.Query("SELECT version FROM migrations ORDER BY version")
	if err != nil {
		return nil, fmt.Errorf("failed to query migrations: %w", err)
	}
	defer rows.Close()

	applied := make(map[int]bool)
	for rows.Next() {
		var version int
		if err := rows.Scan(&version); err != nil {
			return nil, fmt.Errorf("failed to scan migration version: %w", err)
		}
		applied[version] = true
	}

	return applied, rows.Err()
}
