package database

import (
	"context"
	"database/sql"
	"fmt"
)

// Table names used for change notification.
const (
	TablePlants          = "plants"
	TableGardenPlantings = "garden_plantings"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS plants (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT,
		grow_zone_number INTEGER NOT NULL DEFAULT 0,
		watering_interval INTEGER NOT NULL DEFAULT 7,
		image_url TEXT
	)`,
	`CREATE INDEX IF NOT EXISTS idx_plants_grow_zone
		ON plants(grow_zone_number)`,
	// plant_id is UNIQUE: a plant is either planted or not
	`CREATE TABLE IF NOT EXISTS garden_plantings (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		plant_id TEXT NOT NULL UNIQUE,
		plant_date DATETIME NOT NULL,
		last_watering_date DATETIME NOT NULL,
		FOREIGN KEY (plant_id) REFERENCES plants(id) ON DELETE CASCADE
	)`,
}

// Migrate creates the database schema if it does not exist yet.
func Migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}
