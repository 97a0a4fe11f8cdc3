package testutil

import (
	"context"
	"database/sql"
	"testing"

	"github.com/thenoetrevino/sprout/internal/database"
	"github.com/thenoetrevino/sprout/internal/models"
	_ "modernc.org/sqlite"
)

// SetupTestDB creates an in-memory database with full schema
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})

	// Every connection to :memory: is a separate database
	db.SetMaxOpenConns(1)

	// Enable foreign key constraints
	if _, err := db.ExecContext(context.Background(), "PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("Failed to enable foreign keys: %v", err)
	}

	if err := database.Migrate(context.Background(), db); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return db
}

// TestPlants returns a small catalog used across tests.
func TestPlants() []*models.Plant {
	return []*models.Plant{
		{ID: "tomato", Name: "Tomato", Description: "A *juicy* fruit.", GrowZoneNumber: 9, WateringInterval: 3},
		{ID: "basil", Name: "Basil", Description: "Fragrant herb.", GrowZoneNumber: 10, WateringInterval: 2},
		{ID: "sunflower", Name: "Sunflower", Description: "Tall and bright.", GrowZoneNumber: 9, WateringInterval: 7},
	}
}

// SeedTestPlants inserts TestPlants directly through SQL.
func SeedTestPlants(t *testing.T, db *sql.DB) {
	t.Helper()
	for _, p := range TestPlants() {
		_, err := db.ExecContext(context.Background(),
			`INSERT INTO plants (id, name, description, grow_zone_number, watering_interval, image_url)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			p.ID, p.Name, p.Description, p.GrowZoneNumber, p.WateringInterval, p.ImageURL,
		)
		if err != nil {
			t.Fatalf("Failed to seed plant %s: %v", p.ID, err)
		}
	}
}

// CountPlantings returns the number of garden_plantings rows for plantID.
func CountPlantings(t *testing.T, db *sql.DB, plantID string) int {
	t.Helper()
	var count int
	err := db.QueryRowContext(context.Background(),
		`SELECT COUNT(*) FROM garden_plantings WHERE plant_id = ?`, plantID,
	).Scan(&count)
	if err != nil {
		t.Fatalf("Failed to count plantings: %v", err)
	}
	return count
}

// NewTestRepository returns a repository over a fresh in-memory database
// holding TestPlants.
func NewTestRepository(t *testing.T) (*database.Repository, *sql.DB) {
	t.Helper()
	db := SetupTestDB(t)
	SeedTestPlants(t, db)
	return database.NewRepository(db), db
}
