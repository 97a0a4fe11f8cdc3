package database

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/thenoetrevino/sprout/internal/models"
	_ "modernc.org/sqlite"
)

// ============================================================================
// DATABASE SETUP HELPERS
// Local to this package to avoid an import cycle with testutil
// ============================================================================

// setupTestDB creates an in-memory database and runs migrations
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := configureMemory(db); err != nil {
		t.Fatalf("Failed to configure database: %v", err)
	}

	if err := Migrate(context.Background(), db); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	return db
}

func configureMemory(db *sql.DB) error {
	db.SetMaxOpenConns(1)
	_, err := db.Exec("PRAGMA foreign_keys = ON")
	return err
}

// setupTestDBFile creates a file-based database for testing persistence across restarts
func setupTestDBFile(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "sprout-test.db")
}

// seedPlants inserts the standard test catalog.
func seedPlants(t *testing.T, repo *Repository) {
	t.Helper()
	n, err := repo.InsertPlants(context.Background(), []*models.Plant{
		{ID: "tomato", Name: "Tomato", Description: "Juicy.", GrowZoneNumber: 9, WateringInterval: 3},
		{ID: "basil", Name: "Basil", GrowZoneNumber: 10, WateringInterval: 2, ImageURL: "https://example.com/basil.jpg"},
		{ID: "sunflower", Name: "Sunflower", GrowZoneNumber: 9, WateringInterval: 7},
	})
	if err != nil {
		t.Fatalf("Failed to seed plants: %v", err)
	}
	if n != 3 {
		t.Fatalf("Expected 3 seeded plants, got %d", n)
	}
}

// fixedClock returns a clock that always reports at.
func fixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}

// receive waits for the next value on ch or fails the test.
func receive[T any](t *testing.T, ch <-chan T) T {
	t.Helper()
	select {
	case v, ok := <-ch:
		if !ok {
			t.Fatal("channel closed unexpectedly")
		}
		return v
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for value")
	}
	var zero T
	return zero
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
