package cli

import (
	"database/sql"
	"testing"

	"github.com/thenoetrevino/sprout/internal/app"
	"github.com/thenoetrevino/sprout/internal/testutil"
)

// SetupCLITest creates an in-memory DB holding testutil.TestPlants and
// returns both the DB and App instance.
// This lives in its own package to avoid import cycles when service tests
// import testutil.
func SetupCLITest(t *testing.T, opts ...app.Option) (*sql.DB, *app.App) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	testutil.SeedTestPlants(t, db)

	return db, app.New(db, opts...)
}

// CountPlantings wraps testutil.CountPlantings for CLI tests
func CountPlantings(t *testing.T, db *sql.DB, plantID string) int {
	t.Helper()
	return testutil.CountPlantings(t, db, plantID)
}
