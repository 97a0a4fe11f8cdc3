package seed

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/sprout/internal/database"
	"github.com/thenoetrevino/sprout/internal/services/plant"
	"github.com/thenoetrevino/sprout/internal/testutil"
)

func TestLoad_EmbeddedCatalog(t *testing.T) {
	plants, err := LoadFile("")
	require.NoError(t, err)
	require.NotEmpty(t, plants)

	ids := map[string]bool{}
	for _, p := range plants {
		assert.NotEmpty(t, p.Name)
		assert.GreaterOrEqual(t, p.WateringInterval, 1)
		ids[p.ID] = true
	}
	assert.Len(t, ids, len(plants))
	assert.True(t, ids["solanum-lycopersicum"])
}

func TestLoad_DefaultsWateringInterval(t *testing.T) {
	plants, err := Load(strings.NewReader(`[{"plantId":"fig","name":"Fig","growZoneNumber":8}]`))
	require.NoError(t, err)
	require.Len(t, plants, 1)
	assert.Equal(t, 7, plants[0].WateringInterval)
}

func TestLoad_InvalidRecords(t *testing.T) {
	tests := []struct {
		name string
		json string
	}{
		{"missing id", `[{"name":"Fig","growZoneNumber":8}]`},
		{"missing name", `[{"plantId":"fig","growZoneNumber":8}]`},
		{"zone too high", `[{"plantId":"fig","name":"Fig","growZoneNumber":14}]`},
		{"zone missing", `[{"plantId":"fig","name":"Fig"}]`},
		{"negative interval", `[{"plantId":"fig","name":"Fig","growZoneNumber":8,"wateringInterval":-1}]`},
		{"bad url", `[{"plantId":"fig","name":"Fig","growZoneNumber":8,"imageUrl":"not a url"}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.json))
			require.Error(t, err)

			var recErr *RecordError
			require.ErrorAs(t, err, &recErr)
			assert.Equal(t, 0, recErr.Index)

			var verrs validator.ValidationErrors
			assert.ErrorAs(t, err, &verrs)
		})
	}
}

func TestLoad_Duplicates(t *testing.T) {
	_, err := Load(strings.NewReader(`[
		{"plantId":"fig","name":"Fig","growZoneNumber":8},
		{"plantId":"fig","name":"Fig again","growZoneNumber":8}
	]`))
	assert.ErrorIs(t, err, ErrDuplicatePlant)
}

func TestLoad_MalformedJSON(t *testing.T) {
	_, err := Load(strings.NewReader(`{"plantId":`))
	assert.Error(t, err)

	_, err = Load(strings.NewReader(`[{"plantId":"fig","name":"Fig","growZoneNumber":8,"colour":"green"}]`))
	assert.Error(t, err, "unknown fields are rejected")
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestIfEmpty(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := plant.NewService(database.NewRepository(db), nil)
	ctx := context.Background()

	n, err := IfEmpty(ctx, svc, "")
	require.NoError(t, err)
	assert.Greater(t, n, 0)

	// Second run is a no-op
	again, err := IfEmpty(ctx, svc, "")
	require.NoError(t, err)
	assert.Equal(t, 0, again)
}

func TestIfEmpty_SkipsPopulatedCatalog(t *testing.T) {
	repo, _ := testutil.NewTestRepository(t)
	svc := plant.NewService(repo, nil)

	n, err := IfEmpty(context.Background(), svc, "")
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	count, err := svc.CountPlants(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestRun_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plants.json")
	require.NoError(t, os.WriteFile(path, []byte(`[
		{"plantId":"fig","name":"Fig","growZoneNumber":8,"wateringInterval":5},
		{"plantId":"tomato","name":"Tomato","growZoneNumber":9}
	]`), 0o600))

	repo, _ := testutil.NewTestRepository(t)
	svc := plant.NewService(repo, nil)

	n, err := Run(context.Background(), svc, path)
	require.NoError(t, err)
	assert.Equal(t, 1, n, "tomato already exists")
}
