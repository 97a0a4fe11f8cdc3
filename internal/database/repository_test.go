package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/thenoetrevino/sprout/internal/models"
)

// ============================================================================
// Plant catalog
// ============================================================================

func TestGetPlants_SortedByName(t *testing.T) {
	t.Parallel()
	repo := NewRepository(setupTestDB(t))
	seedPlants(t, repo)

	plants, err := repo.GetPlants(context.Background())
	if err != nil {
		t.Fatalf("GetPlants failed: %v", err)
	}

	want := []string{"Basil", "Sunflower", "Tomato"}
	if len(plants) != len(want) {
		t.Fatalf("Expected %d plants, got %d", len(want), len(plants))
	}
	for i, name := range want {
		if plants[i].Name != name {
			t.Errorf("plants[%d] = %s, want %s", i, plants[i].Name, name)
		}
	}
}

func TestGetPlant_MapsAllFields(t *testing.T) {
	t.Parallel()
	repo := NewRepository(setupTestDB(t))
	seedPlants(t, repo)

	plant, err := repo.GetPlant(context.Background(), "basil")
	if err != nil {
		t.Fatalf("GetPlant failed: %v", err)
	}

	if plant.Description != "" {
		t.Errorf("Expected empty description for NULL column, got %q", plant.Description)
	}
	if plant.ImageURL != "https://example.com/basil.jpg" {
		t.Errorf("Unexpected image url %q", plant.ImageURL)
	}
	if plant.GrowZoneNumber != 10 || plant.WateringInterval != 2 {
		t.Errorf("Unexpected zone/interval %d/%d", plant.GrowZoneNumber, plant.WateringInterval)
	}
}

func TestGetPlant_NotFound(t *testing.T) {
	t.Parallel()
	repo := NewRepository(setupTestDB(t))

	_, err := repo.GetPlant(context.Background(), "nope")
	if !errors.Is(err, models.ErrPlantNotFound) {
		t.Errorf("Expected ErrPlantNotFound, got %v", err)
	}
}

func TestGetPlantsWithGrowZoneNumber(t *testing.T) {
	t.Parallel()
	repo := NewRepository(setupTestDB(t))
	seedPlants(t, repo)

	plants, err := repo.GetPlantsWithGrowZoneNumber(context.Background(), 9)
	if err != nil {
		t.Fatalf("GetPlantsWithGrowZoneNumber failed: %v", err)
	}
	if len(plants) != 2 {
		t.Fatalf("Expected 2 plants in zone 9, got %d", len(plants))
	}
	for _, p := range plants {
		if p.GrowZoneNumber != 9 {
			t.Errorf("plant %s has zone %d", p.ID, p.GrowZoneNumber)
		}
	}
}

func TestInsertPlants_IgnoresExistingIDs(t *testing.T) {
	t.Parallel()
	repo := NewRepository(setupTestDB(t))
	seedPlants(t, repo)

	n, err := repo.InsertPlants(context.Background(), []*models.Plant{
		{ID: "tomato", Name: "Renamed Tomato", GrowZoneNumber: 9, WateringInterval: 3},
		{ID: "mint", Name: "Mint", GrowZoneNumber: 5, WateringInterval: 2},
	})
	if err != nil {
		t.Fatalf("InsertPlants failed: %v", err)
	}
	if n != 1 {
		t.Errorf("Expected 1 inserted plant, got %d", n)
	}

	tomato, err := repo.GetPlant(context.Background(), "tomato")
	if err != nil {
		t.Fatalf("GetPlant failed: %v", err)
	}
	if tomato.Name != "Tomato" {
		t.Errorf("Existing plant was overwritten: %s", tomato.Name)
	}

	count, err := repo.CountPlants(context.Background())
	if err != nil {
		t.Fatalf("CountPlants failed: %v", err)
	}
	if count != 4 {
		t.Errorf("Expected 4 plants, got %d", count)
	}
}

// ============================================================================
// Garden plantings
// ============================================================================

func TestCreateGardenPlanting_Idempotent(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	repo := NewRepository(db)
	seedPlants(t, repo)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if err := repo.CreateGardenPlanting(ctx, "tomato"); err != nil {
			t.Fatalf("CreateGardenPlanting #%d failed: %v", i+1, err)
		}
	}

	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM garden_plantings WHERE plant_id = 'tomato'`).Scan(&count); err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected exactly one planting, got %d", count)
	}

	planted, err := repo.IsPlanted(ctx, "tomato")
	if err != nil {
		t.Fatalf("IsPlanted failed: %v", err)
	}
	if !planted {
		t.Error("Expected tomato to be planted")
	}
}

func TestCreateGardenPlanting_UnknownPlantViolatesForeignKey(t *testing.T) {
	t.Parallel()
	repo := NewRepository(setupTestDB(t))

	if err := repo.CreateGardenPlanting(context.Background(), "ghost"); err == nil {
		t.Error("Expected foreign key failure for unknown plant")
	}
}

func TestRemoveGardenPlanting_MissingIsNoop(t *testing.T) {
	t.Parallel()
	repo := NewRepository(setupTestDB(t))
	seedPlants(t, repo)
	ctx := context.Background()

	if err := repo.RemoveGardenPlanting(ctx, "tomato"); err != nil {
		t.Fatalf("RemoveGardenPlanting on missing planting failed: %v", err)
	}

	planted, err := repo.IsPlanted(ctx, "tomato")
	if err != nil {
		t.Fatalf("IsPlanted failed: %v", err)
	}
	if planted {
		t.Error("Expected tomato to not be planted")
	}
}

func TestGardenPlanting_Dates(t *testing.T) {
	t.Parallel()
	planted := time.Date(2024, 4, 1, 8, 0, 0, 0, time.UTC)
	repo := NewRepository(setupTestDB(t), WithClock(fixedClock(planted)))
	seedPlants(t, repo)
	ctx := context.Background()

	if err := repo.CreateGardenPlanting(ctx, "basil"); err != nil {
		t.Fatalf("CreateGardenPlanting failed: %v", err)
	}

	planting, err := repo.GetGardenPlanting(ctx, "basil")
	if err != nil {
		t.Fatalf("GetGardenPlanting failed: %v", err)
	}
	if !planting.PlantDate.Equal(planted) {
		t.Errorf("PlantDate = %v, want %v", planting.PlantDate, planted)
	}
	if !planting.LastWateringDate.Equal(planted) {
		t.Errorf("LastWateringDate = %v, want %v", planting.LastWateringDate, planted)
	}
}

func TestWaterGardenPlanting(t *testing.T) {
	t.Parallel()
	now := time.Date(2024, 4, 1, 8, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	repo := NewRepository(setupTestDB(t), WithClock(clock))
	seedPlants(t, repo)
	ctx := context.Background()

	if err := repo.WaterGardenPlanting(ctx, "basil"); !errors.Is(err, models.ErrNotPlanted) {
		t.Fatalf("Expected ErrNotPlanted, got %v", err)
	}

	if err := repo.CreateGardenPlanting(ctx, "basil"); err != nil {
		t.Fatalf("CreateGardenPlanting failed: %v", err)
	}

	now = now.AddDate(0, 0, 3)
	if err := repo.WaterGardenPlanting(ctx, "basil"); err != nil {
		t.Fatalf("WaterGardenPlanting failed: %v", err)
	}

	planting, err := repo.GetGardenPlanting(ctx, "basil")
	if err != nil {
		t.Fatalf("GetGardenPlanting failed: %v", err)
	}
	if !planting.LastWateringDate.Equal(now) {
		t.Errorf("LastWateringDate = %v, want %v", planting.LastWateringDate, now)
	}
	if planting.PlantDate.Equal(now) {
		t.Error("PlantDate should not change when watering")
	}
}

func TestGetPlantedGardens_JoinsPlants(t *testing.T) {
	t.Parallel()
	repo := NewRepository(setupTestDB(t))
	seedPlants(t, repo)
	ctx := context.Background()

	for _, id := range []string{"tomato", "basil"} {
		if err := repo.CreateGardenPlanting(ctx, id); err != nil {
			t.Fatalf("CreateGardenPlanting(%s) failed: %v", id, err)
		}
	}

	gardens, err := repo.GetPlantedGardens(ctx)
	if err != nil {
		t.Fatalf("GetPlantedGardens failed: %v", err)
	}
	if len(gardens) != 2 {
		t.Fatalf("Expected 2 planted gardens, got %d", len(gardens))
	}
	for _, g := range gardens {
		if g.Plant.ID != g.Planting.PlantID {
			t.Errorf("mismatched pair: plant %s, planting %s", g.Plant.ID, g.Planting.PlantID)
		}
	}
}

func TestCascadeDeletion(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	repo := NewRepository(db)
	seedPlants(t, repo)
	ctx := context.Background()

	if err := repo.CreateGardenPlanting(ctx, "tomato"); err != nil {
		t.Fatalf("CreateGardenPlanting failed: %v", err)
	}
	if _, err := db.Exec(`DELETE FROM plants WHERE id = 'tomato'`); err != nil {
		t.Fatalf("delete plant failed: %v", err)
	}

	planted, err := repo.IsPlanted(ctx, "tomato")
	if err != nil {
		t.Fatalf("IsPlanted failed: %v", err)
	}
	if planted {
		t.Error("Planting should be removed along with its plant")
	}
}

// ============================================================================
// Persistence
// ============================================================================

func TestInitDB_PersistsAcrossRestarts(t *testing.T) {
	path := setupTestDBFile(t)
	ctx := context.Background()

	db, err := InitDB(ctx, path)
	if err != nil {
		t.Fatalf("InitDB failed: %v", err)
	}
	repo := NewRepository(db)
	seedPlants(t, repo)
	if err := repo.CreateGardenPlanting(ctx, "sunflower"); err != nil {
		t.Fatalf("CreateGardenPlanting failed: %v", err)
	}
	if err := db.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	if !fileExists(path) {
		t.Fatal("database file was not created")
	}

	// Reopen runs migrations again, which must be idempotent
	db, err = InitDB(ctx, path)
	if err != nil {
		t.Fatalf("InitDB (reopen) failed: %v", err)
	}
	defer db.Close()

	planted, err := NewRepository(db).IsPlanted(ctx, "sunflower")
	if err != nil {
		t.Fatalf("IsPlanted failed: %v", err)
	}
	if !planted {
		t.Error("Planting did not survive restart")
	}
}
