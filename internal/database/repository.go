package database

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/thenoetrevino/sprout/internal/models"
)

// Repository adapts the DAOs to domain types. It adds no logic beyond
// mapping rows to models.
type Repository struct {
	plants  *plantDAO
	gardens *gardenPlantingDAO
	tracker *InvalidationTracker
	now     func() time.Time
}

// RepositoryOption configures a Repository.
type RepositoryOption func(*Repository)

// WithTracker shares an existing invalidation tracker, for instance one that
// is also fed by events from other processes.
func WithTracker(tracker *InvalidationTracker) RepositoryOption {
	return func(r *Repository) {
		r.tracker = tracker
	}
}

// WithClock overrides the clock used to stamp planting and watering dates.
func WithClock(now func() time.Time) RepositoryOption {
	return func(r *Repository) {
		r.now = now
	}
}

// NewRepository creates a new Repository instance wrapping the given database connection.
func NewRepository(db *sql.DB, opts ...RepositoryOption) *Repository {
	r := &Repository{now: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	if r.tracker == nil {
		r.tracker = NewInvalidationTracker()
	}

	r.plants = &plantDAO{db: db, tracker: r.tracker}
	r.gardens = &gardenPlantingDAO{db: db, tracker: r.tracker}
	return r
}

// Tracker returns the invalidation tracker driving continuous queries.
func (r *Repository) Tracker() *InvalidationTracker {
	return r.tracker
}

// Compile-time verification that *Repository implements DataStore
var _ DataStore = (*Repository)(nil)

// ============================================================================
// Plants
// ============================================================================

func (r *Repository) GetPlants(ctx context.Context) ([]*models.Plant, error) {
	rows, err := r.plants.getAll(ctx)
	if err != nil {
		return nil, err
	}
	return toPlantModels(rows), nil
}

func (r *Repository) GetPlant(ctx context.Context, id string) (*models.Plant, error) {
	row, err := r.plants.getByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toPlantModel(row), nil
}

func (r *Repository) GetPlantsWithGrowZoneNumber(ctx context.Context, zone int) ([]*models.Plant, error) {
	rows, err := r.plants.getByGrowZone(ctx, zone)
	if err != nil {
		return nil, err
	}
	return toPlantModels(rows), nil
}

func (r *Repository) CountPlants(ctx context.Context) (int, error) {
	return r.plants.count(ctx)
}

func (r *Repository) WatchPlants(ctx context.Context) <-chan []*models.Plant {
	return observe(ctx, r.tracker, r.GetPlants, TablePlants)
}

// WatchPlant emits nil while the plant does not exist.
func (r *Repository) WatchPlant(ctx context.Context, id string) <-chan *models.Plant {
	return observe(ctx, r.tracker, func(ctx context.Context) (*models.Plant, error) {
		plant, err := r.GetPlant(ctx, id)
		if errors.Is(err, models.ErrPlantNotFound) {
			return nil, nil
		}
		return plant, err
	}, TablePlants)
}

func (r *Repository) WatchPlantsWithGrowZoneNumber(ctx context.Context, zone int) <-chan []*models.Plant {
	return observe(ctx, r.tracker, func(ctx context.Context) ([]*models.Plant, error) {
		return r.GetPlantsWithGrowZoneNumber(ctx, zone)
	}, TablePlants)
}

func (r *Repository) InsertPlants(ctx context.Context, plants []*models.Plant) (int, error) {
	rows := make([]plantRow, len(plants))
	for i, p := range plants {
		rows[i] = plantRow{
			ID:               p.ID,
			Name:             p.Name,
			Description:      stringToNull(p.Description),
			GrowZoneNumber:   int64(p.GrowZoneNumber),
			WateringInterval: int64(p.WateringInterval),
			ImageURL:         stringToNull(p.ImageURL),
		}
	}
	return r.plants.insertAll(ctx, rows)
}

// ============================================================================
// Garden plantings
// ============================================================================

func (r *Repository) CreateGardenPlanting(ctx context.Context, plantID string) error {
	_, err := r.gardens.insert(ctx, plantID, r.now())
	return err
}

func (r *Repository) RemoveGardenPlanting(ctx context.Context, plantID string) error {
	_, err := r.gardens.deleteByPlantID(ctx, plantID)
	return err
}

func (r *Repository) WaterGardenPlanting(ctx context.Context, plantID string) error {
	return r.gardens.water(ctx, plantID, r.now())
}

func (r *Repository) IsPlanted(ctx context.Context, plantID string) (bool, error) {
	return r.gardens.isPlanted(ctx, plantID)
}

func (r *Repository) GetGardenPlanting(ctx context.Context, plantID string) (*models.GardenPlanting, error) {
	row, err := r.gardens.getByPlantID(ctx, plantID)
	if err != nil {
		return nil, err
	}
	return toGardenPlantingModel(row), nil
}

func (r *Repository) GetPlantedGardens(ctx context.Context) ([]*models.PlantAndGardenPlanting, error) {
	rows, err := r.gardens.plantedGardens(ctx)
	if err != nil {
		return nil, err
	}
	return toPlantedGardenModels(rows), nil
}

func (r *Repository) WatchIsPlanted(ctx context.Context, plantID string) <-chan bool {
	return observe(ctx, r.tracker, func(ctx context.Context) (bool, error) {
		return r.IsPlanted(ctx, plantID)
	}, TableGardenPlantings)
}

// WatchPlantedGardens re-runs on plant changes too, since the listing joins both tables.
func (r *Repository) WatchPlantedGardens(ctx context.Context) <-chan []*models.PlantAndGardenPlanting {
	return observe(ctx, r.tracker, r.GetPlantedGardens, TableGardenPlantings, TablePlants)
}
