package database

import (
	"context"

	"github.com/thenoetrevino/sprout/internal/models"
)

// PlantReader defines one-shot read operations for the plant catalog.
type PlantReader interface {
	GetPlants(ctx context.Context) ([]*models.Plant, error)
	GetPlant(ctx context.Context, id string) (*models.Plant, error)
	GetPlantsWithGrowZoneNumber(ctx context.Context, zone int) ([]*models.Plant, error)
	CountPlants(ctx context.Context) (int, error)
}

// PlantWatcher defines continuous read operations for the plant catalog.
// Each channel emits the current value first, then a new value after every
// change, and is closed when ctx is done.
type PlantWatcher interface {
	WatchPlants(ctx context.Context) <-chan []*models.Plant
	WatchPlant(ctx context.Context, id string) <-chan *models.Plant
	WatchPlantsWithGrowZoneNumber(ctx context.Context, zone int) <-chan []*models.Plant
}

// PlantWriter defines write operations for the plant catalog.
type PlantWriter interface {
	InsertPlants(ctx context.Context, plants []*models.Plant) (int, error)
}

// PlantRepository combines all plant-related operations.
type PlantRepository interface {
	PlantReader
	PlantWatcher
	PlantWriter
}

// GardenPlantingReader defines one-shot read operations for plantings.
type GardenPlantingReader interface {
	IsPlanted(ctx context.Context, plantID string) (bool, error)
	GetGardenPlanting(ctx context.Context, plantID string) (*models.GardenPlanting, error)
	GetPlantedGardens(ctx context.Context) ([]*models.PlantAndGardenPlanting, error)
}

// GardenPlantingWatcher defines continuous read operations for plantings.
type GardenPlantingWatcher interface {
	WatchIsPlanted(ctx context.Context, plantID string) <-chan bool
	WatchPlantedGardens(ctx context.Context) <-chan []*models.PlantAndGardenPlanting
}

// GardenPlantingWriter defines write operations for plantings.
// CreateGardenPlanting is idempotent and RemoveGardenPlanting is a no-op
// when nothing is planted.
type GardenPlantingWriter interface {
	CreateGardenPlanting(ctx context.Context, plantID string) error
	RemoveGardenPlanting(ctx context.Context, plantID string) error
	WaterGardenPlanting(ctx context.Context, plantID string) error
}

// GardenPlantingRepository combines all planting-related operations.
type GardenPlantingRepository interface {
	GardenPlantingReader
	GardenPlantingWatcher
	GardenPlantingWriter
}

// DataStore defines the unified interface for all data operations.
// This interface is composed of smaller, domain-specific interfaces following the
// Interface Segregation Principle. Consumers can depend on smaller interfaces
// (e.g., GardenPlantingRepository) for better testability and clearer dependencies.
type DataStore interface {
	PlantRepository
	GardenPlantingRepository
}
