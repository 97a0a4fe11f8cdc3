// Package plant is the use case for browsing the plant catalog.
package plant

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/thenoetrevino/sprout/internal/database"
	"github.com/thenoetrevino/sprout/internal/events"
	"github.com/thenoetrevino/sprout/internal/models"
)

const (
	MinGrowZone = 1
	MaxGrowZone = 13
)

// Service defines all plant catalog operations
type Service interface {
	// Continuous reads
	GetPlants(ctx context.Context) <-chan []*models.Plant
	GetPlant(ctx context.Context, id string) <-chan *models.Plant
	GetPlantsWithGrowZoneNumber(ctx context.Context, zone int) <-chan []*models.Plant

	// One-shot reads
	ListPlants(ctx context.Context) ([]*models.Plant, error)
	FindPlant(ctx context.Context, id string) (*models.Plant, error)
	ListPlantsInGrowZone(ctx context.Context, zone int) ([]*models.Plant, error)
	CountPlants(ctx context.Context) (int, error)

	// Write operations
	ImportPlants(ctx context.Context, plants []*models.Plant) (int, error)
}

// service implements Service interface
type service struct {
	repo        database.PlantRepository
	eventClient events.EventPublisher
}

// NewService creates a new plant service. eventClient may be nil.
func NewService(repo database.PlantRepository, eventClient events.EventPublisher) Service {
	return &service{
		repo:        repo,
		eventClient: eventClient,
	}
}

func (s *service) GetPlants(ctx context.Context) <-chan []*models.Plant {
	return s.repo.WatchPlants(ctx)
}

// GetPlant emits nil while the plant does not exist.
func (s *service) GetPlant(ctx context.Context, id string) <-chan *models.Plant {
	return s.repo.WatchPlant(ctx, id)
}

func (s *service) GetPlantsWithGrowZoneNumber(ctx context.Context, zone int) <-chan []*models.Plant {
	return s.repo.WatchPlantsWithGrowZoneNumber(ctx, zone)
}

func (s *service) ListPlants(ctx context.Context) ([]*models.Plant, error) {
	plants, err := s.repo.GetPlants(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list plants: %w", err)
	}
	return plants, nil
}

// FindPlant returns models.ErrPlantNotFound for an unknown id.
func (s *service) FindPlant(ctx context.Context, id string) (*models.Plant, error) {
	if strings.TrimSpace(id) == "" {
		return nil, ErrEmptyPlantID
	}
	return s.repo.GetPlant(ctx, id)
}

func (s *service) ListPlantsInGrowZone(ctx context.Context, zone int) ([]*models.Plant, error) {
	if err := ValidateGrowZone(zone); err != nil {
		return nil, err
	}
	plants, err := s.repo.GetPlantsWithGrowZoneNumber(ctx, zone)
	if err != nil {
		return nil, fmt.Errorf("failed to list plants in zone %d: %w", zone, err)
	}
	return plants, nil
}

func (s *service) CountPlants(ctx context.Context) (int, error) {
	return s.repo.CountPlants(ctx)
}

// ImportPlants inserts plants whose ids are not yet in the catalog and
// returns how many were new. Existing plants are left untouched.
func (s *service) ImportPlants(ctx context.Context, plants []*models.Plant) (int, error) {
	if len(plants) == 0 {
		return 0, ErrNothingToImport
	}

	seen := make(map[string]struct{}, len(plants))
	for _, p := range plants {
		if strings.TrimSpace(p.ID) == "" {
			return 0, ErrEmptyPlantID
		}
		if _, dup := seen[p.ID]; dup {
			return 0, fmt.Errorf("%w: %s", ErrDuplicatePlantID, p.ID)
		}
		seen[p.ID] = struct{}{}
	}

	inserted, err := s.repo.InsertPlants(ctx, plants)
	if err != nil {
		return 0, fmt.Errorf("failed to import plants: %w", err)
	}

	if inserted > 0 && s.eventClient != nil {
		event := events.Event{Type: events.EventPlantsChanged, Timestamp: time.Now()}
		if err := s.eventClient.SendEvent(event); err != nil {
			go func() {
				_ = events.PublishWithRetry(s.eventClient, event, 3)
			}()
		}
	}
	return inserted, nil
}

// ValidateGrowZone checks zone against the USDA hardiness range.
func ValidateGrowZone(zone int) error {
	if zone < MinGrowZone || zone > MaxGrowZone {
		return ErrInvalidGrowZone
	}
	return nil
}
