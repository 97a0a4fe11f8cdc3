// Package garden is the use case for adding plants to and removing them from
// the user's garden.
package garden

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/thenoetrevino/sprout/internal/database"
	"github.com/thenoetrevino/sprout/internal/events"
	"github.com/thenoetrevino/sprout/internal/models"
)

// publishRetries bounds PublishWithRetry attempts for garden events.
const publishRetries = 3

// Service defines all garden-related business operations
type Service interface {
	// Continuous reads. Each stream emits the current value, then a new one
	// after every relevant change, until ctx is done.
	IsPlanted(ctx context.Context, plantID string) <-chan bool
	GetPlantedGardens(ctx context.Context) <-chan []*models.PlantAndGardenPlanting

	// One-shot reads
	ListPlantedGardens(ctx context.Context) ([]*models.PlantAndGardenPlanting, error)
	GetGardenPlanting(ctx context.Context, plantID string) (*models.GardenPlanting, error)

	// Write operations. These never panic; failures are reported in Result.Err.
	CreateGardenPlanting(ctx context.Context, plantID string) Result
	RemoveGardenPlanting(ctx context.Context, plantID string) Result
	WaterGardenPlanting(ctx context.Context, plantID string) Result
}

// service implements Service interface
type service struct {
	repo        database.DataStore
	eventClient events.EventPublisher
	locks       *keyedLocks
}

// NewService creates a new garden service. eventClient may be nil.
func NewService(repo database.DataStore, eventClient events.EventPublisher) Service {
	return &service{
		repo:        repo,
		eventClient: eventClient,
		locks:       newKeyedLocks(),
	}
}

func (s *service) IsPlanted(ctx context.Context, plantID string) <-chan bool {
	return s.repo.WatchIsPlanted(ctx, plantID)
}

func (s *service) GetPlantedGardens(ctx context.Context) <-chan []*models.PlantAndGardenPlanting {
	return s.repo.WatchPlantedGardens(ctx)
}

func (s *service) ListPlantedGardens(ctx context.Context) ([]*models.PlantAndGardenPlanting, error) {
	gardens, err := s.repo.GetPlantedGardens(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list planted gardens: %w", err)
	}
	return gardens, nil
}

// GetGardenPlanting returns models.ErrNotPlanted when plantID is not in the garden.
func (s *service) GetGardenPlanting(ctx context.Context, plantID string) (*models.GardenPlanting, error) {
	if strings.TrimSpace(plantID) == "" {
		return nil, ErrEmptyPlantID
	}
	return s.repo.GetGardenPlanting(ctx, plantID)
}

// CreateGardenPlanting adds plantID to the garden. Planting an already planted
// plant succeeds without creating a second record.
func (s *service) CreateGardenPlanting(ctx context.Context, plantID string) Result {
	return s.write(ctx, "create garden planting", ActionPlanted, plantID, func(ctx context.Context) error {
		if _, err := s.repo.GetPlant(ctx, plantID); err != nil {
			return err
		}
		return s.repo.CreateGardenPlanting(ctx, plantID)
	})
}

// RemoveGardenPlanting removes plantID from the garden. Removing a plant that
// is not planted succeeds.
func (s *service) RemoveGardenPlanting(ctx context.Context, plantID string) Result {
	return s.write(ctx, "remove garden planting", ActionRemoved, plantID, func(ctx context.Context) error {
		return s.repo.RemoveGardenPlanting(ctx, plantID)
	})
}

// WaterGardenPlanting records a watering now.
func (s *service) WaterGardenPlanting(ctx context.Context, plantID string) Result {
	return s.write(ctx, "water garden planting", ActionWatered, plantID, func(ctx context.Context) error {
		return s.repo.WaterGardenPlanting(ctx, plantID)
	})
}

// write runs op while holding the lock for plantID and converts every
// failure, panics included, into the Result.
func (s *service) write(ctx context.Context, op string, action Action, plantID string, fn func(context.Context) error) (res Result) {
	res = Result{PlantID: plantID, Action: action}

	if strings.TrimSpace(plantID) == "" {
		res.Err = ErrEmptyPlantID
		return res
	}

	if err := ctx.Err(); err != nil {
		res.Err = err
		return res
	}

	unlock, err := s.locks.lock(ctx, plantID)
	if err != nil {
		res.Err = err
		return res
	}
	defer unlock()

	defer func() {
		if r := recover(); r != nil {
			slog.Error("garden store panicked", "op", op, "plant_id", plantID, "panic", r)
			res.Err = &StoreError{Op: op, PlantID: plantID, Err: fmt.Errorf("panic: %v", r)}
		}
	}()

	if err := fn(ctx); err != nil {
		switch {
		case errors.Is(err, models.ErrPlantNotFound), errors.Is(err, models.ErrNotPlanted):
			res.Err = err
		default:
			slog.Warn("garden write failed", "op", op, "plant_id", plantID, "error", err)
			res.Err = &StoreError{Op: op, PlantID: plantID, Err: err}
		}
		return res
	}

	slog.Debug("garden write succeeded", "action", action, "plant_id", plantID)
	s.publishGardenEvent(plantID)
	return res
}

// publishGardenEvent tells other sprout processes the garden changed
func (s *service) publishGardenEvent(plantID string) {
	if s.eventClient == nil {
		return
	}

	event := events.Event{
		Type:      events.EventGardenChanged,
		PlantID:   plantID,
		Timestamp: time.Now(),
	}
	// The first attempt is synchronous so a short-lived process has queued
	// the event before it closes the client.
	if err := s.eventClient.SendEvent(event); err == nil {
		return
	}
	go func() {
		_ = events.PublishWithRetry(s.eventClient, event, publishRetries)
	}()
}
