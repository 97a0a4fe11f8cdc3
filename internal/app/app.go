// Package app wires sprout's store, use cases and remote collaborators into
// one container shared by the TUI and the CLI.
package app

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/thenoetrevino/sprout/internal/config"
	"github.com/thenoetrevino/sprout/internal/database"
	"github.com/thenoetrevino/sprout/internal/events"
	"github.com/thenoetrevino/sprout/internal/seed"
	gardenservice "github.com/thenoetrevino/sprout/internal/services/garden"
	plantservice "github.com/thenoetrevino/sprout/internal/services/plant"
	"github.com/thenoetrevino/sprout/internal/unsplash"
)

// App holds all application services and provides dependency injection.
type App struct {
	db   *sql.DB
	repo *database.Repository

	// Event system for live updates
	eventClient events.EventPublisher
	logger      *slog.Logger
	config      *config.Config

	PlantService  plantservice.Service
	GardenService gardenservice.Service
	Unsplash      *unsplash.Client
}

// New creates a new App over an initialized database.
func New(db *sql.DB, opts ...Option) *App {
	cfg := &appConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.logger == nil {
		cfg.logger = slog.Default()
	}
	if cfg.config == nil {
		cfg.config = &config.Config{}
	}
	if cfg.unsplash == nil {
		cfg.unsplash = unsplash.NewClient(cfg.config.UnsplashAccessKey)
	}

	repo := database.NewRepository(db)

	return &App{
		db:            db,
		repo:          repo,
		eventClient:   cfg.eventClient,
		logger:        cfg.logger,
		config:        cfg.config,
		PlantService:  plantservice.NewService(repo, cfg.eventClient),
		GardenService: gardenservice.NewService(repo, cfg.eventClient),
		Unsplash:      cfg.unsplash,
	}
}

// Repo returns the underlying repository.
func (a *App) Repo() *database.Repository {
	return a.repo
}

// Config returns the configuration the app was built with.
func (a *App) Config() *config.Config {
	return a.config
}

// EventClient returns the daemon client, or nil when running without one.
func (a *App) EventClient() events.EventPublisher {
	return a.eventClient
}

// SeedIfEmpty imports the configured catalog when the plants table is empty.
func (a *App) SeedIfEmpty(ctx context.Context) (int, error) {
	return seed.IfEmpty(ctx, a.PlantService, a.config.SeedFile)
}

// tablesFor maps a daemon event to the tables whose observers must re-query.
func tablesFor(e events.Event) []string {
	switch e.Type {
	case events.EventGardenChanged:
		return []string{database.TableGardenPlantings}
	case events.EventPlantsChanged:
		return []string{database.TablePlants, database.TableGardenPlantings}
	default:
		return nil
	}
}

// ListenForChanges forwards change events written by other sprout processes
// into the local invalidation tracker until ctx is done or the daemon
// connection is given up. It returns immediately without a daemon.
func (a *App) ListenForChanges(ctx context.Context) error {
	if a.eventClient == nil {
		return nil
	}

	eventChan, err := a.eventClient.Listen(ctx)
	if err != nil {
		return err
	}

	tracker := a.repo.Tracker()
	for {
		select {
		case <-ctx.Done():
			return nil
		case e, ok := <-eventChan:
			if !ok {
				return nil
			}
			tables := tablesFor(e)
			if len(tables) == 0 {
				continue
			}
			a.logger.Debug("remote change received", "type", e.Type, "plant_id", e.PlantID, "sequence", e.SequenceID)
			tracker.Notify(tables...)
		}
	}
}

// Close closes the database. The event client is owned by the caller.
func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}
