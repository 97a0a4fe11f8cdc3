// Package cli holds the shared plumbing of sprout's scriptable commands:
// container setup, output formatting and exit codes.
package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/thenoetrevino/sprout/internal/app"
	"github.com/thenoetrevino/sprout/internal/config"
	"github.com/thenoetrevino/sprout/internal/database"
	"github.com/thenoetrevino/sprout/internal/events"
)

// CLI represents the CLI application context
type CLI struct {
	App         *app.App // Application container with services
	eventClient events.EventPublisher
	owned       bool
}

type appKey struct{}

// WithApp returns a context carrying an existing container. Commands run with
// such a context use it instead of opening the configured database.
func WithApp(ctx context.Context, a *app.App) context.Context {
	return context.WithValue(ctx, appKey{}, a)
}

// GetCLIFromContext returns the container injected with WithApp, or a new
// one built from the user's configuration.
func GetCLIFromContext(ctx context.Context) (*CLI, error) {
	if a, ok := ctx.Value(appKey{}).(*app.App); ok && a != nil {
		return &CLI{App: a, eventClient: a.EventClient()}, nil
	}
	return NewCLI(ctx)
}

// NewCLI loads the configuration, opens the database, seeds an empty catalog
// and connects to the daemon when one is running.
func NewCLI(ctx context.Context) (*CLI, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	db, err := database.InitDB(ctx, cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// Daemon is optional: silent fallback to in-process only
	var eventClient events.EventPublisher
	client, err := events.NewClient(cfg.SocketPath, events.WithDebounce(cfg.EventDebounce))
	if err == nil {
		if err := client.Connect(ctx); err == nil {
			eventClient = client
		} else {
			slog.Debug("daemon not available", "error", err)
		}
	}

	application := app.New(db, app.WithConfig(cfg), app.WithEventPublisher(eventClient))
	if _, err := application.SeedIfEmpty(ctx); err != nil {
		c := &CLI{App: application, eventClient: eventClient, owned: true}
		return nil, errors.Join(fmt.Errorf("failed to seed plant catalog: %w", err), c.Close())
	}

	return &CLI{
		App:         application,
		eventClient: eventClient,
		owned:       true,
	}, nil
}

// Close releases what NewCLI opened. Injected containers are left alone.
func (c *CLI) Close() error {
	if !c.owned {
		return nil
	}
	var errs []error
	if c.eventClient != nil {
		errs = append(errs, c.eventClient.Close())
	}
	errs = append(errs, c.App.Close())
	return errors.Join(errs...)
}
