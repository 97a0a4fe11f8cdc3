// Package launcher starts the interactive TUI.
package launcher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/thenoetrevino/sprout/internal/app"
	"github.com/thenoetrevino/sprout/internal/config"
	"github.com/thenoetrevino/sprout/internal/database"
	"github.com/thenoetrevino/sprout/internal/events"
	"github.com/thenoetrevino/sprout/internal/logging"
	"github.com/thenoetrevino/sprout/internal/tui"
	"golang.org/x/sync/errgroup"
)

// Launch starts the TUI and blocks until it exits or ctx is cancelled.
func Launch(ctx context.Context) error {
	dataDir, err := config.DataDir()
	if err != nil {
		return fmt.Errorf("failed to resolve data directory: %w", err)
	}
	closeLog, err := logging.Init(dataDir)
	if err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	defer func() {
		if err := closeLog(); err != nil {
			slog.Error("error closing log file", "error", err)
		}
	}()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	eventClient := connectDaemon(ctx, cfg)
	defer func() {
		if eventClient != nil {
			if err := eventClient.Close(); err != nil {
				slog.Error("error closing event client", "error", err)
			}
		}
	}()

	db, err := database.InitDB(ctx, cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	opts := []app.Option{app.WithConfig(cfg), app.WithLogger(slog.Default())}
	if eventClient != nil {
		opts = append(opts, app.WithEventPublisher(eventClient))
	}
	application := app.New(db, opts...)
	defer func() {
		if err := application.Close(); err != nil {
			slog.Error("error closing database", "error", err)
		}
	}()

	if n, err := application.SeedIfEmpty(ctx); err != nil {
		return fmt.Errorf("failed to seed plant catalog: %w", err)
	} else if n > 0 {
		slog.Info("seeded plant catalog", "plants", n)
	}

	model := tui.New(application, cfg)
	defer model.Close()

	return run(ctx, application, model)
}

// run drives the program alongside the daemon listener. Whichever finishes
// first stops the other.
func run(ctx context.Context, application *app.App, model *tui.Model) error {
	g, gctx := errgroup.WithContext(ctx)
	listenCtx, stopListening := context.WithCancel(gctx)

	g.Go(func() error {
		if err := application.ListenForChanges(listenCtx); err != nil {
			slog.Warn("stopped listening for remote changes", "error", err)
		}
		return nil
	})

	g.Go(func() error {
		defer stopListening()
		p := tea.NewProgram(model, tea.WithContext(ctx))
		if _, err := p.Run(); err != nil {
			if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
				slog.Info("shutdown signal received, cleaning up")
				return nil
			}
			return fmt.Errorf("error running program: %w", err)
		}
		return nil
	})

	err := g.Wait()
	model.Close()

	// Let in-flight writes settle before the database closes
	time.Sleep(100 * time.Millisecond)
	return err
}

// connectDaemon returns a connected client, or nil when no daemon is running.
func connectDaemon(ctx context.Context, cfg *config.Config) *events.Client {
	client, err := events.NewClient(cfg.SocketPath, events.WithDebounce(cfg.EventDebounce))
	if err != nil {
		daemonErr := events.ClassifyDaemonError(err)
		slog.Warn("failed to create daemon client", "message", daemonErr.Message, "hint", daemonErr.Hint)
		slog.Info("continuing without live updates")
		return nil
	}
	if err := client.Connect(ctx); err != nil {
		daemonErr := events.ClassifyDaemonError(err)
		slog.Warn("failed to connect to daemon", "message", daemonErr.Message, "hint", daemonErr.Hint)
		slog.Info("continuing without live updates")
		return nil
	}
	return client
}
