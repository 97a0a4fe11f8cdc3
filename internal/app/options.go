package app

import (
	"log/slog"

	"github.com/thenoetrevino/sprout/internal/config"
	"github.com/thenoetrevino/sprout/internal/events"
	"github.com/thenoetrevino/sprout/internal/unsplash"
)

// Option is a functional option for configuring App initialization
type Option func(*appConfig)

// appConfig holds the configuration for App initialization
type appConfig struct {
	eventClient events.EventPublisher
	logger      *slog.Logger
	config      *config.Config
	unsplash    *unsplash.Client
}

// WithEventPublisher sets the event publisher for the application
func WithEventPublisher(ec events.EventPublisher) Option {
	return func(cfg *appConfig) {
		cfg.eventClient = ec
	}
}

// WithLogger sets the logger for the application
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *appConfig) {
		cfg.logger = logger
	}
}

// WithConfig sets the loaded configuration. Without it the app runs with an
// empty config (no seed file, default grace period, no image search key).
func WithConfig(c *config.Config) Option {
	return func(cfg *appConfig) {
		cfg.config = c
	}
}

// WithUnsplash overrides the image search client built from the config.
func WithUnsplash(client *unsplash.Client) Option {
	return func(cfg *appConfig) {
		cfg.unsplash = client
	}
}
