// Package config loads sprout's YAML configuration, .env files and
// environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultGracePeriod   = 5 * time.Second
	DefaultEventDebounce = 100 * time.Millisecond
	DefaultGrowZone      = 9
)

// Config represents the application configuration
type Config struct {
	DatabasePath            string        `yaml:"database_path" validate:"required"`
	SocketPath              string        `yaml:"socket_path" validate:"required"`
	SeedFile                string        `yaml:"seed_file,omitempty"`
	GrowZone                int           `yaml:"grow_zone" validate:"gte=0,lte=13"` // catalog filter zone
	SubscriptionGracePeriod time.Duration `yaml:"subscription_grace_period" validate:"gte=0"`
	EventDebounce           time.Duration `yaml:"event_debounce" validate:"gte=0"`
	KeyMappings             KeyMappings   `yaml:"key_mappings"`
	ColorScheme             ColorScheme   `yaml:"theme"`

	// UnsplashAccessKey only comes from the environment
	UnsplashAccessKey string `yaml:"-"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Load loads .env files, then the config from the user's config directory,
// then environment overrides. A missing config file yields the defaults.
func Load() (*Config, error) {
	loadDotEnv()

	configPath, err := getConfigPath()
	if err != nil {
		return finish(&Config{})
	}
	return LoadFile(configPath)
}

// LoadFile loads the config at path. A missing file yields the defaults.
func LoadFile(path string) (*Config, error) {
	var config Config

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("failed to read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}

	return finish(&config)
}

func finish(config *Config) (*Config, error) {
	loadThemeFile(config)
	applyEnv(config)
	if err := config.applyDefaults(); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks field constraints and key binding conflicts.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return c.KeyMappings.checkConflicts()
}

// Save saves the config to the user's config directory
func (c *Config) Save() error {
	configPath, err := getConfigPath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0o644)
}

// loadDotEnv reads ./.env and <data dir>/.env. Variables already set in the
// environment win.
func loadDotEnv() {
	candidates := []string{".env"}
	if dir, err := DataDir(); err == nil {
		candidates = append(candidates, filepath.Join(dir, ".env"))
	}
	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
		}
	}
}

func applyEnv(c *Config) {
	if v := os.Getenv("SPROUT_DB_PATH"); v != "" {
		c.DatabasePath = v
	}
	if v := os.Getenv("SPROUT_SOCKET_PATH"); v != "" {
		c.SocketPath = v
	}
	if v := os.Getenv("SPROUT_SEED_FILE"); v != "" {
		c.SeedFile = v
	}
	c.UnsplashAccessKey = os.Getenv("SPROUT_UNSPLASH_ACCESS_KEY")
}

// loadThemeFile merges the theme from SPROUT_THEME_FILE when set
func loadThemeFile(config *Config) {
	themeFile := os.Getenv("SPROUT_THEME_FILE")
	if themeFile == "" {
		return
	}

	themeData, err := os.ReadFile(themeFile)
	if err != nil {
		return
	}

	var themeConfig struct {
		Theme ColorScheme `yaml:"theme"`
	}
	if yaml.Unmarshal(themeData, &themeConfig) == nil {
		config.ColorScheme.MergeFrom(themeConfig.Theme)
	}
}

// applyDefaults fills in missing configuration with defaults
func (c *Config) applyDefaults() error {
	if c.DatabasePath == "" {
		p, err := DefaultDatabasePath()
		if err != nil {
			return fmt.Errorf("failed to resolve database path: %w", err)
		}
		c.DatabasePath = p
	}
	if c.SocketPath == "" {
		p, err := DefaultSocketPath()
		if err != nil {
			return fmt.Errorf("failed to resolve socket path: %w", err)
		}
		c.SocketPath = p
	}
	if c.SubscriptionGracePeriod == 0 {
		c.SubscriptionGracePeriod = DefaultGracePeriod
	}
	if c.EventDebounce == 0 {
		c.EventDebounce = DefaultEventDebounce
	}
	if c.GrowZone == 0 {
		c.GrowZone = DefaultGrowZone
	}
	c.KeyMappings.applyDefaults()
	c.ColorScheme.ApplyDefaults()
	return nil
}
