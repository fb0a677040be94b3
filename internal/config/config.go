// Package config loads process configuration from environment variables.
package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"

	"github.com/neomorfeo/tourify/internal/adapter/otel"
)

// Storage drivers accepted by STORAGE_DRIVER.
const (
	DriverSQLite = "sqlite"
	DriverMemory = "memory"
)

// Config is the complete runtime configuration of the tourify server.
type Config struct {
	Port          string `env:"PORT" envDefault:"8080"`
	DatabasePath  string `env:"DATABASE_PATH" envDefault:"tourify.db"`
	StorageDriver string `env:"STORAGE_DRIVER" envDefault:"sqlite"`
	CatalogPath   string `env:"CATALOG_PATH"` // empty means the embedded catalog
	LogLevel      string `env:"LOG_LEVEL" envDefault:"info"`

	Telemetry otel.Config
}

// Load parses the environment into a Config and validates it.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.StorageDriver {
	case DriverSQLite, DriverMemory:
	default:
		return fmt.Errorf("unsupported STORAGE_DRIVER %q (use %q or %q)", c.StorageDriver, DriverSQLite, DriverMemory)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level returns the slog level named by LOG_LEVEL.
func (c Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(c.LogLevel))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid LOG_LEVEL %q: %w", c.LogLevel, err)
	}
	return level, nil
}
