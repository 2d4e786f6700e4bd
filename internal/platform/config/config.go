// Copyright (c) 2026 Cinelog. All rights reserved.
// Author: m.kuznetsov.dev@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (DB, Redis) via constructors.
  - Zero Hidden State: No global variables are used to store config.

This ensures the application is Twelve-Factor compliant by storing config in the env.
*/
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Storage backend identifiers for [Config.StorageBackend].
const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
)

// # Configuration Schema

// Config holds all runtime configuration for the Cinelog API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// StorageBackend selects the persistence profile: "memory" or "postgres".
	StorageBackend string `env:"STORAGE_BACKEND" envDefault:"memory"`

	// Relational Database (PostgreSQL) — required for the postgres profile.
	DatabaseURL string `env:"DATABASE_URL"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// Key-Value store (Redis) — optional; enables the distributed rate
	// limiter when set. Without it the limiter falls back to per-process
	// token buckets.
	RedisURL string `env:"REDIS_URL"`

	// StrictClassification enables the strict profile: films must carry an
	// MPA classification on create.
	StrictClassification bool `env:"STRICT_CLASSIFICATION" envDefault:"false"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {

	// Initialize an empty config struct
	cfg := &Config{}

	// Use the 'env' package to map environment variables to struct fields.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	// Cross-field checks that tags cannot express.
	switch cfg.StorageBackend {
	case BackendMemory:
	case BackendPostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("config: DATABASE_URL is required for the postgres backend")
		}
	default:
		return nil, fmt.Errorf("config: unknown STORAGE_BACKEND %q", cfg.StorageBackend)
	}

	return cfg, nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
