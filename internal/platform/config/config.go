// Copyright (c) 2026 Authapp. All rights reserved.

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

// Token store backends.
const (
	TokenStorePostgres = "postgres"
	TokenStoreRedis    = "redis"
)

// # Configuration Schema

// Config holds all runtime configuration for the Authapp API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Relational Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL,required"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// TokenStore selects where issued bearer tokens live: "postgres"
	// (durable, default) or "redis" (volatile, native TTL expiry).
	TokenStore string `env:"TOKEN_STORE" envDefault:"postgres"`

	// Key-Value Store (Redis). Required only when TokenStore is "redis".
	RedisURL string `env:"REDIS_URL"`

	// RevokeOnLogin invalidates all of a user's prior tokens on each login,
	// enforcing a single active session per user. Set to false to allow
	// multi-device sessions.
	RevokeOnLogin bool `env:"REVOKE_ON_LOGIN" envDefault:"true"`

	// SeedDemoUsers creates the demo accounts at startup (development only).
	SeedDemoUsers bool `env:"SEED_DEMO_USERS" envDefault:"false"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {

	// Initialize an empty config struct
	cfg := &Config{}

	// Use the 'env' package to map environment variables to struct fields.
	// This will fail if any field marked with 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if cfg.TokenStore != TokenStorePostgres && cfg.TokenStore != TokenStoreRedis {
		return nil, fmt.Errorf("config: unknown TOKEN_STORE %q", cfg.TokenStore)
	}

	if cfg.TokenStore == TokenStoreRedis && cfg.RedisURL == "" {
		return nil, fmt.Errorf("config: REDIS_URL is required when TOKEN_STORE=redis")
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
