// Copyright (c) 2026 Grimoire. All rights reserved.
// Author: tai.buivan.jp@gmail.com

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
  - DI-Friendly: Passed to core components (DB, Redis, search) via constructors.
  - Zero Hidden State: No global variables are used to store config.
*/
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Search cache backends accepted by SEARCH_CACHE_BACKEND.
const (
	CacheBackendMemory = "memory"
	CacheBackendRedis  = "redis"
)

// # Configuration Schema

// Config holds all runtime configuration for the Grimoire API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Relational Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL,required"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// Key-Value Cache (Redis). Only required by the redis search cache backend.
	RedisURL string `env:"REDIS_URL"`

	// Token verification. Identities are issued upstream; the private key is
	// only read by the operator CLI.
	JWTPubKeyPath  string `env:"JWT_PUBLIC_KEY_PATH,required"`
	JWTPrivKeyPath string `env:"JWT_PRIVATE_KEY_PATH"`

	// Cross-Origin Resource Sharing
	AllowedOriginSuffix string `env:"ALLOWED_ORIGIN_SUFFIX" envDefault:"grimoire.app"`

	// Unified search
	CatalogBaseURL     string        `env:"CATALOG_BASE_URL"     envDefault:"http://localhost:8080/api/v1/export"`
	ProviderTimeout    time.Duration `env:"PROVIDER_TIMEOUT"     envDefault:"10s"`
	SearchCacheTTL     time.Duration `env:"SEARCH_CACHE_TTL"     envDefault:"5m"`
	SearchCacheBackend string        `env:"SEARCH_CACHE_BACKEND" envDefault:"memory"`
	SearchDefaultLimit int           `env:"SEARCH_DEFAULT_LIMIT" envDefault:"20"`

	// MentionMarker is the attribute signature of a resolved mention in rich text.
	MentionMarker string `env:"MENTION_MARKER" envDefault:"data-type=\"mention\""`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {

	// Initialize an empty config struct
	cfg := &Config{}

	// This will fail if any field marked with 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	return cfg, nil
}

// validate checks rules that span more than one field.
func (c *Config) validate() error {
	switch c.SearchCacheBackend {
	case CacheBackendMemory:
	case CacheBackendRedis:
		if c.RedisURL == "" {
			return fmt.Errorf("SEARCH_CACHE_BACKEND=%s requires REDIS_URL", CacheBackendRedis)
		}
	default:
		return fmt.Errorf("unknown SEARCH_CACHE_BACKEND %q", c.SearchCacheBackend)
	}

	if c.SearchCacheTTL <= 0 {
		return fmt.Errorf("SEARCH_CACHE_TTL must be positive")
	}

	if c.SearchDefaultLimit < 1 {
		return fmt.Errorf("SEARCH_DEFAULT_LIMIT must be at least 1")
	}

	if c.MentionMarker == "" {
		return fmt.Errorf("MENTION_MARKER must not be empty")
	}

	return nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// OriginSuffix returns the domain suffix accepted by the CORS middleware.
func (c *Config) OriginSuffix() string {
	return c.AllowedOriginSuffix
}
