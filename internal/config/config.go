// Reelmatch - Film Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package config

import (
	"time"
)

// Config holds all application configuration loaded from defaults, an
// optional YAML file and environment variables.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: Built-in sensible defaults for all settings
//  2. Config File: Optional YAML config file (config.yaml) for persistent settings
//  3. Environment Variables: Override any mapped setting
//
// Example:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal("Failed to load config:", err)
//	}
//	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
//
// Config is immutable after Load() and safe for concurrent read access.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Logging   LoggingConfig   `koanf:"logging"`
	Recommend RecommendConfig `koanf:"recommend"`
	Catalog   CatalogConfig   `koanf:"catalog"`
	Cache     CacheConfig     `koanf:"cache"`
	Security  SecurityConfig  `koanf:"security"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port        int           `koanf:"port"`
	Host        string        `koanf:"host"`
	Timeout     time.Duration `koanf:"timeout"`
	Environment string        `koanf:"environment"` // "development", "staging", "production"
	CORSOrigins []string      `koanf:"cors_origins"`
}

// LoggingConfig holds logging settings for zerolog.
//
// Environment Variables:
//   - LOG_LEVEL: trace, debug, info, warn, error (default: info)
//   - LOG_FORMAT: json, console (default: json)
//   - LOG_CALLER: true/false - include caller file:line (default: false)
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	Level string `koanf:"level"`

	// Format is the output format: json or console.
	// JSON is recommended for production (structured, machine-parseable).
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	Caller bool `koanf:"caller"`
}

// RecommendConfig holds recommendation engine and rebuild settings.
//
// Environment Variables:
//   - RECS_DEFAULT_K: Results returned when k is omitted (default: 20)
//   - RECS_MAX_K: Upper bound for k (default: 100)
//   - RECS_HYBRID_ALPHA: Content weight of the hybrid blend (default: 0.5)
//   - RECS_ITEM_NEIGHBORS: Neighbors read per liked film in item CF (default: 200)
//   - RECS_USER_NEIGHBORS: Neighbors read per user in user CF (default: 50)
//   - RECS_OVERVIEW_CHARS: Overview prefix used for text features (default: 200)
//   - RECS_REBUILD_ON_STARTUP: Build a snapshot at boot (default: true)
//   - RECS_REBUILD_INTERVAL: Periodic rebuild interval, 0 disables (default: 0)
//   - RECS_REBUILD_TIMEOUT: Upper bound for a single rebuild (default: 2m)
type RecommendConfig struct {
	DefaultK         int           `koanf:"default_k"`
	MaxK             int           `koanf:"max_k"`
	HybridAlpha      float64       `koanf:"hybrid_alpha"`
	ItemNeighbors    int           `koanf:"item_neighbors"`
	UserNeighbors    int           `koanf:"user_neighbors"`
	OverviewChars    int           `koanf:"overview_chars"`
	RebuildOnStartup bool          `koanf:"rebuild_on_startup"`
	RebuildInterval  time.Duration `koanf:"rebuild_interval"`
	RebuildTimeout   time.Duration `koanf:"rebuild_timeout"`
}

// Catalog drivers.
const (
	CatalogDriverBadger   = "badger"
	CatalogDriverPostgres = "postgres"
)

// CatalogConfig selects and configures the data source snapshots are built
// from.
//
// Environment Variables:
//   - CATALOG_DRIVER: badger or postgres (default: badger)
//   - BADGER_PATH: BadgerDB directory (default: /data/catalog)
//   - BADGER_IN_MEMORY: Keep the catalog in memory only (default: false)
//   - CATALOG_SEED_PATH: YAML/JSON seed imported at startup (badger only)
//   - DATABASE_URL: Postgres connection URL (required for postgres)
//   - DATABASE_MAX_CONNS: Connection pool size (default: 10)
//   - CATALOG_BREAKER_ENABLED: Wrap the source in a circuit breaker (default: true)
type CatalogConfig struct {
	Driver         string        `koanf:"driver"`
	BadgerPath     string        `koanf:"badger_path"`
	BadgerInMemory bool          `koanf:"badger_in_memory"`
	SeedPath       string        `koanf:"seed_path"`
	DatabaseURL    string        `koanf:"database_url"`
	MaxConns       int32         `koanf:"max_conns"`
	Breaker        BreakerConfig `koanf:"breaker"`
}

// BreakerConfig holds circuit breaker settings for the catalog source.
type BreakerConfig struct {
	Enabled      bool          `koanf:"enabled"`
	MaxRequests  uint32        `koanf:"max_requests"`
	Interval     time.Duration `koanf:"interval"`
	Timeout      time.Duration `koanf:"timeout"`
	MinRequests  uint32        `koanf:"min_requests"`
	FailureRatio float64       `koanf:"failure_ratio"`
}

// CacheConfig holds response cache settings.
//
// Environment Variables:
//   - CACHE_ENABLED: Enable the response cache (default: true)
//   - CACHE_CAPACITY: Local LRU capacity in responses (default: 10000)
//   - CACHE_TTL: Response time-to-live (default: 5m)
//   - REDIS_URL: Optional shared Redis tier (redis://host:6379/0 or host:port)
type CacheConfig struct {
	Enabled  bool          `koanf:"enabled"`
	Capacity int           `koanf:"capacity"`
	TTL      time.Duration `koanf:"ttl"`
	RedisURL string        `koanf:"redis_url"`
}

// SecurityConfig holds admin authentication and rate limiting settings.
//
// Environment Variables:
//   - ADMIN_JWT_SECRET: HS256 secret for admin tokens; empty leaves admin routes open
//   - RATE_LIMIT_REQUESTS: Requests per window per client IP (default: 100)
//   - RATE_LIMIT_WINDOW: Rate limit window (default: 1m)
//   - DISABLE_RATE_LIMIT: Turn rate limiting off (default: false)
type SecurityConfig struct {
	AdminJWTSecret    string        `koanf:"admin_jwt_secret"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// Load reads configuration using the layered Koanf loader.
//
// See LoadWithKoanf() for the underlying implementation.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
