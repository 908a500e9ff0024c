// Reelmatch - Film Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths are tried in order when CONFIG_PATH is unset or missing.
var DefaultConfigPaths = []string{
	"config.yaml",
	"reelmatch.yaml",
	"/etc/reelmatch/config.yaml",
}

// ConfigPathEnvVar names an explicit config file.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig is the lowest configuration layer.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:        8000,
			Host:        "0.0.0.0",
			Timeout:     30 * time.Second,
			Environment: "development",
			CORSOrigins: []string{"*"},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
		Recommend: RecommendConfig{
			DefaultK:         20,
			MaxK:             100,
			HybridAlpha:      0.5,
			ItemNeighbors:    200,
			UserNeighbors:    50,
			OverviewChars:    200,
			RebuildOnStartup: true,
			RebuildInterval:  0,
			RebuildTimeout:   2 * time.Minute,
		},
		Catalog: CatalogConfig{
			Driver:     CatalogDriverBadger,
			BadgerPath: "/data/catalog",
			MaxConns:   10,
			Breaker: BreakerConfig{
				Enabled:      true,
				MaxRequests:  3,
				Interval:     time.Minute,
				Timeout:      30 * time.Second,
				MinRequests:  5,
				FailureRatio: 0.6,
			},
		},
		Cache: CacheConfig{
			Enabled:  true,
			Capacity: 10000,
			TTL:      5 * time.Minute,
		},
		Security: SecurityConfig{
			RateLimitReqs:   100,
			RateLimitWindow: time.Minute,
		},
	}
}

type configLayer struct {
	name     string
	provider koanf.Provider
	parser   koanf.Parser
}

// LoadWithKoanf merges struct defaults, an optional YAML file and mapped
// environment variables, later layers winning, then validates the result.
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	layers := []configLayer{{name: "defaults", provider: structs.Provider(defaultConfig(), "koanf")}}
	if path := locateConfigFile(); path != "" {
		layers = append(layers, configLayer{name: "file " + path, provider: file.Provider(path), parser: yaml.Parser()})
	}
	layers = append(layers, configLayer{name: "environment", provider: env.Provider("", ".", envTransformFunc)})

	for _, layer := range layers {
		if err := k.Load(layer.provider, layer.parser); err != nil {
			return nil, fmt.Errorf("load %s: %w", layer.name, err)
		}
	}

	for _, path := range listPaths {
		if err := splitList(k, path); err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("decode configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// locateConfigFile prefers CONFIG_PATH, then DefaultConfigPaths. It returns
// "" when no candidate exists.
func locateConfigFile() string {
	candidates := DefaultConfigPaths
	if explicit := os.Getenv(ConfigPathEnvVar); explicit != "" {
		candidates = append([]string{explicit}, candidates...)
	}
	for _, candidate := range candidates {
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate
		}
	}
	return ""
}

// listPaths hold []string values that arrive from the environment as
// comma-separated text.
var listPaths = []string{
	"server.cors_origins",
}

func splitList(k *koanf.Koanf, path string) error {
	raw, ok := k.Get(path).(string)
	if !ok || raw == "" {
		return nil
	}

	var items []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		return nil
	}
	if err := k.Set(path, items); err != nil {
		return fmt.Errorf("set %s: %w", path, err)
	}
	return nil
}

// envMappings maps environment variable names (lowercased) to koanf paths.
var envMappings = map[string]string{
	// Server
	"http_port":       "server.port",
	"http_host":       "server.host",
	"server_timeout":  "server.timeout",
	"environment":     "server.environment",
	"allowed_origins": "server.cors_origins",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",

	// Recommendation engine
	"recs_default_k":          "recommend.default_k",
	"recs_max_k":              "recommend.max_k",
	"recs_hybrid_alpha":       "recommend.hybrid_alpha",
	"recs_item_neighbors":     "recommend.item_neighbors",
	"recs_user_neighbors":     "recommend.user_neighbors",
	"recs_overview_chars":     "recommend.overview_chars",
	"recs_rebuild_on_startup": "recommend.rebuild_on_startup",
	"recs_rebuild_interval":   "recommend.rebuild_interval",
	"recs_rebuild_timeout":    "recommend.rebuild_timeout",

	// Catalog
	"catalog_driver":          "catalog.driver",
	"badger_path":             "catalog.badger_path",
	"badger_in_memory":        "catalog.badger_in_memory",
	"catalog_seed_path":       "catalog.seed_path",
	"database_url":            "catalog.database_url",
	"database_max_conns":      "catalog.max_conns",
	"catalog_breaker_enabled": "catalog.breaker.enabled",
	"catalog_breaker_timeout": "catalog.breaker.timeout",

	// Cache
	"cache_enabled":  "cache.enabled",
	"cache_capacity": "cache.capacity",
	"cache_ttl":      "cache.ttl",
	"redis_url":      "cache.redis_url",

	// Security
	"admin_jwt_secret":    "security.admin_jwt_secret",
	"rate_limit_requests": "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",
}

// envTransformFunc maps HTTP_PORT to server.port and so on. Unmapped
// variables return "" so koanf ignores them.
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
