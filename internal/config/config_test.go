// Reelmatch - Film Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package config

import (
	"strings"
	"testing"
	"time"
)

// TestDefaultConfig verifies that defaultConfig() returns proper defaults
func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaultConfig().Validate() error = %v", err)
	}

	if cfg.Server.Port != 8000 {
		t.Errorf("Server.Port = %d, want 8000", cfg.Server.Port)
	}
	if cfg.Recommend.DefaultK != 20 || cfg.Recommend.MaxK != 100 {
		t.Errorf("Recommend k limits = %d/%d, want 20/100", cfg.Recommend.DefaultK, cfg.Recommend.MaxK)
	}
	if cfg.Recommend.HybridAlpha != 0.5 {
		t.Errorf("Recommend.HybridAlpha = %v, want 0.5", cfg.Recommend.HybridAlpha)
	}
	if !cfg.Recommend.RebuildOnStartup {
		t.Error("Recommend.RebuildOnStartup should be true by default")
	}
	if cfg.Catalog.Driver != CatalogDriverBadger {
		t.Errorf("Catalog.Driver = %q, want badger", cfg.Catalog.Driver)
	}
	if cfg.Cache.TTL != 5*time.Minute {
		t.Errorf("Cache.TTL = %v, want 5m", cfg.Cache.TTL)
	}
	if !cfg.AdminAuthDisabled() {
		t.Error("admin auth should be disabled without a secret")
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr []string
	}{
		{
			name:   "defaults",
			modify: func(*Config) {},
		},
		{
			name:    "bad port",
			modify:  func(c *Config) { c.Server.Port = 70000 },
			wantErr: []string{"HTTP_PORT"},
		},
		{
			name:    "bad log level",
			modify:  func(c *Config) { c.Logging.Level = "verbose" },
			wantErr: []string{"LOG_LEVEL"},
		},
		{
			name:    "bad log format",
			modify:  func(c *Config) { c.Logging.Format = "xml" },
			wantErr: []string{"LOG_FORMAT"},
		},
		{
			name:    "default k above max",
			modify:  func(c *Config) { c.Recommend.DefaultK = 200 },
			wantErr: []string{"must not exceed RECS_MAX_K"},
		},
		{
			name:    "alpha out of range",
			modify:  func(c *Config) { c.Recommend.HybridAlpha = 1.5 },
			wantErr: []string{"RECS_HYBRID_ALPHA"},
		},
		{
			name:    "negative rebuild interval",
			modify:  func(c *Config) { c.Recommend.RebuildInterval = -time.Second },
			wantErr: []string{"RECS_REBUILD_INTERVAL"},
		},
		{
			name:    "unknown driver",
			modify:  func(c *Config) { c.Catalog.Driver = "mysql" },
			wantErr: []string{"CATALOG_DRIVER"},
		},
		{
			name:    "postgres without url",
			modify:  func(c *Config) { c.Catalog.Driver = CatalogDriverPostgres },
			wantErr: []string{"DATABASE_URL is required"},
		},
		{
			name: "postgres with bad url",
			modify: func(c *Config) {
				c.Catalog.Driver = CatalogDriverPostgres
				c.Catalog.DatabaseURL = "mysql://x"
			},
			wantErr: []string{"DATABASE_URL must start with"},
		},
		{
			name: "postgres with seed",
			modify: func(c *Config) {
				c.Catalog.Driver = CatalogDriverPostgres
				c.Catalog.DatabaseURL = "postgres://u:p@db/reelmatch"
				c.Catalog.SeedPath = "seed.yaml"
			},
			wantErr: []string{"CATALOG_SEED_PATH"},
		},
		{
			name: "badger in memory without path",
			modify: func(c *Config) {
				c.Catalog.BadgerPath = ""
				c.Catalog.BadgerInMemory = true
			},
		},
		{
			name:    "cache capacity",
			modify:  func(c *Config) { c.Cache.Capacity = 0 },
			wantErr: []string{"CACHE_CAPACITY"},
		},
		{
			name: "cache disabled skips checks",
			modify: func(c *Config) {
				c.Cache.Enabled = false
				c.Cache.Capacity = 0
			},
		},
		{
			name:    "short admin secret",
			modify:  func(c *Config) { c.Security.AdminJWTSecret = "short" },
			wantErr: []string{"ADMIN_JWT_SECRET"},
		},
		{
			name:    "rate limit window",
			modify:  func(c *Config) { c.Security.RateLimitWindow = time.Millisecond },
			wantErr: []string{"RATE_LIMIT_WINDOW"},
		},
		{
			name: "rate limit disabled skips checks",
			modify: func(c *Config) {
				c.Security.RateLimitDisabled = true
				c.Security.RateLimitReqs = 0
			},
		},
		{
			name: "wildcard cors in production with admin auth",
			modify: func(c *Config) {
				c.Server.Environment = "production"
				c.Security.AdminJWTSecret = strings.Repeat("s", 32)
			},
			wantErr: []string{"ALLOWED_ORIGINS"},
		},
		{
			name: "errors are aggregated",
			modify: func(c *Config) {
				c.Server.Port = 0
				c.Logging.Level = "loud"
				c.Cache.TTL = 0
			},
			wantErr: []string{"HTTP_PORT", "LOG_LEVEL", "CACHE_TTL"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()

			if len(tt.wantErr) == 0 {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() error = nil, want %v", tt.wantErr)
			}
			for _, want := range tt.wantErr {
				if !strings.Contains(err.Error(), want) {
					t.Errorf("Validate() error = %q, want containing %q", err, want)
				}
			}
		})
	}
}

func TestConfig_Environment(t *testing.T) {
	tests := []struct {
		env         string
		production  bool
		development bool
	}{
		{"production", true, false},
		{"PROD", true, false},
		{"development", false, true},
		{"", false, true},
		{"staging", false, false},
	}
	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			cfg := &Config{Server: ServerConfig{Environment: tt.env}}
			if cfg.IsProduction() != tt.production {
				t.Errorf("IsProduction() = %v, want %v", cfg.IsProduction(), tt.production)
			}
			if cfg.IsDevelopment() != tt.development {
				t.Errorf("IsDevelopment() = %v, want %v", cfg.IsDevelopment(), tt.development)
			}
		})
	}
}
