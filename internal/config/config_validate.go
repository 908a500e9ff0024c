// Reelmatch - Film Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Validate checks every section and reports all problems at once.
func (c *Config) Validate() error {
	return errors.Join(
		c.validateServer(),
		c.validateLogging(),
		c.validateRecommend(),
		c.validateCatalog(),
		c.validateCache(),
		c.validateSecurity(),
	)
}

// validateServer validates server configuration
func (c *Config) validateServer() error {
	var errs []error
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("HTTP_PORT must be between 1 and 65535"))
	}
	if c.Server.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("SERVER_TIMEOUT must be positive"))
	}
	// Wildcard CORS + admin authentication lets any site drive admin calls
	// from a logged-in browser.
	if c.hasWildcardCORS() && c.IsProduction() && c.Security.AdminJWTSecret != "" {
		errs = append(errs, fmt.Errorf("ALLOWED_ORIGINS=* (wildcard) is not allowed in production with admin authentication enabled; "+
			"set specific origins such as ALLOWED_ORIGINS=https://app.example.com"))
	}
	return errors.Join(errs...)
}

// hasWildcardCORS checks if CORS is configured with wildcard origins
func (c *Config) hasWildcardCORS() bool {
	for _, origin := range c.Server.CORSOrigins {
		if origin == "*" {
			return true
		}
	}
	return false
}

// validLogLevels defines the allowed log levels
var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// validLogFormats defines the allowed log formats
var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

// validateLogging validates logging configuration
func (c *Config) validateLogging() error {
	var errs []error
	if !validLogLevels[c.Logging.Level] {
		errs = append(errs, fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error"))
	}
	if c.Logging.Format != "" && !validLogFormats[c.Logging.Format] {
		errs = append(errs, fmt.Errorf("LOG_FORMAT must be one of: json, console"))
	}
	return errors.Join(errs...)
}

// validateRecommend validates engine limits and rebuild scheduling
func (c *Config) validateRecommend() error {
	r := c.Recommend
	var errs []error
	if r.DefaultK < 1 {
		errs = append(errs, fmt.Errorf("RECS_DEFAULT_K must be positive"))
	}
	if r.MaxK < 1 {
		errs = append(errs, fmt.Errorf("RECS_MAX_K must be positive"))
	}
	if r.DefaultK > r.MaxK {
		errs = append(errs, fmt.Errorf("RECS_DEFAULT_K (%d) must not exceed RECS_MAX_K (%d)", r.DefaultK, r.MaxK))
	}
	if r.HybridAlpha < 0 || r.HybridAlpha > 1 {
		errs = append(errs, fmt.Errorf("RECS_HYBRID_ALPHA must be between 0 and 1"))
	}
	if r.ItemNeighbors < 1 || r.UserNeighbors < 1 {
		errs = append(errs, fmt.Errorf("RECS_ITEM_NEIGHBORS and RECS_USER_NEIGHBORS must be positive"))
	}
	if r.OverviewChars < 0 {
		errs = append(errs, fmt.Errorf("RECS_OVERVIEW_CHARS must not be negative"))
	}
	if r.RebuildInterval < 0 {
		errs = append(errs, fmt.Errorf("RECS_REBUILD_INTERVAL must not be negative"))
	}
	if r.RebuildTimeout <= 0 {
		errs = append(errs, fmt.Errorf("RECS_REBUILD_TIMEOUT must be positive"))
	}
	return errors.Join(errs...)
}

// validateCatalog validates the selected catalog driver
func (c *Config) validateCatalog() error {
	cat := c.Catalog
	var errs []error
	switch cat.Driver {
	case CatalogDriverBadger:
		if cat.BadgerPath == "" && !cat.BadgerInMemory {
			errs = append(errs, fmt.Errorf("BADGER_PATH is required unless BADGER_IN_MEMORY=true"))
		}
	case CatalogDriverPostgres:
		if cat.DatabaseURL == "" {
			errs = append(errs, fmt.Errorf("DATABASE_URL is required when CATALOG_DRIVER=postgres"))
		} else if !strings.HasPrefix(cat.DatabaseURL, "postgres://") && !strings.HasPrefix(cat.DatabaseURL, "postgresql://") {
			errs = append(errs, fmt.Errorf("DATABASE_URL must start with postgres:// or postgresql://"))
		}
		if cat.SeedPath != "" {
			errs = append(errs, fmt.Errorf("CATALOG_SEED_PATH is only supported with CATALOG_DRIVER=badger"))
		}
	default:
		errs = append(errs, fmt.Errorf("CATALOG_DRIVER must be one of: badger, postgres"))
	}
	if cat.MaxConns < 0 {
		errs = append(errs, fmt.Errorf("DATABASE_MAX_CONNS must not be negative"))
	}
	if cat.Breaker.Enabled {
		if cat.Breaker.Timeout <= 0 {
			errs = append(errs, fmt.Errorf("catalog.breaker.timeout must be positive"))
		}
		if cat.Breaker.FailureRatio <= 0 || cat.Breaker.FailureRatio > 1 {
			errs = append(errs, fmt.Errorf("catalog.breaker.failure_ratio must be in (0, 1]"))
		}
	}
	return errors.Join(errs...)
}

// validateCache validates response cache settings
func (c *Config) validateCache() error {
	if !c.Cache.Enabled {
		return nil
	}
	var errs []error
	if c.Cache.Capacity < 1 {
		errs = append(errs, fmt.Errorf("CACHE_CAPACITY must be positive"))
	}
	if c.Cache.TTL <= 0 {
		errs = append(errs, fmt.Errorf("CACHE_TTL must be positive"))
	}
	return errors.Join(errs...)
}

// Rate limit and secret bounds
const (
	minRateLimitRequests = 1
	maxRateLimitRequests = 100000
	minRateLimitWindow   = time.Second
	maxRateLimitWindow   = time.Hour
	minAdminSecretLength = 32
)

// validateSecurity validates admin authentication and rate limiting
func (c *Config) validateSecurity() error {
	s := c.Security
	var errs []error
	if s.AdminJWTSecret != "" && len(s.AdminJWTSecret) < minAdminSecretLength {
		errs = append(errs, fmt.Errorf("ADMIN_JWT_SECRET must be at least %d characters", minAdminSecretLength))
	}
	if !s.RateLimitDisabled {
		if s.RateLimitReqs < minRateLimitRequests || s.RateLimitReqs > maxRateLimitRequests {
			errs = append(errs, fmt.Errorf("RATE_LIMIT_REQUESTS must be between %d and %d", minRateLimitRequests, maxRateLimitRequests))
		}
		if s.RateLimitWindow < minRateLimitWindow || s.RateLimitWindow > maxRateLimitWindow {
			errs = append(errs, fmt.Errorf("RATE_LIMIT_WINDOW must be between %v and %v", minRateLimitWindow, maxRateLimitWindow))
		}
	}
	return errors.Join(errs...)
}

// AdminAuthDisabled reports whether admin routes run without authentication.
// Callers log a warning at startup when it returns true.
func (c *Config) AdminAuthDisabled() bool {
	return c.Security.AdminJWTSecret == ""
}

// IsProduction returns true if the application is running in production mode.
func (c *Config) IsProduction() bool {
	env := strings.ToLower(c.Server.Environment)
	return env == "production" || env == "prod"
}

// IsDevelopment returns true if the application is running in development mode.
func (c *Config) IsDevelopment() bool {
	env := strings.ToLower(c.Server.Environment)
	return env == "" || env == "development" || env == "dev"
}
