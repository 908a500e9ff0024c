// Reelmatch - Film Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

/*
Package config provides centralized configuration management for Reelmatch.

Configuration is layered with Koanf v2: struct defaults, then an optional YAML
file, then environment variables. Only mapped environment variables are read
so unrelated variables never leak into the configuration.

# Config File

The first existing file wins:

  - $CONFIG_PATH
  - ./config.yaml
  - ./reelmatch.yaml
  - /etc/reelmatch/config.yaml

Example:

	server:
	  port: 8000
	  cors_origins: [https://app.example.com]
	recommend:
	  hybrid_alpha: 0.6
	  rebuild_interval: 15m
	catalog:
	  driver: postgres
	  database_url: postgres://reelmatch:secret@db:5432/reelmatch
	cache:
	  redis_url: redis://cache:6379/0

# Environment Variables

Server:
  - HTTP_PORT, HTTP_HOST, SERVER_TIMEOUT, ENVIRONMENT
  - ALLOWED_ORIGINS: Comma-separated CORS origins (default: *)

Logging:
  - LOG_LEVEL, LOG_FORMAT, LOG_CALLER

Recommendations:
  - RECS_DEFAULT_K, RECS_MAX_K, RECS_HYBRID_ALPHA
  - RECS_ITEM_NEIGHBORS, RECS_USER_NEIGHBORS, RECS_OVERVIEW_CHARS
  - RECS_REBUILD_ON_STARTUP, RECS_REBUILD_INTERVAL, RECS_REBUILD_TIMEOUT

Catalog:
  - CATALOG_DRIVER, BADGER_PATH, BADGER_IN_MEMORY, CATALOG_SEED_PATH
  - DATABASE_URL, DATABASE_MAX_CONNS
  - CATALOG_BREAKER_ENABLED, CATALOG_BREAKER_TIMEOUT

Cache:
  - CACHE_ENABLED, CACHE_CAPACITY, CACHE_TTL, REDIS_URL

Security:
  - ADMIN_JWT_SECRET, RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW, DISABLE_RATE_LIMIT

# Validation

Validate checks every section and joins all problems into one error, so a
misconfigured deployment reports everything wrong on its first start.
*/
package config
