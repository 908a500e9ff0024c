// Reelmatch - Film Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

/*
Package main is the entry point for the Reelmatch recommendation server.

Reelmatch serves film recommendations from an in-memory snapshot built over a
film catalog and the users' likes: content similarity (TF-IDF), item-item and
user-user collaborative filtering, and a hybrid blend of the two.

# Application Architecture

	RootSupervisor ("reelmatch")
	├── DataSupervisor ("data-layer")
	│   └── RebuildService (startup and scheduled snapshot rebuilds)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService (chi router)

Initialization order:

 1. Configuration: Koanf v2 (defaults, config.yaml, environment)
 2. Logging: zerolog, JSON or console
 3. Catalog: BadgerDB with an optional seed import, or PostgreSQL via gorm,
    wrapped in a gobreaker circuit breaker
 4. Engine and rebuilder
 5. Response cache: local LRU with an optional Redis tier
 6. Admin JWT verifier (when ADMIN_JWT_SECRET is set)
 7. Router and supervisor tree

# Configuration

Common environment variables:

	HTTP_PORT=8000
	CATALOG_DRIVER=badger           # or postgres
	BADGER_PATH=/data/catalog
	CATALOG_SEED_PATH=/data/seed.yaml
	DATABASE_URL=postgres://...     # with CATALOG_DRIVER=postgres
	REDIS_URL=redis://cache:6379/0
	ADMIN_JWT_SECRET=...            # 32+ characters
	RECS_REBUILD_INTERVAL=15m

See package config for the full list.

# Example Usage

Local development with an in-memory catalog:

	export BADGER_IN_MEMORY=true
	export CATALOG_SEED_PATH=./seed.yaml
	export LOG_FORMAT=console
	./reelmatch

	curl 'localhost:8000/recommendations/user/alice?algorithm=hybrid&k=10'
	curl 'localhost:8000/recommendations/similar/603?algorithm=content'

# Signal Handling

SIGINT and SIGTERM cancel the root context. The HTTP server drains for up to
10s, the rebuild loop stops, and then the catalog and cache are closed.
*/
package main
