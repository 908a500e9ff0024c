// Reelmatch - Film Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package api

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/reelmatch/internal/cache"
	"github.com/tomtom215/reelmatch/internal/logging"
	"github.com/tomtom215/reelmatch/internal/recommend"
)

// Catalog is the part of catalog.Source the handlers read per request.
type Catalog interface {
	UserLikes(ctx context.Context, userID string) ([]string, error)
	FilmIDByTMDBID(ctx context.Context, tmdbID int) (string, error)
}

// Rebuilder rebuilds the engine snapshot from the catalog.
type Rebuilder interface {
	Rebuild(ctx context.Context) (recommend.RebuildResult, error)
}

// ResponseCache stores recommendation responses by key.
type ResponseCache interface {
	Get(ctx context.Context, key string) (*recommend.Recommendations, bool)
	Set(ctx context.Context, key string, value *recommend.Recommendations)
}

// Handler serves the recommendation API.
type Handler struct {
	engine    *recommend.Engine
	catalog   Catalog
	rebuilder Rebuilder
	cache     ResponseCache
	audit     *logging.AuditLogger

	rebuildTimeout time.Duration
}

// HandlerDeps groups the Handler's collaborators. Cache is optional.
type HandlerDeps struct {
	Engine    *recommend.Engine
	Catalog   Catalog
	Rebuilder Rebuilder
	Cache     ResponseCache
	Logger    zerolog.Logger

	// RebuildTimeout bounds POST /admin/rebuild. Default: 2m.
	RebuildTimeout time.Duration
}

// NewHandler creates a Handler.
//
//nolint:gocritic // deps passed by value at construction only
func NewHandler(deps HandlerDeps) *Handler {
	if deps.RebuildTimeout <= 0 {
		deps.RebuildTimeout = 2 * time.Minute
	}
	return &Handler{
		engine:    deps.Engine,
		catalog:   deps.Catalog,
		rebuilder: deps.Rebuilder,
		cache:     deps.Cache,
		audit:     logging.NewAuditLogger(deps.Logger),

		rebuildTimeout: deps.RebuildTimeout,
	}
}

// compile-time check: the tiered cache is a ResponseCache
var _ ResponseCache = (*cache.Tiered[*recommend.Recommendations])(nil)
