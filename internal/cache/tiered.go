// Reelmatch - Film Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package cache

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/tomtom215/reelmatch/internal/metrics"
)

// Tier names used in metrics.
const (
	TierLocal = "local"
	TierRedis = "redis"
)

// Tiered looks values up in a process-local LRU first and then in Redis.
// Redis is optional; with no remote tier it behaves as a plain LRU. Redis
// failures degrade to a miss and are logged, never returned.
type Tiered[V any] struct {
	local  *LRU[V]
	remote *RedisCache
	logger zerolog.Logger
}

// NewTiered creates a tiered cache. remote may be nil.
func NewTiered[V any](local *LRU[V], remote *RedisCache, logger zerolog.Logger) *Tiered[V] {
	return &Tiered[V]{
		local:  local,
		remote: remote,
		logger: logger.With().Str("component", "cache").Logger(),
	}
}

// Get returns the cached value for key. A remote hit is copied into the
// local tier.
func (t *Tiered[V]) Get(ctx context.Context, key string) (V, bool) {
	if v, ok := t.local.Get(key); ok {
		metrics.RecordCacheLookup(TierLocal, true)
		return v, true
	}
	metrics.RecordCacheLookup(TierLocal, false)

	var zero V
	if t.remote == nil {
		return zero, false
	}

	var v V
	found, err := t.remote.Get(ctx, key, &v)
	if err != nil {
		t.logger.Warn().Err(err).Str("key", key).Msg("remote cache get failed")
		metrics.RecordCacheLookup(TierRedis, false)
		return zero, false
	}
	metrics.RecordCacheLookup(TierRedis, found)
	if !found {
		return zero, false
	}
	t.local.Add(key, v)
	return v, true
}

// Set stores value in every tier.
func (t *Tiered[V]) Set(ctx context.Context, key string, value V) {
	t.local.Add(key, value)
	if t.remote == nil {
		return
	}
	if err := t.remote.Set(ctx, key, value); err != nil {
		t.logger.Warn().Err(err).Str("key", key).Msg("remote cache set failed")
	}
}

// Local exposes the local tier for stats.
func (t *Tiered[V]) Local() *LRU[V] {
	return t.local
}
