// Reelmatch - Film Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package main

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/reelmatch/internal/api"
	"github.com/tomtom215/reelmatch/internal/cache"
	"github.com/tomtom215/reelmatch/internal/config"
	"github.com/tomtom215/reelmatch/internal/recommend"
)

// initCache builds the response cache. It returns a nil ResponseCache (not a
// typed nil) when caching is disabled. An unreachable Redis is logged and the
// cache runs local-only.
//
//nolint:gocritic // hugeParam: logger passed by value for zerolog chaining
func initCache(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (api.ResponseCache, func() error) {
	noop := func() error { return nil }
	if !cfg.Cache.Enabled {
		logger.Info().Msg("response cache disabled (CACHE_ENABLED=false)")
		return nil, noop
	}

	local := cache.NewLRU[*recommend.Recommendations](cfg.Cache.Capacity, cfg.Cache.TTL)

	var remote *cache.RedisCache
	closeFn := noop
	if cfg.Cache.RedisURL != "" {
		client, err := cache.ConnectRedis(cfg.Cache.RedisURL)
		if err != nil {
			logger.Warn().Err(err).Msg("invalid redis url, continuing with local cache only")
		} else {
			rc := cache.NewRedisCache(client, cfg.Cache.TTL)
			pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
			err := rc.Ping(pingCtx)
			cancel()
			if err != nil {
				// Tiered degrades redis errors to misses, so keep the
				// client; it starts working once redis comes up.
				logger.Warn().Err(err).Msg("redis not reachable at startup")
			}
			remote, closeFn = rc, rc.Close
		}
	}

	logger.Info().
		Int("capacity", cfg.Cache.Capacity).
		Dur("ttl", cfg.Cache.TTL).
		Bool("redis", remote != nil).
		Msg("response cache initialized")

	return cache.NewTiered(local, remote, logger), closeFn
}
