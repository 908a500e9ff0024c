// Reelmatch - Film Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

/*
Package cache provides the recommendation response cache.

# Tiers

  - LRU: generic, thread-safe, in-process LRU with lazy TTL expiration.
  - RedisCache: optional shared tier storing JSON-encoded values, so several
    replicas can reuse each other's responses.
  - Tiered: looks up the local LRU, then Redis, and copies remote hits into
    the local tier. Redis errors degrade to misses.

# Keys

Responses are keyed by ResponseKey, which embeds the snapshot generation:

	recs:<generation>:<kind>:<id>:<algorithm>:<k>

A rebuild publishes a new generation, so stale responses are never served
and never mixed with results from another snapshot. Old keys simply age out
through the TTL and LRU eviction.

# Usage

	local := cache.NewLRU[*recommend.Recommendations](10000, 5*time.Minute)
	responses := cache.NewTiered(local, nil, logger)
	key := cache.ResponseKey(snap.Generation(), cache.KindUser, userID, "hybrid", 20)
	if recs, ok := responses.Get(ctx, key); ok {
	    return recs
	}
	recs, err := engine.RecommendForUser(userID, liked, recommend.AlgorithmHybrid, 20)
	if err == nil && recs.Generation == snap.Generation() {
	    responses.Set(ctx, key, recs)
	}
*/
package cache
