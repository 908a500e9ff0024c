// Reelmatch - Film Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

/*
Package metrics provides Prometheus metrics collection and export for observability.

All metrics are registered with the default registry at package initialization
and carry the reelmatch_ prefix.

# Metrics Endpoint

Metrics are exposed at the /metrics endpoint in Prometheus text format:

	curl http://localhost:8000/metrics

# Available Metrics

API:
  - reelmatch_api_requests_total{method,endpoint,status_code}
  - reelmatch_api_request_duration_seconds{method,endpoint}
  - reelmatch_api_active_requests
  - reelmatch_api_rate_limit_hits_total{endpoint}

Snapshots:
  - reelmatch_rebuilds_total{status}
  - reelmatch_rebuild_duration_seconds
  - reelmatch_rebuild_last_success_timestamp_seconds
  - reelmatch_snapshot_generation
  - reelmatch_snapshot_films
  - reelmatch_snapshot_users

Queries and caching:
  - reelmatch_recommend_queries_total{kind,algorithm}
  - reelmatch_recommend_results
  - reelmatch_cache_hits_total{tier}
  - reelmatch_cache_misses_total{tier}

Catalog circuit breaker:
  - reelmatch_circuit_breaker_state{name}
  - reelmatch_circuit_breaker_requests_total{name,result}
  - reelmatch_circuit_breaker_state_transitions_total{name,from_state,to_state}

# Usage

	metrics.RecordAPIRequest("GET", "/recommendations/user/{userID}", "200", elapsed)
	metrics.RecordRebuild(result.Duration, result.Films, result.UsersWithLikes, result.Generation, err)
*/
package metrics
