// Reelmatch - Film Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

/*
Package middleware provides the HTTP middleware shared by the API router.

  - RequestID: X-Request-ID handling and request-scoped log fields
  - PrometheusMetrics: request count, latency and in-flight gauges keyed by chi route pattern
  - AccessLog: per-request log lines through zerolog

All three are plain func(http.Handler) http.Handler and plug into chi's r.Use:

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.AccessLog)

PrometheusMetrics reads the route pattern after the handler returns, so it must
run inside the router (r.Use on a group) rather than wrapping the router.
*/
package middleware
