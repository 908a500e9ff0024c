// Reelmatch - Film Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

/*
Package api provides the HTTP surface of the recommendation service.

All JSON responses share one envelope:

	{
	  "success": true,
	  "data": {...},
	  "meta": {"request_id": "...", "timestamp": "...", "duration_ms": 3, "cached": true}
	}

Failed requests carry an error object instead of data:

	{"success": false, "error": {"code": "VALIDATION_ERROR", "message": "..."}}

# Endpoints

	GET  /health                            liveness
	GET  /health/ready                      503 until the first snapshot is published
	GET  /metrics                           Prometheus exposition
	GET  /recommendations/user/{userID}     ?algorithm=hybrid&k=20
	GET  /recommendations/similar/{filmID}  ?algorithm=content&k=20
	POST /admin/rebuild                     Bearer JWT with role=admin when a secret is configured

A numeric filmID is looked up as a TMDB id first. Responses for the same
snapshot generation, subject, algorithm and k are served from the response
cache and flagged with meta.cached.

# Middleware

The global stack runs request ID assignment, real IP extraction, panic
recovery, access logging and CORS. Recommendation and admin routes add
Prometheus instrumentation and per-IP rate limiting (httprate).
*/
package api
