// Reelmatch - Film Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package api

import (
	"net/http"
	"time"
)

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string `json:"status"`
}

// ReadinessResponse is the body of GET /health/ready.
type ReadinessResponse struct {
	Ready         bool       `json:"ready"`
	Generation    uint64     `json:"generation"`
	Films         int        `json:"films"`
	Users         int        `json:"users"`
	LastRebuiltAt *time.Time `json:"last_rebuilt_at,omitempty"`
}

// Health handles GET /health. It reports liveness only.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(HealthResponse{Status: "ok"})
}

// HealthReady handles GET /health/ready: 200 once a snapshot is published,
// 503 before that.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	resp := ReadinessResponse{}
	if snap := h.engine.Snapshot(); snap != nil {
		builtAt := snap.BuiltAt()
		resp = ReadinessResponse{
			Ready:         true,
			Generation:    snap.Generation(),
			Films:         snap.FilmCount(),
			Users:         snap.UserCount(),
			LastRebuiltAt: &builtAt,
		}
	}

	status := http.StatusOK
	if !resp.Ready {
		status = http.StatusServiceUnavailable
	}
	NewResponseWriter(w, r).Status(status, resp)
}
