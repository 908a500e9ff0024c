// Reelmatch - Film Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/tomtom215/reelmatch/internal/logging"
)

func TestResponseWriter(t *testing.T) {
	tests := []struct {
		name        string
		write       func(rw *ResponseWriter)
		wantStatus  int
		wantSuccess bool
		wantCached  bool
		wantCode    string
	}{
		{
			name:        "success",
			write:       func(rw *ResponseWriter) { rw.Success(map[string]int{"n": 1}) },
			wantStatus:  http.StatusOK,
			wantSuccess: true,
		},
		{
			name:        "cached",
			write:       func(rw *ResponseWriter) { rw.Cached(map[string]int{"n": 1}) },
			wantStatus:  http.StatusOK,
			wantSuccess: true,
			wantCached:  true,
		},
		{
			name:        "explicit status below 400",
			write:       func(rw *ResponseWriter) { rw.Status(http.StatusAccepted, nil) },
			wantStatus:  http.StatusAccepted,
			wantSuccess: true,
		},
		{
			name:       "explicit status 503",
			write:      func(rw *ResponseWriter) { rw.Status(http.StatusServiceUnavailable, map[string]bool{"ready": false}) },
			wantStatus: http.StatusServiceUnavailable,
		},
		{
			name: "error",
			write: func(rw *ResponseWriter) {
				rw.Error(http.StatusInternalServerError, ErrCodeInternalError, "failed", nil, errors.New("secret detail"))
			},
			wantStatus: http.StatusInternalServerError,
			wantCode:   ErrCodeInternalError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/x", nil)
			req = req.WithContext(logging.ContextWithRequestID(req.Context(), "req-1"))
			w := httptest.NewRecorder()

			tt.write(NewResponseWriter(w, req))

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if ct := w.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("Content-Type = %q", ct)
			}
			if cc := w.Header().Get("Cache-Control"); cc != "no-store" {
				t.Errorf("Cache-Control = %q, want no-store", cc)
			}

			resp := decode(t, w)
			if resp.Success != tt.wantSuccess {
				t.Errorf("success = %v, want %v", resp.Success, tt.wantSuccess)
			}
			if resp.Meta == nil {
				t.Fatal("meta missing")
			}
			if resp.Meta.RequestID != "req-1" {
				t.Errorf("request_id = %q, want req-1", resp.Meta.RequestID)
			}
			if resp.Meta.Cached != tt.wantCached {
				t.Errorf("cached = %v, want %v", resp.Meta.Cached, tt.wantCached)
			}
			if tt.wantCode != "" && (resp.Error == nil || resp.Error.Code != tt.wantCode) {
				t.Errorf("error = %+v, want code %s", resp.Error, tt.wantCode)
			}
			if strings.Contains(w.Body.String(), "secret detail") {
				t.Error("wrapped error leaked into the response body")
			}
		})
	}
}

func TestRespondError_MatchesAuthResponder(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/admin/rebuild", nil)
	w := httptest.NewRecorder()

	respondError(w, req, http.StatusUnauthorized, ErrCodeUnauthorized, "admin role required")

	resp := decode(t, w)
	if w.Code != http.StatusUnauthorized || resp.Error == nil || resp.Error.Message != "admin role required" {
		t.Errorf("got %d %+v", w.Code, resp.Error)
	}
}
