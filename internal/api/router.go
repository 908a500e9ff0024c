// Reelmatch - Film Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/tomtom215/reelmatch/internal/auth"
	"github.com/tomtom215/reelmatch/internal/logging"
	"github.com/tomtom215/reelmatch/internal/metrics"
	"github.com/tomtom215/reelmatch/internal/middleware"
)

// RouterConfig holds the HTTP-layer settings.
type RouterConfig struct {
	CORSOrigins []string

	RateLimitRequests int
	RateLimitWindow   time.Duration
	RateLimitDisabled bool

	// RequestTimeout bounds handler execution. Zero disables it.
	RequestTimeout time.Duration

	// Admin guards /admin routes. A nil verifier inside leaves them open.
	Admin *auth.Middleware
}

// NewRouter wires the middleware stack and routes:
//
//	GET  /health
//	GET  /health/ready
//	GET  /metrics
//	GET  /recommendations/user/{userID}
//	GET  /recommendations/similar/{filmID}
//	POST /admin/rebuild
//
//nolint:gocritic // config passed by value at construction only
func NewRouter(h *Handler, cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.AccessLog)
	r.Use(corsHandler(cfg.CORSOrigins))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, r, http.StatusNotFound, ErrCodeNotFound, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, r, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed")
	})

	r.Route("/health", func(r chi.Router) {
		r.Get("/", h.Health)
		r.Get("/ready", h.HealthReady)
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/recommendations", func(r chi.Router) {
		r.Use(middleware.PrometheusMetrics)
		r.Use(rateLimit("recommendations", cfg))
		if cfg.RequestTimeout > 0 {
			r.Use(chimiddleware.Timeout(cfg.RequestTimeout))
		}
		r.Get("/user/{userID}", h.UserRecommendations)
		r.Get("/similar/{filmID}", h.SimilarFilms)
	})

	// Rebuilds are bounded by the handler's rebuild timeout, not RequestTimeout.
	r.Route("/admin", func(r chi.Router) {
		r.Use(middleware.PrometheusMetrics)
		r.Use(rateLimit("admin", cfg))
		if cfg.Admin != nil {
			r.Use(cfg.Admin.RequireAdmin)
		}
		r.Post("/rebuild", h.Rebuild)
	})

	return r
}

// NewAdminMiddleware guards /admin with verifier and answers failures in the
// API envelope. A nil verifier leaves the routes open.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewAdminMiddleware(verifier *auth.AdminVerifier, logger zerolog.Logger) *auth.Middleware {
	return auth.NewMiddleware(verifier, logging.NewAuditLogger(logger), respondError)
}

func corsHandler(origins []string) func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposedHeaders:   []string{middleware.RequestIDHeader},
		AllowCredentials: false,
		MaxAge:           86400,
	})
}

// rateLimit limits per client IP. RealIP runs first, so the key is the
// forwarded address when behind a proxy.
//
//nolint:gocritic // config passed by value at construction only
func rateLimit(endpoint string, cfg RouterConfig) func(http.Handler) http.Handler {
	if cfg.RateLimitDisabled {
		return func(next http.Handler) http.Handler { return next }
	}
	return httprate.Limit(
		cfg.RateLimitRequests,
		cfg.RateLimitWindow,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			metrics.APIRateLimitHits.WithLabelValues(endpoint).Inc()
			respondError(w, r, http.StatusTooManyRequests, ErrCodeTooManyRequests, "rate limit exceeded")
		}),
	)
}
