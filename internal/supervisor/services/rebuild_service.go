// Reelmatch - Film Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/reelmatch/internal/recommend"
)

// Rebuilder rebuilds and publishes an engine snapshot.
type Rebuilder interface {
	Rebuild(ctx context.Context) (recommend.RebuildResult, error)
}

// RebuildServiceConfig holds the rebuild schedule.
type RebuildServiceConfig struct {
	// OnStartup rebuilds as soon as the service starts.
	OnStartup bool

	// Interval between scheduled rebuilds. Zero disables scheduling.
	Interval time.Duration

	// Timeout bounds each rebuild. Default: 2m.
	Timeout time.Duration
}

// RebuildService keeps the engine snapshot fresh.
//
// A failed startup rebuild is returned as an error so the supervisor retries
// it after its backoff; the engine has nothing to serve until one succeeds.
// Scheduled failures are logged and the previous snapshot keeps serving.
type RebuildService struct {
	rebuilder Rebuilder
	config    RebuildServiceConfig
	logger    zerolog.Logger

	started bool
}

// NewRebuildService creates a rebuild service.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewRebuildService(rebuilder Rebuilder, cfg RebuildServiceConfig, logger zerolog.Logger) *RebuildService {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 2 * time.Minute
	}
	return &RebuildService{
		rebuilder: rebuilder,
		config:    cfg,
		logger:    logger.With().Str("service", "rebuild").Logger(),
	}
}

// Serve implements suture.Service.
func (s *RebuildService) Serve(ctx context.Context) error {
	s.logger.Info().
		Bool("on_startup", s.config.OnStartup).
		Dur("interval", s.config.Interval).
		Dur("timeout", s.config.Timeout).
		Msg("rebuild service starting")

	// Only the first successful startup rebuild counts; a supervisor restart
	// after a scheduled-run panic must not rebuild again immediately.
	if s.config.OnStartup && !s.started {
		if _, err := s.rebuild(ctx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("startup rebuild: %w", err)
		}
	}
	s.started = true

	if s.config.Interval <= 0 {
		<-ctx.Done()
		return ctx.Err()
	}

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("rebuild service shutting down")
			return ctx.Err()

		case <-ticker.C:
			if _, err := s.rebuild(ctx); err != nil && ctx.Err() == nil {
				s.logger.Warn().Err(err).Msg("scheduled rebuild failed, keeping previous snapshot")
			}
		}
	}
}

func (s *RebuildService) rebuild(ctx context.Context) (recommend.RebuildResult, error) {
	runCtx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()
	return s.rebuilder.Rebuild(runCtx)
}

// String names the service in supervisor events.
func (s *RebuildService) String() string {
	return "rebuild-service"
}
