// Reelmatch - Film Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/reelmatch/internal/metrics"
	"github.com/tomtom215/reelmatch/internal/recommend"
)

// BreakerConfig tunes the circuit breaker around a Source.
type BreakerConfig struct {
	// Name labels the breaker in logs and metrics.
	Name string

	// MaxRequests is the number of trial requests allowed while half-open.
	MaxRequests uint32

	// Interval resets the failure counts while closed. Zero never resets.
	Interval time.Duration

	// Timeout is how long the breaker stays open before going half-open.
	Timeout time.Duration

	// MinRequests is the sample size required before the failure ratio is
	// considered.
	MinRequests uint32

	// FailureRatio opens the breaker once reached.
	FailureRatio float64
}

// DefaultBreakerConfig returns settings suited to a database-backed source.
func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		Name:         "catalog",
		MaxRequests:  3,
		Interval:     time.Minute,
		Timeout:      30 * time.Second,
		MinRequests:  5,
		FailureRatio: 0.6,
	}
}

// BreakerSource wraps a Source with a circuit breaker. Lookups that simply
// find nothing and cancelled requests do not count as failures.
//
// The breaker runs on wall-clock time; tests drive it through request counts
// and never wait on Timeout.
type BreakerSource struct {
	source Source
	cb     *gobreaker.CircuitBreaker[any]
	name   string
	logger zerolog.Logger
}

// NewBreakerSource wraps source.
func NewBreakerSource(source Source, cfg BreakerConfig, logger zerolog.Logger) *BreakerSource {
	if cfg.Name == "" {
		cfg.Name = "catalog"
	}
	b := &BreakerSource{
		source: source,
		name:   cfg.Name,
		logger: logger.With().Str("component", "catalog-breaker").Str("breaker", cfg.Name).Logger(),
	}

	metrics.CircuitBreakerState.WithLabelValues(cfg.Name).Set(0)

	b.cb = gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.MinRequests {
				return false
			}
			ratio := float64(counts.TotalFailures) / float64(counts.Requests)
			return ratio >= cfg.FailureRatio
		},
		IsSuccessful: func(err error) bool {
			return err == nil ||
				errors.Is(err, ErrFilmNotFound) ||
				errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			b.logger.Warn().Str("from", stateToString(from)).Str("to", stateToString(to)).Msg("circuit breaker state change")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, stateToString(from), stateToString(to)).Inc()
		},
	})
	return b
}

// State returns the breaker state as closed, half-open or open.
func (b *BreakerSource) State() string {
	return stateToString(b.cb.State())
}

// Films implements Source.
func (b *BreakerSource) Films(ctx context.Context) ([]recommend.Film, error) {
	return execute(b, func() ([]recommend.Film, error) { return b.source.Films(ctx) })
}

// AllLikes implements Source.
func (b *BreakerSource) AllLikes(ctx context.Context) (recommend.LikeSet, error) {
	return execute(b, func() (recommend.LikeSet, error) { return b.source.AllLikes(ctx) })
}

// UserLikes implements Source.
func (b *BreakerSource) UserLikes(ctx context.Context, userID string) ([]string, error) {
	return execute(b, func() ([]string, error) { return b.source.UserLikes(ctx, userID) })
}

// FilmIDByTMDBID implements Source.
func (b *BreakerSource) FilmIDByTMDBID(ctx context.Context, tmdbID int) (string, error) {
	return execute(b, func() (string, error) { return b.source.FilmIDByTMDBID(ctx, tmdbID) })
}

// execute runs fn through the breaker and restores its result type.
func execute[T any](b *BreakerSource, fn func() (T, error)) (T, error) {
	var zero T
	result, err := b.cb.Execute(func() (any, error) {
		return fn()
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.CircuitBreakerRequests.WithLabelValues(b.name, "rejected").Inc()
			return zero, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
		}
		if !errors.Is(err, ErrFilmNotFound) {
			metrics.CircuitBreakerRequests.WithLabelValues(b.name, "failure").Inc()
		}
		return zero, err
	}
	metrics.CircuitBreakerRequests.WithLabelValues(b.name, "success").Inc()

	typed, ok := result.(T)
	if !ok && result != nil {
		return zero, fmt.Errorf("circuit breaker: unexpected result type %T", result)
	}
	return typed, nil
}

func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}
