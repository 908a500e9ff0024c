// Reelmatch - Film Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package recommend

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// Source supplies the two inputs of a rebuild. It is typically implemented
// by the catalog layer.
type Source interface {
	// Films returns the full catalog.
	Films(ctx context.Context) ([]Film, error)

	// AllLikes returns every user's like set.
	AllLikes(ctx context.Context) (LikeSet, error)
}

// RebuildResult summarizes one completed rebuild.
type RebuildResult struct {
	Films          int           `json:"films"`
	UsersWithLikes int           `json:"users_with_likes"`
	Generation     uint64        `json:"generation"`
	Duration       time.Duration `json:"-"`
	DurationMS     int64         `json:"duration_ms"`
}

// RebuildObserver is notified after every rebuild attempt.
type RebuildObserver func(result RebuildResult, err error)

// Rebuilder loads inputs from a Source and rebuilds an Engine.
type Rebuilder struct {
	engine   *Engine
	source   Source
	logger   zerolog.Logger
	observer RebuildObserver

	// inflight collapses overlapping rebuilds (admin call during a scheduled
	// run) into one fetch and one publish.
	inflight singleflight.Group
}

// NewRebuilder creates a Rebuilder.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewRebuilder(engine *Engine, source Source, logger zerolog.Logger) *Rebuilder {
	return &Rebuilder{
		engine: engine,
		source: source,
		logger: logger.With().Str("component", "rebuilder").Logger(),
	}
}

// SetObserver registers fn to be called after each rebuild attempt.
// It must be called before the Rebuilder is shared.
func (r *Rebuilder) SetObserver(fn RebuildObserver) {
	r.observer = fn
}

// Rebuild fetches films and likes concurrently and publishes a new Snapshot.
// A call made while another rebuild is running waits for that rebuild and
// returns its result.
func (r *Rebuilder) Rebuild(ctx context.Context) (RebuildResult, error) {
	v, err, _ := r.inflight.Do("rebuild", func() (interface{}, error) {
		return r.run(ctx)
	})
	result, _ := v.(RebuildResult)
	return result, err
}

func (r *Rebuilder) run(ctx context.Context) (RebuildResult, error) {
	start := time.Now()
	result, err := r.rebuild(ctx)
	result.Duration = time.Since(start)
	result.DurationMS = result.Duration.Milliseconds()

	if err != nil {
		r.logger.Error().Err(err).Dur("duration", result.Duration).Msg("rebuild failed")
	} else {
		r.logger.Info().
			Int("films", result.Films).
			Int("users_with_likes", result.UsersWithLikes).
			Uint64("generation", result.Generation).
			Dur("duration", result.Duration).
			Msg("rebuild complete")
	}

	if r.observer != nil {
		r.observer(result, err)
	}
	return result, err
}

func (r *Rebuilder) rebuild(ctx context.Context) (RebuildResult, error) {
	var (
		films []Film
		likes LikeSet
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		films, err = r.source.Films(gctx)
		if err != nil {
			return fmt.Errorf("fetch films: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		likes, err = r.source.AllLikes(gctx)
		if err != nil {
			return fmt.Errorf("fetch likes: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return RebuildResult{}, err
	}

	snap, err := r.engine.Rebuild(films, likes)
	if err != nil {
		return RebuildResult{}, fmt.Errorf("rebuild engine: %w", err)
	}

	return RebuildResult{
		Films:          snap.FilmCount(),
		UsersWithLikes: snap.UserCount(),
		Generation:     snap.Generation(),
	}, nil
}
