// Reelmatch - Film Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package main

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tomtom215/reelmatch/internal/catalog"
	"github.com/tomtom215/reelmatch/internal/config"
	"github.com/tomtom215/reelmatch/internal/metrics"
	"github.com/tomtom215/reelmatch/internal/recommend"
	"github.com/tomtom215/reelmatch/internal/supervisor/services"
)

// RecommendComponents holds the engine and everything that feeds it.
type RecommendComponents struct {
	Engine    *recommend.Engine
	Rebuilder *recommend.Rebuilder
	Service   *services.RebuildService
}

// initRecommend builds the engine over source. Nothing is published until the
// rebuild service (or POST /admin/rebuild) runs the first rebuild.
//
//nolint:gocritic // hugeParam: logger passed by value for zerolog chaining
func initRecommend(cfg *config.Config, source catalog.Source, logger zerolog.Logger) (*RecommendComponents, error) {
	engineCfg := buildEngineConfig(cfg)
	engine, err := recommend.NewEngine(engineCfg, logger.With().Str("component", "recommend").Logger())
	if err != nil {
		return nil, fmt.Errorf("create recommendation engine: %w", err)
	}

	rebuilder := recommend.NewRebuilder(engine, source, logger.With().Str("component", "rebuilder").Logger())
	rebuilder.SetObserver(func(result recommend.RebuildResult, err error) {
		metrics.RecordRebuild(result.Duration, result.Films, result.UsersWithLikes, result.Generation, err)
	})

	service := services.NewRebuildService(rebuilder, buildRebuildServiceConfig(cfg), logger)

	logger.Info().
		Int("default_k", engineCfg.Limits.DefaultK).
		Int("max_k", engineCfg.Limits.MaxK).
		Float64("hybrid_alpha", engineCfg.HybridAlpha).
		Bool("rebuild_on_startup", cfg.Recommend.RebuildOnStartup).
		Dur("rebuild_interval", cfg.Recommend.RebuildInterval).
		Msg("recommendation engine initialized")

	return &RecommendComponents{
		Engine:    engine,
		Rebuilder: rebuilder,
		Service:   service,
	}, nil
}

// buildEngineConfig maps the recommend section onto the engine's config.
func buildEngineConfig(cfg *config.Config) *recommend.Config {
	return &recommend.Config{
		Limits: recommend.LimitsConfig{
			DefaultK: cfg.Recommend.DefaultK,
			MaxK:     cfg.Recommend.MaxK,
		},
		HybridAlpha:   cfg.Recommend.HybridAlpha,
		ItemNeighbors: cfg.Recommend.ItemNeighbors,
		UserNeighbors: cfg.Recommend.UserNeighbors,
		OverviewChars: cfg.Recommend.OverviewChars,
	}
}

func buildRebuildServiceConfig(cfg *config.Config) services.RebuildServiceConfig {
	return services.RebuildServiceConfig{
		OnStartup: cfg.Recommend.RebuildOnStartup,
		Interval:  cfg.Recommend.RebuildInterval,
		Timeout:   cfg.Recommend.RebuildTimeout,
	}
}
