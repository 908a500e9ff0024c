// Reelmatch - Film Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tomtom215/reelmatch/internal/catalog"
	"github.com/tomtom215/reelmatch/internal/config"
)

// CatalogComponents holds the opened catalog source.
type CatalogComponents struct {
	// Source is what the engine and handlers read, breaker-wrapped when enabled.
	Source catalog.Source

	// Close releases the underlying store.
	Close func() error
}

// initCatalog opens the configured catalog driver. With badger, the seed
// file is imported on every start; the import is idempotent.
//
//nolint:gocritic // hugeParam: logger passed by value for zerolog chaining
func initCatalog(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*CatalogComponents, error) {
	var (
		source  catalog.Source
		closeFn func() error
	)

	switch cfg.Catalog.Driver {
	case config.CatalogDriverPostgres:
		db, err := catalog.Connect(ctx, cfg.Catalog.DatabaseURL, cfg.Catalog.MaxConns)
		if err != nil {
			return nil, err
		}
		pg := catalog.NewPostgresSource(db)
		source, closeFn = pg, pg.Close
		logger.Info().Int32("max_conns", cfg.Catalog.MaxConns).Msg("postgres catalog connected")

	default:
		store, err := catalog.OpenBadgerStore(cfg.Catalog.BadgerPath, cfg.Catalog.BadgerInMemory)
		if err != nil {
			return nil, err
		}
		if cfg.Catalog.SeedPath != "" {
			if err := importSeed(ctx, store, cfg.Catalog.SeedPath, logger); err != nil {
				_ = store.Close()
				return nil, err
			}
		}
		source, closeFn = store, store.Close
		logger.Info().
			Str("path", cfg.Catalog.BadgerPath).
			Bool("in_memory", cfg.Catalog.BadgerInMemory).
			Msg("badger catalog opened")
	}

	if cfg.Catalog.Breaker.Enabled {
		source = catalog.NewBreakerSource(source, buildBreakerConfig(cfg), logger)
	}

	return &CatalogComponents{Source: source, Close: closeFn}, nil
}

//nolint:gocritic // hugeParam: logger passed by value for zerolog chaining
func importSeed(ctx context.Context, store *catalog.BadgerStore, path string, logger zerolog.Logger) error {
	seed, err := catalog.LoadSeedFile(path)
	if err != nil {
		return fmt.Errorf("load seed: %w", err)
	}
	result, err := catalog.ImportSeed(ctx, store, seed)
	if err != nil {
		return fmt.Errorf("import seed: %w", err)
	}
	logger.Info().
		Str("path", path).
		Int("films", result.Films).
		Int("likes", result.Likes).
		Msg("seed imported")
	return nil
}

func buildBreakerConfig(cfg *config.Config) catalog.BreakerConfig {
	b := cfg.Catalog.Breaker
	return catalog.BreakerConfig{
		Name:         "catalog-" + cfg.Catalog.Driver,
		MaxRequests:  b.MaxRequests,
		Interval:     b.Interval,
		Timeout:      b.Timeout,
		MinRequests:  b.MinRequests,
		FailureRatio: b.FailureRatio,
	}
}
