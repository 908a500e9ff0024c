// Reelmatch - Film Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/reelmatch/internal/api"
	"github.com/tomtom215/reelmatch/internal/auth"
	"github.com/tomtom215/reelmatch/internal/config"
	"github.com/tomtom215/reelmatch/internal/logging"
	"github.com/tomtom215/reelmatch/internal/supervisor"
	"github.com/tomtom215/reelmatch/internal/supervisor/services"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		// Logging still has its defaults here.
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
		Output:    os.Stderr,
	})

	if err := run(cfg); err != nil {
		logging.Fatal().Err(err).Msg("Server stopped with error")
	}
	logging.Info().Msg("Application stopped gracefully")
}

// run wires every component and blocks until SIGINT or SIGTERM. Deferred
// closers run after the supervisor tree has drained.
func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logging.Info().
		Str("environment", cfg.Server.Environment).
		Str("catalog_driver", cfg.Catalog.Driver).
		Bool("cache_enabled", cfg.Cache.Enabled).
		Msg("Starting Reelmatch")

	cat, err := initCatalog(ctx, cfg, logging.WithComponent("catalog"))
	if err != nil {
		return fmt.Errorf("catalog: %w", err)
	}
	defer func() {
		if err := cat.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing catalog")
		}
	}()

	rec, err := initRecommend(cfg, cat.Source, logging.Logger())
	if err != nil {
		return err
	}

	responseCache, closeCache := initCache(ctx, cfg, logging.WithComponent("cache"))
	defer func() {
		if err := closeCache(); err != nil {
			logging.Error().Err(err).Msg("Error closing cache")
		}
	}()

	adminMiddleware, err := initAdminAuth(cfg)
	if err != nil {
		return err
	}

	handler := api.NewHandler(api.HandlerDeps{
		Engine:         rec.Engine,
		Catalog:        cat.Source,
		Rebuilder:      rec.Rebuilder,
		Cache:          responseCache,
		Logger:         logging.WithComponent("api"),
		RebuildTimeout: cfg.Recommend.RebuildTimeout,
	})
	router := api.NewRouter(handler, api.RouterConfig{
		CORSOrigins:       cfg.Server.CORSOrigins,
		RateLimitRequests: cfg.Security.RateLimitReqs,
		RateLimitWindow:   cfg.Security.RateLimitWindow,
		RateLimitDisabled: cfg.Security.RateLimitDisabled,
		RequestTimeout:    cfg.Server.Timeout,
		Admin:             adminMiddleware,
	})

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      writeTimeout(cfg),
		IdleTimeout:       60 * time.Second,
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger("supervisor"), supervisor.DefaultTreeConfig())
	if err != nil {
		return fmt.Errorf("create supervisor tree: %w", err)
	}
	tree.AddDataService(rec.Service)
	tree.AddAPIService(services.NewHTTPServerService(server, shutdownTimeout, logging.WithComponent("http")))
	logging.Info().Str("addr", server.Addr).Msg("Services added to supervisor tree")

	errCh := tree.ServeBackground(ctx)
	<-ctx.Done()
	logging.Info().Msg("Shutdown signal received, waiting for services to stop")

	var serveErr error
	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			serveErr = err
		}
	}

	if unstopped, _ := tree.UnstoppedServiceReport(); len(unstopped) > 0 {
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
		}
	}
	return serveErr
}

// initAdminAuth returns the /admin guard. Without a secret the routes stay
// open and a warning is logged.
func initAdminAuth(cfg *config.Config) (*auth.Middleware, error) {
	if cfg.AdminAuthDisabled() {
		logging.Warn().Bool("production", cfg.IsProduction()).Msg("ADMIN_JWT_SECRET not set: /admin routes are unauthenticated")
		return nil, nil
	}
	verifier, err := auth.NewAdminVerifier(cfg.Security.AdminJWTSecret)
	if err != nil {
		return nil, fmt.Errorf("admin auth: %w", err)
	}
	return api.NewAdminMiddleware(verifier, logging.WithComponent("auth")), nil
}

// writeTimeout leaves room for a synchronous POST /admin/rebuild.
func writeTimeout(cfg *config.Config) time.Duration {
	timeout := cfg.Server.Timeout
	if rebuild := cfg.Recommend.RebuildTimeout + 5*time.Second; rebuild > timeout {
		timeout = rebuild
	}
	return timeout
}
