// Reelmatch - Film Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

//go:build integration

package testinfra

import (
	"context"
	"fmt"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	// DefaultPostgresImage is the Postgres image used for catalog tests.
	DefaultPostgresImage = "postgres:16-alpine"

	// DefaultPostgresPort is the Postgres listen port inside the container.
	DefaultPostgresPort = "5432"

	postgresUser     = "reelmatch"
	postgresPassword = "reelmatch"
	postgresDB       = "reelmatch"
)

// CatalogSchema creates the tables the catalog reads from, matching the
// application database layout.
const CatalogSchema = `
CREATE TABLE IF NOT EXISTS public.films (
    id            text PRIMARY KEY,
    title         text NOT NULL,
    director      text,
    genre         text,
    "imageUrl"    text,
    "backdropUrl" text,
    overview      text,
    rating        numeric(3,1),
    "trailerUrl"  text,
    year          integer,
    "tmdbId"      integer UNIQUE,
    "createdAt"   timestamptz NOT NULL DEFAULT now()
);
CREATE TABLE IF NOT EXISTS public.genres (
    id   text PRIMARY KEY,
    name text NOT NULL UNIQUE
);
CREATE TABLE IF NOT EXISTS public.film_genres (
    "filmId"  text NOT NULL REFERENCES public.films(id),
    "genreId" text NOT NULL REFERENCES public.genres(id),
    PRIMARY KEY ("filmId", "genreId")
);
CREATE TABLE IF NOT EXISTS public.user_film_likes (
    "userId" text NOT NULL,
    "filmId" text NOT NULL,
    PRIMARY KEY ("userId", "filmId")
);`

// PostgresContainer represents a running Postgres container for testing.
type PostgresContainer struct {
	testcontainers.Container
	DSN string
}

// PostgresOption configures the Postgres container.
type PostgresOption func(*postgresConfig)

type postgresConfig struct {
	image        string
	startTimeout time.Duration
}

// WithPostgresImage sets a custom Postgres Docker image.
func WithPostgresImage(image string) PostgresOption {
	return func(c *postgresConfig) {
		c.image = image
	}
}

// WithPostgresStartTimeout sets the timeout for waiting for Postgres to start.
func WithPostgresStartTimeout(timeout time.Duration) PostgresOption {
	return func(c *postgresConfig) {
		c.startTimeout = timeout
	}
}

// NewPostgresContainer creates and starts a Postgres container.
//
// Example:
//
//	pg, err := testinfra.NewPostgresContainer(ctx)
//	if err != nil {
//	    t.Fatal(err)
//	}
//	defer testinfra.CleanupContainer(t, ctx, pg)
//
//	db, err := catalog.Connect(ctx, pg.DSN, 4)
func NewPostgresContainer(ctx context.Context, opts ...PostgresOption) (*PostgresContainer, error) {
	cfg := &postgresConfig{
		image:        DefaultPostgresImage,
		startTimeout: 60 * time.Second,
	}

	for _, opt := range opts {
		opt(cfg)
	}

	req := testcontainers.ContainerRequest{
		Image:        cfg.image,
		ExposedPorts: []string{DefaultPostgresPort + "/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     postgresUser,
			"POSTGRES_PASSWORD": postgresPassword,
			"POSTGRES_DB":       postgresDB,
		},
		// Postgres logs readiness twice: once for the init server, once for
		// the real one.
		WaitingFor: wait.ForAll(
			wait.ForListeningPort(DefaultPostgresPort+"/tcp"),
			wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
		).WithStartupTimeout(cfg.startTimeout),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return nil, fmt.Errorf("create postgres container: %w", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		container.Terminate(ctx) //nolint:errcheck
		return nil, fmt.Errorf("get container host: %w", err)
	}

	port, err := container.MappedPort(ctx, DefaultPostgresPort)
	if err != nil {
		container.Terminate(ctx) //nolint:errcheck
		return nil, fmt.Errorf("get mapped port: %w", err)
	}

	return &PostgresContainer{
		Container: container,
		DSN: fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
			postgresUser, postgresPassword, host, port.Port(), postgresDB),
	}, nil
}
