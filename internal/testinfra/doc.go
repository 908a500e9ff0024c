// Reelmatch - Film Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package testinfra provides test infrastructure for integration testing with containers.
//
// This package uses testcontainers-go to manage Docker containers for integration tests,
// so catalog queries run against a real Postgres instead of a mock.
//
// # Postgres Container
//
//	func TestPostgresSource(t *testing.T) {
//	    testinfra.SkipIfNoDocker(t)
//	    ctx := context.Background()
//	    pg, err := testinfra.NewPostgresContainer(ctx)
//	    if err != nil {
//	        t.Fatal(err)
//	    }
//	    defer testinfra.CleanupContainer(t, ctx, pg)
//
//	    db, err := catalog.Connect(ctx, pg.DSN, 4)
//	    // apply testinfra.CatalogSchema, insert rows, query
//	}
//
// # Build Tags
//
// All container helpers are behind the integration build tag:
//
//	go test -tags integration ./internal/catalog/...
//
// Tests skip themselves when Docker is not available.
package testinfra
