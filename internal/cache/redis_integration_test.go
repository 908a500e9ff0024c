// Reelmatch - Film Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

//go:build integration

package cache

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/reelmatch/internal/testinfra"
)

func TestRedisCache_Integration(t *testing.T) {
	testinfra.SkipIfNoDocker(t)
	ctx := context.Background()

	rc, err := testinfra.NewRedisContainer(ctx)
	if err != nil {
		t.Fatalf("NewRedisContainer() error = %v", err)
	}
	defer testinfra.CleanupContainer(t, ctx, rc)

	client, err := ConnectRedis(rc.URL)
	if err != nil {
		t.Fatalf("ConnectRedis() error = %v", err)
	}
	remote := NewRedisCache(client, time.Minute)
	defer remote.Close()

	if err := remote.Ping(ctx); err != nil {
		t.Fatalf("Ping() error = %v", err)
	}

	t.Run("round trip", func(t *testing.T) {
		if err := remote.Set(ctx, "k", response{Items: []string{"a", "b"}}); err != nil {
			t.Fatalf("Set() error = %v", err)
		}
		var got response
		found, err := remote.Get(ctx, "k", &got)
		if err != nil || !found || len(got.Items) != 2 {
			t.Errorf("Get() = %+v, %v, %v", got, found, err)
		}
	})

	t.Run("miss", func(t *testing.T) {
		var got response
		found, err := remote.Get(ctx, "missing", &got)
		if err != nil || found {
			t.Errorf("Get(missing) = %v, %v", found, err)
		}
	})

	t.Run("tiered fills local from remote", func(t *testing.T) {
		writer := NewTiered[*response](NewLRU[*response](10, time.Minute), remote, zerolog.Nop())
		reader := NewTiered[*response](NewLRU[*response](10, time.Minute), remote, zerolog.Nop())

		writer.Set(ctx, "shared", &response{Items: []string{"x"}})

		got, ok := reader.Get(ctx, "shared")
		if !ok || got.Items[0] != "x" {
			t.Fatalf("reader Get() = %+v, %v", got, ok)
		}
		if reader.Local().Len() != 1 {
			t.Error("remote hit was not copied into the local tier")
		}
	})
}
