// Reelmatch - Film Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

//go:build integration

package catalog

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/tomtom215/reelmatch/internal/testinfra"
)

const fixtureSQL = `
INSERT INTO public.films (id, title, director, genre, overview, rating, year, "tmdbId", "createdAt") VALUES
    ('matrix', 'The Matrix', 'Lana Wachowski', 'Action', 'A hacker learns the truth.', 8.7, 1999, 603, '2024-01-01'),
    ('heat',   'Heat',       'Michael Mann',   'Crime',  'A thief and a detective.',   8.3, 1995, 949, '2024-02-01'),
    ('alien',  'Alien',      NULL,             NULL,     NULL,                         NULL, NULL, NULL, '2024-03-01');
INSERT INTO public.genres (id, name) VALUES ('g1', 'Action'), ('g2', 'Science Fiction'), ('g3', 'Crime');
INSERT INTO public.film_genres ("filmId", "genreId") VALUES ('matrix', 'g2'), ('matrix', 'g1'), ('heat', 'g3');
INSERT INTO public.user_film_likes ("userId", "filmId") VALUES
    ('alice', 'matrix'), ('alice', '949'), ('bob', 'heat'), ('bob', '12345');
`

func TestPostgresSource_Integration(t *testing.T) {
	testinfra.SkipIfNoDocker(t)
	ctx := context.Background()

	pg, err := testinfra.NewPostgresContainer(ctx)
	if err != nil {
		t.Fatalf("NewPostgresContainer() error = %v", err)
	}
	defer testinfra.CleanupContainer(t, ctx, pg)

	db, err := Connect(ctx, pg.DSN, 4)
	if err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	// Prepared statements carry one command each.
	for _, script := range []string{testinfra.CatalogSchema, fixtureSQL} {
		for _, stmt := range strings.Split(script, ";") {
			if strings.TrimSpace(stmt) == "" {
				continue
			}
			if err := db.Exec(stmt).Error; err != nil {
				t.Fatalf("exec %q: %v", stmt, err)
			}
		}
	}

	src := NewPostgresSource(db)
	defer src.Close()

	t.Run("films newest first with genres", func(t *testing.T) {
		films, err := src.Films(ctx)
		if err != nil {
			t.Fatalf("Films() error = %v", err)
		}
		if got := filmIDs(films); !reflect.DeepEqual(got, []string{"alien", "heat", "matrix"}) {
			t.Fatalf("Films() = %v", got)
		}
		matrix := films[2]
		if !reflect.DeepEqual(matrix.Genres, []string{"Action", "Science Fiction"}) {
			t.Errorf("matrix genres = %v", matrix.Genres)
		}
		if matrix.Rating == nil || *matrix.Rating != 8.7 {
			t.Errorf("matrix rating = %v", matrix.Rating)
		}
		if matrix.TMDBID == nil || *matrix.TMDBID != 603 {
			t.Errorf("matrix tmdbId = %v", matrix.TMDBID)
		}
		if alien := films[0]; alien.Genres != nil || alien.Director != nil {
			t.Errorf("alien = %+v, want empty optional fields", alien)
		}
	})

	t.Run("tmdb lookup", func(t *testing.T) {
		id, err := src.FilmIDByTMDBID(ctx, 949)
		if err != nil || id != "heat" {
			t.Errorf("FilmIDByTMDBID(949) = %q, %v", id, err)
		}
		if _, err := src.FilmIDByTMDBID(ctx, 1); !errors.Is(err, ErrFilmNotFound) {
			t.Errorf("FilmIDByTMDBID(1) error = %v, want ErrFilmNotFound", err)
		}
	})

	t.Run("likes normalized", func(t *testing.T) {
		likes, err := src.AllLikes(ctx)
		if err != nil {
			t.Fatalf("AllLikes() error = %v", err)
		}
		if got := likes["alice"].Sorted(); !reflect.DeepEqual(got, []string{"heat", "matrix"}) {
			t.Errorf("alice = %v", got)
		}
		if got := likes["bob"].Sorted(); !reflect.DeepEqual(got, []string{"12345", "heat"}) {
			t.Errorf("bob = %v", got)
		}

		alice, err := src.UserLikes(ctx, "alice")
		if err != nil || len(alice) != 2 {
			t.Errorf("UserLikes(alice) = %v, %v", alice, err)
		}
		none, err := src.UserLikes(ctx, "nobody")
		if err != nil || len(none) != 0 {
			t.Errorf("UserLikes(nobody) = %v, %v", none, err)
		}
	})
}
