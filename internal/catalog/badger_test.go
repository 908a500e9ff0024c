// Reelmatch - Film Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package catalog

import (
	"context"
	"errors"
	"reflect"
	"sort"
	"testing"
	"time"

	"github.com/tomtom215/reelmatch/internal/recommend"
)

func ptr[T any](v T) *T { return &v }

func newTestStore(t *testing.T) *BadgerStore {
	t.Helper()
	store, err := OpenBadgerStore("", true)
	if err != nil {
		t.Fatalf("OpenBadgerStore() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func filmIDs(films []recommend.Film) []string {
	out := make([]string, len(films))
	for i, f := range films {
		out[i] = f.ID
	}
	return out
}

func TestBadgerStore_FilmsNewestFirst(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	for i, id := range []string{"old", "middle", "new"} {
		film := recommend.Film{ID: id, Title: id}
		if err := store.PutFilm(ctx, film, base.Add(time.Duration(i)*time.Hour)); err != nil {
			t.Fatalf("PutFilm(%s) error = %v", id, err)
		}
	}

	films, err := store.Films(ctx)
	if err != nil {
		t.Fatalf("Films() error = %v", err)
	}
	want := []string{"new", "middle", "old"}
	if got := filmIDs(films); !reflect.DeepEqual(got, want) {
		t.Errorf("Films() = %v, want %v", got, want)
	}
}

func TestBadgerStore_PutFilmReplace(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	if err := store.PutFilm(ctx, recommend.Film{ID: "a", Title: "A", TMDBID: ptr(11)}, base); err != nil {
		t.Fatal(err)
	}
	if err := store.PutFilm(ctx, recommend.Film{ID: "b", Title: "B"}, base.Add(time.Hour)); err != nil {
		t.Fatal(err)
	}
	// Replacing keeps the position and moves the tmdb mapping.
	if err := store.PutFilm(ctx, recommend.Film{ID: "a", Title: "A2", TMDBID: ptr(12)}, base.Add(2*time.Hour)); err != nil {
		t.Fatal(err)
	}

	films, err := store.Films(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if got := filmIDs(films); !reflect.DeepEqual(got, []string{"b", "a"}) {
		t.Errorf("Films() = %v, want [b a]", got)
	}
	if films[1].Title != "A2" {
		t.Errorf("Title = %q, want A2", films[1].Title)
	}

	if _, err := store.FilmIDByTMDBID(ctx, 11); !errors.Is(err, ErrFilmNotFound) {
		t.Errorf("FilmIDByTMDBID(11) error = %v, want ErrFilmNotFound", err)
	}
	if id, err := store.FilmIDByTMDBID(ctx, 12); err != nil || id != "a" {
		t.Errorf("FilmIDByTMDBID(12) = %q, %v, want a", id, err)
	}
}

func TestBadgerStore_DeleteFilm(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	if err := store.PutFilm(ctx, recommend.Film{ID: "a", Title: "A", TMDBID: ptr(7)}, time.Time{}); err != nil {
		t.Fatal(err)
	}
	if err := store.DeleteFilm(ctx, "a"); err != nil {
		t.Fatalf("DeleteFilm() error = %v", err)
	}
	if err := store.DeleteFilm(ctx, "a"); !errors.Is(err, ErrFilmNotFound) {
		t.Errorf("second DeleteFilm() error = %v, want ErrFilmNotFound", err)
	}

	films, err := store.Films(ctx)
	if err != nil || len(films) != 0 {
		t.Errorf("Films() = %v, %v, want empty", films, err)
	}
	if _, err := store.FilmIDByTMDBID(ctx, 7); !errors.Is(err, ErrFilmNotFound) {
		t.Errorf("FilmIDByTMDBID(7) error = %v, want ErrFilmNotFound", err)
	}
}

func TestBadgerStore_Likes(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	if err := store.PutFilm(ctx, recommend.Film{ID: "matrix", Title: "The Matrix", TMDBID: ptr(603)}, time.Time{}); err != nil {
		t.Fatal(err)
	}

	likes := []struct{ user, film string }{
		{"alice", "matrix"},
		{"alice", "heat"},
		{"bob", "603"},   // tmdb id of matrix
		{"bob", "99999"}, // unknown tmdb id kept as is
		{"carol", "heat"},
	}
	for _, l := range likes {
		if err := store.PutLike(ctx, l.user, l.film); err != nil {
			t.Fatalf("PutLike(%s, %s) error = %v", l.user, l.film, err)
		}
	}

	all, err := store.AllLikes(ctx)
	if err != nil {
		t.Fatalf("AllLikes() error = %v", err)
	}
	want := map[string][]string{
		"alice": {"heat", "matrix"},
		"bob":   {"99999", "matrix"},
		"carol": {"heat"},
	}
	if len(all) != len(want) {
		t.Fatalf("AllLikes() users = %v, want %v", all.Users(), []string{"alice", "bob", "carol"})
	}
	for user, films := range want {
		if got := all[user].Sorted(); !reflect.DeepEqual(got, films) {
			t.Errorf("AllLikes()[%s] = %v, want %v", user, got, films)
		}
	}

	bob, err := store.UserLikes(ctx, "bob")
	if err != nil {
		t.Fatalf("UserLikes(bob) error = %v", err)
	}
	sort.Strings(bob)
	if !reflect.DeepEqual(bob, []string{"99999", "matrix"}) {
		t.Errorf("UserLikes(bob) = %v", bob)
	}

	if err := store.DeleteLike(ctx, "alice", "heat"); err != nil {
		t.Fatalf("DeleteLike() error = %v", err)
	}
	alice, err := store.UserLikes(ctx, "alice")
	if err != nil || !reflect.DeepEqual(alice, []string{"matrix"}) {
		t.Errorf("UserLikes(alice) = %v, %v, want [matrix]", alice, err)
	}

	nobody, err := store.UserLikes(ctx, "nobody")
	if err != nil || len(nobody) != 0 {
		t.Errorf("UserLikes(nobody) = %v, %v, want empty", nobody, err)
	}
}

func TestBadgerStore_UserPrefixIsolation(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	if err := store.PutLike(ctx, "al", "x"); err != nil {
		t.Fatal(err)
	}
	if err := store.PutLike(ctx, "alice", "y"); err != nil {
		t.Fatal(err)
	}

	got, err := store.UserLikes(ctx, "al")
	if err != nil || !reflect.DeepEqual(got, []string{"x"}) {
		t.Errorf("UserLikes(al) = %v, %v, want [x]", got, err)
	}
}

func TestBadgerStore_InvalidIDs(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	tests := []struct {
		name string
		fn   func() error
	}{
		{"empty film id", func() error { return store.PutFilm(ctx, recommend.Film{Title: "x"}, time.Time{}) }},
		{"empty user", func() error { return store.PutLike(ctx, "", "a") }},
		{"empty film", func() error { return store.PutLike(ctx, "u", "") }},
		{"colon in user", func() error { return store.PutLike(ctx, "a:b", "c") }},
		{"delete colon in user", func() error { return store.DeleteLike(ctx, "a:b", "c") }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.fn(); !errors.Is(err, ErrInvalidID) {
				t.Errorf("error = %v, want ErrInvalidID", err)
			}
		})
	}
}

func TestBadgerStore_CancelledContext(t *testing.T) {
	store := newTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := store.PutFilm(ctx, recommend.Film{ID: "a"}, time.Time{}); !errors.Is(err, context.Canceled) {
		t.Errorf("PutFilm() error = %v, want context.Canceled", err)
	}
	if err := store.PutLike(ctx, "u", "a"); !errors.Is(err, context.Canceled) {
		t.Errorf("PutLike() error = %v, want context.Canceled", err)
	}
}

func TestBadgerStore_OnDisk(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	store, err := OpenBadgerStore(dir, false)
	if err != nil {
		t.Fatalf("OpenBadgerStore() error = %v", err)
	}
	if err := store.PutFilm(ctx, recommend.Film{ID: "a", Title: "A", Genres: []string{"Drama"}}, time.Time{}); err != nil {
		t.Fatal(err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	reopened, err := OpenBadgerStore(dir, false)
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	defer reopened.Close()

	films, err := reopened.Films(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(films) != 1 || !reflect.DeepEqual(films[0].Genres, []string{"Drama"}) {
		t.Errorf("Films() after reopen = %+v", films)
	}
}
