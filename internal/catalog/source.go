// Reelmatch - Film Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package catalog

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/tomtom215/reelmatch/internal/recommend"
)

var (
	// ErrFilmNotFound is returned when a lookup matches no film.
	ErrFilmNotFound = errors.New("film not found")

	// ErrSourceUnavailable is returned when the backing store is unreachable
	// or its circuit breaker is open.
	ErrSourceUnavailable = errors.New("catalog source unavailable")

	// ErrInvalidID is returned when an identifier cannot be stored.
	ErrInvalidID = errors.New("invalid identifier")
)

// Source is the read interface consumed by the rebuilder and the HTTP layer.
type Source interface {
	// Films returns every film, newest first.
	Films(ctx context.Context) ([]recommend.Film, error)

	// AllLikes returns the normalized liked film ids of every user with at
	// least one like.
	AllLikes(ctx context.Context) (recommend.LikeSet, error)

	// UserLikes returns the normalized liked film ids of one user. A user
	// without likes yields an empty slice and no error.
	UserLikes(ctx context.Context, userID string) ([]string, error)

	// FilmIDByTMDBID maps a TMDB id to a catalog id. It returns
	// ErrFilmNotFound when no film carries that TMDB id.
	FilmIDByTMDBID(ctx context.Context, tmdbID int) (string, error)
}

// TMDBResolver resolves TMDB ids to catalog ids.
type TMDBResolver interface {
	FilmIDByTMDBID(ctx context.Context, tmdbID int) (string, error)
}

// ParseTMDBID reports whether raw looks like a TMDB id and returns its value.
// Only non-empty strings of ASCII digits that fit in an int qualify.
func ParseTMDBID(raw string) (int, bool) {
	if raw == "" {
		return 0, false
	}
	for i := 0; i < len(raw); i++ {
		if raw[i] < '0' || raw[i] > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return n, true
}

// NormalizeLikeID maps a raw liked id to a catalog id. Numeric ids are looked
// up as TMDB ids; unknown TMDB ids and non-numeric ids are returned unchanged.
func NormalizeLikeID(ctx context.Context, r TMDBResolver, raw string) (string, error) {
	tmdbID, ok := ParseTMDBID(raw)
	if !ok {
		return raw, nil
	}
	id, err := r.FilmIDByTMDBID(ctx, tmdbID)
	if err != nil {
		if errors.Is(err, ErrFilmNotFound) {
			return raw, nil
		}
		return "", fmt.Errorf("resolve tmdb id %d: %w", tmdbID, err)
	}
	return id, nil
}

// tmdbIndex is a preloaded TMDB id lookup used for bulk normalization.
type tmdbIndex map[int]string

func (idx tmdbIndex) normalize(raw string) string {
	tmdbID, ok := ParseTMDBID(raw)
	if !ok {
		return raw
	}
	if id, found := idx[tmdbID]; found {
		return id
	}
	return raw
}

// addLike inserts a normalized like into likes.
func addLike(likes recommend.LikeSet, userID, filmID string) {
	set, ok := likes[userID]
	if !ok {
		set = recommend.NewSet()
		likes[userID] = set
	}
	set[filmID] = struct{}{}
}
