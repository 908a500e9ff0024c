// Reelmatch - Film Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package recommend

import (
	"sort"
)

// Film is a catalog record. It is treated as immutable for the lifetime of
// the Snapshot it was built into.
type Film struct {
	// ID is the unique film identifier.
	ID string `json:"id"`

	// Title is the display title.
	Title string `json:"title"`

	// Director is the credited director, if known.
	Director *string `json:"director,omitempty"`

	// Genre is the primary genre string kept for older clients.
	Genre *string `json:"genre,omitempty"`

	// Genres holds all normalized genre names.
	Genres []string `json:"genres,omitempty"`

	// ImageURL is the poster image.
	ImageURL *string `json:"imageUrl,omitempty"`

	// BackdropURL is the wide backdrop image.
	BackdropURL *string `json:"backdropUrl,omitempty"`

	// Overview is the plot synopsis.
	Overview *string `json:"overview,omitempty"`

	// Rating is the average rating on a 0-10 scale.
	Rating *float64 `json:"rating,omitempty"`

	// TrailerURL links to a trailer.
	TrailerURL *string `json:"trailerUrl,omitempty"`

	// Year is the release year.
	Year *int `json:"year,omitempty"`

	// TMDBID is the external TMDB identifier.
	TMDBID *int `json:"tmdbId,omitempty"`
}

// Set is a set of identifiers.
type Set map[string]struct{}

// NewSet builds a Set from ids, dropping duplicates.
func NewSet(ids ...string) Set {
	s := make(Set, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Has reports whether id is a member.
func (s Set) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// Len returns the number of members.
func (s Set) Len() int {
	return len(s)
}

// IntersectionLen counts members shared with other.
func (s Set) IntersectionLen(other Set) int {
	small, large := s, other
	if len(large) < len(small) {
		small, large = large, small
	}
	n := 0
	for id := range small {
		if large.Has(id) {
			n++
		}
	}
	return n
}

// Sorted returns the members in lexicographic order.
func (s Set) Sorted() []string {
	out := make([]string, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// LikeSet maps a user ID to the set of film IDs that user liked.
// It is replaced wholesale on every rebuild and never mutated in place.
type LikeSet map[string]Set

// Users returns user IDs in lexicographic order.
func (l LikeSet) Users() []string {
	out := make([]string, 0, len(l))
	for u := range l {
		out = append(out, u)
	}
	sort.Strings(out)
	return out
}

// Scored is an identifier paired with a non-negative score.
type Scored struct {
	ID    string
	Score float64
}

// pairKey is an unordered pair stored in canonical order (A < B).
type pairKey struct {
	A, B string
}

// canonicalPair orders a and b so the same unordered pair always maps to
// the same key.
func canonicalPair(a, b string) pairKey {
	if a < b {
		return pairKey{A: a, B: b}
	}
	return pairKey{A: b, B: a}
}

// Recommendation is one ranked entry in a response.
type Recommendation struct {
	// Film is the resolved catalog record.
	Film Film `json:"film"`

	// Score is the algorithm score. Scores are comparable only within a
	// single response.
	Score float64 `json:"score"`

	// Reason is a short human-readable explanation.
	Reason string `json:"reason,omitempty"`
}

// Recommendations is the result of a user or similar-items query.
type Recommendations struct {
	// UserID is set for user recommendation queries.
	UserID string `json:"userId,omitempty"`

	// SeedFilmID is set for similar-items queries.
	SeedFilmID string `json:"seedFilmId,omitempty"`

	// Algorithm is the algorithm name as requested.
	Algorithm string `json:"algorithm"`

	// Generation identifies the snapshot that produced the result.
	Generation uint64 `json:"generation"`

	// Items are ranked by score descending.
	Items []Recommendation `json:"items"`
}
