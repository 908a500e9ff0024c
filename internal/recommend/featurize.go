// Reelmatch - Film Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package recommend

import (
	"strconv"
	"strings"
)

// defaultOverviewChars is how much of an overview FilmText keeps.
const defaultOverviewChars = 200

// FilmText builds the bag-of-words document for a film: title, director,
// genres (or the primary genre when no genres are set), the first 200
// characters of the overview and the release year. Absent fields are skipped.
//
//nolint:gocritic // hugeParam: Film passed by value, it is read-only here
func FilmText(f Film) string {
	return featurize(f, defaultOverviewChars)
}

//nolint:gocritic // hugeParam: Film passed by value, it is read-only here
func featurize(f Film, overviewChars int) string {
	parts := make([]string, 0, 4+len(f.Genres))
	parts = append(parts, f.Title)

	if f.Director != nil && *f.Director != "" {
		parts = append(parts, *f.Director)
	}

	if len(f.Genres) > 0 {
		parts = append(parts, f.Genres...)
	} else if f.Genre != nil && *f.Genre != "" {
		parts = append(parts, *f.Genre)
	}

	if f.Overview != nil && *f.Overview != "" {
		parts = append(parts, prefixRunes(*f.Overview, overviewChars))
	}

	// Year 0 is treated as unknown.
	if f.Year != nil && *f.Year != 0 {
		parts = append(parts, strconv.Itoa(*f.Year))
	}

	return strings.Join(parts, " ")
}

// prefixRunes returns the first n characters of s.
func prefixRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
