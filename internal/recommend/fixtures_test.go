// Reelmatch - Film Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package recommend

import (
	"math"
	"testing"
)

func ptr[T any](v T) *T {
	return &v
}

// classicCatalog returns two related science fiction films and one romantic
// comedy.
func classicCatalog() []Film {
	return []Film{
		{ID: "a", Title: "Star Wars", Director: ptr("Lucas"), Genre: ptr("Sci-Fi"), Year: ptr(1977)},
		{ID: "b", Title: "Empire Strikes Back", Director: ptr("Lucas"), Genre: ptr("Sci-Fi"), Year: ptr(1980)},
		{ID: "c", Title: "When Harry Met Sally", Director: ptr("Reiner"), Genre: ptr("RomCom"), Year: ptr(1989)},
	}
}

// triangleLikes returns three users who each liked a different pair of a, b, c.
func triangleLikes() LikeSet {
	return LikeSet{
		"u1": NewSet("a", "b"),
		"u2": NewSet("a", "c"),
		"u3": NewSet("b", "c"),
	}
}

// assertRanked checks the ordering and size invariants every ranked list
// must satisfy.
func assertRanked(t *testing.T, got []Scored, k int) {
	t.Helper()
	if len(got) > k {
		t.Errorf("len = %d, want <= %d", len(got), k)
	}
	for i, s := range got {
		if math.IsNaN(s.Score) || math.IsInf(s.Score, 0) {
			t.Errorf("item %d (%s) score = %v, want finite", i, s.ID, s.Score)
		}
		if i > 0 && s.Score > got[i-1].Score {
			t.Errorf("item %d (%s) score %v > previous %v", i, s.ID, s.Score, got[i-1].Score)
		}
	}
}

func ids(items []Scored) []string {
	out := make([]string, len(items))
	for i, s := range items {
		out[i] = s.ID
	}
	return out
}

func containsID(items []Scored, id string) bool {
	for _, s := range items {
		if s.ID == id {
			return true
		}
	}
	return false
}

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}
