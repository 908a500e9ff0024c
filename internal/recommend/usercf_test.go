// Reelmatch - Film Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package recommend

import (
	"math"
	"testing"
)

func TestNewUserIndex_Empty(t *testing.T) {
	if idx := NewUserIndex(nil); idx != nil {
		t.Errorf("NewUserIndex(nil) = %v, want nil", idx)
	}
}

func userFixture() LikeSet {
	return LikeSet{
		"alice": NewSet("a", "b", "c"),
		"bob":   NewSet("a", "b", "d"),
		"carol": NewSet("c", "e"),
		"dave":  NewSet("z"),
		"erin":  NewSet(),
	}
}

func TestUserIndex_Similarity(t *testing.T) {
	idx := NewUserIndex(userFixture())

	tests := []struct {
		name string
		u, v string
		want float64
	}{
		{"overlap of two", "alice", "bob", 2 / math.Sqrt(9)},
		{"symmetric", "bob", "alice", 2 / math.Sqrt(9)},
		{"overlap of one", "alice", "carol", 1 / math.Sqrt(6)},
		{"no overlap", "alice", "dave", 0},
		{"empty like set", "alice", "erin", 0},
		{"self", "alice", "alice", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := idx.Similarity(tt.u, tt.v); !approxEqual(got, tt.want) {
				t.Errorf("Similarity(%s, %s) = %v, want %v", tt.u, tt.v, got, tt.want)
			}
		})
	}

	if idx.PairCount() != 2 {
		t.Errorf("PairCount() = %d, want 2", idx.PairCount())
	}
}

func TestUserIndex_SimilarUsers(t *testing.T) {
	idx := NewUserIndex(userFixture())

	tests := []struct {
		name string
		user string
		k    int
		want []string
	}{
		{"ranked by overlap", "alice", 5, []string{"bob", "carol"}},
		{"truncated", "alice", 1, []string{"bob"}},
		{"no neighbours", "dave", 5, nil},
		{"unknown user", "mallory", 5, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := idx.SimilarUsers(tt.user, tt.k)
			assertRanked(t, got, tt.k)
			if len(got) != len(tt.want) {
				t.Fatalf("SimilarUsers(%s) = %v, want %v", tt.user, ids(got), tt.want)
			}
			for i := range tt.want {
				if got[i].ID != tt.want[i] {
					t.Errorf("SimilarUsers(%s)[%d] = %s, want %s", tt.user, i, got[i].ID, tt.want[i])
				}
			}
		})
	}
}

func TestUserIndex_RecommendForUser(t *testing.T) {
	idx := NewUserIndex(userFixture())

	t.Run("weights neighbour likes by similarity", func(t *testing.T) {
		got := idx.RecommendForUser("alice", []string{"a", "b", "c"}, 5)
		assertRanked(t, got, 5)
		if len(got) != 2 {
			t.Fatalf("RecommendForUser(alice) = %v, want [d e]", ids(got))
		}
		if got[0].ID != "d" || !approxEqual(got[0].Score, 2.0/3.0) {
			t.Errorf("first = %v, want d with 2/3", got[0])
		}
		if got[1].ID != "e" || !approxEqual(got[1].Score, 1/math.Sqrt(6)) {
			t.Errorf("second = %v, want e with 1/sqrt(6)", got[1])
		}
	})

	t.Run("liked list filters candidates", func(t *testing.T) {
		got := idx.RecommendForUser("alice", []string{"a", "b", "c", "d"}, 5)
		if containsID(got, "d") {
			t.Errorf("liked film d returned: %v", ids(got))
		}
	})

	t.Run("unknown user", func(t *testing.T) {
		if got := idx.RecommendForUser("mallory", []string{"a"}, 5); len(got) != 0 {
			t.Errorf("RecommendForUser(mallory) = %v, want empty", got)
		}
	})
}

func TestUserIndex_RecommendForUser_NeighbourLimit(t *testing.T) {
	likes := LikeSet{"me": NewSet("seed")}
	for i := 0; i < 3; i++ {
		likes[string(rune('p'+i))] = NewSet("seed", string(rune('x'+i)))
	}
	idx := newUserIndex(likes, 1)

	got := idx.RecommendForUser("me", []string{"seed"}, 10)
	if len(got) != 1 {
		t.Errorf("RecommendForUser with 1 neighbour = %v, want a single candidate", ids(got))
	}
}

func TestUserIndex_SimilarItems(t *testing.T) {
	idx := NewUserIndex(userFixture())

	got := idx.SimilarItems("a", 10)
	assertRanked(t, got, 10)

	want := map[string]float64{"b": 2, "c": 1, "d": 1}
	if len(got) != len(want) {
		t.Fatalf("SimilarItems(a) = %v, want %v", got, want)
	}
	for _, s := range got {
		if want[s.ID] != s.Score {
			t.Errorf("SimilarItems(a) %s = %v, want %v", s.ID, s.Score, want[s.ID])
		}
	}
	if got[0].ID != "b" {
		t.Errorf("first = %s, want b", got[0].ID)
	}

	if empty := idx.SimilarItems("nobody-liked-this", 5); len(empty) != 0 {
		t.Errorf("SimilarItems(unknown) = %v, want empty", empty)
	}
}
