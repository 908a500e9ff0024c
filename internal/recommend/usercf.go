// Reelmatch - Film Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package recommend

import (
	"math"
)

// UserIndex is a user-user collaborative index. Two users are similar when
// their like sets overlap:
//
//	sim(u, v) = |likes(u) ∩ likes(v)| / sqrt(|likes(u)| * |likes(v)|)
//
// Only pairs with a nonzero overlap are stored. It is immutable after
// construction.
type UserIndex struct {
	likes     LikeSet
	users     []string
	sims      map[pairKey]float64
	adjacent  map[string][]Scored
	neighbors int
}

// NewUserIndex computes pairwise similarities between every pair of users
// with a non-empty like set. It returns nil for an empty like set.
func NewUserIndex(likes LikeSet) *UserIndex {
	return newUserIndex(likes, DefaultConfig().UserNeighbors)
}

func newUserIndex(likes LikeSet, neighbors int) *UserIndex {
	if len(likes) == 0 {
		return nil
	}

	idx := &UserIndex{
		likes:     likes,
		users:     likes.Users(),
		sims:      make(map[pairKey]float64),
		adjacent:  make(map[string][]Scored),
		neighbors: neighbors,
	}

	for i, u := range idx.users {
		lu := likes[u]
		if lu.Len() == 0 {
			continue
		}
		for _, v := range idx.users[i+1:] {
			lv := likes[v]
			if lv.Len() == 0 {
				continue
			}
			shared := lu.IntersectionLen(lv)
			if shared == 0 {
				continue
			}
			sim := float64(shared) / math.Sqrt(float64(lu.Len())*float64(lv.Len()))
			idx.sims[canonicalPair(u, v)] = sim
			idx.adjacent[u] = append(idx.adjacent[u], Scored{ID: v, Score: sim})
			idx.adjacent[v] = append(idx.adjacent[v], Scored{ID: u, Score: sim})
		}
	}
	return idx
}

// Len returns the number of users in the index.
func (x *UserIndex) Len() int {
	return len(x.users)
}

// PairCount returns how many user pairs have a stored similarity.
func (x *UserIndex) PairCount() int {
	return len(x.sims)
}

// Similarity returns sim(u, v). A user is fully similar to itself.
func (x *UserIndex) Similarity(u, v string) float64 {
	if u == v {
		return 1.0
	}
	return x.sims[canonicalPair(u, v)]
}

// SimilarUsers returns up to k users ranked by similarity to user.
func (x *UserIndex) SimilarUsers(user string, k int) []Scored {
	if _, ok := x.likes[user]; !ok {
		return []Scored{}
	}
	adj := x.adjacent[user]
	out := make([]Scored, 0, len(adj))
	for _, n := range adj {
		if n.Score > 0 {
			out = append(out, n)
		}
	}
	return topK(out, k)
}

// RecommendForUser adds each neighbour's similarity to every film that
// neighbour liked and the caller has not. Unknown users get no results.
func (x *UserIndex) RecommendForUser(user string, liked []string, k int) []Scored {
	if _, ok := x.likes[user]; !ok {
		return []Scored{}
	}

	likedSet := NewSet(liked...)
	acc := newAccumulator(0)
	for _, n := range x.SimilarUsers(user, x.neighbors) {
		for _, film := range x.likes[n.ID].Sorted() {
			if likedSet.Has(film) {
				continue
			}
			acc.add(film, n.Score)
		}
	}
	return acc.ranked(k)
}

// SimilarItems counts, for every film other than id, how many of the users
// who liked id also liked it. Counts are not weighted by user similarity.
func (x *UserIndex) SimilarItems(id string, k int) []Scored {
	acc := newAccumulator(0)
	for _, u := range x.users {
		films := x.likes[u]
		if !films.Has(id) {
			continue
		}
		for _, film := range films.Sorted() {
			if film == id {
				continue
			}
			acc.add(film, 1.0)
		}
	}
	if acc.len() == 0 {
		return []Scored{}
	}
	return acc.ranked(k)
}
