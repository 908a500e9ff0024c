// Reelmatch - Film Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package recommend

import (
	"math"
	"sort"
)

// ItemIndex is an item-item collaborative index based on co-like counts:
//
//	sim(i, j) = coLike(i, j) / sqrt(likeCount(i) * likeCount(j))
//
// It is immutable after construction.
type ItemIndex struct {
	// items lists every film with a nonzero like count, sorted.
	items     []string
	likeCount map[string]int
	coLike    map[pairKey]int
	neighbors int
}

// NewItemIndex builds co-like counts from every user's like set. It returns
// nil for an empty like set.
func NewItemIndex(likes LikeSet) *ItemIndex {
	return newItemIndex(likes, DefaultConfig().ItemNeighbors)
}

func newItemIndex(likes LikeSet, neighbors int) *ItemIndex {
	if len(likes) == 0 {
		return nil
	}

	idx := &ItemIndex{
		likeCount: make(map[string]int),
		coLike:    make(map[pairKey]int),
		neighbors: neighbors,
	}

	for _, user := range likes.Users() {
		films := likes[user].Sorted()
		for a := range films {
			if idx.likeCount[films[a]] == 0 {
				idx.items = append(idx.items, films[a])
			}
			idx.likeCount[films[a]]++
			for b := a + 1; b < len(films); b++ {
				idx.coLike[canonicalPair(films[a], films[b])]++
			}
		}
	}
	sort.Strings(idx.items)
	return idx
}

// Len returns the number of films with at least one like.
func (x *ItemIndex) Len() int {
	return len(x.items)
}

// LikeCount returns how many users liked id.
func (x *ItemIndex) LikeCount(id string) int {
	return x.likeCount[id]
}

// CoLikes returns how many users liked both a and b.
func (x *ItemIndex) CoLikes(a, b string) int {
	if a == b {
		return 0
	}
	return x.coLike[canonicalPair(a, b)]
}

// Similarity returns sim(a, b). It is symmetric and zero for a == b, for
// pairs never liked together and for films without likes.
func (x *ItemIndex) Similarity(a, b string) float64 {
	co := x.CoLikes(a, b)
	if co == 0 {
		return 0
	}
	denom := math.Sqrt(float64(x.likeCount[a]) * float64(x.likeCount[b]))
	if denom == 0 {
		return 0
	}
	return float64(co) / denom
}

// SimilarItems scans every liked film and returns up to k with a positive
// similarity to id.
func (x *ItemIndex) SimilarItems(id string, k int) []Scored {
	out := []Scored{}
	for _, other := range x.items {
		if other == id {
			continue
		}
		if s := x.Similarity(id, other); s > 0 {
			out = append(out, Scored{ID: other, Score: s})
		}
	}
	return topK(out, k)
}

// RecommendForUser sums, over every liked seed, the similarity of each of
// the seed's nearest neighbours. Liked films are never candidates.
func (x *ItemIndex) RecommendForUser(liked []string, k int) []Scored {
	likedSet := NewSet(liked...)
	acc := newAccumulator(0)
	for _, seed := range likedSet.Sorted() {
		for _, cand := range x.SimilarItems(seed, x.neighbors) {
			if likedSet.Has(cand.ID) {
				continue
			}
			acc.add(cand.ID, cand.Score)
		}
	}
	return acc.ranked(k)
}
