// Reelmatch - Film Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package recommend

import (
	"sort"
)

// topK sorts items by score descending and truncates to k. The sort is
// stable so ties keep the order in which they were produced.
func topK(items []Scored, k int) []Scored {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Score > items[j].Score
	})
	if k >= 0 && len(items) > k {
		items = items[:k]
	}
	return items
}

// truncate returns at most k items without reordering.
func truncate(items []Scored, k int) []Scored {
	if k >= 0 && len(items) > k {
		return items[:k]
	}
	return items
}

// accumulator sums scores per ID and remembers first-seen order so ranking
// is deterministic regardless of map iteration order.
type accumulator struct {
	order  []string
	scores map[string]float64
}

func newAccumulator(sizeHint int) *accumulator {
	return &accumulator{
		order:  make([]string, 0, sizeHint),
		scores: make(map[string]float64, sizeHint),
	}
}

func (a *accumulator) add(id string, score float64) {
	if _, seen := a.scores[id]; !seen {
		a.order = append(a.order, id)
	}
	a.scores[id] += score
}

func (a *accumulator) len() int {
	return len(a.order)
}

// ranked returns the accumulated scores as a top-k list.
func (a *accumulator) ranked(k int) []Scored {
	out := make([]Scored, len(a.order))
	for i, id := range a.order {
		out[i] = Scored{ID: id, Score: a.scores[id]}
	}
	return topK(out, k)
}
