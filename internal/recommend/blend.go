// Reelmatch - Film Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package recommend

// Blend merges two ranked lists as alpha*content + (1-alpha)*collab. An ID
// present in only one list receives only that list's contribution.
func Blend(content, collab []Scored, alpha float64, k int) []Scored {
	acc := newAccumulator(len(content) + len(collab))
	for _, s := range content {
		acc.add(s.ID, alpha*s.Score)
	}
	for _, s := range collab {
		acc.add(s.ID, (1-alpha)*s.Score)
	}
	return acc.ranked(k)
}

// blendOrFallback blends two lists, or returns whichever is non-empty when
// the other has nothing, so a single available signal is not scaled down.
func blendOrFallback(content, collab []Scored, alpha float64, k int) []Scored {
	switch {
	case len(content) > 0 && len(collab) > 0:
		return Blend(content, collab, alpha, k)
	case len(content) > 0:
		return truncate(content, k)
	default:
		return truncate(collab, k)
	}
}
