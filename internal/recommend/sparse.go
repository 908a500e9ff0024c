// Reelmatch - Film Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package recommend

import (
	"math"
	"sort"
)

// sparseVector holds non-zero weights keyed by term index. Indices are
// strictly increasing so dot products can merge in a single pass.
type sparseVector struct {
	idx []int
	val []float64
}

// newSparseVector builds a vector from a term->weight map, dropping zeros.
func newSparseVector(weights map[int]float64) sparseVector {
	idx := make([]int, 0, len(weights))
	for i, w := range weights {
		if w != 0 {
			idx = append(idx, i)
		}
	}
	sort.Ints(idx)

	val := make([]float64, len(idx))
	for n, i := range idx {
		val[n] = weights[i]
	}
	return sparseVector{idx: idx, val: val}
}

// nnz returns the number of stored weights.
func (v sparseVector) nnz() int {
	return len(v.idx)
}

// norm returns the L2 norm.
func (v sparseVector) norm() float64 {
	sum := 0.0
	for _, w := range v.val {
		sum += w * w
	}
	return math.Sqrt(sum)
}

// dot returns the inner product of v and o.
func (v sparseVector) dot(o sparseVector) float64 {
	sum := 0.0
	i, j := 0, 0
	for i < len(v.idx) && j < len(o.idx) {
		switch {
		case v.idx[i] == o.idx[j]:
			sum += v.val[i] * o.val[j]
			i++
			j++
		case v.idx[i] < o.idx[j]:
			i++
		default:
			j++
		}
	}
	return sum
}

// normalized returns v scaled to unit length. A zero vector is returned
// unchanged.
func (v sparseVector) normalized() sparseVector {
	n := v.norm()
	if n == 0 {
		return v
	}
	val := make([]float64, len(v.val))
	for i, w := range v.val {
		val[i] = w / n
	}
	return sparseVector{idx: v.idx, val: val}
}

// cosineSimilarity returns the normalized dot product, or 0 if either
// vector has zero length.
func cosineSimilarity(a, b sparseVector) float64 {
	na, nb := a.norm(), b.norm()
	if na == 0 || nb == 0 {
		return 0
	}
	return a.dot(b) / (na * nb)
}

// centroid returns the arithmetic mean of rows.
func centroid(rows []sparseVector) sparseVector {
	if len(rows) == 0 {
		return sparseVector{}
	}
	sum := make(map[int]float64)
	for _, r := range rows {
		for n, i := range r.idx {
			sum[i] += r.val[n]
		}
	}
	scale := 1 / float64(len(rows))
	for i := range sum {
		sum[i] *= scale
	}
	return newSparseVector(sum)
}
