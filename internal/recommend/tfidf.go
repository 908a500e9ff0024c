// Reelmatch - Film Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package recommend

import (
	"math"
	"regexp"
	"sort"
	"strings"
)

// tokenPattern matches runs of two or more word characters.
var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}\p{Mn}_]{2,}`)

// Tokenize lowercases text, extracts word tokens of length two or more and
// drops English stop words.
func Tokenize(text string) []string {
	raw := tokenPattern.FindAllString(strings.ToLower(text), -1)
	tokens := raw[:0]
	for _, tok := range raw {
		if _, stop := englishStopWords[tok]; stop {
			continue
		}
		tokens = append(tokens, tok)
	}
	return tokens
}

// Vectorizer turns documents into L2-normalized TF-IDF vectors.
//
// Term frequency is the raw count. Inverse document frequency is smoothed as
// ln((1+n)/(1+df)) + 1, so terms present in every document keep a weight of 1
// and no term is ever discarded for being too common.
type Vectorizer struct {
	vocab map[string]int
	idf   []float64
}

// FitVectorizer learns the vocabulary and IDF weights of docs. Every term that
// appears in at least one document is kept.
func FitVectorizer(docs []string) *Vectorizer {
	df := make(map[string]int)
	for _, doc := range docs {
		seen := make(map[string]struct{})
		for _, tok := range Tokenize(doc) {
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			df[tok]++
		}
	}

	terms := make([]string, 0, len(df))
	for term := range df {
		terms = append(terms, term)
	}
	sort.Strings(terms)

	n := float64(len(docs))
	v := &Vectorizer{
		vocab: make(map[string]int, len(terms)),
		idf:   make([]float64, len(terms)),
	}
	for i, term := range terms {
		v.vocab[term] = i
		v.idf[i] = math.Log((1+n)/(1+float64(df[term]))) + 1
	}
	return v
}

// VocabularySize returns the number of distinct terms.
func (v *Vectorizer) VocabularySize() int {
	return len(v.vocab)
}

// Transform vectorizes doc. Terms outside the fitted vocabulary are ignored.
func (v *Vectorizer) Transform(doc string) sparseVector {
	counts := make(map[int]float64)
	for _, tok := range Tokenize(doc) {
		if i, ok := v.vocab[tok]; ok {
			counts[i]++
		}
	}
	for i := range counts {
		counts[i] *= v.idf[i]
	}
	return newSparseVector(counts).normalized()
}
