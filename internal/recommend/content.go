// Reelmatch - Film Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package recommend

// ContentIndex answers similarity queries over TF-IDF vectors built from
// film metadata. It is immutable after construction.
type ContentIndex struct {
	ids        []string
	rowByID    map[string]int
	rows       []sparseVector
	norms      []float64
	vocabulary int
}

// NewContentIndex featurizes films and fits a TF-IDF space over them. Rows
// follow catalog order. It returns nil for an empty catalog.
func NewContentIndex(films []Film) *ContentIndex {
	return newContentIndex(films, defaultOverviewChars)
}

func newContentIndex(films []Film, overviewChars int) *ContentIndex {
	if len(films) == 0 {
		return nil
	}

	docs := make([]string, len(films))
	for i := range films {
		docs[i] = featurize(films[i], overviewChars)
	}
	vec := FitVectorizer(docs)

	idx := &ContentIndex{
		ids:        make([]string, len(films)),
		rowByID:    make(map[string]int, len(films)),
		rows:       make([]sparseVector, len(films)),
		norms:      make([]float64, len(films)),
		vocabulary: vec.VocabularySize(),
	}
	for i := range films {
		idx.ids[i] = films[i].ID
		idx.rowByID[films[i].ID] = i
		idx.rows[i] = vec.Transform(docs[i])
		idx.norms[i] = idx.rows[i].norm()
	}
	return idx
}

// Len returns the number of indexed films.
func (c *ContentIndex) Len() int {
	return len(c.ids)
}

// VocabularySize returns the number of distinct terms in the index.
func (c *ContentIndex) VocabularySize() int {
	return c.vocabulary
}

// Similarity returns the cosine similarity between two indexed films, or 0
// if either is unknown.
func (c *ContentIndex) Similarity(a, b string) float64 {
	ra, okA := c.rowByID[a]
	rb, okB := c.rowByID[b]
	if !okA || !okB {
		return 0
	}
	return cosineSimilarity(c.rows[ra], c.rows[rb])
}

// SimilarItems returns up to k films most similar to id. The seed itself and
// films with non-positive similarity are never returned. Unknown ids yield
// an empty list.
func (c *ContentIndex) SimilarItems(id string, k int) []Scored {
	row, ok := c.rowByID[id]
	if !ok {
		return []Scored{}
	}
	return c.rank(c.rows[row], map[int]struct{}{row: {}}, k)
}

// RecommendForUser ranks films against the centroid of the liked films.
// Every liked film is excluded. Unknown liked ids are ignored; if none are
// known the result is empty.
func (c *ContentIndex) RecommendForUser(liked []string, k int) []Scored {
	exclude := make(map[int]struct{}, len(liked))
	rows := make([]sparseVector, 0, len(liked))
	for _, id := range liked {
		row, ok := c.rowByID[id]
		if !ok {
			continue
		}
		exclude[row] = struct{}{}
		rows = append(rows, c.rows[row])
	}
	if len(rows) == 0 {
		return []Scored{}
	}
	return c.rank(centroid(rows), exclude, k)
}

// rank scores every row against query, skipping excluded rows, and returns
// the top k with a positive score.
func (c *ContentIndex) rank(query sparseVector, exclude map[int]struct{}, k int) []Scored {
	qn := query.norm()
	if qn == 0 {
		return []Scored{}
	}

	var out []Scored
	for i, row := range c.rows {
		if _, skip := exclude[i]; skip {
			continue
		}
		if c.norms[i] == 0 {
			continue
		}
		sim := query.dot(row) / (qn * c.norms[i])
		if sim > 0 {
			out = append(out, Scored{ID: c.ids[i], Score: sim})
		}
	}
	return topK(out, k)
}
