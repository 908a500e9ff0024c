// Reelmatch - Film Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package recommend

import (
	"math"
	"reflect"
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "lowercases and splits on punctuation",
			text: "Empire Strikes Back, Sci-Fi 1980",
			want: []string{"empire", "strikes", "sci", "fi", "1980"},
		},
		{
			name: "drops single character tokens",
			text: "A B c dd",
			want: []string{"dd"},
		},
		{
			name: "drops stop words",
			text: "When Harry Met Sally",
			want: []string{"harry", "met", "sally"},
		},
		{
			name: "keeps unicode letters",
			text: "Amélie Poulain",
			want: []string{"amélie", "poulain"},
		},
		{
			name: "underscores are word characters",
			text: "snake_case",
			want: []string{"snake_case"},
		},
		{
			name: "only stop words",
			text: "the and of",
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.text)
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Tokenize(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestFitVectorizer_SmoothedIDF(t *testing.T) {
	docs := []string{"alpha beta", "alpha gamma", "alpha beta delta"}
	v := FitVectorizer(docs)

	if v.VocabularySize() != 4 {
		t.Fatalf("VocabularySize() = %d, want 4", v.VocabularySize())
	}

	tests := []struct {
		term string
		df   int
	}{
		{"alpha", 3},
		{"beta", 2},
		{"gamma", 1},
		{"delta", 1},
	}
	for _, tt := range tests {
		i, ok := v.vocab[tt.term]
		if !ok {
			t.Errorf("term %q missing from vocabulary", tt.term)
			continue
		}
		want := math.Log(4/float64(1+tt.df)) + 1
		if !approxEqual(v.idf[i], want) {
			t.Errorf("idf(%q) = %v, want %v", tt.term, v.idf[i], want)
		}
	}
}

func TestVectorizer_Transform(t *testing.T) {
	v := FitVectorizer([]string{"alpha beta", "alpha gamma"})

	t.Run("rows are unit length", func(t *testing.T) {
		row := v.Transform("alpha beta beta")
		if n := row.norm(); !approxEqual(n, 1) {
			t.Errorf("norm = %v, want 1", n)
		}
	})

	t.Run("unknown terms ignored", func(t *testing.T) {
		row := v.Transform("omega")
		if row.nnz() != 0 {
			t.Errorf("nnz = %d, want 0", row.nnz())
		}
	})

	t.Run("term counts weight the row", func(t *testing.T) {
		row := v.Transform("beta beta gamma")
		beta, gamma := v.vocab["beta"], v.vocab["gamma"]
		var wb, wg float64
		for n, i := range row.idx {
			switch i {
			case beta:
				wb = row.val[n]
			case gamma:
				wg = row.val[n]
			}
		}
		// beta and gamma share an idf, so the weight ratio is the count ratio.
		if !approxEqual(wb/wg, 2) {
			t.Errorf("beta/gamma weight ratio = %v, want 2", wb/wg)
		}
	})
}

func TestCosineSimilarity(t *testing.T) {
	a := newSparseVector(map[int]float64{0: 1, 2: 2})
	b := newSparseVector(map[int]float64{0: 3, 1: 1, 2: 1})
	zero := sparseVector{}

	if got, want := cosineSimilarity(a, b), cosineSimilarity(b, a); !approxEqual(got, want) {
		t.Errorf("cosine not symmetric: %v vs %v", got, want)
	}
	if got := cosineSimilarity(a, a); !approxEqual(got, 1) {
		t.Errorf("cosine(a, a) = %v, want 1", got)
	}
	if got := cosineSimilarity(a, zero); got != 0 {
		t.Errorf("cosine(a, 0) = %v, want 0", got)
	}
	want := (1*3 + 2*1) / (math.Sqrt(5) * math.Sqrt(11))
	if got := cosineSimilarity(a, b); !approxEqual(got, want) {
		t.Errorf("cosine(a, b) = %v, want %v", got, want)
	}
}

func TestCentroid(t *testing.T) {
	rows := []sparseVector{
		newSparseVector(map[int]float64{0: 1}),
		newSparseVector(map[int]float64{0: 1, 1: 2}),
	}
	c := centroid(rows)

	want := map[int]float64{0: 1, 1: 1}
	if c.nnz() != len(want) {
		t.Fatalf("nnz = %d, want %d", c.nnz(), len(want))
	}
	for n, i := range c.idx {
		if !approxEqual(c.val[n], want[i]) {
			t.Errorf("centroid[%d] = %v, want %v", i, c.val[n], want[i])
		}
	}

	if empty := centroid(nil); empty.nnz() != 0 {
		t.Errorf("centroid(nil) nnz = %d, want 0", empty.nnz())
	}
}
