// Reelmatch - Film Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package recommend

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestFilmText(t *testing.T) {
	longOverview := strings.Repeat("x", 250)

	tests := []struct {
		name string
		film Film
		want string
	}{
		{
			name: "title only",
			film: Film{ID: "1", Title: "Alien"},
			want: "Alien",
		},
		{
			name: "all scalar fields",
			film: Film{ID: "1", Title: "Star Wars", Director: ptr("Lucas"), Genre: ptr("Sci-Fi"), Year: ptr(1977)},
			want: "Star Wars Lucas Sci-Fi 1977",
		},
		{
			name: "genres take precedence over primary genre",
			film: Film{ID: "1", Title: "Heat", Genre: ptr("Crime"), Genres: []string{"Action", "Drama"}},
			want: "Heat Action Drama",
		},
		{
			name: "primary genre used when genres empty",
			film: Film{ID: "1", Title: "Heat", Genre: ptr("Crime"), Genres: []string{}},
			want: "Heat Crime",
		},
		{
			name: "overview included",
			film: Film{ID: "1", Title: "Up", Overview: ptr("A balloon house"), Year: ptr(2009)},
			want: "Up A balloon house 2009",
		},
		{
			name: "overview truncated to 200 characters",
			film: Film{ID: "1", Title: "Long", Overview: ptr(longOverview)},
			want: "Long " + strings.Repeat("x", 200),
		},
		{
			name: "empty optional strings contribute nothing",
			film: Film{ID: "1", Title: "Blank", Director: ptr(""), Genre: ptr(""), Overview: ptr("")},
			want: "Blank",
		},
		{
			name: "zero year skipped",
			film: Film{ID: "1", Title: "Undated", Year: ptr(0)},
			want: "Undated",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FilmText(tt.film); got != tt.want {
				t.Errorf("FilmText() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFilmText_OverviewCountsCharacters(t *testing.T) {
	overview := strings.Repeat("é", 250)
	got := FilmText(Film{ID: "1", Title: "T", Overview: ptr(overview)})

	tail := strings.TrimPrefix(got, "T ")
	if n := utf8.RuneCountInString(tail); n != 200 {
		t.Errorf("overview runes = %d, want 200", n)
	}
	if !utf8.ValidString(got) {
		t.Error("FilmText() produced invalid UTF-8")
	}
}

func TestPrefixRunes(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"hello", 3, "hel"},
		{"hello", 5, "hello"},
		{"hello", 10, "hello"},
		{"hello", 0, ""},
		{"日本語テキスト", 3, "日本語"},
	}

	for _, tt := range tests {
		if got := prefixRunes(tt.in, tt.n); got != tt.want {
			t.Errorf("prefixRunes(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
	}
}
