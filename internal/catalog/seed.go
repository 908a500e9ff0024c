// Reelmatch - Film Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package catalog

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/knadh/koanf/parsers/yaml"

	"github.com/tomtom215/reelmatch/internal/recommend"
)

// Seed is the content of a catalog seed file.
//
//	films:
//	  - id: matrix
//	    title: The Matrix
//	    genres: [Action, Science Fiction]
//	    tmdbId: 603
//	likes:
//	  alice: [matrix, "550"]
//
// Films are listed newest first. Likes may reference TMDB ids.
type Seed struct {
	Films []SeedFilm          `json:"films"`
	Likes map[string][]string `json:"likes"`
}

// SeedFilm is a film with an optional creation time.
type SeedFilm struct {
	recommend.Film
	CreatedAt *time.Time `json:"createdAt,omitempty"`
}

// LoadSeedFile reads a YAML (.yaml, .yml) or JSON (.json) seed file.
func LoadSeedFile(path string) (*Seed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		return ParseSeedJSON(data)
	case ".yaml", ".yml":
		return ParseSeedYAML(data)
	default:
		return nil, fmt.Errorf("unsupported seed file extension %q", ext)
	}
}

// ParseSeedJSON decodes a JSON seed document.
func ParseSeedJSON(data []byte) (*Seed, error) {
	var seed Seed
	if err := json.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("decode seed json: %w", err)
	}
	return &seed, nil
}

// ParseSeedYAML decodes a YAML seed document. The YAML tree is re-encoded as
// JSON so both formats share the same field names.
func ParseSeedYAML(data []byte) (*Seed, error) {
	tree, err := yaml.Parser().Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("decode seed yaml: %w", err)
	}
	encoded, err := json.Marshal(tree)
	if err != nil {
		return nil, fmt.Errorf("re-encode seed yaml: %w", err)
	}
	return ParseSeedJSON(encoded)
}

// ImportResult summarizes a seed import.
type ImportResult struct {
	Films int
	Likes int
}

// ImportSeed writes seed into store. Films without a creation time are
// stamped relative to now so the file order is kept as newest first.
// Importing the same seed twice is idempotent.
func ImportSeed(ctx context.Context, store *BadgerStore, seed *Seed) (ImportResult, error) {
	var result ImportResult
	if seed == nil {
		return result, nil
	}

	now := time.Now().UTC()
	for i, sf := range seed.Films {
		createdAt := now.Add(-time.Duration(i) * time.Millisecond)
		if sf.CreatedAt != nil {
			createdAt = *sf.CreatedAt
		}
		if err := store.PutFilm(ctx, sf.Film, createdAt); err != nil {
			return result, fmt.Errorf("import film %q: %w", sf.ID, err)
		}
		result.Films++
	}

	for userID, filmIDs := range seed.Likes {
		for _, filmID := range filmIDs {
			if err := store.PutLike(ctx, userID, filmID); err != nil {
				return result, fmt.Errorf("import like %s/%s: %w", userID, filmID, err)
			}
			result.Likes++
		}
	}
	return result, nil
}
