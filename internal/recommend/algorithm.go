// Reelmatch - Film Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package recommend

import (
	"errors"
	"fmt"
)

// Algorithm selects which index (or blend of indices) answers a query.
type Algorithm int

const (
	// AlgorithmContent ranks by TF-IDF similarity.
	AlgorithmContent Algorithm = iota + 1

	// AlgorithmCollab is an alias of AlgorithmCollabItem kept for clients that
	// ask for plain "collab".
	AlgorithmCollab

	// AlgorithmCollabItem ranks by item-item co-like similarity.
	AlgorithmCollabItem

	// AlgorithmCollabUser ranks by what similar users liked.
	AlgorithmCollabUser

	// AlgorithmHybrid blends content with item-item scores.
	AlgorithmHybrid
)

// Sentinel errors returned by the engine.
var (
	// ErrInvalidAlgorithm is returned for an unknown algorithm name or value.
	ErrInvalidAlgorithm = errors.New("invalid algorithm")

	// ErrDuplicateFilm is returned by Rebuild when the catalog repeats an ID.
	ErrDuplicateFilm = errors.New("duplicate film id")
)

var algorithmNames = map[Algorithm]string{
	AlgorithmContent:    "content",
	AlgorithmCollab:     "collab",
	AlgorithmCollabItem: "collab-item",
	AlgorithmCollabUser: "collab-user",
	AlgorithmHybrid:     "hybrid",
}

// AlgorithmNames lists every accepted algorithm name.
func AlgorithmNames() []string {
	return []string{"content", "collab", "collab-item", "collab-user", "hybrid"}
}

// ParseAlgorithm converts a name such as "collab-item" to an Algorithm.
func ParseAlgorithm(name string) (Algorithm, error) {
	for alg, n := range algorithmNames {
		if n == name {
			return alg, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidAlgorithm, name)
}

// String returns the wire name.
func (a Algorithm) String() string {
	if n, ok := algorithmNames[a]; ok {
		return n
	}
	return fmt.Sprintf("Algorithm(%d)", int(a))
}

// Valid reports whether a is a known algorithm.
func (a Algorithm) Valid() bool {
	_, ok := algorithmNames[a]
	return ok
}

// MarshalText implements encoding.TextMarshaler.
func (a Algorithm) MarshalText() ([]byte, error) {
	if !a.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidAlgorithm, int(a))
	}
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Algorithm) UnmarshalText(text []byte) error {
	parsed, err := ParseAlgorithm(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
