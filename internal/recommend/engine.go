// Reelmatch - Film Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package recommend

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// Note: This package has no dependencies on other internal packages. Data
// loading, metrics and transport live with the callers.

// Engine owns the current Snapshot and answers queries against it.
// It is safe for concurrent use. Queries never block on a rebuild.
type Engine struct {
	config *Config
	logger zerolog.Logger

	current atomic.Pointer[Snapshot]

	// publishMu orders generation assignment with the pointer swap so that
	// published generations only increase. Readers never take it.
	publishMu  sync.Mutex
	generation uint64

	queryCount     atomic.Int64
	emptyCount     atomic.Int64
	rebuildCount   atomic.Int64
	lastRebuildDur atomic.Int64
}

// Stats is a point-in-time view of engine counters.
type Stats struct {
	Ready                  bool          `json:"ready"`
	Generation             uint64        `json:"generation"`
	Films                  int           `json:"films"`
	Users                  int           `json:"users"`
	Queries                int64         `json:"queries"`
	EmptyResults           int64         `json:"empty_results"`
	Rebuilds               int64         `json:"rebuilds"`
	LastRebuildDuration    time.Duration `json:"last_rebuild_duration"`
	LastRebuiltAt          time.Time     `json:"last_rebuilt_at,omitempty"`
	ContentVocabulary      int           `json:"content_vocabulary"`
	CollaborativeItems     int           `json:"collaborative_items"`
	CollaborativeUserPairs int           `json:"collaborative_user_pairs"`
}

// NewEngine creates an engine in the Empty state.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Engine{
		config: cfg,
		logger: logger.With().Str("component", "recommend").Logger(),
	}, nil
}

// Config returns the engine configuration.
func (e *Engine) Config() *Config {
	return e.config
}

// Rebuild builds a fresh Snapshot from films and likes and publishes it with a
// single atomic swap. Queries already running keep the Snapshot they loaded.
// On error the current Snapshot is left in place.
func (e *Engine) Rebuild(films []Film, likes LikeSet) (*Snapshot, error) {
	snap, err := buildSnapshot(films, likes, e.config)
	if err != nil {
		return nil, err
	}

	e.publishMu.Lock()
	e.generation++
	snap.generation = e.generation
	e.current.Store(snap)
	e.publishMu.Unlock()

	e.rebuildCount.Add(1)
	e.lastRebuildDur.Store(int64(snap.buildTime))

	e.logger.Info().
		Uint64("generation", snap.generation).
		Int("films", snap.FilmCount()).
		Int("users", snap.UserCount()).
		Bool("content_index", snap.content != nil).
		Bool("item_index", snap.itemCF != nil).
		Bool("user_index", snap.userCF != nil).
		Dur("duration", snap.buildTime).
		Msg("snapshot published")

	return snap, nil
}

// Snapshot returns the current Snapshot, or nil before the first rebuild.
func (e *Engine) Snapshot() *Snapshot {
	return e.current.Load()
}

// Ready reports whether a Snapshot has been published.
func (e *Engine) Ready() bool {
	return e.current.Load() != nil
}

// RecommendForUser ranks films for a user given the films they liked.
// Liked films and films missing from the catalog are never returned.
func (e *Engine) RecommendForUser(userID string, liked []string, alg Algorithm, k int) (*Recommendations, error) {
	if !alg.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidAlgorithm, int(alg))
	}
	e.queryCount.Add(1)
	k = e.config.clampK(k)

	resp := &Recommendations{UserID: userID, Algorithm: alg.String(), Items: []Recommendation{}}

	snap := e.current.Load()
	if snap == nil {
		e.emptyCount.Add(1)
		return resp, nil
	}
	resp.Generation = snap.generation

	var pairs []Scored
	switch alg {
	case AlgorithmContent:
		pairs = snap.contentForUser(liked, k)
	case AlgorithmCollab, AlgorithmCollabItem:
		pairs = snap.itemForUser(liked, k)
	case AlgorithmCollabUser:
		pairs = snap.userForUser(userID, liked, k)
	case AlgorithmHybrid:
		pairs = blendOrFallback(
			snap.contentForUser(liked, k),
			snap.itemForUser(liked, k),
			e.config.HybridAlpha, k)
	}

	likedSet := NewSet(liked...)
	reason := userReason(alg)
	for _, p := range pairs {
		if likedSet.Has(p.ID) {
			continue
		}
		film, ok := snap.Film(p.ID)
		if !ok {
			continue
		}
		resp.Items = append(resp.Items, Recommendation{Film: film, Score: p.Score, Reason: reason})
	}

	e.logQuery("user", userID, alg, len(pairs), resp)
	return resp, nil
}

// SimilarItems ranks films similar to itemID. Films missing from the catalog
// are dropped; unknown seeds yield an empty list.
func (e *Engine) SimilarItems(itemID string, alg Algorithm, k int) (*Recommendations, error) {
	if !alg.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidAlgorithm, int(alg))
	}
	e.queryCount.Add(1)
	k = e.config.clampK(k)

	resp := &Recommendations{SeedFilmID: itemID, Algorithm: alg.String(), Items: []Recommendation{}}

	snap := e.current.Load()
	if snap == nil {
		e.emptyCount.Add(1)
		return resp, nil
	}
	resp.Generation = snap.generation

	var pairs []Scored
	switch alg {
	case AlgorithmContent:
		pairs = snap.contentSimilar(itemID, k)
	case AlgorithmCollab, AlgorithmCollabItem:
		pairs = snap.itemSimilar(itemID, k)
	case AlgorithmCollabUser:
		pairs = snap.userSimilar(itemID, k)
	case AlgorithmHybrid:
		pairs = blendOrFallback(
			snap.contentSimilar(itemID, k),
			snap.itemSimilar(itemID, k),
			e.config.HybridAlpha, k)
	}

	reason := similarReason(alg)
	for _, p := range pairs {
		film, ok := snap.Film(p.ID)
		if !ok {
			continue
		}
		resp.Items = append(resp.Items, Recommendation{Film: film, Score: p.Score, Reason: reason})
	}

	e.logQuery("similar", itemID, alg, len(pairs), resp)
	return resp, nil
}

func (e *Engine) logQuery(kind, subject string, alg Algorithm, candidates int, resp *Recommendations) {
	if len(resp.Items) == 0 {
		e.emptyCount.Add(1)
	}
	e.logger.Debug().
		Str("kind", kind).
		Str("subject", subject).
		Str("algorithm", alg.String()).
		Uint64("generation", resp.Generation).
		Int("candidates", candidates).
		Int("returned", len(resp.Items)).
		Msg("recommendation complete")
}

// Stats returns current counters and snapshot sizes.
func (e *Engine) Stats() Stats {
	st := Stats{
		Queries:             e.queryCount.Load(),
		EmptyResults:        e.emptyCount.Load(),
		Rebuilds:            e.rebuildCount.Load(),
		LastRebuildDuration: time.Duration(e.lastRebuildDur.Load()),
	}

	snap := e.current.Load()
	if snap == nil {
		return st
	}
	st.Ready = true
	st.Generation = snap.generation
	st.Films = snap.FilmCount()
	st.Users = snap.UserCount()
	st.LastRebuiltAt = snap.builtAt
	if snap.content != nil {
		st.ContentVocabulary = snap.content.VocabularySize()
	}
	if snap.itemCF != nil {
		st.CollaborativeItems = snap.itemCF.Len()
	}
	if snap.userCF != nil {
		st.CollaborativeUserPairs = snap.userCF.PairCount()
	}
	return st
}

func userReason(alg Algorithm) string {
	switch alg {
	case AlgorithmContent:
		return "similar to films you liked"
	case AlgorithmCollab, AlgorithmCollabItem:
		return "liked together with your films"
	case AlgorithmCollabUser:
		return "liked by similar viewers"
	case AlgorithmHybrid:
		return "matches your taste"
	}
	return ""
}

func similarReason(alg Algorithm) string {
	switch alg {
	case AlgorithmContent:
		return "similar story and creators"
	case AlgorithmCollab, AlgorithmCollabItem:
		return "often liked together"
	case AlgorithmCollabUser:
		return "liked by the same viewers"
	case AlgorithmHybrid:
		return "similar and often liked together"
	}
	return ""
}
