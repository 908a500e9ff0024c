// Reelmatch - Film Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package recommend implements the hybrid film recommendation core.
//
// # Architecture
//
// The engine combines three independently built indices:
//
//   - Content: TF-IDF vectors over film metadata, cosine similarity
//   - Item-Item CF: co-like counts normalized by like popularity
//   - User-User CF: like-set overlap between users
//
// A Blend step merges a content list with a collaborative list using the
// configured hybrid alpha (alpha*content + (1-alpha)*collab).
//
// # Snapshots
//
// All three indices, together with the catalog they were built from, live in
// one immutable Snapshot. Rebuild constructs a new Snapshot off to the side and
// publishes it with a single atomic pointer swap. Queries load the pointer once
// and work against that Snapshot until they return, so a query never observes
// a content index from one rebuild and a collaborative index from another.
// The read path takes no locks.
//
// An index is nil when its input was empty. A nil index contributes no
// candidates and is never an error.
//
// # Usage
//
//	engine, err := recommend.NewEngine(recommend.DefaultConfig(), logger)
//	if err != nil {
//	    return err
//	}
//
//	if _, err := engine.Rebuild(films, likes); err != nil {
//	    return err
//	}
//
//	recs, err := engine.RecommendForUser("u1", liked, recommend.AlgorithmHybrid, 20)
//
// # Scale
//
// Collaborative tables are built with O(n^2) pairwise scans and similarity
// queries are linear scans. This is fine for catalogs and user bases in the
// low thousands and is not meant to go beyond that without an indexing change.
package recommend
