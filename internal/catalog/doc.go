// Reelmatch - Film Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

/*
Package catalog provides the film catalog and like data that recommendation
snapshots are built from.

# Sources

Every backend implements Source:

  - BadgerStore: embedded BadgerDB store, used for local and single-node
    deployments. It can be seeded from a YAML or JSON file (LoadSeedFile).
  - PostgresSource: read-only view over the application database (films,
    film_genres, genres, user_film_likes), accessed through GORM.
  - BreakerSource: wraps any Source with a circuit breaker so a failing
    database fails fast instead of stalling rebuilds and requests.

# Like Normalization

Likes may be recorded against TMDB ids instead of catalog ids. A liked id made
only of ASCII digits is resolved through the tmdbId column; when no film
matches, the raw value is kept so the like still counts towards user
similarity. See NormalizeLikeID.

# Ordering

Films returns films newest first. Index construction depends only on the set
of films, but the order is kept stable so rebuilds from the same data produce
identical snapshots.
*/
package catalog
