// Reelmatch - Film Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/reelmatch/internal/cache"
	"github.com/tomtom215/reelmatch/internal/catalog"
	"github.com/tomtom215/reelmatch/internal/metrics"
	"github.com/tomtom215/reelmatch/internal/recommend"
	"github.com/tomtom215/reelmatch/internal/validation"
)

// Default algorithms per endpoint.
const (
	defaultUserAlgorithm    = recommend.AlgorithmHybrid
	defaultSimilarAlgorithm = recommend.AlgorithmContent
)

// UserRecommendations handles GET /recommendations/user/{userID}.
//
// Query: algorithm (default hybrid), k (default from config).
// Returns 404 when the user has not liked anything yet.
func (h *Handler) UserRecommendations(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	path := validation.UserPath{UserID: chi.URLParam(r, "userID")}
	alg, k, ok := h.parseQuery(rw, r, &path, defaultUserAlgorithm)
	if !ok {
		return
	}

	liked, err := h.catalog.UserLikes(r.Context(), path.UserID)
	if err != nil {
		h.catalogError(rw, err)
		return
	}
	if len(liked) == 0 {
		rw.Error(http.StatusNotFound, ErrCodeNotFound, "user has no likes yet", nil, nil)
		return
	}

	snap := h.engine.Snapshot()
	key := cache.ResponseKey(generationOf(snap), cache.KindUser, cache.UserSubject(path.UserID, liked), alg.String(), k)
	if recs, hit := h.cacheGet(r, snap, key); hit {
		rw.Cached(recs)
		return
	}

	recs, err := h.engine.RecommendForUser(path.UserID, liked, alg, k)
	if err != nil {
		rw.Error(http.StatusInternalServerError, ErrCodeInternalError, "failed to compute recommendations", nil, err)
		return
	}
	metrics.RecordRecommendQuery(cache.KindUser, alg.String(), len(recs.Items))
	h.cacheSet(r, snap, key, recs)
	rw.Success(recs)
}

// SimilarFilms handles GET /recommendations/similar/{filmID}.
//
// A numeric filmID is first resolved as a TMDB id; when no film carries that
// TMDB id the value is used as a film id unchanged.
func (h *Handler) SimilarFilms(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	path := validation.FilmPath{FilmID: chi.URLParam(r, "filmID")}
	alg, k, ok := h.parseQuery(rw, r, &path, defaultSimilarAlgorithm)
	if !ok {
		return
	}

	filmID := path.FilmID
	if tmdbID, isTMDB := catalog.ParseTMDBID(filmID); isTMDB {
		resolved, err := h.catalog.FilmIDByTMDBID(r.Context(), tmdbID)
		switch {
		case err == nil:
			filmID = resolved
		case errors.Is(err, catalog.ErrFilmNotFound):
		default:
			h.catalogError(rw, err)
			return
		}
	}

	snap := h.engine.Snapshot()
	key := cache.ResponseKey(generationOf(snap), cache.KindSimilar, filmID, alg.String(), k)
	if recs, hit := h.cacheGet(r, snap, key); hit {
		rw.Cached(recs)
		return
	}

	recs, err := h.engine.SimilarItems(filmID, alg, k)
	if err != nil {
		rw.Error(http.StatusInternalServerError, ErrCodeInternalError, "failed to compute similar films", nil, err)
		return
	}
	metrics.RecordRecommendQuery(cache.KindSimilar, alg.String(), len(recs.Items))
	h.cacheSet(r, snap, key, recs)
	rw.Success(recs)
}

// parseQuery validates the path struct and the algorithm/k query parameters.
// It writes the 400 response itself and returns ok=false on failure.
func (h *Handler) parseQuery(rw *ResponseWriter, r *http.Request, path interface{}, defaultAlg recommend.Algorithm) (recommend.Algorithm, int, bool) {
	if verr := validation.ValidateStruct(path); verr != nil {
		apiErr := verr.ToAPIError()
		rw.Error(http.StatusBadRequest, apiErr.Code, apiErr.Message, apiErr.Details, nil)
		return 0, 0, false
	}

	values := r.URL.Query()
	q := validation.RecommendationQuery{Algorithm: values.Get("algorithm")}
	if raw := values.Get("k"); raw != "" {
		k, err := strconv.Atoi(raw)
		if err != nil {
			rw.Error(http.StatusBadRequest, ErrCodeValidation, "k must be an integer", map[string]interface{}{"field": "k", "value": raw}, nil)
			return 0, 0, false
		}
		q.K = &k
	}
	if verr := validation.ValidateStruct(&q); verr != nil {
		apiErr := verr.ToAPIError()
		rw.Error(http.StatusBadRequest, apiErr.Code, apiErr.Message, apiErr.Details, nil)
		return 0, 0, false
	}

	alg := defaultAlg
	if q.Algorithm != "" {
		parsed, err := recommend.ParseAlgorithm(q.Algorithm)
		if err != nil {
			rw.Error(http.StatusBadRequest, ErrCodeValidation, err.Error(), nil, nil)
			return 0, 0, false
		}
		alg = parsed
	}

	k := h.engine.Config().Limits.DefaultK
	if q.K != nil {
		k = *q.K
	}
	return alg, k, true
}

func (h *Handler) catalogError(rw *ResponseWriter, err error) {
	switch {
	case errors.Is(err, catalog.ErrSourceUnavailable):
		rw.Error(http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "catalog temporarily unavailable", nil, err)
	case errors.Is(err, catalog.ErrInvalidID):
		rw.Error(http.StatusBadRequest, ErrCodeBadRequest, "invalid identifier", nil, nil)
	default:
		rw.Error(http.StatusInternalServerError, ErrCodeInternalError, "catalog lookup failed", nil, err)
	}
}

func generationOf(snap *recommend.Snapshot) uint64 {
	if snap == nil {
		return 0
	}
	return snap.Generation()
}

func (h *Handler) cacheGet(r *http.Request, snap *recommend.Snapshot, key string) (*recommend.Recommendations, bool) {
	if h.cache == nil || snap == nil {
		return nil, false
	}
	return h.cache.Get(r.Context(), key)
}

// cacheSet stores recs only when it came from the snapshot the key names. A
// rebuild that lands between Snapshot() and the query would otherwise file a
// newer response under the older generation.
func (h *Handler) cacheSet(r *http.Request, snap *recommend.Snapshot, key string, recs *recommend.Recommendations) {
	if h.cache == nil || snap == nil || recs.Generation != snap.Generation() {
		return
	}
	h.cache.Set(r.Context(), key, recs)
}
