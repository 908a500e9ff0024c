// Reelmatch - Film Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package validation validates API request parameters with go-playground/validator v10.
//
// A single validator instance is shared process-wide; it caches struct metadata
// and is safe for concurrent use. Field names in messages come from the `query`
// struct tag so clients see the parameter names they sent.
//
//	q := validation.RecommendationQuery{Algorithm: r.URL.Query().Get("algorithm"), K: k}
//	if verr := validation.ValidateStruct(&q); verr != nil {
//	    apiErr := verr.ToAPIError()
//	    respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, apiErr.Details)
//	    return
//	}
package validation
