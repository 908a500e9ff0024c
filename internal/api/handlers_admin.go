// Reelmatch - Film Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/tomtom215/reelmatch/internal/auth"
	"github.com/tomtom215/reelmatch/internal/catalog"
	"github.com/tomtom215/reelmatch/internal/recommend"
)

// Rebuild handles POST /admin/rebuild. It runs synchronously and returns the
// new snapshot's counts; on failure the previous snapshot keeps serving.
func (h *Handler) Rebuild(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	subject := ""
	if claims, ok := auth.ClaimsFromContext(r.Context()); ok {
		subject = claims.Subject
	}

	// Detached from the client: a rebuild may be shared with the scheduler,
	// and a dropped connection must not abort it.
	ctx, cancel := context.WithTimeout(context.WithoutCancel(r.Context()), h.rebuildTimeout)
	defer cancel()

	result, err := h.rebuilder.Rebuild(ctx)
	if err != nil {
		h.audit.LogRebuild(subject, r.RemoteAddr, false, err.Error(), nil)
		switch {
		case errors.Is(err, catalog.ErrSourceUnavailable):
			rw.Error(http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "catalog temporarily unavailable", nil, err)
		case errors.Is(err, recommend.ErrDuplicateFilm):
			rw.Error(http.StatusConflict, ErrCodeConflict, err.Error(), nil, err)
		default:
			rw.Error(http.StatusInternalServerError, ErrCodeInternalError, "rebuild failed", nil, err)
		}
		return
	}

	h.audit.LogRebuild(subject, r.RemoteAddr, true, "", map[string]string{
		"generation": strconv.FormatUint(result.Generation, 10),
		"films":      strconv.Itoa(result.Films),
	})
	rw.Success(result)
}
