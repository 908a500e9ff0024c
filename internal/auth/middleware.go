// Reelmatch - Film Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/reelmatch/internal/logging"
)

type contextKey string

// ClaimsContextKey holds the verified *Claims on admin requests.
const ClaimsContextKey contextKey = "claims"

var errMissingBearer = errors.New("missing bearer token")

// ErrorResponder writes an authentication failure. The API passes its
// envelope writer so 401s look like every other error.
type ErrorResponder func(w http.ResponseWriter, r *http.Request, status int, code, message string)

// Middleware guards admin routes with an AdminVerifier.
type Middleware struct {
	verifier *AdminVerifier
	audit    *logging.AuditLogger
	respond  ErrorResponder
}

// NewMiddleware creates admin middleware. A nil verifier leaves routes open;
// a nil respond writes a minimal JSON error.
func NewMiddleware(verifier *AdminVerifier, audit *logging.AuditLogger, respond ErrorResponder) *Middleware {
	if respond == nil {
		respond = defaultResponder
	}
	return &Middleware{verifier: verifier, audit: audit, respond: respond}
}

// RequireAdmin rejects requests without a valid admin bearer token with 401 UNAUTHORIZED.
func (m *Middleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.verifier == nil {
			next.ServeHTTP(w, r)
			return
		}

		token, err := bearerToken(r)
		var claims *Claims
		if err == nil {
			claims, err = m.verifier.Verify(token)
		}
		if err != nil {
			if m.audit != nil {
				m.audit.LogAuthFailure(r.RemoteAddr, r.URL.Path, err.Error())
			}
			m.respond(w, r, http.StatusUnauthorized, "UNAUTHORIZED", unauthorizedMessage(err))
			return
		}

		ctx := context.WithValue(r.Context(), ClaimsContextKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ClaimsFromContext returns the claims set by RequireAdmin, if any.
func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(ClaimsContextKey).(*Claims)
	return claims, ok
}

func bearerToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return "", errMissingBearer
	}
	return strings.TrimSpace(token), nil
}

func unauthorizedMessage(err error) string {
	switch {
	case errors.Is(err, errMissingBearer):
		return "Authorization: Bearer token required"
	case errors.Is(err, ErrNotAdmin):
		return "admin role required"
	default:
		return "invalid or expired token"
	}
}

func defaultResponder(w http.ResponseWriter, _ *http.Request, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck // best effort on a failed request
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": false,
		"error":   map[string]string{"code": code, "message": message},
	})
}
