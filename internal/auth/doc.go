// Reelmatch - Film Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

/*
Package auth protects the admin endpoints with HS256 JWTs (golang-jwt v5).

Admin tokens carry role=admin and must have an exp claim. The parser only
accepts HS256, which rules out alg=none and key-confusion tokens.

	verifier, err := auth.NewAdminVerifier(cfg.Security.AdminJWTSecret)
	mw := auth.NewMiddleware(verifier, audit, respondError)
	r.With(mw.RequireAdmin).Post("/admin/rebuild", h.Rebuild)

When no secret is configured the server passes a nil verifier and the admin
routes are open; startup logs a warning in that case.
*/
package auth
