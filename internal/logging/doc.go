// Reelmatch - Film Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

/*
Package logging provides centralized zerolog-based logging for Reelmatch.

# Quick Start

	logging.Init(logging.Config{Level: "info", Format: "json", Timestamp: true})

	logging.Info().Int("films", n).Msg("Catalog loaded")
	logging.Ctx(r.Context()).Warn().Err(err).Msg("Cache write failed")

Components take a zerolog.Logger in their constructors; main derives those
with WithComponent so every line carries a component field.

# Request IDs

The API middleware stores the X-Request-ID value with ContextWithRequestID.
Ctx adds it as request_id to every line logged for that request.

# slog Bridge

NewSlogLogger returns an *slog.Logger backed by zerolog for libraries that
only speak slog, such as sutureslog in the supervisor tree.

# Audit

AuditLogger records admin authentication failures and rebuild triggers.
Credential-like values are masked before they are written.

Always terminate log chains with .Msg() or .Send(); an unterminated event is
never emitted.
*/
package logging
