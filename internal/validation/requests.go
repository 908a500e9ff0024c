// Reelmatch - Film Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package validation

// RecommendationQuery is the parsed query string of both recommendation
// endpoints. An empty Algorithm or nil K means "use the endpoint default";
// an explicit k=0 is rejected. The engine still clamps K to its configured maximum.
type RecommendationQuery struct {
	Algorithm string `query:"algorithm" validate:"omitempty,oneof=content collab collab-item collab-user hybrid"`
	K         *int   `query:"k" validate:"omitnil,min=1,max=100"`
}

// UserPath identifies the user in /recommendations/user/{userID}.
type UserPath struct {
	UserID string `query:"userID" validate:"required,entityid,max=128"`
}

// FilmPath identifies the film in /recommendations/similar/{filmID}.
type FilmPath struct {
	FilmID string `query:"filmID" validate:"required,entityid,max=128"`
}
