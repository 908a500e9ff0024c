// Reelmatch - Film Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// RoleAdmin is the role claim required on admin routes.
const RoleAdmin = "admin"

// MinSecretLength is the shortest accepted HMAC secret.
const MinSecretLength = 32

var (
	// ErrInvalidToken is returned for any token that fails verification.
	// The wrapped error carries the jwt library's reason.
	ErrInvalidToken = errors.New("invalid admin token")

	// ErrNotAdmin is returned for a valid token without the admin role.
	ErrNotAdmin = errors.New("token does not carry the admin role")

	// ErrSecretTooShort is returned when the signing secret is too short.
	ErrSecretTooShort = fmt.Errorf("admin secret must be at least %d characters", MinSecretLength)
)

// Claims are the JWT claims of an admin token.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// AdminVerifier issues and verifies HS256 admin tokens.
type AdminVerifier struct {
	secret []byte
	parser *jwt.Parser
}

// NewAdminVerifier creates a verifier for the given secret.
func NewAdminVerifier(secret string) (*AdminVerifier, error) {
	if len(secret) < MinSecretLength {
		return nil, ErrSecretTooShort
	}
	return &AdminVerifier{
		secret: []byte(secret),
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithExpirationRequired(),
			jwt.WithIssuedAt(),
			jwt.WithLeeway(5*time.Second),
		),
	}, nil
}

// Verify parses tokenString and returns its claims. Tokens signed with any
// method other than HS256, expired tokens and tokens without an exp claim are
// rejected with ErrInvalidToken; tokens without role=admin with ErrNotAdmin.
func (v *AdminVerifier) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := v.parser.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return v.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Role != RoleAdmin {
		return nil, ErrNotAdmin
	}
	return claims, nil
}

// IssueAdminToken signs an admin token for subject valid for ttl.
//
//	token, err := verifier.IssueAdminToken("ops", time.Hour)
func (v *AdminVerifier) IssueAdminToken(subject string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		Role: RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}
