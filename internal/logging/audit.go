// Reelmatch - Film Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package logging

import (
	"strings"

	"github.com/rs/zerolog"
)

// AdminEvent is an audit record for a call to an admin endpoint.
type AdminEvent struct {
	Event     string // "admin_auth", "rebuild"
	Subject   string // token subject, if authenticated
	IPAddress string
	Path      string
	Success   bool
	Reason    string
	Details   map[string]string
}

// AuditLogger writes admin events with secrets masked.
type AuditLogger struct {
	logger zerolog.Logger
}

// NewAuditLogger creates an audit logger on top of logger.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewAuditLogger(logger zerolog.Logger) *AuditLogger {
	return &AuditLogger{logger: logger.With().Str("component", "audit").Logger()}
}

// Log writes one event. Failures are logged at warn level.
func (l *AuditLogger) Log(event *AdminEvent) {
	e := l.logger.Info()
	status := "success"
	if !event.Success {
		e = l.logger.Warn()
		status = "failed"
	}
	e = e.Str("event", event.Event).Str("status", status)

	if event.Subject != "" {
		e = e.Str("subject", event.Subject)
	}
	if event.IPAddress != "" {
		e = e.Str("ip", event.IPAddress)
	}
	if event.Path != "" {
		e = e.Str("path", event.Path)
	}
	if event.Reason != "" && !event.Success {
		e = e.Str("reason", SanitizeError(event.Reason))
	}
	for k, v := range event.Details {
		e = e.Str(k, SanitizeValue(k, v))
	}
	e.Msg("admin audit")
}

// LogAuthFailure records a rejected admin request.
func (l *AuditLogger) LogAuthFailure(ip, path, reason string) {
	l.Log(&AdminEvent{Event: "admin_auth", IPAddress: ip, Path: path, Reason: reason})
}

// LogRebuild records an admin-triggered rebuild and its outcome.
func (l *AuditLogger) LogRebuild(subject, ip string, success bool, reason string, details map[string]string) {
	l.Log(&AdminEvent{
		Event:     "rebuild",
		Subject:   subject,
		IPAddress: ip,
		Success:   success,
		Reason:    reason,
		Details:   details,
	})
}

// SanitizeToken masks a token, keeping the first and last four characters.
func SanitizeToken(token string) string {
	if token == "" {
		return ""
	}
	if len(token) <= 12 {
		return "***"
	}
	return token[:4] + "..." + token[len(token)-4:]
}

var sensitiveWords = []string{"password", "secret", "token", "bearer", "authorization"}

// SanitizeError hides error text that may echo credentials.
func SanitizeError(msg string) string {
	lower := strings.ToLower(msg)
	for _, w := range sensitiveWords {
		if strings.Contains(lower, w) {
			return "authentication error"
		}
	}
	if len(msg) > 200 {
		return msg[:200] + "..."
	}
	return msg
}

var sensitiveKeys = map[string]bool{
	"token":         true,
	"access_token":  true,
	"secret":        true,
	"authorization": true,
	"bearer":        true,
}

// SanitizeValue masks value when key names a credential.
func SanitizeValue(key, value string) string {
	if sensitiveKeys[strings.ToLower(key)] {
		return SanitizeToken(value)
	}
	return value
}
