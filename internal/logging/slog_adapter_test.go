// Reelmatch - Film Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package logging

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("invalid JSON %q: %v", buf.String(), err)
	}
	return entry
}

func TestSlogHandler_Attributes(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewSlogHandler(zerolog.New(&buf)))

	logger.Info("service started",
		"service", "rebuild-service",
		"restarts", 2,
		"ratio", 0.5,
		"ok", true,
		"took", 1500*time.Millisecond,
		"err", errors.New("boom"),
	)

	entry := decodeLine(t, &buf)
	if entry["message"] != "service started" || entry["level"] != "info" {
		t.Errorf("entry = %v", entry)
	}
	if entry["service"] != "rebuild-service" {
		t.Errorf("service = %v", entry["service"])
	}
	if entry["restarts"] != float64(2) || entry["ratio"] != 0.5 || entry["ok"] != true {
		t.Errorf("numeric/bool fields = %v", entry)
	}
	if entry["err"] != "boom" {
		t.Errorf("err = %v, want boom", entry["err"])
	}
}

func TestSlogHandler_GroupsAndWithAttrs(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewSlogHandler(zerolog.New(&buf))).
		With("tree", "root").
		WithGroup("event")

	logger.Warn("backoff", slog.Group("svc", slog.String("name", "http")), "failures", 3)

	entry := decodeLine(t, &buf)
	if entry["level"] != "warn" {
		t.Errorf("level = %v, want warn", entry["level"])
	}
	if entry["event.tree"] != "root" {
		t.Errorf("event.tree = %v", entry["event.tree"])
	}
	if entry["event.svc.name"] != "http" {
		t.Errorf("event.svc.name = %v", entry["event.svc.name"])
	}
	if entry["event.failures"] != float64(3) {
		t.Errorf("event.failures = %v", entry["event.failures"])
	}
}

func TestSlogHandler_Enabled(t *testing.T) {
	h := NewSlogHandler(zerolog.New(&bytes.Buffer{}).Level(zerolog.WarnLevel))
	ctx := context.Background()

	if h.Enabled(ctx, slog.LevelInfo) {
		t.Error("info enabled on warn logger")
	}
	if !h.Enabled(ctx, slog.LevelError) {
		t.Error("error disabled on warn logger")
	}
	if h.WithGroup("") != h {
		t.Error("WithGroup(\"\") should return the same handler")
	}
}

func TestNewSlogLogger_Component(t *testing.T) {
	resetLogger(t)
	var buf bytes.Buffer
	SetLogger(NewTestLogger(&buf))

	NewSlogLogger("supervisor").Error("service failed")
	if !strings.Contains(buf.String(), `"component":"supervisor"`) {
		t.Errorf("component missing: %q", buf.String())
	}
	if !strings.Contains(buf.String(), `"level":"error"`) {
		t.Errorf("level missing: %q", buf.String())
	}
}
