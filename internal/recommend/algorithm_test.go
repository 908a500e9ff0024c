// Reelmatch - Film Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package recommend

import (
	"errors"
	"testing"
)

func TestParseAlgorithm(t *testing.T) {
	tests := []struct {
		name    string
		want    Algorithm
		wantErr bool
	}{
		{"content", AlgorithmContent, false},
		{"collab", AlgorithmCollab, false},
		{"collab-item", AlgorithmCollabItem, false},
		{"collab-user", AlgorithmCollabUser, false},
		{"hybrid", AlgorithmHybrid, false},
		{"", 0, true},
		{"Hybrid", 0, true},
		{"popularity", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAlgorithm(tt.name)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidAlgorithm) {
					t.Errorf("ParseAlgorithm(%q) error = %v, want ErrInvalidAlgorithm", tt.name, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseAlgorithm(%q) unexpected error: %v", tt.name, err)
			}
			if got != tt.want {
				t.Errorf("ParseAlgorithm(%q) = %v, want %v", tt.name, got, tt.want)
			}
			if got.String() != tt.name {
				t.Errorf("String() = %q, want %q", got.String(), tt.name)
			}
		})
	}
}

func TestAlgorithmNames_RoundTrip(t *testing.T) {
	for _, name := range AlgorithmNames() {
		alg, err := ParseAlgorithm(name)
		if err != nil {
			t.Errorf("ParseAlgorithm(%q) error = %v", name, err)
			continue
		}
		if !alg.Valid() {
			t.Errorf("%q parsed to invalid algorithm", name)
		}
	}
	if Algorithm(0).Valid() || Algorithm(99).Valid() {
		t.Error("out-of-range algorithm reported valid")
	}
}

func TestAlgorithm_Text(t *testing.T) {
	var a Algorithm
	if err := a.UnmarshalText([]byte("collab-user")); err != nil {
		t.Fatalf("UnmarshalText() error = %v", err)
	}
	if a != AlgorithmCollabUser {
		t.Errorf("UnmarshalText() = %v, want collab-user", a)
	}

	text, err := a.MarshalText()
	if err != nil || string(text) != "collab-user" {
		t.Errorf("MarshalText() = %q, %v", text, err)
	}

	if _, err := Algorithm(42).MarshalText(); !errors.Is(err, ErrInvalidAlgorithm) {
		t.Errorf("MarshalText(42) error = %v, want ErrInvalidAlgorithm", err)
	}
	if err := a.UnmarshalText([]byte("nope")); !errors.Is(err, ErrInvalidAlgorithm) {
		t.Errorf("UnmarshalText(nope) error = %v, want ErrInvalidAlgorithm", err)
	}
}
