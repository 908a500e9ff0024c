// Reelmatch - Film Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package recommend

import (
	"errors"
	"fmt"
)

// Config contains all configuration for the recommendation engine.
type Config struct {
	// Limits contains result size limits.
	Limits LimitsConfig `json:"limits"`

	// HybridAlpha weights the content score in a hybrid blend.
	// The collaborative score is weighted by (1 - HybridAlpha).
	HybridAlpha float64 `json:"hybrid_alpha"`

	// ItemNeighbors is how many similar items each liked seed contributes
	// in item-item recommendations.
	ItemNeighbors int `json:"item_neighbors"`

	// UserNeighbors is how many similar users contribute their likes in
	// user-user recommendations.
	UserNeighbors int `json:"user_neighbors"`

	// OverviewChars bounds how much of a film overview is featurized.
	OverviewChars int `json:"overview_chars"`
}

// LimitsConfig contains operational limits.
type LimitsConfig struct {
	// DefaultK is used when a caller does not specify a result size.
	DefaultK int `json:"default_k"`

	// MaxK is the largest result size a caller may request.
	MaxK int `json:"max_k"`
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Limits: LimitsConfig{
			DefaultK: 20,
			MaxK:     100,
		},
		HybridAlpha:   0.5,
		ItemNeighbors: 200,
		UserNeighbors: 50,
		OverviewChars: 200,
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if c.Limits.DefaultK <= 0 {
		errs = append(errs, fmt.Errorf("limits.default_k must be positive, got %d", c.Limits.DefaultK))
	}
	if c.Limits.MaxK <= 0 {
		errs = append(errs, fmt.Errorf("limits.max_k must be positive, got %d", c.Limits.MaxK))
	}
	if c.Limits.DefaultK > c.Limits.MaxK {
		errs = append(errs, fmt.Errorf("limits.default_k (%d) must not exceed limits.max_k (%d)",
			c.Limits.DefaultK, c.Limits.MaxK))
	}
	if c.HybridAlpha < 0 || c.HybridAlpha > 1 {
		errs = append(errs, fmt.Errorf("hybrid_alpha must be in [0, 1], got %v", c.HybridAlpha))
	}
	if c.ItemNeighbors <= 0 {
		errs = append(errs, fmt.Errorf("item_neighbors must be positive, got %d", c.ItemNeighbors))
	}
	if c.UserNeighbors <= 0 {
		errs = append(errs, fmt.Errorf("user_neighbors must be positive, got %d", c.UserNeighbors))
	}
	if c.OverviewChars < 0 {
		errs = append(errs, fmt.Errorf("overview_chars must not be negative, got %d", c.OverviewChars))
	}

	return errors.Join(errs...)
}

// clampK bounds k to [1, MaxK], substituting DefaultK for non-positive values.
func (c *Config) clampK(k int) int {
	if k <= 0 {
		k = c.Limits.DefaultK
	}
	if k > c.Limits.MaxK {
		k = c.Limits.MaxK
	}
	return k
}
