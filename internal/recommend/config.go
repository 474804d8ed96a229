// Marquee - Semantic Film Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package recommend

import (
	"fmt"
	"runtime"
)

// Config contains the engine's operational limits.
type Config struct {
	// DefaultK is substituted when a caller omits the result count.
	// Default: 5.
	DefaultK int `json:"default_k"`

	// MaxK is the largest result count callers may request.
	// Default: 10.
	MaxK int `json:"max_k"`

	// ParallelThreshold is the catalog size from which scoring is split across workers.
	// Zero disables parallel scoring.
	// Default: 20000.
	ParallelThreshold int `json:"parallel_threshold"`

	// Workers is the number of scoring goroutines. Zero means GOMAXPROCS.
	Workers int `json:"workers"`
}

// DefaultConfig returns a Config with production defaults.
func DefaultConfig() *Config {
	return &Config{
		DefaultK:          5,
		MaxK:              10,
		ParallelThreshold: 20000,
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.DefaultK < 1 {
		return fmt.Errorf("default_k must be positive, got %d", c.DefaultK)
	}
	if c.MaxK < c.DefaultK {
		return fmt.Errorf("max_k must be >= default_k, got %d < %d", c.MaxK, c.DefaultK)
	}
	if c.ParallelThreshold < 0 {
		return fmt.Errorf("parallel_threshold must be non-negative, got %d", c.ParallelThreshold)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must be non-negative, got %d", c.Workers)
	}
	return nil
}

// ResolveK applies the caller-facing defaulting rule: an omitted count becomes DefaultK,
// and a provided count must lie in [1, MaxK].
func (c *Config) ResolveK(k int, provided bool) (int, error) {
	if !provided {
		return c.DefaultK, nil
	}
	if k < 1 || k > c.MaxK {
		return 0, fmt.Errorf("%w: k must be between 1 and %d, got %d", ErrInvalidK, c.MaxK, k)
	}
	return k, nil
}

func (c *Config) workers() int {
	if c.Workers > 0 {
		return c.Workers
	}
	return runtime.GOMAXPROCS(0)
}
