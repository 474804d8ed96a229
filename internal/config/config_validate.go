// Marquee - Semantic Film Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package config

import (
	"fmt"
	"strings"
)

// Validate checks that required configuration is present and valid
func (c *Config) Validate() error {
	if err := c.validateCatalog(); err != nil {
		return err
	}

	if err := c.validateEmbedding(); err != nil {
		return err
	}

	if err := c.validateRecommend(); err != nil {
		return err
	}

	if err := c.validateServer(); err != nil {
		return err
	}

	if err := c.validateSecurity(); err != nil {
		return err
	}

	return c.validateLogging()
}

var validCatalogFormats = map[string]bool{
	"":       true,
	"auto":   true,
	"csv":    true,
	"jsonl":  true,
	"duckdb": true,
}

func (c *Config) validateCatalog() error {
	if strings.TrimSpace(c.Catalog.Path) == "" {
		return fmt.Errorf("CATALOG_PATH is required")
	}
	if !validCatalogFormats[strings.ToLower(c.Catalog.Format)] {
		return fmt.Errorf("CATALOG_FORMAT must be one of: auto, csv, jsonl, duckdb")
	}
	return nil
}

func (c *Config) validateEmbedding() error {
	e := &c.Embedding
	switch e.Provider {
	case ProviderHashing:
	case ProviderOpenAI:
		if e.APIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY is required when EMBEDDING_PROVIDER=openai")
		}
		if e.Model == "" {
			return fmt.Errorf("EMBEDDING_MODEL is required when EMBEDDING_PROVIDER=openai")
		}
		if e.BatchSize < 1 || e.BatchSize > 2048 {
			return fmt.Errorf("EMBEDDING_BATCH_SIZE must be between 1 and 2048, got %d", e.BatchSize)
		}
	default:
		return fmt.Errorf("EMBEDDING_PROVIDER must be one of: hashing, openai")
	}

	if e.Dimension < 1 || e.Dimension > 8192 {
		return fmt.Errorf("EMBEDDING_DIMENSION must be between 1 and 8192, got %d", e.Dimension)
	}
	if e.MaxRetries < 0 {
		return fmt.Errorf("EMBEDDING_MAX_RETRIES must be non-negative, got %d", e.MaxRetries)
	}
	if e.Timeout < 0 || e.RetryDelay < 0 || e.QueryCacheTTL < 0 {
		return fmt.Errorf("embedding durations must be non-negative")
	}
	if e.RequestsPerSecond < 0 {
		return fmt.Errorf("EMBEDDING_RPS must be non-negative, got %v", e.RequestsPerSecond)
	}
	if e.QueryCacheSize < 0 {
		return fmt.Errorf("QUERY_CACHE_SIZE must be non-negative, got %d", e.QueryCacheSize)
	}
	return nil
}

func (c *Config) validateRecommend() error {
	r := &c.Recommend
	if r.DefaultK < 1 {
		return fmt.Errorf("DEFAULT_K must be positive, got %d", r.DefaultK)
	}
	if r.MaxK < r.DefaultK {
		return fmt.Errorf("MAX_K must be >= DEFAULT_K, got %d < %d", r.MaxK, r.DefaultK)
	}
	if r.Workers < 0 {
		return fmt.Errorf("RANK_WORKERS must be non-negative, got %d", r.Workers)
	}
	if r.ParallelThreshold < 0 {
		return fmt.Errorf("PARALLEL_THRESHOLD must be non-negative, got %d", r.ParallelThreshold)
	}
	return nil
}

// validateServer validates HTTP server configuration
func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	return nil
}

// validateSecurity validates rate limiting bounds
func (c *Config) validateSecurity() error {
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < 1 || c.Security.RateLimitReqs > 100000 {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be between 1 and 100000, got %d", c.Security.RateLimitReqs)
	}
	if c.Security.RateLimitWindow <= 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be positive, got %v", c.Security.RateLimitWindow)
	}
	return nil
}

// validLogLevels defines the allowed log levels
var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// validLogFormats defines the allowed log formats
var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

// validateLogging validates logging configuration
func (c *Config) validateLogging() error {
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	if c.Logging.Format != "" && !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}
