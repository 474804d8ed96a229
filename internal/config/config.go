// Marquee - Semantic Film Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package config

import (
	"time"
)

// Config holds all application configuration.
type Config struct {
	Catalog   CatalogConfig   `koanf:"catalog"`
	Embedding EmbeddingConfig `koanf:"embedding"`
	Recommend RecommendConfig `koanf:"recommend"`
	Server    ServerConfig    `koanf:"server"`
	Security  SecurityConfig  `koanf:"security"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// CatalogConfig locates the normalized catalog table.
type CatalogConfig struct {
	// Path is the catalog file (CSV, TSV, JSONL, Parquet or DuckDB database).
	Path string `koanf:"path"`

	// Format is auto, csv, jsonl or duckdb. Auto picks by file extension.
	Format string `koanf:"format"`

	// Table is the table to read when Path is a DuckDB database file.
	Table string `koanf:"table"`
}

// EmbeddingConfig selects and tunes the embedding provider.
type EmbeddingConfig struct {
	// Provider is "hashing" (offline, deterministic) or "openai".
	Provider string `koanf:"provider"`

	// Model is the OpenAI embedding model name. Ignored by the hashing provider.
	Model string `koanf:"model"`

	// Dimension is the vector length produced by the provider.
	Dimension int `koanf:"dimension"`

	APIKey  string `koanf:"api_key"`
	BaseURL string `koanf:"base_url"`

	// Timeout bounds a single provider call. Zero disables it.
	Timeout time.Duration `koanf:"timeout"`

	// BatchSize is the number of texts per OpenAI request.
	BatchSize int `koanf:"batch_size"`

	MaxRetries int           `koanf:"max_retries"`
	RetryDelay time.Duration `koanf:"retry_delay"`

	// RequestsPerSecond paces OpenAI requests. Zero disables pacing.
	RequestsPerSecond float64 `koanf:"requests_per_second"`

	// QueryCacheSize is the number of query vectors memoized. Zero disables the cache.
	QueryCacheSize int           `koanf:"query_cache_size"`
	QueryCacheTTL  time.Duration `koanf:"query_cache_ttl"`
}

// RecommendConfig holds result count limits and ranking settings.
type RecommendConfig struct {
	// DefaultK is used when a caller does not specify a result count.
	DefaultK int `koanf:"default_k"`

	// MaxK is the largest result count callers may request.
	MaxK int `koanf:"max_k"`

	// ParallelThreshold is the catalog size above which scoring is split across workers.
	ParallelThreshold int `koanf:"parallel_threshold"`

	// Workers is the number of scoring goroutines. Zero means GOMAXPROCS.
	Workers int `koanf:"workers"`

	// RequestTimeout bounds a recommendation request in the HTTP layer.
	RequestTimeout time.Duration `koanf:"request_timeout"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Port            int           `koanf:"port"`
	Host            string        `koanf:"host"`
	Timeout         time.Duration `koanf:"timeout"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// SecurityConfig holds CORS and rate limiting settings.
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	// Default: info
	Level string `koanf:"level"`

	// Format is the output format: json or console.
	// Default: json
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	// Default: false
	Caller bool `koanf:"caller"`
}

// Load loads configuration from defaults, the optional config file and the environment.
func Load() (*Config, error) {
	return LoadWithKoanf("")
}
