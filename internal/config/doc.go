// Marquee - Semantic Film Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package config provides centralized configuration management for Marquee.

Configuration is loaded in three layers with koanf, each overriding the previous:

 1. Defaults: built-in values from defaultConfig()
 2. Config file: optional YAML file (CONFIG_PATH, ./config.yaml, /etc/marquee/config.yaml)
 3. Environment variables: explicit allow-list mapped by envTransformFunc

# Configuration Structure

  - CatalogConfig: catalog location and reader format
  - EmbeddingConfig: embedding provider selection and OpenAI tuning
  - RecommendConfig: result counts and ranking parallelism
  - ServerConfig: HTTP listener and timeouts
  - SecurityConfig: CORS and per-IP rate limiting
  - LoggingConfig: zerolog level, format and caller info

# Environment Variables

Catalog:
  - CATALOG_PATH: catalog file (default: data/global_content.csv)
  - CATALOG_FORMAT: auto, csv, jsonl or duckdb (default: auto)
  - CATALOG_TABLE: table name when reading a DuckDB database file

Embedding:
  - EMBEDDING_PROVIDER: hashing or openai (default: hashing)
  - EMBEDDING_MODEL: OpenAI model (default: text-embedding-3-small)
  - EMBEDDING_DIMENSION: vector length (default: 384)
  - OPENAI_API_KEY, OPENAI_BASE_URL
  - EMBEDDING_TIMEOUT, EMBEDDING_BATCH_SIZE, EMBEDDING_MAX_RETRIES, EMBEDDING_RETRY_DELAY
  - EMBEDDING_RPS: OpenAI requests per second (0 disables pacing)
  - QUERY_CACHE_SIZE, QUERY_CACHE_TTL

Recommendation:
  - DEFAULT_K (default: 5), MAX_K (default: 10)
  - PARALLEL_THRESHOLD, RANK_WORKERS, REQUEST_TIMEOUT

Server and security:
  - HTTP_HOST, HTTP_PORT (default: 8080), HTTP_TIMEOUT, SHUTDOWN_TIMEOUT
  - CORS_ORIGINS (comma-separated), RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW, DISABLE_RATE_LIMIT

Logging:
  - LOG_LEVEL, LOG_FORMAT, LOG_CALLER

# Usage

	cfg, err := config.Load()
	if err != nil {
	    logging.Fatal().Err(err).Msg("Failed to load configuration")
	}
*/
package config
