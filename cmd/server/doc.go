// Marquee - Semantic Film Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package main is the entry point for the Marquee HTTP server.
//
// Marquee answers free-text film descriptions with the most semantically similar
// titles from a combined Hollywood and Bollywood catalog, each with a short
// explanation of why it matched.
//
// # Startup
//
// The server initializes components in this order:
//
//  1. Configuration: defaults, optional config.yaml, then environment (koanf v2)
//  2. Logging: zerolog, configured from the logging section
//  3. Catalog: CSV, TSV, JSONL, Parquet or a DuckDB table
//  4. Embedding provider: offline hashing or OpenAI, wrapped in a query cache
//  5. Index: every catalog item is embedded once; failure is fatal
//  6. HTTP server: chi router under a suture supervisor tree
//
// No request is accepted before the index is built.
//
// # Example Usage
//
//	export CATALOG_PATH=data/global_content.csv
//	./marquee-server
//
// With OpenAI embeddings:
//
//	export EMBEDDING_PROVIDER=openai
//	export OPENAI_API_KEY=sk-...
//	export EMBEDDING_DIMENSION=1536
//	./marquee-server
//
// # Signal Handling
//
// SIGINT and SIGTERM cancel the root context. The HTTP service drains in-flight
// requests for up to server.shutdown_timeout before the process exits.
package main
