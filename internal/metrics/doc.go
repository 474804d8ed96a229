// Marquee - Semantic Film Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package metrics provides Prometheus metrics collection and export for observability.

All collectors are registered with the default registry through promauto and are
exposed at /metrics by the HTTP server:

	curl http://localhost:8080/metrics

# Available Metrics

Recommendation:
  - marquee_recommend_requests_total{status}
  - marquee_recommend_duration_seconds
  - marquee_recommend_results

Embedding:
  - marquee_embedding_requests_total{provider,status}
  - marquee_embedding_duration_seconds{provider}
  - marquee_embedding_cache_hits_total / marquee_embedding_cache_misses_total

Catalog index:
  - marquee_catalog_items{source}
  - marquee_index_build_duration_seconds
  - marquee_index_ready

API:
  - api_requests_total{method,endpoint,status_code}
  - api_request_duration_seconds{method,endpoint}
  - api_active_requests

Circuit breaker (OpenAI embeddings):
  - circuit_breaker_state{name}
  - circuit_breaker_requests_total{name,result}
  - circuit_breaker_consecutive_failures{name}
  - circuit_breaker_state_transitions_total{name,from_state,to_state}
*/
package metrics
