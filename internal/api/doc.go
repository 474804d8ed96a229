// Marquee - Semantic Film Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package api exposes the recommendation engine over HTTP using the chi router.

Endpoints:

	GET  /api/v1/recommendations?q=&k=&source=   rank films for a query
	POST /api/v1/recommendations                 same, JSON body {query, k, source}
	GET  /api/v1/catalog                         index size, sources, model
	GET  /api/v1/sources                         source filter options
	GET  /api/v1/health/live                     liveness probe
	GET  /api/v1/health/ready                    readiness probe, 503 until the index is built
	GET  /metrics                                Prometheus metrics

Every JSON response uses the models.APIResponse envelope. Engine errors map to
status codes as follows:

	recommend.ErrInvalidQuery              400 INVALID_QUERY
	validation failures, ErrInvalidK       400 VALIDATION_ERROR
	recommend.ErrNotReady                  503 NOT_READY
	embedding.ErrEmbeddingUnavailable      503 EMBEDDING_UNAVAILABLE
	context.DeadlineExceeded               504 RECOMMENDATION_TIMEOUT
	anything else                          500 RECOMMENDATION_ERROR
*/
package api
