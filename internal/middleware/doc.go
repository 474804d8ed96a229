// Marquee - Semantic Film Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package middleware provides HTTP middleware for the API router.

Key Components:

  - RequestID: accepts or generates an X-Request-ID and stores it in the context
  - PrometheusMetrics: request count, latency and in-flight instrumentation
  - AccessLog: one structured zerolog line per request

All middleware uses the func(http.Handler) http.Handler shape so it composes with
chi's Use.
*/
package middleware
