// Marquee - Semantic Film Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package logging provides structured logging for Marquee built on zerolog.

A process-wide logger is configured once at startup with Init and used through
the package-level helpers:

	logging.Init(logging.Config{Level: "debug", Format: "console", Timestamp: true})
	logging.Info().Int("items", n).Msg("Catalog loaded")
	logging.Fatal().Err(err).Msg("Failed to build index")

Components receive a zerolog.Logger and derive a child with a component field:

	logger := logging.WithComponent("recommend")

Request-scoped logging uses the request ID placed in the context by the HTTP
middleware:

	logging.Ctx(r.Context()).Warn().Msg("Embedding provider unavailable")

# slog Bridge

SlogHandler adapts zerolog to log/slog so libraries that log through slog
(the suture supervisor via sutureslog) share the same output and level.
*/
package logging
