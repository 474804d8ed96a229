// Marquee - Semantic Film Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package mcp exposes the recommendation engine as Model Context Protocol tools
// served over stdio with mark3labs/mcp-go.
//
// Tools:
//   - recommend_films: query (required), k, source. Returns one line per result.
//   - list_sources: the accepted source filter values with item counts.
package mcp
