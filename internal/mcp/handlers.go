// Marquee - Semantic Film Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/tomtom215/marquee/internal/catalog"
	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/recommend"
	"github.com/tomtom215/marquee/internal/validation"
)

// Handlers contains the tool handler functions.
type Handlers struct {
	engine Recommender
}

// recommendArgs is validated before the engine is called.
type recommendArgs struct {
	Query  string `json:"query" validate:"notblank,max=1000"`
	Source string `json:"source" validate:"omitempty,film_source"`
}

// RecommendFilms handles the recommend_films tool. Invalid input is reported as a tool
// error result, not a protocol error.
func (h *Handlers) RecommendFilms(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("query argument is required and must be a string"), nil
	}
	args := recommendArgs{Query: query, Source: request.GetString("source", "")}
	sources := h.engine.Sources()
	if verr := validation.ValidateStructCtx(validation.WithSources(ctx, sources), &args); verr != nil {
		return mcp.NewToolResultError(verr.Error()), nil
	}

	cfg := h.engine.Config()
	_, provided := argumentMap(request)["k"]
	k, err := cfg.ResolveK(request.GetInt("k", 0), provided)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	source, _ := catalog.ResolveFilter(args.Source, sources)

	resp, err := h.engine.Recommend(ctx, recommend.Request{Query: args.Query, K: k, Source: source})
	if err != nil {
		logging.Warn().Err(err).Msg("recommend_films failed")
		if errors.Is(err, recommend.ErrInvalidQuery) {
			return mcp.NewToolResultError("query must not be empty"), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("recommendation failed: %v", err)), nil
	}

	return mcp.NewToolResultText(FormatResults(resp.Results)), nil
}

// ListSources handles the list_sources tool.
func (h *Handlers) ListSources(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	stats := h.engine.Stats()
	var b strings.Builder
	fmt.Fprintf(&b, "all: every collection (%d films)\n", stats.Items)
	for _, src := range h.engine.Sources() {
		fmt.Fprintf(&b, "%s: %s (%d films)\n", sourceValue(src), src.Label(), stats.Sources[string(src)])
	}
	return mcp.NewToolResultText(strings.TrimRight(b.String(), "\n")), nil
}

// FormatResults renders one line per result: "1. Title [source] (score 0.87): explanation".
func FormatResults(results []recommend.Result) string {
	if len(results) == 0 {
		return "No results found for your query."
	}
	var b strings.Builder
	for i := range results {
		r := &results[i]
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%d. %s [%s] (score %.2f): %s", r.Rank, r.Title, r.Source, r.Score, r.Explanation)
	}
	return b.String()
}

// sourceValue is the filter value a client should send for src.
func sourceValue(src catalog.Source) string {
	switch src {
	case catalog.SourceTMDB:
		return "hollywood"
	case catalog.SourceBollywoodIMDB:
		return "bollywood"
	default:
		return string(src)
	}
}

func argumentMap(request mcp.CallToolRequest) map[string]any {
	args, ok := request.Params.Arguments.(map[string]any)
	if !ok {
		return nil
	}
	return args
}
