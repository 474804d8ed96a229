// Marquee - Semantic Film Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/tomtom215/marquee/internal/catalog"
	"github.com/tomtom215/marquee/internal/recommend"
)

// Recommender is the engine surface the tools need.
type Recommender interface {
	Recommend(ctx context.Context, req recommend.Request) (*recommend.Response, error)
	Stats() recommend.Stats
	Sources() []catalog.Source
	Config() recommend.Config
}

// NewServer creates an MCP server with all Marquee tools registered.
func NewServer(engine Recommender, version string) *mcpserver.MCPServer {
	server := mcpserver.NewMCPServer("Marquee Film Recommendations", version)
	RegisterTools(server, engine)
	return server
}

// RegisterTools registers the Marquee tools on server.
func RegisterTools(server *mcpserver.MCPServer, engine Recommender) *Handlers {
	handlers := &Handlers{engine: engine}
	cfg := engine.Config()

	server.AddTool(mcp.Tool{
		Name:        "recommend_films",
		Description: "Recommend films whose plot, genres and metadata are semantically closest to a free-text description. Each result includes a similarity score and a short explanation.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "What the user wants to watch, e.g. 'a heist thriller set in Mumbai'",
				},
				"k": map[string]interface{}{
					"type":        "number",
					"description": fmt.Sprintf("Number of results (1-%d, default %d)", cfg.MaxK, cfg.DefaultK),
					"minimum":     1,
					"maximum":     cfg.MaxK,
					"default":     cfg.DefaultK,
				},
				"source": map[string]interface{}{
					"type":        "string",
					"description": "Restrict results to one collection: all, hollywood, bollywood or any value from list_sources",
					"default":     "all",
				},
			},
			Required: []string{"query"},
		},
	}, handlers.RecommendFilms)

	server.AddTool(mcp.Tool{
		Name:        "list_sources",
		Description: "List the film collections that can be used as a source filter, with item counts.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, handlers.ListSources)

	return handlers
}
