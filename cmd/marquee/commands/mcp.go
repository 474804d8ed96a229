// Marquee - Semantic Film Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/mcp"
)

func newMCPCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve recommendations to LLM agents over MCP stdio",
		Long: `Start a Model Context Protocol server on stdio.

LLM agents can call the recommend_films and list_sources tools. Logs go to
stderr so stdout carries only protocol messages.`,
		Example: `  marquee mcp

  # claude_desktop_config.json:
  # {
  #   "mcpServers": {
  #     "marquee": {"command": "marquee", "args": ["mcp"]}
  #   }
  # }`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runMCP(cmd, root)
		},
	}
}

func runMCP(cmd *cobra.Command, root *rootOptions) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	engine, _, err := root.loadEngine(ctx)
	if err != nil {
		return err
	}

	server := mcp.NewServer(engine, version)
	logging.Info().Int("items", engine.Stats().Items).Msg("MCP server starting on stdio")

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- mcpserver.ServeStdio(server)
	}()

	select {
	case <-ctx.Done():
		logging.Info().Msg("Shutdown signal received")
		return nil
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("mcp server: %w", err)
		}
		return nil
	}
}
