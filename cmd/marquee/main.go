// Marquee - Semantic Film Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Command marquee is the command-line client for Marquee: one-shot recommendations,
// source listing and an MCP stdio server.
package main

import (
	"fmt"
	"os"

	"github.com/tomtom215/marquee/cmd/marquee/commands"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	commands.SetVersion(version)

	if err := commands.Execute(); err != nil {
		if !commands.IsReported(err) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
