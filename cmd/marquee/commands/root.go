// Marquee - Semantic Film Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package commands

import (
	"context"
	"errors"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/tomtom215/marquee/internal/config"
	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/recommend"
)

var version = "dev"

// SetVersion sets the version reported by the CLI and the MCP server.
func SetVersion(v string) {
	version = v
}

// errReported marks an error whose message has already been shown to the user.
var errReported = errors.New("reported")

// IsReported reports whether err was already printed by a command.
func IsReported(err error) bool {
	return errors.Is(err, errReported)
}

// rootOptions holds the global flags.
type rootOptions struct {
	configPath  string
	logLevel    string
	logLevelSet bool
}

// NewRootCmd creates the root command with all subcommands attached.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "marquee",
		Short: "Semantic film recommendations from the command line",
		Long: `Marquee recommends films from a combined Hollywood and Bollywood catalog.

Describe what you want to watch in plain words. Marquee embeds the description,
ranks every film by cosine similarity and explains each match.

Configuration is read from config.yaml (or --config) and the environment.
A .env file in the working directory is loaded first when present.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			opts.logLevelSet = cmd.Flags().Changed("log-level")
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to a config.yaml file")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level: trace, debug, info, warn, error (default: logging.level from config)")

	cmd.AddCommand(newRecommendCmd(opts))
	cmd.AddCommand(newSourcesCmd(opts))
	cmd.AddCommand(newMCPCmd(opts))

	return cmd
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}

// loadConfig loads .env, then the layered configuration, and configures stderr logging.
func (o *rootOptions) loadConfig() (*config.Config, error) {
	// A missing .env is normal.
	_ = godotenv.Load()

	cfg, err := config.LoadWithKoanf(o.configPath)
	if err != nil {
		return nil, err
	}

	logging.Init(logging.Config{
		Level:     o.effectiveLogLevel(cfg),
		Format:    "console",
		Timestamp: true,
		Output:    os.Stderr,
	})
	return cfg, nil
}

// effectiveLogLevel prefers an explicit --log-level over logging.level from config.
func (o *rootOptions) effectiveLogLevel(cfg *config.Config) string {
	if o.logLevelSet {
		return o.logLevel
	}
	return cfg.Logging.Level
}

// loadEngine loads configuration and returns a Ready engine.
func (o *rootOptions) loadEngine(ctx context.Context) (*recommend.Engine, *config.Config, error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, nil, err
	}
	engine, err := recommend.Bootstrap(ctx, cfg, logging.Logger())
	if err != nil {
		return nil, nil, err
	}
	return engine, cfg, nil
}

// normalizeFormat lowercases and trims an output format flag.
func normalizeFormat(format string) string {
	return strings.ToLower(strings.TrimSpace(format))
}
