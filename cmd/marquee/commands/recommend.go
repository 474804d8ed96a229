// Marquee - Semantic Film Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tomtom215/marquee/internal/catalog"
	"github.com/tomtom215/marquee/internal/recommend"
)

// Output formats for the recommend command.
const (
	formatCard  = "card"
	formatJSON  = "json"
	formatTable = "table"
)

type recommendOptions struct {
	*rootOptions
	k      int
	source string
	format string
}

func newRecommendCmd(root *rootOptions) *cobra.Command {
	opts := &recommendOptions{rootOptions: root}

	cmd := &cobra.Command{
		Use:   "recommend <description...>",
		Short: "Recommend films for a free-text description",
		Long: `Recommend films whose plot, genres and metadata best match a description.

The source filter is applied after ranking, so a filtered request can return
fewer than k films.`,
		Example: `  marquee recommend a heist thriller with a clever twist
  marquee recommend --k 3 --source bollywood "monsoon romance"
  marquee recommend --format json space opera`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRecommend(cmd, opts, args)
		},
	}

	cmd.Flags().IntVar(&opts.k, "k", 0, "number of recommendations (default from config)")
	cmd.Flags().StringVarP(&opts.source, "source", "s", "all", "collection filter: all, hollywood, bollywood or any value from the sources command")
	cmd.Flags().StringVarP(&opts.format, "format", "f", formatCard, "output format: card, json, table")

	return cmd
}

func runRecommend(cmd *cobra.Command, opts *recommendOptions, args []string) error {
	query := strings.TrimSpace(strings.Join(args, " "))
	if query == "" {
		fmt.Fprintln(cmd.ErrOrStderr(), warningStyle.Render("Please enter a description to get recommendations."))
		return errReported
	}

	format := normalizeFormat(opts.format)
	switch format {
	case formatCard, formatJSON, formatTable:
	default:
		return fmt.Errorf("unknown format %q (want card, json or table)", opts.format)
	}

	engine, _, err := opts.loadEngine(cmd.Context())
	if err != nil {
		return err
	}

	source, ok := catalog.ResolveFilter(opts.source, engine.Sources())
	if !ok {
		return fmt.Errorf("unknown source %q (want all, hollywood, bollywood or a source from the sources command)", opts.source)
	}

	engineCfg := engine.Config()
	k, err := engineCfg.ResolveK(opts.k, cmd.Flags().Changed("k"))
	if err != nil {
		return err
	}

	resp, err := engine.Recommend(cmd.Context(), recommend.Request{Query: query, K: k, Source: source})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if format == formatJSON {
		return renderJSON(out, resp)
	}
	if len(resp.Results) == 0 {
		fmt.Fprintln(out, "No results found for your query.")
		return nil
	}
	if format == formatTable {
		return renderTable(out, resp.Results)
	}
	renderCards(out, resp.Results)
	return nil
}
