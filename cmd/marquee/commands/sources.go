// Marquee - Semantic Film Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newSourcesCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "sources",
		Short: "List the collections available as a source filter",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			engine, _, err := root.loadEngine(cmd.Context())
			if err != nil {
				return err
			}

			stats := engine.Stats()
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "FILTER\tCOLLECTION\tFILMS")
			fmt.Fprintf(tw, "all\tAll\t%d\n", stats.Items)
			for _, src := range engine.Sources() {
				fmt.Fprintf(tw, "%s\t%s\t%d\n", src, src.Label(), stats.Sources[string(src)])
			}
			return tw.Flush()
		},
	}
}
