// Marquee - Semantic Film Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package commands

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/goccy/go-json"

	"github.com/tomtom215/marquee/internal/catalog"
	"github.com/tomtom215/marquee/internal/recommend"
)

// maxDescriptionRunes bounds the description shown on a card.
const maxDescriptionRunes = 280

var (
	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1).
			Width(78)
	titleStyle       = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	scoreStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	genreStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	explanationStyle = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("99"))
	warningStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))

	hollywoodBadge = lipgloss.NewStyle().Bold(true).Padding(0, 1).
			Foreground(lipgloss.Color("231")).Background(lipgloss.Color("25"))
	bollywoodBadge = lipgloss.NewStyle().Bold(true).Padding(0, 1).
			Foreground(lipgloss.Color("231")).Background(lipgloss.Color("166"))
	otherBadge = lipgloss.NewStyle().Bold(true).Padding(0, 1).
			Foreground(lipgloss.Color("231")).Background(lipgloss.Color("240"))
)

// renderCards writes one bordered card per result.
func renderCards(w io.Writer, results []recommend.Result) {
	for i := range results {
		fmt.Fprintln(w, renderCard(&results[i]))
	}
}

func renderCard(r *recommend.Result) string {
	header := lipgloss.JoinHorizontal(lipgloss.Center,
		titleStyle.Render(fmt.Sprintf("%d. %s", r.Rank, r.Title)),
		" ",
		sourceBadge(r.Source),
		" ",
		scoreStyle.Render(fmt.Sprintf("score %.2f", r.Score)),
	)

	lines := []string{header}
	if genres := r.GenreList(); len(genres) > 0 {
		lines = append(lines, genreStyle.Render(strings.Join(genres, " · ")))
	}
	if r.Description != "" {
		lines = append(lines, "", truncate(r.Description, maxDescriptionRunes))
	}
	lines = append(lines, "", explanationStyle.Render(r.Explanation))

	return cardStyle.Render(strings.Join(lines, "\n"))
}

func sourceBadge(src catalog.Source) string {
	switch src {
	case catalog.SourceTMDB:
		return hollywoodBadge.Render(src.Label())
	case catalog.SourceBollywoodIMDB:
		return bollywoodBadge.Render(src.Label())
	default:
		return otherBadge.Render(src.Label())
	}
}

// renderTable writes an aligned plain-text table.
func renderTable(w io.Writer, results []recommend.Result) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "RANK\tTITLE\tSOURCE\tSCORE\tGENRES")
	for i := range results {
		r := &results[i]
		fmt.Fprintf(tw, "%d\t%s\t%s\t%.2f\t%s\n", r.Rank, truncate(r.Title, 40), r.Source.Label(), r.Score, truncate(r.Genres, 30))
	}
	return tw.Flush()
}

// renderJSON writes the full response, metadata included.
func renderJSON(w io.Writer, resp *recommend.Response) error {
	data, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	_, err = fmt.Fprintf(w, "%s\n", data)
	return err
}

// truncate shortens s to maxLen runes, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}
