// Marquee - Semantic Film Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package catalog

import (
	"strings"
)

// Source identifies which origin dataset an item came from.
type Source string

const (
	// SourceTMDB marks items from the TMDB (Hollywood) dataset.
	SourceTMDB Source = "TMDB"

	// SourceBollywoodIMDB marks items from the Bollywood IMDB dataset.
	SourceBollywoodIMDB Source = "Bollywood_IMDB"
)

// KnownSources lists the sources Marquee has labels for, in display order.
var KnownSources = []Source{SourceTMDB, SourceBollywoodIMDB}

// Label returns the human-facing collection name for a source.
// Unknown sources are returned verbatim.
func (s Source) Label() string {
	switch s {
	case SourceTMDB:
		return "Hollywood"
	case SourceBollywoodIMDB:
		return "Bollywood"
	default:
		return string(s)
	}
}

// Known reports whether the source is one of KnownSources.
func (s Source) Known() bool {
	return s == SourceTMDB || s == SourceBollywoodIMDB
}

// ParseFilter converts a user-supplied filter value into a Source.
// It accepts canonical names (case-insensitive) and the aliases "hollywood" and
// "bollywood". An empty value or "all" returns ("", true), meaning no filter.
// Any other value is returned as-is with ok=false so callers can reject it.
func ParseFilter(value string) (Source, bool) {
	v := strings.TrimSpace(value)
	switch strings.ToLower(v) {
	case "", "all", "any", "*":
		return "", true
	case "hollywood", "tmdb":
		return SourceTMDB, true
	case "bollywood", "bollywood_imdb", "bollywood-imdb", "imdb":
		return SourceBollywoodIMDB, true
	default:
		return Source(v), false
	}
}

// ResolveFilter is ParseFilter extended with the sources a loaded catalog holds.
// A value matching one of available, ignoring case, resolves to that source, so
// every source a catalog advertises is also a valid filter.
func ResolveFilter(value string, available []Source) (Source, bool) {
	src, ok := ParseFilter(value)
	if ok {
		return src, true
	}
	for _, a := range available {
		if strings.EqualFold(string(a), string(src)) {
			return a, true
		}
	}
	return src, false
}

// Item is a single recommendable film.
type Item struct {
	// Title is the film title. Never empty for loaded items.
	Title string `json:"title"`

	// Description is the plot overview.
	Description string `json:"description"`

	// Genres is a free-form genre list (e.g. "Drama, Thriller"). May be empty.
	Genres string `json:"genres"`

	// Extra holds free-form metadata such as director, cast or popularity. May be empty.
	Extra string `json:"extra"`

	// Source is the provenance tag.
	Source Source `json:"source"`

	// SearchText is the derived text that gets embedded.
	SearchText string `json:"-"`
}

// GenreList splits Genres on commas, pipes and slashes.
func (it *Item) GenreList() []string {
	if it.Genres == "" {
		return nil
	}
	parts := strings.FieldsFunc(it.Genres, func(r rune) bool {
		return r == ',' || r == '|' || r == '/'
	})
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// BuildSearchText concatenates title, genres, description and extra in that order.
// Empty fields are skipped; the result is "" when all fields are empty.
func BuildSearchText(title, genres, description, extra string) string {
	parts := make([]string, 0, 4)
	for _, f := range [...]string{title, genres, description, extra} {
		if f = strings.TrimSpace(f); f != "" {
			parts = append(parts, f)
		}
	}
	return strings.Join(parts, " ")
}

func newItem(r Record) Item {
	it := Item{
		Title:       strings.TrimSpace(r.Title),
		Description: strings.TrimSpace(r.Description),
		Genres:      strings.TrimSpace(r.Genres),
		Extra:       strings.TrimSpace(r.Extra),
		Source:      Source(strings.TrimSpace(r.Source)),
	}
	it.SearchText = BuildSearchText(it.Title, it.Genres, it.Description, it.Extra)
	return it
}
