// Marquee - Semantic Film Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package recommend

import (
	"fmt"
	"sort"
	"strings"

	"github.com/tomtom215/marquee/internal/catalog"
	"github.com/tomtom215/marquee/internal/tokenize"
)

const (
	maxSharedTerms = 3
	maxThemes      = 3
	minThemeLength = 4
)

// Detector recognizes one reason an item matches a query.
type Detector interface {
	// Name identifies the detector in logs and tests.
	Name() string

	// Detect returns a short clause such as "it fits the drama genre".
	Detect(query string, item *catalog.Item) (string, bool)
}

// Explainer turns a query and a selected item into a one-sentence explanation.
// Detectors run in order; every clause that fires is included.
type Explainer struct {
	detectors []Detector
}

// NewExplainer returns an Explainer running detectors in the given order.
func NewExplainer(detectors ...Detector) *Explainer {
	return &Explainer{detectors: detectors}
}

// DefaultExplainer returns the standard detector chain.
func DefaultExplainer() *Explainer {
	return NewExplainer(
		QueryGenreDetector{},
		GenreDetector{},
		SharedTermsDetector{},
		ThemesDetector{},
		SourceDetector{},
	)
}

// Explain never fails. When no detector fires it falls back to a generic sentence.
func (e *Explainer) Explain(query string, item *catalog.Item) string {
	query = strings.TrimSpace(query)
	phrases := make([]string, 0, len(e.detectors))
	for _, d := range e.detectors {
		if phrase, ok := d.Detect(query, item); ok && phrase != "" {
			phrases = append(phrases, phrase)
		}
	}
	if len(phrases) == 0 {
		return fmt.Sprintf("Recommended as a close semantic match for %q.", query)
	}
	return "Recommended because " + strings.Join(phrases, "; ") + "."
}

// QueryGenreDetector fires when query words name one of the item's genres.
type QueryGenreDetector struct{}

func (QueryGenreDetector) Name() string { return "query_genre" }

func (QueryGenreDetector) Detect(query string, item *catalog.Item) (string, bool) {
	if item.Genres == "" {
		return "", false
	}
	genreWords := toSet(tokenize.Words(item.Genres))
	var hits []string
	for _, t := range tokenize.UniqueTerms(query) {
		if _, ok := genreWords[t]; ok {
			hits = append(hits, t)
		}
	}
	if len(hits) == 0 {
		return "", false
	}
	return "it matches your interest in " + strings.Join(hits, ", "), true
}

// GenreDetector fires whenever the item has genres.
type GenreDetector struct{}

func (GenreDetector) Name() string { return "genre" }

func (GenreDetector) Detect(_ string, item *catalog.Item) (string, bool) {
	genres := item.GenreList()
	if len(genres) == 0 {
		return "", false
	}
	for i := range genres {
		genres[i] = strings.ToLower(genres[i])
	}
	noun := "genre"
	if len(genres) > 1 {
		noun = "genres"
	}
	return fmt.Sprintf("it fits the %s %s", strings.Join(genres, ", "), noun), true
}

// SharedTermsDetector fires when query words appear in the title or description.
type SharedTermsDetector struct{}

func (SharedTermsDetector) Name() string { return "shared_terms" }

func (SharedTermsDetector) Detect(query string, item *catalog.Item) (string, bool) {
	itemTerms := toSet(tokenize.Terms(item.Title + " " + item.Description))
	quoted := make([]string, 0, maxSharedTerms)
	for _, t := range tokenize.UniqueTerms(query) {
		if _, ok := itemTerms[t]; !ok {
			continue
		}
		quoted = append(quoted, fmt.Sprintf("%q", t))
		if len(quoted) == maxSharedTerms {
			break
		}
	}
	if len(quoted) == 0 {
		return "", false
	}
	return "it mentions " + strings.Join(quoted, ", "), true
}

// ThemesDetector picks the most frequent description words the query did not mention.
type ThemesDetector struct{}

func (ThemesDetector) Name() string { return "themes" }

func (ThemesDetector) Detect(query string, item *catalog.Item) (string, bool) {
	themes := salientTerms(item.Description, toSet(tokenize.Terms(query)), maxThemes)
	if len(themes) == 0 {
		return "", false
	}
	return "it aligns with themes like " + strings.Join(themes, ", "), true
}

// SourceDetector names the collection a known source belongs to.
type SourceDetector struct{}

func (SourceDetector) Name() string { return "source" }

func (SourceDetector) Detect(_ string, item *catalog.Item) (string, bool) {
	if !item.Source.Known() {
		return "", false
	}
	return fmt.Sprintf("it comes from the %s collection", item.Source.Label()), true
}

// salientTerms returns up to n terms of text ordered by frequency, then first occurrence.
func salientTerms(text string, exclude map[string]struct{}, n int) []string {
	type termCount struct {
		term  string
		count int
		first int
	}
	counts := make(map[string]*termCount)
	var order []*termCount
	for i, t := range tokenize.Terms(text) {
		if len([]rune(t)) < minThemeLength {
			continue
		}
		if _, skip := exclude[t]; skip {
			continue
		}
		if tc, ok := counts[t]; ok {
			tc.count++
			continue
		}
		tc := &termCount{term: t, count: 1, first: i}
		counts[t] = tc
		order = append(order, tc)
	}

	sort.SliceStable(order, func(i, j int) bool {
		if order[i].count != order[j].count {
			return order[i].count > order[j].count
		}
		return order[i].first < order[j].first
	})

	out := make([]string, 0, n)
	for _, tc := range order {
		if len(out) == n {
			break
		}
		out = append(out, tc.term)
	}
	return out
}

func toSet(words []string) map[string]struct{} {
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}
