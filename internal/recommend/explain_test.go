// Marquee - Semantic Film Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package recommend

import (
	"strings"
	"testing"

	"github.com/tomtom215/marquee/internal/catalog"
)

func TestDetectors(t *testing.T) {
	t.Parallel()
	item := &catalog.Item{
		Title:       "Space Saga",
		Description: "An interstellar war between rival galaxies. The war leaves galaxies in ruin.",
		Genres:      "Sci-Fi, Adventure",
		Source:      catalog.SourceTMDB,
	}

	tests := []struct {
		name     string
		detector Detector
		query    string
		want     string
		wantOK   bool
	}{
		{"query genre", QueryGenreDetector{}, "an adventure in space", "it matches your interest in adventure", true},
		{"query genre miss", QueryGenreDetector{}, "romance", "", false},
		{"genre", GenreDetector{}, "", "it fits the sci-fi, adventure genres", true},
		{"shared terms", SharedTermsDetector{}, "the space war saga galaxies", `it mentions "space", "war", "saga"`, true},
		{"shared terms miss", SharedTermsDetector{}, "romance in mumbai", "", false},
		{"themes", ThemesDetector{}, "interstellar", "it aligns with themes like galaxies, rival, leaves", true},
		{"source", SourceDetector{}, "", "it comes from the Hollywood collection", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.detector.Detect(tt.query, item)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("%s.Detect() = (%q, %v), want (%q, %v)", tt.detector.Name(), got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestGenreDetectorSingleGenre(t *testing.T) {
	t.Parallel()
	got, ok := GenreDetector{}.Detect("", &catalog.Item{Genres: "Drama"})
	if !ok || got != "it fits the drama genre" {
		t.Errorf("Detect() = (%q, %v)", got, ok)
	}
	if _, ok := (GenreDetector{}).Detect("", &catalog.Item{}); ok {
		t.Error("empty genres must not fire")
	}
}

func TestSourceDetectorUnknownSource(t *testing.T) {
	t.Parallel()
	if _, ok := (SourceDetector{}).Detect("", &catalog.Item{Source: "Netflix"}); ok {
		t.Error("unknown sources must not fire")
	}
}

func TestExplain(t *testing.T) {
	t.Parallel()
	x := DefaultExplainer()

	item := &catalog.Item{
		Title:       "Love in Mumbai",
		Description: "Two strangers fall in love during the monsoon",
		Genres:      "Romance",
		Source:      catalog.SourceBollywoodIMDB,
	}
	got := x.Explain("  a romance in the rain  ", item)
	want := "Recommended because it matches your interest in romance; it fits the romance genre; " +
		"it aligns with themes like strangers, fall, love; it comes from the Bollywood collection."
	if got != want {
		t.Errorf("Explain() =\n%q\nwant\n%q", got, want)
	}
}

func TestExplainFallback(t *testing.T) {
	t.Parallel()
	x := DefaultExplainer()
	got := x.Explain("quiet", &catalog.Item{Title: "Heat", Source: "Other"})
	if got != `Recommended as a close semantic match for "quiet".` {
		t.Errorf("Explain() = %q", got)
	}

	empty := NewExplainer()
	if got := empty.Explain("anything", &catalog.Item{}); !strings.HasPrefix(got, "Recommended as a close semantic match") {
		t.Errorf("empty chain should fall back, got %q", got)
	}
}
