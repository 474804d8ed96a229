// Marquee - Semantic Film Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package models

import "time"

// RecommendRequest is the body of POST /api/v1/recommendations.
// K is a pointer so an omitted value can be told apart from an explicit zero.
type RecommendRequest struct {
	Query  string `json:"query" validate:"max=1000"`
	K      *int   `json:"k,omitempty" validate:"omitempty,min=1"`
	Source string `json:"source,omitempty" validate:"omitempty,film_source"`
}

// Recommendation is one ranked film.
type Recommendation struct {
	Rank        int      `json:"rank"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Genres      string   `json:"genres"`
	GenreList   []string `json:"genre_list"`
	Extra       string   `json:"extra,omitempty"`
	Source      string   `json:"source"`
	SourceLabel string   `json:"source_label"`
	Score       float64  `json:"score"`
	Explanation string   `json:"explanation"`
}

// RecommendationsData is the payload of a recommendation response.
type RecommendationsData struct {
	Query           string           `json:"query"`
	K               int              `json:"k"`
	Source          string           `json:"source,omitempty"`
	Count           int              `json:"count"`
	Filtered        int              `json:"filtered"`
	TotalCandidates int              `json:"total_candidates"`
	Model           string           `json:"model"`
	Results         []Recommendation `json:"results"`
}

// CatalogInfo describes the loaded catalog and index.
type CatalogInfo struct {
	Ready     bool           `json:"ready"`
	Items     int            `json:"items"`
	Sources   map[string]int `json:"sources"`
	Model     string         `json:"model"`
	Dimension int            `json:"dimension"`
	BuiltAt   *time.Time     `json:"built_at,omitempty"`
	BuildMS   int64          `json:"build_ms"`
	DefaultK  int            `json:"default_k"`
	MaxK      int            `json:"max_k"`
}

// SourceOption is one entry of the source filter menu.
type SourceOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
	Items int    `json:"items"`
}

// HealthStatus is the payload of the health endpoints.
type HealthStatus struct {
	Status  string `json:"status"`
	Ready   bool   `json:"ready"`
	Items   int    `json:"items"`
	Version string `json:"version,omitempty"`
	Uptime  string `json:"uptime,omitempty"`
}
