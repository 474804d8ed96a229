// Marquee - Semantic Film Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package recommend

import (
	"time"

	"github.com/tomtom215/marquee/internal/catalog"
	"github.com/tomtom215/marquee/internal/embedding"
)

// Index pairs every catalog item with its embedding. It is immutable once built.
type Index struct {
	catalog   *catalog.Catalog
	vectors   []embedding.Vector
	model     string
	dimension int
	builtAt   time.Time
	buildTime time.Duration
}

// Len returns the number of indexed items.
func (ix *Index) Len() int { return len(ix.vectors) }

// Match is a ranked position in the Index.
type Match struct {
	// Index is the catalog position of the matched item.
	Index int `json:"index"`

	// Score is the cosine similarity in [-1, 1].
	Score float64 `json:"score"`
}

// Request is a recommendation query.
type Request struct {
	// Query is the free-text description of what the user wants to watch.
	Query string `json:"query"`

	// K is the number of results to rank before filtering. K <= 0 yields no results.
	K int `json:"k"`

	// Source, when set, keeps only results from that source.
	Source catalog.Source `json:"source,omitempty"`

	// RequestID correlates logs. Generated when empty.
	RequestID string `json:"request_id,omitempty"`
}

// Result is a single recommended item.
type Result struct {
	catalog.Item

	// Rank is the 1-based position in the unfiltered top-k.
	Rank int `json:"rank"`

	// Score is the cosine similarity between query and item.
	Score float64 `json:"score"`

	// Explanation says why the item was picked.
	Explanation string `json:"explanation"`
}

// Response contains the results and request metadata.
type Response struct {
	// Results are ordered by descending score. Never nil.
	Results []Result `json:"results"`

	Metadata ResponseMetadata `json:"metadata"`
}

// ResponseMetadata describes how a response was produced.
type ResponseMetadata struct {
	RequestID string `json:"request_id"`
	Query     string `json:"query"`
	K         int    `json:"k"`
	Source    string `json:"source,omitempty"`

	// TotalCandidates is the number of indexed items scored.
	TotalCandidates int `json:"total_candidates"`

	// Filtered is the number of top-k results removed by the source filter.
	Filtered int `json:"filtered"`

	LatencyMS int64     `json:"latency_ms"`
	Model     string    `json:"model"`
	Timestamp time.Time `json:"timestamp"`
}

// Stats summarizes the engine's index and request counters.
type Stats struct {
	Ready     bool           `json:"ready"`
	Items     int            `json:"items"`
	Sources   map[string]int `json:"sources"`
	Model     string         `json:"model"`
	Dimension int            `json:"dimension"`
	BuiltAt   time.Time      `json:"built_at,omitempty"`
	BuildMS   int64          `json:"build_ms"`

	Requests       int64 `json:"requests"`
	Errors         int64 `json:"errors"`
	InvalidQueries int64 `json:"invalid_queries"`
	EmptyResults   int64 `json:"empty_results"`
}
