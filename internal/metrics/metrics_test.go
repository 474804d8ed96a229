// Marquee - Semantic Film Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package metrics

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordRecommendation(t *testing.T) {
	before := testutil.ToFloat64(RecommendRequests.WithLabelValues("invalid_query"))

	RecordRecommendation("invalid_query", time.Millisecond, 0)

	after := testutil.ToFloat64(RecommendRequests.WithLabelValues("invalid_query"))
	if after != before+1 {
		t.Errorf("invalid_query counter = %v, want %v", after, before+1)
	}
}

func TestRecordEmbedding(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status string
	}{
		{"success", nil, "success"},
		{"failure", errors.New("boom"), "error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := EmbeddingRequests.WithLabelValues("test-provider", tt.status)
			before := testutil.ToFloat64(c)
			RecordEmbedding("test-provider", 5*time.Millisecond, tt.err)
			if got := testutil.ToFloat64(c); got != before+1 {
				t.Errorf("counter = %v, want %v", got, before+1)
			}
		})
	}
}

func TestRecordIndexBuild(t *testing.T) {
	RecordIndexBuild(1500*time.Millisecond, map[string]int{"TMDB": 12, "Bollywood_IMDB": 7})

	if got := testutil.ToFloat64(CatalogItems.WithLabelValues("TMDB")); got != 12 {
		t.Errorf("catalog items TMDB = %v, want 12", got)
	}
	if got := testutil.ToFloat64(IndexBuildDuration); got != 1.5 {
		t.Errorf("build duration = %v, want 1.5", got)
	}
	if got := testutil.ToFloat64(IndexReady); got != 1 {
		t.Errorf("index ready = %v, want 1", got)
	}
}

func TestTrackActiveRequestConcurrent(t *testing.T) {
	before := testutil.ToFloat64(APIActiveRequests)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			TrackActiveRequest(true)
			TrackActiveRequest(false)
		}()
	}
	wg.Wait()

	if got := testutil.ToFloat64(APIActiveRequests); got != before {
		t.Errorf("active requests = %v, want %v", got, before)
	}
}

func TestRecordAPIRequest(t *testing.T) {
	c := APIRequestsTotal.WithLabelValues("GET", "/api/v1/recommendations", "200")
	before := testutil.ToFloat64(c)
	RecordAPIRequest("GET", "/api/v1/recommendations", "200", 20*time.Millisecond)
	if got := testutil.ToFloat64(c); got != before+1 {
		t.Errorf("api requests = %v, want %v", got, before+1)
	}
}
