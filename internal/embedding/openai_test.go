// Marquee - Semantic Film Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package embedding

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/marquee/internal/config"
	"github.com/tomtom215/marquee/internal/logging"
)

type embeddingRequest struct {
	Input      []string `json:"input"`
	Model      string   `json:"model"`
	Dimensions int      `json:"dimensions"`
}

type embeddingDatum struct {
	Object    string    `json:"object"`
	Embedding []float32 `json:"embedding"`
	Index     int       `json:"index"`
}

// fakeOpenAI serves /v1/embeddings, failing the first failures calls with status.
func fakeOpenAI(t *testing.T, dim, failures, status int) (*httptest.Server, *atomic.Int32, *atomic.Value) {
	t.Helper()
	var calls atomic.Int32
	var last atomic.Value

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := calls.Add(1)
		if r.URL.Path != "/v1/embeddings" {
			http.NotFound(w, r)
			return
		}
		if int(n) <= failures {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(status)
			_, _ = w.Write([]byte(`{"error":{"message":"upstream failure","type":"server_error"}}`))
			return
		}

		var req embeddingRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		last.Store(req)

		// Reverse order so callers must honor the index field.
		data := make([]embeddingDatum, 0, len(req.Input))
		for i := len(req.Input) - 1; i >= 0; i-- {
			vec := make([]float32, dim)
			vec[i%dim] = float32(len(req.Input[i]))
			data = append(data, embeddingDatum{Object: "embedding", Embedding: vec, Index: i})
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"object": "list",
			"data":   data,
			"model":  req.Model,
			"usage":  map[string]int{"prompt_tokens": 1, "total_tokens": 1},
		})
	}))
	t.Cleanup(srv.Close)
	return srv, &calls, &last
}

func openAIConfig(baseURL string, dim int) *config.EmbeddingConfig {
	return &config.EmbeddingConfig{
		Provider:   config.ProviderOpenAI,
		Model:      "text-embedding-3-small",
		Dimension:  dim,
		APIKey:     "test-key",
		BaseURL:    baseURL + "/v1",
		Timeout:    5 * time.Second,
		BatchSize:  2,
		MaxRetries: 2,
		RetryDelay: time.Millisecond,
	}
}

func TestOpenAIProviderMissingKey(t *testing.T) {
	t.Parallel()
	cfg := openAIConfig("http://127.0.0.1:1", 8)
	cfg.APIKey = ""

	_, err := NewOpenAIProvider(cfg, logging.NewTestLogger(io.Discard))
	if !errors.Is(err, ErrEmbeddingUnavailable) {
		t.Fatalf("expected ErrEmbeddingUnavailable, got %v", err)
	}
}

func TestOpenAIProviderEmbedBatches(t *testing.T) {
	t.Parallel()
	srv, calls, last := fakeOpenAI(t, 8, 0, 0)

	p, err := NewOpenAIProvider(openAIConfig(srv.URL, 8), logging.NewTestLogger(io.Discard))
	if err != nil {
		t.Fatalf("NewOpenAIProvider() error = %v", err)
	}

	texts := []string{"a", "", "bbb", "cc", "dddd"}
	vecs, err := p.Embed(context.Background(), texts)
	if err != nil {
		t.Fatalf("Embed() error = %v", err)
	}
	if len(vecs) != len(texts) {
		t.Fatalf("got %d vectors, want %d", len(vecs), len(texts))
	}
	// Four non-empty texts in batches of two.
	if got := calls.Load(); got != 2 {
		t.Errorf("requests = %d, want 2", got)
	}
	if Norm(vecs[1]) != 0 || len(vecs[1]) != 8 {
		t.Errorf("empty text should map to an 8-dim zero vector, got %v", vecs[1])
	}
	if Norm(vecs[0]) != 1 || Norm(vecs[2]) != 3 || Norm(vecs[3]) != 2 || Norm(vecs[4]) != 4 {
		t.Errorf("vectors not in input order: %v", vecs)
	}

	req, _ := last.Load().(embeddingRequest)
	if req.Model != "text-embedding-3-small" || req.Dimensions != 8 {
		t.Errorf("unexpected request %+v", req)
	}
}

func TestOpenAIProviderRetriesServerErrors(t *testing.T) {
	t.Parallel()
	srv, calls, _ := fakeOpenAI(t, 4, 2, http.StatusServiceUnavailable)

	p, err := NewOpenAIProvider(openAIConfig(srv.URL, 4), logging.NewTestLogger(io.Discard))
	if err != nil {
		t.Fatalf("NewOpenAIProvider() error = %v", err)
	}
	if _, err := p.Embed(context.Background(), []string{"heat"}); err != nil {
		t.Fatalf("Embed() error = %v", err)
	}
	if got := calls.Load(); got != 3 {
		t.Errorf("requests = %d, want 3", got)
	}
}

func TestOpenAIProviderDoesNotRetryClientErrors(t *testing.T) {
	t.Parallel()
	srv, calls, _ := fakeOpenAI(t, 4, 10, http.StatusBadRequest)

	p, err := NewOpenAIProvider(openAIConfig(srv.URL, 4), logging.NewTestLogger(io.Discard))
	if err != nil {
		t.Fatalf("NewOpenAIProvider() error = %v", err)
	}
	_, err = p.Embed(context.Background(), []string{"heat"})
	if !errors.Is(err, ErrEmbeddingUnavailable) {
		t.Fatalf("expected ErrEmbeddingUnavailable, got %v", err)
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("requests = %d, want 1", got)
	}
}

func TestOpenAIProviderDimensionMismatch(t *testing.T) {
	t.Parallel()
	srv, _, _ := fakeOpenAI(t, 6, 0, 0)

	p, err := NewOpenAIProvider(openAIConfig(srv.URL, 8), logging.NewTestLogger(io.Discard))
	if err != nil {
		t.Fatalf("NewOpenAIProvider() error = %v", err)
	}
	_, err = p.Embed(context.Background(), []string{"heat"})
	if !errors.Is(err, ErrEmbeddingUnavailable) {
		t.Fatalf("expected ErrEmbeddingUnavailable, got %v", err)
	}
}

func TestRetryable(t *testing.T) {
	t.Parallel()
	if retryable(context.Canceled) {
		t.Error("context.Canceled must not be retried")
	}
	if !retryable(errors.New("connection reset")) {
		t.Error("transport errors should be retried")
	}
	for code, want := range map[int]bool{
		http.StatusTooManyRequests:     true,
		http.StatusBadGateway:          true,
		http.StatusBadRequest:          false,
		http.StatusUnauthorized:        false,
		http.StatusInternalServerError: true,
	} {
		if got := retryableStatus(code); got != want {
			t.Errorf("retryableStatus(%d) = %v, want %v", code, got, want)
		}
	}
}

func TestBackoff(t *testing.T) {
	t.Parallel()
	if d := backoff(100*time.Millisecond, 0); d != 0 {
		t.Errorf("attempt 0 backoff = %v, want 0", d)
	}
	for attempt, base := range map[int]time.Duration{1: 100 * time.Millisecond, 3: 400 * time.Millisecond} {
		d := backoff(100*time.Millisecond, attempt)
		if d < base*3/4 || d > base*5/4 {
			t.Errorf("backoff(attempt %d) = %v, want %v ±25%%", attempt, d, base)
		}
	}
	if d := backoff(time.Second, 20); d > maxBackoff*5/4 {
		t.Errorf("backoff not capped: %v", d)
	}
}
