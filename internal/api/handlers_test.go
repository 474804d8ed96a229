// Marquee - Semantic Film Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/marquee/internal/catalog"
	"github.com/tomtom215/marquee/internal/embedding"
	"github.com/tomtom215/marquee/internal/models"
	"github.com/tomtom215/marquee/internal/recommend"
)

// envelope mirrors models.APIResponse with a typed payload.
type envelope[T any] struct {
	Status   string           `json:"status"`
	Data     T                `json:"data"`
	Metadata models.Metadata  `json:"metadata"`
	Error    *models.APIError `json:"error"`
}

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.New(
		catalog.Item{Title: "Space Saga", Description: "An interstellar adventure across distant galaxies", Genres: "scifi", Source: catalog.SourceTMDB},
		catalog.Item{Title: "Star Raiders", Description: "Pilots race through space to stop an alien armada", Genres: "scifi, action", Source: catalog.SourceTMDB},
		catalog.Item{Title: "Heat", Description: "A detective hunts a crew of professional thieves in Los Angeles", Genres: "crime, thriller", Source: catalog.SourceTMDB},
		catalog.Item{Title: "Love in Mumbai", Description: "Two strangers fall in love during the monsoon", Genres: "romance", Source: catalog.SourceBollywoodIMDB},
		catalog.Item{Title: "Cricket Dreams", Description: "A village boy dreams of playing for the national team", Genres: "sports, drama", Source: catalog.SourceBollywoodIMDB},
		catalog.Item{Title: "Desert Song", Description: "A singer crosses the Thar desert to find her father", Genres: "musical", Source: catalog.SourceBollywoodIMDB},
	)
	if err != nil {
		t.Fatalf("catalog.New() error = %v", err)
	}
	return c
}

func newTestEngine(t *testing.T, build bool) *recommend.Engine {
	t.Helper()
	e, err := recommend.NewEngine(nil, embedding.NewHashingProvider(256), zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	if build {
		if err := e.Build(context.Background(), testCatalog(t)); err != nil {
			t.Fatalf("Build() error = %v", err)
		}
	}
	return e
}

func newTestServer(t *testing.T, engine Recommender) http.Handler {
	t.Helper()
	mw := NewChiMiddleware(&ChiMiddlewareConfig{
		CORSAllowedOrigins: []string{"*"},
		RateLimitDisabled:  true,
	})
	return NewRouter(NewHandler(engine, time.Second, "test"), mw).Setup()
}

func do(t *testing.T, h http.Handler, method, target string, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) envelope[T] {
	t.Helper()
	var env envelope[T]
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("unmarshal %q: %v", rec.Body.String(), err)
	}
	return env
}

func TestHealthEndpoints(t *testing.T) {
	t.Parallel()

	notReady := newTestServer(t, newTestEngine(t, false))
	if rec := do(t, notReady, http.MethodGet, "/api/v1/health/live", nil); rec.Code != http.StatusOK {
		t.Errorf("live status = %d, want 200", rec.Code)
	}
	rec := do(t, notReady, http.MethodGet, "/api/v1/health/ready", nil)
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("ready status before build = %d, want 503", rec.Code)
	}
	if env := decode[any](t, rec); env.Error == nil || env.Error.Code != "NOT_READY" {
		t.Errorf("ready error = %+v, want NOT_READY", env.Error)
	}

	ready := newTestServer(t, newTestEngine(t, true))
	rec = do(t, ready, http.MethodGet, "/api/v1/health/ready", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("ready status after build = %d, want 200", rec.Code)
	}
	env := decode[models.HealthStatus](t, rec)
	if !env.Data.Ready || env.Data.Items != 6 {
		t.Errorf("health = %+v, want ready with 6 items", env.Data)
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("X-Request-ID header not set")
	}
}

func TestGetRecommendations(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t, newTestEngine(t, true))

	rec := do(t, srv, http.MethodGet, "/api/v1/recommendations?q=interstellar+adventure+across+distant+galaxies&k=3", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	env := decode[models.RecommendationsData](t, rec)
	if env.Status != "success" {
		t.Errorf("status = %q, want success", env.Status)
	}
	if env.Data.K != 3 || env.Data.Count != 3 || len(env.Data.Results) != 3 {
		t.Fatalf("k=%d count=%d results=%d, want 3/3/3", env.Data.K, env.Data.Count, len(env.Data.Results))
	}
	first := env.Data.Results[0]
	if first.Title != "Space Saga" || first.Rank != 1 {
		t.Errorf("first = %q rank %d, want Space Saga rank 1", first.Title, first.Rank)
	}
	if first.SourceLabel != "Hollywood" || first.Explanation == "" {
		t.Errorf("first = %+v, want Hollywood label and an explanation", first)
	}
	for i := 1; i < len(env.Data.Results); i++ {
		if env.Data.Results[i].Score > env.Data.Results[i-1].Score {
			t.Errorf("results not sorted by score at %d", i)
		}
	}
	if env.Metadata.RequestID == "" {
		t.Error("metadata request_id is empty")
	}
}

func TestGetRecommendationsDefaultK(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t, newTestEngine(t, true))

	rec := do(t, srv, http.MethodGet, "/api/v1/recommendations?q=romance", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	env := decode[models.RecommendationsData](t, rec)
	if want := recommend.DefaultConfig().DefaultK; env.Data.K != want {
		t.Errorf("k = %d, want default %d", env.Data.K, want)
	}
}

func TestRecommendationsSourceFilter(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t, newTestEngine(t, true))

	rec := do(t, srv, http.MethodGet, "/api/v1/recommendations?q=space+galaxies&k=6&source=bollywood", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	env := decode[models.RecommendationsData](t, rec)
	if env.Data.Count != 3 || env.Data.Filtered != 3 {
		t.Errorf("count=%d filtered=%d, want 3/3", env.Data.Count, env.Data.Filtered)
	}
	for _, r := range env.Data.Results {
		if r.Source != string(catalog.SourceBollywoodIMDB) {
			t.Errorf("result %q has source %q", r.Title, r.Source)
		}
	}
}

func TestPostRecommendations(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t, newTestEngine(t, true))

	body := []byte(`{"query":"a detective hunts thieves","k":2,"source":"hollywood"}`)
	rec := do(t, srv, http.MethodPost, "/api/v1/recommendations", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	env := decode[models.RecommendationsData](t, rec)
	if env.Data.K != 2 || env.Data.Source != string(catalog.SourceTMDB) {
		t.Errorf("k=%d source=%q, want 2/TMDB", env.Data.K, env.Data.Source)
	}
	if len(env.Data.Results) == 0 || env.Data.Results[0].Title != "Heat" {
		t.Errorf("results = %+v, want Heat first", env.Data.Results)
	}
}

func TestRecommendationsErrors(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t, newTestEngine(t, true))

	tests := []struct {
		name     string
		method   string
		target   string
		body     string
		wantCode int
		wantErr  string
	}{
		{"blank query", http.MethodGet, "/api/v1/recommendations?q=%20%20", "", http.StatusBadRequest, "INVALID_QUERY"},
		{"missing query", http.MethodGet, "/api/v1/recommendations", "", http.StatusBadRequest, "INVALID_QUERY"},
		{"k not integer", http.MethodGet, "/api/v1/recommendations?q=space&k=abc", "", http.StatusBadRequest, "VALIDATION_ERROR"},
		{"k zero", http.MethodGet, "/api/v1/recommendations?q=space&k=0", "", http.StatusBadRequest, "VALIDATION_ERROR"},
		{"k above max", http.MethodGet, "/api/v1/recommendations?q=space&k=500", "", http.StatusBadRequest, "VALIDATION_ERROR"},
		{"unknown source", http.MethodGet, "/api/v1/recommendations?q=space&source=nollywood", "", http.StatusBadRequest, "VALIDATION_ERROR"},
		{"bad json", http.MethodPost, "/api/v1/recommendations", "{not json", http.StatusBadRequest, "VALIDATION_ERROR"},
		{"unknown field", http.MethodPost, "/api/v1/recommendations", `{"query":"x","limit":3}`, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"blank post query", http.MethodPost, "/api/v1/recommendations", `{"query":" "}`, http.StatusBadRequest, "INVALID_QUERY"},
		{"unknown route", http.MethodGet, "/api/v1/nope", "", http.StatusNotFound, "NOT_FOUND"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var body []byte
			if tt.body != "" {
				body = []byte(tt.body)
			}
			rec := do(t, srv, tt.method, tt.target, body)
			if rec.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tt.wantCode, rec.Body.String())
			}
			env := decode[any](t, rec)
			if env.Status != "error" || env.Error == nil || env.Error.Code != tt.wantErr {
				t.Errorf("error = %+v, want code %s", env.Error, tt.wantErr)
			}
		})
	}
}

func TestRecommendationsNotReady(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t, newTestEngine(t, false))

	rec := do(t, srv, http.MethodGet, "/api/v1/recommendations?q=space", nil)
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}
	if env := decode[any](t, rec); env.Error.Code != "NOT_READY" {
		t.Errorf("code = %s, want NOT_READY", env.Error.Code)
	}
}

// stubRecommender returns a fixed error from Recommend.
type stubRecommender struct {
	*recommend.Engine
	err error
}

func (s stubRecommender) Recommend(context.Context, recommend.Request) (*recommend.Response, error) {
	return nil, s.err
}

func TestClassifyError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err      error
		wantCode int
		wantErr  string
	}{
		{&recommend.InvalidQueryError{Query: ""}, http.StatusBadRequest, "INVALID_QUERY"},
		{fmt.Errorf("wrap: %w", recommend.ErrInvalidK), http.StatusBadRequest, "VALIDATION_ERROR"},
		{recommend.ErrNotReady, http.StatusServiceUnavailable, "NOT_READY"},
		{fmt.Errorf("embed query: %w", &embedding.UnavailableError{Provider: "openai", Err: errors.New("down")}), http.StatusServiceUnavailable, "EMBEDDING_UNAVAILABLE"},
		{context.DeadlineExceeded, http.StatusGatewayTimeout, "RECOMMENDATION_TIMEOUT"},
		{fmt.Errorf("embed query: %w", &embedding.UnavailableError{Provider: "openai", Err: context.DeadlineExceeded}), http.StatusGatewayTimeout, "RECOMMENDATION_TIMEOUT"},
		{errors.New("boom"), http.StatusInternalServerError, "RECOMMENDATION_ERROR"},
	}
	for _, tt := range tests {
		status, code, _ := classifyError(tt.err)
		if status != tt.wantCode || code != tt.wantErr {
			t.Errorf("classifyError(%v) = %d %s, want %d %s", tt.err, status, code, tt.wantCode, tt.wantErr)
		}
	}

	srv := newTestServer(t, stubRecommender{Engine: newTestEngine(t, true), err: &embedding.UnavailableError{Provider: "openai", Err: errors.New("down")}})
	rec := do(t, srv, http.MethodGet, "/api/v1/recommendations?q=space", nil)
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
	if bytes.Contains(rec.Body.Bytes(), []byte("down")) {
		t.Error("internal error text leaked to the client")
	}

	timedOut := &embedding.UnavailableError{Provider: "openai", Err: fmt.Errorf("embed batch: %w", context.DeadlineExceeded)}
	srv = newTestServer(t, stubRecommender{Engine: newTestEngine(t, true), err: timedOut})
	rec = do(t, srv, http.MethodGet, "/api/v1/recommendations?q=space", nil)
	if rec.Code != http.StatusGatewayTimeout {
		t.Errorf("provider deadline status = %d, want 504", rec.Code)
	}
}

func TestCatalogAndSources(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t, newTestEngine(t, true))

	rec := do(t, srv, http.MethodGet, "/api/v1/catalog", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("catalog status = %d", rec.Code)
	}
	info := decode[models.CatalogInfo](t, rec).Data
	if !info.Ready || info.Items != 6 || info.BuiltAt == nil {
		t.Errorf("catalog = %+v", info)
	}
	if info.Sources[string(catalog.SourceTMDB)] != 3 || info.MaxK != recommend.DefaultConfig().MaxK {
		t.Errorf("catalog sources = %v max_k = %d", info.Sources, info.MaxK)
	}

	rec = do(t, srv, http.MethodGet, "/api/v1/sources", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("sources status = %d", rec.Code)
	}
	opts := decode[[]models.SourceOption](t, rec).Data
	if len(opts) != 3 {
		t.Fatalf("sources = %+v, want all + 2", opts)
	}
	if opts[0].Value != "all" || opts[0].Items != 6 {
		t.Errorf("first option = %+v, want all/6", opts[0])
	}
	if opts[1].Label != "Hollywood" || opts[1].Items != 3 {
		t.Errorf("second option = %+v, want Hollywood/3", opts[1])
	}
}

func TestRateLimitExceeded(t *testing.T) {
	t.Parallel()
	mw := NewChiMiddleware(&ChiMiddlewareConfig{
		CORSAllowedOrigins: []string{"*"},
		RateLimitRequests:  1,
		RateLimitWindow:    time.Minute,
	})
	srv := NewRouter(NewHandler(newTestEngine(t, true), time.Second, "test"), mw).Setup()

	if rec := do(t, srv, http.MethodGet, "/api/v1/sources", nil); rec.Code != http.StatusOK {
		t.Fatalf("first request status = %d", rec.Code)
	}
	rec := do(t, srv, http.MethodGet, "/api/v1/sources", nil)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("second request status = %d, want 429", rec.Code)
	}
	if env := decode[any](t, rec); env.Error.Code != "RATE_LIMIT_EXCEEDED" {
		t.Errorf("code = %s", env.Error.Code)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t, newTestEngine(t, true))
	_ = do(t, srv, http.MethodGet, "/api/v1/health/live", nil)

	rec := do(t, srv, http.MethodGet, "/metrics", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("metrics status = %d", rec.Code)
	}
	if !bytes.Contains(rec.Body.Bytes(), []byte("marquee_")) {
		t.Error("metrics output has no marquee_ series")
	}
}

func TestSanitizeLogValue(t *testing.T) {
	t.Parallel()
	if got := sanitizeLogValue("a\nb\x1b"); got != `a\x0ab\x1b` {
		t.Errorf("sanitizeLogValue() = %q", got)
	}
}

func TestRecommendationsFilterByEveryAdvertisedSource(t *testing.T) {
	t.Parallel()

	cat, err := catalog.New(
		catalog.Item{Title: "Space Saga", Description: "An interstellar adventure across distant galaxies", Genres: "scifi", Source: catalog.SourceTMDB},
		catalog.Item{Title: "Heat", Description: "A detective hunts a crew of professional thieves", Genres: "crime", Source: catalog.SourceTMDB},
		catalog.Item{Title: "Orbit Academy", Description: "Cadets train for space combat", Genres: "anime, scifi", Source: "Crunchyroll"},
		catalog.Item{Title: "Spirit Lantern", Description: "A girl guides lost spirits home", Genres: "anime, fantasy", Source: "Crunchyroll"},
	)
	if err != nil {
		t.Fatalf("catalog.New() error = %v", err)
	}
	engine, err := recommend.NewEngine(nil, embedding.NewHashingProvider(256), zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	if err := engine.Build(context.Background(), cat); err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	srv := newTestServer(t, engine)

	opts := decode[[]models.SourceOption](t, do(t, srv, http.MethodGet, "/api/v1/sources", nil)).Data
	if len(opts) != 3 || opts[2].Value != "Crunchyroll" {
		t.Fatalf("sources = %+v, want all, TMDB and Crunchyroll", opts)
	}

	for _, opt := range opts {
		target := "/api/v1/recommendations?q=space&k=4&source=" + url.QueryEscape(opt.Value)
		rec := do(t, srv, http.MethodGet, target, nil)
		if rec.Code != http.StatusOK {
			t.Errorf("source=%s status = %d, body %s", opt.Value, rec.Code, rec.Body.String())
			continue
		}
		data := decode[models.RecommendationsData](t, rec).Data
		if len(data.Results) != opt.Items {
			t.Errorf("source=%s returned %d results, want %d", opt.Value, len(data.Results), opt.Items)
		}
		if opt.Value == "all" {
			continue
		}
		for _, r := range data.Results {
			if r.Source != opt.Value {
				t.Errorf("source=%s returned %q from %q", opt.Value, r.Title, r.Source)
			}
		}
	}

	rec := do(t, srv, http.MethodGet, "/api/v1/recommendations?q=space&source=crunchyroll", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("lowercase source status = %d, want 200", rec.Code)
	}
	rec = do(t, srv, http.MethodGet, "/api/v1/recommendations?q=space&source=netflix", nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("unknown source status = %d, want 400", rec.Code)
	}
}
