// Marquee - Semantic Film Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package recommend

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tomtom215/marquee/internal/catalog"
	"github.com/tomtom215/marquee/internal/embedding"
	"github.com/tomtom215/marquee/internal/metrics"
)

// Engine answers recommendation requests against an immutable Index.
// It is safe for concurrent use.
type Engine struct {
	config    *Config
	provider  embedding.Provider
	explainer *Explainer
	logger    zerolog.Logger

	// index is nil until Build succeeds and never changes afterwards.
	index   atomic.Pointer[Index]
	buildMu sync.Mutex

	requestCount   atomic.Int64
	errorCount     atomic.Int64
	invalidQueries atomic.Int64
	emptyResults   atomic.Int64
}

// NewEngine creates an engine that embeds with provider. A nil cfg uses DefaultConfig.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, provider embedding.Provider, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if provider == nil {
		return nil, errors.New("embedding provider is required")
	}

	return &Engine{
		config:    cfg,
		provider:  provider,
		explainer: DefaultExplainer(),
		logger:    logger.With().Str("component", "recommend").Logger(),
	}, nil
}

// SetExplainer replaces the explanation chain. Call before serving requests.
func (e *Engine) SetExplainer(x *Explainer) {
	e.explainer = x
}

// Config returns a copy of the engine configuration.
func (e *Engine) Config() Config {
	return *e.config
}

// Build embeds every catalog item in a single provider call and publishes the Index.
// It succeeds at most once; later calls return ErrAlreadyBuilt.
func (e *Engine) Build(ctx context.Context, cat *catalog.Catalog) error {
	e.buildMu.Lock()
	defer e.buildMu.Unlock()

	if e.index.Load() != nil {
		return ErrAlreadyBuilt
	}
	if cat == nil || cat.Len() == 0 {
		return &catalog.DataLoadError{Reason: "catalog is empty"}
	}

	start := time.Now()
	e.logger.Info().
		Int("items", cat.Len()).
		Str("model", e.provider.Model()).
		Int("dimension", e.provider.Dimension()).
		Msg("Building recommendation index")

	vectors, err := e.provider.Embed(ctx, cat.SearchTexts())
	if err != nil {
		return fmt.Errorf("embed catalog: %w", err)
	}
	if len(vectors) != cat.Len() {
		return fmt.Errorf("embed catalog: got %d vectors for %d items", len(vectors), cat.Len())
	}
	dim := e.provider.Dimension()
	for i, v := range vectors {
		if len(v) != dim {
			return fmt.Errorf("embed catalog: vector %d has dimension %d, want %d", i, len(v), dim)
		}
	}

	ix := &Index{
		catalog:   cat,
		vectors:   vectors,
		model:     e.provider.Model(),
		dimension: dim,
		builtAt:   time.Now(),
		buildTime: time.Since(start),
	}
	if !e.index.CompareAndSwap(nil, ix) {
		return ErrAlreadyBuilt
	}

	counts := make(map[string]int, len(cat.Sources()))
	for src, n := range cat.CountBySource() {
		counts[string(src)] = n
	}
	metrics.RecordIndexBuild(ix.buildTime, counts)

	e.logger.Info().
		Int("items", ix.Len()).
		Dur("duration", ix.buildTime).
		Msg("Recommendation index ready")
	return nil
}

// Ready reports whether the Index has been built.
func (e *Engine) Ready() bool {
	return e.index.Load() != nil
}

// Stats returns index details and request counters.
func (e *Engine) Stats() Stats {
	s := Stats{
		Model:          e.provider.Model(),
		Dimension:      e.provider.Dimension(),
		Sources:        map[string]int{},
		Requests:       e.requestCount.Load(),
		Errors:         e.errorCount.Load(),
		InvalidQueries: e.invalidQueries.Load(),
		EmptyResults:   e.emptyResults.Load(),
	}
	ix := e.index.Load()
	if ix == nil {
		return s
	}
	s.Ready = true
	s.Items = ix.Len()
	s.Model = ix.model
	s.Dimension = ix.dimension
	s.BuiltAt = ix.builtAt
	s.BuildMS = ix.buildTime.Milliseconds()
	for src, n := range ix.catalog.CountBySource() {
		s.Sources[string(src)] = n
	}
	return s
}

// Sources returns the sources present in the index, in first-seen order.
func (e *Engine) Sources() []catalog.Source {
	ix := e.index.Load()
	if ix == nil {
		return nil
	}
	return ix.catalog.Sources()
}

// Recommend ranks the index against req.Query and explains each result.
//
// The source filter is applied after top-k truncation without backfill, so a filtered
// response may hold fewer than K results even when more matching items exist.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) Recommend(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	e.requestCount.Add(1)

	req = e.prepareRequest(req)
	logger := e.createRequestLogger(req)

	if req.Query == "" {
		e.invalidQueries.Add(1)
		metrics.RecordRecommendation("invalid_query", time.Since(start), 0)
		return nil, &InvalidQueryError{Query: req.Query, Reason: "query is empty"}
	}

	ix := e.index.Load()
	if ix == nil {
		e.errorCount.Add(1)
		metrics.RecordRecommendation("not_ready", time.Since(start), 0)
		return nil, ErrNotReady
	}

	logger.Debug().Msg("processing recommendation request")

	if req.K <= 0 {
		return e.finish(req, ix, nil, 0, start, logger), nil
	}

	vecs, err := e.provider.Embed(ctx, []string{req.Query})
	if err != nil {
		e.errorCount.Add(1)
		metrics.RecordRecommendation("error", time.Since(start), 0)
		return nil, fmt.Errorf("embed query: %w", err)
	}
	if len(vecs) != 1 {
		e.errorCount.Add(1)
		metrics.RecordRecommendation("error", time.Since(start), 0)
		return nil, fmt.Errorf("embed query: got %d vectors", len(vecs))
	}

	matches := e.rank(ix, vecs[0], req.K)
	results := e.explain(req.Query, ix, matches)
	results, filtered := filterBySource(results, req.Source)

	return e.finish(req, ix, results, filtered, start, logger), nil
}

// prepareRequest trims the query, canonicalizes the source and assigns a request ID.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) prepareRequest(req Request) Request {
	req.Query = strings.TrimSpace(req.Query)
	if src, ok := catalog.ResolveFilter(string(req.Source), e.Sources()); ok {
		req.Source = src
	}
	if req.RequestID == "" {
		req.RequestID = uuid.New().String()
	}
	return req
}

// createRequestLogger creates a logger with request context.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) createRequestLogger(req Request) zerolog.Logger {
	return e.logger.With().
		Str("request_id", req.RequestID).
		Int("k", req.K).
		Str("source", string(req.Source)).
		Logger()
}

func (e *Engine) rank(ix *Index, query embedding.Vector, k int) []Match {
	if e.config.ParallelThreshold > 0 && ix.Len() >= e.config.ParallelThreshold {
		return RankParallel(query, ix.vectors, k, e.config.workers())
	}
	return Rank(query, ix.vectors, k)
}

func (e *Engine) explain(query string, ix *Index, matches []Match) []Result {
	results := make([]Result, len(matches))
	for i, m := range matches {
		item := ix.catalog.Item(m.Index)
		results[i] = Result{
			Item:        item,
			Rank:        i + 1,
			Score:       m.Score,
			Explanation: e.explainer.Explain(query, &item),
		}
	}
	return results
}

// filterBySource keeps results from src in their original order. An empty src keeps all.
func filterBySource(results []Result, src catalog.Source) ([]Result, int) {
	if src == "" {
		return results, 0
	}
	kept := results[:0]
	for i := range results {
		if results[i].Source == src {
			kept = append(kept, results[i])
		}
	}
	return kept, len(results) - len(kept)
}

//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) finish(req Request, ix *Index, results []Result, filtered int, start time.Time, logger zerolog.Logger) *Response {
	if results == nil {
		results = []Result{}
	}
	if len(results) == 0 {
		e.emptyResults.Add(1)
	}
	latency := time.Since(start)
	metrics.RecordRecommendation("success", latency, len(results))

	logger.Debug().
		Int("returned", len(results)).
		Int("filtered", filtered).
		Int64("latency_ms", latency.Milliseconds()).
		Msg("recommendation complete")

	return &Response{
		Results: results,
		Metadata: ResponseMetadata{
			RequestID:       req.RequestID,
			Query:           req.Query,
			K:               req.K,
			Source:          string(req.Source),
			TotalCandidates: ix.Len(),
			Filtered:        filtered,
			LatencyMS:       latency.Milliseconds(),
			Model:           ix.model,
			Timestamp:       time.Now(),
		},
	}
}
