// Marquee - Semantic Film Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package recommend

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tomtom215/marquee/internal/catalog"
	"github.com/tomtom215/marquee/internal/config"
	"github.com/tomtom215/marquee/internal/embedding"
)

// ConfigFrom maps the recommend section of the application config onto an engine Config.
func ConfigFrom(cfg *config.RecommendConfig) *Config {
	return &Config{
		DefaultK:          cfg.DefaultK,
		MaxK:              cfg.MaxK,
		ParallelThreshold: cfg.ParallelThreshold,
		Workers:           cfg.Workers,
	}
}

// Bootstrap performs the startup sequence shared by the server and the CLI:
// open and load the catalog, construct the embedding provider with its query cache,
// then build the index. The returned engine is Ready.
//
// Errors are the typed startup errors: *catalog.DataLoadError or *embedding.UnavailableError,
// possibly wrapped.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func Bootstrap(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*Engine, error) {
	reader, err := catalog.Open(cfg.Catalog.Format, cfg.Catalog.Path, cfg.Catalog.Table)
	if err != nil {
		return nil, err
	}

	cat, err := catalog.Load(ctx, reader)
	if err != nil {
		return nil, err
	}
	logger.Info().
		Str("origin", cat.Origin).
		Int("items", cat.Len()).
		Int("dropped", cat.Dropped).
		Msg("Catalog loaded")

	provider, err := embedding.New(&cfg.Embedding, logger)
	if err != nil {
		return nil, err
	}
	provider = embedding.NewCached(provider, cfg.Embedding.QueryCacheSize, cfg.Embedding.QueryCacheTTL)

	engine, err := NewEngine(ConfigFrom(&cfg.Recommend), provider, logger)
	if err != nil {
		return nil, fmt.Errorf("create engine: %w", err)
	}
	if err := engine.Build(ctx, cat); err != nil {
		return nil, err
	}
	return engine, nil
}
