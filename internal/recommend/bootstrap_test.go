// Marquee - Semantic Film Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package recommend

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/marquee/internal/catalog"
	"github.com/tomtom215/marquee/internal/config"
	"github.com/tomtom215/marquee/internal/embedding"
)

const bootstrapCSV = `title,description,genres,extra,source
Space Saga,An interstellar adventure across distant galaxies,scifi,,TMDB
Love in Mumbai,Two strangers fall in love during the monsoon,romance,,Bollywood_IMDB
,A row without a title,drama,,TMDB
Heat,A detective hunts a crew of professional thieves,"crime, thriller",Michael Mann,TMDB
`

func bootstrapConfig(t *testing.T, path string) *config.Config {
	t.Helper()
	return &config.Config{
		Catalog: config.CatalogConfig{Path: path, Format: "auto"},
		Embedding: config.EmbeddingConfig{
			Provider:       config.ProviderHashing,
			Dimension:      128,
			QueryCacheSize: 16,
			QueryCacheTTL:  time.Minute,
		},
		Recommend: config.RecommendConfig{DefaultK: 2, MaxK: 3, ParallelThreshold: 100},
	}
}

func TestConfigFrom(t *testing.T) {
	t.Parallel()
	got := ConfigFrom(&config.RecommendConfig{DefaultK: 3, MaxK: 7, ParallelThreshold: 50, Workers: 2})
	want := Config{DefaultK: 3, MaxK: 7, ParallelThreshold: 50, Workers: 2}
	if *got != want {
		t.Errorf("ConfigFrom() = %+v, want %+v", *got, want)
	}
}

func TestBootstrap(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "catalog.csv")
	if err := os.WriteFile(path, []byte(bootstrapCSV), 0o600); err != nil {
		t.Fatal(err)
	}

	engine, err := Bootstrap(context.Background(), bootstrapConfig(t, path), zerolog.Nop())
	if err != nil {
		t.Fatalf("Bootstrap() error = %v", err)
	}
	if !engine.Ready() {
		t.Fatal("engine should be ready after Bootstrap")
	}
	stats := engine.Stats()
	if stats.Items != 3 {
		t.Errorf("items = %d, want 3 (blank title dropped)", stats.Items)
	}
	if engine.Config().DefaultK != 2 {
		t.Errorf("DefaultK = %d, want 2", engine.Config().DefaultK)
	}

	resp, err := engine.Recommend(context.Background(), Request{Query: "detective thieves", K: 1})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if len(resp.Results) != 1 || resp.Results[0].Title != "Heat" {
		t.Errorf("results = %+v, want Heat", resp.Results)
	}
}

func TestBootstrapErrors(t *testing.T) {
	t.Parallel()

	t.Run("missing catalog", func(t *testing.T) {
		t.Parallel()
		cfg := bootstrapConfig(t, filepath.Join(t.TempDir(), "missing.csv"))
		_, err := Bootstrap(context.Background(), cfg, zerolog.Nop())
		if !errors.Is(err, catalog.ErrDataLoad) {
			t.Errorf("error = %v, want ErrDataLoad", err)
		}
	})

	t.Run("unknown provider", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "catalog.csv")
		if err := os.WriteFile(path, []byte(bootstrapCSV), 0o600); err != nil {
			t.Fatal(err)
		}
		cfg := bootstrapConfig(t, path)
		cfg.Embedding.Provider = "word2vec"
		_, err := Bootstrap(context.Background(), cfg, zerolog.Nop())
		if !errors.Is(err, embedding.ErrEmbeddingUnavailable) {
			t.Errorf("error = %v, want ErrEmbeddingUnavailable", err)
		}
	})
}
