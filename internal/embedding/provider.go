// Marquee - Semantic Film Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package embedding maps text to fixed-length dense vectors.
//
// Providers are pure for a fixed model: the same text always yields the same
// vector. Empty or whitespace-only text yields the zero vector of the provider's
// dimension and never fails. Every failure wraps ErrEmbeddingUnavailable.
package embedding

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/marquee/internal/config"
	"github.com/tomtom215/marquee/internal/metrics"
)

// Vector is a dense embedding.
type Vector []float32

// Provider embeds batches of text.
type Provider interface {
	// Embed returns one vector per input text, in input order.
	Embed(ctx context.Context, texts []string) ([]Vector, error)

	// Dimension is the length of every returned vector.
	Dimension() int

	// Model identifies the model that produced the vectors.
	Model() string
}

// ErrEmbeddingUnavailable is wrapped by every provider failure.
var ErrEmbeddingUnavailable = errors.New("embedding unavailable")

// UnavailableError reports that a provider could not be initialized or failed to encode.
type UnavailableError struct {
	Provider string
	Err      error
}

func (e *UnavailableError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("embedding provider %s unavailable", e.Provider)
	}
	return fmt.Sprintf("embedding provider %s unavailable: %v", e.Provider, e.Err)
}

func (e *UnavailableError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrEmbeddingUnavailable) match any UnavailableError.
func (e *UnavailableError) Is(target error) bool {
	return target == ErrEmbeddingUnavailable
}

func unavailable(provider string, err error) error {
	var ue *UnavailableError
	if errors.As(err, &ue) {
		return err
	}
	return &UnavailableError{Provider: provider, Err: err}
}

// Zero returns a zero vector of length dim.
func Zero(dim int) Vector {
	return make(Vector, dim)
}

// Norm returns the L2 norm of v computed in float64.
func Norm(v Vector) float64 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	return math.Sqrt(sum)
}

// normalize scales v to unit length in place. Zero vectors are left untouched.
func normalize(v Vector) {
	n := Norm(v)
	if n == 0 {
		return
	}
	inv := 1 / n
	for i := range v {
		v[i] = float32(float64(v[i]) * inv)
	}
}

// New builds the provider selected by cfg, instrumented with metrics.
// The query cache is not applied here; see NewCached.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func New(cfg *config.EmbeddingConfig, logger zerolog.Logger) (Provider, error) {
	var (
		p   Provider
		err error
	)
	switch cfg.Provider {
	case config.ProviderHashing, "":
		p = NewHashingProvider(cfg.Dimension)
	case config.ProviderOpenAI:
		p, err = NewOpenAIProvider(cfg, logger)
		if err != nil {
			return nil, err
		}
	default:
		return nil, unavailable(cfg.Provider, fmt.Errorf("unknown provider %q", cfg.Provider))
	}

	logger.Info().
		Str("component", "embedding").
		Str("provider", cfg.Provider).
		Str("model", p.Model()).
		Int("dimension", p.Dimension()).
		Msg("Embedding provider initialized")

	return Instrument(p, cfg.Provider), nil
}

// Instrument records call counts and latency for p under the given label.
func Instrument(p Provider, label string) Provider {
	if label == "" {
		label = p.Model()
	}
	return &instrumented{Provider: p, label: label}
}

type instrumented struct {
	Provider
	label string
}

func (i *instrumented) Embed(ctx context.Context, texts []string) ([]Vector, error) {
	start := time.Now()
	vecs, err := i.Provider.Embed(ctx, texts)
	metrics.RecordEmbedding(i.label, time.Since(start), err)
	return vecs, err
}

func errCountMismatch(want, got int) error {
	return fmt.Errorf("expected %d embeddings, got %d", want, got)
}
