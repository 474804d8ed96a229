// Marquee - Semantic Film Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package embedding

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"
	"golang.org/x/time/rate"

	"github.com/tomtom215/marquee/internal/config"
)

const openAIBreakerName = "openai-embeddings"

// OpenAIProvider embeds text through the OpenAI embeddings API.
//
// Input is split into batches of BatchSize. Each batch is paced by a rate limiter,
// guarded by a circuit breaker and retried with exponential backoff on 429, 5xx and
// transport errors. Empty texts are never sent and map to zero vectors.
type OpenAIProvider struct {
	client     *openai.Client
	model      string
	dim        int
	batchSize  int
	maxRetries int
	retryDelay time.Duration
	timeout    time.Duration
	limiter    *rate.Limiter
	breaker    *breaker[openai.EmbeddingResponse]
	logger     zerolog.Logger
}

// NewOpenAIProvider creates a provider from cfg. A missing API key is reported as
// ErrEmbeddingUnavailable so startup fails fast.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewOpenAIProvider(cfg *config.EmbeddingConfig, logger zerolog.Logger) (*OpenAIProvider, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, unavailable("openai", errors.New("OPENAI_API_KEY is not set"))
	}
	if cfg.Dimension <= 0 {
		return nil, unavailable("openai", fmt.Errorf("invalid dimension %d", cfg.Dimension))
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	}
	clientCfg.HTTPClient = &http.Client{}

	batch := cfg.BatchSize
	if batch <= 0 {
		batch = 256
	}

	var limiter *rate.Limiter
	if cfg.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1)
	}

	log := logger.With().Str("component", "embedding").Str("provider", "openai").Logger()

	return &OpenAIProvider{
		client:     openai.NewClientWithConfig(clientCfg),
		model:      cfg.Model,
		dim:        cfg.Dimension,
		batchSize:  batch,
		maxRetries: cfg.MaxRetries,
		retryDelay: cfg.RetryDelay,
		timeout:    cfg.Timeout,
		limiter:    limiter,
		breaker:    newBreaker[openai.EmbeddingResponse](openAIBreakerName, log),
		logger:     log,
	}, nil
}

// Dimension implements Provider.
func (p *OpenAIProvider) Dimension() int { return p.dim }

// Model implements Provider.
func (p *OpenAIProvider) Model() string { return p.model }

// Embed implements Provider.
func (p *OpenAIProvider) Embed(ctx context.Context, texts []string) ([]Vector, error) {
	out := make([]Vector, len(texts))

	// Only non-empty texts are sent; positions remember where results go.
	pending := make([]string, 0, len(texts))
	positions := make([]int, 0, len(texts))
	for i, t := range texts {
		if strings.TrimSpace(t) == "" {
			out[i] = Zero(p.dim)
			continue
		}
		pending = append(pending, t)
		positions = append(positions, i)
	}

	for start := 0; start < len(pending); start += p.batchSize {
		end := min(start+p.batchSize, len(pending))
		vecs, err := p.embedBatch(ctx, pending[start:end])
		if err != nil {
			return nil, unavailable("openai", err)
		}
		for j, v := range vecs {
			out[positions[start+j]] = v
		}
	}
	return out, nil
}

// embedBatch sends one request with retries and returns vectors in input order.
func (p *OpenAIProvider) embedBatch(ctx context.Context, batch []string) ([]Vector, error) {
	var lastErr error
	for attempt := 0; attempt <= p.maxRetries; attempt++ {
		if attempt > 0 {
			delay := backoff(p.retryDelay, attempt)
			p.logger.Warn().Err(lastErr).Int("attempt", attempt).Int("max_retries", p.maxRetries).Dur("delay", delay).Msg("Retrying embedding request")
			if err := sleep(ctx, delay); err != nil {
				return nil, err
			}
		}

		if p.limiter != nil {
			if err := p.limiter.Wait(ctx); err != nil {
				return nil, err
			}
		}

		resp, err := p.breaker.execute(func() (openai.EmbeddingResponse, error) {
			return p.request(ctx, batch)
		})
		if err == nil {
			return p.decode(resp, len(batch))
		}

		lastErr = err
		if ctx.Err() != nil || !retryable(err) {
			break
		}
	}
	return nil, fmt.Errorf("embedding request failed (breaker %s): %w", p.breaker.state(), lastErr)
}

func (p *OpenAIProvider) request(ctx context.Context, batch []string) (openai.EmbeddingResponse, error) {
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	req := openai.EmbeddingRequestStrings{
		Input: batch,
		Model: openai.EmbeddingModel(p.model),
	}
	// Only the text-embedding-3 family accepts a reduced output dimension.
	if strings.HasPrefix(p.model, "text-embedding-3") {
		req.Dimensions = p.dim
	}
	return p.client.CreateEmbeddings(ctx, req)
}

func (p *OpenAIProvider) decode(resp openai.EmbeddingResponse, n int) ([]Vector, error) {
	if len(resp.Data) != n {
		return nil, errCountMismatch(n, len(resp.Data))
	}
	out := make([]Vector, n)
	for _, d := range resp.Data {
		if d.Index < 0 || d.Index >= n || out[d.Index] != nil {
			return nil, fmt.Errorf("invalid embedding index %d", d.Index)
		}
		if len(d.Embedding) != p.dim {
			return nil, fmt.Errorf("embedding dimension %d does not match configured %d", len(d.Embedding), p.dim)
		}
		out[d.Index] = Vector(d.Embedding)
	}
	return out, nil
}

// retryable reports whether a failed request may succeed on retry.
func retryable(err error) bool {
	if isBreakerRejection(err) || errors.Is(err, context.Canceled) {
		return false
	}
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return retryableStatus(apiErr.HTTPStatusCode)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return retryableStatus(reqErr.HTTPStatusCode)
	}
	return true
}

func retryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError || code == 0
}
