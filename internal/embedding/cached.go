// Marquee - Semantic Film Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package embedding

import (
	"context"
	"time"

	"github.com/tomtom215/marquee/internal/metrics"
)

// CachedProvider memoizes query embeddings in an LRU cache with TTL.
//
// Only calls with at most the cache capacity of texts go through the cache, so the
// one-off catalog encoding at startup never evicts hot query vectors.
type CachedProvider struct {
	Provider
	cache    *vectorLRU
	capacity int
}

// NewCached wraps p with a query cache. A non-positive size disables caching and
// returns p unchanged.
func NewCached(p Provider, size int, ttl time.Duration) Provider {
	if size <= 0 {
		return p
	}
	return &CachedProvider{
		Provider: p,
		cache:    newVectorLRU(size, ttl),
		capacity: size,
	}
}

// Embed implements Provider.
func (c *CachedProvider) Embed(ctx context.Context, texts []string) ([]Vector, error) {
	if len(texts) > c.capacity {
		return c.Provider.Embed(ctx, texts)
	}

	out := make([]Vector, len(texts))
	var (
		missTexts []string
		missIdx   []int
	)
	for i, t := range texts {
		if v, ok := c.cache.get(t); ok {
			out[i] = v
			metrics.EmbeddingCacheHits.Inc()
			continue
		}
		metrics.EmbeddingCacheMisses.Inc()
		missTexts = append(missTexts, t)
		missIdx = append(missIdx, i)
	}

	if len(missTexts) == 0 {
		return out, nil
	}

	vecs, err := c.Provider.Embed(ctx, missTexts)
	if err != nil {
		return nil, err
	}
	if len(vecs) != len(missTexts) {
		return nil, unavailable(c.Model(), errCountMismatch(len(missTexts), len(vecs)))
	}
	for j, v := range vecs {
		out[missIdx[j]] = v
		c.cache.add(missTexts[j], v)
	}
	return out, nil
}

// Len returns the number of cached vectors.
func (c *CachedProvider) Len() int {
	return c.cache.len()
}
