// Marquee - Semantic Film Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package embedding

import (
	"context"
	"fmt"

	"github.com/cespare/xxhash/v2"

	"github.com/tomtom215/marquee/internal/tokenize"
)

// DefaultDimension is the hashing provider's vector length when none is configured.
const DefaultDimension = 384

// Feature weights for the hashing provider.
const (
	wordWeight     = 1.0
	stopwordWeight = 0.2
	trigramWeight  = 0.35
)

// HashingProvider embeds text with signed feature hashing of word unigrams and
// character trigrams. It needs no model files or network access and is fully
// deterministic, which makes it the default provider and the test provider.
type HashingProvider struct {
	dim int
}

// NewHashingProvider returns a provider producing dim-length vectors.
// A non-positive dim falls back to DefaultDimension.
func NewHashingProvider(dim int) *HashingProvider {
	if dim <= 0 {
		dim = DefaultDimension
	}
	return &HashingProvider{dim: dim}
}

// Dimension implements Provider.
func (p *HashingProvider) Dimension() int { return p.dim }

// Model implements Provider.
func (p *HashingProvider) Model() string { return fmt.Sprintf("hashing-xxh64-%d", p.dim) }

// Embed implements Provider.
func (p *HashingProvider) Embed(ctx context.Context, texts []string) ([]Vector, error) {
	out := make([]Vector, len(texts))
	for i, text := range texts {
		if i%512 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, unavailable("hashing", err)
			}
		}
		out[i] = p.embed(text)
	}
	return out, nil
}

func (p *HashingProvider) embed(text string) Vector {
	v := Zero(p.dim)
	for _, w := range tokenize.Words(text) {
		weight := float32(wordWeight)
		if tokenize.IsStopword(w) {
			weight = stopwordWeight
		}
		p.add(v, "w:"+w, weight)

		runes := []rune("<" + w + ">")
		if len(runes) < 5 {
			continue
		}
		for j := 0; j+3 <= len(runes); j++ {
			p.add(v, "c:"+string(runes[j:j+3]), trigramWeight)
		}
	}
	normalize(v)
	return v
}

// add hashes feature into a bucket; the top hash bit picks the sign.
func (p *HashingProvider) add(v Vector, feature string, weight float32) {
	h := xxhash.Sum64String(feature)
	idx := h % uint64(p.dim)
	if h>>63 == 1 {
		v[idx] -= weight
	} else {
		v[idx] += weight
	}
}
