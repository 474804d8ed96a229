// Marquee - Semantic Film Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package recommend

import (
	"container/heap"
	"math"
	"slices"
	"sync"

	"github.com/tomtom215/marquee/internal/embedding"
)

// Cosine returns the cosine similarity of a and b, accumulated in float64.
// It is 0 when the lengths differ or either vector has zero norm.
func Cosine(a, b embedding.Vector) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		normA += x * x
		normB += y * y
	}
	if normA == 0 || normB == 0 {
		return 0
	}

	s := dot / (math.Sqrt(normA) * math.Sqrt(normB))
	switch {
	case math.IsNaN(s):
		return 0
	case s > 1:
		return 1
	case s < -1:
		return -1
	}
	return s
}

// Rank returns the k vectors most similar to query, best first.
// Equal scores are ordered by ascending index. k <= 0 yields an empty result and
// k larger than len(vectors) is clamped.
func Rank(query embedding.Vector, vectors []embedding.Vector, k int) []Match {
	if k <= 0 || len(vectors) == 0 {
		return []Match{}
	}
	scores := make([]float64, len(vectors))
	for i, v := range vectors {
		scores[i] = Cosine(query, v)
	}
	return topK(scores, k)
}

// RankParallel is Rank with scoring split across workers goroutines.
// It returns exactly what Rank returns for the same input.
func RankParallel(query embedding.Vector, vectors []embedding.Vector, k, workers int) []Match {
	if workers <= 1 || len(vectors) < 2*workers {
		return Rank(query, vectors, k)
	}
	if k <= 0 {
		return []Match{}
	}

	scores := make([]float64, len(vectors))
	chunk := (len(vectors) + workers - 1) / workers

	var wg sync.WaitGroup
	for start := 0; start < len(vectors); start += chunk {
		end := min(start+chunk, len(vectors))
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			for i := lo; i < hi; i++ {
				scores[i] = Cosine(query, vectors[i])
			}
		}(start, end)
	}
	wg.Wait()

	return topK(scores, k)
}

// better reports whether a ranks ahead of b.
func better(a, b Match) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	return a.Index < b.Index
}

// topK selects the k best scores with a bounded min-heap, O(n log k).
func topK(scores []float64, k int) []Match {
	k = min(k, len(scores))

	h := make(matchHeap, 0, k)
	for i, s := range scores {
		m := Match{Index: i, Score: s}
		if len(h) < k {
			heap.Push(&h, m)
			continue
		}
		if better(m, h[0]) {
			h[0] = m
			heap.Fix(&h, 0)
		}
	}

	out := []Match(h)
	slices.SortFunc(out, func(a, b Match) int {
		if better(a, b) {
			return -1
		}
		if better(b, a) {
			return 1
		}
		return 0
	})
	return out
}

// matchHeap keeps the worst retained match at the root.
type matchHeap []Match

func (h matchHeap) Len() int           { return len(h) }
func (h matchHeap) Less(i, j int) bool { return better(h[j], h[i]) }
func (h matchHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *matchHeap) Push(x any) { *h = append(*h, x.(Match)) }

func (h *matchHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}
