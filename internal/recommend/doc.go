// Marquee - Semantic Film Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package recommend ranks catalog items against a free-text query and explains each pick.
//
// # Architecture
//
// A request flows through three stages:
//
//   - Embedding: the query is encoded by the same embedding.Provider used for the catalog
//   - Ranking: exhaustive cosine similarity over the Index, top-k with index tie-break
//   - Explanation: an ordered list of Detectors turns each match into a sentence
//
// An optional source filter runs after top-k truncation. Filtered results are never
// backfilled from below position k, so a filtered request may return fewer than k items.
//
// # Lifecycle
//
// The Engine starts Uninitialized. Build embeds every catalog item once and publishes an
// immutable Index; the Engine is Ready from then on. There is no rebuild or hot reload.
//
// # Usage
//
//	engine, err := recommend.NewEngine(recommend.DefaultConfig(), provider, logger)
//	if err != nil {
//	    return err
//	}
//	if err := engine.Build(ctx, cat); err != nil {
//	    return err
//	}
//
//	resp, err := engine.Recommend(ctx, recommend.Request{
//	    Query:  "space adventure",
//	    K:      5,
//	    Source: catalog.SourceTMDB,
//	})
//
// # Thread Safety
//
// The Index is read through an atomic pointer without locks, so Recommend is safe for
// concurrent use. Build is serialized and succeeds at most once.
package recommend
