// Marquee - Semantic Film Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/goccy/go-json"

	"github.com/tomtom215/marquee/internal/catalog"
	"github.com/tomtom215/marquee/internal/embedding"
	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/models"
	"github.com/tomtom215/marquee/internal/recommend"
	"github.com/tomtom215/marquee/internal/validation"
)

// maxBodyBytes bounds POST bodies.
const maxBodyBytes = 64 << 10

// GetRecommendations handles GET /api/v1/recommendations?q=&k=&source=
func (h *Handler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	req := models.RecommendRequest{
		Query:  params.Get("q"),
		Source: params.Get("source"),
	}
	if req.Query == "" {
		req.Query = params.Get("query")
	}

	if raw := params.Get("k"); raw != "" {
		k, err := strconv.Atoi(raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "k must be an integer", nil)
			return
		}
		req.K = &k
	}

	h.serveRecommendations(w, r, &req)
}

// PostRecommendations handles POST /api/v1/recommendations with a JSON body.
func (h *Handler) PostRecommendations(w http.ResponseWriter, r *http.Request) {
	var req models.RecommendRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid JSON request body", err)
		return
	}

	h.serveRecommendations(w, r, &req)
}

func (h *Handler) serveRecommendations(w http.ResponseWriter, r *http.Request, req *models.RecommendRequest) {
	sources := h.engine.Sources()
	if verr := validation.ValidateStructCtx(validation.WithSources(r.Context(), sources), req); verr != nil {
		respondValidationError(w, verr)
		return
	}

	cfg := h.engine.Config()
	var requested int
	if req.K != nil {
		requested = *req.K
	}
	k, err := cfg.ResolveK(requested, req.K != nil)
	if err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
		return
	}
	source, _ := catalog.ResolveFilter(req.Source, sources)

	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout)
	defer cancel()

	resp, err := h.engine.Recommend(ctx, recommend.Request{
		Query:     req.Query,
		K:         k,
		Source:    source,
		RequestID: logging.RequestIDFromContext(r.Context()),
	})
	if err != nil {
		status, code, message := classifyError(err)
		respondError(w, status, code, message, err)
		return
	}

	logging.Ctx(r.Context()).Debug().
		Int("k", k).
		Str("source", string(source)).
		Int("results", len(resp.Results)).
		Msg("Served recommendations")

	respondSuccess(w, r, toRecommendationsData(resp), resp.Metadata.LatencyMS)
}

// classifyError maps engine errors onto HTTP status codes and API error codes.
func classifyError(err error) (status int, code, message string) {
	switch {
	case errors.Is(err, recommend.ErrInvalidQuery):
		return http.StatusBadRequest, "INVALID_QUERY", "Query must not be empty"
	case errors.Is(err, recommend.ErrInvalidK):
		return http.StatusBadRequest, "VALIDATION_ERROR", err.Error()
	case errors.Is(err, recommend.ErrNotReady):
		return http.StatusServiceUnavailable, "NOT_READY", "Recommendation index is not ready"
	case errors.Is(err, context.DeadlineExceeded):
		// Checked first: providers wrap deadline errors in UnavailableError.
		return http.StatusGatewayTimeout, "RECOMMENDATION_TIMEOUT", "Recommendation request timed out"
	case errors.Is(err, embedding.ErrEmbeddingUnavailable):
		return http.StatusServiceUnavailable, "EMBEDDING_UNAVAILABLE", "Embedding provider is unavailable"
	default:
		return http.StatusInternalServerError, "RECOMMENDATION_ERROR", "Failed to generate recommendations"
	}
}

func toRecommendationsData(resp *recommend.Response) models.RecommendationsData {
	results := make([]models.Recommendation, len(resp.Results))
	for i := range resp.Results {
		r := &resp.Results[i]
		results[i] = models.Recommendation{
			Rank:        r.Rank,
			Title:       r.Title,
			Description: r.Description,
			Genres:      r.Genres,
			GenreList:   r.GenreList(),
			Extra:       r.Extra,
			Source:      string(r.Source),
			SourceLabel: r.Source.Label(),
			Score:       r.Score,
			Explanation: r.Explanation,
		}
	}
	return models.RecommendationsData{
		Query:           resp.Metadata.Query,
		K:               resp.Metadata.K,
		Source:          resp.Metadata.Source,
		Count:           len(results),
		Filtered:        resp.Metadata.Filtered,
		TotalCandidates: resp.Metadata.TotalCandidates,
		Model:           resp.Metadata.Model,
		Results:         results,
	}
}
