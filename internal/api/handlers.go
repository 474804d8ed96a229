// Marquee - Semantic Film Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/tomtom215/marquee/internal/catalog"
	"github.com/tomtom215/marquee/internal/models"
	"github.com/tomtom215/marquee/internal/recommend"
)

// Recommender is the engine surface the handlers need. *recommend.Engine satisfies it.
type Recommender interface {
	Recommend(ctx context.Context, req recommend.Request) (*recommend.Response, error)
	Ready() bool
	Stats() recommend.Stats
	Sources() []catalog.Source
	Config() recommend.Config
}

// Handler serves the HTTP endpoints.
type Handler struct {
	engine         Recommender
	requestTimeout time.Duration
	version        string
	startTime      time.Time
}

// NewHandler creates a handler. A non-positive requestTimeout defaults to 10 seconds.
func NewHandler(engine Recommender, requestTimeout time.Duration, version string) *Handler {
	if requestTimeout <= 0 {
		requestTimeout = 10 * time.Second
	}
	return &Handler{
		engine:         engine,
		requestTimeout: requestTimeout,
		version:        version,
		startTime:      time.Now(),
	}
}

// HealthLive handles GET /api/v1/health/live. It succeeds while the process runs.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, r, models.HealthStatus{
		Status:  "alive",
		Ready:   h.engine.Ready(),
		Version: h.version,
		Uptime:  time.Since(h.startTime).Round(time.Second).String(),
	}, 0)
}

// HealthReady handles GET /api/v1/health/ready. It returns 503 until the index is built.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	stats := h.engine.Stats()
	if !stats.Ready {
		respondError(w, http.StatusServiceUnavailable, "NOT_READY", "Recommendation index is not ready", nil)
		return
	}
	respondSuccess(w, r, models.HealthStatus{
		Status:  "ready",
		Ready:   true,
		Items:   stats.Items,
		Version: h.version,
		Uptime:  time.Since(h.startTime).Round(time.Second).String(),
	}, 0)
}

// Catalog handles GET /api/v1/catalog.
func (h *Handler) Catalog(w http.ResponseWriter, r *http.Request) {
	stats := h.engine.Stats()
	cfg := h.engine.Config()

	info := models.CatalogInfo{
		Ready:     stats.Ready,
		Items:     stats.Items,
		Sources:   stats.Sources,
		Model:     stats.Model,
		Dimension: stats.Dimension,
		BuildMS:   stats.BuildMS,
		DefaultK:  cfg.DefaultK,
		MaxK:      cfg.MaxK,
	}
	if !stats.BuiltAt.IsZero() {
		builtAt := stats.BuiltAt
		info.BuiltAt = &builtAt
	}
	respondSuccess(w, r, info, 0)
}

// Sources handles GET /api/v1/sources. The first option is always "all".
func (h *Handler) Sources(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, r, sourceOptions(h.engine), 0)
}

func sourceOptions(engine Recommender) []models.SourceOption {
	stats := engine.Stats()
	options := []models.SourceOption{{Value: "all", Label: "All", Items: stats.Items}}
	for _, src := range engine.Sources() {
		options = append(options, models.SourceOption{
			Value: string(src),
			Label: src.Label(),
			Items: stats.Sources[string(src)],
		})
	}
	return options
}
