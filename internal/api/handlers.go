// Cinemate - Movie Recommendation API and Catalog Tooling
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemate

// Package api implements the HTTP layer: request decoding and
// validation, delegation to the recommendation engine and catalog
// store, and the JSON response envelopes.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/cinemate/internal/config"
	"github.com/tomtom215/cinemate/internal/ingest"
	"github.com/tomtom215/cinemate/internal/models"
	"github.com/tomtom215/cinemate/internal/recommend"
)

// welcomeMessage is the fixed body of GET /.
const welcomeMessage = "Welcome to the Cinemate movie recommendation API. See /swagger/index.html for interactive documentation."

// Recommender is the engine contract the HTTP layer delegates to.
// *recommend.Engine satisfies this interface.
type Recommender interface {
	GetRecommendation(ctx context.Context, movie string, count int, language string) ([]recommend.ScoredMovie, error)
	Train(ctx context.Context) error
	Status() recommend.Status
}

// MovieStore is the catalog read surface used by the browse endpoints.
// *database.DB satisfies this interface.
type MovieStore interface {
	GetMovieByTitle(ctx context.Context, title string) (*models.Movie, error)
	ListMovies(ctx context.Context, limit, offset int) ([]models.Movie, error)
	CountMovies(ctx context.Context) (int64, error)
}

// IngestRunner is the ingest pipeline contract used by the admin
// endpoints. *ingest.Ingester satisfies this interface.
type IngestRunner interface {
	Run(ctx context.Context) (*ingest.Stats, error)
	Running() bool
	LastRun() (*ingest.Stats, error)
}

// Handler bundles the HTTP handlers and their dependencies.
type Handler struct {
	cfg      *config.Config
	engine   Recommender
	store    MovieStore
	ingester IngestRunner
	logger   zerolog.Logger

	startedAt time.Time
}

// NewHandler creates the HTTP handler set.
func NewHandler(cfg *config.Config, engine Recommender, store MovieStore, ingester IngestRunner, logger zerolog.Logger) *Handler {
	return &Handler{
		cfg:       cfg,
		engine:    engine,
		store:     store,
		ingester:  ingester,
		logger:    logger.With().Str("component", "api").Logger(),
		startedAt: time.Now().UTC(),
	}
}

// Welcome handles GET /.
//
//	@Summary		Welcome message
//	@Description	Returns a static welcome message pointing to the documentation
//	@Tags			system
//	@Produce		json
//	@Success		200	{object}	models.WelcomeResponse
//	@Router			/ [get]
func (h *Handler) Welcome(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, models.WelcomeResponse{Message: welcomeMessage})
}

// Health handles GET /api/v1/health.
//
//	@Summary		Health check
//	@Description	Reports service liveness, catalog size, and engine state
//	@Tags			system
//	@Produce		json
//	@Success		200	{object}	models.APIResponse
//	@Router			/api/v1/health [get]
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	catalogSize, err := h.store.CountMovies(r.Context())
	status := "healthy"
	if err != nil {
		h.logger.Error().Err(err).Msg("Health check failed to query catalog")
		status = "degraded"
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":         status,
		"uptime_seconds": int64(time.Since(h.startedAt).Seconds()),
		"catalog_size":   catalogSize,
		"engine":         h.engine.Status(),
	}, 0)
}
