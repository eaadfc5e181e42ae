// Cinemate - Movie Recommendation API and Catalog Tooling
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemate

package api

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/tomtom215/cinemate/internal/metrics"
	"github.com/tomtom215/cinemate/internal/models"
	"github.com/tomtom215/cinemate/internal/recommend"
	"github.com/tomtom215/cinemate/internal/validation"
)

// notFoundDetail is the fixed message for empty recommendation results.
// Unknown titles and known titles with no similar movies are not
// distinguished.
const notFoundDetail = "Movie not found or no recommendations available"

// recommendationData is the success payload of the recommendation
// endpoints.
type recommendationData struct {
	Movie           string                  `json:"movie"`
	Count           int                     `json:"count"`
	Recommendations []recommend.ScoredMovie `json:"recommendations"`
}

// Recommend handles POST /recommendations/.
//
//	@Summary		Get movie recommendations
//	@Description	Returns movies similar to the named movie. The title is normalized to title case before lookup.
//	@Tags			recommendations
//	@Accept			json
//	@Produce		json
//	@Param			request	body		models.RecommendationRequest	true	"Recommendation request"
//	@Success		200		{object}	models.APIResponse
//	@Failure		404		{object}	models.ErrorResponse
//	@Failure		422		{object}	models.ErrorResponse
//	@Failure		500		{object}	models.ErrorResponse
//	@Router			/recommendations [post]
func (h *Handler) Recommend(w http.ResponseWriter, r *http.Request) {
	var req models.RecommendationRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusUnprocessableEntity, codeInvalidJSON,
			"request body must be valid JSON", nil)
		return
	}

	// Validation runs before any engine work so malformed requests
	// never reach the engine.
	req.Movie = strings.TrimSpace(req.Movie)
	if verr := validation.ValidateStruct(&req); verr != nil {
		metrics.RecordRecommendation("validation_error")
		respondError(w, http.StatusUnprocessableEntity, codeValidationError,
			verr.Detail(), verr.Details())
		return
	}

	count := req.NumRec
	if count == 0 {
		count = h.cfg.Recommend.DefaultCount
	}
	if h.cfg.Recommend.MaxCount > 0 && count > h.cfg.Recommend.MaxCount {
		count = h.cfg.Recommend.MaxCount
	}

	h.serveRecommendation(w, r, TitleCase(req.Movie), count)
}

// Similar handles GET /api/v1/movies/similar. It is the query-string
// variant of Recommend for browser use.
//
//	@Summary		Get similar movies
//	@Description	Returns movies similar to the title given as a query parameter
//	@Tags			recommendations
//	@Produce		json
//	@Param			title	query		string	true	"Movie title"
//	@Param			count	query		int		false	"Number of recommendations"
//	@Success		200		{object}	models.APIResponse
//	@Failure		404		{object}	models.ErrorResponse
//	@Failure		422		{object}	models.ErrorResponse
//	@Router			/api/v1/movies/similar [get]
func (h *Handler) Similar(w http.ResponseWriter, r *http.Request) {
	title := strings.TrimSpace(r.URL.Query().Get("title"))
	if title == "" {
		metrics.RecordRecommendation("validation_error")
		respondError(w, http.StatusUnprocessableEntity, codeValidationError,
			"title is required", nil)
		return
	}
	count := getIntParam(r, "count", h.cfg.Recommend.DefaultCount, h.cfg.Recommend.MaxCount)

	h.serveRecommendation(w, r, TitleCase(title), count)
}

// serveRecommendation delegates to the engine and maps its results
// onto the wire contract shared by Recommend and Similar.
func (h *Handler) serveRecommendation(w http.ResponseWriter, r *http.Request, title string, count int) {
	start := time.Now()
	results, err := h.engine.GetRecommendation(r.Context(), title, count, h.cfg.Recommend.Language)
	if err != nil {
		if errors.Is(err, recommend.ErrNotTrained) {
			metrics.RecordRecommendation("not_ready")
			respondError(w, http.StatusServiceUnavailable, codeEngineNotReady,
				"recommendation engine is not trained yet", nil)
			return
		}
		metrics.RecordRecommendation("engine_error")
		h.logger.Error().Err(err).Str("movie", title).Msg("Recommendation engine error")
		respondError(w, http.StatusInternalServerError, codeEngineError,
			"recommendation engine failed", nil)
		return
	}

	if len(results) == 0 {
		metrics.RecordRecommendation("not_found")
		respondError(w, http.StatusNotFound, codeMovieNotFound, notFoundDetail, nil)
		return
	}

	metrics.RecordRecommendation("success")
	respondJSON(w, http.StatusOK, recommendationData{
		Movie:           title,
		Count:           len(results),
		Recommendations: results,
	}, time.Since(start))
}

// RecommendStatus handles GET /api/v1/recommendations/status.
//
//	@Summary		Engine status
//	@Tags			recommendations
//	@Produce		json
//	@Success		200	{object}	models.APIResponse
//	@Router			/api/v1/recommendations/status [get]
func (h *Handler) RecommendStatus(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, h.engine.Status(), 0)
}

// Train handles POST /api/v1/admin/train. Training runs in the
// background; the response only acknowledges the trigger.
//
//	@Summary		Trigger model training
//	@Tags			admin
//	@Produce		json
//	@Success		202	{object}	models.APIResponse
//	@Router			/api/v1/admin/train [post]
func (h *Handler) Train(w http.ResponseWriter, _ *http.Request) {
	go func() {
		if err := h.engine.Train(context.Background()); err != nil {
			h.logger.Error().Err(err).Msg("Background training failed")
		}
	}()
	respondJSON(w, http.StatusAccepted, map[string]string{"state": "training_started"}, 0)
}
