// Cinemate - Movie Recommendation API and Catalog Tooling
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemate

package api

import (
	"net/http"
	"strings"
	"time"
)

// ListMovies handles GET /api/v1/movies.
//
//	@Summary		Browse the movie catalog
//	@Tags			movies
//	@Produce		json
//	@Param			limit	query		int	false	"Page size"
//	@Param			offset	query		int	false	"Page offset"
//	@Success		200		{object}	models.APIResponse
//	@Router			/api/v1/movies [get]
func (h *Handler) ListMovies(w http.ResponseWriter, r *http.Request) {
	limit := getIntParam(r, "limit", h.cfg.API.DefaultPageSize, h.cfg.API.MaxPageSize)
	offset := getIntParam(r, "offset", 0, 0)

	start := time.Now()
	movies, err := h.store.ListMovies(r.Context(), limit, offset)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to list movies")
		respondError(w, http.StatusInternalServerError, codeInternalError,
			"failed to query the movie catalog", nil)
		return
	}
	total, err := h.store.CountMovies(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to count movies")
		respondError(w, http.StatusInternalServerError, codeInternalError,
			"failed to query the movie catalog", nil)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"movies": movies,
		"total":  total,
		"limit":  limit,
		"offset": offset,
	}, time.Since(start))
}

// GetMovie handles GET /api/v1/movies/lookup. Lookup is by normalized
// title since the dataset carries no stable external identifier.
//
//	@Summary		Look up one movie by title
//	@Tags			movies
//	@Produce		json
//	@Param			title	query		string	true	"Movie title"
//	@Success		200		{object}	models.APIResponse
//	@Failure		404		{object}	models.ErrorResponse
//	@Router			/api/v1/movies/lookup [get]
func (h *Handler) GetMovie(w http.ResponseWriter, r *http.Request) {
	title := strings.TrimSpace(r.URL.Query().Get("title"))
	if title == "" {
		respondError(w, http.StatusUnprocessableEntity, codeValidationError,
			"title is required", nil)
		return
	}

	start := time.Now()
	movie, err := h.store.GetMovieByTitle(r.Context(), TitleCase(title))
	if err != nil {
		h.logger.Error().Err(err).Str("title", title).Msg("Failed to look up movie")
		respondError(w, http.StatusInternalServerError, codeInternalError,
			"failed to query the movie catalog", nil)
		return
	}
	if movie == nil {
		respondError(w, http.StatusNotFound, codeMovieNotFound, notFoundDetail, nil)
		return
	}
	respondJSON(w, http.StatusOK, movie, time.Since(start))
}
