// Cinemate - Movie Recommendation API and Catalog Tooling
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemate

package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/tomtom215/cinemate/internal/ingest"
)

// RunIngest handles POST /api/v1/admin/ingest. The ingest runs in the
// background; a second trigger while one is in flight is rejected.
//
//	@Summary		Trigger catalog ingest
//	@Tags			admin
//	@Produce		json
//	@Success		202	{object}	models.APIResponse
//	@Failure		409	{object}	models.ErrorResponse
//	@Router			/api/v1/admin/ingest [post]
func (h *Handler) RunIngest(w http.ResponseWriter, _ *http.Request) {
	if h.ingester.Running() {
		respondError(w, http.StatusConflict, codeIngestRunning,
			"a catalog ingest is already in progress", nil)
		return
	}

	go func() {
		if _, err := h.ingester.Run(context.Background()); err != nil {
			if errors.Is(err, ingest.ErrIngestRunning) {
				return
			}
			h.logger.Error().Err(err).Msg("Background ingest failed")
			return
		}
		// Fresh catalog rows are invisible until the model is rebuilt.
		if err := h.engine.Train(context.Background()); err != nil {
			h.logger.Error().Err(err).Msg("Post-ingest training failed")
		}
	}()

	respondJSON(w, http.StatusAccepted, map[string]string{"state": "ingest_started"}, 0)
}

// IngestStatus handles GET /api/v1/admin/ingest/status.
//
//	@Summary		Ingest status
//	@Tags			admin
//	@Produce		json
//	@Success		200	{object}	models.APIResponse
//	@Router			/api/v1/admin/ingest/status [get]
func (h *Handler) IngestStatus(w http.ResponseWriter, _ *http.Request) {
	stats, lastErr := h.ingester.LastRun()

	payload := map[string]interface{}{
		"running":  h.ingester.Running(),
		"last_run": stats,
	}
	if lastErr != nil {
		payload["last_error"] = lastErr.Error()
	}
	respondJSON(w, http.StatusOK, payload, 0)
}
