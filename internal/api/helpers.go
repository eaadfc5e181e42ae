// Cinemate - Movie Recommendation API and Catalog Tooling
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemate

package api

import (
	"net/http"
	"strconv"
	"time"

	json "github.com/goccy/go-json"

	"github.com/tomtom215/cinemate/internal/logging"
	"github.com/tomtom215/cinemate/internal/models"
)

// Error codes returned in ErrorResponse.Code.
const (
	codeValidationError = "VALIDATION_ERROR"
	codeInvalidJSON     = "INVALID_JSON"
	codeMovieNotFound   = "MOVIE_NOT_FOUND"
	codeEngineError     = "ENGINE_ERROR"
	codeEngineNotReady  = "ENGINE_NOT_READY"
	codeIngestRunning   = "INGEST_RUNNING"
	codeInternalError   = "INTERNAL_ERROR"
)

// maxRequestBody bounds request bodies (1 MiB).
const maxRequestBody = 1 << 20

// respondJSON writes a success envelope with the given payload.
func respondJSON(w http.ResponseWriter, statusCode int, data interface{}, queryTime time.Duration) {
	resp := models.APIResponse{
		Status: "success",
		Data:   data,
		Metadata: models.Metadata{
			Timestamp:   time.Now().UTC(),
			QueryTimeMS: queryTime.Milliseconds(),
		},
	}
	writeJSON(w, statusCode, resp)
}

// respondError writes an error envelope. Fields carries per-field
// validation details and may be nil.
func respondError(w http.ResponseWriter, statusCode int, code, detail string, fields map[string]interface{}) {
	resp := models.ErrorResponse{
		Status: "error",
		Code:   code,
		Detail: detail,
		Fields: fields,
	}
	writeJSON(w, statusCode, resp)
}

func writeJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logging.Error().Err(err).Msg("Failed to encode response")
	}
}

// decodeJSON decodes a request body into dst with a size cap and
// unknown-field rejection.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)
	dec := json.NewDecoder(r.Body)
	return dec.Decode(dst)
}

// getIntParam reads a positive integer query parameter, falling back
// to def when missing or malformed and clamping to max.
func getIntParam(r *http.Request, name string, def, max int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return def
	}
	if max > 0 && v > max {
		return max
	}
	return v
}
