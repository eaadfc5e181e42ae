// Cinemate - Movie Recommendation API and Catalog Tooling
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemate

package models

import "time"

// APIResponse is the standardized success envelope used by all HTTP endpoints.
//
// Status is always "success" here; failures use ErrorResponse instead so
// that error bodies carry a top-level "detail" field.
//
// Example:
//
//	{
//	  "status": "success",
//	  "data": {"movie": "Star Wars", "count": 10, "recommendations": [...]},
//	  "metadata": {"timestamp": "2026-08-29T12:00:00Z", "query_time_ms": 3}
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
}

// Metadata contains response metadata for observability.
//
// QueryTimeMS is the engine/database execution time in milliseconds and is
// omitted when not measured.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
}

// ErrorResponse is the error envelope used by all HTTP endpoints.
//
// Detail is the human-readable message surfaced to callers, e.g.
// "Movie not found or no recommendations available". Code is a stable
// machine-readable identifier such as VALIDATION_ERROR or MOVIE_NOT_FOUND.
//
// Example:
//
//	{
//	  "status": "error",
//	  "code": "MOVIE_NOT_FOUND",
//	  "detail": "Movie not found or no recommendations available"
//	}
type ErrorResponse struct {
	Status string                 `json:"status"`
	Code   string                 `json:"code"`
	Detail string                 `json:"detail"`
	Fields map[string]interface{} `json:"fields,omitempty"`
}

// WelcomeResponse is the body of GET /.
type WelcomeResponse struct {
	Message string `json:"message"`
}
