// Cinemate - Movie Recommendation API and Catalog Tooling
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemate

package models

import "time"

// Movie represents a single catalog entry with the metadata used for
// content-based recommendations.
//
// Genres and Cast are stored pipe-delimited in DuckDB and split by the
// storage layer; code outside internal/database always sees slices.
type Movie struct {
	// ID is the catalog row identifier.
	ID int64 `json:"id"`

	// Title is the movie title in title case (e.g. "Star Wars").
	// Catalog lookups are exact-match on this field.
	Title string `json:"title"`

	// OriginalLanguage is the ISO 639-1 language code (e.g. "en").
	OriginalLanguage string `json:"original_language"`

	// ReleaseYear is the release year, 0 when unknown.
	ReleaseYear int `json:"release_year,omitempty"`

	// Genres is a slice of genre names.
	Genres []string `json:"genres,omitempty"`

	// Cast is a slice of leading cast member names.
	Cast []string `json:"cast,omitempty"`

	// Director is the primary director name.
	Director string `json:"director,omitempty"`

	// Overview is a short plot description.
	Overview string `json:"overview,omitempty"`

	// Popularity is a pre-computed popularity metric from the source dataset.
	Popularity float64 `json:"popularity,omitempty"`

	// VoteAverage is the average audience rating (0-10).
	VoteAverage float64 `json:"vote_average,omitempty"`

	// CreatedAt is when the row was inserted into the catalog.
	CreatedAt time.Time `json:"-"`
}

// RecommendationRequest is the body of POST /recommendations/.
//
// Movie is required and must be non-empty after trimming; the handler
// rewrites it to title case before delegating to the engine. NumRec
// defaults to the configured default (10) when absent or zero.
type RecommendationRequest struct {
	Movie  string `json:"movie" validate:"required,max=512"`
	NumRec int    `json:"num_rec" validate:"omitempty,gt=0,lte=1000"`
}
