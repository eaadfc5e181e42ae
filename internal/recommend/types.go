// Cinemate - Movie Recommendation API and Catalog Tooling
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemate

// Package recommend implements the content-based recommendation engine.
//
// The engine indexes the movie catalog at train time and answers
// "more like this" queries by weighted similarity over genres, cast,
// director, and release year. Title lookup is exact-match; callers are
// expected to normalize titles (the API layer title-cases input) before
// delegation.
//
// # Thread Safety
//
// The engine is safe for concurrent use. Training acquires an exclusive
// lock while queries use a shared lock.
package recommend

import (
	"context"
	"errors"
	"time"

	"github.com/tomtom215/cinemate/internal/models"
)

// ErrNotTrained indicates a query arrived before the engine was trained.
var ErrNotTrained = errors.New("recommendation engine is not trained")

// ErrTrainingRunning indicates a training run is already in progress.
var ErrTrainingRunning = errors.New("training already in progress")

// CatalogProvider supplies the movie catalog at train time.
// *database.DB satisfies this interface.
type CatalogProvider interface {
	AllMovies(ctx context.Context) ([]models.Movie, error)
}

// ScoredMovie is one ranked recommendation.
type ScoredMovie struct {
	// Movie is the recommended catalog entry.
	Movie models.Movie `json:"movie"`

	// Score is the similarity score (0-1, higher is better).
	Score float64 `json:"score"`

	// Reason is an interpretable explanation for the recommendation.
	Reason string `json:"reason,omitempty"`
}

// Status describes the engine's training state.
type Status struct {
	// Trained reports whether a model is available for queries.
	Trained bool `json:"trained"`

	// Training reports whether a training run is in progress.
	Training bool `json:"training"`

	// ModelVersion increments on every successful training run.
	ModelVersion int `json:"model_version"`

	// LastTrainedAt is when the model was last built.
	LastTrainedAt time.Time `json:"last_trained_at,omitempty"`

	// CatalogSize is the number of indexed movies.
	CatalogSize int `json:"catalog_size"`
}

// languageCodes maps the service-level language setting to the ISO 639-1
// codes used by the catalog's original_language column.
var languageCodes = map[string]string{
	"english":    "en",
	"french":     "fr",
	"german":     "de",
	"spanish":    "es",
	"italian":    "it",
	"japanese":   "ja",
	"korean":     "ko",
	"portuguese": "pt",
	"russian":    "ru",
	"chinese":    "zh",
	"hindi":      "hi",
}

// languageCode resolves a language name to a catalog language code.
// Unknown names are matched literally against the catalog column, so
// passing a raw code like "en" also works.
func languageCode(language string) string {
	if code, ok := languageCodes[language]; ok {
		return code
	}
	return language
}
