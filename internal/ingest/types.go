// Cinemate - Movie Recommendation API and Catalog Tooling
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemate

// Package ingest downloads the movie catalog dataset and loads it into
// the database. The dataset is published as a JSON manifest listing CSV
// resources; the ingester fetches the English-language resources,
// normalizes the rows, and batch-inserts them with duplicate rows
// skipped by the storage layer.
package ingest

import (
	"context"
	"errors"
	"time"

	"github.com/tomtom215/cinemate/internal/models"
)

// ErrIngestRunning indicates an ingest run is already in progress.
var ErrIngestRunning = errors.New("ingest already in progress")

// CatalogStore is the storage surface the ingester writes to.
// *database.DB satisfies this interface.
type CatalogStore interface {
	InsertMovies(ctx context.Context, movies []models.Movie) (int64, error)
	CountMovies(ctx context.Context) (int64, error)
}

// Stats summarizes one ingest run.
type Stats struct {
	// Resources is the number of CSV resources processed.
	Resources int `json:"resources"`

	// RowsRead is the number of CSV rows parsed.
	RowsRead int64 `json:"rows_read"`

	// RowsInserted is the number of new catalog rows.
	RowsInserted int64 `json:"rows_inserted"`

	// RowsSkipped counts rows rejected during parsing or deduplicated
	// on insert.
	RowsSkipped int64 `json:"rows_skipped"`

	// StartedAt and Duration bound the run.
	StartedAt time.Time     `json:"started_at"`
	Duration  time.Duration `json:"duration"`
}

// manifest mirrors the dataset's package metadata document.
type manifest struct {
	Result struct {
		Resources []resource `json:"resources"`
	} `json:"result"`
}

// resource is one downloadable file in the dataset manifest.
type resource struct {
	Name     string `json:"name"`
	URL      string `json:"url"`
	Language string `json:"language"`
	Format   string `json:"format"`
}
