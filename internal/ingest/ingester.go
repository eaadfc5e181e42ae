// Cinemate - Movie Recommendation API and Catalog Tooling
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemate

package ingest

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/cinemate/internal/config"
	"github.com/tomtom215/cinemate/internal/metrics"
	"github.com/tomtom215/cinemate/internal/models"
)

// Ingester downloads the catalog dataset and loads it into storage.
// Only one run proceeds at a time; Run returns ErrIngestRunning while
// a run is in flight.
type Ingester struct {
	cfg    config.IngestConfig
	store  CatalogStore
	client *http.Client
	logger zerolog.Logger

	mu        sync.Mutex
	running   bool
	lastStats *Stats
	lastErr   error
}

// New creates an Ingester writing to the given store.
func New(cfg config.IngestConfig, store CatalogStore, logger zerolog.Logger) *Ingester {
	return &Ingester{
		cfg:   cfg,
		store: store,
		client: &http.Client{
			Timeout: cfg.HTTPTimeout,
		},
		logger: logger.With().Str("component", "ingest").Logger(),
	}
}

// Run executes one full ingest: fetch the manifest, download each
// selected resource, and batch-insert the parsed rows.
func (i *Ingester) Run(ctx context.Context) (*Stats, error) {
	i.mu.Lock()
	if i.running {
		i.mu.Unlock()
		return nil, ErrIngestRunning
	}
	i.running = true
	i.mu.Unlock()

	stats := &Stats{StartedAt: time.Now().UTC()}
	err := i.run(ctx, stats)
	stats.Duration = time.Since(stats.StartedAt)

	i.mu.Lock()
	i.running = false
	i.lastStats = stats
	i.lastErr = err
	i.mu.Unlock()

	metrics.RecordIngestDuration(stats.Duration)
	if err != nil {
		i.logger.Error().Err(err).Msg("Catalog ingest failed")
		return stats, err
	}
	i.logger.Info().
		Int("resources", stats.Resources).
		Int64("rows_read", stats.RowsRead).
		Int64("rows_inserted", stats.RowsInserted).
		Int64("rows_skipped", stats.RowsSkipped).
		Dur("duration", stats.Duration).
		Msg("Catalog ingest complete")
	return stats, nil
}

func (i *Ingester) run(ctx context.Context, stats *Stats) error {
	m, err := i.fetchManifest(ctx)
	if err != nil {
		return err
	}
	resources := selectResources(m)
	if len(resources) == 0 {
		return fmt.Errorf("manifest lists no usable catalog resources")
	}
	i.logger.Info().Int("resources", len(resources)).Msg("Starting catalog ingest")

	for _, r := range resources {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := i.ingestResource(ctx, r, stats); err != nil {
			return fmt.Errorf("failed to ingest resource %q: %w", r.Name, err)
		}
		stats.Resources++
	}
	return nil
}

// ingestResource streams one CSV resource into the store in batches.
func (i *Ingester) ingestResource(ctx context.Context, r resource, stats *Stats) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.URL, nil)
	if err != nil {
		return fmt.Errorf("failed to build resource request: %w", err)
	}
	req.Header.Set("User-Agent", i.cfg.UserAgent)

	resp, err := i.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to download resource: %w", err)
	}
	defer closeQuietly(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("resource download returned status %d", resp.StatusCode)
	}

	batchSize := i.cfg.BatchSize
	if batchSize <= 0 {
		batchSize = 1000
	}
	batch := make([]models.Movie, 0, batchSize)

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		inserted, err := i.store.InsertMovies(ctx, batch)
		if err != nil {
			return err
		}
		stats.RowsInserted += inserted
		stats.RowsSkipped += int64(len(batch)) - inserted
		metrics.RecordIngestRows("inserted", inserted)
		metrics.RecordIngestRows("deduplicated", int64(len(batch))-inserted)
		batch = batch[:0]
		return nil
	}

	read, skipped, err := readCatalogCSV(resp.Body, func(m models.Movie) error {
		batch = append(batch, m)
		if len(batch) >= batchSize {
			return flush()
		}
		return nil
	})
	stats.RowsRead += read
	stats.RowsSkipped += skipped
	metrics.RecordIngestRows("rejected", skipped)
	if err != nil {
		return err
	}
	return flush()
}

// Running reports whether a run is in flight.
func (i *Ingester) Running() bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.running
}

// LastRun returns the stats and error of the most recent run, or nil
// when no run has completed yet.
func (i *Ingester) LastRun() (*Stats, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.lastStats, i.lastErr
}
