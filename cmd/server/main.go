// Cinemate - Movie Recommendation API and Catalog Tooling
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemate

// Package main is the entry point for the Cinemate server.
//
// Cinemate is a self-hosted movie recommendation service. It ingests an
// open movie catalog into DuckDB, trains a content-based similarity
// model over it, and serves recommendations over a JSON HTTP API.
//
// # Application Architecture
//
// The server initializes components in the following order:
//
//  1. Configuration: Load settings from environment variables and config files (Koanf v2)
//  2. Database: Initialize DuckDB and the movie catalog schema
//  3. Ingest: Optionally download and load the catalog when the table is empty
//  4. Engine: Optionally train the recommendation model from the catalog
//  5. HTTP Server: REST API with Prometheus metrics and Swagger documentation
//
// # Configuration
//
// Configuration is loaded via Koanf v2 with layered sources (highest priority wins):
//   - Environment variables (SERVER_PORT, DUCKDB_PATH, RECOMMEND_LANGUAGE, ...)
//   - Config file (config.yaml, or CONFIG_PATH)
//   - Built-in defaults
//
// # Signal Handling
//
// The server handles graceful shutdown on SIGINT and SIGTERM:
//   - Stops accepting new connections
//   - Waits for in-flight requests to complete (10s timeout)
//   - Closes the database connection
//
// # Example Usage
//
// Serve an already-ingested catalog:
//
//	export DUCKDB_PATH=/data/cinemate.duckdb
//	./cinemate
//
// First run with catalog download and training:
//
//	export INGEST_MANIFEST_URL=https://example.org/dataset/package_show
//	export INGEST_RUN_ON_STARTUP=true
//	export RECOMMEND_TRAIN_ON_STARTUP=true
//	./cinemate
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/tomtom215/cinemate/docs" // Import generated swagger docs
	"github.com/tomtom215/cinemate/internal/api"
	"github.com/tomtom215/cinemate/internal/config"
	"github.com/tomtom215/cinemate/internal/database"
	"github.com/tomtom215/cinemate/internal/ingest"
	"github.com/tomtom215/cinemate/internal/logging"
	"github.com/tomtom215/cinemate/internal/recommend"
)

//	@title			Cinemate API
//	@version		1.0.0
//	@description	Movie recommendation API backed by a content-based engine over an open movie catalog.
//	@license.name	AGPL-3.0-or-later
//	@license.url	https://www.gnu.org/licenses/agpl-3.0.html
//	@BasePath		/

func main() {
	// Load configuration first to get logging settings
	cfg, err := config.Load()
	if err != nil {
		// Use default logger for config errors (config not yet available)
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("db_path", cfg.Database.Path).
		Str("language", cfg.Recommend.Language).
		Int("default_count", cfg.Recommend.DefaultCount).
		Msg("Starting Cinemate")

	db, err := database.New(&cfg.Database)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing database")
		}
	}()
	logging.Info().Msg("Database initialized successfully")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ingester := ingest.New(cfg.Ingest, db, logging.Logger())

	// First-run convenience: pull the catalog when the table is empty.
	if cfg.Ingest.RunOnStartup {
		count, err := db.CountMovies(ctx)
		if err != nil {
			logging.Fatal().Err(err).Msg("Failed to inspect catalog")
		}
		if count == 0 {
			if cfg.Ingest.ManifestURL == "" {
				logging.Warn().Msg("Startup ingest requested but INGEST_MANIFEST_URL is not set")
			} else if _, err := ingester.Run(ctx); err != nil {
				logging.Fatal().Err(err).Msg("Startup catalog ingest failed")
			}
		} else {
			logging.Info().Int64("catalog_size", count).Msg("Catalog already populated, skipping startup ingest")
		}
	}

	engine := recommend.NewEngine(cfg.Recommend, db, logging.Logger())
	if cfg.Recommend.TrainOnStartup {
		if err := engine.Train(ctx); err != nil {
			logging.Fatal().Err(err).Msg("Failed to train recommendation model")
		}
	} else {
		logging.Info().Msg("Startup training disabled, train via POST /api/v1/admin/train")
	}

	handler := api.NewHandler(cfg, engine, db, ingester, logging.Logger())

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      handler.NewRouter(),
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
		IdleTimeout:  60 * time.Second,
	}

	// Setup signal handling
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		logging.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		errCh <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigCh:
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal().Err(err).Msg("HTTP server error")
		}
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logging.Error().Err(err).Msg("HTTP server shutdown error")
	}

	logging.Info().Msg("Application stopped gracefully")
}
