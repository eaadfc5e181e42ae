// Cinemate - Movie Recommendation API and Catalog Tooling
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemate

// Package config loads and validates the Cinemate configuration.
//
// Configuration is layered via Koanf v2 (highest priority wins):
//
//  1. Environment variables (SERVER_PORT, DUCKDB_PATH, LOG_LEVEL, ...)
//  2. Optional YAML config file (config.yaml, or CONFIG_PATH)
//  3. Built-in defaults
package config

import (
	"fmt"
	"strings"
	"time"
)

// Config is the root configuration structure.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Database  DatabaseConfig  `koanf:"database"`
	Logging   LoggingConfig   `koanf:"logging"`
	Recommend RecommendConfig `koanf:"recommend"`
	Ingest    IngestConfig    `koanf:"ingest"`
	API       APIConfig       `koanf:"api"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host        string        `koanf:"host"`
	Port        int           `koanf:"port"`
	Timeout     time.Duration `koanf:"timeout"`
	Environment string        `koanf:"environment"` // development or production
}

// Addr returns the host:port listen address.
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// DatabaseConfig holds DuckDB settings.
type DatabaseConfig struct {
	// Path is the DuckDB database file path.
	Path string `koanf:"path"`

	// MaxMemory is the DuckDB memory limit (e.g. "2GB").
	MaxMemory string `koanf:"max_memory"`

	// Threads is the DuckDB thread count; 0 uses runtime.NumCPU().
	Threads int `koanf:"threads"`

	// PreserveInsertionOrder matches the DuckDB default; disabling it
	// reduces memory usage but may change unordered result order.
	PreserveInsertionOrder bool `koanf:"preserve_insertion_order"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`  // debug, info, warn, error
	Format string `koanf:"format"` // json or console
	Caller bool   `koanf:"caller"`
}

// RecommendConfig holds recommendation engine settings.
type RecommendConfig struct {
	// DefaultCount is the number of recommendations returned when the
	// request does not specify num_rec.
	DefaultCount int `koanf:"default_count"`

	// MaxCount caps num_rec regardless of what the request asks for.
	MaxCount int `koanf:"max_count"`

	// Language restricts candidates to one catalog language. It is a
	// fixed service-level setting, not a per-request field.
	Language string `koanf:"language"`

	// TrainOnStartup builds the model from the catalog during startup.
	TrainOnStartup bool `koanf:"train_on_startup"`

	// Similarity weights; normalized at engine construction.
	GenreWeight    float64 `koanf:"genre_weight"`
	CastWeight     float64 `koanf:"cast_weight"`
	DirectorWeight float64 `koanf:"director_weight"`
	YearWeight     float64 `koanf:"year_weight"`

	// MaxYearDifference is the year gap at which year similarity reaches zero.
	MaxYearDifference int `koanf:"max_year_difference"`
}

// IngestConfig holds catalog ingest pipeline settings.
type IngestConfig struct {
	// ManifestURL points at the dataset manifest (JSON resource listing).
	ManifestURL string `koanf:"manifest_url"`

	// RunOnStartup ingests the catalog during startup when the movies
	// table is empty.
	RunOnStartup bool `koanf:"run_on_startup"`

	// BatchSize is the number of rows per insert batch.
	BatchSize int `koanf:"batch_size"`

	// HTTPTimeout bounds each manifest/CSV download.
	HTTPTimeout time.Duration `koanf:"http_timeout"`

	// UserAgent is sent with dataset downloads.
	UserAgent string `koanf:"user_agent"`
}

// APIConfig holds HTTP API behavior settings.
type APIConfig struct {
	DefaultPageSize int           `koanf:"default_page_size"`
	MaxPageSize     int           `koanf:"max_page_size"`
	RateLimitReqs   int           `koanf:"rate_limit_reqs"`
	RateLimitWindow time.Duration `koanf:"rate_limit_window"`
	CORSOrigins     []string      `koanf:"cors_origins"`
}

// Validate checks that the configuration is internally consistent.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateDatabase(); err != nil {
		return err
	}
	if err := c.validateRecommend(); err != nil {
		return err
	}
	if err := c.validateIngest(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("server timeout must be positive, got %s", c.Server.Timeout)
	}
	switch c.Server.Environment {
	case "development", "production":
		return nil
	default:
		return fmt.Errorf("ENVIRONMENT must be development or production, got %q", c.Server.Environment)
	}
}

func (c *Config) validateDatabase() error {
	if c.Database.Path == "" {
		return fmt.Errorf("DUCKDB_PATH must not be empty")
	}
	if c.Database.Threads < 0 {
		return fmt.Errorf("database threads must be >= 0, got %d", c.Database.Threads)
	}
	return nil
}

func (c *Config) validateRecommend() error {
	if c.Recommend.DefaultCount < 1 {
		return fmt.Errorf("recommend default_count must be >= 1, got %d", c.Recommend.DefaultCount)
	}
	if c.Recommend.MaxCount < c.Recommend.DefaultCount {
		return fmt.Errorf("recommend max_count (%d) must be >= default_count (%d)",
			c.Recommend.MaxCount, c.Recommend.DefaultCount)
	}
	if c.Recommend.Language == "" {
		return fmt.Errorf("recommend language must not be empty")
	}
	return nil
}

func (c *Config) validateIngest() error {
	if c.Ingest.BatchSize < 1 {
		return fmt.Errorf("ingest batch_size must be >= 1, got %d", c.Ingest.BatchSize)
	}
	if c.Ingest.ManifestURL != "" &&
		!strings.HasPrefix(c.Ingest.ManifestURL, "http://") &&
		!strings.HasPrefix(c.Ingest.ManifestURL, "https://") {
		return fmt.Errorf("ingest manifest_url must be an http(s) URL, got %q", c.Ingest.ManifestURL)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch strings.ToLower(c.Logging.Level) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal", "panic", "disabled":
	default:
		return fmt.Errorf("LOG_LEVEL must be a valid level, got %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "json", "console":
		return nil
	default:
		return fmt.Errorf("LOG_FORMAT must be json or console, got %q", c.Logging.Format)
	}
}
