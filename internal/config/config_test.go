// Cinemate - Movie Recommendation API and Catalog Tooling
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemate

package config

import (
	"os"
	"path/filepath"
	"testing"
)

// chdirEmpty moves the test into an empty directory so a developer's
// local config.yaml cannot leak into the test.
func chdirEmpty(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	old, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd() error = %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir() error = %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(old) })
}

func TestLoadDefaults(t *testing.T) {
	chdirEmpty(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Port != 8000 {
		t.Errorf("Server.Port = %d, want 8000", cfg.Server.Port)
	}
	if cfg.Recommend.DefaultCount != 10 {
		t.Errorf("Recommend.DefaultCount = %d, want 10", cfg.Recommend.DefaultCount)
	}
	if cfg.Recommend.Language != "english" {
		t.Errorf("Recommend.Language = %q, want english", cfg.Recommend.Language)
	}
	if cfg.Database.Path != "/data/cinemate.duckdb" {
		t.Errorf("Database.Path = %q", cfg.Database.Path)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	chdirEmpty(t)
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("RECOMMEND_LANGUAGE", "french")
	t.Setenv("DUCKDB_PATH", "/tmp/test.duckdb")
	t.Setenv("API_CORS_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Recommend.Language != "french" {
		t.Errorf("Recommend.Language = %q, want french", cfg.Recommend.Language)
	}
	if cfg.Database.Path != "/tmp/test.duckdb" {
		t.Errorf("Database.Path = %q", cfg.Database.Path)
	}
	want := []string{"https://a.example", "https://b.example"}
	if len(cfg.API.CORSOrigins) != 2 || cfg.API.CORSOrigins[0] != want[0] || cfg.API.CORSOrigins[1] != want[1] {
		t.Errorf("API.CORSOrigins = %v, want %v", cfg.API.CORSOrigins, want)
	}
}

func TestLoadConfigFile(t *testing.T) {
	chdirEmpty(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte("server:\n  port: 7070\nrecommend:\n  default_count: 25\n")
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	t.Setenv(ConfigPathEnvVar, path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Port != 7070 {
		t.Errorf("Server.Port = %d, want 7070", cfg.Server.Port)
	}
	if cfg.Recommend.DefaultCount != 25 {
		t.Errorf("Recommend.DefaultCount = %d, want 25", cfg.Recommend.DefaultCount)
	}
}

func TestLoadEnvBeatsFile(t *testing.T) {
	chdirEmpty(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("server:\n  port: 7070\n"), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("SERVER_PORT", "9091")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Port != 9091 {
		t.Errorf("Server.Port = %d, want 9091 (env should win)", cfg.Server.Port)
	}
}

func TestLoadInvalidPort(t *testing.T) {
	chdirEmpty(t)
	t.Setenv("SERVER_PORT", "-1")

	if _, err := Load(); err == nil {
		t.Error("Load() expected validation error for negative port")
	}
}

func TestEnvTransformDropsUnknown(t *testing.T) {
	if got := envTransformFunc("PATH"); got != "" {
		t.Errorf("envTransformFunc(PATH) = %q, want empty", got)
	}
	if got := envTransformFunc("SERVER_PORT"); got != "server.port" {
		t.Errorf("envTransformFunc(SERVER_PORT) = %q", got)
	}
}

func TestServerAddr(t *testing.T) {
	c := ServerConfig{Host: "127.0.0.1", Port: 8000}
	if got := c.Addr(); got != "127.0.0.1:8000" {
		t.Errorf("Addr() = %q", got)
	}
}
