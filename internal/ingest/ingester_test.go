// Cinemate - Movie Recommendation API and Catalog Tooling
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemate

package ingest

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/tomtom215/cinemate/internal/config"
	"github.com/tomtom215/cinemate/internal/logging"
	"github.com/tomtom215/cinemate/internal/models"
)

type memoryStore struct {
	movies []models.Movie
}

func (s *memoryStore) InsertMovies(_ context.Context, movies []models.Movie) (int64, error) {
	s.movies = append(s.movies, movies...)
	return int64(len(movies)), nil
}

func (s *memoryStore) CountMovies(_ context.Context) (int64, error) {
	return int64(len(s.movies)), nil
}

func TestCleanHeader(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Title", "title"},
		{" Movie Title ", "title"},
		{"orig_lang", "original_language"},
		{"Release-Date", "release_date"},
		{"GENRE", "genres"},
		{"Actors", "cast"},
		{"Rating (0-10)", "vote_average"},
		{"Popularity*", "popularity"},
		{"unknown column", "unknown_column"},
	}
	for _, tt := range tests {
		if got := cleanHeader(tt.in); got != tt.want {
			t.Errorf("cleanHeader(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSelectResources(t *testing.T) {
	m := &manifest{}
	m.Result.Resources = []resource{
		{Name: "2024 English", URL: "http://example.com/a.csv", Language: "English", Format: "CSV"},
		{Name: "Original", URL: "http://example.com/orig.csv", Language: "English", Format: "CSV"},
		{Name: "2024 French", URL: "http://example.com/fr.csv", Language: "French", Format: "CSV"},
		{Name: "Readme", URL: "http://example.com/readme.pdf", Language: "English", Format: "PDF"},
		{Name: "Broken", URL: "", Language: "English", Format: "CSV"},
	}

	selected := selectResources(m)
	if len(selected) != 1 {
		t.Fatalf("selectResources() returned %d resources, want 1", len(selected))
	}
	if selected[0].Name != "2024 English" {
		t.Errorf("selected resource = %q, want %q", selected[0].Name, "2024 English")
	}
}

func TestReadCatalogCSV(t *testing.T) {
	data := strings.Join([]string{
		"Title,Orig_Lang,Release Date,Genre,Actors,Director,Popularity,Vote_Average",
		`Star Wars,EN,1977-05-25,"Science Fiction|Adventure","Mark Hamill|Harrison Ford",George Lucas,90.5,8.2`,
		`,en,2000-01-01,Drama,Nobody,None,1,1`,
		`Seven Samurai,ja,1954-04-26,"Action, Drama",Toshiro Mifune,Akira Kurosawa,70,8.6`,
	}, "\n")

	var movies []models.Movie
	read, skipped, err := readCatalogCSV(strings.NewReader(data), func(m models.Movie) error {
		movies = append(movies, m)
		return nil
	})
	if err != nil {
		t.Fatalf("readCatalogCSV() error = %v", err)
	}
	if read != 3 {
		t.Errorf("rows read = %d, want 3", read)
	}
	if skipped != 1 {
		t.Errorf("rows skipped = %d, want 1", skipped)
	}
	if len(movies) != 2 {
		t.Fatalf("parsed %d movies, want 2", len(movies))
	}

	sw := movies[0]
	if sw.Title != "Star Wars" {
		t.Errorf("Title = %q", sw.Title)
	}
	if sw.OriginalLanguage != "en" {
		t.Errorf("OriginalLanguage = %q, want en", sw.OriginalLanguage)
	}
	if sw.ReleaseYear != 1977 {
		t.Errorf("ReleaseYear = %d, want 1977", sw.ReleaseYear)
	}
	if len(sw.Genres) != 2 || sw.Genres[0] != "Science Fiction" {
		t.Errorf("Genres = %v", sw.Genres)
	}
	if len(sw.Cast) != 2 {
		t.Errorf("Cast = %v", sw.Cast)
	}
	if sw.Popularity != 90.5 {
		t.Errorf("Popularity = %f", sw.Popularity)
	}

	// comma-separated multi-value fallback
	if got := movies[1].Genres; len(got) != 2 || got[1] != "Drama" {
		t.Errorf("comma-separated genres = %v", got)
	}
}

func TestReadCatalogCSVMissingTitleColumn(t *testing.T) {
	data := "foo,bar\n1,2\n"
	_, _, err := readCatalogCSV(strings.NewReader(data), func(models.Movie) error { return nil })
	if err == nil {
		t.Error("expected error for CSV without a title column")
	}
}

func TestIngesterRun(t *testing.T) {
	csvData := strings.Join([]string{
		"title,original_language,release_date,genres,cast,director",
		"Movie A,en,2001-01-01,Drama,Actor One,Director One",
		"Movie B,en,2002-01-01,Comedy,Actor Two,Director Two",
	}, "\n")

	mux := http.NewServeMux()
	mux.HandleFunc("/catalog.csv", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, csvData)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	mux.HandleFunc("/manifest", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `{"result":{"resources":[
			{"name":"2024 English","url":"`+server.URL+`/catalog.csv","language":"English","format":"CSV"},
			{"name":"Original","url":"`+server.URL+`/catalog.csv","language":"English","format":"CSV"}
		]}}`)
	})

	store := &memoryStore{}
	ingester := New(config.IngestConfig{
		ManifestURL: server.URL + "/manifest",
		BatchSize:   1,
		HTTPTimeout: 5 * time.Second,
		UserAgent:   "cinemate-test",
	}, store, logging.NewTestLogger(io.Discard))

	stats, err := ingester.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if stats.Resources != 1 {
		t.Errorf("Resources = %d, want 1", stats.Resources)
	}
	if stats.RowsRead != 2 {
		t.Errorf("RowsRead = %d, want 2", stats.RowsRead)
	}
	if stats.RowsInserted != 2 {
		t.Errorf("RowsInserted = %d, want 2", stats.RowsInserted)
	}
	if len(store.movies) != 2 {
		t.Errorf("store holds %d movies, want 2", len(store.movies))
	}

	last, lastErr := ingester.LastRun()
	if last == nil || lastErr != nil {
		t.Errorf("LastRun() = (%v, %v), want stats and nil error", last, lastErr)
	}
}

func TestIngesterManifestError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	ingester := New(config.IngestConfig{
		ManifestURL: server.URL,
		HTTPTimeout: 5 * time.Second,
	}, &memoryStore{}, logging.NewTestLogger(io.Discard))

	if _, err := ingester.Run(context.Background()); err == nil {
		t.Error("Run() expected error for failing manifest endpoint")
	}
}
