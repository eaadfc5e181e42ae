// Cinemate - Movie Recommendation API and Catalog Tooling
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemate

package recommend

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/tomtom215/cinemate/internal/config"
	"github.com/tomtom215/cinemate/internal/logging"
	"github.com/tomtom215/cinemate/internal/models"
)

type staticProvider struct {
	movies []models.Movie
	err    error
}

func (p *staticProvider) AllMovies(_ context.Context) ([]models.Movie, error) {
	return p.movies, p.err
}

func testConfig() config.RecommendConfig {
	return config.RecommendConfig{
		DefaultCount:      10,
		MaxCount:          100,
		Language:          "english",
		GenreWeight:       0.4,
		CastWeight:        0.3,
		DirectorWeight:    0.2,
		YearWeight:        0.1,
		MaxYearDifference: 20,
	}
}

func testCatalog() []models.Movie {
	return []models.Movie{
		{
			ID: 1, Title: "Star Wars", OriginalLanguage: "en", ReleaseYear: 1977,
			Genres:   []string{"Science Fiction", "Adventure"},
			Cast:     []string{"Mark Hamill", "Harrison Ford", "Carrie Fisher"},
			Director: "George Lucas", Popularity: 90,
		},
		{
			ID: 2, Title: "The Empire Strikes Back", OriginalLanguage: "en", ReleaseYear: 1980,
			Genres:   []string{"Science Fiction", "Adventure"},
			Cast:     []string{"Mark Hamill", "Harrison Ford", "Carrie Fisher"},
			Director: "Irvin Kershner", Popularity: 85,
		},
		{
			ID: 3, Title: "American Graffiti", OriginalLanguage: "en", ReleaseYear: 1973,
			Genres:   []string{"Comedy", "Drama"},
			Cast:     []string{"Richard Dreyfuss", "Harrison Ford"},
			Director: "George Lucas", Popularity: 40,
		},
		{
			ID: 4, Title: "Seven Samurai", OriginalLanguage: "ja", ReleaseYear: 1954,
			Genres:   []string{"Action", "Adventure", "Drama"},
			Cast:     []string{"Toshiro Mifune"},
			Director: "Akira Kurosawa", Popularity: 70,
		},
		{
			ID: 5, Title: "The Notebook", OriginalLanguage: "en", ReleaseYear: 2004,
			Genres:   []string{"Romance", "Drama"},
			Cast:     []string{"Ryan Gosling", "Rachel McAdams"},
			Director: "Nick Cassavetes", Popularity: 60,
		},
	}
}

func newTestEngine(t *testing.T, movies []models.Movie) *Engine {
	t.Helper()
	engine := NewEngine(testConfig(), &staticProvider{movies: movies}, logging.NewTestLogger(io.Discard))
	if err := engine.Train(context.Background()); err != nil {
		t.Fatalf("Train() error = %v", err)
	}
	return engine
}

func TestEngineNotTrained(t *testing.T) {
	engine := NewEngine(testConfig(), &staticProvider{}, logging.NewTestLogger(io.Discard))

	_, err := engine.GetRecommendation(context.Background(), "Star Wars", 10, "english")
	if !errors.Is(err, ErrNotTrained) {
		t.Errorf("GetRecommendation() error = %v, want ErrNotTrained", err)
	}
}

func TestEngineTrainProviderError(t *testing.T) {
	provider := &staticProvider{err: errors.New("catalog unavailable")}
	engine := NewEngine(testConfig(), provider, logging.NewTestLogger(io.Discard))

	if err := engine.Train(context.Background()); err == nil {
		t.Error("Train() expected error, got nil")
	}
	if engine.Status().Trained {
		t.Error("Status().Trained = true after failed training")
	}
}

func TestEngineUnknownMovie(t *testing.T) {
	engine := newTestEngine(t, testCatalog())

	results, err := engine.GetRecommendation(context.Background(), "No Such Movie", 10, "english")
	if err != nil {
		t.Fatalf("GetRecommendation() error = %v", err)
	}
	if len(results) != 0 {
		t.Errorf("GetRecommendation() returned %d results for unknown movie, want 0", len(results))
	}
}

func TestEngineRanksSimilarMoviesFirst(t *testing.T) {
	engine := newTestEngine(t, testCatalog())

	results, err := engine.GetRecommendation(context.Background(), "Star Wars", 10, "english")
	if err != nil {
		t.Fatalf("GetRecommendation() error = %v", err)
	}
	if len(results) == 0 {
		t.Fatal("GetRecommendation() returned no results")
	}
	if got := results[0].Movie.Title; got != "The Empire Strikes Back" {
		t.Errorf("top recommendation = %q, want %q", got, "The Empire Strikes Back")
	}
	for i := 1; i < len(results); i++ {
		if results[i].Score > results[i-1].Score {
			t.Errorf("results not sorted by score: [%d]=%f > [%d]=%f",
				i, results[i].Score, i-1, results[i-1].Score)
		}
	}
	for _, r := range results {
		if r.Movie.Title == "Star Wars" {
			t.Error("source movie must not appear in its own recommendations")
		}
	}
}

func TestEngineLanguageFilter(t *testing.T) {
	engine := newTestEngine(t, testCatalog())

	results, err := engine.GetRecommendation(context.Background(), "Star Wars", 10, "english")
	if err != nil {
		t.Fatalf("GetRecommendation() error = %v", err)
	}
	for _, r := range results {
		if r.Movie.OriginalLanguage != "en" {
			t.Errorf("movie %q has language %q, want en", r.Movie.Title, r.Movie.OriginalLanguage)
		}
	}
}

func TestEngineCountLimit(t *testing.T) {
	engine := newTestEngine(t, testCatalog())

	results, err := engine.GetRecommendation(context.Background(), "Star Wars", 1, "english")
	if err != nil {
		t.Fatalf("GetRecommendation() error = %v", err)
	}
	if len(results) != 1 {
		t.Errorf("GetRecommendation(count=1) returned %d results", len(results))
	}
}

func TestEngineStatus(t *testing.T) {
	engine := newTestEngine(t, testCatalog())

	status := engine.Status()
	if !status.Trained {
		t.Error("Status().Trained = false after training")
	}
	if status.ModelVersion != 1 {
		t.Errorf("Status().ModelVersion = %d, want 1", status.ModelVersion)
	}
	if status.CatalogSize != len(testCatalog()) {
		t.Errorf("Status().CatalogSize = %d, want %d", status.CatalogSize, len(testCatalog()))
	}

	if err := engine.Train(context.Background()); err != nil {
		t.Fatalf("retrain error = %v", err)
	}
	if got := engine.Status().ModelVersion; got != 2 {
		t.Errorf("ModelVersion after retrain = %d, want 2", got)
	}
}

func TestJaccard(t *testing.T) {
	tests := []struct {
		name string
		a, b []string
		want float64
	}{
		{"identical", []string{"a", "b"}, []string{"a", "b"}, 1},
		{"disjoint", []string{"a"}, []string{"b"}, 0},
		{"partial", []string{"a", "b"}, []string{"b", "c"}, 1.0 / 3.0},
		{"empty left", nil, []string{"a"}, 0},
		{"both empty", nil, nil, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := jaccard(toSet(tt.a), toSet(tt.b))
			if got != tt.want {
				t.Errorf("jaccard() = %f, want %f", got, tt.want)
			}
		})
	}
}

func TestYearProximity(t *testing.T) {
	engine := NewEngine(testConfig(), &staticProvider{}, logging.NewTestLogger(io.Discard))

	tests := []struct {
		name string
		a, b int
		want float64
	}{
		{"same year", 2000, 2000, 1},
		{"half window", 2000, 2010, 0.5},
		{"beyond window", 2000, 2025, 0},
		{"missing year", 0, 2000, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := engine.yearProximity(tt.a, tt.b)
			if got != tt.want {
				t.Errorf("yearProximity(%d, %d) = %f, want %f", tt.a, tt.b, got, tt.want)
			}
		})
	}
}
