// Cinemate - Movie Recommendation API and Catalog Tooling
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemate

package recommend

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/cinemate/internal/config"
	"github.com/tomtom215/cinemate/internal/metrics"
	"github.com/tomtom215/cinemate/internal/models"
)

// featureSet holds the precomputed comparable features for one movie.
type featureSet struct {
	genres   map[string]struct{}
	cast     map[string]struct{}
	director string
	year     int
}

// Engine is the content-based recommendation engine.
//
// Train builds an in-memory model from the catalog; GetRecommendation
// ranks candidates against a source movie by weighted similarity. The
// model is replaced atomically under the write lock, so queries always
// see a complete model.
type Engine struct {
	cfg      config.RecommendConfig
	provider CatalogProvider
	logger   zerolog.Logger

	mu         sync.RWMutex
	movies     []models.Movie
	features   []featureSet
	titleIndex map[string][]int
	trained    bool
	training   bool
	version    int
	trainedAt  time.Time

	// normalized similarity weights
	genreWeight    float64
	castWeight     float64
	directorWeight float64
	yearWeight     float64
}

// NewEngine creates an untrained engine. Call Train before querying.
func NewEngine(cfg config.RecommendConfig, provider CatalogProvider, logger zerolog.Logger) *Engine {
	e := &Engine{
		cfg:      cfg,
		provider: provider,
		logger:   logger.With().Str("component", "recommend").Logger(),
	}
	e.normalizeWeights()
	return e
}

// normalizeWeights scales the configured weights so they sum to 1.
// Falls back to a genre-only model when all weights are zero.
func (e *Engine) normalizeWeights() {
	total := e.cfg.GenreWeight + e.cfg.CastWeight + e.cfg.DirectorWeight + e.cfg.YearWeight
	if total <= 0 {
		e.genreWeight = 1
		return
	}
	e.genreWeight = e.cfg.GenreWeight / total
	e.castWeight = e.cfg.CastWeight / total
	e.directorWeight = e.cfg.DirectorWeight / total
	e.yearWeight = e.cfg.YearWeight / total
}

// Train loads the catalog and rebuilds the similarity model.
// Safe to call concurrently; overlapping calls are rejected so a slow
// catalog load cannot pile up duplicate rebuilds.
func (e *Engine) Train(ctx context.Context) error {
	e.mu.Lock()
	if e.training {
		e.mu.Unlock()
		return ErrTrainingRunning
	}
	e.training = true
	e.mu.Unlock()

	defer func() {
		e.mu.Lock()
		e.training = false
		e.mu.Unlock()
	}()

	start := time.Now()
	e.logger.Info().Msg("Training recommendation model")

	movies, err := e.provider.AllMovies(ctx)
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	features := make([]featureSet, len(movies))
	titleIndex := make(map[string][]int, len(movies))
	for i, m := range movies {
		features[i] = buildFeatures(m)
		titleIndex[m.Title] = append(titleIndex[m.Title], i)
	}

	e.mu.Lock()
	e.movies = movies
	e.features = features
	e.titleIndex = titleIndex
	e.trained = true
	e.version++
	e.trainedAt = time.Now().UTC()
	version := e.version
	e.mu.Unlock()

	metrics.RecordTrainDuration(time.Since(start))
	metrics.SetCatalogSize(len(movies))
	e.logger.Info().
		Int("catalog_size", len(movies)).
		Int("model_version", version).
		Dur("duration", time.Since(start)).
		Msg("Recommendation model trained")
	return nil
}

// GetRecommendation returns up to count movies similar to the named
// movie, restricted to the given language. A nil slice with a nil error
// means the movie is unknown or nothing similar exists; the caller maps
// that to its not-found response.
func (e *Engine) GetRecommendation(ctx context.Context, movie string, count int, language string) ([]ScoredMovie, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if !e.trained {
		return nil, ErrNotTrained
	}
	if count <= 0 {
		count = e.cfg.DefaultCount
	}

	indexes := e.titleIndex[movie]
	if len(indexes) == 0 {
		return nil, nil
	}

	// A title can appear more than once (remakes); recommend against
	// the most popular entry.
	source := indexes[0]
	for _, idx := range indexes[1:] {
		if e.movies[idx].Popularity > e.movies[source].Popularity {
			source = idx
		}
	}

	langCode := languageCode(strings.ToLower(strings.TrimSpace(language)))
	srcMovie := e.movies[source]
	srcFeatures := e.features[source]

	scored := make([]ScoredMovie, 0, count)
	for i := range e.movies {
		if i%4096 == 0 && ctx.Err() != nil {
			return nil, ctx.Err()
		}
		cand := e.movies[i]
		if cand.Title == srcMovie.Title {
			continue
		}
		if langCode != "" && cand.OriginalLanguage != langCode {
			continue
		}
		score := e.similarity(srcFeatures, e.features[i])
		if score <= 0 {
			continue
		}
		scored = append(scored, ScoredMovie{
			Movie:  cand,
			Score:  score,
			Reason: e.explain(srcFeatures, e.features[i]),
		})
	}

	sort.Slice(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		if scored[i].Movie.Popularity != scored[j].Movie.Popularity {
			return scored[i].Movie.Popularity > scored[j].Movie.Popularity
		}
		return scored[i].Movie.Title < scored[j].Movie.Title
	})

	if len(scored) > count {
		scored = scored[:count]
	}
	return scored, nil
}

// Status reports the engine's training state.
func (e *Engine) Status() Status {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return Status{
		Trained:       e.trained,
		Training:      e.training,
		ModelVersion:  e.version,
		LastTrainedAt: e.trainedAt,
		CatalogSize:   len(e.movies),
	}
}

// similarity computes the weighted similarity between two feature sets.
func (e *Engine) similarity(a, b featureSet) float64 {
	score := e.genreWeight * jaccard(a.genres, b.genres)
	score += e.castWeight * jaccard(a.cast, b.cast)
	if a.director != "" && a.director == b.director {
		score += e.directorWeight
	}
	score += e.yearWeight * e.yearProximity(a.year, b.year)
	return score
}

// yearProximity maps the release-year gap onto [0, 1], with 1 for the
// same year and 0 at or beyond the configured maximum difference.
func (e *Engine) yearProximity(a, b int) float64 {
	if a == 0 || b == 0 || e.cfg.MaxYearDifference <= 0 {
		return 0
	}
	diff := math.Abs(float64(a - b))
	if diff >= float64(e.cfg.MaxYearDifference) {
		return 0
	}
	return 1 - diff/float64(e.cfg.MaxYearDifference)
}

// explain builds a short human-readable reason from the strongest
// shared signal between the source and the candidate.
func (e *Engine) explain(a, b featureSet) string {
	if a.director != "" && a.director == b.director {
		return "same director"
	}
	shared := sharedKeys(a.genres, b.genres)
	if len(shared) > 0 {
		if len(shared) > 3 {
			shared = shared[:3]
		}
		return "shared genres: " + strings.Join(shared, ", ")
	}
	if n := len(sharedKeys(a.cast, b.cast)); n > 0 {
		return fmt.Sprintf("%d shared cast members", n)
	}
	return "similar release period"
}

func buildFeatures(m models.Movie) featureSet {
	return featureSet{
		genres:   toSet(m.Genres),
		cast:     toSet(m.Cast),
		director: strings.ToLower(strings.TrimSpace(m.Director)),
		year:     m.ReleaseYear,
	}
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		v = strings.ToLower(strings.TrimSpace(v))
		if v != "" {
			set[v] = struct{}{}
		}
	}
	return set
}

// jaccard computes |A∩B| / |A∪B|, zero when either set is empty.
func jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	intersection := 0
	for k := range a {
		if _, ok := b[k]; ok {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

// sharedKeys returns the sorted intersection of two sets.
func sharedKeys(a, b map[string]struct{}) []string {
	var shared []string
	for k := range a {
		if _, ok := b[k]; ok {
			shared = append(shared, k)
		}
	}
	sort.Strings(shared)
	return shared
}
