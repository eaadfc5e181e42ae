// Cinemate - Movie Recommendation API and Catalog Tooling
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemate

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/tomtom215/cinemate/internal/models"
)

// listDelimiter separates multi-valued fields (genres, cast) in storage.
const listDelimiter = "|"

// schemaStatements create the catalog schema. The (title, release_year)
// unique index backs ingest deduplication via ON CONFLICT DO NOTHING.
var schemaStatements = []string{
	`CREATE SEQUENCE IF NOT EXISTS movies_id_seq`,
	`CREATE TABLE IF NOT EXISTS movies (
		id BIGINT PRIMARY KEY DEFAULT nextval('movies_id_seq'),
		title VARCHAR NOT NULL,
		original_language VARCHAR NOT NULL DEFAULT 'en',
		release_year INTEGER NOT NULL DEFAULT 0,
		genres VARCHAR NOT NULL DEFAULT '',
		cast_members VARCHAR NOT NULL DEFAULT '',
		director VARCHAR NOT NULL DEFAULT '',
		overview VARCHAR NOT NULL DEFAULT '',
		popularity DOUBLE NOT NULL DEFAULT 0,
		vote_average DOUBLE NOT NULL DEFAULT 0,
		created_at TIMESTAMP NOT NULL DEFAULT current_timestamp
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_movies_title_year ON movies (title, release_year)`,
}

const movieColumns = `id, title, original_language, release_year, genres, cast_members, director, overview, popularity, vote_average, created_at`

// InsertMovies inserts a batch of catalog rows, skipping rows whose
// (title, release_year) already exists. Returns the number inserted.
func (db *DB) InsertMovies(ctx context.Context, movies []models.Movie) (int64, error) {
	if len(movies) == 0 {
		return 0, nil
	}

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback() // no-op after commit
	}()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO movies
		(title, original_language, release_year, genres, cast_members, director, overview, popularity, vote_average)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (title, release_year) DO NOTHING`)
	if err != nil {
		return 0, fmt.Errorf("prepare insert: %w", err)
	}
	defer func() {
		_ = stmt.Close()
	}()

	var inserted int64
	for _, m := range movies {
		res, err := stmt.ExecContext(ctx,
			m.Title,
			m.OriginalLanguage,
			m.ReleaseYear,
			joinList(m.Genres),
			joinList(m.Cast),
			m.Director,
			m.Overview,
			m.Popularity,
			m.VoteAverage,
		)
		if err != nil {
			return inserted, fmt.Errorf("insert movie %q: %w", m.Title, err)
		}
		if n, err := res.RowsAffected(); err == nil {
			inserted += n
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit insert batch: %w", err)
	}
	return inserted, nil
}

// GetMovieByTitle returns the catalog entry with the given exact title.
// When several releases share a title, the most popular one is returned.
// Returns nil (and no error) when the title is not in the catalog.
func (db *DB) GetMovieByTitle(ctx context.Context, title string) (*models.Movie, error) {
	row := db.conn.QueryRowContext(ctx, `SELECT `+movieColumns+`
		FROM movies WHERE title = ?
		ORDER BY popularity DESC, release_year DESC LIMIT 1`, title)

	m, err := scanMovie(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("query movie by title: %w", err)
	}
	return m, nil
}

// ListMovies returns a page of the catalog ordered by popularity.
func (db *DB) ListMovies(ctx context.Context, limit, offset int) ([]models.Movie, error) {
	rows, err := db.conn.QueryContext(ctx, `SELECT `+movieColumns+`
		FROM movies ORDER BY popularity DESC, title LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("query movies: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []models.Movie
	for rows.Next() {
		m, err := scanMovie(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movie: %w", err)
		}
		result = append(result, *m)
	}
	return result, rows.Err()
}

// AllMovies returns the entire catalog. Used by the recommendation engine
// at train time; not intended for request-path use.
func (db *DB) AllMovies(ctx context.Context) ([]models.Movie, error) {
	rows, err := db.conn.QueryContext(ctx, `SELECT `+movieColumns+` FROM movies ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query catalog: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []models.Movie
	for rows.Next() {
		m, err := scanMovie(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movie: %w", err)
		}
		result = append(result, *m)
	}
	return result, rows.Err()
}

// CountMovies returns the number of catalog rows.
func (db *DB) CountMovies(ctx context.Context) (int64, error) {
	var count int64
	if err := db.conn.QueryRowContext(ctx, `SELECT count(*) FROM movies`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count movies: %w", err)
	}
	return count, nil
}

// rowScanner abstracts *sql.Row and *sql.Rows for scanMovie.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanMovie(row rowScanner) (*models.Movie, error) {
	var m models.Movie
	var genres, cast string

	err := row.Scan(
		&m.ID,
		&m.Title,
		&m.OriginalLanguage,
		&m.ReleaseYear,
		&genres,
		&cast,
		&m.Director,
		&m.Overview,
		&m.Popularity,
		&m.VoteAverage,
		&m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	m.Genres = splitList(genres)
	m.Cast = splitList(cast)
	return &m, nil
}

// joinList serializes a multi-valued field for storage.
func joinList(values []string) string {
	return strings.Join(values, listDelimiter)
}

// splitList deserializes a stored multi-valued field.
func splitList(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, listDelimiter)
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			result = append(result, p)
		}
	}
	if len(result) == 0 {
		return nil
	}
	return result
}
