// Cinemate - Movie Recommendation API and Catalog Tooling
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemate

package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/tomtom215/cinemate/internal/models"
)

// columnAliases maps cleaned header names onto canonical column names.
// Dataset exports have renamed columns across releases.
var columnAliases = map[string]string{
	"movie_title":       "title",
	"name":              "title",
	"language":          "original_language",
	"orig_lang":         "original_language",
	"release_date":      "release_date",
	"date_published":    "release_date",
	"release_year":      "release_year",
	"year":              "release_year",
	"genre":             "genres",
	"genres":            "genres",
	"actors":            "cast",
	"cast":              "cast",
	"cast_members":      "cast",
	"director":          "director",
	"directors":         "director",
	"description":       "overview",
	"overview":          "overview",
	"plot":              "overview",
	"popularity":        "popularity",
	"vote_average":      "vote_average",
	"rating":            "vote_average",
	"title":             "title",
	"original_language": "original_language",
}

// cleanHeader normalizes a raw CSV header cell to a canonical column
// name: lowercased, trimmed, footnote markers and parenthesized units
// removed, spaces and dashes collapsed to underscores.
func cleanHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	h = strings.Trim(h, `"`)
	if idx := strings.IndexByte(h, '('); idx >= 0 {
		h = strings.TrimSpace(h[:idx])
	}
	h = strings.ReplaceAll(h, "*", "")
	h = strings.ReplaceAll(h, "#", "")
	h = strings.TrimSpace(h)
	h = strings.ReplaceAll(h, " ", "_")
	h = strings.ReplaceAll(h, "-", "_")
	if canonical, ok := columnAliases[h]; ok {
		return canonical
	}
	return h
}

// rowHandler receives each parsed catalog row. Returning an error
// aborts the read.
type rowHandler func(models.Movie) error

// readCatalogCSV parses one catalog CSV stream and emits a Movie per
// valid row. Rows without a title are counted as skipped, not errors.
// Returns (rows read, rows skipped).
func readCatalogCSV(r io.Reader, handle rowHandler) (int64, int64, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		return 0, 0, fmt.Errorf("failed to read CSV header: %w", err)
	}
	columns := make(map[string]int, len(header))
	for idx, h := range header {
		columns[cleanHeader(h)] = idx
	}
	if _, ok := columns["title"]; !ok {
		return 0, 0, fmt.Errorf("CSV is missing a title column")
	}

	var read, skipped int64
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Malformed row; skip rather than abort the whole file.
			skipped++
			continue
		}
		read++

		movie, ok := parseRow(columns, record)
		if !ok {
			skipped++
			continue
		}
		if err := handle(movie); err != nil {
			return read, skipped, err
		}
	}
	return read, skipped, nil
}

// parseRow maps a CSV record onto a Movie. Rows without a title are
// rejected.
func parseRow(columns map[string]int, record []string) (models.Movie, bool) {
	field := func(name string) string {
		idx, ok := columns[name]
		if !ok || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	title := field("title")
	if title == "" {
		return models.Movie{}, false
	}

	movie := models.Movie{
		Title:            title,
		OriginalLanguage: strings.ToLower(field("original_language")),
		Genres:           splitMultiValue(field("genres")),
		Cast:             splitMultiValue(field("cast")),
		Director:         field("director"),
		Overview:         field("overview"),
	}
	movie.ReleaseYear = parseYear(field("release_year"), field("release_date"))
	movie.Popularity, _ = strconv.ParseFloat(field("popularity"), 64)
	movie.VoteAverage, _ = strconv.ParseFloat(field("vote_average"), 64)
	return movie, true
}

// parseYear resolves the release year from either a year column or the
// leading year of a release date.
func parseYear(yearField, dateField string) int {
	if yearField != "" {
		if year, err := strconv.Atoi(yearField); err == nil {
			return year
		}
	}
	if len(dateField) >= 4 {
		if year, err := strconv.Atoi(dateField[:4]); err == nil {
			return year
		}
	}
	return 0
}

// splitMultiValue splits a multi-valued cell. Exports use either pipe
// or comma separators.
func splitMultiValue(s string) []string {
	if s == "" {
		return nil
	}
	sep := "|"
	if !strings.Contains(s, "|") {
		sep = ","
	}
	parts := strings.Split(s, sep)
	values := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			values = append(values, p)
		}
	}
	return values
}
