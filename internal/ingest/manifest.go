// Cinemate - Movie Recommendation API and Catalog Tooling
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemate

package ingest

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	json "github.com/goccy/go-json"
)

// maxManifestSize bounds the manifest document read (16 MiB).
const maxManifestSize = 16 << 20

// fetchManifest downloads and decodes the dataset manifest.
func (i *Ingester) fetchManifest(ctx context.Context) (*manifest, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, i.cfg.ManifestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build manifest request: %w", err)
	}
	req.Header.Set("User-Agent", i.cfg.UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := i.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch manifest: %w", err)
	}
	defer closeQuietly(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("manifest request returned status %d", resp.StatusCode)
	}

	var m manifest
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxManifestSize)).Decode(&m); err != nil {
		return nil, fmt.Errorf("failed to decode manifest: %w", err)
	}
	return &m, nil
}

// selectResources filters the manifest down to the English CSV
// resources that carry catalog data. The "Original" resource duplicates
// the untranslated source data and is skipped.
func selectResources(m *manifest) []resource {
	var selected []resource
	for _, r := range m.Result.Resources {
		if r.URL == "" {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(r.Name), "Original") {
			continue
		}
		if !strings.EqualFold(strings.TrimSpace(r.Language), "english") {
			continue
		}
		if r.Format != "" && !strings.EqualFold(r.Format, "csv") {
			continue
		}
		selected = append(selected, r)
	}
	return selected
}

func closeQuietly(c io.Closer) {
	_ = c.Close()
}
