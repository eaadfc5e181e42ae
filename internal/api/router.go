// Cinemate - Movie Recommendation API and Catalog Tooling
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemate

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/tomtom215/cinemate/internal/middleware"
)

// NewRouter wires the HTTP routes and middleware chain.
func (h *Handler) NewRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Prometheus)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   h.cfg.API.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	if h.cfg.API.RateLimitReqs > 0 {
		r.Use(httprate.LimitByIP(h.cfg.API.RateLimitReqs, h.cfg.API.RateLimitWindow))
	}

	r.Get("/", h.Welcome)

	// Both spellings are accepted so clients need not care about the
	// trailing slash.
	r.Post("/recommendations", h.Recommend)
	r.Post("/recommendations/", h.Recommend)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", h.Health)

		r.Route("/movies", func(r chi.Router) {
			r.Get("/", h.ListMovies)
			r.Get("/lookup", h.GetMovie)
			r.Get("/similar", h.Similar)
		})

		r.Get("/recommendations/status", h.RecommendStatus)

		r.Route("/admin", func(r chi.Router) {
			r.Post("/train", h.Train)
			r.Post("/ingest", h.RunIngest)
			r.Get("/ingest/status", h.IngestStatus)
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	return r
}
