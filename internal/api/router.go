// Bookgraph - Knowledge Graph Book Recommendations
// Copyright 2026 Readmill Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/readmill/bookgraph

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/readmill/bookgraph/internal/config"
)

// Router builds the HTTP handler tree.
type Router struct {
	handler *Handler
	cfg     config.ServerConfig
}

// NewRouter creates a router around the endpoint handlers.
func NewRouter(handler *Handler, cfg config.ServerConfig) *Router {
	return &Router{handler: handler, cfg: cfg}
}

// Routes assembles the middleware stack and route table.
func (rt *Router) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(RequestIDWithLogging())
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(CORSMiddleware(rt.cfg.CORSOrigins))

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(RateLimitMiddleware(rt.cfg.RateLimitReqs, rt.cfg.RateLimitWindow))
		r.Use(PrometheusMetrics)

		r.Get("/health", rt.handler.Health)

		r.Route("/books", func(r chi.Router) {
			r.Get("/", rt.handler.Books)
			r.Get("/{bookID}", rt.handler.Book)
			r.Get("/{bookID}/similar", rt.handler.SimilarBooks)
			r.Get("/{bookID}/similar/explain", rt.handler.ExplainSimilarBooks)
		})

		r.Route("/users", func(r chi.Router) {
			r.Post("/", rt.handler.UpsertUser)
			r.Get("/{userID}/recommendations", rt.handler.UserRecommendations)
		})

		r.Get("/analytics/top-recommended", rt.handler.TopRecommended)
	})

	r.Handle("/metrics", promhttp.Handler())

	return r
}
