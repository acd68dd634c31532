// Bookgraph - Knowledge Graph Book Recommendations
// Copyright 2026 Readmill Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/readmill/bookgraph

// Command server runs the Bookgraph recommendation service.
//
// Bookgraph keeps a catalog of books, genres, authors, publishers, and
// readers in an in-memory triple store and serves recommendations over a
// JSON HTTP API. Two engines are exposed: a weighted content engine that
// scores books by semantic distance through the genre hierarchy, and a
// collaborative engine that aggregates the likes of readers with
// overlapping taste.
//
// Startup order:
//
//  1. Load configuration (defaults, optional YAML file, environment).
//  2. Open the Badger snapshot store and restore the graph; fall back to
//     the seed file when the snapshot is empty.
//  3. Optionally import triples from a remote SPARQL endpoint.
//  4. Optionally open the DuckDB analytics store.
//  5. Start the supervisor tree: snapshot writer and analytics consumer
//     on the data layer, the HTTP server on the API layer.
//
// The process shuts down on SIGINT or SIGTERM, writing a final graph
// snapshot when there are unsaved likes.
//
// Example:
//
//	GRAPH_SEED_PATH=/data/seed.json HTTP_PORT=8480 ./server
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/readmill/bookgraph/internal/analytics"
	"github.com/readmill/bookgraph/internal/api"
	"github.com/readmill/bookgraph/internal/config"
	"github.com/readmill/bookgraph/internal/eventbus"
	"github.com/readmill/bookgraph/internal/graph"
	"github.com/readmill/bookgraph/internal/importer"
	"github.com/readmill/bookgraph/internal/logging"
	"github.com/readmill/bookgraph/internal/metrics"
	"github.com/readmill/bookgraph/internal/recommend"
	"github.com/readmill/bookgraph/internal/supervisor"
	"github.com/readmill/bookgraph/internal/supervisor/services"
	"github.com/readmill/bookgraph/internal/users"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// Config errors are logged with the default logger since the
		// configured one is not available yet.
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})

	logging.Info().
		Str("addr", fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)).
		Str("snapshot_path", cfg.Graph.SnapshotPath).
		Bool("importer", cfg.Importer.Enabled).
		Bool("analytics", cfg.Analytics.Enabled).
		Msg("Starting Bookgraph")

	db, err := badger.Open(badger.DefaultOptions(cfg.Graph.SnapshotPath).WithLogger(nil))
	if err != nil {
		logging.Fatal().Err(err).Str("path", cfg.Graph.SnapshotPath).Msg("Failed to open snapshot store")
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing snapshot store")
		}
	}()

	g := graph.New()
	restored, err := g.LoadSnapshot(db)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to restore graph snapshot")
	}
	if restored > 0 {
		logging.Info().Int("triples", restored).Msg("Graph restored from snapshot")
	} else if cfg.Graph.SeedPath != "" {
		seeded, err := g.LoadSeed(cfg.Graph.SeedPath)
		if err != nil {
			logging.Fatal().Err(err).Str("path", cfg.Graph.SeedPath).Msg("Failed to load seed file")
		}
		logging.Info().Int("triples", seeded).Str("path", cfg.Graph.SeedPath).Msg("Graph seeded from file")
	} else {
		logging.Warn().Msg("Starting with an empty graph (no snapshot, no seed file)")
	}
	metrics.GraphTriples.Set(float64(g.Len()))

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if cfg.Importer.Enabled {
		imp := importer.New(cfg.Importer)
		added, err := imp.ImportAll(ctx, g)
		if err != nil {
			// Import failure is not fatal: the graph already holds the
			// snapshot or seed data.
			logging.Error().Err(err).Msg("SPARQL import failed")
		} else {
			logging.Info().Int("triples", added).Str("endpoint", cfg.Importer.Endpoint).Msg("SPARQL import complete")
		}
		metrics.GraphTriples.Set(float64(g.Len()))
	}

	bus := eventbus.New(cfg.Events.BufferSize, nil)
	defer func() {
		if err := bus.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing event bus")
		}
	}()

	var store *analytics.Store
	if cfg.Analytics.Enabled {
		store, err = analytics.Open(cfg.Analytics.Path)
		if err != nil {
			logging.Fatal().Err(err).Str("path", cfg.Analytics.Path).Msg("Failed to open analytics store")
		}
		defer func() {
			if err := store.Close(); err != nil {
				logging.Error().Err(err).Msg("Error closing analytics store")
			}
		}()
		logging.Info().Str("path", cfg.Analytics.Path).Msg("Analytics store opened")
	} else {
		logging.Info().Msg("Analytics disabled")
	}

	userService := users.NewService(g, bus)
	weighted := recommend.NewWeightedRecommender(cfg.Recommend)
	collab := recommend.NewCollaborativeRecommender(cfg.Recommend)

	handler := api.NewHandler(g, weighted, collab, userService, store)
	router := api.NewRouter(handler, cfg.Server)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.Routes(),
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
		IdleTimeout:  60 * time.Second,
	}

	tree := supervisor.NewTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())

	tree.AddDataService(services.NewSnapshotService(g, db, bus, cfg.Graph.SnapshotInterval))
	if store != nil {
		tree.AddDataService(services.NewAnalyticsService(store, bus))
	}
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Shutdown signal received, waiting for supervisor to finish...")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	logging.Info().Msg("Bookgraph stopped gracefully")
}
