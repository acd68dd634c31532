// Bookgraph - Knowledge Graph Book Recommendations
// Copyright 2026 Readmill Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/readmill/bookgraph

package importer

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/readmill/bookgraph/internal/config"
	"github.com/readmill/bookgraph/internal/graph"
	"github.com/readmill/bookgraph/internal/logging"
	"github.com/readmill/bookgraph/internal/metrics"
)

// ErrEndpointUnavailable wraps circuit breaker rejections so callers
// can distinguish them from query failures.
var ErrEndpointUnavailable = errors.New("sparql endpoint unavailable")

// Importer pages triples out of a SPARQL endpoint into the graph.
type Importer struct {
	cfg     config.ImporterConfig
	client  *http.Client
	breaker *gobreaker.CircuitBreaker[*resultSet]
	limiter *rate.Limiter
}

// New creates an importer for the configured endpoint.
func New(cfg config.ImporterConfig) *Importer {
	cb := gobreaker.NewCircuitBreaker[*resultSet](gobreaker.Settings{
		Name:        "sparql-endpoint",
		MaxRequests: 2,
		Interval:    time.Minute,
		Timeout:     2 * time.Minute,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 5 {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= 0.6
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Info().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("Circuit breaker state transition")
		},
	})
	return &Importer{
		cfg:     cfg,
		client:  &http.Client{Timeout: cfg.Timeout},
		breaker: cb,
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1),
	}
}

// Query runs one SPARQL SELECT through the rate limiter and breaker.
func (im *Importer) Query(ctx context.Context, query string) (*resultSet, error) {
	if err := im.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}
	rs, err := im.breaker.Execute(func() (*resultSet, error) {
		return doQuery(ctx, im.client, im.cfg.Endpoint, query)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.ImporterQueries.WithLabelValues("rejected").Inc()
			return nil, fmt.Errorf("%w: %s", ErrEndpointUnavailable, err)
		}
		metrics.ImporterQueries.WithLabelValues("error").Inc()
		return nil, err
	}
	metrics.ImporterQueries.WithLabelValues("ok").Inc()
	return rs, nil
}

// ImportAll pages every triple from the endpoint into g, returning the
// number of triples added. Paging stops at the first short page.
func (im *Importer) ImportAll(ctx context.Context, g *graph.Store) (int, error) {
	pageSize := im.cfg.PageSize
	if pageSize <= 0 {
		pageSize = 500
	}

	added := 0
	for offset := 0; ; offset += pageSize {
		query := fmt.Sprintf(
			"SELECT ?s ?p ?o WHERE { ?s ?p ?o } ORDER BY ?s ?p LIMIT %d OFFSET %d",
			pageSize, offset)
		rs, err := im.Query(ctx, query)
		if err != nil {
			return added, fmt.Errorf("import page at offset %d: %w", offset, err)
		}
		triples := rs.triples()
		n := g.AddAll(triples)
		added += n
		metrics.ImporterTriplesAdded.Add(float64(n))

		if len(rs.Results.Bindings) < pageSize {
			break
		}
	}
	logging.Info().Int("triples_added", added).Msg("SPARQL import complete")
	return added, nil
}
