// Bookgraph - Knowledge Graph Book Recommendations
// Copyright 2026 Readmill Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/readmill/bookgraph

package analytics

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"

	"github.com/readmill/bookgraph/internal/logging"
	"github.com/readmill/bookgraph/internal/metrics"
)

// Impression is one recommendation item served to a client.
type Impression struct {
	Strategy string  // "weighted" or "collaborative"
	Target   string  // book or user IRI the recommendation was for
	Book     string  // recommended book IRI
	Score    float64 // reported score
}

// TopBook is an aggregate row: a book and how often it was recommended.
type TopBook struct {
	Book  string `json:"book"`
	Count int64  `json:"count"`
}

// Store is the DuckDB-backed feedback store.
type Store struct {
	conn *sql.DB
	now  func() time.Time
}

const schema = `
CREATE TABLE IF NOT EXISTS impressions (
    ts       TIMESTAMP NOT NULL,
    strategy VARCHAR NOT NULL,
    target   VARCHAR NOT NULL,
    book     VARCHAR NOT NULL,
    score    DOUBLE NOT NULL
);
CREATE TABLE IF NOT EXISTS likes (
    ts       TIMESTAMP NOT NULL,
    user_key VARCHAR NOT NULL,
    book     VARCHAR NOT NULL
);
`

// Open opens (or creates) the analytics database and initializes the
// schema. An empty path opens an in-memory database.
func Open(path string) (*Store, error) {
	if path != "" {
		dir := filepath.Dir(path)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0o750); err != nil {
				return nil, fmt.Errorf("failed to create analytics directory %s: %w", dir, err)
			}
		}
	}
	conn, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open analytics database: %w", err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to connect to analytics database: %w", err)
	}
	if _, err := conn.Exec(schema); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to initialize analytics schema: %w", err)
	}
	logging.Info().Str("path", path).Msg("Analytics store opened")
	return &Store{conn: conn, now: time.Now}, nil
}

// RecordImpressions inserts one row per recommendation served.
func (s *Store) RecordImpressions(ctx context.Context, imps []Impression) error {
	if len(imps) == 0 {
		return nil
	}
	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin impressions transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO impressions (ts, strategy, target, book, score) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare impressions insert: %w", err)
	}
	defer stmt.Close()

	ts := s.now().UTC()
	for _, imp := range imps {
		if _, err := stmt.ExecContext(ctx, ts, imp.Strategy, imp.Target, imp.Book, imp.Score); err != nil {
			metrics.AnalyticsWriteErrors.WithLabelValues("impressions").Inc()
			return fmt.Errorf("failed to insert impression: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		metrics.AnalyticsWriteErrors.WithLabelValues("impressions").Inc()
		return fmt.Errorf("failed to commit impressions: %w", err)
	}
	metrics.AnalyticsWrites.WithLabelValues("impressions").Add(float64(len(imps)))
	return nil
}

// RecordLike inserts one like row.
func (s *Store) RecordLike(ctx context.Context, userKey, book string, at time.Time) error {
	if _, err := s.conn.ExecContext(ctx,
		`INSERT INTO likes (ts, user_key, book) VALUES (?, ?, ?)`,
		at.UTC(), userKey, book); err != nil {
		metrics.AnalyticsWriteErrors.WithLabelValues("likes").Inc()
		return fmt.Errorf("failed to insert like: %w", err)
	}
	metrics.AnalyticsWrites.WithLabelValues("likes").Inc()
	return nil
}

// TopRecommended returns the most frequently recommended books, most
// recommended first, count then book key as tie-break.
func (s *Store) TopRecommended(ctx context.Context, limit int) ([]TopBook, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.conn.QueryContext(ctx,
		`SELECT book, COUNT(*) AS n
		 FROM impressions
		 GROUP BY book
		 ORDER BY n DESC, book ASC
		 LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query top recommended: %w", err)
	}
	defer rows.Close()

	var out []TopBook
	for rows.Next() {
		var tb TopBook
		if err := rows.Scan(&tb.Book, &tb.Count); err != nil {
			return nil, fmt.Errorf("failed to scan top recommended row: %w", err)
		}
		out = append(out, tb)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate top recommended rows: %w", err)
	}
	return out, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.conn.Close()
}
