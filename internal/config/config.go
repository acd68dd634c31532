// Bookgraph - Knowledge Graph Book Recommendations
// Copyright 2026 Readmill Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/readmill/bookgraph

package config

import (
	"fmt"
	"time"

	"github.com/readmill/bookgraph/internal/recommend"
)

// Config is the root Bookgraph configuration.
type Config struct {
	Server    ServerConfig     `koanf:"server"`
	Logging   LoggingConfig    `koanf:"logging"`
	Graph     GraphConfig      `koanf:"graph"`
	Recommend recommend.Config `koanf:"recommend"`
	Importer  ImporterConfig   `koanf:"importer"`
	Analytics AnalyticsConfig  `koanf:"analytics"`
	Events    EventsConfig     `koanf:"events"`
}

// ServerConfig configures the HTTP API server.
type ServerConfig struct {
	Host    string        `koanf:"host"`
	Port    int           `koanf:"port"`
	Timeout time.Duration `koanf:"timeout"`

	// RateLimitReqs requests per RateLimitWindow per client IP. Zero
	// disables rate limiting.
	RateLimitReqs   int           `koanf:"rate_limit_reqs"`
	RateLimitWindow time.Duration `koanf:"rate_limit_window"`

	// CORSOrigins lists allowed CORS origins.
	CORSOrigins []string `koanf:"cors_origins"`
}

// LoggingConfig configures structured logging.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// GraphConfig configures the triple store and its persistence.
type GraphConfig struct {
	// SnapshotPath is the Badger directory for graph snapshots. Empty
	// disables persistence; the graph then lives only in memory.
	SnapshotPath string `koanf:"snapshot_path"`

	// SeedPath is an optional JSON seed file loaded on startup when the
	// snapshot is empty.
	SeedPath string `koanf:"seed_path"`

	// SnapshotInterval is how often the supervisor persists the graph.
	SnapshotInterval time.Duration `koanf:"snapshot_interval"`
}

// ImporterConfig configures the SPARQL endpoint importer.
type ImporterConfig struct {
	Enabled bool `koanf:"enabled"`

	// Endpoint is the SPARQL query endpoint URL.
	Endpoint string `koanf:"endpoint"`

	Timeout time.Duration `koanf:"timeout"`

	// RequestsPerSecond caps outbound query rate.
	RequestsPerSecond float64 `koanf:"requests_per_second"`

	// PageSize is the LIMIT used when paging entity queries.
	PageSize int `koanf:"page_size"`
}

// AnalyticsConfig configures the DuckDB analytics store.
type AnalyticsConfig struct {
	Enabled bool `koanf:"enabled"`

	// Path is the DuckDB database file. Empty means in-memory.
	Path string `koanf:"path"`
}

// EventsConfig configures the in-process event bus.
type EventsConfig struct {
	// BufferSize is the per-subscriber channel buffer.
	BufferSize int `koanf:"buffer_size"`
}

// Default returns the built-in configuration defaults.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8480,
			Timeout:         30 * time.Second,
			RateLimitReqs:   100,
			RateLimitWindow: time.Minute,
			CORSOrigins:     []string{"*"},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Graph: GraphConfig{
			SnapshotPath:     "/data/bookgraph/graph",
			SeedPath:         "",
			SnapshotInterval: 5 * time.Minute,
		},
		Recommend: recommend.DefaultConfig(),
		Importer: ImporterConfig{
			Enabled:           false,
			Endpoint:          "",
			Timeout:           30 * time.Second,
			RequestsPerSecond: 2,
			PageSize:          500,
		},
		Analytics: AnalyticsConfig{
			Enabled: true,
			Path:    "/data/bookgraph/analytics.duckdb",
		},
		Events: EventsConfig{
			BufferSize: 256,
		},
	}
}

// Validate checks cross-field configuration invariants.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in [1, 65535], got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("server.timeout must be positive, got %v", c.Server.Timeout)
	}
	if c.Importer.Enabled && c.Importer.Endpoint == "" {
		return fmt.Errorf("importer.endpoint is required when the importer is enabled")
	}
	if c.Importer.Enabled && c.Importer.RequestsPerSecond <= 0 {
		return fmt.Errorf("importer.requests_per_second must be positive, got %v", c.Importer.RequestsPerSecond)
	}
	if c.Graph.SnapshotInterval <= 0 {
		return fmt.Errorf("graph.snapshot_interval must be positive, got %v", c.Graph.SnapshotInterval)
	}
	if c.Events.BufferSize <= 0 {
		return fmt.Errorf("events.buffer_size must be positive, got %d", c.Events.BufferSize)
	}
	if err := c.Recommend.Validate(); err != nil {
		return fmt.Errorf("recommend: %w", err)
	}
	return nil
}
