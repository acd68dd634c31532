// Bookgraph - Knowledge Graph Book Recommendations
// Copyright 2026 Readmill Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/readmill/bookgraph

package recommend

import "fmt"

// Default scoring parameters.
const (
	// DefaultAuthorWeight is the bonus for a shared author.
	DefaultAuthorWeight = 0.5

	// DefaultPublisherWeight is the bonus for a shared publisher.
	DefaultPublisherWeight = 0.2

	// DefaultRandomness bounds the uniform jitter added to each score.
	DefaultRandomness = 0.1

	// DefaultTopN is the number of recommendations returned.
	DefaultTopN = 5

	// DefaultMaxDepth bounds the genre-graph breadth-first search.
	DefaultMaxDepth = 10

	// DefaultSimilarityThreshold is the minimum user similarity
	// (exclusive) for a user to contribute to collaborative scores.
	DefaultSimilarityThreshold = 0.2
)

// Config holds engine configuration.
type Config struct {
	// AuthorWeight is the additive bonus when author sets intersect.
	AuthorWeight float64 `koanf:"author_weight" json:"author_weight"`

	// PublisherWeight is the additive bonus when publishers match.
	PublisherWeight float64 `koanf:"publisher_weight" json:"publisher_weight"`

	// Randomness bounds the uniform jitter in [0, Randomness).
	Randomness float64 `koanf:"randomness" json:"randomness"`

	// TopN is the default number of recommendations per request.
	TopN int `koanf:"top_n" json:"top_n"`

	// MaxDepth bounds the semantic-distance search; nodes at this hop
	// depth are not expanded further.
	MaxDepth int `koanf:"max_depth" json:"max_depth"`

	// SimilarityThreshold filters collaborative contributors; only users
	// with similarity strictly greater than this value count.
	SimilarityThreshold float64 `koanf:"similarity_threshold" json:"similarity_threshold"`

	// Seed seeds the jitter source. Zero selects a time-based seed,
	// making rankings vary across runs; tests set a fixed seed.
	Seed int64 `koanf:"seed" json:"seed"`
}

// DefaultConfig returns the default engine configuration.
func DefaultConfig() Config {
	return Config{
		AuthorWeight:        DefaultAuthorWeight,
		PublisherWeight:     DefaultPublisherWeight,
		Randomness:          DefaultRandomness,
		TopN:                DefaultTopN,
		MaxDepth:            DefaultMaxDepth,
		SimilarityThreshold: DefaultSimilarityThreshold,
	}
}

// Validate checks configuration invariants.
func (c Config) Validate() error {
	if c.AuthorWeight < 0 {
		return fmt.Errorf("author_weight must be non-negative, got %v", c.AuthorWeight)
	}
	if c.PublisherWeight < 0 {
		return fmt.Errorf("publisher_weight must be non-negative, got %v", c.PublisherWeight)
	}
	if c.Randomness < 0 {
		return fmt.Errorf("randomness must be non-negative, got %v", c.Randomness)
	}
	if c.TopN <= 0 {
		return fmt.Errorf("top_n must be positive, got %d", c.TopN)
	}
	if c.MaxDepth <= 0 {
		return fmt.Errorf("max_depth must be positive, got %d", c.MaxDepth)
	}
	if c.SimilarityThreshold < 0 || c.SimilarityThreshold >= 1 {
		return fmt.Errorf("similarity_threshold must be in [0, 1), got %v", c.SimilarityThreshold)
	}
	return nil
}
