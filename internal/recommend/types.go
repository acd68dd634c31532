// Bookgraph - Knowledge Graph Book Recommendations
// Copyright 2026 Readmill Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/readmill/bookgraph

package recommend

import (
	"context"
	"math"

	"github.com/readmill/bookgraph/internal/graph"
)

// Recommendation is a single item-to-item recommendation with the
// evidence that produced its score.
type Recommendation struct {
	// Book is the recommended book IRI.
	Book string `json:"book"`

	// Label is the book's display label, falling back to the IRI local
	// name when the graph carries no rdfs:label.
	Label string `json:"label"`

	// Score is the final weighted score, rounded to three decimals.
	Score float64 `json:"score"`

	// Distance is the genre-graph hop distance from the target book.
	Distance int `json:"distance"`

	// Path is the IRI path through the genre graph, from the target
	// book to this book inclusive.
	Path []string `json:"path"`

	// AuthorMatch reports whether the author bonus applied.
	AuthorMatch bool `json:"author_match"`

	// PublisherMatch reports whether the publisher bonus applied.
	PublisherMatch bool `json:"publisher_match"`
}

// ScoredBook is a collaborative recommendation: a book IRI with its
// accumulated similarity mass.
type ScoredBook struct {
	Book  string  `json:"book"`
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// roundScore rounds to three decimal places, the precision all scores
// are reported at.
func roundScore(x float64) float64 {
	return math.Round(x*1000) / 1000
}

// resolveLabel returns the rdfs:label for a subject, or the IRI local
// name when the graph has none.
func resolveLabel(g *graph.Store, subject string) string {
	if v, ok := g.Value(subject, graph.RDFSLabel); ok {
		return v.Value
	}
	return graph.LocalName(subject)
}

// contextCancelled reports whether ctx is done, without blocking.
func contextCancelled(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return true
	default:
		return false
	}
}
