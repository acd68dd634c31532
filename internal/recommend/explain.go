// Bookgraph - Knowledge Graph Book Recommendations
// Copyright 2026 Readmill Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/readmill/bookgraph

package recommend

import (
	"fmt"
	"strings"

	"github.com/readmill/bookgraph/internal/graph"
)

// ExplainRecommendations renders a human-readable breakdown of a
// recommendation list: per book, the genre-graph path (as labels) and
// which bonuses applied.
func (r *WeightedRecommender) ExplainRecommendations(g *graph.Store, targetBook string, recs []Recommendation) string {
	var b strings.Builder
	fmt.Fprintf(&b, "--- Explanation for: %s ---\n", resolveLabel(g, targetBook))
	for _, rec := range recs {
		fmt.Fprintf(&b, "RECOMMENDED: %s (score %.3f)\n", rec.Label, rec.Score)
		fmt.Fprintf(&b, "  - Genre: distance %d, semantic path: %s\n", rec.Distance, labelPath(g, rec.Path))
		if rec.AuthorMatch {
			fmt.Fprintf(&b, "  - Author bonus: shared author (+%.1f)\n", r.cfg.AuthorWeight)
		}
		if rec.PublisherMatch {
			fmt.Fprintf(&b, "  - Publisher bonus: same publisher (+%.1f)\n", r.cfg.PublisherWeight)
		}
	}
	return b.String()
}

// labelPath renders an IRI path as " -> " joined labels.
func labelPath(g *graph.Store, path []string) string {
	labels := make([]string, len(path))
	for i, node := range path {
		labels[i] = resolveLabel(g, node)
	}
	return strings.Join(labels, " -> ")
}
