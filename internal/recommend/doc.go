// Bookgraph - Knowledge Graph Book Recommendations
// Copyright 2026 Readmill Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/readmill/bookgraph

// Package recommend implements the two recommendation strategies over the
// knowledge graph.
//
// # Item-to-Item (weighted)
//
// For a target book, every other book in the catalog is scored as
//
//	score = 1/(hopDistance+1) + authorBonus + publisherBonus + jitter
//
// where hopDistance is the shortest undirected path through the genre
// membership and genre subclass edges (semantic.go), authorBonus (0.5)
// applies when the author sets intersect, publisherBonus (0.2) when both
// books name the same publisher, and jitter is a bounded uniform random
// term that diversifies repeated calls. Books with no path to the target
// carry no signal and are excluded. Scores are rounded to three decimals.
//
// # Collaborative
//
// For a target user, other users are ranked by a min-normalized overlap of
// liked-book sets: |intersection| / min(|A|, |B|). This deliberately
// differs from classical Jaccard (union-normalized): it rewards strong
// overlap with a sparse user's preferences. Users above a threshold
// contribute their similarity value to every liked book the target does
// not already like; books are ranked by the accumulated sum.
//
// # Determinism
//
// The random source is injectable and seedable. Equal scores are broken by
// candidate IRI lexicographic order so that repeated runs with a fixed
// seed produce identical output.
package recommend
