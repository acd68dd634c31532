// Bookgraph - Knowledge Graph Book Recommendations
// Copyright 2026 Readmill Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/readmill/bookgraph

package recommend

import (
	"context"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/readmill/bookgraph/internal/graph"
	"github.com/readmill/bookgraph/internal/logging"
)

// WeightedRecommender scores books against a target book by genre-graph
// proximity, shared authors and a shared publisher, plus a bounded
// random jitter to vary ties between runs.
type WeightedRecommender struct {
	cfg    Config
	finder *PathFinder

	mu  sync.Mutex
	rng *rand.Rand
}

// NewWeightedRecommender builds a recommender from cfg. A zero Seed
// selects a time-based seed; set Seed for reproducible rankings.
func NewWeightedRecommender(cfg Config) *WeightedRecommender {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &WeightedRecommender{
		cfg:    cfg,
		finder: NewPathFinder(cfg.MaxDepth),
		rng:    rand.New(rand.NewSource(seed)),
	}
}

// jitter draws a uniform value in [0, bound). A zero bound disables
// jitter entirely.
func (r *WeightedRecommender) jitter(bound float64) float64 {
	if bound <= 0 {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Float64() * bound
}

// Recommend scores every other book in the graph against targetBook and
// returns the topN highest-scoring ones. A non-positive topN uses the
// configured default; a negative randomness uses the configured jitter
// bound. Books not connected to the target through the genre graph are
// excluded, so a target absent from the graph yields an empty list
// rather than an error.
func (r *WeightedRecommender) Recommend(ctx context.Context, g *graph.Store, targetBook string, topN int, randomness float64) ([]Recommendation, error) {
	if topN <= 0 {
		topN = r.cfg.TopN
	}
	if randomness < 0 {
		randomness = r.cfg.Randomness
	}

	adj := buildGenreAdjacency(g)
	targetAuthors := iriSet(g.Objects(targetBook, graph.HasAuthor))
	targetPublisher, hasPublisher := g.Value(targetBook, graph.HasPublisher)

	var recs []Recommendation
	for _, candidate := range g.SubjectsOfType(graph.ClassBook) {
		if candidate == targetBook {
			continue
		}
		if contextCancelled(ctx) {
			return nil, ctx.Err()
		}
		dist, path := r.finder.searchAdjacency(adj, targetBook, candidate)
		if dist == NotConnected {
			continue
		}
		rec := Recommendation{
			Book:     candidate,
			Label:    resolveLabel(g, candidate),
			Distance: dist,
			Path:     path,
		}
		score := 1.0 / float64(dist+1)
		if intersects(targetAuthors, g.Objects(candidate, graph.HasAuthor)) {
			score += r.cfg.AuthorWeight
			rec.AuthorMatch = true
		}
		if hasPublisher {
			if pub, ok := g.Value(candidate, graph.HasPublisher); ok && pub.Value == targetPublisher.Value {
				score += r.cfg.PublisherWeight
				rec.PublisherMatch = true
			}
		}
		score += r.jitter(randomness)
		rec.Score = roundScore(score)
		recs = append(recs, rec)
	}

	sort.SliceStable(recs, func(i, j int) bool {
		if recs[i].Score != recs[j].Score {
			return recs[i].Score > recs[j].Score
		}
		return recs[i].Book < recs[j].Book
	})
	if len(recs) > topN {
		recs = recs[:topN]
	}
	logging.Debug().
		Str("target", targetBook).
		Int("returned", len(recs)).
		Msg("Weighted recommendations computed")
	return recs, nil
}

// iriSet collects the IRI values of terms into a set.
func iriSet(terms []graph.Term) map[string]bool {
	set := make(map[string]bool, len(terms))
	for _, t := range terms {
		if t.Kind == graph.KindIRI {
			set[t.Value] = true
		}
	}
	return set
}

// intersects reports whether any term's IRI value is in set.
func intersects(set map[string]bool, terms []graph.Term) bool {
	for _, t := range terms {
		if t.Kind == graph.KindIRI && set[t.Value] {
			return true
		}
	}
	return false
}
