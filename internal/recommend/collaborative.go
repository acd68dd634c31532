// Bookgraph - Knowledge Graph Book Recommendations
// Copyright 2026 Readmill Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/readmill/bookgraph

package recommend

import (
	"context"
	"sort"

	"github.com/readmill/bookgraph/internal/graph"
	"github.com/readmill/bookgraph/internal/logging"
)

// UserSimilarity returns the overlap between two users' liked-book
// sets, normalized by the smaller set:
//
//	|A ∩ B| / min(|A|, |B|)
//
// It is 0 when either user has no likes, and rounded to three
// decimals. The min-denominator (rather than the union) means a user
// whose likes are a subset of another's scores 1.0.
func UserSimilarity(g *graph.Store, userA, userB string) float64 {
	likesA := iriSet(g.Objects(userA, graph.Likes))
	likesB := iriSet(g.Objects(userB, graph.Likes))
	if len(likesA) == 0 || len(likesB) == 0 {
		return 0
	}
	overlap := 0
	for book := range likesA {
		if likesB[book] {
			overlap++
		}
	}
	denom := len(likesA)
	if len(likesB) < denom {
		denom = len(likesB)
	}
	return roundScore(float64(overlap) / float64(denom))
}

// CollaborativeRecommender recommends books by accumulating, over all
// sufficiently similar users, each user's similarity onto the books
// they liked that the target user has not.
type CollaborativeRecommender struct {
	cfg Config
}

// NewCollaborativeRecommender builds a recommender from cfg.
func NewCollaborativeRecommender(cfg Config) *CollaborativeRecommender {
	return &CollaborativeRecommender{cfg: cfg}
}

// Recommend returns up to topN books for targetUser, scored by summed
// similarity of the users who liked them. Only users with similarity
// strictly above the configured threshold contribute. A non-positive
// topN uses the configured default. A target absent from the graph has
// no likes, so every similarity is zero and the result is an empty list.
func (r *CollaborativeRecommender) Recommend(ctx context.Context, g *graph.Store, targetUser string, topN int) ([]ScoredBook, error) {
	if topN <= 0 {
		topN = r.cfg.TopN
	}

	targetLikes := iriSet(g.Objects(targetUser, graph.Likes))

	type contributor struct {
		user string
		sim  float64
	}
	var contributors []contributor
	for _, other := range g.SubjectsOfType(graph.ClassUser) {
		if other == targetUser {
			continue
		}
		if contextCancelled(ctx) {
			return nil, ctx.Err()
		}
		sim := UserSimilarity(g, targetUser, other)
		if sim > r.cfg.SimilarityThreshold {
			contributors = append(contributors, contributor{user: other, sim: sim})
		}
	}
	// Accumulation order does not change the sums, but processing the
	// strongest contributors first keeps logs and traces readable.
	sort.SliceStable(contributors, func(i, j int) bool {
		if contributors[i].sim != contributors[j].sim {
			return contributors[i].sim > contributors[j].sim
		}
		return contributors[i].user < contributors[j].user
	})

	scores := make(map[string]float64)
	for _, c := range contributors {
		for _, liked := range g.Objects(c.user, graph.Likes) {
			if liked.Kind != graph.KindIRI || targetLikes[liked.Value] {
				continue
			}
			scores[liked.Value] += c.sim
		}
	}

	ranked := make([]ScoredBook, 0, len(scores))
	for book, score := range scores {
		ranked = append(ranked, ScoredBook{
			Book:  book,
			Label: resolveLabel(g, book),
			Score: roundScore(score),
		})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].Book < ranked[j].Book
	})
	if len(ranked) > topN {
		ranked = ranked[:topN]
	}
	logging.Debug().
		Str("user", targetUser).
		Int("contributors", len(contributors)).
		Int("returned", len(ranked)).
		Msg("Collaborative recommendations computed")
	return ranked, nil
}
