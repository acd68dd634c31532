// Bookgraph - Knowledge Graph Book Recommendations
// Copyright 2026 Readmill Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/readmill/bookgraph

package recommend

import (
	"context"
	"testing"

	"github.com/readmill/bookgraph/internal/graph"
)

// testConfig returns a deterministic configuration: fixed seed, no
// jitter unless a test asks for it.
func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Seed = 1
	cfg.Randomness = 0
	return cfg
}

func findRec(recs []Recommendation, book string) (Recommendation, bool) {
	for _, r := range recs {
		if r.Book == book {
			return r, true
		}
	}
	return Recommendation{}, false
}

func TestWeightedRecommender_GenreScores(t *testing.T) {
	// b2 shares a genre with b1 (distance 2 -> 1/3), b3 sits one
	// subgenre further (distance 3 -> 1/4).
	g := graph.New()
	addBook(t, g, "b1", "One", "g1")
	addBook(t, g, "b2", "Two", "g1")
	addBook(t, g, "b3", "Three", "g2")
	addSubGenre(t, g, "g2", "g1")

	recs, err := NewWeightedRecommender(testConfig()).Recommend(context.Background(), g, "b1", 10, 0)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("got %d recommendations, want 2", len(recs))
	}
	if r, _ := findRec(recs, "b2"); r.Score != 0.333 {
		t.Errorf("b2 score = %v, want 0.333", r.Score)
	}
	if r, _ := findRec(recs, "b3"); r.Score != 0.25 {
		t.Errorf("b3 score = %v, want 0.25", r.Score)
	}
	if recs[0].Book != "b2" {
		t.Errorf("first recommendation = %s, want b2", recs[0].Book)
	}
}

func TestWeightedRecommender_Bonuses(t *testing.T) {
	g := graph.New()
	addBook(t, g, "b1", "One", "g1")
	addBook(t, g, "b2", "Two", "g1")
	addBook(t, g, "b3", "Three", "g1")
	g.Add("b1", graph.HasAuthor, graph.IRI("a1"))
	g.Add("b2", graph.HasAuthor, graph.IRI("a1"))
	g.Add("b2", graph.HasAuthor, graph.IRI("a2"))
	g.Add("b1", graph.HasPublisher, graph.IRI("p1"))
	g.Add("b3", graph.HasPublisher, graph.IRI("p1"))

	recs, err := NewWeightedRecommender(testConfig()).Recommend(context.Background(), g, "b1", 10, 0)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}

	// b2: 1/3 genre + 0.5 shared author = 0.833
	r2, ok := findRec(recs, "b2")
	if !ok {
		t.Fatal("b2 missing from recommendations")
	}
	if !r2.AuthorMatch || r2.PublisherMatch {
		t.Errorf("b2 matches = (author %v, publisher %v), want (true, false)", r2.AuthorMatch, r2.PublisherMatch)
	}
	if r2.Score != 0.833 {
		t.Errorf("b2 score = %v, want 0.833", r2.Score)
	}

	// b3: 1/3 genre + 0.2 same publisher = 0.533
	r3, ok := findRec(recs, "b3")
	if !ok {
		t.Fatal("b3 missing from recommendations")
	}
	if r3.AuthorMatch || !r3.PublisherMatch {
		t.Errorf("b3 matches = (author %v, publisher %v), want (false, true)", r3.AuthorMatch, r3.PublisherMatch)
	}
	if r3.Score != 0.533 {
		t.Errorf("b3 score = %v, want 0.533", r3.Score)
	}
}

func TestWeightedRecommender_ExcludesTargetAndDisconnected(t *testing.T) {
	g := graph.New()
	addBook(t, g, "b1", "One", "g1")
	addBook(t, g, "b2", "Two", "g1")
	addBook(t, g, "b3", "Three", "g9") // unreachable island

	recs, err := NewWeightedRecommender(testConfig()).Recommend(context.Background(), g, "b1", 10, 0)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if len(recs) != 1 || recs[0].Book != "b2" {
		t.Errorf("recommendations = %v, want only b2", recs)
	}
}

func TestWeightedRecommender_TopN(t *testing.T) {
	g := graph.New()
	addBook(t, g, "b1", "One", "g1")
	for _, b := range []string{"b2", "b3", "b4", "b5"} {
		addBook(t, g, b, b, "g1")
	}

	recs, err := NewWeightedRecommender(testConfig()).Recommend(context.Background(), g, "b1", 2, 0)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if len(recs) != 2 {
		t.Errorf("got %d recommendations, want 2", len(recs))
	}
}

func TestWeightedRecommender_TieBreakLexicographic(t *testing.T) {
	g := graph.New()
	addBook(t, g, "b1", "One", "g1")
	// Insert out of order so insertion order cannot mask the sort.
	addBook(t, g, "b9", "Nine", "g1")
	addBook(t, g, "b2", "Two", "g1")
	addBook(t, g, "b5", "Five", "g1")

	recs, err := NewWeightedRecommender(testConfig()).Recommend(context.Background(), g, "b1", 10, 0)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	want := []string{"b2", "b5", "b9"}
	for i, w := range want {
		if recs[i].Book != w {
			t.Errorf("recs[%d] = %s, want %s", i, recs[i].Book, w)
		}
	}
}

func TestWeightedRecommender_SeededJitterDeterministic(t *testing.T) {
	g := graph.New()
	addBook(t, g, "b1", "One", "g1")
	for _, b := range []string{"b2", "b3", "b4"} {
		addBook(t, g, b, b, "g1")
	}

	cfg := testConfig()
	cfg.Randomness = 0.1

	run := func() []Recommendation {
		recs, err := NewWeightedRecommender(cfg).Recommend(context.Background(), g, "b1", 10, -1)
		if err != nil {
			t.Fatalf("Recommend() error = %v", err)
		}
		return recs
	}
	first, second := run(), run()
	if len(first) != len(second) {
		t.Fatalf("run lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Book != second[i].Book || first[i].Score != second[i].Score {
			t.Errorf("run mismatch at %d: %+v vs %+v", i, first[i], second[i])
		}
		base := 1.0 / float64(first[i].Distance+1)
		if first[i].Score < roundScore(base) || first[i].Score >= roundScore(base+cfg.Randomness)+0.001 {
			t.Errorf("score %v outside jitter bound for distance %d", first[i].Score, first[i].Distance)
		}
	}
}

func TestWeightedRecommender_UnknownBook(t *testing.T) {
	g := graph.New()
	addBook(t, g, "b1", "One", "g1")
	addBook(t, g, "b2", "Two", "g1")

	// An absent target is unreachable from every candidate, so the
	// result is an empty list rather than an error.
	recs, err := NewWeightedRecommender(testConfig()).Recommend(context.Background(), g, "missing", 5, 0)
	if err != nil {
		t.Fatalf("Recommend() with unknown book: error = %v", err)
	}
	if len(recs) != 0 {
		t.Errorf("Recommend() with unknown book = %v, want empty", recs)
	}
}

func TestWeightedRecommender_CancelledContext(t *testing.T) {
	g := graph.New()
	addBook(t, g, "b1", "One", "g1")
	addBook(t, g, "b2", "Two", "g1")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewWeightedRecommender(testConfig()).Recommend(ctx, g, "b1", 5, 0); err == nil {
		t.Error("Recommend() with cancelled context: expected error")
	}
}
