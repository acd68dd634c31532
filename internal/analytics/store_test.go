// Bookgraph - Knowledge Graph Book Recommendations
// Copyright 2026 Readmill Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/readmill/bookgraph

package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/readmill/bookgraph/internal/eventbus"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open("")
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("Close() error = %v", err)
		}
	})
	return store
}

func TestStore_RecordImpressionsAndTopRecommended(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	imps := []Impression{
		{Strategy: "weighted", Target: "b1", Book: "b2", Score: 0.833},
		{Strategy: "weighted", Target: "b1", Book: "b3", Score: 0.533},
		{Strategy: "weighted", Target: "b4", Book: "b2", Score: 0.5},
		{Strategy: "collaborative", Target: "u1", Book: "b2", Score: 1.5},
	}
	if err := store.RecordImpressions(ctx, imps); err != nil {
		t.Fatalf("RecordImpressions() error = %v", err)
	}

	top, err := store.TopRecommended(ctx, 10)
	if err != nil {
		t.Fatalf("TopRecommended() error = %v", err)
	}
	if len(top) != 2 {
		t.Fatalf("got %d rows, want 2: %v", len(top), top)
	}
	if top[0].Book != "b2" || top[0].Count != 3 {
		t.Errorf("top[0] = %+v, want b2 with count 3", top[0])
	}
	if top[1].Book != "b3" || top[1].Count != 1 {
		t.Errorf("top[1] = %+v, want b3 with count 1", top[1])
	}
}

func TestStore_TopRecommended_Limit(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	imps := []Impression{
		{Strategy: "weighted", Target: "t", Book: "b1", Score: 1},
		{Strategy: "weighted", Target: "t", Book: "b2", Score: 1},
		{Strategy: "weighted", Target: "t", Book: "b3", Score: 1},
	}
	if err := store.RecordImpressions(ctx, imps); err != nil {
		t.Fatalf("RecordImpressions() error = %v", err)
	}
	top, err := store.TopRecommended(ctx, 2)
	if err != nil {
		t.Fatalf("TopRecommended() error = %v", err)
	}
	if len(top) != 2 {
		t.Errorf("got %d rows, want limit 2", len(top))
	}
	// Equal counts fall back to book key order.
	if top[0].Book != "b1" || top[1].Book != "b2" {
		t.Errorf("top = %v, want [b1 b2]", top)
	}
}

func TestStore_RecordImpressions_Empty(t *testing.T) {
	store := newTestStore(t)
	if err := store.RecordImpressions(context.Background(), nil); err != nil {
		t.Errorf("RecordImpressions(nil) error = %v, want nil", err)
	}
}

func TestStore_RecordLike(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	at := time.Unix(1700000000, 0)
	if err := store.RecordLike(ctx, "_user=ana", "_book=dune", at); err != nil {
		t.Fatalf("RecordLike() error = %v", err)
	}

	var n int64
	if err := store.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM likes`).Scan(&n); err != nil {
		t.Fatalf("count likes: %v", err)
	}
	if n != 1 {
		t.Errorf("likes rows = %d, want 1", n)
	}
}

func TestConsumer_RecordsLikes(t *testing.T) {
	store := newTestStore(t)
	bus := eventbus.New(16, nil)
	defer bus.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = NewConsumer(store, bus).Serve(ctx)
	}()

	if err := bus.PublishLike(eventbus.LikeEvent{User: "_user=ana", Book: "_book=dune", At: time.Now()}); err != nil {
		t.Fatalf("PublishLike() error = %v", err)
	}

	deadline := time.After(2 * time.Second)
	for {
		var n int64
		if err := store.conn.QueryRow(`SELECT COUNT(*) FROM likes`).Scan(&n); err != nil {
			t.Fatalf("count likes: %v", err)
		}
		if n == 1 {
			break
		}
		select {
		case <-deadline:
			t.Fatal("like event never reached the analytics store")
		case <-time.After(10 * time.Millisecond):
		}
	}
	cancel()
	<-done
}
