// Bookgraph - Knowledge Graph Book Recommendations
// Copyright 2026 Readmill Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/readmill/bookgraph

package users

import (
	"context"
	"testing"
	"time"

	"github.com/readmill/bookgraph/internal/eventbus"
	"github.com/readmill/bookgraph/internal/graph"
)

func newCatalog(t *testing.T, slugs ...string) *graph.Store {
	t.Helper()
	g := graph.New()
	for _, slug := range slugs {
		book := graph.BookIRI(slug)
		g.Add(book, graph.RDFType, graph.IRI(graph.ClassBook))
		g.Add(book, graph.RDFSLabel, graph.Literal(slug))
	}
	return g
}

func TestService_Upsert_CreatesUser(t *testing.T) {
	g := newCatalog(t, "dune", "hyperion")
	svc := NewService(g, nil)

	res, err := svc.Upsert(context.Background(), User{Name: "Ana", Age: 29, LikedBooks: []string{"dune"}})
	if err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}
	if !res.Created {
		t.Error("Created = false, want true for a new user")
	}
	if res.LikesAdded != 1 {
		t.Errorf("LikesAdded = %d, want 1", res.LikesAdded)
	}
	if res.UserKey != graph.UserIRI("Ana") {
		t.Errorf("UserKey = %q, want normalized user IRI", res.UserKey)
	}
	if !g.Has(res.UserKey, graph.Likes, graph.IRI(graph.BookIRI("dune"))) {
		t.Error("like edge missing from graph")
	}
	if v, ok := g.Value(res.UserKey, graph.Age); !ok || v.Value != "29" {
		t.Errorf("age = %v, want literal 29", v)
	}
}

func TestService_Upsert_Idempotent(t *testing.T) {
	g := newCatalog(t, "dune")
	svc := NewService(g, nil)

	u := User{Name: "Ana", LikedBooks: []string{"dune"}}
	if _, err := svc.Upsert(context.Background(), u); err != nil {
		t.Fatalf("first Upsert() error = %v", err)
	}
	res, err := svc.Upsert(context.Background(), u)
	if err != nil {
		t.Fatalf("second Upsert() error = %v", err)
	}
	if res.Created {
		t.Error("Created = true on second upsert, want false")
	}
	if res.LikesAdded != 0 {
		t.Errorf("LikesAdded = %d on second upsert, want 0", res.LikesAdded)
	}
}

func TestService_Upsert_NameNormalization(t *testing.T) {
	g := newCatalog(t, "dune", "hyperion")
	svc := NewService(g, nil)

	if _, err := svc.Upsert(context.Background(), User{Name: "Ana", LikedBooks: []string{"dune"}}); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}
	res, err := svc.Upsert(context.Background(), User{Name: "  ANA ", LikedBooks: []string{"hyperion"}})
	if err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}
	if res.Created {
		t.Error("differently-cased name created a second user node")
	}
	if got := len(g.Objects(res.UserKey, graph.Likes)); got != 2 {
		t.Errorf("user has %d likes, want 2", got)
	}
}

func TestService_Upsert_UnknownBooksSkipped(t *testing.T) {
	g := newCatalog(t, "dune")
	svc := NewService(g, nil)

	res, err := svc.Upsert(context.Background(), User{Name: "Ana", LikedBooks: []string{"dune", "ghost"}})
	if err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}
	if res.LikesAdded != 1 {
		t.Errorf("LikesAdded = %d, want 1", res.LikesAdded)
	}
	if len(res.UnknownBooks) != 1 || res.UnknownBooks[0] != "ghost" {
		t.Errorf("UnknownBooks = %v, want [ghost]", res.UnknownBooks)
	}
	if g.Has(graph.BookIRI("ghost"), graph.RDFType, graph.IRI(graph.ClassBook)) {
		t.Error("unknown book must not be created")
	}
}

func TestService_Upsert_EmptyName(t *testing.T) {
	svc := NewService(graph.New(), nil)
	if _, err := svc.Upsert(context.Background(), User{Name: "   "}); err != ErrEmptyName {
		t.Errorf("Upsert() error = %v, want ErrEmptyName", err)
	}
}

func TestService_Upsert_PublishesLikeEvents(t *testing.T) {
	g := newCatalog(t, "dune")
	bus := eventbus.New(16, nil)
	defer bus.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch, err := bus.SubscribeLikes(ctx)
	if err != nil {
		t.Fatalf("SubscribeLikes() error = %v", err)
	}

	svc := NewService(g, bus)
	if _, err := svc.Upsert(context.Background(), User{Name: "Ana", LikedBooks: []string{"dune"}}); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	select {
	case msg := <-ch:
		ev, err := eventbus.DecodeLike(msg)
		if err != nil {
			t.Fatalf("DecodeLike() error = %v", err)
		}
		msg.Ack()
		if ev.User != graph.UserIRI("Ana") || ev.Book != graph.BookIRI("dune") {
			t.Errorf("event = %+v, want ana likes dune", ev)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no like event published")
	}
}
