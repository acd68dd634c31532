// Bookgraph - Knowledge Graph Book Recommendations
// Copyright 2026 Readmill Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/readmill/bookgraph

package users

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/readmill/bookgraph/internal/eventbus"
	"github.com/readmill/bookgraph/internal/graph"
	"github.com/readmill/bookgraph/internal/logging"
)

// ErrEmptyName is returned when a user has no usable name.
var ErrEmptyName = errors.New("user name is empty")

// User is an upsert request: a reader and the catalog slugs of the
// books they like.
type User struct {
	Name       string
	Age        int
	LikedBooks []string
}

// UpsertResult reports what an upsert changed.
type UpsertResult struct {
	// UserKey is the user's graph IRI.
	UserKey string `json:"user_key"`

	// Created reports whether the user node was new.
	Created bool `json:"created"`

	// LikesAdded counts new like edges.
	LikesAdded int `json:"likes_added"`

	// UnknownBooks lists requested slugs with no Book node in the
	// graph; they are skipped, not created.
	UnknownBooks []string `json:"unknown_books,omitempty"`
}

// Service upserts users into the graph and publishes like events.
type Service struct {
	graph *graph.Store
	bus   *eventbus.Bus
	now   func() time.Time
}

// NewService creates a user service. bus may be nil, in which case no
// events are published.
func NewService(g *graph.Store, bus *eventbus.Bus) *Service {
	return &Service{graph: g, bus: bus, now: time.Now}
}

// Upsert creates the user node if absent and adds like edges for the
// books that exist in the graph. Re-running an upsert is a no-op for
// edges already present. Each new like edge publishes a LikeEvent.
func (s *Service) Upsert(ctx context.Context, u User) (UpsertResult, error) {
	if strings.TrimSpace(u.Name) == "" {
		return UpsertResult{}, ErrEmptyName
	}
	if err := ctx.Err(); err != nil {
		return UpsertResult{}, err
	}

	userKey := graph.UserIRI(u.Name)
	res := UpsertResult{UserKey: userKey}

	res.Created = s.graph.Add(userKey, graph.RDFType, graph.IRI(graph.ClassUser))
	if res.Created {
		s.graph.Add(userKey, graph.RDFSLabel, graph.Literal(strings.TrimSpace(u.Name)))
		if u.Age > 0 {
			s.graph.Add(userKey, graph.Age, graph.Literal(strconv.Itoa(u.Age)))
		}
	}

	for _, slug := range u.LikedBooks {
		bookKey := graph.BookIRI(slug)
		if !s.graph.Has(bookKey, graph.RDFType, graph.IRI(graph.ClassBook)) {
			res.UnknownBooks = append(res.UnknownBooks, slug)
			continue
		}
		if !s.graph.Add(userKey, graph.Likes, graph.IRI(bookKey)) {
			continue
		}
		res.LikesAdded++
		if s.bus != nil {
			ev := eventbus.LikeEvent{User: userKey, Book: bookKey, At: s.now().UTC()}
			if err := s.bus.PublishLike(ev); err != nil {
				logging.Warn().Err(err).Str("user", userKey).Str("book", bookKey).
					Msg("Failed to publish like event")
			}
		}
	}

	logging.Info().
		Str("user", userKey).
		Bool("created", res.Created).
		Int("likes_added", res.LikesAdded).
		Int("unknown_books", len(res.UnknownBooks)).
		Msg("User upserted")
	return res, nil
}
