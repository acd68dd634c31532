// Bookgraph - Knowledge Graph Book Recommendations
// Copyright 2026 Readmill Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/readmill/bookgraph

package services

import (
	"context"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	badger "github.com/dgraph-io/badger/v4"

	"github.com/readmill/bookgraph/internal/eventbus"
	"github.com/readmill/bookgraph/internal/graph"
	"github.com/readmill/bookgraph/internal/logging"
	"github.com/readmill/bookgraph/internal/metrics"
)

// SnapshotService persists the graph to Badger on a timer and marks the
// graph dirty whenever a like event arrives, so an idle service does
// not rewrite an unchanged snapshot.
type SnapshotService struct {
	graph    *graph.Store
	db       *badger.DB
	bus      *eventbus.Bus
	interval time.Duration
	dirty    bool
}

// NewSnapshotService creates the periodic snapshot writer. bus may be
// nil; the service then snapshots unconditionally each interval.
func NewSnapshotService(g *graph.Store, db *badger.DB, bus *eventbus.Bus, interval time.Duration) *SnapshotService {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &SnapshotService{graph: g, db: db, bus: bus, interval: interval, dirty: bus == nil}
}

// Serve implements suture.Service. It writes a final snapshot on
// shutdown when changes are pending.
func (s *SnapshotService) Serve(ctx context.Context) error {
	var likeCh <-chan *message.Message
	if s.bus != nil {
		ch, err := s.bus.SubscribeLikes(ctx)
		if err != nil {
			return err
		}
		likeCh = ch
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			if s.dirty {
				s.snapshot()
			}
			return ctx.Err()
		case msg, ok := <-likeCh:
			if !ok {
				likeCh = nil
				continue
			}
			s.dirty = true
			msg.Ack()
		case <-ticker.C:
			if !s.dirty {
				continue
			}
			s.snapshot()
			if s.bus != nil {
				s.dirty = false
			}
		}
	}
}

func (s *SnapshotService) snapshot() {
	start := time.Now()
	err := s.graph.SaveSnapshot(s.db)
	metrics.RecordSnapshot(time.Since(start), err)
	metrics.GraphTriples.Set(float64(s.graph.Len()))
	if err != nil {
		logging.Error().Err(err).Msg("Graph snapshot failed")
		return
	}
	logging.Debug().Int("triples", s.graph.Len()).Msg("Graph snapshot written")
}

// String identifies the service in supervisor logs.
func (s *SnapshotService) String() string {
	return "graph-snapshot"
}
