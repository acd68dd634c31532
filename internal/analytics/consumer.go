// Bookgraph - Knowledge Graph Book Recommendations
// Copyright 2026 Readmill Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/readmill/bookgraph

package analytics

import (
	"context"

	"github.com/readmill/bookgraph/internal/eventbus"
	"github.com/readmill/bookgraph/internal/logging"
)

// Consumer drains like events from the bus into the likes table.
type Consumer struct {
	store *Store
	bus   *eventbus.Bus
}

// NewConsumer creates a like-event consumer.
func NewConsumer(store *Store, bus *eventbus.Bus) *Consumer {
	return &Consumer{store: store, bus: bus}
}

// Serve subscribes and processes events until ctx is cancelled. A
// failed insert is logged and the message acked anyway so the bus does
// not redeliver feedback data forever.
func (c *Consumer) Serve(ctx context.Context) error {
	ch, err := c.bus.SubscribeLikes(ctx)
	if err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			ev, err := eventbus.DecodeLike(msg)
			if err != nil {
				logging.Warn().Err(err).Msg("Dropping undecodable like event")
				msg.Ack()
				continue
			}
			if err := c.store.RecordLike(ctx, ev.User, ev.Book, ev.At); err != nil {
				logging.Error().Err(err).Str("user", ev.User).Str("book", ev.Book).
					Msg("Failed to record like")
			}
			msg.Ack()
		}
	}
}
