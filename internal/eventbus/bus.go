// Bookgraph - Knowledge Graph Book Recommendations
// Copyright 2026 Readmill Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/readmill/bookgraph

package eventbus

import (
	"context"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	json "github.com/goccy/go-json"

	"github.com/readmill/bookgraph/internal/metrics"
)

// TopicUserLikes carries one message per new like edge.
const TopicUserLikes = "user.likes"

// LikeEvent records a user liking a book.
type LikeEvent struct {
	User string    `json:"user"`
	Book string    `json:"book"`
	At   time.Time `json:"at"`
}

// Bus is the in-process event bus. One publisher, any number of
// subscribers; each subscriber receives every message.
type Bus struct {
	pubsub *gochannel.GoChannel
}

// New creates a bus with the given per-subscriber buffer size.
func New(bufferSize int, logger watermill.LoggerAdapter) *Bus {
	if logger == nil {
		logger = watermill.NopLogger{}
	}
	return &Bus{
		pubsub: gochannel.NewGoChannel(gochannel.Config{
			OutputChannelBuffer: int64(bufferSize),
		}, logger),
	}
}

// PublishLike publishes a like event to TopicUserLikes.
func (b *Bus) PublishLike(ev LikeEvent) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal like event: %w", err)
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	if err := b.pubsub.Publish(TopicUserLikes, msg); err != nil {
		return fmt.Errorf("publish like event: %w", err)
	}
	metrics.EventsPublished.WithLabelValues(TopicUserLikes).Inc()
	return nil
}

// SubscribeLikes subscribes to TopicUserLikes. The channel closes when
// ctx is cancelled or the bus shuts down.
func (b *Bus) SubscribeLikes(ctx context.Context) (<-chan *message.Message, error) {
	ch, err := b.pubsub.Subscribe(ctx, TopicUserLikes)
	if err != nil {
		return nil, fmt.Errorf("subscribe %s: %w", TopicUserLikes, err)
	}
	return ch, nil
}

// DecodeLike decodes a like event from a message payload.
func DecodeLike(msg *message.Message) (LikeEvent, error) {
	var ev LikeEvent
	if err := json.Unmarshal(msg.Payload, &ev); err != nil {
		return LikeEvent{}, fmt.Errorf("unmarshal like event: %w", err)
	}
	return ev, nil
}

// Close shuts the bus down, closing all subscriber channels.
func (b *Bus) Close() error {
	return b.pubsub.Close()
}
