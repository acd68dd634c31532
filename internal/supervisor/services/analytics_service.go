// Bookgraph - Knowledge Graph Book Recommendations
// Copyright 2026 Readmill Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/readmill/bookgraph

package services

import (
	"context"

	"github.com/readmill/bookgraph/internal/analytics"
	"github.com/readmill/bookgraph/internal/eventbus"
)

// AnalyticsService runs the like-event analytics consumer under
// supervision.
type AnalyticsService struct {
	consumer *analytics.Consumer
}

// NewAnalyticsService wraps the consumer as a supervised service.
func NewAnalyticsService(store *analytics.Store, bus *eventbus.Bus) *AnalyticsService {
	return &AnalyticsService{consumer: analytics.NewConsumer(store, bus)}
}

// Serve implements suture.Service.
func (a *AnalyticsService) Serve(ctx context.Context) error {
	return a.consumer.Serve(ctx)
}

// String identifies the service in supervisor logs.
func (a *AnalyticsService) String() string {
	return "analytics-consumer"
}
