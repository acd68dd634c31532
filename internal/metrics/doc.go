// Bookgraph - Knowledge Graph Book Recommendations
// Copyright 2026 Readmill Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/readmill/bookgraph

// Package metrics defines the Prometheus instrumentation for Bookgraph:
// API latency and throughput, recommendation engine timings, graph
// store size, importer activity and analytics writes. All collectors
// register on the default registry via promauto and are exposed at
// /metrics.
package metrics
