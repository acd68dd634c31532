// Bookgraph - Knowledge Graph Book Recommendations
// Copyright 2026 Readmill Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/readmill/bookgraph

// Package api is the HTTP surface of Bookgraph: a Chi router exposing
// the catalog, both recommendation strategies, user upserts and the
// analytics aggregates, all wrapped in a standard response envelope.
package api
