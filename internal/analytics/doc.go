// Bookgraph - Knowledge Graph Book Recommendations
// Copyright 2026 Readmill Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/readmill/bookgraph

// Package analytics records recommendation feedback in DuckDB: every
// recommendation served (impressions) and every like observed on the
// event bus. Aggregates over these tables back the analytics endpoints.
package analytics
