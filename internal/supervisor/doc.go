// Bookgraph - Knowledge Graph Book Recommendations
// Copyright 2026 Readmill Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/readmill/bookgraph

// Package supervisor builds the suture supervision tree for Bookgraph.
//
// The tree has two layers: data (graph snapshots, analytics consumer)
// and api (the HTTP server). A crash in the data layer restarts only
// that layer; the API keeps serving from the in-memory graph.
package supervisor
