// Bookgraph - Knowledge Graph Book Recommendations
// Copyright 2026 Readmill Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/readmill/bookgraph

// Package graph implements the in-memory knowledge graph backing the
// recommendation engine.
//
// The graph is a directed labeled multigraph of (subject, predicate, object)
// triples. Subjects and predicates are IRIs; objects are either IRIs (graph
// nodes) or literals (attribute values). Books, genres, authors, publishers,
// and users are all subjects; the vocabulary lives in ontology.go.
//
// # Concurrency
//
// The store is read-mostly: it is loaded once at startup and mutated only by
// the user upsert path. A sync.RWMutex serializes the single writer against
// concurrent recommendation reads. Query methods return copies, so callers
// never observe a torn write.
//
// # Persistence
//
// The store snapshots to BadgerDB (one key per subject, JSON-encoded
// predicate map) and seeds from a JSON triples file. Both live in
// snapshot.go; load failures are fatal startup errors, not conditions the
// engine recovers from.
package graph
