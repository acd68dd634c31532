// Bookgraph - Knowledge Graph Book Recommendations
// Copyright 2026 Readmill Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/readmill/bookgraph

// Package importer pulls triples from a remote SPARQL endpoint into the
// graph store. Outbound queries run behind a rate limiter and a circuit
// breaker so a slow or failing endpoint cannot stall startup or
// cascade into the rest of the service.
package importer
