// Bookgraph - Knowledge Graph Book Recommendations
// Copyright 2026 Readmill Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/readmill/bookgraph

// Package eventbus is the in-process pub/sub layer built on Watermill's
// GoChannel transport. Like events flow from the user service to the
// graph snapshot and analytics consumers without coupling them.
package eventbus
