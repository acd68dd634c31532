// Bookgraph - Knowledge Graph Book Recommendations
// Copyright 2026 Readmill Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/readmill/bookgraph

// Package config loads and validates Bookgraph configuration.
//
// Configuration is layered with Koanf v2, in ascending precedence:
//
//  1. Built-in defaults
//  2. An optional YAML config file (CONFIG_PATH or the default search paths)
//  3. Environment variables
//
// Environment variable names map onto nested config paths through an
// explicit table (HTTP_PORT -> server.port, LOG_LEVEL -> logging.level);
// unmapped variables are ignored so unrelated environment does not leak
// into the configuration.
package config
