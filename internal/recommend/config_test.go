// Bookgraph - Knowledge Graph Book Recommendations
// Copyright 2026 Readmill Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/readmill/bookgraph

package recommend

import "testing"

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"zero randomness", func(c *Config) { c.Randomness = 0 }, false},
		{"negative author weight", func(c *Config) { c.AuthorWeight = -0.1 }, true},
		{"negative publisher weight", func(c *Config) { c.PublisherWeight = -1 }, true},
		{"negative randomness", func(c *Config) { c.Randomness = -0.1 }, true},
		{"zero top n", func(c *Config) { c.TopN = 0 }, true},
		{"zero max depth", func(c *Config) { c.MaxDepth = 0 }, true},
		{"threshold at one", func(c *Config) { c.SimilarityThreshold = 1 }, true},
		{"negative threshold", func(c *Config) { c.SimilarityThreshold = -0.5 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
