// Bookgraph - Knowledge Graph Book Recommendations
// Copyright 2026 Readmill Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/readmill/bookgraph

package importer

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/readmill/bookgraph/internal/graph"
)

// resultSet is the application/sparql-results+json document shape.
type resultSet struct {
	Head struct {
		Vars []string `json:"vars"`
	} `json:"head"`
	Results struct {
		Bindings []map[string]binding `json:"bindings"`
	} `json:"results"`
}

// binding is one variable binding in a results row.
type binding struct {
	Type  string `json:"type"` // "uri", "literal", "typed-literal", "bnode"
	Value string `json:"value"`
}

// parseResults decodes a SPARQL JSON results document.
func parseResults(r io.Reader) (*resultSet, error) {
	var rs resultSet
	if err := json.NewDecoder(r).Decode(&rs); err != nil {
		return nil, fmt.Errorf("failed to decode sparql results: %w", err)
	}
	return &rs, nil
}

// term converts a binding to a graph term. Blank nodes map to IRIs so
// their identity survives; anything else is a literal.
func (b binding) term() graph.Term {
	switch b.Type {
	case "uri", "bnode":
		return graph.IRI(b.Value)
	default:
		return graph.Literal(b.Value)
	}
}

// triples converts s/p/o rows into graph triples. Rows missing any of
// the three variables, or with a literal subject or predicate, are
// skipped.
func (rs *resultSet) triples() []graph.Triple {
	out := make([]graph.Triple, 0, len(rs.Results.Bindings))
	for _, row := range rs.Results.Bindings {
		s, okS := row["s"]
		p, okP := row["p"]
		o, okO := row["o"]
		if !okS || !okP || !okO {
			continue
		}
		if s.Type == "literal" || p.Type != "uri" {
			continue
		}
		out = append(out, graph.Triple{S: s.Value, P: p.Value, O: o.term()})
	}
	return out
}

// buildQueryURL builds a GET query URL for the endpoint.
func buildQueryURL(endpoint, query string) (string, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return "", fmt.Errorf("invalid sparql endpoint %q: %w", endpoint, err)
	}
	q := u.Query()
	q.Set("query", query)
	q.Set("format", "json")
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// doQuery performs one HTTP round trip against the endpoint.
func doQuery(ctx context.Context, client *http.Client, endpoint, query string) (*resultSet, error) {
	reqURL, err := buildQueryURL(endpoint, query)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build sparql request: %w", err)
	}
	req.Header.Set("Accept", "application/sparql-results+json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sparql request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("sparql endpoint returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return parseResults(resp.Body)
}
