// Bookgraph - Knowledge Graph Book Recommendations
// Copyright 2026 Readmill Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/readmill/bookgraph

package graph

import "fmt"

// TermKind distinguishes IRI terms (graph nodes) from literal terms
// (attribute values). Only IRI terms participate in traversal.
type TermKind int

const (
	// KindIRI identifies a term that names a graph node.
	KindIRI TermKind = iota
	// KindLiteral identifies a plain string value.
	KindLiteral
)

// String returns a human-readable name for the term kind.
func (k TermKind) String() string {
	switch k {
	case KindIRI:
		return "iri"
	case KindLiteral:
		return "literal"
	default:
		return "unknown"
	}
}

// MarshalJSON encodes the kind as its string name.
func (k TermKind) MarshalJSON() ([]byte, error) {
	return []byte(`"` + k.String() + `"`), nil
}

// UnmarshalJSON decodes a kind from its string name.
func (k *TermKind) UnmarshalJSON(data []byte) error {
	switch string(data) {
	case `"iri"`:
		*k = KindIRI
	case `"literal"`:
		*k = KindLiteral
	default:
		return fmt.Errorf("unknown term kind %s", data)
	}
	return nil
}

// Term is the object position of a triple: an IRI or a literal.
type Term struct {
	Kind  TermKind `json:"kind"`
	Value string   `json:"value"`
}

// IRI constructs an IRI term.
func IRI(v string) Term {
	return Term{Kind: KindIRI, Value: v}
}

// Literal constructs a literal term.
func Literal(v string) Term {
	return Term{Kind: KindLiteral, Value: v}
}

// IsIRI reports whether the term names a graph node.
func (t Term) IsIRI() bool {
	return t.Kind == KindIRI
}

// String returns the term value.
func (t Term) String() string {
	return t.Value
}

// key returns a unique map key for deduplication.
func (t Term) key() string {
	return t.Kind.String() + "\x00" + t.Value
}
