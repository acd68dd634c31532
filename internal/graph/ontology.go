// Bookgraph - Knowledge Graph Book Recommendations
// Copyright 2026 Readmill Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/readmill/bookgraph

package graph

import "strings"

// Base namespaces for entity and ontology IRIs.
const (
	// BaseIRI is the namespace for catalog entities (books, users, genres).
	BaseIRI = "http://bookgraph.dev/book/"

	// OntologyIRI is the namespace for the Bookgraph vocabulary.
	OntologyIRI = "http://bookgraph.dev/book-ontology/"
)

// Standard RDF/RDFS predicates.
const (
	RDFType        = "http://www.w3.org/1999/02/22-rdf-syntax-ns#type"
	RDFSLabel      = "http://www.w3.org/2000/01/rdf-schema#label"
	RDFSSubClassOf = "http://www.w3.org/2000/01/rdf-schema#subClassOf"
)

// Entity classes.
const (
	ClassBook  = OntologyIRI + "Book"
	ClassUser  = OntologyIRI + "User"
	ClassGenre = OntologyIRI + "Genre"
)

// Bookgraph vocabulary predicates.
const (
	HasGenre          = OntologyIRI + "hasGenre"
	HasAuthor         = OntologyIRI + "hasAuthor"
	HasPublisher      = OntologyIRI + "hasPublisher"
	Likes             = OntologyIRI + "likes"
	Age               = OntologyIRI + "age"
	MaturityRating    = OntologyIRI + "maturityRating"
	Description       = OntologyIRI + "description"
	Year              = OntologyIRI + "year"
	EpubAccessibility = OntologyIRI + "epubAccessibility"
	ISBN              = OntologyIRI + "isbn"
)

// BookIRI builds a book entity IRI from its catalog slug.
func BookIRI(slug string) string {
	return BaseIRI + "_book=" + slug
}

// UserIRI builds a user entity IRI from a display name. The name is
// lowercased so that repeated upserts of the same user resolve to one node.
func UserIRI(name string) string {
	return BaseIRI + "_user=" + strings.ToLower(strings.TrimSpace(name))
}

// LocalName returns the trailing segment of an IRI, used as a fallback
// label when no rdfs:label triple exists.
func LocalName(iri string) string {
	if i := strings.LastIndexAny(iri, "/#="); i >= 0 && i+1 < len(iri) {
		return iri[i+1:]
	}
	return iri
}
