// Bookgraph - Knowledge Graph Book Recommendations
// Copyright 2026 Readmill Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/readmill/bookgraph

package recommend

import (
	"strings"

	"github.com/readmill/bookgraph/internal/graph"
)

// Fallback strings reported when a book field is absent from the graph.
const (
	fallbackTitle         = "Unknown title"
	fallbackAuthor        = "Unknown author"
	fallbackGenre         = "Genre not specified"
	fallbackPublisher     = "Publisher not specified"
	fallbackMaturity      = "Not specified"
	fallbackDescription   = "No description available"
	fallbackYear          = "Year not specified"
	fallbackISBN          = "ISBN not specified"
	fallbackAccessibility = "Not specified"
)

// BookInfo is the resolved, display-ready metadata for a book.
type BookInfo struct {
	Book          string `json:"book"`
	Title         string `json:"title"`
	Author        string `json:"author"`
	Genre         string `json:"genre"`
	Publisher     string `json:"publisher"`
	Maturity      string `json:"maturity"`
	Description   string `json:"description"`
	Year          string `json:"year"`
	ISBN          string `json:"isbn"`
	Accessibility string `json:"accessibility"`
}

// GetBookInfo resolves a book's metadata from the graph, substituting
// named fallbacks for missing fields. Normalizations apply only when
// the field is actually present: a maturity rating is mapped to its
// display phrase, the year is reduced to its leading digits, and the
// accessibility flag collapses to Yes/No.
func GetBookInfo(g *graph.Store, book string) BookInfo {
	info := BookInfo{
		Book:          book,
		Title:         fallbackTitle,
		Author:        fallbackAuthor,
		Genre:         fallbackGenre,
		Publisher:     fallbackPublisher,
		Maturity:      fallbackMaturity,
		Description:   fallbackDescription,
		Year:          fallbackYear,
		ISBN:          fallbackISBN,
		Accessibility: fallbackAccessibility,
	}
	if v, ok := g.Value(book, graph.RDFSLabel); ok {
		info.Title = v.Value
	}
	if authors := g.Objects(book, graph.HasAuthor); len(authors) > 0 {
		names := make([]string, 0, len(authors))
		for _, a := range authors {
			names = append(names, resolveLabel(g, a.Value))
		}
		info.Author = strings.Join(names, ", ")
	}
	if genres := g.Objects(book, graph.HasGenre); len(genres) > 0 {
		names := make([]string, 0, len(genres))
		for _, gn := range genres {
			names = append(names, resolveLabel(g, gn.Value))
		}
		info.Genre = strings.Join(names, ", ")
	}
	if v, ok := g.Value(book, graph.HasPublisher); ok {
		info.Publisher = resolveLabel(g, v.Value)
	}
	if v, ok := g.Value(book, graph.MaturityRating); ok {
		info.Maturity = maturityPhrase(v.Value)
	}
	if v, ok := g.Value(book, graph.Description); ok {
		info.Description = stripQuotes(v.Value)
	}
	if v, ok := g.Value(book, graph.Year); ok {
		info.Year = leadingDigits(v.Value)
	}
	if v, ok := g.Value(book, graph.ISBN); ok {
		info.ISBN = v.Value
	}
	if v, ok := g.Value(book, graph.EpubAccessibility); ok {
		if strings.EqualFold(v.Value, "true") {
			info.Accessibility = "Yes"
		} else {
			info.Accessibility = "No"
		}
	}
	return info
}

// maturityPhrase maps a raw maturity rating to its display phrase.
// Unrecognized ratings pass through unchanged.
func maturityPhrase(rating string) string {
	switch rating {
	case "NOT_MATURE":
		return "Suitable for all audiences"
	case "MATURE":
		return "Mature content"
	default:
		return rating
	}
}

// stripQuotes removes one pair of surrounding double quotes, which
// imported literals sometimes carry.
func stripQuotes(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}

// leadingDigits returns the leading digit run of s capped at four
// characters, so a full publication date like "2019-05-01" reports as
// "2019". A value with no leading digits passes through unchanged.
func leadingDigits(s string) string {
	i := 0
	for i < len(s) && i < 4 && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == 0 {
		return s
	}
	return s[:i]
}
