// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds the shared data types exchanged between pipeline
// stages and the quote graph store.
package types

// Page is one titled content entry of a wiki export. It exists only while
// the pipeline processes it.
type Page struct {
	// Title is the human-readable page title.
	Title string

	// Text is the raw wikitext body of the page.
	Text string
}

// Segment is the portion of a page's text attributed to one author heading.
type Segment struct {
	// Author is the heading text with markup stripped and whitespace trimmed.
	Author string

	// Body holds the lines following the heading, up to the next heading
	// of the same or shallower level.
	Body string
}

// QuoteRecord is the wire form of one extracted quote. Field names are fixed:
// the graph loader depends on them structurally.
type QuoteRecord struct {
	// Author is the display name of the quote's author. Never empty.
	Author string `json:"author" yaml:"author"`

	// Quote is the markup-stripped quote text. Never empty.
	Quote string `json:"quote" yaml:"quote"`

	// Source is the originating work's title, empty when no attribution
	// line was found. Omitted from serialized records when empty.
	Source string `json:"source,omitempty" yaml:"source,omitempty"`
}

// HasSource reports whether the record carries an originating work.
func (r QuoteRecord) HasSource() bool {
	return r.Source != ""
}
