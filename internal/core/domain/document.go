package domain

import "fmt"

// Document is a single reference corpus document. Documents are loaded once
// at startup, are immutable for the process lifetime, and are never deleted.
type Document struct {
	// ID is the unique, stable identifier for the document.
	ID string

	// Source is the framework the document comes from (e.g. "NIST CSF 2.0").
	Source string

	// Section is the framework section reference (e.g. "PR.AA-01").
	Section string

	// Title is the human-readable title.
	Title string

	// Content is the full document text.
	Content string
}

// Validate checks that every required field is present.
// The corpus loader rejects the whole dataset on the first invalid document.
func (d *Document) Validate() error {
	switch {
	case d.ID == "":
		return fmt.Errorf("document missing id")
	case d.Source == "":
		return fmt.Errorf("document %s missing source", d.ID)
	case d.Section == "":
		return fmt.Errorf("document %s missing section", d.ID)
	case d.Title == "":
		return fmt.Errorf("document %s missing title", d.ID)
	case d.Content == "":
		return fmt.Errorf("document %s missing content", d.ID)
	}
	return nil
}

// Metadata returns the fixed-shape attribution record stored alongside the
// document's vector in the index.
func (d *Document) Metadata() DocMetadata {
	return DocMetadata{Source: d.Source, Section: d.Section, Title: d.Title}
}

// SearchableText is the text that gets embedded for this document.
// Combining title and content improves recall for short titles.
func (d *Document) SearchableText() string {
	return d.Title + ": " + d.Content
}

// DocMetadata is the attribution metadata persisted with an indexed vector.
// The shape is fixed; adapters validate it at the index boundary instead of
// passing loosely-typed structures inward.
type DocMetadata struct {
	// Source is the originating framework.
	Source string

	// Section is the framework section reference.
	Section string

	// Title is the document title.
	Title string
}

// Validate checks that the metadata record is complete.
func (m *DocMetadata) Validate() error {
	if m.Source == "" || m.Section == "" || m.Title == "" {
		return fmt.Errorf("incomplete metadata record")
	}
	return nil
}

// RetrievedDoc is a transient per-query projection of a corpus document,
// carrying the relevance score for this query. It is never persisted.
type RetrievedDoc struct {
	// ID matches the corpus Document.ID.
	ID string

	// Content is the full document text.
	Content string

	// Source is the originating framework.
	Source string

	// Section is the framework section reference.
	Section string

	// Title is the document title.
	Title string

	// Relevance is 1 - cosine distance, approximately in [0, 1].
	// Higher means more similar to the query.
	Relevance float64
}
