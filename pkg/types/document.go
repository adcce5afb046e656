// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds the shared data model for the document intelligence
// pipeline: documents and pages on the input side, sections, persona
// contexts, and ranked results on the output side.
package types

// Document is one input document, already reduced to per-page text by the
// ingestion boundary. Documents are read-only once loaded.
type Document struct {
	// ID identifies the document, normally its filename.
	ID string `json:"id" yaml:"id"`

	// Pages holds the document's pages in order.
	Pages []Page `json:"pages" yaml:"pages"`
}

// IsEmpty reports whether the document has no pages with any text.
func (d Document) IsEmpty() bool {
	for _, p := range d.Pages {
		if p.Text != "" {
			return false
		}
	}
	return true
}

// Page is one page of a document.
type Page struct {
	// Number is the 1-indexed page number.
	Number int `json:"number" yaml:"number"`

	// Text is the raw extracted page text.
	Text string `json:"text" yaml:"text"`

	// HasTables indicates the ingestion layer detected tabular content.
	HasTables bool `json:"has_tables,omitempty" yaml:"has_tables,omitempty"`

	// HasImages indicates the ingestion layer detected image content.
	HasImages bool `json:"has_images,omitempty" yaml:"has_images,omitempty"`
}

// SectionType tags how a section was detected on its page.
type SectionType string

const (
	// SectionHeading marks a section introduced by a recognized heading line.
	SectionHeading SectionType = "heading"

	// SectionContentBlock marks a paragraph block with a title-like first line.
	SectionContentBlock SectionType = "content_block"

	// SectionFallback marks a synthesized whole-page section.
	SectionFallback SectionType = "fallback"
)

// Section is a titled content unit extracted from one page. Sections are
// produced fresh on every run and never persisted.
type Section struct {
	// DocumentID names the owning document.
	DocumentID string `json:"document_id" yaml:"document_id"`

	// Page is the 1-indexed page the section was found on.
	Page int `json:"page" yaml:"page"`

	// Title is the heading or inferred title of the section.
	Title string `json:"title" yaml:"title"`

	// Body is the section's excerpt, bounded during segmentation.
	Body string `json:"body" yaml:"body"`

	// Trailing holds the page lines immediately after the body cut. The
	// excerpt refiner uses it to pad bodies that are too short on their own.
	Trailing string `json:"-" yaml:"-"`

	// Type records how the section was detected.
	Type SectionType `json:"type" yaml:"type"`
}
