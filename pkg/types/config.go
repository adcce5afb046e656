// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"
	"math"
)

// SegmentConfig holds settings for the section segmenter.
type SegmentConfig struct {
	// MaxExcerptChars bounds a section body. Longer bodies are truncated
	// with an ellipsis marker (default 2000).
	MaxExcerptChars int `json:"max_excerpt_chars" yaml:"max_excerpt_chars"`

	// MaxBodyLines bounds how many lines a section body may absorb before
	// the next heading, guarding against runaway sections (default 40).
	MaxBodyLines int `json:"max_body_lines" yaml:"max_body_lines"`
}

// ScoringConfig holds the relevance scoring policy. The four weights must
// sum to 1.0.
type ScoringConfig struct {
	// KeywordWeight weights the keyword overlap sub-score (default 0.4).
	KeywordWeight float64 `json:"keyword_weight" yaml:"keyword_weight"`

	// TopicWeight weights priority-topic coverage (default 0.3).
	TopicWeight float64 `json:"topic_weight" yaml:"topic_weight"`

	// DomainWeight weights expertise/domain alignment (default 0.2).
	DomainWeight float64 `json:"domain_weight" yaml:"domain_weight"`

	// SectionTypeWeight weights the structural-type bonus (default 0.1).
	SectionTypeWeight float64 `json:"section_type_weight" yaml:"section_type_weight"`
}

// SelectionConfig holds settings for the selector/ranker.
type SelectionConfig struct {
	// MaxResults is the desired result size K (default 5).
	MaxResults int `json:"max_results" yaml:"max_results"`

	// RelevanceFloor is the minimum composite score required for a section
	// to be eligible. A document's single best section survives the floor
	// regardless, so every document with text stays represented (default 0.05).
	RelevanceFloor float64 `json:"relevance_floor" yaml:"relevance_floor"`

	// PerDocumentCap is the soft cap of selections per document before the
	// balancing penalty applies (default 2).
	PerDocumentCap int `json:"per_document_cap" yaml:"per_document_cap"`

	// MinDocsForCap is the minimum number of input documents before the
	// per-document cap takes effect (default 3). Small document sets are
	// never starved by balancing.
	MinDocsForCap int `json:"min_docs_for_cap" yaml:"min_docs_for_cap"`
}

// RefineConfig holds settings for the excerpt refiner.
type RefineConfig struct {
	// TargetChars is the preferred excerpt length; cuts land on the
	// sentence boundary nearest to it (default 450).
	TargetChars int `json:"target_chars" yaml:"target_chars"`

	// MaxChars is the hard upper bound for refined text (default 500).
	MaxChars int `json:"max_chars" yaml:"max_chars"`

	// MinChars is the informativeness threshold. Bodies shorter than this
	// pull in trailing page content before refining (default 120).
	MinChars int `json:"min_chars" yaml:"min_chars"`
}

// IngestConfig holds settings for the document ingestion boundary.
type IngestConfig struct {
	// MaxDocuments caps how many documents are loaded (default 10).
	MaxDocuments int `json:"max_documents" yaml:"max_documents"`

	// MaxPagesPerDoc caps pages processed per document (default 50).
	MaxPagesPerDoc int `json:"max_pages_per_doc" yaml:"max_pages_per_doc"`

	// PdftotextFallback enables shelling out to pdftotext when the Go
	// PDF library cannot extract text.
	PdftotextFallback bool `json:"pdftotext_fallback" yaml:"pdftotext_fallback"`
}

// ArchiveConfig holds settings for the run archive.
type ArchiveConfig struct {
	// Dir is the directory holding the archive database (default "archive").
	Dir string `json:"dir" yaml:"dir"`

	// Disabled skips archiving entirely.
	Disabled bool `json:"disabled" yaml:"disabled"`
}

// AnalysisConfig groups all stage configurations for one pipeline run.
type AnalysisConfig struct {
	Segment   SegmentConfig   `json:"segment" yaml:"segment"`
	Scoring   ScoringConfig   `json:"scoring" yaml:"scoring"`
	Selection SelectionConfig `json:"selection" yaml:"selection"`
	Refine    RefineConfig    `json:"refine" yaml:"refine"`
}

// weightTolerance is the floating tolerance for the weight-sum check.
const weightTolerance = 1e-6

// minExcerptChars is the smallest usable section body bound; anything
// shorter cannot hold a truncation marker plus a word.
const minExcerptChars = 10

// DefaultAnalysisConfig returns the policy defaults.
func DefaultAnalysisConfig() AnalysisConfig {
	return AnalysisConfig{
		Segment: SegmentConfig{
			MaxExcerptChars: 2000,
			MaxBodyLines:    40,
		},
		Scoring: ScoringConfig{
			KeywordWeight:     0.4,
			TopicWeight:       0.3,
			DomainWeight:      0.2,
			SectionTypeWeight: 0.1,
		},
		Selection: SelectionConfig{
			MaxResults:     5,
			RelevanceFloor: 0.05,
			PerDocumentCap: 2,
			MinDocsForCap:  3,
		},
		Refine: RefineConfig{
			TargetChars: 450,
			MaxChars:    500,
			MinChars:    120,
		},
	}
}

// Validate rejects invalid configuration with a descriptive error. Invalid
// weights or limits are never silently corrected.
func (c AnalysisConfig) Validate() error {
	sum := c.Scoring.KeywordWeight + c.Scoring.TopicWeight +
		c.Scoring.DomainWeight + c.Scoring.SectionTypeWeight
	if math.Abs(sum-1.0) > weightTolerance {
		return fmt.Errorf("scoring weights must sum to 1.0, got %g", sum)
	}
	for _, w := range []float64{
		c.Scoring.KeywordWeight, c.Scoring.TopicWeight,
		c.Scoring.DomainWeight, c.Scoring.SectionTypeWeight,
	} {
		if w < 0 {
			return fmt.Errorf("scoring weights must be non-negative, got %g", w)
		}
	}
	if c.Selection.MaxResults <= 0 {
		return fmt.Errorf("max_results must be positive, got %d", c.Selection.MaxResults)
	}
	if c.Selection.RelevanceFloor < 0 || c.Selection.RelevanceFloor >= 1 {
		return fmt.Errorf("relevance_floor must be in [0,1), got %g", c.Selection.RelevanceFloor)
	}
	if c.Selection.PerDocumentCap <= 0 {
		return fmt.Errorf("per_document_cap must be positive, got %d", c.Selection.PerDocumentCap)
	}
	if c.Segment.MaxExcerptChars < minExcerptChars {
		return fmt.Errorf("max_excerpt_chars must be at least %d, got %d", minExcerptChars, c.Segment.MaxExcerptChars)
	}
	if c.Refine.MaxChars <= 0 || c.Refine.TargetChars <= 0 {
		return fmt.Errorf("refine target_chars and max_chars must be positive")
	}
	if c.Refine.TargetChars > c.Refine.MaxChars {
		return fmt.Errorf("refine target_chars %d exceeds max_chars %d", c.Refine.TargetChars, c.Refine.MaxChars)
	}
	return nil
}
