// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ContentCategory is the pattern-detected content category of a section
// body, used for domain alignment scoring.
type ContentCategory string

const (
	CategoryMethod    ContentCategory = "method"
	CategoryResult    ContentCategory = "result"
	CategoryFinancial ContentCategory = "financial"
	CategoryTechnical ContentCategory = "technical"
	CategoryOverview  ContentCategory = "overview"
	CategoryGeneral   ContentCategory = "general"
)

// SubScores holds the decomposed relevance sub-scores, each in [0,1].
type SubScores struct {
	// Keyword is the weighted keyword overlap score.
	Keyword float64 `json:"keyword" yaml:"keyword"`

	// Topic is the priority-topic coverage score.
	Topic float64 `json:"topic" yaml:"topic"`

	// Domain is the expertise/domain alignment score.
	Domain float64 `json:"domain" yaml:"domain"`

	// SectionType is the structural-type confidence score.
	SectionType float64 `json:"section_type" yaml:"section_type"`
}

// ScoredSection is a Section together with its composite relevance score
// and sub-scores. Transient; produced and consumed within one run.
type ScoredSection struct {
	Section `yaml:",inline"`

	// Relevance is the composite score in [0,1].
	Relevance float64 `json:"relevance" yaml:"relevance"`

	// Sub holds the decomposed sub-scores.
	Sub SubScores `json:"sub_scores" yaml:"sub_scores"`

	// Category is the detected content category of the section body.
	Category ContentCategory `json:"category" yaml:"category"`
}

// RankedEntry is one selected section with its final rank and refined
// excerpt.
type RankedEntry struct {
	ScoredSection `yaml:",inline"`

	// ImportanceRank is the 1-based position in the final selection.
	ImportanceRank int `json:"importance_rank" yaml:"importance_rank"`

	// RefinedText is the bounded, sentence-aligned excerpt. Computed only
	// for selected sections.
	RefinedText string `json:"refined_text" yaml:"refined_text"`
}

// RankedResult is the terminal artifact of a run: the ordered selection,
// capped at the configured size.
type RankedResult struct {
	Entries []RankedEntry `json:"entries" yaml:"entries"`
}

// Documents returns the distinct document IDs in selection order.
func (r RankedResult) Documents() []string {
	seen := make(map[string]bool)
	var docs []string
	for _, e := range r.Entries {
		if !seen[e.DocumentID] {
			seen[e.DocumentID] = true
			docs = append(docs, e.DocumentID)
		}
	}
	return docs
}
