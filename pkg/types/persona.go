// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// DomainBucket is a coarse expertise classification derived from the
// persona role. The set is closed so scoring stays deterministic.
type DomainBucket string

const (
	DomainResearch  DomainBucket = "research"
	DomainBusiness  DomainBucket = "business"
	DomainTechnical DomainBucket = "technical"
	DomainEducation DomainBucket = "education"
	DomainOther     DomainBucket = "other"
)

// JobIntent categorizes what the job-to-be-done asks for.
type JobIntent string

const (
	IntentComprehensiveReview JobIntent = "comprehensive_review"
	IntentSummary             JobIntent = "summary"
	IntentComparison          JobIntent = "comparison"
	IntentExtraction          JobIntent = "extraction"
	IntentOther               JobIntent = "other"
)

// Keyword is a weighted scoring term. Weights are non-negative.
type Keyword struct {
	Term   string  `json:"term" yaml:"term"`
	Weight float64 `json:"weight" yaml:"weight"`
}

// Topic is a priority theme with its associated surface terms. A section
// covers the topic when any associated term appears in it.
type Topic struct {
	Name  string   `json:"name" yaml:"name"`
	Terms []string `json:"terms" yaml:"terms"`
}

// PersonaContext is the structured scoring context derived once per run
// from the free-text role and job strings. It is a pure function of its
// inputs: identical (role, job) pairs always produce identical contexts.
type PersonaContext struct {
	// Role is the original persona role string.
	Role string `json:"role" yaml:"role"`

	// Job is the original job-to-be-done string.
	Job string `json:"job" yaml:"job"`

	// Keywords is the merged, weighted keyword set, capped to bound
	// scoring cost. Role keywords carry higher weight than job keywords.
	Keywords []Keyword `json:"keywords" yaml:"keywords"`

	// PriorityTopics is a small ordered list of themes inferred from the
	// job text.
	PriorityTopics []Topic `json:"priority_topics" yaml:"priority_topics"`

	// Intent is the classified job intent.
	Intent JobIntent `json:"intent" yaml:"intent"`

	// Domain is the persona's expertise bucket.
	Domain DomainBucket `json:"domain" yaml:"domain"`
}

// TotalKeywordWeight returns the sum of all keyword weights.
func (c PersonaContext) TotalKeywordWeight() float64 {
	var total float64
	for _, k := range c.Keywords {
		total += k.Weight
	}
	return total
}
