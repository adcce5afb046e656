// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package score computes the composite relevance of a section against a
// persona context. Scoring is a pure function of (section, context,
// config); the same inputs always produce the same ScoredSection, so
// callers may score sections in any order or in parallel.
package score

import (
	"strings"

	"github.com/kanishkapan/docintel/pkg/types"
)

// bodyMatchWeight discounts keyword hits that appear only in the body.
// A keyword in the title is a stronger signal than one buried in prose.
const bodyMatchWeight = 0.6

// sectionTypeWeights reflects detection confidence: a recognized heading
// marks meaningful content more reliably than a synthesized page section.
var sectionTypeWeights = map[types.SectionType]float64{
	types.SectionHeading:      1.0,
	types.SectionContentBlock: 0.7,
	types.SectionFallback:     0.4,
}

// Score evaluates one section against the persona context. All sub-scores
// are clamped to [0,1] before weighting and the composite is clamped
// after, so the result is always in [0,1] for any valid config.
func Score(sec types.Section, ctx types.PersonaContext, cfg types.ScoringConfig) types.ScoredSection {
	title := strings.ToLower(sec.Title)
	body := strings.ToLower(sec.Body)
	category := detectCategory(title, body)

	sub := types.SubScores{
		Keyword:     clamp(keywordScore(title, body, ctx)),
		Topic:       clamp(topicScore(title, body, ctx.PriorityTopics)),
		Domain:      clamp(domainScore(category, ctx.Domain)),
		SectionType: clamp(sectionTypeWeights[sec.Type]),
	}

	composite := cfg.KeywordWeight*sub.Keyword +
		cfg.TopicWeight*sub.Topic +
		cfg.DomainWeight*sub.Domain +
		cfg.SectionTypeWeight*sub.SectionType

	return types.ScoredSection{
		Section:   sec,
		Relevance: clamp(composite),
		Sub:       sub,
		Category:  category,
	}
}

// keywordScore is the weight fraction of persona keywords found in the
// section, with body-only hits discounted. Title and body must already be
// lowercased.
func keywordScore(title, body string, ctx types.PersonaContext) float64 {
	total := ctx.TotalKeywordWeight()
	if total <= 0 {
		return 0
	}
	var matched float64
	for _, k := range ctx.Keywords {
		switch {
		case strings.Contains(title, k.Term):
			matched += k.Weight
		case strings.Contains(body, k.Term):
			matched += k.Weight * bodyMatchWeight
		}
	}
	return matched / total
}

// topicScore is the fraction of priority topics covered by the section. A
// topic counts as covered when any of its associated terms appears in the
// title or body. With no topics the sub-score is neutral rather than zero,
// so personas with sparse job text do not flatten every section's score.
func topicScore(title, body string, topics []types.Topic) float64 {
	if len(topics) == 0 {
		return 0.5
	}
	covered := 0
	for _, topic := range topics {
		for _, term := range topic.Terms {
			if strings.Contains(title, term) || strings.Contains(body, term) {
				covered++
				break
			}
		}
	}
	return float64(covered) / float64(len(topics))
}

// categoryPatterns drives content-category detection. The category with
// the most hits in the section text wins; no hits means CategoryGeneral.
var categoryPatterns = map[types.ContentCategory][]string{
	types.CategoryMethod: {
		"method", "approach", "algorithm", "procedure", "experiment",
		"protocol", "technique", "materials",
	},
	types.CategoryResult: {
		"result", "finding", "accuracy", "evaluation", "outcome",
		"observed", "measured", "benchmark",
	},
	types.CategoryFinancial: {
		"revenue", "profit", "earnings", "fiscal", "budget", "income",
		"expense", "margin", "quarter",
	},
	types.CategoryTechnical: {
		"architecture", "implementation", "configuration", "deployment",
		"interface", "infrastructure", "component", "module",
	},
	types.CategoryOverview: {
		"introduction", "overview", "summary", "abstract", "background",
		"conclusion",
	},
}

// categoryOrder fixes the tie-break order for category detection so equal
// hit counts resolve deterministically.
var categoryOrder = []types.ContentCategory{
	types.CategoryMethod,
	types.CategoryResult,
	types.CategoryFinancial,
	types.CategoryTechnical,
	types.CategoryOverview,
}

// detectCategory classifies the section's content by pattern hits over the
// lowercased title and body.
func detectCategory(title, body string) types.ContentCategory {
	text := title + " " + body
	best := types.CategoryGeneral
	bestHits := 0
	for _, cat := range categoryOrder {
		hits := 0
		for _, pat := range categoryPatterns[cat] {
			if strings.Contains(text, pat) {
				hits++
			}
		}
		if hits > bestHits {
			bestHits = hits
			best = cat
		}
	}
	return best
}

// domainAffinity grades how well each content category serves each
// expertise bucket. Unlisted combinations fall back to a neutral 0.5, as
// does DomainOther entirely.
var domainAffinity = map[types.DomainBucket]map[types.ContentCategory]float64{
	types.DomainResearch: {
		types.CategoryMethod:    1.0,
		types.CategoryResult:    0.9,
		types.CategoryOverview:  0.6,
		types.CategoryTechnical: 0.5,
		types.CategoryFinancial: 0.2,
		types.CategoryGeneral:   0.3,
	},
	types.DomainBusiness: {
		types.CategoryFinancial: 1.0,
		types.CategoryResult:    0.8,
		types.CategoryOverview:  0.7,
		types.CategoryTechnical: 0.4,
		types.CategoryMethod:    0.3,
		types.CategoryGeneral:   0.3,
	},
	types.DomainTechnical: {
		types.CategoryTechnical: 1.0,
		types.CategoryMethod:    0.7,
		types.CategoryResult:    0.6,
		types.CategoryOverview:  0.5,
		types.CategoryFinancial: 0.2,
		types.CategoryGeneral:   0.3,
	},
	types.DomainEducation: {
		types.CategoryOverview:  1.0,
		types.CategoryMethod:    0.7,
		types.CategoryResult:    0.5,
		types.CategoryTechnical: 0.5,
		types.CategoryFinancial: 0.3,
		types.CategoryGeneral:   0.4,
	},
}

func domainScore(category types.ContentCategory, domain types.DomainBucket) float64 {
	affinities, ok := domainAffinity[domain]
	if !ok {
		return 0.5
	}
	if a, ok := affinities[category]; ok {
		return a
	}
	return 0.5
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
