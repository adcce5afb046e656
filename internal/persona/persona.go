// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package persona interprets a free-text role and job-to-be-done into a
// structured scoring context: weighted keywords, priority topics, a job
// intent, and a coarse expertise domain. Interpretation is a pure function
// of its inputs; identical (role, job) strings always yield the same
// context.
package persona

import (
	"sort"
	"strings"

	"github.com/kanishkapan/docintel/pkg/types"
)

const (
	// maxKeywords bounds the merged keyword set so scoring cost stays flat.
	maxKeywords = 20

	// maxTopics bounds the priority-topic list.
	maxTopics = 8

	// roleBoost biases merged weights toward role terms. Role vocabulary is
	// stable identity; job vocabulary is task-specific.
	roleBoost = 1.5
)

// Interpret derives a PersonaContext from the role and job strings.
// Empty or whitespace-only inputs yield an empty keyword set, never an
// error.
func Interpret(role, job string) types.PersonaContext {
	roleKW := ExtractKeywords(role, maxKeywords)
	jobKW := ExtractKeywords(job, maxKeywords)
	return Build(role, job, roleKW, jobKW)
}

// Build assembles a PersonaContext from pre-extracted keyword lists. It is
// the seam for callers that bring their own tokenization or weighting.
func Build(role, job string, roleKW, jobKW []types.Keyword) types.PersonaContext {
	return types.PersonaContext{
		Role:           role,
		Job:            job,
		Keywords:       mergeKeywords(roleKW, jobKW),
		PriorityTopics: priorityTopics(jobKW),
		Intent:         classifyIntent(job),
		Domain:         classifyDomain(role),
	}
}

// mergeKeywords combines role and job keywords into one capped, weighted
// set. Role terms are boosted; a term present in both lists keeps the sum
// of its contributions.
func mergeKeywords(roleKW, jobKW []types.Keyword) []types.Keyword {
	weights := make(map[string]float64)
	for _, k := range roleKW {
		weights[k.Term] += k.Weight * roleBoost
	}
	for _, k := range jobKW {
		weights[k.Term] += k.Weight
	}
	if len(weights) == 0 {
		return nil
	}

	merged := make([]types.Keyword, 0, len(weights))
	for term, w := range weights {
		merged = append(merged, types.Keyword{Term: term, Weight: w})
	}
	sort.Slice(merged, func(i, j int) bool {
		if merged[i].Weight != merged[j].Weight {
			return merged[i].Weight > merged[j].Weight
		}
		return merged[i].Term < merged[j].Term
	})
	if len(merged) > maxKeywords {
		merged = merged[:maxKeywords]
	}
	return merged
}

// topicExpansions maps common task vocabulary to related surface terms, so
// a topic is covered by any of its lexical variants rather than only the
// exact keyword. The table is generic task language, not industry terms.
var topicExpansions = map[string][]string{
	"methodology":    {"methodology", "method", "approach", "procedure", "technique"},
	"methodologies":  {"methodology", "method", "approach", "procedure", "technique"},
	"method":         {"method", "methodology", "approach", "procedure"},
	"methods":        {"method", "methodology", "approach", "procedure"},
	"dataset":        {"dataset", "data", "corpus", "benchmark", "samples"},
	"datasets":       {"dataset", "data", "corpus", "benchmark", "samples"},
	"data":           {"data", "dataset", "statistics", "measurements"},
	"performance":    {"performance", "benchmark", "evaluation", "accuracy", "results"},
	"benchmarks":     {"benchmark", "performance", "evaluation", "baseline"},
	"benchmark":      {"benchmark", "performance", "evaluation", "baseline"},
	"results":        {"results", "findings", "outcomes", "performance"},
	"review":         {"review", "survey", "literature", "overview"},
	"literature":     {"literature", "review", "survey", "related work"},
	"analysis":       {"analysis", "evaluation", "assessment", "examination"},
	"comparison":     {"comparison", "versus", "contrast", "difference"},
	"summary":        {"summary", "overview", "abstract", "synopsis"},
	"revenue":        {"revenue", "income", "earnings", "sales"},
	"strategy":       {"strategy", "plan", "roadmap", "approach"},
	"trends":         {"trends", "growth", "trajectory", "outlook"},
	"implementation": {"implementation", "deployment", "integration", "setup"},
	"architecture":   {"architecture", "design", "structure", "components"},
	"requirements":   {"requirements", "specification", "criteria", "constraints"},
	"concepts":       {"concepts", "principles", "theory", "fundamentals"},
	"examples":       {"examples", "exercises", "practice", "illustrations"},
}

// priorityTopics derives themes from the strongest job keywords. Each topic
// carries its associated terms; coverage scoring checks for any of them.
func priorityTopics(jobKW []types.Keyword) []types.Topic {
	var topics []types.Topic
	for _, k := range jobKW {
		if len(topics) == maxTopics {
			break
		}
		terms, ok := topicExpansions[k.Term]
		if !ok {
			terms = []string{k.Term}
		}
		topics = append(topics, types.Topic{Name: k.Term, Terms: terms})
	}
	return topics
}

// intentSignals maps each job intent to its trigger phrases. Longer,
// more specific phrases are listed first within each group; groups are
// checked in a fixed order so classification is deterministic.
var intentSignals = []struct {
	intent  types.JobIntent
	phrases []string
}{
	{types.IntentComprehensiveReview, []string{
		"comprehensive", "literature review", "thorough", "complete review",
		"detailed review", "in-depth",
	}},
	{types.IntentComparison, []string{
		"compare", "comparison", "versus", "contrast", "difference between",
	}},
	{types.IntentSummary, []string{
		"summarize", "summarise", "summary", "overview", "brief", "key points",
	}},
	{types.IntentExtraction, []string{
		"extract", "identify key", "identify the", "locate", "list all", "find all",
	}},
}

// classifyIntent matches the job text against intent signal groups,
// defaulting to IntentOther when nothing matches.
func classifyIntent(job string) types.JobIntent {
	lower := strings.ToLower(job)
	for _, group := range intentSignals {
		for _, phrase := range group.phrases {
			if strings.Contains(lower, phrase) {
				return group.intent
			}
		}
	}
	return types.IntentOther
}

// domainSignals maps each expertise bucket to role vocabulary. The buckets
// are a closed enumeration; anything unmatched is DomainOther.
var domainSignals = []struct {
	domain types.DomainBucket
	words  []string
}{
	{types.DomainResearch, []string{
		"researcher", "research", "phd", "scientist", "postdoc", "academic",
		"scientific", "biology", "chemistry", "physics", "clinical",
	}},
	{types.DomainTechnical, []string{
		"engineer", "developer", "architect", "technical", "software",
		"devops", "programmer", "computational",
	}},
	{types.DomainBusiness, []string{
		"analyst", "manager", "executive", "consultant", "investment",
		"business", "financial", "marketing", "sales", "entrepreneur",
	}},
	{types.DomainEducation, []string{
		"student", "teacher", "professor", "instructor", "undergraduate",
		"graduate", "lecturer", "tutor", "learner",
	}},
}

// classifyDomain assigns the bucket with the most role-word hits, checked
// in a fixed order so ties resolve deterministically. Matching is on whole
// words, so "undergraduate" never counts as "graduate". Education status
// vocabulary only decides the bucket when no subject group matched: a
// chemistry student classifies as research, not education.
func classifyDomain(role string) types.DomainBucket {
	words := make(map[string]bool)
	for _, w := range wordRe.FindAllString(strings.ToLower(role), -1) {
		words[w] = true
	}

	best := types.DomainOther
	bestHits := 0
	for _, group := range domainSignals {
		if group.domain == types.DomainEducation && bestHits > 0 {
			break
		}
		hits := 0
		for _, w := range group.words {
			if words[w] {
				hits++
			}
		}
		if hits > bestHits {
			bestHits = hits
			best = group.domain
		}
	}
	return best
}
