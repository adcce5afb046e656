// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package persona

import (
	"regexp"
	"sort"
	"strings"

	"github.com/kanishkapan/docintel/pkg/types"
)

var wordRe = regexp.MustCompile(`\p{L}{3,}`)

// stopWords filters function words out of keyword extraction.
var stopWords = map[string]bool{
	"the": true, "and": true, "are": true, "but": true, "for": true,
	"not": true, "with": true, "from": true, "into": true, "that": true,
	"this": true, "these": true, "those": true, "was": true, "were": true,
	"been": true, "have": true, "has": true, "had": true, "will": true,
	"would": true, "could": true, "should": true, "may": true, "might": true,
	"can": true, "must": true, "shall": true, "such": true, "very": true,
	"more": true, "most": true, "some": true, "any": true, "all": true,
	"each": true, "every": true, "other": true, "another": true, "same": true,
	"about": true, "over": true, "under": true, "between": true,
	"during": true, "before": true, "after": true, "their": true,
	"your": true, "our": true, "its": true, "also": true, "than": true,
	"then": true, "them": true, "they": true, "you": true, "who": true,
	"what": true, "which": true, "when": true, "where": true, "how": true,
}

// positionDecay controls how quickly position weighting fades. Terms that
// first appear early in the text carry more weight than late arrivals.
const positionDecay = 0.5

// ExtractKeywords tokenizes text and returns the strongest terms, weighted
// by frequency and first-occurrence position. The result is deterministic:
// equal-weight terms are ordered alphabetically. Callers may also supply
// their own pre-weighted lists to Build, bypassing extraction entirely.
func ExtractKeywords(text string, max int) []types.Keyword {
	if max <= 0 {
		max = 20
	}

	tokens := wordRe.FindAllString(strings.ToLower(text), -1)
	if len(tokens) == 0 {
		return nil
	}

	freq := make(map[string]int)
	firstPos := make(map[string]int)
	kept := 0
	for _, tok := range tokens {
		if stopWords[tok] {
			continue
		}
		if _, seen := freq[tok]; !seen {
			firstPos[tok] = kept
		}
		freq[tok]++
		kept++
	}
	if len(freq) == 0 {
		return nil
	}

	keywords := make([]types.Keyword, 0, len(freq))
	for term, f := range freq {
		pos := float64(firstPos[term]) / float64(kept)
		weight := float64(f) * (1.0 + positionDecay*(1.0-pos))
		keywords = append(keywords, types.Keyword{Term: term, Weight: weight})
	}

	sort.Slice(keywords, func(i, j int) bool {
		if keywords[i].Weight != keywords[j].Weight {
			return keywords[i].Weight > keywords[j].Weight
		}
		return keywords[i].Term < keywords[j].Term
	})

	if len(keywords) > max {
		keywords = keywords[:max]
	}
	return keywords
}

// Tokens returns the stop-word-filtered lowercase tokens of text. Shared
// with the ranker's keyword-set diversity measure.
func Tokens(text string) []string {
	raw := wordRe.FindAllString(strings.ToLower(text), -1)
	out := raw[:0]
	for _, tok := range raw {
		if !stopWords[tok] {
			out = append(out, tok)
		}
	}
	return out
}

// TokenSet returns Tokens as a set.
func TokenSet(text string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, tok := range Tokens(text) {
		set[tok] = struct{}{}
	}
	return set
}
