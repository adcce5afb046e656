// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package segment

import (
	"regexp"
	"strings"
	"unicode"
)

// acceptThreshold is the quality score a candidate line must reach,
// including context bonuses, to be accepted as a heading.
const acceptThreshold = 0.7

// headingRule is one pattern in the ordered detection chain. Rules are
// pure: score returns the rule's base confidence and whether the line
// matches at all. The first matching rule wins.
type headingRule struct {
	name  string
	score func(line string) (float64, bool)
}

var (
	numberedRe  = regexp.MustCompile(`^\d+(\.\d+)*\.?\s+\p{Lu}`)
	romanRe     = regexp.MustCompile(`^[IVXLC]+\.\s+\p{Lu}`)
	urlOrMailRe = regexp.MustCompile(`(https?://|www\.|\S+@\S+\.\S+)`)
)

// headingRules is evaluated in order with early accept. Strong structural
// patterns come first; weaker lexical patterns rely on context bonuses.
var headingRules = []headingRule{
	{"numbered", func(line string) (float64, bool) {
		if numberedRe.MatchString(line) || romanRe.MatchString(line) {
			return 0.9, true
		}
		return 0, false
	}},
	{"all-caps", func(line string) (float64, bool) {
		if len(line) > 60 || strings.ToUpper(line) != line || !hasLetter(line) {
			return 0, false
		}
		if wordCount(line) > 8 {
			return 0, false
		}
		return 0.8, true
	}},
	{"how-to", func(line string) (float64, bool) {
		lower := strings.ToLower(line)
		if strings.HasPrefix(lower, "how to ") || strings.HasPrefix(lower, "to ") && wordCount(line) <= 8 {
			return 0.7, true
		}
		return 0, false
	}},
	{"colon-label", func(line string) (float64, bool) {
		if strings.HasSuffix(line, ":") && wordCount(line) <= 8 {
			return 0.7, true
		}
		return 0, false
	}},
	{"title-case", func(line string) (float64, bool) {
		words := strings.Fields(line)
		if len(words) < 2 || len(words) > 10 {
			return 0, false
		}
		capped := 0
		for _, w := range words {
			if startsUpper(w) {
				capped++
			}
		}
		if float64(capped) >= 0.7*float64(len(words)) {
			return 0.6, true
		}
		return 0, false
	}},
	{"capitalized-phrase", func(line string) (float64, bool) {
		if startsUpper(line) && wordCount(line) <= 12 {
			return 0.5, true
		}
		return 0, false
	}},
}

// contentIndicators are words whose presence in a candidate or the line
// after it raises confidence that the candidate labels real content.
var contentIndicators = []string{
	"overview", "introduction", "method", "methodology", "summary",
	"results", "conclusion", "analysis", "background", "discussion",
	"approach", "ingredients", "instructions", "procedure", "guide",
	"requirements", "features", "benefits",
}

// IsHeading decides whether a line is a section heading, given the line
// that follows it. A line passes only if it clears structural validity
// checks and its best matching rule plus context bonuses reach the accept
// threshold.
func IsHeading(line, next string) bool {
	line = strings.TrimSpace(line)
	if !validCandidate(line) {
		return false
	}

	for _, rule := range headingRules {
		base, ok := rule.score(line)
		if !ok {
			continue
		}
		return base+contextBonus(line, next) >= acceptThreshold
	}
	return false
}

// validCandidate applies the structural checks every heading must pass:
// sane length, actual letters, no URLs or emails, not a stop-word-only
// line, and no sentence terminator unless it is a question.
func validCandidate(line string) bool {
	if len(line) < 3 || len(line) > 100 {
		return false
	}
	if !hasLetter(line) {
		return false
	}
	if urlOrMailRe.MatchString(line) {
		return false
	}
	if strings.HasSuffix(line, ".") || strings.HasSuffix(line, "!") ||
		strings.HasSuffix(line, ",") || strings.HasSuffix(line, ";") {
		return false
	}
	return !allStopWords(line)
}

// contextBonus scores lexical cues on the candidate and its surroundings.
// Marginal rules only clear the threshold when bonuses are present.
func contextBonus(line, next string) float64 {
	var bonus float64

	lower := strings.ToLower(line)
	for _, ind := range contentIndicators {
		if strings.Contains(lower, ind) {
			bonus += 0.2
			break
		}
	}
	if next != "" && len(strings.TrimSpace(next)) > 20 {
		bonus += 0.1
	}
	if strings.HasSuffix(line, ":") {
		bonus += 0.1
	}
	if wordCount(line) <= 6 {
		bonus += 0.1
	}
	if startsUpper(line) {
		bonus += 0.05
	}
	return bonus
}

// allStopWords reports whether every word in the line is a stop word.
func allStopWords(line string) bool {
	words := strings.Fields(strings.ToLower(line))
	if len(words) == 0 {
		return true
	}
	for _, w := range words {
		w = strings.Trim(w, ":-–")
		if w == "" {
			continue
		}
		if !stopWords[w] {
			return false
		}
	}
	return true
}

// stopWords is the filter list shared by segmentation validity checks.
var stopWords = map[string]bool{
	"the": true, "and": true, "or": true, "but": true, "in": true,
	"on": true, "at": true, "to": true, "for": true, "of": true,
	"with": true, "by": true, "from": true, "a": true, "an": true,
	"is": true, "are": true, "was": true, "were": true, "be": true,
	"this": true, "that": true, "these": true, "those": true,
	"it": true, "its": true, "as": true, "so": true, "if": true,
}

func wordCount(s string) int {
	return len(strings.Fields(s))
}

func hasLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}

func startsUpper(s string) bool {
	for _, r := range s {
		return unicode.IsUpper(r)
	}
	return false
}

func isLetter(r rune) bool {
	return unicode.IsLetter(r)
}
