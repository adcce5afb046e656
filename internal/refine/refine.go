// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package refine produces the bounded excerpt for a selected section. It
// runs only on the final selection, never on the full candidate pool.
package refine

import (
	"regexp"
	"strings"

	"github.com/kanishkapan/docintel/pkg/types"
)

var (
	sentenceRe   = regexp.MustCompile(`[^.!?]+[.!?]+`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

const ellipsis = "..."

// Excerpt trims the section body to a coherent excerpt near
// cfg.TargetChars. Cuts land on the sentence boundary nearest the target;
// at least one full sentence is always kept, and the result never exceeds
// cfg.MaxChars or splits a word. Bodies shorter than cfg.MinChars are
// padded with the section's trailing page lines before trimming, so a
// terse section still yields an informative excerpt.
func Excerpt(sec types.Section, cfg types.RefineConfig) string {
	body := flatten(sec.Body)
	if len(body) < cfg.MinChars && sec.Trailing != "" {
		body = strings.TrimSpace(body + " " + flatten(sec.Trailing))
	}
	if body == "" {
		return ""
	}
	if len(body) <= cfg.TargetChars {
		return body
	}

	sentences := sentenceRe.FindAllString(body, -1)
	if rest := remainder(body, sentences); rest != "" {
		sentences = append(sentences, rest)
	}

	first := strings.TrimSpace(sentences[0])
	if len(first) > cfg.MaxChars {
		// A single runaway sentence; fall back to a word-boundary cut.
		return hardCut(first, cfg.MaxChars)
	}

	excerpt := nearestBoundary(sentences, cfg)
	if len(excerpt) > cfg.MaxChars {
		return hardCut(excerpt, cfg.MaxChars)
	}
	return excerpt
}

// flatten collapses all whitespace runs to single spaces so excerpts read
// as one continuous snippet.
func flatten(text string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(text, " "))
}

// remainder returns any trailing text after the last sentence terminator,
// so a body that ends mid-sentence is not silently dropped.
func remainder(body string, sentences []string) string {
	consumed := 0
	for _, s := range sentences {
		consumed += len(s)
	}
	return strings.TrimSpace(body[consumed:])
}

// nearestBoundary accumulates whole sentences and stops at the boundary
// closest to the target length, keeping at least the first sentence and
// never passing the hard maximum.
func nearestBoundary(sentences []string, cfg types.RefineConfig) string {
	var b strings.Builder
	b.WriteString(strings.TrimSpace(sentences[0]))

	for _, s := range sentences[1:] {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		extended := b.Len() + 1 + len(s)
		if extended > cfg.MaxChars {
			break
		}
		// Stop when the next sentence would land farther from the target
		// than the current boundary already is.
		if b.Len() >= cfg.TargetChars ||
			abs(extended-cfg.TargetChars) > abs(b.Len()-cfg.TargetChars) {
			break
		}
		b.WriteByte(' ')
		b.WriteString(s)
	}
	return b.String()
}

// hardCut truncates at the last word boundary that leaves room for the
// ellipsis marker, never splitting a word.
func hardCut(text string, maxChars int) string {
	limit := maxChars - len(ellipsis)
	if limit <= 0 || len(text) <= limit {
		return text
	}
	cut := strings.LastIndex(text[:limit], " ")
	if cut <= 0 {
		cut = limit
	}
	return strings.TrimRight(text[:cut], " ,;:") + ellipsis
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
