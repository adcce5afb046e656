// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package segment turns raw page text into labeled section candidates.
// Heading detection runs an ordered chain of pattern rules; pages without
// recognizable headings fall back to paragraph blocks, and every non-empty
// page yields at least one section.
package segment

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/kanishkapan/docintel/pkg/types"
)

const (
	// trailingLines is how many lines past the body cut are captured for
	// the excerpt refiner.
	trailingLines = 5

	// ellipsis marks a truncated body.
	ellipsis = "..."
)

var (
	hyphenBreakRe = regexp.MustCompile(`(\p{L})-\s*\n\s*(\p{L})`)
	blankRunRe    = regexp.MustCompile(`\n{3,}`)
	spaceRunRe    = regexp.MustCompile(`[ \t]+`)
)

// Normalize cleans raw page text: joins words hyphenated across line
// breaks, collapses repeated blank lines, and squeezes horizontal runs of
// whitespace within lines.
func Normalize(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = hyphenBreakRe.ReplaceAllString(text, "$1$2")
	text = spaceRunRe.ReplaceAllString(text, " ")
	text = blankRunRe.ReplaceAllString(text, "\n\n")

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// Page segments one page of a document into ordered section candidates.
// An empty page yields no sections; any page with text yields at least one.
func Page(docID string, page types.Page, cfg types.SegmentConfig) []types.Section {
	text := Normalize(page.Text)
	if text == "" {
		return nil
	}
	if cfg.MaxExcerptChars <= 0 {
		cfg.MaxExcerptChars = 2000
	}
	if cfg.MaxBodyLines <= 0 {
		cfg.MaxBodyLines = 40
	}

	lines := strings.Split(text, "\n")

	sections := headingSections(docID, page, lines, cfg)
	if len(sections) > 0 {
		return sections
	}

	sections = blockSections(docID, page, text, cfg)
	if len(sections) > 0 {
		return sections
	}

	return []types.Section{fallbackSection(docID, page, text, cfg)}
}

// headingSections builds sections from accepted heading lines. The body of
// each section runs to the next accepted heading, the line budget, or the
// end of the page, whichever comes first.
func headingSections(docID string, page types.Page, lines []string, cfg types.SegmentConfig) []types.Section {
	headingIdx := make([]int, 0, 8)
	for i, line := range lines {
		next := ""
		if i+1 < len(lines) {
			next = lines[i+1]
		}
		if IsHeading(line, next) {
			headingIdx = append(headingIdx, i)
		}
	}
	if len(headingIdx) == 0 {
		return nil
	}

	var sections []types.Section
	for h, idx := range headingIdx {
		end := len(lines)
		if h+1 < len(headingIdx) {
			end = headingIdx[h+1]
		}
		bodyEnd := idx + 1 + cfg.MaxBodyLines
		if bodyEnd > end {
			bodyEnd = end
		}

		body := strings.TrimSpace(strings.Join(lines[idx+1:bodyEnd], "\n"))

		// Trailing is only useful when the line budget cut the body short;
		// a body ended by the next heading has nothing of its own left.
		trailing := ""
		if bodyEnd < end {
			trailing = strings.TrimSpace(strings.Join(sliceLines(lines, bodyEnd, bodyEnd+trailingLines), "\n"))
		}

		body, clipped := clip(body, cfg.MaxExcerptChars)
		if clipped {
			trailing = ""
		}

		sections = append(sections, types.Section{
			DocumentID: docID,
			Page:       page.Number,
			Title:      strings.TrimSuffix(lines[idx], ":"),
			Body:       body,
			Trailing:   trailing,
			Type:       types.SectionHeading,
		})
	}
	return sections
}

// blockSections splits a heading-less page into paragraph blocks and keeps
// blocks whose first line looks like a short title.
func blockSections(docID string, page types.Page, text string, cfg types.SegmentConfig) []types.Section {
	blocks := strings.Split(text, "\n\n")
	var sections []types.Section

	for _, block := range blocks {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}
		blockLines := strings.Split(block, "\n")
		first := strings.TrimSpace(blockLines[0])
		if !isBlockTitle(first) || len(blockLines) < 2 {
			continue
		}

		body := strings.TrimSpace(strings.Join(blockLines[1:], "\n"))
		body, _ = clip(body, cfg.MaxExcerptChars)
		sections = append(sections, types.Section{
			DocumentID: docID,
			Page:       page.Number,
			Title:      first,
			Body:       body,
			Type:       types.SectionContentBlock,
		})
	}
	return sections
}

// fallbackSection synthesizes a whole-page section so pages with only
// tables, figures, or unstructured prose stay visible to ranking.
func fallbackSection(docID string, page types.Page, text string, cfg types.SegmentConfig) types.Section {
	var hints []string
	if page.HasTables {
		hints = append(hints, "Contains tabular data.")
	}
	if page.HasImages {
		hints = append(hints, "Contains figures or images.")
	}

	body := text
	if len(hints) > 0 {
		body = body + "\n" + strings.Join(hints, " ")
	}
	body, _ = clip(strings.TrimSpace(body), cfg.MaxExcerptChars)

	return types.Section{
		DocumentID: docID,
		Page:       page.Number,
		Title:      fmt.Sprintf("Document Page %d", page.Number),
		Body:       body,
		Type:       types.SectionFallback,
	}
}

// isBlockTitle reports whether a paragraph's first line can serve as its
// title: capitalized, at most 12 words, mostly alphabetic, and not ending
// in a sentence terminator.
func isBlockTitle(line string) bool {
	if len(line) < 3 || len(line) > 100 {
		return false
	}
	words := strings.Fields(line)
	if len(words) == 0 || len(words) > 12 {
		return false
	}
	if !startsUpper(line) {
		return false
	}
	if strings.HasSuffix(line, ".") || strings.HasSuffix(line, "!") {
		return false
	}

	alpha := 0
	for _, r := range line {
		if isLetter(r) || r == ' ' {
			alpha++
		}
	}
	return float64(alpha) >= 0.7*float64(len([]rune(line)))
}

// clip bounds text to max bytes, cutting at a word boundary and appending
// an ellipsis marker. It reports whether truncation happened.
func clip(text string, max int) (string, bool) {
	if len(text) <= max {
		return text, false
	}
	if max <= len(ellipsis) {
		return strings.TrimSpace(text[:max]), true
	}
	cut := text[:max-len(ellipsis)]
	if idx := strings.LastIndexAny(cut, " \n"); idx > 0 {
		cut = cut[:idx]
	}
	return strings.TrimSpace(cut) + ellipsis, true
}

func sliceLines(lines []string, from, to int) []string {
	if from >= len(lines) {
		return nil
	}
	if to > len(lines) {
		to = len(lines)
	}
	return lines[from:to]
}
