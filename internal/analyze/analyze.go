// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package analyze drives one end-to-end relevance run: interpret the
// persona, segment and score every document, select the top sections, and
// refine their excerpts. Segmentation and scoring fan out per document;
// selection runs single-threaded because each pick reshapes the scores of
// the remaining pool.
package analyze

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/kanishkapan/docintel/internal/persona"
	"github.com/kanishkapan/docintel/internal/rank"
	"github.com/kanishkapan/docintel/internal/refine"
	"github.com/kanishkapan/docintel/internal/score"
	"github.com/kanishkapan/docintel/internal/segment"
	"github.com/kanishkapan/docintel/pkg/types"
)

// BatchSummary holds per-document outcomes for one run.
type BatchSummary struct {
	Analyzed int
	Skipped  int
	Failed   int
}

// Total returns the total number of documents processed.
func (s BatchSummary) Total() int {
	return s.Analyzed + s.Skipped + s.Failed
}

// HasFailures reports whether any document failed analysis.
func (s BatchSummary) HasFailures() bool {
	return s.Failed > 0
}

// RunStats summarizes the pipeline volumes for one run.
type RunStats struct {
	Documents int
	Pages     int
	Sections  int
	Selected  int
	TopScore  float64
	MeanScore float64
}

// Output is the full result of one analysis run.
type Output struct {
	Persona types.PersonaContext
	Result  types.RankedResult
	Summary BatchSummary
	Stats   RunStats
}

// Run executes the pipeline over docs for the given persona. A canceled or
// expired ctx stops launching new documents; whatever was already scored
// still flows through selection, so partial results are valid output. Per-
// document progress is written to w.
func Run(ctx context.Context, docs []types.Document, role, job string, cfg types.AnalysisConfig, w io.Writer) (Output, error) {
	if err := cfg.Validate(); err != nil {
		return Output{}, fmt.Errorf("invalid analysis config: %w", err)
	}
	if len(docs) == 0 {
		return Output{}, fmt.Errorf("no documents to analyze")
	}

	pctx := persona.Interpret(role, job)

	type docResult struct {
		idx      int
		scored   []types.ScoredSection
		pages    int
		sections int
	}

	ch := make(chan docResult, len(docs))
	var wg sync.WaitGroup
	var summary BatchSummary

	for i, doc := range docs {
		if ctx.Err() != nil {
			remaining := 0
			for _, d := range docs[i:] {
				if !d.IsEmpty() {
					remaining++
				}
			}
			fmt.Fprintf(w, "warning: deadline reached, skipping %d remaining documents\n", remaining)
			summary.Skipped += remaining
			break
		}
		if doc.IsEmpty() {
			fmt.Fprintf(w, "skipped: %s (no text)\n", doc.ID)
			summary.Skipped++
			continue
		}
		wg.Add(1)
		go func(idx int, doc types.Document) {
			defer wg.Done()
			scored, pages := scoreDocument(doc, pctx, cfg)
			ch <- docResult{idx: idx, scored: scored, pages: pages, sections: len(scored)}
		}(i, doc)
	}

	go func() {
		wg.Wait()
		close(ch)
	}()

	// Reassemble in document input order so selection tie-breaks stay
	// deterministic regardless of goroutine completion order.
	perDoc := make([]*docResult, len(docs))
	for dr := range ch {
		dr := dr
		perDoc[dr.idx] = &dr
	}

	var (
		scoredAll []types.ScoredSection
		stats     RunStats
	)
	for _, dr := range perDoc {
		if dr == nil {
			continue
		}
		fmt.Fprintf(w, "analyzed: %s (%d pages, %d sections)\n", docs[dr.idx].ID, dr.pages, dr.sections)
		summary.Analyzed++
		stats.Documents++
		stats.Pages += dr.pages
		stats.Sections += dr.sections
		scoredAll = append(scoredAll, dr.scored...)
	}

	result := rank.Select(scoredAll, pctx, cfg.Selection)
	for i := range result.Entries {
		result.Entries[i].RefinedText = refine.Excerpt(result.Entries[i].Section, cfg.Refine)
	}

	stats.Selected = len(result.Entries)
	for _, e := range result.Entries {
		if e.Relevance > stats.TopScore {
			stats.TopScore = e.Relevance
		}
		stats.MeanScore += e.Relevance
	}
	if stats.Selected > 0 {
		stats.MeanScore /= float64(stats.Selected)
	}

	fmt.Fprintf(w, "\nAnalysis summary: %d analyzed, %d skipped, %d failed; %d sections selected\n",
		summary.Analyzed, summary.Skipped, summary.Failed, stats.Selected)

	return Output{
		Persona: pctx,
		Result:  result,
		Summary: summary,
		Stats:   stats,
	}, nil
}

// scoreDocument segments and scores one document. Pure per-document work;
// safe to run concurrently across documents.
func scoreDocument(doc types.Document, pctx types.PersonaContext, cfg types.AnalysisConfig) ([]types.ScoredSection, int) {
	var scored []types.ScoredSection
	pages := 0
	for _, page := range doc.Pages {
		sections := segment.Page(doc.ID, page, cfg.Segment)
		if page.Text != "" {
			pages++
		}
		for _, sec := range sections {
			scored = append(scored, score.Score(sec, pctx, cfg.Scoring))
		}
	}
	return scored, pages
}
