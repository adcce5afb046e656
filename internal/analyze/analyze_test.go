// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package analyze

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/kanishkapan/docintel/pkg/types"
)

func doc(id string, pageTexts ...string) types.Document {
	d := types.Document{ID: id}
	for i, text := range pageTexts {
		d.Pages = append(d.Pages, types.Page{Number: i + 1, Text: text})
	}
	return d
}

func TestRunInvalidConfig(t *testing.T) {
	cfg := types.DefaultAnalysisConfig()
	cfg.Scoring.KeywordWeight = 0.9

	var buf bytes.Buffer
	_, err := Run(context.Background(), []types.Document{doc("a.txt", "text")}, "role", "job", cfg, &buf)
	if err == nil || !strings.Contains(err.Error(), "sum to 1.0") {
		t.Errorf("err = %v, want weight-sum rejection", err)
	}
}

func TestRunNoDocuments(t *testing.T) {
	var buf bytes.Buffer
	_, err := Run(context.Background(), nil, "role", "job", types.DefaultAnalysisConfig(), &buf)
	if err == nil {
		t.Error("expected error for empty document set")
	}
}

func TestRunEndToEnd(t *testing.T) {
	docs := []types.Document{
		doc("alpha.pdf",
			"Revenue Overview\nRevenue grew strongly across all regions this year with double digit gains.\nMarket Position\nThe company holds the leading market share in two segments of the industry."),
		doc("beta.pdf",
			"Risk Factors\nSupply concentration and currency exposure remain the primary risks going forward."),
	}

	var buf bytes.Buffer
	out, err := Run(context.Background(), docs, "Investment Analyst",
		"Analyze revenue trends and risk factors", types.DefaultAnalysisConfig(), &buf)
	if err != nil {
		t.Fatal(err)
	}
	if out.Summary.Analyzed != 2 {
		t.Errorf("Analyzed = %d, want 2", out.Summary.Analyzed)
	}
	if len(out.Result.Entries) == 0 || len(out.Result.Entries) > 5 {
		t.Fatalf("got %d entries, want 1..5", len(out.Result.Entries))
	}
	for i, e := range out.Result.Entries {
		if e.ImportanceRank != i+1 {
			t.Errorf("entry %d has rank %d", i, e.ImportanceRank)
		}
		if e.RefinedText == "" {
			t.Errorf("entry %d has no refined text", i)
		}
	}
	if out.Stats.Documents != 2 || out.Stats.Sections == 0 {
		t.Errorf("stats = %+v", out.Stats)
	}
	output := buf.String()
	for _, want := range []string{"analyzed: alpha.pdf", "analyzed: beta.pdf", "Analysis summary:"} {
		if !strings.Contains(output, want) {
			t.Errorf("progress output missing %q:\n%s", want, output)
		}
	}
}

func TestRunSkipsEmptyDocuments(t *testing.T) {
	docs := []types.Document{
		doc("empty.pdf", ""),
		doc("real.pdf", "Findings\nThe measurements confirm the expected behavior across all trials."),
	}

	var buf bytes.Buffer
	out, err := Run(context.Background(), docs, "Researcher", "Summarize findings",
		types.DefaultAnalysisConfig(), &buf)
	if err != nil {
		t.Fatal(err)
	}
	if out.Summary.Skipped != 1 || out.Summary.Analyzed != 1 {
		t.Errorf("summary = %+v, want 1 skipped, 1 analyzed", out.Summary)
	}
	if !strings.Contains(buf.String(), "skipped: empty.pdf") {
		t.Errorf("missing skip notice:\n%s", buf.String())
	}
}

func TestRunCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	docs := []types.Document{
		doc("a.pdf", "Some content on the only page of this document."),
		doc("b.pdf", "More content on the only page of this document."),
	}
	var buf bytes.Buffer
	out, err := Run(ctx, docs, "role", "job", types.DefaultAnalysisConfig(), &buf)
	if err != nil {
		t.Fatalf("partial results must not be an error, got %v", err)
	}
	if out.Summary.Skipped != 2 || out.Summary.Analyzed != 0 {
		t.Errorf("summary = %+v, want everything skipped", out.Summary)
	}
	if len(out.Result.Entries) != 0 {
		t.Errorf("got %d entries, want none", len(out.Result.Entries))
	}
	if !strings.Contains(buf.String(), "deadline reached") {
		t.Errorf("missing deadline notice:\n%s", buf.String())
	}
}

func TestRunDeterministic(t *testing.T) {
	docs := []types.Document{
		doc("one.pdf", "Methods\nThe method relies on a staged evaluation of every candidate model."),
		doc("two.pdf", "Methods\nThe method relies on a staged evaluation of every candidate model."),
		doc("three.pdf", "Methods\nThe method relies on a staged evaluation of every candidate model."),
	}
	var first types.RankedResult
	for i := 0; i < 5; i++ {
		var buf bytes.Buffer
		out, err := Run(context.Background(), docs, "Researcher",
			"Review the methods", types.DefaultAnalysisConfig(), &buf)
		if err != nil {
			t.Fatal(err)
		}
		if i == 0 {
			first = out.Result
			continue
		}
		if len(out.Result.Entries) != len(first.Entries) {
			t.Fatalf("run %d selected %d entries, first run %d", i, len(out.Result.Entries), len(first.Entries))
		}
		for j := range first.Entries {
			if out.Result.Entries[j].DocumentID != first.Entries[j].DocumentID ||
				out.Result.Entries[j].Title != first.Entries[j].Title {
				t.Fatalf("run %d entry %d differs: %s/%s vs %s/%s", i, j,
					out.Result.Entries[j].DocumentID, out.Result.Entries[j].Title,
					first.Entries[j].DocumentID, first.Entries[j].Title)
			}
		}
	}
}

func TestRunLiteratureReviewScenario(t *testing.T) {
	extras := []string{"genome sequencing", "protein folding", "cell imaging", "tissue modeling"}
	var docs []types.Document
	for i, extra := range extras {
		text := fmt.Sprintf(
			"Methodology\nWe describe the experimental method and dataset used for %s in this study.\nRelated Work\nPrior studies have examined similar approaches to %s in this problem domain.",
			extra, extra)
		docs = append(docs, doc(fmt.Sprintf("paper%d.pdf", i+1), text))
	}

	var buf bytes.Buffer
	out, err := Run(context.Background(), docs, "PhD Researcher in Computational Biology",
		"Prepare a comprehensive literature review focusing on methodologies, datasets, and performance benchmarks",
		types.DefaultAnalysisConfig(), &buf)
	if err != nil {
		t.Fatal(err)
	}

	if out.Persona.Intent != types.IntentComprehensiveReview {
		t.Errorf("Intent = %q, want %q", out.Persona.Intent, types.IntentComprehensiveReview)
	}
	if len(out.Result.Entries) != 5 {
		t.Fatalf("got %d entries, want 5", len(out.Result.Entries))
	}

	methodologyDocs := make(map[string]bool)
	for _, e := range out.Result.Entries {
		if strings.Contains(e.Title, "Methodolog") {
			methodologyDocs[e.DocumentID] = true
		}
	}
	if len(methodologyDocs) < 3 {
		t.Errorf("methodology sections from %d documents, want at least 3", len(methodologyDocs))
	}
}
