// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ingest

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kanishkapan/docintel/pkg/types"
)

func writeTemp(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestTextExtractorPages(t *testing.T) {
	dir := t.TempDir()
	path := writeTemp(t, dir, "doc.txt", "page one text\fpage two text\fpage three text")

	pages, err := TextExtractor{}.Extract(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(pages) != 3 {
		t.Fatalf("got %d pages, want 3", len(pages))
	}
	for i, p := range pages {
		if p.Number != i+1 {
			t.Errorf("page %d numbered %d", i, p.Number)
		}
	}
	if pages[1].Text != "page two text" {
		t.Errorf("page 2 text = %q", pages[1].Text)
	}
}

func TestTextExtractorSinglePage(t *testing.T) {
	dir := t.TempDir()
	path := writeTemp(t, dir, "doc.txt", "no form feeds here")

	pages, err := TextExtractor{}.Extract(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(pages) != 1 || pages[0].Number != 1 {
		t.Errorf("got %d pages, want a single page 1", len(pages))
	}
}

func TestDetectTables(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{"prose", "This is an ordinary paragraph of text.\nIt continues on a second line.", false},
		{"numeric table", "Q1   120.5   130.2   141.0\nQ2   125.1   133.8   150.3\nQ3   129.9   140.2   155.7\nQ4   131.0   142.6   160.1", true},
		{"currency table", "North   $1,200   $1,350   $1,500\nSouth   $900   $1,050   $1,100\nWest   $1,400   $1,600   $1,750", true},
		{"two numeric lines only", "A   1   2   3\nB   4   5   6", false},
		{"empty", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectTables(tt.text); got != tt.want {
				t.Errorf("DetectTables = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLoadPaths(t *testing.T) {
	dir := t.TempDir()
	good := writeTemp(t, dir, "a.txt", "some real content on a page")
	empty := writeTemp(t, dir, "b.txt", "   \n  ")
	missing := filepath.Join(dir, "missing.txt")

	var buf bytes.Buffer
	docs, summary := LoadPaths([]string{good, empty, missing}, types.IngestConfig{}, &buf)

	if summary.Loaded != 1 || summary.Skipped != 1 || summary.Failed != 1 {
		t.Errorf("summary = %+v, want 1 loaded, 1 skipped, 1 failed", summary)
	}
	if summary.Total() != 3 {
		t.Errorf("Total = %d, want 3", summary.Total())
	}
	if !summary.HasFailures() {
		t.Error("HasFailures = false, want true")
	}
	if len(docs) != 1 || docs[0].ID != "a.txt" {
		t.Fatalf("docs = %v, want only a.txt", docs)
	}
	out := buf.String()
	for _, want := range []string{"loaded:", "skipped:", "failed:", "Load summary: 1 loaded, 1 skipped, 1 failed"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestLoadPathsDocumentCap(t *testing.T) {
	dir := t.TempDir()
	var paths []string
	for _, name := range []string{"a.txt", "b.txt", "c.txt"} {
		paths = append(paths, writeTemp(t, dir, name, "content for "+name))
	}

	var buf bytes.Buffer
	docs, _ := LoadPaths(paths, types.IngestConfig{MaxDocuments: 2}, &buf)
	if len(docs) != 2 {
		t.Errorf("got %d docs, want 2", len(docs))
	}
	if !strings.Contains(buf.String(), "limiting input to first 2 of 3") {
		t.Errorf("missing limit notice:\n%s", buf.String())
	}
}

func TestLoadPathsPageCap(t *testing.T) {
	dir := t.TempDir()
	path := writeTemp(t, dir, "long.txt", "one\ftwo\fthree\ffour")

	var buf bytes.Buffer
	docs, _ := LoadPaths([]string{path}, types.IngestConfig{MaxPagesPerDoc: 2}, &buf)
	if len(docs) != 1 {
		t.Fatalf("got %d docs, want 1", len(docs))
	}
	if len(docs[0].Pages) != 2 {
		t.Errorf("got %d pages, want capped at 2", len(docs[0].Pages))
	}
}

func TestLoadDocumentsDirectory(t *testing.T) {
	dir := t.TempDir()
	writeTemp(t, dir, "b.txt", "second document body")
	writeTemp(t, dir, "a.txt", "first document body")
	writeTemp(t, dir, "ignored.md", "not a supported format")

	var buf bytes.Buffer
	docs, summary, err := LoadDocuments(dir, types.IngestConfig{}, &buf)
	if err != nil {
		t.Fatal(err)
	}
	if summary.Loaded != 2 {
		t.Errorf("loaded = %d, want 2", summary.Loaded)
	}
	if len(docs) != 2 || docs[0].ID != "a.txt" || docs[1].ID != "b.txt" {
		t.Errorf("docs out of order: %v", docs)
	}
}

func TestJobFileRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "job.yaml")

	in := &JobFile{
		Persona:   PersonaSpec{Role: "Investment Analyst"},
		Job:       JobSpec{Task: "Analyze revenue trends across annual reports"},
		Documents: DocumentsSpec{Dir: "reports/"},
		Options:   OptionsSpec{MaxResults: 7},
	}
	if err := WriteJobFile(path, in); err != nil {
		t.Fatal(err)
	}
	out, err := ReadJobFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if out.Persona.Role != in.Persona.Role || out.Job.Task != in.Job.Task {
		t.Errorf("round trip changed persona/job: %+v", out)
	}
	if out.Documents.Dir != "reports/" || out.Options.MaxResults != 7 {
		t.Errorf("round trip changed documents/options: %+v", out)
	}
}

func TestJobFileValidate(t *testing.T) {
	tests := []struct {
		name    string
		jf      JobFile
		wantErr bool
	}{
		{"dir only", JobFile{Documents: DocumentsSpec{Dir: "docs/"}}, false},
		{"files only", JobFile{Documents: DocumentsSpec{Files: []string{"a.pdf"}}}, false},
		{"neither", JobFile{}, true},
		{"both", JobFile{Documents: DocumentsSpec{Dir: "docs/", Files: []string{"a.pdf"}}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.jf.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestOptionsApply(t *testing.T) {
	cfg := types.DefaultAnalysisConfig()
	OptionsSpec{MaxResults: 8, RelevanceFloor: 0.1}.Apply(&cfg)
	if cfg.Selection.MaxResults != 8 {
		t.Errorf("MaxResults = %d, want 8", cfg.Selection.MaxResults)
	}
	if cfg.Selection.RelevanceFloor != 0.1 {
		t.Errorf("RelevanceFloor = %v, want 0.1", cfg.Selection.RelevanceFloor)
	}
	if cfg.Selection.PerDocumentCap != 2 {
		t.Errorf("PerDocumentCap = %d, want default 2 untouched", cfg.Selection.PerDocumentCap)
	}
}
