// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ingest loads input documents into per-page text with pluggable
// extraction backends. The analysis core never reads files itself; this
// package is the only boundary that touches the filesystem for inputs.
package ingest

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	pdflib "github.com/ledongthuc/pdf"

	"github.com/kanishkapan/docintel/pkg/types"
)

// Extractor pulls ordered per-page text from one document file. Different
// backends (native Go PDF parsing, pdftotext, plain text) implement this
// interface.
type Extractor interface {
	// Extract returns the document's pages in order.
	Extract(path string) ([]types.Page, error)
}

// BatchSummary holds the outcome of a batch load.
type BatchSummary struct {
	Loaded  int
	Skipped int
	Failed  int
}

// Total returns the total number of files processed.
func (s BatchSummary) Total() int {
	return s.Loaded + s.Skipped + s.Failed
}

// HasFailures reports whether any files failed to load.
func (s BatchSummary) HasFailures() bool {
	return s.Failed > 0
}

// LoadDocuments loads every supported file in dir, printing per-file
// status to w and returning the documents with a summary. Files that fail
// extraction or contain no text are reported and skipped, never fatal.
func LoadDocuments(dir string, cfg types.IngestConfig, w io.Writer) ([]types.Document, BatchSummary, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, BatchSummary{}, fmt.Errorf("reading documents dir: %w", err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if supported(e.Name()) {
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(paths)

	docs, summary := LoadPaths(paths, cfg, w)
	return docs, summary, nil
}

// LoadPaths loads an explicit list of files, capped at cfg.MaxDocuments.
func LoadPaths(paths []string, cfg types.IngestConfig, w io.Writer) ([]types.Document, BatchSummary) {
	if cfg.MaxDocuments > 0 && len(paths) > cfg.MaxDocuments {
		fmt.Fprintf(w, "limiting input to first %d of %d documents\n", cfg.MaxDocuments, len(paths))
		paths = paths[:cfg.MaxDocuments]
	}

	var (
		docs    []types.Document
		summary BatchSummary
	)
	for _, path := range paths {
		name := filepath.Base(path)
		pages, err := extract(path, cfg)
		if err != nil {
			fmt.Fprintf(w, "failed:  %s (%v)\n", name, err)
			summary.Failed++
			continue
		}
		if cfg.MaxPagesPerDoc > 0 && len(pages) > cfg.MaxPagesPerDoc {
			pages = pages[:cfg.MaxPagesPerDoc]
		}
		doc := types.Document{ID: name, Pages: pages}
		if doc.IsEmpty() {
			fmt.Fprintf(w, "skipped: %s (no text)\n", name)
			summary.Skipped++
			continue
		}
		fmt.Fprintf(w, "loaded:  %s (%d pages)\n", name, len(pages))
		summary.Loaded++
		docs = append(docs, doc)
	}

	fmt.Fprintf(w, "\nLoad summary: %d loaded, %d skipped, %d failed (total: %d)\n",
		summary.Loaded, summary.Skipped, summary.Failed, summary.Total())
	return docs, summary
}

func supported(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf", ".txt":
		return true
	}
	return false
}

// extract picks the backend by extension, falling back to pdftotext for
// PDFs when enabled and the native parser fails.
func extract(path string, cfg types.IngestConfig) ([]types.Page, error) {
	if strings.EqualFold(filepath.Ext(path), ".txt") {
		return TextExtractor{}.Extract(path)
	}
	pages, err := LibExtractor{}.Extract(path)
	if err != nil && cfg.PdftotextFallback {
		return PdftotextExtractor{}.Extract(path)
	}
	return pages, err
}

// LibExtractor parses PDFs with the pure-Go pdf library.
type LibExtractor struct{}

func (LibExtractor) Extract(path string) ([]types.Page, error) {
	f, reader, err := pdflib.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening pdf: %w", err)
	}
	defer f.Close()

	var pages []types.Page
	for i := 1; i <= reader.NumPage(); i++ {
		p := reader.Page(i)
		if p.V.IsNull() {
			continue
		}
		text, err := p.GetPlainText(nil)
		if err != nil {
			// Extraction failures on one page never abort the document.
			continue
		}
		pages = append(pages, types.Page{
			Number:    i,
			Text:      text,
			HasTables: DetectTables(text),
			HasImages: pageHasImages(p),
		})
	}
	return pages, nil
}

// pageHasImages checks the page's XObject resources for embedded images.
func pageHasImages(p pdflib.Page) bool {
	xobj := p.V.Key("Resources").Key("XObject")
	return !xobj.IsNull() && len(xobj.Keys()) > 0
}

// PdftotextExtractor shells out to the poppler pdftotext tool, splitting
// its form-feed separated output into pages.
type PdftotextExtractor struct{}

func (PdftotextExtractor) Extract(path string) ([]types.Page, error) {
	out, err := exec.Command("pdftotext", "-layout", path, "-").Output()
	if err != nil {
		return nil, fmt.Errorf("pdftotext: %w", err)
	}
	return splitPages(string(out)), nil
}

// TextExtractor reads plain-text files, treating form feeds as page
// separators. A file without form feeds is a single page.
type TextExtractor struct{}

func (TextExtractor) Extract(path string) ([]types.Page, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading text file: %w", err)
	}
	return splitPages(string(data)), nil
}

func splitPages(text string) []types.Page {
	var pages []types.Page
	for i, chunk := range strings.Split(text, "\f") {
		if strings.TrimSpace(chunk) == "" {
			continue
		}
		pages = append(pages, types.Page{
			Number:    i + 1,
			Text:      chunk,
			HasTables: DetectTables(chunk),
		})
	}
	return pages
}

// DetectTables is a layout heuristic: a page with several lines of mostly
// numeric, multi-column cells is flagged as tabular.
func DetectTables(text string) bool {
	tabular := 0
	for _, line := range strings.Split(text, "\n") {
		cells := strings.Fields(line)
		if len(cells) < 3 {
			continue
		}
		numeric := 0
		for _, c := range cells {
			if isNumericCell(c) {
				numeric++
			}
		}
		if numeric*2 >= len(cells) {
			tabular++
		}
	}
	return tabular >= 3
}

func isNumericCell(cell string) bool {
	cell = strings.Trim(cell, "$%(),.")
	if cell == "" {
		return false
	}
	for _, r := range cell {
		if (r < '0' || r > '9') && r != '.' && r != ',' && r != '-' {
			return false
		}
	}
	return true
}
