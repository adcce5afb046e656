// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report assembles and serializes the final analysis output. The
// analysis core hands over a RankedResult; everything about field naming,
// timestamps, and formats lives here.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/kanishkapan/docintel/pkg/types"
)

// now is replaced in tests for a stable timestamp.
var now = time.Now

// Report is the terminal output artifact of one analysis run.
type Report struct {
	Metadata           Metadata     `json:"metadata" yaml:"metadata"`
	ExtractedSections  []Extracted  `json:"extracted_sections" yaml:"extracted_sections"`
	SubsectionAnalysis []Subsection `json:"subsection_analysis" yaml:"subsection_analysis"`
}

// Metadata records the run inputs and timestamp.
type Metadata struct {
	InputDocuments      []string `json:"input_documents" yaml:"input_documents"`
	Persona             string   `json:"persona" yaml:"persona"`
	JobToBeDone         string   `json:"job_to_be_done" yaml:"job_to_be_done"`
	ProcessingTimestamp string   `json:"processing_timestamp" yaml:"processing_timestamp"`
}

// Extracted is one ranked section reference.
type Extracted struct {
	Document       string `json:"document" yaml:"document"`
	SectionTitle   string `json:"section_title" yaml:"section_title"`
	PageNumber     int    `json:"page_number" yaml:"page_number"`
	ImportanceRank int    `json:"importance_rank" yaml:"importance_rank"`
}

// Subsection is one refined excerpt record.
type Subsection struct {
	Document    string `json:"document" yaml:"document"`
	RefinedText string `json:"refined_text" yaml:"refined_text"`
	PageNumber  int    `json:"page_number" yaml:"page_number"`
}

// Build assembles a Report from the ranked result. inputDocs lists every
// loaded document, including those that contributed no sections.
func Build(result types.RankedResult, inputDocs []string, role, job string) Report {
	rep := Report{
		Metadata: Metadata{
			InputDocuments:      inputDocs,
			Persona:             role,
			JobToBeDone:         job,
			ProcessingTimestamp: now().Format(time.RFC3339),
		},
	}
	for _, e := range result.Entries {
		rep.ExtractedSections = append(rep.ExtractedSections, Extracted{
			Document:       e.DocumentID,
			SectionTitle:   e.Title,
			PageNumber:     e.Page,
			ImportanceRank: e.ImportanceRank,
		})
		rep.SubsectionAnalysis = append(rep.SubsectionAnalysis, Subsection{
			Document:    e.DocumentID,
			RefinedText: e.RefinedText,
			PageNumber:  e.Page,
		})
	}
	return rep
}

// Validate checks internal consistency before the report is written.
func (r Report) Validate() error {
	if len(r.ExtractedSections) != len(r.SubsectionAnalysis) {
		return fmt.Errorf("section/analysis length mismatch: %d vs %d",
			len(r.ExtractedSections), len(r.SubsectionAnalysis))
	}
	for i, e := range r.ExtractedSections {
		if e.ImportanceRank != i+1 {
			return fmt.Errorf("entry %d has importance_rank %d", i, e.ImportanceRank)
		}
	}
	return nil
}

// WriteJSON writes the report as indented JSON to w.
func WriteJSON(r Report, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// WriteYAML writes the report as YAML to w.
func WriteYAML(r Report, w io.Writer) error {
	data, err := yaml.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}
	_, err = w.Write(data)
	return err
}

// FormatTable writes the report as a human-readable table to w.
func FormatTable(r Report, w io.Writer) {
	if len(r.ExtractedSections) == 0 {
		fmt.Fprintln(w, "No relevant sections found.")
		return
	}

	fmt.Fprintf(w, "%-4s  %-40s  %-4s  %s\n", "Rank", "Section", "Page", "Document")
	fmt.Fprintln(w, strings.Repeat("-", 90))
	for _, e := range r.ExtractedSections {
		fmt.Fprintf(w, "%-4d  %-40s  %-4d  %s\n",
			e.ImportanceRank, truncate(e.SectionTitle, 40), e.PageNumber, e.Document)
	}

	fmt.Fprintln(w)
	for i, s := range r.SubsectionAnalysis {
		fmt.Fprintf(w, "[%d] %s p.%d\n%s\n\n", i+1, s.Document, s.PageNumber, s.RefinedText)
	}
	fmt.Fprintf(w, "%d sections from %d documents\n",
		len(r.ExtractedSections), len(distinctDocs(r.ExtractedSections)))
}

func distinctDocs(entries []Extracted) map[string]bool {
	docs := make(map[string]bool)
	for _, e := range entries {
		docs[e.Document] = true
	}
	return docs
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
