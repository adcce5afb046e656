// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ingest

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"

	"github.com/kanishkapan/docintel/pkg/types"
)

// JobFile is the on-disk description of one analysis job: who is reading,
// what they need, and which documents to read. A job can be saved once and
// re-run without repeating CLI flags.
type JobFile struct {
	Persona   PersonaSpec   `yaml:"persona"`
	Job       JobSpec       `yaml:"job"`
	Documents DocumentsSpec `yaml:"documents"`
	Options   OptionsSpec   `yaml:"options,omitempty"`
}

// PersonaSpec names the reader.
type PersonaSpec struct {
	Role string `yaml:"role"`
}

// JobSpec states the job to be done.
type JobSpec struct {
	Task string `yaml:"task"`
}

// DocumentsSpec points at the input documents, either a directory or an
// explicit file list.
type DocumentsSpec struct {
	Dir   string   `yaml:"dir,omitempty"`
	Files []string `yaml:"files,omitempty"`
}

// OptionsSpec carries optional selection overrides. Zero values leave the
// configured defaults untouched.
type OptionsSpec struct {
	MaxResults     int     `yaml:"max_results,omitempty"`
	RelevanceFloor float64 `yaml:"relevance_floor,omitempty"`
	PerDocumentCap int     `yaml:"per_document_cap,omitempty"`
}

// ReadJobFile loads a job description from disk.
func ReadJobFile(path string) (*JobFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading job file: %w", err)
	}
	var jf JobFile
	if err := yaml.Unmarshal(data, &jf); err != nil {
		return nil, fmt.Errorf("parsing job file: %w", err)
	}
	return &jf, nil
}

// WriteJobFile saves a job description to disk.
func WriteJobFile(path string, jf *JobFile) error {
	data, err := yaml.Marshal(jf)
	if err != nil {
		return fmt.Errorf("marshaling job file: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Validate rejects a job file with no document source. Empty persona or
// task strings are allowed; analysis handles them with an empty keyword
// set.
func (jf *JobFile) Validate() error {
	if jf.Documents.Dir == "" && len(jf.Documents.Files) == 0 {
		return fmt.Errorf("job file names no documents: set documents.dir or documents.files")
	}
	if jf.Documents.Dir != "" && len(jf.Documents.Files) > 0 {
		return fmt.Errorf("job file sets both documents.dir and documents.files")
	}
	return nil
}

// Apply copies the job file's non-zero options onto the analysis config.
func (o OptionsSpec) Apply(cfg *types.AnalysisConfig) {
	if o.MaxResults > 0 {
		cfg.Selection.MaxResults = o.MaxResults
	}
	if o.RelevanceFloor > 0 {
		cfg.Selection.RelevanceFloor = o.RelevanceFloor
	}
	if o.PerDocumentCap > 0 {
		cfg.Selection.PerDocumentCap = o.PerDocumentCap
	}
}
