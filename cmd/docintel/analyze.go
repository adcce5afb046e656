// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kanishkapan/docintel/internal/analyze"
	"github.com/kanishkapan/docintel/internal/archive"
	"github.com/kanishkapan/docintel/internal/ingest"
	"github.com/kanishkapan/docintel/internal/report"
	"github.com/kanishkapan/docintel/pkg/types"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Rank the most relevant document sections for a persona",
	Long: `Analyze loads PDF or plain-text documents, segments them into sections,
scores every section against the persona and its job to be done, and
prints the top-ranked sections with refined excerpts.

Inputs come either from flags (--documents with --persona and --job) or
from a saved job file (--job-file). Progress goes to stderr; the report
goes to stdout or --output.`,
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().String("documents", "", "directory of input documents (.pdf, .txt)")
	analyzeCmd.Flags().StringSlice("files", nil, "explicit input files (alternative to --documents)")
	analyzeCmd.Flags().String("job-file", "", "YAML job file describing persona, job, and documents")
	analyzeCmd.Flags().String("persona", "", "reader role, e.g. \"Investment Analyst\"")
	analyzeCmd.Flags().String("job", "", "job to be done, e.g. \"Analyze revenue trends\"")
	analyzeCmd.Flags().Int("max-results", 5, "number of sections to select")
	analyzeCmd.Flags().Float64("floor", 0.05, "minimum relevance score for eligibility")
	analyzeCmd.Flags().Int("per-doc-cap", 2, "soft cap of selections per document")
	analyzeCmd.Flags().Int("max-documents", 10, "maximum number of documents to load")
	analyzeCmd.Flags().Bool("pdftotext-fallback", false, "fall back to the pdftotext tool when PDF parsing fails")
	analyzeCmd.Flags().Bool("json", false, "write the report as JSON")
	analyzeCmd.Flags().Bool("yaml", false, "write the report as YAML")
	analyzeCmd.Flags().String("output", "", "write the report to a file instead of stdout")
	analyzeCmd.Flags().Bool("no-archive", false, "skip archiving this run")
	analyzeCmd.Flags().String("archive-dir", "archive", "directory for the run archive database")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	role, _ := cmd.Flags().GetString("persona")
	job, _ := cmd.Flags().GetString("job")
	docsDir, _ := cmd.Flags().GetString("documents")
	files, _ := cmd.Flags().GetStringSlice("files")

	cfg := types.DefaultAnalysisConfig()
	cfg.Selection.MaxResults = viper.GetInt("max-results")
	cfg.Selection.RelevanceFloor = viper.GetFloat64("floor")
	cfg.Selection.PerDocumentCap = viper.GetInt("per-doc-cap")

	ingestCfg := types.IngestConfig{MaxPagesPerDoc: 50}
	ingestCfg.MaxDocuments = viper.GetInt("max-documents")
	ingestCfg.PdftotextFallback = viper.GetBool("pdftotext-fallback")

	if jobPath, _ := cmd.Flags().GetString("job-file"); jobPath != "" {
		jf, err := ingest.ReadJobFile(jobPath)
		if err != nil {
			return err
		}
		if err := jf.Validate(); err != nil {
			return err
		}
		role = jf.Persona.Role
		job = jf.Job.Task
		docsDir = jf.Documents.Dir
		files = jf.Documents.Files
		jf.Options.Apply(&cfg)
	}

	if docsDir == "" && len(files) == 0 {
		return fmt.Errorf("no input documents: provide --documents, --files, or --job-file")
	}
	if docsDir != "" && len(files) > 0 {
		return fmt.Errorf("provide either --documents or --files, not both")
	}

	var (
		docs    []types.Document
		summary ingest.BatchSummary
		err     error
	)
	if docsDir != "" {
		docs, summary, err = ingest.LoadDocuments(docsDir, ingestCfg, os.Stderr)
		if err != nil {
			return err
		}
	} else {
		docs, summary = ingest.LoadPaths(files, ingestCfg, os.Stderr)
	}
	if summary.Loaded == 0 {
		return fmt.Errorf("no readable documents among %d input file(s)", summary.Total())
	}

	out, err := analyze.Run(context.Background(), docs, role, job, cfg, os.Stderr)
	if err != nil {
		return err
	}

	inputDocs := make([]string, len(docs))
	for i, d := range docs {
		inputDocs[i] = d.ID
	}
	rep := report.Build(out.Result, inputDocs, role, job)
	if err := rep.Validate(); err != nil {
		return err
	}

	if err := writeReport(rep); err != nil {
		return err
	}

	if !viper.GetBool("no-archive") {
		dir := viper.GetString("archive-dir")
		if err := archiveRun(dir, role, job, len(docs), out.Result); err != nil {
			// Archiving is best-effort; the report already went out.
			fmt.Fprintf(os.Stderr, "warning: archiving failed: %v\n", err)
		}
	}
	return nil
}

func writeReport(rep report.Report) error {
	w := os.Stdout
	if path := viper.GetString("output"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	switch {
	case viper.GetBool("json"):
		return report.WriteJSON(rep, w)
	case viper.GetBool("yaml"):
		return report.WriteYAML(rep, w)
	default:
		report.FormatTable(rep, w)
		return nil
	}
}

func archiveRun(dir, role, job string, documents int, result types.RankedResult) error {
	store, err := archive.Open(types.ArchiveConfig{Dir: dir})
	if err != nil {
		return err
	}
	defer store.Close()

	id, err := store.SaveRun(role, job, documents, result)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "archived run %d\n", id)
	return nil
}
