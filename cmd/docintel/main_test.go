// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/kanishkapan/docintel/internal/report"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func runAnalyzeCommand(t *testing.T, args []string, outPath string) report.Report {
	t.Helper()
	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("execute %v: %v", args, err)
	}
	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatal(err)
	}
	var rep report.Report
	if err := json.Unmarshal(data, &rep); err != nil {
		t.Fatalf("decoding report: %v", err)
	}
	return rep
}

func TestAnalyzeConfigFileBacksFlags(t *testing.T) {
	dir := t.TempDir()
	docsDir := filepath.Join(dir, "docs")
	if err := os.Mkdir(docsDir, 0o755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, filepath.Join(docsDir, "annual.txt"),
		"Revenue Overview\n"+
			"Revenue grew strongly across all regions this year with double digit gains.\n\n"+
			"Market Position\n"+
			"The company expanded its market position with new product launches worldwide.\n")

	cfgPath := filepath.Join(dir, "docintel.yaml")
	writeFile(t, cfgPath, "max-results: 1\n")

	outPath := filepath.Join(dir, "report.json")
	base := []string{
		"analyze",
		"--config", cfgPath,
		"--documents", docsDir,
		"--persona", "Investment Analyst",
		"--job", "Analyze revenue trends",
		"--no-archive", "--json",
		"--output", outPath,
	}

	// The config file backs a flag left at its default.
	rep := runAnalyzeCommand(t, base, outPath)
	if len(rep.ExtractedSections) != 1 {
		t.Fatalf("len(ExtractedSections) = %d, want 1 from config file", len(rep.ExtractedSections))
	}

	// An explicitly set flag wins over the config file.
	rep = runAnalyzeCommand(t, append(base, "--max-results", "2"), outPath)
	if len(rep.ExtractedSections) != 2 {
		t.Fatalf("len(ExtractedSections) = %d, want 2 from flag override", len(rep.ExtractedSections))
	}
}
