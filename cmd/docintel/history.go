// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kanishkapan/docintel/internal/archive"
	"github.com/kanishkapan/docintel/pkg/types"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List and inspect archived analysis runs",
	Long: `History reads the local run archive written by analyze. Use list to see
past runs and show to print one run's ranked sections.`,
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List archived runs, newest first",
	RunE:  runHistoryList,
}

var historyShowCmd = &cobra.Command{
	Use:   "show [run-id]",
	Short: "Show one archived run's ranked sections",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

func init() {
	historyCmd.PersistentFlags().String("archive-dir", "archive", "directory of the run archive database")
	historyListCmd.Flags().Int("limit", 20, "maximum runs to list (0 for all)")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyShowCmd)
	rootCmd.AddCommand(historyCmd)
}

func openArchive() (*archive.Store, error) {
	return archive.Open(types.ArchiveConfig{Dir: viper.GetString("archive-dir")})
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	store, err := openArchive()
	if err != nil {
		return err
	}
	defer store.Close()

	limit := viper.GetInt("limit")
	runs, err := store.ListRuns(limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No archived runs.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-4s  %-20s  %-30s  %-40s  %-4s  %s\n",
		"ID", "When", "Persona", "Job", "Docs", "Selected")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 110))
	for _, r := range runs {
		fmt.Fprintf(os.Stdout, "%-4d  %-20s  %-30s  %-40s  %-4d  %d\n",
			r.ID, r.CreatedAt.Format("2006-01-02 15:04"),
			truncate(r.Role, 30), truncate(r.Job, 40), r.Documents, r.Selected)
	}
	return nil
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid run id %q", args[0])
	}

	store, err := openArchive()
	if err != nil {
		return err
	}
	defer store.Close()

	run, entries, err := store.GetRun(id)
	if err != nil {
		return err
	}

	fmt.Printf("Run %d (%s)\nPersona: %s\nJob:     %s\n\n",
		run.ID, run.CreatedAt.Format("2006-01-02 15:04"), run.Role, run.Job)
	for _, e := range entries {
		fmt.Printf("[%d] %s p.%d  %s (%.2f)\n%s\n\n",
			e.ImportanceRank, e.DocumentID, e.Page, e.Title, e.Relevance, e.RefinedText)
	}
	return nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
