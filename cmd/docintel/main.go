// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the docintel CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the docintel CLI.
var rootCmd = &cobra.Command{
	Use:   "docintel",
	Short: "Persona-driven document relevance analysis",
	Long: `docintel reads a set of documents and ranks their most relevant sections
for a specific reader: a persona role plus a job to be done. Each run
segments the documents into sections, scores them against the persona,
selects a balanced top set, and emits refined excerpts.

Run an analysis with the analyze subcommand; completed runs are archived
locally and can be revisited with the history subcommand.`,
	// Binding the running command's flag set lets the config file and
	// DOCINTEL_* environment back any flag left at its default, while an
	// explicitly set flag still wins.
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		_ = viper.BindPFlags(cmd.Flags())
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./docintel.yaml or ~/.config/docintel/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("docintel")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "docintel"))
		}
	}

	viper.SetEnvPrefix("DOCINTEL")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
