// Package cmd defines the reportanalysis command-line interface.
package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"reportanalysis/internal"
	"reportanalysis/internal/config"
)

var (
	cfgFile string

	cfg *config.Config
	log = internal.DefaultLogger
)

var rootCmd = &cobra.Command{
	Use:   "reportanalysis",
	Short: "Generate statistical analysis reports from tabular data",
	Long: `reportanalysis ingests tabular data (CSV, Excel, JSON, Parquet, or a
PostgreSQL query), synthesizes and analyzes it, and renders a report
document (PDF, Markdown, or HTML).`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the CLI. Errors are printed to stderr with a non-zero exit.
func Execute() {
	godotenv.Load()
	cobra.OnInitialize(loadConfig)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (YAML, merged over defaults)")
}

func loadConfig() {
	c, err := config.Load(cfgFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
	cfg = c
}
