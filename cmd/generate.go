package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"reportanalysis/internal/pipeline"
)

var generateCmd = &cobra.Command{
	Use:   "generate <source> <output>",
	Short: "Run the full pipeline and write a report",
	Long: `Load the data source, synthesize and analyze it, and write the report
to the output path. The report format follows the output extension
(.pdf, .md, .html); a missing extension defaults to PDF.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		p := pipeline.New(cfg, log)
		result, err := p.Run(context.Background(), args[0], args[1])
		if err != nil {
			return err
		}
		fmt.Printf("Report written: %s\n", result.OutputPath)
		fmt.Printf("Run %s completed in %s\n", result.RunID, result.Elapsed.Round(time.Millisecond))
		for _, finding := range result.Analysis.KeyFindings {
			fmt.Printf("  - %s\n", finding)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)
}
