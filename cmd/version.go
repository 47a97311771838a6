package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"reportanalysis/internal/pipeline"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("reportanalysis %s\n", pipeline.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
