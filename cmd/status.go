package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"reportanalysis/internal/pipeline"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show pipeline readiness and collaborator connectivity",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s := pipeline.New(cfg, log).Status()
		fmt.Printf("reportanalysis %s\n", s.Version)
		names := make([]string, 0, len(s.Stages))
		for name := range s.Stages {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Printf("  %-10s %s\n", name, s.Stages[name])
		}
		if s.AIConnected {
			fmt.Println("  AI collaborator: connected")
		} else {
			fmt.Println("  AI collaborator: not connected")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
