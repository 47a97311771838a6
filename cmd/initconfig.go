package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"reportanalysis/internal/config"
)

var (
	initOutput string
	initForce  bool
)

var initConfigCmd = &cobra.Command{
	Use:   "init-config",
	Short: "Write a config file with the documented defaults",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !initForce {
			if _, err := os.Stat(initOutput); err == nil {
				return fmt.Errorf("%s already exists (use --force to overwrite)", initOutput)
			}
		}
		if err := config.Save(config.Default(), initOutput); err != nil {
			return err
		}
		fmt.Printf("Config written: %s\n", initOutput)
		return nil
	},
}

func init() {
	initConfigCmd.Flags().StringVar(&initOutput, "output", "reportanalysis.yaml", "path for the generated config file")
	initConfigCmd.Flags().BoolVar(&initForce, "force", false, "overwrite an existing file")
	rootCmd.AddCommand(initConfigCmd)
}
