package main

import (
	"fmt"
	"os"

	"github.com/opd-ai/audioglue/config"
	"github.com/spf13/cobra"
)

func newInitCmd() *cobra.Command {
	var (
		output string
		force  bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default configuration file",
		Long:  `Creates a configuration file with the default engine, bus and music settings and a placeholder binding for every catalog slot.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(output); err == nil && !force {
				return fmt.Errorf("config file already exists: %s (use --force to overwrite)", output)
			}
			if err := config.WriteDefaultConfig(output); err != nil {
				return fmt.Errorf("creating config file: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", config.DefaultFileName, "path of the file to create")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}
