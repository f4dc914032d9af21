package main

import (
	"fmt"

	"github.com/opd-ai/audioglue/config"
	"github.com/opd-ai/audioglue/events"
	"github.com/spf13/cobra"
)

func newValidateCmd(opts *rootOptions) *cobra.Command {
	var dump bool

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check the configuration and event bindings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			reg, err := events.Initialize(cfg.RegistryConfig())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if dump {
				b, err := config.Marshal(cfg)
				if err != nil {
					return err
				}
				fmt.Fprint(out, string(b))
			}
			fmt.Fprintf(out, "OK: %d events bound\n", reg.Len())
			return nil
		},
	}
	cmd.Flags().BoolVar(&dump, "print", false, "print the effective configuration")
	return cmd
}
