package main

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/opd-ai/audioglue/config"
	"github.com/opd-ai/audioglue/events"
	"github.com/spf13/cobra"
)

func newWatchCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Re-validate the event bindings each time the config file is saved",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := opts.configPath
			if path == "" {
				path = config.DefaultFileName
			}
			if _, err := opts.load(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			out := cmd.OutOrStdout()
			report := func(cfg config.Config) {
				reg, err := events.Initialize(cfg.RegistryConfig())
				if err != nil {
					fmt.Fprintln(out, "FAIL:", err)
					return
				}
				fmt.Fprintf(out, "OK: %d events bound\n", reg.Len())
			}
			onError := func(err error) {
				fmt.Fprintln(out, "FAIL:", err)
			}
			return config.Watch(ctx, path, report, onError)
		},
	}
}
