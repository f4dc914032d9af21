package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/opd-ai/audioglue/events"
	"github.com/spf13/cobra"
)

func newEventsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "events",
		Short: "List catalog slots and their bindings",
		Long:  `Lists every catalog slot with the event it is bound to, followed by any custom events the configuration adds.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}

			bound := make(map[string]string, len(cfg.Events))
			for _, e := range cfg.Events {
				target := e.Path
				if target == "" {
					target = "{" + e.GUID + "}"
				}
				bound[e.Name] = target
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "SECTION\tNAME\tREQUIRED\tEVENT")
			for _, slot := range events.Catalog() {
				target, ok := bound[slot.Name]
				if !ok {
					target = "-"
				}
				delete(bound, slot.Name)
				fmt.Fprintf(w, "%s\t%s\t%t\t%s\n", slot.Section, slot.Name, slot.Required, target)
			}
			for _, e := range cfg.Events {
				if target, ok := bound[e.Name]; ok {
					fmt.Fprintf(w, "%s\t%s\t%t\t%s\n", "custom", e.Name, false, target)
					delete(bound, e.Name)
				}
			}
			return w.Flush()
		},
	}
}
