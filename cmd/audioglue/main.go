package main

import (
	"fmt"
	"os"

	"github.com/opd-ai/audioglue/config"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// rootOptions holds flags shared by every subcommand.
type rootOptions struct {
	configPath string
	logLevel   string
}

// load reads the configuration and applies its logging settings. A
// --log-level flag wins over the file.
func (o *rootOptions) load() (config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return config.Config{}, err
	}
	if o.logLevel != "" {
		cfg.Log.Level = o.logLevel
	}
	if err := cfg.ApplyLogging(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "audioglue",
		Short:         "Inspect and exercise game audio event bindings",
		Long:          `audioglue validates event binding files and drives playback sessions against a simulated audio engine.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "config file (default ./"+config.DefaultFileName+")")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "override log level (trace, debug, info, warn, error)")

	root.AddCommand(
		newInitCmd(),
		newValidateCmd(opts),
		newEventsCmd(opts),
		newSimulateCmd(opts),
		newWatchCmd(opts),
	)
	return root
}

func main() {
	logrus.SetOutput(os.Stderr)

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
