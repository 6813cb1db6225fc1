package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/alvmarrod/hl3-confirmer/internal/config"
	"github.com/alvmarrod/hl3-confirmer/internal/version"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:          "confirmer",
		Short:        "Proves any question leads to HL3",
		Long:         `Confirmer searches for a chain of arithmetic steps that turns the text metrics of a question into a goal number.`,
		Version:      version.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Configure logging
			logrus.SetOutput(cmd.ErrOrStderr())
			logrus.SetFormatter(&logrus.TextFormatter{
				FullTimestamp: true,
			})
			logrus.SetLevel(logrus.InfoLevel)
			if verbose {
				logrus.SetLevel(logrus.DebugLevel)
			}
		},
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	root.PersistentFlags().String("config", "", "path to JSON config file")

	root.AddCommand(newServeCmd())
	root.AddCommand(newSolveCmd())
	root.AddCommand(newCompareCmd())
	root.AddCommand(newAskCmd())

	return root
}

// loadConfig reads --config when given, otherwise returns defaults.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	if path == "" {
		return config.Default(), nil
	}
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, err
	}
	logrus.Debugf("Configuration loaded from %s", path)
	return cfg, nil
}
