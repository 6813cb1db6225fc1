package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/alvmarrod/hl3-confirmer/internal/analyzer"
	"github.com/alvmarrod/hl3-confirmer/internal/search"
	"github.com/alvmarrod/hl3-confirmer/internal/server"
)

func newAskCmd() *cobra.Command {
	var offline bool
	var mode string

	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "Prove a question from its text metrics",
		Example: `  confirmer ask "Is HL3 coming out?"
  confirmer ask --offline --mode bfs "Will it ever ship?"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			question := strings.Join(args, " ")

			m := cfg.SearchMode()
			if mode != "" {
				if m, err = search.ParseMode(mode); err != nil {
					return err
				}
			}

			var seeds []search.Metric
			if offline {
				seeds = analyzer.Fallback(question)
			} else {
				client := analyzer.NewClient(cfg.AnalyzerURL,
					time.Duration(cfg.AnalyzerTimeoutMs)*time.Millisecond, cfg.AnalyzerRatePerSec)
				seeds = client.Analyze(cmd.Context(), question).Metrics
			}

			opts := []search.Option{search.WithMode(m)}
			if cfg.StrictFrontier {
				opts = append(opts, search.WithStrictFrontier())
			}
			steps := server.Humanize(search.Run(seeds, cfg.Goal, opts...).Steps, cfg.Trailer)
			if len(steps) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No proof found. Please ask something else.")
				return nil
			}
			for _, step := range steps {
				fmt.Fprintln(cmd.OutOrStdout(), step)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&offline, "offline", false, "skip the analysis service and count words locally")
	cmd.Flags().StringVar(&mode, "mode", "", "traversal mode: bfs or dfs (defaults to config)")
	return cmd
}
