package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/alvmarrod/hl3-confirmer/internal/search"
)

// searchFlags are shared by the commands that run a search locally.
type searchFlags struct {
	metrics []string
	goal    float64
	mode    string
	strict  bool
}

func (f *searchFlags) register(cmd *cobra.Command, withMode bool) {
	cmd.Flags().StringArrayVarP(&f.metrics, "metric", "m", nil, "seed metric as name=value (repeatable, order matters)")
	cmd.Flags().Float64VarP(&f.goal, "goal", "g", 3, "goal value")
	cmd.Flags().BoolVar(&f.strict, "strict", false, "dedup candidates against siblings of the same expansion")
	if withMode {
		cmd.Flags().StringVar(&f.mode, "mode", "dfs", "traversal mode: bfs or dfs")
	}
}

func (f *searchFlags) options(mode search.Mode) []search.Option {
	opts := []search.Option{search.WithMode(mode)}
	if f.strict {
		opts = append(opts, search.WithStrictFrontier())
	}
	return opts
}

// parseMetrics turns name=value pairs into ordered metrics.
func parseMetrics(pairs []string) ([]search.Metric, error) {
	out := make([]search.Metric, 0, len(pairs))
	seen := make(map[string]bool, len(pairs))
	for _, pair := range pairs {
		name, raw, ok := strings.Cut(pair, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid metric %q: want name=value", pair)
		}
		if seen[name] {
			return nil, fmt.Errorf("duplicate metric %q", name)
		}
		value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid value for metric %q: %w", name, err)
		}
		seen[name] = true
		out = append(out, search.Metric{Name: name, Value: value})
	}
	return out, nil
}

func printResult(w io.Writer, mode search.Mode, res *search.Result) {
	fmt.Fprintf(w, "%s: %s (%d expanded, %d enqueued, %d rejected)\n",
		mode, res.State, res.Expanded, res.Enqueued, res.Rejected)
	for i, step := range res.Steps {
		fmt.Fprintf(w, "  %d. %s\n", i+1, step)
	}
}

func newSolveCmd() *cobra.Command {
	var f searchFlags

	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Search for a proof from metrics given on the command line",
		Example: `  confirmer solve -m x=2 -m y=3 --goal 12
  confirmer solve -m word_count=5 -m sentence_count=1 --goal 25 --mode bfs`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			seeds, err := parseMetrics(f.metrics)
			if err != nil {
				return err
			}
			mode, err := search.ParseMode(f.mode)
			if err != nil {
				return err
			}
			printResult(cmd.OutOrStdout(), mode, search.Run(seeds, f.goal, f.options(mode)...))
			return nil
		},
	}
	f.register(cmd, true)
	return cmd
}

func newCompareCmd() *cobra.Command {
	var f searchFlags

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Run breadth-first and depth-first searches side by side",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			seeds, err := parseMetrics(f.metrics)
			if err != nil {
				return err
			}

			modes := []search.Mode{search.BreadthFirst, search.DepthFirst}
			results := make([]*search.Result, len(modes))

			// Each search owns its frontier; nothing is shared between them.
			g, _ := errgroup.WithContext(cmd.Context())
			for i, mode := range modes {
				i, mode := i, mode
				g.Go(func() error {
					results[i] = search.Run(seeds, f.goal, f.options(mode)...)
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}

			for i, mode := range modes {
				printResult(cmd.OutOrStdout(), mode, results[i])
			}
			return nil
		},
	}
	f.register(cmd, false)
	return cmd
}
