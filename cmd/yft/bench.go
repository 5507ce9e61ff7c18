package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gaarutyunov/yft/internal/numgen"
	"github.com/gaarutyunov/yft/internal/numio"
	"github.com/gaarutyunov/yft/internal/statlog"
	"github.com/gaarutyunov/yft/lss"
)

// newBenchCmd reproduces main.rs's element_length_test loop: repeatedly
// halve the input (keep every 2^i-th element) and rebuild the index,
// logging build/query cost at each size, stopping once fewer than two
// elements remain or a 40-iteration cap is hit.
func newBenchCmd(flags *runFlags) *cobra.Command {
	var format string
	var searchStats bool
	cmd := &cobra.Command{
		Use:   "bench <path>",
		Short: "Rebuild the index at halving input sizes and log timings at each size",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			base, err := loadByFormat(format, args[0])
			if err != nil {
				return err
			}
			base = numgen.Dedup(base)

			var queries []uint64
			if flags.queries != "" {
				queries, err = numio.LoadText(flags.queries)
				if err != nil {
					return fmt.Errorf("reading queries: %w", err)
				}
			}

			logger := flags.logger()
			cfg, err := flags.buildConfig()
			if err != nil {
				return err
			}

			for i := 0; i < 40; i++ {
				values := stepBy(base, 1<<uint(i))
				if len(values) < 2 {
					break
				}
				logger.Time("values loaded")

				handle, err := lss.Build(values, cfg, logger)
				if err != nil {
					return fmt.Errorf("build at size %d: %w", len(values), err)
				}
				logger.Time("initialized")

				if len(queries) > 0 {
					runQueries(handle, queries, searchStats, logger)
					logger.Time("queries processed")
				}
				handle.Stats(logger)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", "msgpack", "value set encoding: msgpack|fit|tim|text")
	cmd.Flags().BoolVar(&searchStats, "search-stats", false, "log a note that no exit-depth/step histogram is produced (queries still run normally)")
	return cmd
}

func stepBy(values []uint64, stride int) []uint64 {
	if stride <= 1 {
		return values
	}
	out := make([]uint64, 0, (len(values)+stride-1)/stride)
	for i := 0; i < len(values); i += stride {
		out = append(out, values[i])
	}
	return out
}

func runQueries(handle *lss.Handle, queries []uint64, searchStats bool, logger *statlog.Logger) {
	for _, q := range queries {
		handle.Predecessor(q)
	}
	if searchStats {
		logger.Note("search_stats: this driver produces no histogram; per-query stats are available from lss.PredecessorWithStats in debug builds")
	}
}
