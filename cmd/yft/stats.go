package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/gaarutyunov/yft/internal/numgen"
	"github.com/gaarutyunov/yft/internal/numio"
	"github.com/gaarutyunov/yft/lss"
)

// newStatsCmd is a supplemented subcommand (absent from original_source's
// Args): it builds the index and renders Handle.Stats as an aligned table
// instead of raw RESULT lines, for interactive inspection.
func newStatsCmd(flags *runFlags) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "stats <path>",
		Short: "Build the index over a stored value set and print per-level occupancy",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := loadByFormat(format, args[0])
			if err != nil {
				return err
			}
			values = numgen.Dedup(values)

			cfg, err := flags.buildConfig()
			if err != nil {
				return err
			}
			handle, err := lss.Build(values, cfg, flags.logger())
			if err != nil {
				return fmt.Errorf("build: %w", err)
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "level\tnodes\trelative_to_input\trelative_to_capacity")
			handle.Stats(tableLogger{w})
			return w.Flush()
		},
	}
	cmd.Flags().StringVar(&format, "format", "msgpack", "value set encoding: msgpack|fit|tim|text")
	return cmd
}

func loadByFormat(format, path string) ([]uint64, error) {
	switch format {
	case "msgpack":
		return numio.LoadMsgpack(path)
	case "fit":
		return numio.LoadFit(path)
	case "tim":
		return numio.LoadTim(path)
	case "text":
		return numio.LoadText(path)
	default:
		return nil, fmt.Errorf("unknown --format %q: want msgpack, fit, tim or text", format)
	}
}

// tableLogger adapts Handle.Stats's Result-line output onto a tabwriter,
// reformatting the tab-separated key=value fields Stats already emits into
// the table header printed by newStatsCmd.
type tableLogger struct {
	w *tabwriter.Writer
}

func (tableLogger) Time(string) {}
func (tableLogger) Mem(string)  {}
func (tableLogger) Note(string) {}

func (t tableLogger) Result(kv string) {
	fmt.Fprintln(t.w, stripKeys(kv))
}

// stripKeys turns "level=0\tnodes=4\t..." into "0\t4\t...", since the header
// row already names the columns.
func stripKeys(kv string) string {
	fields := strings.Split(kv, "\t")
	for i, field := range fields {
		if eq := strings.IndexByte(field, '='); eq >= 0 {
			fields[i] = field[eq+1:]
		}
	}
	return strings.Join(fields, "\t")
}
