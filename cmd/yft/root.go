package main

import (
	"bufio"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/gaarutyunov/yft/internal/numgen"
	"github.com/gaarutyunov/yft/internal/numio"
	"github.com/gaarutyunov/yft/internal/statlog"
	"github.com/gaarutyunov/yft/lss"
)

// runFlags mirrors the persistent Args fields from original_source's
// args.rs that every ValueSrc subcommand shares.
type runFlags struct {
	minStartLevel           int
	maxLSSLevel             int
	minStartLevelLoadFactor int
	maxLastLevelLoadFactor  int
	minLoadFactorDifference int
	u40                     bool
	hashKind                string
	payloadKind             string
	runName                 string
	output                  string
	queries                 string
	store                   string
	logTime                 bool
	logMem                  bool
}

func newRootCmd() *cobra.Command {
	flags := &runFlags{}
	root := &cobra.Command{
		Use:   "yft",
		Short: "Test driver for Dan Willard's Y-Fast-Trie (LSS predecessor index)",
	}

	pf := root.PersistentFlags()
	pf.IntVarP(&flags.minStartLevel, "min-start-level", "a", 10, "minimal height of the lowest LSS level")
	pf.IntVarP(&flags.maxLSSLevel, "max-lss-level", "z", 8, "minimum number of high bits indexed by the top table")
	pf.IntVarP(&flags.minStartLevelLoadFactor, "min-start-level-load-factor", "x", 50, "leaf-level load-factor ceiling (1-100)")
	pf.IntVarP(&flags.maxLastLevelLoadFactor, "max-last-level-load-factor", "y", 90, "top-table density ceiling (1-100)")
	pf.IntVarP(&flags.minLoadFactorDifference, "min-load-factor-difference", "w", 90, "top-table density-vs-maximum margin (1-100)")
	pf.BoolVarP(&flags.u40, "u40", "u", false, "use a 40-bit universe instead of 64-bit")
	pf.StringVar(&flags.hashKind, "hash", "fast", "level-map hash: fast|crypto")
	pf.StringVar(&flags.payloadKind, "payload", "baked", "branch payload: baked|pointer")
	pf.StringVarP(&flags.runName, "run-name", "n", "", "name of this run, used for logging (random if empty)")
	pf.StringVarP(&flags.output, "output", "o", "", "file where predecessor results are written (stdout if empty)")
	pf.StringVarP(&flags.queries, "queries", "q", "", "file with predecessor queries to answer after build")
	pf.StringVarP(&flags.store, "store", "s", "", "file where generated values from this run are saved")
	pf.BoolVarP(&flags.logTime, "time", "t", false, "has no effect: build timings are always logged")
	pf.BoolVarP(&flags.logMem, "memory", "m", false, "has no effect: build memory checkpoints are always logged")

	root.AddCommand(
		newNormalCmd(flags),
		newUniformCmd(flags),
		newPoissonCmd(flags),
		newPowerLawCmd(flags),
		newLoadCmd(flags),
		newU40Cmd(flags),
		newU40SCmd(flags),
		newU40TCmd(flags),
		newU64SCmd(flags),
		newStatsCmd(flags),
		newBenchCmd(flags),
	)
	return root
}

func (f *runFlags) width() int {
	if f.u40 {
		return 40
	}
	return 64
}

func (f *runFlags) buildConfig() (lss.BuildConfig, error) {
	hashKind, err := parseHashKind(f.hashKind)
	if err != nil {
		return lss.BuildConfig{}, err
	}
	payloadKind, err := parsePayloadKind(f.payloadKind)
	if err != nil {
		return lss.BuildConfig{}, err
	}
	return lss.NewBuildConfig(f.width(),
		lss.WithTunerBounds(f.minStartLevel, f.maxLSSLevel, f.minStartLevelLoadFactor, f.maxLastLevelLoadFactor, f.minLoadFactorDifference),
		lss.WithHashKind(hashKind),
		lss.WithPayloadKind(payloadKind),
	), nil
}

func parseHashKind(s string) (lss.HashKind, error) {
	switch s {
	case "", "fast":
		return lss.HashFast, nil
	case "crypto":
		return lss.HashCrypto, nil
	default:
		return 0, fmt.Errorf("unknown --hash %q: want fast or crypto", s)
	}
}

func parsePayloadKind(s string) (lss.PayloadKind, error) {
	switch s {
	case "", "baked":
		return lss.PayloadPredecessorBaked, nil
	case "pointer":
		return lss.PayloadChildPointer, nil
	default:
		return 0, fmt.Errorf("unknown --payload %q: want baked or pointer", s)
	}
}

func (f *runFlags) name() string {
	if f.runName != "" {
		return f.runName
	}
	return strconv.FormatInt(time.Now().UnixNano(), 36)
}

func (f *runFlags) logger() *statlog.Logger {
	return statlog.New(f.name(), nil)
}

// buildAndReport builds the index over values, answers any queries file,
// and writes results/the generated store, per the shared behavior of every
// ValueSrc subcommand in the original CLI.
func buildAndReport(flags *runFlags, values []uint64) error {
	values = numgen.Dedup(values)

	if flags.store != "" {
		if err := numio.SaveMsgpack(flags.store, values); err != nil {
			return fmt.Errorf("saving store: %w", err)
		}
	}

	cfg, err := flags.buildConfig()
	if err != nil {
		return err
	}
	logger := flags.logger()

	handle, err := lss.Build(values, cfg, logger)
	if err != nil {
		return fmt.Errorf("build: %w", err)
	}

	if flags.queries == "" {
		return nil
	}
	queries, err := numio.LoadText(flags.queries)
	if err != nil {
		return fmt.Errorf("reading queries: %w", err)
	}

	var out *os.File
	if flags.output != "" {
		out, err = os.Create(flags.output)
		if err != nil {
			return fmt.Errorf("creating output: %w", err)
		}
		defer out.Close()
	}
	w := bufio.NewWriter(os.Stdout)
	if out != nil {
		w = bufio.NewWriter(out)
	}
	defer w.Flush()

	for _, q := range queries {
		pred, found := handle.Predecessor(q)
		if !found {
			pred = 0
		}
		fmt.Fprintln(w, pred)
	}
	return nil
}

func parseIntArg(args []string, i int, name string) (int, error) {
	if i >= len(args) {
		return 0, fmt.Errorf("missing %s argument", name)
	}
	v, err := strconv.Atoi(args[i])
	if err != nil {
		return 0, fmt.Errorf("parsing %s: %w", name, err)
	}
	return v, nil
}

func parseFloatArg(args []string, i int, name string) (float64, error) {
	if i >= len(args) {
		return 0, fmt.Errorf("missing %s argument", name)
	}
	v, err := strconv.ParseFloat(args[i], 64)
	if err != nil {
		return 0, fmt.Errorf("parsing %s: %w", name, err)
	}
	return v, nil
}

func newRNG() *rand.Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}
