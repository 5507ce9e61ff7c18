package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gaarutyunov/yft/internal/numgen"
	"github.com/gaarutyunov/yft/internal/numio"
)

// Each subcommand below corresponds to one original_source ValueSrc variant
// (src/args.rs): a way of producing the sorted value set the index is built
// over. All of them funnel into buildAndReport once values are in hand.

func newNormalCmd(flags *runFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "normal <length> <mean> <deviation>",
		Short: "Build over a normally distributed value set",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			length, err := parseIntArg(args, 0, "length")
			if err != nil {
				return err
			}
			mean, err := parseFloatArg(args, 1, "mean")
			if err != nil {
				return err
			}
			deviation, err := parseFloatArg(args, 2, "deviation")
			if err != nil {
				return err
			}
			values := numgen.Normal(length, mean, deviation, maxForWidth(flags.width()), newRNG())
			return buildAndReport(flags, values)
		},
	}
}

func newUniformCmd(flags *runFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "uniform <length>",
		Short: "Build over a uniformly distributed value set",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			length, err := parseIntArg(args, 0, "length")
			if err != nil {
				return err
			}
			values := numgen.Uniform(length, maxForWidth(flags.width()), newRNG())
			return buildAndReport(flags, values)
		},
	}
}

func newPoissonCmd(flags *runFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "poisson <length> <lambda>",
		Short: "Build over a Poisson-distributed value set",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			length, err := parseIntArg(args, 0, "length")
			if err != nil {
				return err
			}
			lambda, err := parseFloatArg(args, 1, "lambda")
			if err != nil {
				return err
			}
			values := numgen.Poisson(length, lambda, maxForWidth(flags.width()), newRNG())
			return buildAndReport(flags, values)
		},
	}
}

func newPowerLawCmd(flags *runFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "power-law <length> <n>",
		Short: "Build over a power-law distributed value set",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			length, err := parseIntArg(args, 0, "length")
			if err != nil {
				return err
			}
			n, err := parseFloatArg(args, 1, "n")
			if err != nil {
				return err
			}
			values := numgen.PowerLaw(length, n, maxForWidth(flags.width()), newRNG())
			return buildAndReport(flags, values)
		},
	}
}

func newLoadCmd(flags *runFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "load <path>",
		Short: "Build over a comma-separated decimal value set on disk",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := numio.LoadText(args[0])
			if err != nil {
				return fmt.Errorf("loading %s: %w", args[0], err)
			}
			return buildAndReport(flags, values)
		},
	}
}

func newU40Cmd(flags *runFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "u40 <path>",
		Short: "Build over a 5-byte-record (\"fit\") value set on disk",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := numio.LoadFit(args[0])
			if err != nil {
				return fmt.Errorf("loading %s: %w", args[0], err)
			}
			return buildAndReport(flags, values)
		},
	}
}

func newU40SCmd(flags *runFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "u40s <path>",
		Short: "Build over a msgpack-encoded 40-bit value set on disk",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := numio.LoadMsgpack(args[0])
			if err != nil {
				return fmt.Errorf("loading %s: %w", args[0], err)
			}
			return buildAndReport(flags, values)
		},
	}
}

func newU40TCmd(flags *runFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "u40t <path>",
		Short: "Build over a \"tim\"-format (counted 5-byte records) value set on disk",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := numio.LoadTim(args[0])
			if err != nil {
				return fmt.Errorf("loading %s: %w", args[0], err)
			}
			return buildAndReport(flags, values)
		},
	}
}

func newU64SCmd(flags *runFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "u64s <path>",
		Short: "Build over a msgpack-encoded 64-bit value set on disk",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags.u40 = false
			values, err := numio.LoadMsgpack(args[0])
			if err != nil {
				return fmt.Errorf("loading %s: %w", args[0], err)
			}
			return buildAndReport(flags, values)
		},
	}
}

func maxForWidth(width int) uint64 {
	if width >= 64 {
		return ^uint64(0) - 1
	}
	return uint64(1)<<uint(width) - 2
}
