// Command yft drives the lss predecessor index from the command line:
// generate or load a value set, build the index, optionally answer a batch
// of queries, and report build/query diagnostics. It replaces
// original_source's structopt-based Args/ValueSrc (src/args.rs) with a
// Cobra command tree, one subcommand per ValueSrc variant.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
