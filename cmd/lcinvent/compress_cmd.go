package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lcinvent/lcinvent/compress"
	"github.com/lcinvent/lcinvent/internal/logging"
	"github.com/lcinvent/lcinvent/sexpr"
	"github.com/lcinvent/lcinvent/term"
)

type compressFlags struct {
	configPath           string
	testPath             string
	iterations           int
	maxArity             int
	threads              int
	invCandidates        int
	fifoWorklist         bool
	ascendingWorklist    bool
	lossyCandidates      bool
	noCache              bool
	noOptFreeVars        bool
	noOptSingleUse       bool
	noOptUpperBound      bool
	noOptForceMultiuse   bool
	noOptUselessAbstract bool
	noStats              bool
	verbose              bool
}

func newCompressCmd() *cobra.Command {
	flags := &compressFlags{}

	cmd := &cobra.Command{
		Use:   "compress <corpus-file>",
		Short: "Discover and apply shared abstractions over a corpus file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompress(args[0], flags)
		},
	}

	cmd.Flags().StringVar(&flags.configPath, "config", "", "optional TOML config file")
	cmd.Flags().StringVar(&flags.testPath, "test", "", "optional held-out corpus file")
	cmd.Flags().IntVar(&flags.iterations, "iterations", 1, "number of driver iterations")
	cmd.Flags().IntVar(&flags.maxArity, "max-arity", 2, "maximum invention arity")
	cmd.Flags().IntVar(&flags.threads, "threads", 1, "search worker-pool parallelism")
	cmd.Flags().IntVar(&flags.invCandidates, "inv-candidates", 1, "top candidates to report per iteration")
	cmd.Flags().BoolVar(&flags.fifoWorklist, "fifo-worklist", false, "use FIFO worklist pop order")
	cmd.Flags().BoolVar(&flags.ascendingWorklist, "ascending-worklist", false, "sort new worklist items ascending by upper bound")
	cmd.Flags().BoolVar(&flags.lossyCandidates, "lossy-candidates", false, "report degenerate runner-up candidates")
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "disable shift memoization")
	cmd.Flags().BoolVar(&flags.noOptFreeVars, "no-opt-free-vars", false, "disable escape-pruning")
	cmd.Flags().BoolVar(&flags.noOptSingleUse, "no-opt-single-use", false, "keep singleton groups")
	cmd.Flags().BoolVar(&flags.noOptUpperBound, "no-opt-upper-bound", false, "disable upper-bound pruning")
	cmd.Flags().BoolVar(&flags.noOptForceMultiuse, "no-opt-force-multiuse", false, "don't require multi-use sharing to fire")
	cmd.Flags().BoolVar(&flags.noOptUselessAbstract, "no-opt-useless-abstract", false, "keep degenerate (identity-equivalent) inventions")
	cmd.Flags().BoolVar(&flags.noStats, "no-stats", false, "suppress statistics output")
	cmd.Flags().BoolVarP(&flags.verbose, "verbose", "v", false, "enable development logging")

	return cmd
}

func runCompress(corpusPath string, flags *compressFlags) error {
	fc, err := loadFileConfig(flags.configPath)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}

	opts := fc.options()
	opts = append(opts,
		compress.WithMaxArity(flags.maxArity),
		compress.WithThreads(flags.threads),
		compress.WithInvCandidates(flags.invCandidates),
		compress.WithFIFOWorklist(flags.fifoWorklist),
		compress.WithAscendingWorklist(flags.ascendingWorklist),
		compress.WithLossyCandidates(flags.lossyCandidates),
		compress.WithNoCache(flags.noCache),
		compress.WithNoOptFreeVars(flags.noOptFreeVars),
		compress.WithNoOptSingleUse(flags.noOptSingleUse),
		compress.WithNoOptUpperBound(flags.noOptUpperBound),
		compress.WithNoOptForceMultiuse(flags.noOptForceMultiuse),
		compress.WithNoOptUselessAbstract(flags.noOptUselessAbstract),
		compress.WithNoStats(flags.noStats),
	)

	if flags.verbose {
		logger, err := logging.NewDevelopment()
		if err != nil {
			return fmt.Errorf("starting logger: %w", err)
		}
		opts = append(opts, compress.WithLogger(logger))
	}

	train, err := readCorpus(corpusPath)
	if err != nil {
		return err
	}
	test, err := readOptionalCorpus(flags.testPath)
	if err != nil {
		return err
	}

	results, err := compress.Compress(context.Background(), train, test, flags.iterations, compress.NewConfig(opts...), nil)
	if err != nil {
		return fmt.Errorf("compress: %w", err)
	}

	printResults(os.Stdout, results)
	return nil
}

func readCorpus(path string) ([]*term.Expr, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	progs, err := sexpr.ParseCorpus(string(source))
	if err != nil {
		reportParseError(string(source), err)
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return progs, nil
}

func readOptionalCorpus(path string) ([]*term.Expr, error) {
	if path == "" {
		return nil, nil
	}
	return readCorpus(path)
}
