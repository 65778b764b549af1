// Command measure benchmarks the intrusive AA tree against other ordered containers
// and cross-checks it against a red-black oracle.
package main

import (
	"fmt"
	"io"
	"os"
	"testing"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

const version = "0.1.0"

func main() {
	testing.Init()
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var configPath string
	root := &cobra.Command{
		Use:           "measure",
		Short:         "Benchmark and cross-check the intrusive AA tree",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	pf := root.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "config file (default ./measure.yaml)")
	pf.String("log-level", defaultLogLevel, "trace, debug, info, warn or error")
	pf.String("log-format", defaultLogFormat, "console or json")
	pf.String("log-file", "", "also write logs to this file, rotated")

	root.AddCommand(
		newRunCmd(&configPath, stdout, stderr),
		newCheckCmd(&configPath, stderr),
		newVersionCmd(stdout),
	)
	return root
}

// setup loads the configuration and builds the logger for cmd.
func setup(cmd *cobra.Command, configPath string, stderr io.Writer) (*Config, zerolog.Logger, io.Closer, error) {
	cfg, err := LoadConfig(configPath, cmd)
	if err != nil {
		return nil, zerolog.Nop(), nil, err
	}
	log, closer, err := newLogger(cfg.Logging, stderr)
	if err != nil {
		return nil, zerolog.Nop(), nil, err
	}
	return cfg, log, closer, nil
}

// closeLog closes the log file and reports its error unless err is already set.
func closeLog(c io.Closer, err *error) {
	if cerr := c.Close(); cerr != nil && *err == nil {
		*err = fmt.Errorf("failed to close log: %w", cerr)
	}
}

func newRunCmd(configPath *string, stdout, stderr io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Time insert, remove and query workloads on each tree",
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			cfg, log, closer, err := setup(cmd, *configPath, stderr)
			if err != nil {
				return err
			}
			defer closeLog(closer, &err)

			log.Info().Strs("trees", cfg.Workload.Trees).Int("size", cfg.Workload.Size).
				Int64("seed", cfg.Workload.Seed).Msg("starting workloads")
			results, err := runWorkloads(cfg.Workload, log)
			if err != nil {
				log.Error().Err(err).Msg("workload failed")
				return err
			}
			renderResults(stdout, cfg.Workload, results)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringSlice("trees", treeNames, "trees to measure")
	f.Int("size", defaultSize, "number of distinct keys")
	f.Float64("remove-ratio", defaultRemoveRatio, "fraction of keys removed by the remove workload")
	f.Float64("query-ratio", defaultQueryRatio, "fraction of keys looked up by the query workload")
	f.Int("repeat", defaultRepeat, "samples per workload")
	f.Int("arena-slab", defaultArenaSlab, "records per arena slab for the aa tree")
	f.Int64("seed", 0, "key permutation seed")
	f.String("benchtime", defaultBenchtime, "benchmark duration or iteration count, like go test -benchtime")
	return cmd
}

func newCheckCmd(configPath *string, stderr io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Replay random operations against a red-black oracle, validating after each mutation",
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			cfg, log, closer, err := setup(cmd, *configPath, stderr)
			if err != nil {
				return err
			}
			defer closeLog(closer, &err)

			log.Info().Int("ops", cfg.Check.Ops).Int("key_range", cfg.Check.KeyRange).
				Int64("seed", cfg.Check.Seed).Msg("starting check")
			if err = runCheck(cfg.Check, cfg.Workload.ArenaSlab, log); err != nil {
				log.Error().Err(err).Msg("check failed")
				return err
			}
			log.Info().Msg("check passed")
			return nil
		},
	}
	f := cmd.Flags()
	f.Int("ops", defaultCheckOps, "number of random operations")
	f.Int("key-range", defaultKeyRange, "keys are drawn from [0, key-range)")
	f.Int64("seed", 0, "operation seed")
	f.Int("arena-slab", defaultArenaSlab, "records per arena slab")
	return cmd
}

func newVersionCmd(stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Fprintln(stdout, "measure", version)
		},
	}
}
