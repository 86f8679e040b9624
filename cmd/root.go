package cmd

import (
	"context"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/inference-sim/cpusim/sim"
	"github.com/inference-sim/cpusim/sim/trace"
)

var (
	logLevel string     // Log verbosity level
	runOpts  runOptions // `run` flag values
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "cpusim",
	Short: "Discrete-event simulator for CPU scheduling policies",
}

// setLogLevel applies a --log flag value.
func setLogLevel(name string) {
	level, err := logrus.ParseLevel(name)
	if err != nil {
		logrus.Fatalf("Invalid log level: %s", name)
	}
	logrus.SetLevel(level)
}

// runCmd simulates every requested policy over one workload and prints the results
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the scheduling simulation",
	Run: func(cmd *cobra.Command, args []string) {
		setLogLevel(logLevel)

		if runOpts.format != "text" && runOpts.format != "json" {
			logrus.Fatalf("Invalid --format %q: want text or json", runOpts.format)
		}

		records, cfg, err := runOpts.resolve(cmd.Flags().Changed, os.Stdin, os.Stdout)
		if err != nil {
			logrus.Fatalf("Invalid workload: %v", err)
		}

		logrus.Infof("Starting simulation of %d processes: policies=%v, quantum=%d, context switch=%d, seed=%d",
			len(records), cfg.Policies, cfg.Quantum, cfg.ContextSwitch, cfg.Seed)
		startTime := time.Now()

		results, err := sim.RunAll(context.Background(), records, cfg)
		if err != nil {
			logrus.Fatalf("Simulation failed: %v", err)
		}

		if runOpts.format == "json" {
			if err := RenderJSON(os.Stdout, results); err != nil {
				logrus.Fatalf("%v", err)
			}
		} else {
			RenderText(os.Stdout, results)
		}

		logrus.Infof("Simulation complete in %s.", time.Since(startTime))
	},
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	defaults := sim.DefaultRunConfig()

	runCmd.Flags().StringVar(&runOpts.workloadPath, "workload", "", "Path to a YAML workload file")
	runCmd.Flags().IntVar(&runOpts.quantum, "quantum", defaults.Quantum, "Round Robin base time quantum (ticks)")
	runCmd.Flags().IntVar(&runOpts.contextSwitch, "context-switch", defaults.ContextSwitch, "SJF context switching time (ticks)")
	runCmd.Flags().Int64Var(&runOpts.seed, "seed", defaults.Seed, "Seed for Round Robin aging keys")
	runCmd.Flags().StringArrayVar(&runOpts.policies, "policy", nil, "Policy to run (sjf, srtf, priority, round-robin); repeatable, default all")
	runCmd.Flags().StringArrayVar(&runOpts.processSpecs, "process", nil, "Process as name:arrival:burst:priority; repeatable")
	runCmd.Flags().BoolVar(&runOpts.interactive, "interactive", false, "Prompt for quantum, context switch and processes on stdin")
	runCmd.Flags().StringVar(&runOpts.traceLevel, "trace-level", string(trace.TraceLevelNone), "Decision trace level (none, decisions)")
	runCmd.Flags().StringVar(&runOpts.format, "format", "text", "Output format (text, json)")
	runCmd.Flags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")

	// Attach `run` as a subcommand to `root`
	rootCmd.AddCommand(runCmd)
}
