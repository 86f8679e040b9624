package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	sim "github.com/inference-sim/cpusim/sim"
	"github.com/inference-sim/cpusim/sim/workload"
)

var (
	genSpecPath string
	genLogLevel string
	genOutput   string
	genSpec     = workload.DefaultGeneratorSpec()
)

// writeGeneratedBundle generates processes from spec and writes them as a
// workload file accepted by `run --workload`.
func writeGeneratedBundle(w io.Writer, spec *workload.GeneratorSpec) error {
	records, err := workload.GenerateProcesses(spec)
	if err != nil {
		return err
	}
	seed := spec.Seed
	bundle := sim.WorkloadBundle{Seed: &seed, Processes: records}
	data, err := yaml.Marshal(&bundle)
	if err != nil {
		return fmt.Errorf("encoding workload: %w", err)
	}
	_, err = w.Write(data)
	return err
}

// writeGeneratedFile writes the generated workload to path. The file is closed
// before returning and a failed close is reported, so a truncated file never
// passes silently.
func writeGeneratedFile(path string, spec *workload.GeneratorSpec) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := writeGeneratedBundle(f, spec); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	return nil
}

// generateCmd writes a synthetic workload file
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a synthetic workload file",
	Run: func(cmd *cobra.Command, args []string) {
		setLogLevel(genLogLevel)

		spec := genSpec
		if genSpecPath != "" {
			loaded, err := workload.LoadGeneratorSpec(genSpecPath)
			if err != nil {
				logrus.Fatalf("%v", err)
			}
			spec = *loaded
			// Explicit flags win over the spec file.
			if cmd.Flags().Changed("count") {
				spec.Count = genSpec.Count
			}
			if cmd.Flags().Changed("seed") {
				spec.Seed = genSpec.Seed
			}
			if cmd.Flags().Changed("rate") {
				spec.Rate = genSpec.Rate
			}
			if cmd.Flags().Changed("arrival") {
				spec.Arrival.Process = genSpec.Arrival.Process
			}
		}

		var err error
		if genOutput != "" {
			err = writeGeneratedFile(genOutput, &spec)
		} else {
			err = writeGeneratedBundle(os.Stdout, &spec)
		}
		if err != nil {
			logrus.Fatalf("Generation failed: %v", err)
		}
		logrus.Infof("Generated %d processes (seed %d)", spec.Count, spec.Seed)
	},
}

func init() {
	generateCmd.Flags().StringVar(&genSpecPath, "spec", "", "Path to a YAML generator spec")
	generateCmd.Flags().StringVar(&genOutput, "output", "", "Write the workload to this file instead of stdout")
	generateCmd.Flags().IntVar(&genSpec.Count, "count", genSpec.Count, "Number of processes")
	generateCmd.Flags().Int64Var(&genSpec.Seed, "seed", genSpec.Seed, "Seed for arrivals, bursts and priorities")
	generateCmd.Flags().Float64Var(&genSpec.Rate, "rate", genSpec.Rate, "Mean arrivals per tick")
	generateCmd.Flags().StringVar(&genSpec.Arrival.Process, "arrival", genSpec.Arrival.Process, "Arrival process (poisson, gamma, weibull, constant)")
	generateCmd.Flags().StringVar(&genLogLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")

	rootCmd.AddCommand(generateCmd)
}
