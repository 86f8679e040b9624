package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	sim "github.com/inference-sim/cpusim/sim"
	"github.com/inference-sim/cpusim/sim/trace"
)

// runOptions mirrors the `run` flags.
type runOptions struct {
	workloadPath  string
	quantum       int
	contextSwitch int
	seed          int64
	policies      []string
	processSpecs  []string
	interactive   bool
	traceLevel    string
	format        string
}

// ParseProcessSpec parses a --process value of the form name:arrival:burst:priority.
func ParseProcessSpec(spec string) (sim.ProcessRecord, error) {
	parts := strings.Split(spec, ":")
	if len(parts) != 4 {
		return sim.ProcessRecord{}, fmt.Errorf("%w: process %q: want name:arrival:burst:priority", sim.ErrInvalidProcess, spec)
	}
	nums := make([]int, 3)
	for i, field := range []string{"arrival", "burst", "priority"} {
		v, err := strconv.Atoi(strings.TrimSpace(parts[i+1]))
		if err != nil {
			return sim.ProcessRecord{}, fmt.Errorf("%w: process %q: %s %q is not an integer", sim.ErrInvalidProcess, spec, field, parts[i+1])
		}
		nums[i] = v
	}
	rec := sim.ProcessRecord{
		Name:        strings.TrimSpace(parts[0]),
		ArrivalTime: nums[0],
		BurstTime:   nums[1],
		Priority:    nums[2],
	}
	if err := rec.Validate(); err != nil {
		return sim.ProcessRecord{}, err
	}
	return rec, nil
}

// resolve assembles the process records and run configuration.
//
// Precedence, lowest first: built-in defaults, the --workload file,
// interactive answers, then explicitly set flags. --process records are
// appended after file and interactive records. changed reports whether a
// flag was set on the command line.
func (o runOptions) resolve(changed func(name string) bool, in io.Reader, out io.Writer) ([]sim.ProcessRecord, sim.RunConfig, error) {
	cfg := sim.DefaultRunConfig()
	var records []sim.ProcessRecord

	if o.workloadPath != "" {
		bundle, err := sim.LoadWorkloadBundle(o.workloadPath)
		if err != nil {
			return nil, cfg, err
		}
		if err := bundle.Validate(); err != nil {
			return nil, cfg, err
		}
		cfg = bundle.Apply(cfg)
		records = append(records, bundle.Processes...)
		logrus.Infof("Loaded %d processes from %s", len(bundle.Processes), o.workloadPath)
	}

	if o.interactive {
		answers, err := PromptWorkload(in, out)
		if err != nil {
			return nil, cfg, err
		}
		cfg.Quantum = answers.Quantum
		cfg.ContextSwitch = answers.ContextSwitch
		records = append(records, answers.Processes...)
	}

	for _, spec := range o.processSpecs {
		rec, err := ParseProcessSpec(spec)
		if err != nil {
			return nil, cfg, err
		}
		records = append(records, rec)
	}

	if changed("quantum") {
		cfg.Quantum = o.quantum
	}
	if changed("context-switch") {
		cfg.ContextSwitch = o.contextSwitch
	}
	if changed("seed") {
		cfg.Seed = o.seed
	}
	if changed("policy") {
		cfg.Policies = append([]string(nil), o.policies...)
	}
	if changed("trace-level") {
		cfg.TraceLevel = trace.TraceLevel(o.traceLevel)
	}

	if err := sim.ValidateRecords(records); err != nil {
		return nil, cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, cfg, err
	}
	return records, cfg, nil
}
