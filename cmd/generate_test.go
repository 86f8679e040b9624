package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sim "github.com/inference-sim/cpusim/sim"
	"github.com/inference-sim/cpusim/sim/workload"
)

func TestWriteGeneratedBundle_LoadsAsWorkload(t *testing.T) {
	// GIVEN the default generator spec with a small count
	spec := workload.DefaultGeneratorSpec()
	spec.Count = 5

	// WHEN written as a workload file
	var buf bytes.Buffer
	require.NoError(t, writeGeneratedBundle(&buf, &spec))

	// THEN it parses and validates as a workload bundle carrying the seed
	bundle, err := sim.ParseWorkloadBundle(buf.Bytes())
	require.NoError(t, err)
	require.NoError(t, bundle.Validate())
	assert.Len(t, bundle.Processes, 5)
	require.NotNil(t, bundle.Seed)
	assert.Equal(t, spec.Seed, *bundle.Seed)

	want, err := workload.GenerateProcesses(&spec)
	require.NoError(t, err)
	assert.Equal(t, want, bundle.Processes)
}

func TestWriteGeneratedBundle_InvalidSpec(t *testing.T) {
	spec := workload.DefaultGeneratorSpec()
	spec.Rate = 0
	var buf bytes.Buffer
	assert.Error(t, writeGeneratedBundle(&buf, &spec))
	assert.Zero(t, buf.Len())
}

func TestWriteGeneratedFile_WritesLoadableWorkload(t *testing.T) {
	// GIVEN an output path in a fresh directory
	spec := workload.DefaultGeneratorSpec()
	spec.Count = 3
	path := filepath.Join(t.TempDir(), "generated.yaml")

	// WHEN the workload is written to it
	require.NoError(t, writeGeneratedFile(path, &spec))

	// THEN the closed file loads as a valid bundle
	bundle, err := sim.LoadWorkloadBundle(path)
	require.NoError(t, err)
	require.NoError(t, bundle.Validate())
	assert.Len(t, bundle.Processes, 3)
}

func TestWriteGeneratedFile_ReportsCreateError(t *testing.T) {
	spec := workload.DefaultGeneratorSpec()
	err := writeGeneratedFile(filepath.Join(t.TempDir(), "missing", "generated.yaml"), &spec)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "creating")
}

func TestWriteGeneratedFile_InvalidSpecLeavesNoData(t *testing.T) {
	spec := workload.DefaultGeneratorSpec()
	spec.Rate = 0
	path := filepath.Join(t.TempDir(), "generated.yaml")

	assert.Error(t, writeGeneratedFile(path, &spec))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Empty(t, data)
}
