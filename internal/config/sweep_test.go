package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gvollenweider/dwarf-p-cloudsc/internal/config"
)

const samplePlan = `
build_dir_parent: /opt/cloudsc/build
build_types: [release, bit]
precisions: [double, single]
host_alias: lumi
num_cols: 65536
num_runs: 50
output_dir_parent: /opt/cloudsc/data
variants:
  hip-k-caching:
    num_threads: 1
    nproma: 64
  fortran:
    num_threads: 128
    nproma: 32
`

func writePlan(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sweep.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadSweep_ParsesPlan(t *testing.T) {
	plan, err := config.LoadSweep(writePlan(t, samplePlan))
	require.NoError(t, err)

	assert.Equal(t, "lumi", plan.HostAlias)
	assert.Equal(t, 65536, plan.NumCols)
	assert.Equal(t, 50, plan.NumRuns)
	assert.Len(t, plan.Variants, 2)
	assert.Equal(t, 64, plan.Variants["hip-k-caching"].Nproma)
}

// A plan defines exactly its own variants; the built-in template's entries
// must not ride along, or the sweep benchmarks configurations nobody asked
// for.
func TestLoadSweep_PlanVariantsReplaceTemplate(t *testing.T) {
	const plan = `
build_dir_parent: /opt/cloudsc/build
build_types: [release]
precisions: [double]
num_cols: 65536
num_runs: 50
variants:
  hip-k-caching:
    num_threads: 1
    nproma: 64
`
	loaded, err := config.LoadSweep(writePlan(t, plan))
	require.NoError(t, err)

	require.Len(t, loaded.Variants, 1)
	assert.Contains(t, loaded.Variants, "hip-k-caching")
	assert.NotContains(t, loaded.Variants, "fortran")

	jobs := loaded.Expand()
	require.Len(t, jobs, 1)
	assert.Equal(t, "release/double/hip-k-caching", jobs[0].Label)
}

// Only a plan with no variants section at all inherits the template's.
func TestLoadSweep_OmittedVariantsFallBackToTemplate(t *testing.T) {
	loaded, err := config.LoadSweep(writePlan(t, "num_runs: 5\n"))
	require.NoError(t, err)

	assert.Equal(t, 5, loaded.NumRuns)
	assert.Equal(t, config.DefaultSweep().Variants, loaded.Variants)
}

func TestLoadSweep_RunTimeoutFormats(t *testing.T) {
	const plan = `
run_timeout: 5m
variants:
  fortran:
    num_threads: 24
    nproma: 32
`
	loaded, err := config.LoadSweep(writePlan(t, plan))
	require.NoError(t, err)
	assert.Equal(t, config.Duration(5*time.Minute), loaded.RunTimeout)

	jobs := loaded.Expand()
	require.NotEmpty(t, jobs)
	assert.Equal(t, 5*time.Minute, jobs[0].Run.RunTimeout, "the flag and the plan speak the same format")

	// integer nanoseconds still decode
	loaded, err = config.LoadSweep(writePlan(t, "run_timeout: 1000000000\n"))
	require.NoError(t, err)
	assert.Equal(t, config.Duration(time.Second), loaded.RunTimeout)

	_, err = config.LoadSweep(writePlan(t, "run_timeout: soon\n"))
	assert.Error(t, err, "malformed durations must not decode to zero")
}

func TestLoadSweep_MissingFileIsError(t *testing.T) {
	_, err := config.LoadSweep(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadSweep_InvalidYAML(t *testing.T) {
	_, err := config.LoadSweep(writePlan(t, "variants: [not, a, map"))
	assert.Error(t, err)
}

func TestLoadSweep_NoDefaultFileFallsBack(t *testing.T) {
	oldWD, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(oldWD) })

	plan, err := config.LoadSweep("")
	require.NoError(t, err)
	assert.NotEmpty(t, plan.Variants, "built-in template plan expected")
}

func TestSweepPlan_Expand(t *testing.T) {
	plan, err := config.LoadSweep(writePlan(t, samplePlan))
	require.NoError(t, err)

	jobs := plan.Expand()
	// 2 build types x 2 precisions x 2 variants
	require.Len(t, jobs, 8)

	first := jobs[0]
	assert.Equal(t, "release/double/fortran", first.Label, "variants expand in sorted order")
	assert.Equal(t, filepath.Join("/opt/cloudsc/build", "release", "double"), first.Run.BuildDir)
	assert.Equal(t, 128, first.Run.NumThreads)
	assert.Equal(t, 32, first.Run.Nproma)
	assert.Equal(t, 65536, first.Run.NumCols)
	assert.Equal(t, "lumi", first.Output.HostName)
	assert.Equal(t,
		filepath.Join("/opt/cloudsc/data", "release", "performance.csv"),
		first.Output.OutputCSVFile,
		"each build type appends to its own performance.csv")

	// every job validates
	for _, job := range jobs {
		assert.NoError(t, job.Run.Validate(), job.Label)
	}

	// the grid covers both precisions of each build type
	labels := make(map[string]bool, len(jobs))
	for _, job := range jobs {
		labels[job.Label] = true
	}
	assert.True(t, labels["bit/single/hip-k-caching"])
	assert.True(t, labels["release/single/fortran"])
}

func TestSweepPlan_ExpandWithoutOutputDir(t *testing.T) {
	plan, err := config.LoadSweep(writePlan(t, samplePlan))
	require.NoError(t, err)
	plan.OutputDirParent = ""

	for _, job := range plan.Expand() {
		assert.Empty(t, job.Output.OutputCSVFile, "no output parent means no persistence")
	}
}
