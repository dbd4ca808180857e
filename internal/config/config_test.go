package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gvollenweider/dwarf-p-cloudsc/internal/config"
)

func TestRunConfig_TransformsReturnCopies(t *testing.T) {
	base := config.DefaultRun()
	derived := base.
		WithVariant("cuda").
		WithNumCols(16384).
		WithNumRuns(20)

	// base is untouched
	assert.Equal(t, "fortran", base.Variant)
	assert.Equal(t, 1, base.NumCols)
	assert.Equal(t, 1, base.NumRuns)

	assert.Equal(t, "cuda", derived.Variant)
	assert.Equal(t, 16384, derived.NumCols)
	assert.Equal(t, 20, derived.NumRuns)
}

// The clamp holds regardless of the order in which the transforms were
// applied, because it is evaluated at use time.
func TestRunConfig_NpromaClampOrderIndependent(t *testing.T) {
	a := config.DefaultRun().WithNproma(128).WithNumCols(40)
	b := config.DefaultRun().WithNumCols(40).WithNproma(128)

	assert.Equal(t, 40, a.EffectiveNproma())
	assert.Equal(t, 40, b.EffectiveNproma())

	// block size never exceeds problem size, but smaller blocks pass through
	c := config.DefaultRun().WithNumCols(16384).WithNproma(32)
	assert.Equal(t, 32, c.EffectiveNproma())

	// num_cols == nproma is the boundary, not a clamp
	d := config.DefaultRun().WithNumCols(64).WithNproma(64)
	assert.Equal(t, 64, d.EffectiveNproma())
}

func TestRunConfig_Validate(t *testing.T) {
	valid := config.DefaultRun().WithNumCols(100).WithNumRuns(5)
	require.NoError(t, valid.Validate())

	tests := []struct {
		name string
		cfg  config.RunConfig
	}{
		{"empty variant", valid.WithVariant("")},
		{"unknown precision", valid.WithPrecision("half")},
		{"zero num_cols", valid.WithNumCols(0)},
		{"negative nproma", valid.WithNproma(-1)},
		{"zero num_runs", valid.WithNumRuns(0)},
		{"zero num_threads", valid.WithNumThreads(0)},
		{"negative timeout", valid.WithRunTimeout(-time.Second)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.cfg.Validate())
		})
	}
}

func TestOutputConfig_EmptyIsValid(t *testing.T) {
	out := config.DefaultOutput()
	assert.Empty(t, out.OutputCSVFile)
	assert.Empty(t, out.HostName)

	derived := out.WithOutputCSVFile("performance.csv").WithHostName("daint")
	assert.Empty(t, out.OutputCSVFile, "transforms must not mutate the receiver")
	assert.Equal(t, "performance.csv", derived.OutputCSVFile)
	assert.Equal(t, "daint", derived.HostName)
}
