package engine_test

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gvollenweider/dwarf-p-cloudsc/internal/engine"
	"github.com/gvollenweider/dwarf-p-cloudsc/internal/model"
)

// Hand-computed example pinning the sample (N-1) stddev convention:
// [10, 12, 14] -> mean 12, variance (4+0+4)/2 = 4, stddev 2.
func TestSummarize_HandComputed(t *testing.T) {
	samples := []model.Sample{
		{RuntimeMS: 10.0, MFlops: 100.0},
		{RuntimeMS: 12.0, MFlops: 200.0},
		{RuntimeMS: 14.0, MFlops: 300.0},
	}

	s := engine.Summarize(16384, samples)

	assert.Equal(t, 16384, s.NumCols)
	assert.InDelta(t, 12.0, s.RuntimeMean, 1e-12)
	assert.InDelta(t, 2.0, s.RuntimeStddev, 1e-12)
	assert.InDelta(t, 200.0, s.MFlopsMean, 1e-12)
	assert.InDelta(t, 100.0, s.MFlopsStddev, 1e-12)
}

// A single run is a valid minimal case: stddev is 0, never NaN.
func TestSummarize_SingleRun(t *testing.T) {
	s := engine.Summarize(1, []model.Sample{{RuntimeMS: 5.0, MFlops: 100.0}})

	assert.Equal(t, 5.0, s.RuntimeMean)
	assert.Equal(t, 100.0, s.MFlopsMean)
	assert.Zero(t, s.RuntimeStddev)
	assert.Zero(t, s.MFlopsStddev)
	assert.False(t, math.IsNaN(s.RuntimeStddev))
}

func TestSummarize_IdenticalSamples(t *testing.T) {
	samples := make([]model.Sample, 10)
	for i := range samples {
		samples[i] = model.Sample{RuntimeMS: 3.5, MFlops: 42.0}
	}

	s := engine.Summarize(64, samples)

	assert.InDelta(t, 3.5, s.RuntimeMean, 1e-12)
	assert.InDelta(t, 0.0, s.RuntimeStddev, 1e-12)
	assert.InDelta(t, 42.0, s.MFlopsMean, 1e-12)
}

func TestReport_KeyedByProblemSize(t *testing.T) {
	s := engine.Summarize(8192, []model.Sample{{RuntimeMS: 1.0, MFlops: 2.0}})

	report := engine.Report(s)
	require.True(t, strings.Contains(report, "num_cols = 8192"), report)
	assert.Contains(t, report, "runtime")
	assert.Contains(t, report, "mflops")
}
