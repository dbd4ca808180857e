/*
PURPOSE:
  Reduces the measured samples of one driver invocation to mean/stddev
  summaries and renders the human-readable performance report.

REQUIREMENTS:
  User-specified:
  - Mean and standard deviation computed independently for runtime and
    throughput.
  - The four numbers are returned AND logged, keyed by problem size.

  Implementation-discovered:
  - Stddev convention fixed deliberately: SAMPLE standard deviation (N-1
    denominator), gonum's stat.StdDev default. The population (N) formula
    differs materially for small num_runs; picking one and testing it beats
    leaving it ambiguous.
  - num_runs = 1 is valid; gonum returns NaN for a single sample, so a
    guard maps that to 0.

ARCHITECTURE INTEGRATION:
  - Called by: internal/engine/runner.go (once, after all runs succeed)
  - Dependencies: gonum.org/v1/gonum/stat

ERROR HANDLING:
  - None: the orchestrator guarantees a non-empty sample sequence.

IMPLEMENTATION RULES:
  - Do not round; the CSV sink and the report format independently.

USAGE:
  summary := engine.Summarize(numCols, samples)
  fmt.Print(summary.Report())

SELF-HEALING INSTRUCTIONS:
  - If percentiles or confidence intervals are wanted, extend Summary and
    keep gonum as the math backend.

RELATED FILES:
  - internal/model/types.go

MAINTENANCE:
  - Keep the report format stable; sweep logs are diffed across hosts.
*/

package engine

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/stat"

	"github.com/gvollenweider/dwarf-p-cloudsc/internal/model"
)

// Summarize reduces the ordered sample sequence of one invocation.
// Standard deviation uses the sample (N-1) formula; a single run yields 0.
func Summarize(numCols int, samples []model.Sample) model.Summary {
	runtimes := make([]float64, len(samples))
	mflops := make([]float64, len(samples))
	for i, s := range samples {
		runtimes[i] = s.RuntimeMS
		mflops[i] = s.MFlops
	}

	return model.Summary{
		NumCols:       numCols,
		RuntimeMean:   stat.Mean(runtimes, nil),
		RuntimeStddev: sampleStddev(runtimes),
		MFlopsMean:    stat.Mean(mflops, nil),
		MFlopsStddev:  sampleStddev(mflops),
	}
}

func sampleStddev(xs []float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	return stat.StdDev(xs, nil)
}

// Report renders the performance summary the way the historic driver
// printed it: keyed by the number of columns, runtime and throughput with
// one-sigma spreads.
func Report(s model.Summary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Performance for num_cols = %d:\n", s.NumCols)
	fmt.Fprintf(&b, "  runtime:  %.3f \u00b1 %.3f ms\n", s.RuntimeMean, s.RuntimeStddev)
	fmt.Fprintf(&b, "  mflops:   %.3f \u00b1 %.3f\n", s.MFlopsMean, s.MFlopsStddev)
	return b.String()
}
