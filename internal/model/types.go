/*
PURPOSE:
  Defines the core data structures used throughout the CLOUDSC benchmark
  driver. These models represent per-run samples, aggregated summaries and
  the persisted performance record.

REQUIREMENTS:
  User-specified:
  - Record runtime (ms) and throughput (MFLOP/s) per measured run.
  - Persist one row per driver invocation: host, precision, variant,
    problem size, thread count, block size, run count, and the four
    aggregate statistics.

  Implementation-discovered:
  - Summary needs the problem size too, so the report can be keyed by it.
  - CSV column order is fixed by the historic performance.csv layout;
    Record() owns that ordering.

ARCHITECTURE INTEGRATION:
  - Used by: internal/engine, internal/output
  - Shared across boundaries.

ERROR HANDLING:
  - None (pure data structs).

IMPLEMENTATION RULES:
  - Keep structs simple and public.
  - float64 everywhere; the binaries print decimal floats.

USAGE:
  s := model.Sample{RuntimeMS: 5.0, MFlops: 100.0}

SELF-HEALING INSTRUCTIONS:
  - If new counters are needed, add field and update Record()/Header().

RELATED FILES:
  - internal/output/csv.go
  - internal/engine/stats.go

MAINTENANCE:
  - Update when adding new performance counters.
*/

package model

import "fmt"

// Sample is the outcome of a single measured run: wall-clock runtime in
// milliseconds and throughput in MFLOP/s, as reported by the binary itself.
type Sample struct {
	RuntimeMS float64
	MFlops    float64
}

// Summary aggregates the samples of one driver invocation.
type Summary struct {
	NumCols int

	RuntimeMean   float64
	RuntimeStddev float64
	MFlopsMean    float64
	MFlopsStddev  float64
}

// PerformanceRecord is the persisted unit: one row per driver invocation
// that configured a sink. Append-only.
type PerformanceRecord struct {
	Host       string
	Precision  string
	Variant    string
	NumCols    int
	NumThreads int
	Nproma     int
	NumRuns    int

	RuntimeMean   float64
	RuntimeStddev float64
	MFlopsMean    float64
	MFlopsStddev  float64
}

// Header returns the CSV header row. Column order is fixed; appenders rely
// on it matching Record().
func Header() []string {
	return []string{
		"host", "precision", "variant",
		"num_cols", "num_threads", "nproma", "num_runs",
		"runtime_mean", "runtime_stddev", "mflops_mean", "mflops_stddev",
	}
}

// Record renders the row in Header() order.
func (r PerformanceRecord) Record() []string {
	return []string{
		r.Host,
		r.Precision,
		r.Variant,
		fmt.Sprintf("%d", r.NumCols),
		fmt.Sprintf("%d", r.NumThreads),
		fmt.Sprintf("%d", r.Nproma),
		fmt.Sprintf("%d", r.NumRuns),
		fmt.Sprintf("%f", r.RuntimeMean),
		fmt.Sprintf("%f", r.RuntimeStddev),
		fmt.Sprintf("%f", r.MFlopsMean),
		fmt.Sprintf("%f", r.MFlopsStddev),
	}
}
