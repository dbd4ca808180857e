/*
PURPOSE:
  High-level runner that orchestrates one benchmark invocation, and the
  sweep loop that chains invocations across a configuration grid.

REQUIREMENTS:
  User-specified:
  - Strictly linear state machine, no branching back:
    locate executable -> warm-up -> N measured runs -> aggregate ->
    optional persist.
  - The warm-up output is discarded entirely; it only primes device/JIT
    caches so measured runs see steady state.
  - Any single run's failure aborts the invocation; no partial results are
    aggregated or persisted.
  - A persistence failure is reported but the computed summary survives.

  Implementation-discovered:
  - The missing-executable check must happen before anything is spawned;
    tests pin that with a stub executor counting invocations.
  - Sweep policy (continue past a failed configuration) deliberately lives
    here, outside Core: Core aborts, the sweep decides what aborting means.

ARCHITECTURE INTEGRATION:
  - Called by: internal/cli
  - Uses: executor.go, parser.go, stats.go, internal/output sinks

ERROR HANDLING:
  - ConfigurationError before spawn, ExecutionError/TimeoutError from runs,
    ParseError from extraction, PersistenceError from sinks. No retries.

IMPLEMENTATION RULES:
  - One child at a time; Core blocks on each run before issuing the next.
  - The sample slice is owned by one Core call and never escapes it.

USAGE:
  r := engine.NewRunner()
  summary, err := r.Core(ctx, runCfg, outCfg)

SELF-HEALING INSTRUCTIONS:
  - If an invocation hangs, set a run timeout; the unbounded default
    mirrors the historic driver.

RELATED FILES:
  - internal/engine/executor.go
  - internal/engine/parser.go
  - internal/output/csv.go

MAINTENANCE:
  - Update if the binaries move out of <build_dir>/bin/dwarf-cloudsc-<variant>.
*/

package engine

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gvollenweider/dwarf-p-cloudsc/internal/config"
	"github.com/gvollenweider/dwarf-p-cloudsc/internal/model"
	"github.com/gvollenweider/dwarf-p-cloudsc/internal/output"
)

// Runner drives benchmark invocations through a CommandExecutor.
type Runner struct {
	Exec CommandExecutor
}

// NewRunner returns a Runner backed by real subprocesses.
func NewRunner() *Runner {
	return &Runner{Exec: Subprocess{}}
}

// ExecutablePath resolves the benchmark binary for a configuration:
// <build_dir>/bin/dwarf-cloudsc-<variant>.
func ExecutablePath(run config.RunConfig) string {
	return filepath.Join(run.BuildDir, "bin", "dwarf-cloudsc-"+run.Variant)
}

// Core executes one full invocation: locate -> warm-up -> measured runs ->
// aggregate -> optional persist.
//
// On a PersistenceError the returned Summary is still valid; every other
// error leaves it zero.
func (r *Runner) Core(ctx context.Context, run config.RunConfig, out config.OutputConfig) (model.Summary, error) {
	if err := run.Validate(); err != nil {
		return model.Summary{}, ConfigurationError{Reason: err.Error()}
	}

	executable := ExecutablePath(run)
	if _, err := os.Stat(executable); err != nil {
		return model.Summary{}, ConfigurationError{
			Reason: fmt.Sprintf("the executable %s does not exist", executable),
		}
	}

	args := []string{
		strconv.Itoa(run.NumThreads),
		strconv.Itoa(run.NumCols),
		strconv.Itoa(run.EffectiveNproma()),
	}

	// Warm-up: identical invocation, output discarded. A failure here
	// aborts before any measurement is attempted.
	output.Logger.Info("Warming up", "executable", executable, "variant", run.Variant)
	if _, err := r.execute(ctx, run, executable, args); err != nil {
		return model.Summary{}, err
	}

	samples := make([]model.Sample, 0, run.NumRuns)
	for i := 0; i < run.NumRuns; i++ {
		inv, err := r.execute(ctx, run, executable, args)
		if err != nil {
			return model.Summary{}, err
		}
		sample, err := ParseVariantOutput(run.Variant, inv)
		if err != nil {
			return model.Summary{}, err
		}
		output.Logger.Debug("Measured run",
			"run", i+1,
			"runtime_ms", sample.RuntimeMS,
			"mflops", sample.MFlops,
		)
		samples = append(samples, sample)
	}

	summary := Summarize(run.NumCols, samples)
	fmt.Print(Report(summary))

	if err := persist(run, out, summary); err != nil {
		// The statistics are already computed and logged; the caller gets
		// both the summary and the persistence failure.
		output.Logger.Error("Failed to persist record", "error", err)
		return summary, err
	}

	return summary, nil
}

// execute issues one child run, bounded by the configured run timeout.
func (r *Runner) execute(ctx context.Context, run config.RunConfig, executable string, args []string) (Invocation, error) {
	if run.RunTimeout > 0 {
		bounded, cancel := context.WithTimeout(ctx, run.RunTimeout)
		defer cancel()
		return r.Exec.Execute(bounded, executable, args)
	}
	return r.Exec.Execute(ctx, executable, args)
}

// persist appends the record to the configured sinks. Unconfigured sinks
// are a silent no-op.
func persist(run config.RunConfig, out config.OutputConfig, s model.Summary) error {
	if out.OutputCSVFile == "" && out.OutputJSONFile == "" {
		return nil
	}

	record := model.PerformanceRecord{
		Host:          out.HostName,
		Precision:     run.Precision,
		Variant:       run.Variant,
		NumCols:       run.NumCols,
		NumThreads:    run.NumThreads,
		Nproma:        run.Nproma,
		NumRuns:       run.NumRuns,
		RuntimeMean:   s.RuntimeMean,
		RuntimeStddev: s.RuntimeStddev,
		MFlopsMean:    s.MFlopsMean,
		MFlopsStddev:  s.MFlopsStddev,
	}

	if out.OutputCSVFile != "" {
		if err := appendCSV(out.OutputCSVFile, record); err != nil {
			return PersistenceError{Path: out.OutputCSVFile, Err: err}
		}
	}
	if out.OutputJSONFile != "" {
		if err := appendJSON(out.OutputJSONFile, record); err != nil {
			return PersistenceError{Path: out.OutputJSONFile, Err: err}
		}
	}
	return nil
}

func appendCSV(path string, record model.PerformanceRecord) error {
	w, err := output.NewCSVAppender(path)
	if err != nil {
		return err
	}
	if err := w.Append(record); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}

func appendJSON(path string, record model.PerformanceRecord) error {
	w, err := output.NewJSONAppender(path)
	if err != nil {
		return err
	}
	if err := w.Append(record); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}

// Sweep runs every job of an expanded plan in order. A failed configuration
// is logged and skipped; the remaining grid still runs. The returned error
// summarizes the failures, if any.
func (r *Runner) Sweep(ctx context.Context, jobs []config.SweepJob) error {
	var failed []string

	for _, job := range jobs {
		output.Logger.Info("Sweep configuration start", "label", job.Label)

		if job.Output.OutputCSVFile != "" {
			if err := os.MkdirAll(filepath.Dir(job.Output.OutputCSVFile), 0755); err != nil {
				output.Logger.Error("Failed to create output directory", "label", job.Label, "error", err)
				failed = append(failed, job.Label)
				continue
			}
		}

		if _, err := r.Core(ctx, job.Run, job.Output); err != nil {
			var perr PersistenceError
			if errors.As(err, &perr) {
				// Statistics were produced and logged; only the record is
				// lost. Still counts as a failure for the exit code.
				output.Logger.Error("Sweep configuration persisted nothing", "label", job.Label, "error", err)
			} else {
				output.Logger.Error("Sweep configuration failed", "label", job.Label, "error", err)
			}
			failed = append(failed, job.Label)
			continue
		}

		output.Logger.Info("Sweep configuration done", "label", job.Label)
	}

	if len(failed) > 0 {
		return fmt.Errorf("%d of %d sweep configurations failed: %v", len(failed), len(jobs), failed)
	}
	return nil
}
