/*
PURPOSE:
  Defines the immutable configuration values consumed by the engine:
  RunConfig (one benchmark invocation) and OutputConfig (where results go).
  Adheres to "Config IS Code" philosophy.

REQUIREMENTS:
  User-specified:
  - Configuration is built from defaults through a chain of With* transforms
    that each return a new value; never mutated in place (matches the
    original driver's with_build_dir(...).with_precision(...) chain).
  - nproma is clamped to min(num_cols, nproma) before use: the block size
    never exceeds the problem size.
  - Missing output paths are a valid state, not an error (no persistence).

  Implementation-discovered:
  - Value receivers give the copy semantics for free; a With* method
    mutates its local copy and returns it.
  - Validation belongs here, upstream of the engine, so the engine can
    trust everything except the nproma clamp.

ARCHITECTURE INTEGRATION:
  - Used by: internal/cli, internal/engine
  - Dependencies: none (pure values; the yaml sweep plan lives in sweep.go)

ERROR HANDLING:
  - Validate() returns an engine-agnostic error describing the first
    violated constraint; the CLI surfaces it before anything runs.

IMPLEMENTATION RULES:
  - Never add a pointer receiver or a setter to these types.
  - Defaults mirror the original driver (fortran variant, double precision,
    nproma 32, one column, one run, one thread).

USAGE:
  cfg := config.DefaultRun().
      WithVariant("cuda").
      WithNumCols(16384).
      WithNumRuns(20)

SELF-HEALING INSTRUCTIONS:
  - If new fields are needed, add the field, a With* transform, and a
    Validate() clause together.

RELATED FILES:
  - internal/cli/run.go
  - internal/engine/runner.go

MAINTENANCE:
  - Update when the benchmark binaries grow new positional knobs.
*/

package config

import (
	"fmt"
	"time"
)

// Precision values accepted by the driver.
const (
	PrecisionDouble = "double"
	PrecisionSingle = "single"
)

// RunConfig describes one benchmark invocation. Values are immutable:
// every With* transform returns a new RunConfig.
type RunConfig struct {
	BuildDir   string
	Precision  string
	Variant    string
	Nproma     int
	NumCols    int
	NumRuns    int
	NumThreads int

	// RunTimeout bounds a single child-process run. Zero means unbounded,
	// which matches the original driver's contract: a hung binary hangs
	// the harness.
	RunTimeout time.Duration
}

// DefaultRun returns the default invocation configuration.
func DefaultRun() RunConfig {
	return RunConfig{
		BuildDir:   "fortran",
		Precision:  PrecisionDouble,
		Variant:    "fortran",
		Nproma:     32,
		NumCols:    1,
		NumRuns:    1,
		NumThreads: 1,
	}
}

func (c RunConfig) WithBuildDir(dir string) RunConfig { c.BuildDir = dir; return c }

func (c RunConfig) WithPrecision(p string) RunConfig { c.Precision = p; return c }

func (c RunConfig) WithVariant(v string) RunConfig { c.Variant = v; return c }

func (c RunConfig) WithNproma(n int) RunConfig { c.Nproma = n; return c }

func (c RunConfig) WithNumCols(n int) RunConfig { c.NumCols = n; return c }

func (c RunConfig) WithNumRuns(n int) RunConfig { c.NumRuns = n; return c }

func (c RunConfig) WithNumThreads(n int) RunConfig { c.NumThreads = n; return c }

func (c RunConfig) WithRunTimeout(d time.Duration) RunConfig { c.RunTimeout = d; return c }

// EffectiveNproma is the block size actually passed to the binary:
// min(NumCols, Nproma). The clamp holds regardless of the order in which
// the transforms were applied, because it is evaluated at use time.
func (c RunConfig) EffectiveNproma() int {
	if c.NumCols < c.Nproma {
		return c.NumCols
	}
	return c.Nproma
}

// Validate checks the parameter constraints the engine relies on.
func (c RunConfig) Validate() error {
	if c.Variant == "" {
		return fmt.Errorf("variant must not be empty")
	}
	if c.Precision != PrecisionDouble && c.Precision != PrecisionSingle {
		return fmt.Errorf("precision must be %q or %q, got %q", PrecisionDouble, PrecisionSingle, c.Precision)
	}
	if c.NumCols < 1 {
		return fmt.Errorf("num_cols must be positive, got %d", c.NumCols)
	}
	if c.Nproma < 1 {
		return fmt.Errorf("nproma must be positive, got %d", c.Nproma)
	}
	if c.NumRuns < 1 {
		return fmt.Errorf("num_runs must be >= 1, got %d", c.NumRuns)
	}
	if c.NumThreads < 1 {
		return fmt.Errorf("num_threads must be >= 1, got %d", c.NumThreads)
	}
	if c.RunTimeout < 0 {
		return fmt.Errorf("run timeout must not be negative, got %s", c.RunTimeout)
	}
	return nil
}

// OutputConfig describes where one invocation's summary is persisted.
// Empty paths mean "do not persist", which is a valid, non-error state.
type OutputConfig struct {
	OutputCSVFile  string
	OutputJSONFile string
	HostName       string
}

// DefaultOutput returns the default output configuration: nothing persisted,
// no host label.
func DefaultOutput() OutputConfig {
	return OutputConfig{}
}

func (c OutputConfig) WithOutputCSVFile(path string) OutputConfig { c.OutputCSVFile = path; return c }

func (c OutputConfig) WithOutputJSONFile(path string) OutputConfig {
	c.OutputJSONFile = path
	return c
}

func (c OutputConfig) WithHostName(name string) OutputConfig { c.HostName = name; return c }
