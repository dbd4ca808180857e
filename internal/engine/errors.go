/*
PURPOSE:
  Defines the error taxonomy of the benchmark engine. Callers need to tell
  a broken setup (ConfigurationError) from a broken binary (ExecutionError),
  a broken output format (ParseError), a hung child (TimeoutError) and a
  broken sink (PersistenceError).

REQUIREMENTS:
  User-specified:
  - No automatic retries anywhere: a flaky run is a signal worth surfacing,
    not masking.
  - ParseError must distinguish "line/token not found" (structural) from
    "token not numeric" (value), so operators can tell a broken binary from
    a broken parser.
  - A persistence failure must not invalidate the already-computed
    statistics.

  Implementation-discovered:
  - Typed structs + errors.As cover every caller; sentinel values would
    lose the per-error payloads (stderr text, offsets).

ARCHITECTURE INTEGRATION:
  - Produced by: executor.go, parser.go, runner.go, internal/output
  - Consumed by: internal/cli (exit paths), tests.

ERROR HANDLING:
  - This file IS the error handling.

IMPLEMENTATION RULES:
  - Every type implements error via a value receiver so errors.As works on
    both values and pointers consistently; we match on the value form.
  - Wrap causes with Unwrap() where a lower-level error exists.

USAGE:
  var perr engine.ParseError
  if errors.As(err, &perr) && perr.Kind == engine.ParseStructural { ... }

SELF-HEALING INSTRUCTIONS:
  - New failure modes get a new type here, not a reused one.

RELATED FILES:
  - internal/engine/runner.go

MAINTENANCE:
  - Keep DESIGN.md's taxonomy table in sync.
*/

package engine

import (
	"fmt"
	"time"
)

// ConfigurationError reports an invalid setup: a missing executable or an
// invalid parameter combination. Fatal, never retried, raised before any
// child process is spawned.
type ConfigurationError struct {
	Reason string
}

func (e ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s", e.Reason)
}

// ExecutionError reports a child process that exited non-zero. Stderr holds
// the captured error stream verbatim.
type ExecutionError struct {
	Executable string
	ExitCode   int
	Stderr     string
}

func (e ExecutionError) Error() string {
	return fmt.Sprintf("%s exited with code %d: %s", e.Executable, e.ExitCode, e.Stderr)
}

// TimeoutError reports a child process that outlived its bounded wait.
type TimeoutError struct {
	Executable string
	Limit      time.Duration
}

func (e TimeoutError) Error() string {
	return fmt.Sprintf("%s did not finish within %s", e.Executable, e.Limit)
}

// ParseKind distinguishes the two ways a variant's output can defeat the
// layout rules.
type ParseKind int

const (
	// ParseStructural: the expected line or token does not exist.
	ParseStructural ParseKind = iota
	// ParseNumeric: the token exists but is not a number.
	ParseNumeric
)

func (k ParseKind) String() string {
	if k == ParseNumeric {
		return "numeric"
	}
	return "structural"
}

// ParseError reports output that does not match the variant family's
// expected layout. Silent substitution of defaults would corrupt benchmark
// data; this error is the loud alternative.
type ParseError struct {
	Variant string
	Kind    ParseKind
	Detail  string
}

func (e ParseError) Error() string {
	return fmt.Sprintf("cannot parse %s output (%s): %s", e.Variant, e.Kind, e.Detail)
}

// PersistenceError reports a sink that could not be created or appended to.
// Statistics already computed remain valid when this surfaces.
type PersistenceError struct {
	Path string
	Err  error
}

func (e PersistenceError) Error() string {
	return fmt.Sprintf("cannot persist record to %s: %v", e.Path, e.Err)
}

func (e PersistenceError) Unwrap() error { return e.Err }
