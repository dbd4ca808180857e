/*
PURPOSE:
  Runs one benchmark binary to completion as a child process, capturing
  stdout, stderr and the exit code.

REQUIREMENTS:
  User-specified:
  - Invocation contract: `executable thread_count problem_size block_size`,
    three positional decimal strings; exit 0 = success, nonzero = failure
    with diagnostics on stderr.
  - Each invocation is atomic: ran to completion or failed, no partial
    success.
  - Non-zero exit surfaces the captured stderr verbatim.

  Implementation-discovered:
  - The original harness blocks forever on a hung child. A bounded wait via
    context deadline closes that gap; expiry is its own failure kind
    (TimeoutError), not an ExecutionError.
  - An interface seam lets the orchestrator be tested with a stub executor
    that counts invocations.

ARCHITECTURE INTEGRATION:
  - Called by: internal/engine/runner.go
  - Produces: Invocation consumed by parser.go

ERROR HANDLING:
  - Non-zero exit -> ExecutionError (stderr verbatim).
  - Deadline expiry -> TimeoutError.
  - Parent-context cancellation -> wrapped context error, never an
    ExecutionError with the kill's exit status.
  - Spawn failures (permissions, not-a-binary) -> wrapped start error.

IMPLEMENTATION RULES:
  - Buffer both streams fully; the profiling banners are a few KB at most.
  - One child at a time; Execute blocks until the child exits.
  - WaitDelay must stay set: without it, Wait keeps draining the stream
    pipes after the deadline kill, and any forked grandchild holding the
    write ends stalls the harness past the bound it advertises.

USAGE:
  inv, err := engine.Subprocess{}.Execute(ctx, path, []string{"1", "16384", "32"})

SELF-HEALING INSTRUCTIONS:
  - If a binary starts writing megabytes of output, switch the buffers to
    the bounded-capture pattern before memory becomes a problem.

RELATED FILES:
  - internal/engine/runner.go
  - internal/engine/parser.go

MAINTENANCE:
  - Update if the binaries grow flags beyond the three positional args.
*/

package engine

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"
)

// Invocation is the captured outcome of one completed child process.
type Invocation struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
}

// CommandExecutor runs an executable with positional arguments and blocks
// until it exits.
type CommandExecutor interface {
	Execute(ctx context.Context, executable string, args []string) (Invocation, error)
}

// Subprocess is the real CommandExecutor, backed by os/exec.
type Subprocess struct{}

// Execute runs the child to completion. The caller bounds the wait through
// ctx; without a deadline a hung child blocks indefinitely.
func (Subprocess) Execute(ctx context.Context, executable string, args []string) (Invocation, error) {
	// Snapshot the budget up front; the deadline is absolute and the error
	// path wants to report the relative limit.
	var budget time.Duration
	if deadline, ok := ctx.Deadline(); ok {
		budget = time.Until(deadline).Round(time.Millisecond)
	}

	cmd := exec.CommandContext(ctx, executable, args...)

	// With in-memory buffers, Run waits on internal pipe copies after the
	// deadline kill; a forked grandchild inheriting the write ends keeps
	// those pipes open and stalls Wait past the bound. WaitDelay makes
	// Wait abandon the pipes shortly after cancellation.
	cmd.WaitDelay = time.Second

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	inv := Invocation{
		Stdout: stdout.Bytes(),
		Stderr: stderr.Bytes(),
	}

	if err == nil {
		return inv, nil
	}

	// Context expiry kills the child; report the deadline as a timeout and
	// a parent cancellation as itself, never as the kill's exit status.
	if ctxErr := ctx.Err(); ctxErr != nil {
		if errors.Is(ctxErr, context.DeadlineExceeded) {
			return inv, TimeoutError{Executable: executable, Limit: budget}
		}
		return inv, fmt.Errorf("%s interrupted: %w", executable, ctxErr)
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		inv.ExitCode = exitErr.ExitCode()
		return inv, ExecutionError{
			Executable: executable,
			ExitCode:   inv.ExitCode,
			Stderr:     stderr.String(),
		}
	}

	return inv, fmt.Errorf("failed to start %s: %w", executable, err)
}
