// Package executor runs a resolved plan against the host process
// environment.
//
// Execution is sequential and blocking: each child process must exit
// before the next step starts, since later steps may depend on side
// effects of earlier ones. Child stdout/stderr are passed through to
// the invoking terminal; nothing is captured or buffered.
//
// A step exiting non-zero is not an error at this level. It is
// recorded in the step's [Result] and governed by the on-failure
// policy. Only a failure to spawn the child at all ([*SpawnError]) or
// a cancelled context aborts the plan as a fatal error.
package executor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"proj/internal/config"
	"proj/internal/resolver"
)

// Result records the outcome of one executed plan step.
type Result struct {
	// Name is the command's declared name.
	Name string

	// ExitCode is the child's exit status. Zero on success; always zero
	// for dry-run steps.
	ExitCode int

	// Duration is the wall-clock time the step took.
	Duration time.Duration
}

// SpawnError reports a child process that could not be started at all,
// e.g. a missing binary or a workdir that does not exist. It aborts
// the plan regardless of the on-failure policy.
type SpawnError struct {
	Name string
	Err  error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("cannot start command %q: %v", e.Name, e.Err)
}

func (e *SpawnError) Unwrap() error { return e.Err }

// StepStartFunc is called before each step begins. index is 1-based.
type StepStartFunc func(index, total int, cmd *config.Command)

// Options configures one [Execute] call.
type Options struct {
	// OnFailure is the failure policy: [config.OnFailureStop] (default)
	// or [config.OnFailureContinue].
	OnFailure string

	// BaseDir is the project directory. Commands without a workdir run
	// here; relative workdirs resolve against it.
	BaseDir string

	// DryRun prints each invocation instead of spawning it.
	DryRun bool

	// Stdout and Stderr are handed to child processes. They default to
	// the host process streams.
	Stdout io.Writer
	Stderr io.Writer

	// OnStepStart, when set, is called before each step.
	OnStepStart StepStartFunc
}

// Execute runs every step of plan in order under the given options.
//
// The returned results cover the steps that actually ran (or were
// dry-run). Under the stop policy, steps after the first failure are
// skipped. Execute returns a non-nil error only for fatal conditions:
// a spawn failure or a cancelled context; both abort the remaining
// plan immediately.
func Execute(ctx context.Context, plan resolver.Plan, opts Options) ([]Result, error) {
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}

	results := make([]Result, 0, len(plan))
	for i, cmd := range plan {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		if opts.OnStepStart != nil {
			opts.OnStepStart(i+1, len(plan), cmd)
		}

		res, err := runStep(ctx, cmd, opts)
		if err != nil {
			return results, err
		}
		results = append(results, res)

		if res.ExitCode != 0 && opts.OnFailure != config.OnFailureContinue {
			break
		}
	}
	return results, nil
}

// AnyFailed reports whether any recorded step exited non-zero.
func AnyFailed(results []Result) bool {
	for _, r := range results {
		if r.ExitCode != 0 {
			return true
		}
	}
	return false
}

// TotalDuration sums the step durations.
func TotalDuration(results []Result) time.Duration {
	var total time.Duration
	for _, r := range results {
		total += r.Duration
	}
	return total
}

func runStep(ctx context.Context, cmd *config.Command, opts Options) (Result, error) {
	argv, err := cmd.Exec.Argv()
	if err != nil {
		return Result{}, &SpawnError{Name: cmd.Name, Err: err}
	}

	if opts.DryRun {
		fmt.Fprintf(opts.Stdout, "dry run: %s\n", cmd.Exec)
		return Result{Name: cmd.Name}, nil
	}

	child := exec.CommandContext(ctx, argv[0], argv[1:]...)
	child.Dir = workdir(cmd, opts.BaseDir)
	child.Env = mergedEnv(cmd.Env)
	child.Stdin = os.Stdin
	child.Stdout = opts.Stdout
	child.Stderr = opts.Stderr

	start := time.Now()
	runErr := child.Run()
	elapsed := time.Since(start)

	if runErr != nil {
		// Interrupted: the child was killed via the context. Report the
		// cancellation, not the child's exit status.
		if ctx.Err() != nil {
			return Result{}, ctx.Err()
		}
		var exitErr *exec.ExitError
		if errors.As(runErr, &exitErr) {
			return Result{Name: cmd.Name, ExitCode: exitErr.ExitCode(), Duration: elapsed}, nil
		}
		return Result{}, &SpawnError{Name: cmd.Name, Err: runErr}
	}

	return Result{Name: cmd.Name, Duration: elapsed}, nil
}

// workdir resolves the effective working directory for a command.
func workdir(cmd *config.Command, baseDir string) string {
	if cmd.Workdir == "" {
		return baseDir
	}
	if filepath.IsAbs(cmd.Workdir) {
		return cmd.Workdir
	}
	return filepath.Join(baseDir, cmd.Workdir)
}

// mergedEnv returns the host environment with the command's extra
// variables appended. Later entries win, so command env overrides host
// values of the same name.
func mergedEnv(extra map[string]string) []string {
	if len(extra) == 0 {
		return nil // nil means inherit as-is
	}
	env := os.Environ()
	for k, v := range extra {
		env = append(env, k+"="+v)
	}
	return env
}
