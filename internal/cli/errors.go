package cli

import "fmt"

// Process exit codes. They are part of the CLI contract: scripts may
// branch on them.
const (
	// ExitOK means every requested step succeeded.
	ExitOK = 0

	// ExitResolveFailure covers configuration and resolution errors:
	// a missing or invalid project.yml, duplicate or malformed entries,
	// unknown references and cyclic workflows.
	ExitResolveFailure = 1

	// ExitExecFailure covers execution errors: a step exiting non-zero
	// (per the active policy), a child that could not be spawned, or an
	// interrupted run.
	ExitExecFailure = 2
)

// ExitError carries a process exit code out of a Cobra RunE function
// without calling os.Exit directly, which keeps command behavior
// testable. [Execute] unwraps it and returns the code to main.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// NewExitError creates an [ExitError] with the given exit code.
func NewExitError(code int) *ExitError {
	return &ExitError{Code: code}
}

// IsExitError reports whether err is an [ExitError], returning its code.
func IsExitError(err error) (int, bool) {
	if exitErr, ok := err.(*ExitError); ok {
		return exitErr.Code, true
	}
	return 0, false
}
