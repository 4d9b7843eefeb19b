// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"

	"makectl/internal/discovery"
	"makectl/internal/runner"
)

// ExitError signals a non-zero exit code without forcing os.Exit in RunE
// handlers.
type ExitError struct {
	Code runner.ExitCode
	Err  error
}

// Error returns the error message for ExitError.
func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit status %d", e.Code)
}

// Unwrap returns the underlying error, if any.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// asExitError converts a discovery spawn failure into an ExitError so the
// process exits with the build tool's own status code. Other errors pass
// through unchanged.
func asExitError(err error) error {
	var spawnErr *discovery.SpawnError
	if errors.As(err, &spawnErr) {
		return &ExitError{Code: spawnErr.ExitCode, Err: spawnErr}
	}
	return err
}
