package fetch

import (
	"errors"
	"fmt"
)

// ErrConfiguration reports an invalid Spec. It is raised eagerly at
// construction, before any network activity.
var ErrConfiguration = errors.New("fetch: invalid configuration")

// ErrTransportUnavailable reports that neither a transport hook nor a usable
// connection id was supplied. It is detected at execution time and surfaces
// wrapped in an ExecutionError.
var ErrTransportUnavailable = errors.New("fetch: cannot operate without a transport hook or connection id")

// ExecutionError is the single composite failure kind surfaced by Execute:
// the step in progress when the failure occurred plus the original cause.
// Lower-level distinctions are intentionally not preserved past this boundary.
type ExecutionError struct {
	Step Step
	Err  error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("error while step %q, error: %v", e.Step, e.Err)
}

func (e *ExecutionError) Unwrap() error {
	return e.Err
}

// execErr wraps a cause with the current step.
func execErr(step Step, err error) error {
	return &ExecutionError{Step: step, Err: err}
}
