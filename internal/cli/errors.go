package cli

import (
	"errors"
	"fmt"

	"github.com/mesh-intelligence/shelf/internal/genres"
	"github.com/mesh-intelligence/shelf/pkg/types"
)

// systemError marks a failure of the environment rather than of the input.
type systemError struct {
	err error
}

func (e *systemError) Error() string { return e.err.Error() }
func (e *systemError) Unwrap() error { return e.err }

// sysErr marks err as a system error. A nil err stays nil.
func sysErr(err error) error {
	if err == nil {
		return nil
	}
	return &systemError{err: err}
}

// usageErr reports bad arguments.
func usageErr(format string, args ...any) error {
	return fmt.Errorf(format, args...)
}

// systemSentinels are the domain errors that signal a system failure.
var systemSentinels = []error{
	types.ErrStorage,
	types.ErrDetached,
	types.ErrBackendEmpty,
	types.ErrBackendUnknown,
	types.ErrSyncStrategyUnknown,
	genres.ErrMalformed,
}

// exitCode maps an error to the process exit code. Storage, configuration,
// and file failures exit 2; everything else (validation, not found, bad
// index, bad arguments) exits 1.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	var se *systemError
	if errors.As(err, &se) {
		return exitSysError
	}
	for _, sentinel := range systemSentinels {
		if errors.Is(err, sentinel) {
			return exitSysError
		}
	}
	return exitUserError
}
