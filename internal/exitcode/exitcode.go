package exitcode

import (
	"errors"
	"os"
	"strings"

	forgeerrors "github.com/polyforge/polyforge/internal/errors"
)

// Exit codes for consistent error handling across the CLI
const (
	// Success indicates a Done run with every target successful
	Success = 0

	// GeneralError indicates a general error condition
	GeneralError = 1

	// UsageError indicates invalid command usage (bad flags, missing args, etc.)
	UsageError = 2

	// TargetFailures indicates a Done run in which one or more targets failed;
	// details are in the evidence report
	TargetFailures = 3

	// RunFailed indicates a Failed run with no usable evidence report
	RunFailed = 4

	// Interrupted indicates the run was cancelled by a signal
	Interrupted = 130
)

// Exit terminates the program with the given exit code
func Exit(code int) {
	os.Exit(code)
}

// ExitWithError exits with an appropriate code based on error type
func ExitWithError(err error) {
	if err == nil {
		Exit(Success)
		return
	}

	Exit(DetermineExitCode(err))
}

// DetermineExitCode analyzes an error and returns the appropriate exit code
func DetermineExitCode(err error) int {
	if err == nil {
		return Success
	}

	var fe *forgeerrors.ForgeError
	if errors.As(err, &fe) {
		switch fe.Code {
		case forgeerrors.ErrCodeSpecNotFound,
			forgeerrors.ErrCodeSpecInvalid,
			forgeerrors.ErrCodeSpecUnmarshal,
			forgeerrors.ErrCodeSchemaVersionUnsupported,
			forgeerrors.ErrCodeRunFailed,
			forgeerrors.ErrCodeRunTimeout:
			return RunFailed
		case forgeerrors.ErrCodeTargetsFailed:
			return TargetFailures
		case forgeerrors.ErrCodeRunCancelled:
			return Interrupted
		case forgeerrors.ErrCodeTargetNotFound:
			return UsageError
		}
	}

	errMsg := strings.ToLower(err.Error())

	// Usage errors surfaced by cobra
	if strings.Contains(errMsg, "invalid flag") || strings.Contains(errMsg, "unknown command") {
		return UsageError
	}
	if strings.Contains(errMsg, "required flag") || strings.Contains(errMsg, "missing argument") {
		return UsageError
	}

	if strings.Contains(errMsg, "target") && strings.Contains(errMsg, "failed") {
		return TargetFailures
	}

	return GeneralError
}

// GetExitCodeDescription returns a human-readable description of an exit code
func GetExitCodeDescription(code int) string {
	switch code {
	case Success:
		return "Success"
	case GeneralError:
		return "General error"
	case UsageError:
		return "Usage error (invalid flags or arguments)"
	case TargetFailures:
		return "Run completed with target failures"
	case RunFailed:
		return "Run failed, no evidence report produced"
	case Interrupted:
		return "Run interrupted"
	default:
		return "Unknown error"
	}
}
