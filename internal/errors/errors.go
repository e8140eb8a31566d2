package errors

import (
	"fmt"
	"strings"
)

// ErrorCode represents a unique error identifier
type ErrorCode string

// Error categories
const (
	// Spec errors (SPEC-001 to SPEC-099)
	ErrCodeSpecNotFound  ErrorCode = "SPEC-001"
	ErrCodeSpecInvalid   ErrorCode = "SPEC-002"
	ErrCodeSpecUnmarshal ErrorCode = "SPEC-003"
	ErrCodeSpecMarshal   ErrorCode = "SPEC-004"

	// Schema errors (SCHEMA-001 to SCHEMA-099)
	ErrCodeSchemaVersionUnsupported ErrorCode = "SCHEMA-001"

	// Target errors (TARGET-001 to TARGET-099)
	ErrCodeTargetNotFound ErrorCode = "TARGET-001"
	ErrCodeTargetTimeout  ErrorCode = "TARGET-002"

	// Generation errors (GEN-001 to GEN-099)
	ErrCodeGenerateFailed ErrorCode = "GEN-001"

	// Run errors (RUN-001 to RUN-099)
	ErrCodeRunTimeout    ErrorCode = "RUN-001"
	ErrCodeRunCancelled  ErrorCode = "RUN-002"
	ErrCodeRunFailed     ErrorCode = "RUN-003"
	ErrCodeTargetsFailed ErrorCode = "RUN-004"

	// File I/O errors (IO-001 to IO-099)
	ErrCodeFileReadFailed  ErrorCode = "IO-001"
	ErrCodeFileWriteFailed ErrorCode = "IO-002"
	ErrCodeFileUnmarshal   ErrorCode = "IO-003"
	ErrCodeFileMarshal     ErrorCode = "IO-004"
)

// ForgeError represents an enhanced error with code, suggestions, and documentation
type ForgeError struct {
	Code        ErrorCode
	Message     string
	Suggestions []string
	DocsURL     string
	Cause       error
}

// Error implements the error interface
func (e *ForgeError) Error() string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("[%s] %s", e.Code, e.Message))

	if e.Cause != nil {
		b.WriteString(fmt.Sprintf(": %v", e.Cause))
	}

	if len(e.Suggestions) > 0 {
		b.WriteString("\n\nSuggestions:")
		for _, suggestion := range e.Suggestions {
			b.WriteString(fmt.Sprintf("\n  • %s", suggestion))
		}
	}

	if e.DocsURL != "" {
		b.WriteString(fmt.Sprintf("\n\nDocumentation: %s", e.DocsURL))
	}

	return b.String()
}

// Unwrap implements error unwrapping for errors.Is and errors.As
func (e *ForgeError) Unwrap() error {
	return e.Cause
}

// New creates a new ForgeError
func New(code ErrorCode, message string) *ForgeError {
	return &ForgeError{
		Code:    code,
		Message: message,
	}
}

// Wrap creates a new ForgeError wrapping an existing error
func Wrap(code ErrorCode, message string, cause error) *ForgeError {
	return &ForgeError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// WithSuggestion adds a suggestion to the error
func (e *ForgeError) WithSuggestion(suggestion string) *ForgeError {
	e.Suggestions = append(e.Suggestions, suggestion)
	return e
}

// WithSuggestions adds multiple suggestions to the error
func (e *ForgeError) WithSuggestions(suggestions ...string) *ForgeError {
	e.Suggestions = append(e.Suggestions, suggestions...)
	return e
}

// WithDocs adds a documentation URL to the error
func (e *ForgeError) WithDocs(url string) *ForgeError {
	e.DocsURL = url
	return e
}

// HasCode reports whether err (or any error it wraps) is a ForgeError
// carrying the given code.
func HasCode(err error, code ErrorCode) bool {
	for err != nil {
		if fe, ok := err.(*ForgeError); ok && fe.Code == code {
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}

// Common error constructors for frequently used errors

// NewSpecNotFoundError creates a spec file not found error
func NewSpecNotFoundError(path string) *ForgeError {
	return New(ErrCodeSpecNotFound, fmt.Sprintf("specification file not found: %s", path)).
		WithSuggestion("Check if the file path is correct").
		WithSuggestion("Verify the file exists and you have read permissions")
}

// NewSpecInvalidError creates a spec validation error
func NewSpecInvalidError(details string) *ForgeError {
	return New(ErrCodeSpecInvalid, fmt.Sprintf("invalid specification: %s", details)).
		WithSuggestion("Check that every relationship references a declared entity").
		WithSuggestion("Check that every flow step names a declared entity or component")
}

// NewSchemaVersionError creates a schema version rejection error
func NewSchemaVersionError(got string, supported []string) *ForgeError {
	return New(ErrCodeSchemaVersionUnsupported,
		fmt.Sprintf("unsupported specification schema version: %q", got)).
		WithSuggestion(fmt.Sprintf("Supported versions: %s", strings.Join(supported, ", "))).
		WithSuggestion("Re-export the specification from an up-to-date authoring tool")
}

// NewTargetNotFoundError creates a target lookup error
func NewTargetNotFoundError(id string) *ForgeError {
	return New(ErrCodeTargetNotFound, fmt.Sprintf("target not found in catalog: %s", id)).
		WithSuggestion("Run 'polyforge targets list' to see available targets")
}

// NewTargetTimeoutError creates a per-target timeout error
func NewTargetTimeoutError(id string, timeout string) *ForgeError {
	return New(ErrCodeTargetTimeout, fmt.Sprintf("target %s exceeded its task timeout (%s)", id, timeout)).
		WithSuggestion("Increase the per-target timeout with --target-timeout").
		WithSuggestion("Restrict the run to fewer targets to reduce contention")
}

// NewRunCancelledError creates a run cancellation error
func NewRunCancelledError() *ForgeError {
	return New(ErrCodeRunCancelled, "compilation run was cancelled before all targets completed").
		WithSuggestion("The partial evidence report is marked incomplete")
}

// NewFileUnmarshalError creates an unmarshal error
func NewFileUnmarshalError(path string, format string, cause error) *ForgeError {
	return Wrap(ErrCodeFileUnmarshal, fmt.Sprintf("failed to parse %s file: %s", format, path), cause).
		WithSuggestion("Check the file syntax and format").
		WithSuggestion(fmt.Sprintf("Ensure the file is valid %s", format))
}
