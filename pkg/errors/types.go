package errors

import (
	"errors"
	"fmt"
)

// Exit codes for scripting integration.
const (
	// ExitSuccess indicates the session completed. Issues found do not change it.
	ExitSuccess = 0

	// ExitManifestMissing indicates there was no manifest to diagnose.
	ExitManifestMissing = 1

	// ExitFailure indicates a fatal error, such as an unparseable manifest or an
	// unexpected exit code from the outdated check.
	ExitFailure = 2

	// ExitConfigError indicates a configuration or validation error.
	ExitConfigError = 3
)

// ExitError represents a command termination with a specific exit code.
//
// Fields:
//   - Code: Exit code (use ExitSuccess, ExitManifestMissing, ExitFailure, ExitConfigError)
//   - Message: Human-readable error message
//   - Err: Underlying error that caused this exit, may be nil
//
// Example:
//
//	return &ExitError{
//	    Code:    ExitConfigError,
//	    Message: "failed to load config",
//	    Err:     err,
//	}
type ExitError struct {
	// Code is the exit code for the command.
	Code int

	// Message is a human-readable description of why the command failed.
	Message string

	// Err is the underlying error that caused this exit.
	// May be nil if no underlying error exists.
	Err error

	// Reported is set when the message has already been shown to the user,
	// so Execute should only exit with Code.
	Reported bool
}

// Error implements the error interface.
//
// Returns the Message field if set, otherwise returns the underlying error's
// message, or a default message with the exit code.
func (e *ExitError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit code %d", e.Code)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates an ExitError with the given code and underlying error.
//
// Parameters:
//   - code: Exit code
//   - err: Underlying error, may be nil
//
// Returns:
//   - *ExitError: New exit error
func NewExitError(code int, err error) *ExitError {
	return &ExitError{Code: code, Err: err}
}

// NewExitErrorf creates an ExitError with the given code and formatted message.
func NewExitErrorf(code int, format string, args ...interface{}) *ExitError {
	return &ExitError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// GetExitCode extracts the exit code from an error.
//
// If err is nil, returns ExitSuccess.
// If err is an ExitError, returns its code.
// If err is a ManifestMissingError, returns ExitManifestMissing.
// If err is a ValidationError, returns ExitConfigError.
// Otherwise returns ExitFailure.
//
// Parameters:
//   - err: The error to extract code from
//
// Returns:
//   - int: Exit code
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	if IsManifestMissing(err) {
		return ExitManifestMissing
	}

	if _, ok := IsValidationError(err); ok {
		return ExitConfigError
	}

	return ExitFailure
}

// IsExitError checks if err is an ExitError and returns it.
func IsExitError(err error) (*ExitError, bool) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr, true
	}
	return nil, false
}

// ManifestMissingError indicates that the expected manifest file does not exist.
//
// Fields:
//   - Path: Absolute or working-directory-relative path that was checked
type ManifestMissingError struct {
	Path string
}

// Error implements the error interface.
func (e *ManifestMissingError) Error() string {
	return fmt.Sprintf("manifest not found: %s", e.Path)
}

// IsManifestMissing reports whether err is, or wraps, a ManifestMissingError.
func IsManifestMissing(err error) bool {
	var mm *ManifestMissingError
	return errors.As(err, &mm)
}

// SubcommandError indicates that a package manager command failed.
//
// A command fails when it exits non-zero, cannot be started, or is killed
// after its timeout. ExitCode is -1 when the process never produced one.
//
// Fields:
//   - Command: The command line that was run
//   - ExitCode: Process exit status, or -1 if unknown
//   - Output: Combined stdout and stderr captured before the failure
//   - Err: Underlying error from the executor
type SubcommandError struct {
	Command  string
	ExitCode int
	Output   []byte
	Err      error
}

// Error implements the error interface.
func (e *SubcommandError) Error() string {
	if e.ExitCode >= 0 {
		return fmt.Sprintf("command %q exited with status %d", e.Command, e.ExitCode)
	}
	if e.Err != nil {
		return fmt.Sprintf("command %q failed: %v", e.Command, e.Err)
	}
	return fmt.Sprintf("command %q failed", e.Command)
}

// Unwrap returns the underlying executor error.
func (e *SubcommandError) Unwrap() error {
	return e.Err
}

// IsSubcommandError checks if err is a SubcommandError and returns it.
//
// Parameters:
//   - err: The error to check
//
// Returns:
//   - *SubcommandError: The SubcommandError if err is one, nil otherwise
//   - bool: true if err is a SubcommandError
func IsSubcommandError(err error) (*SubcommandError, bool) {
	var se *SubcommandError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}
