// Package errors provides centralized error handling for advlock.
//
// This package defines sentinel errors used for programmatic error categorization
// throughout the application. All error types can be checked using errors.Is().
//
// IMPORTANT: This package MUST NOT import any other internal packages.
// Only standard library imports are allowed.
package errors

import "errors"

// Sentinel errors for error categorization.
// These allow callers to check error types with errors.Is().
// All errors use lowercase descriptions per Go conventions.
var (
	// ErrInvalidConfiguration indicates a lock request that can never succeed:
	// neither read nor write access was requested, the path is empty, or the
	// discipline cannot be used with the requested access mode.
	ErrInvalidConfiguration = errors.New("invalid lock configuration")

	// ErrNotFound indicates the lock path does not exist and creation was not requested.
	ErrNotFound = errors.New("path not found")

	// ErrAlreadyExists indicates the lock path exists although exclusive creation was requested.
	ErrAlreadyExists = errors.New("path already exists")

	// ErrAlreadyLocked indicates the non-blocking lock request found a competing holder.
	ErrAlreadyLocked = errors.New("already locked")

	// ErrIO indicates any other OS-level failure while opening or locking.
	// The underlying *os.PathError or errno stays in the chain.
	ErrIO = errors.New("i/o error")

	// ErrSymlink indicates the final path component is a symbolic link.
	// It is always reported together with ErrIO.
	ErrSymlink = errors.New("refusing to follow symbolic link")

	// ErrNotLockable indicates the path opened as a FIFO, socket, or device.
	// It is always reported together with ErrIO.
	ErrNotLockable = errors.New("not a regular file or directory")

	// ErrReleaseWarning indicates unlock or close failed during release.
	// The descriptor is closed regardless, which drops the lock.
	ErrReleaseWarning = errors.New("lock release incomplete")

	// ErrConfigNil indicates that a nil config was passed to validation.
	ErrConfigNil = errors.New("config is nil")

	// ErrConfigInvalidLock indicates an invalid lock configuration value.
	ErrConfigInvalidLock = errors.New("invalid lock configuration value")

	// ErrConfigInvalidLog indicates an invalid log configuration value.
	ErrConfigInvalidLog = errors.New("invalid log configuration value")

	// ErrInvalidOutputFormat indicates an invalid output format was specified.
	ErrInvalidOutputFormat = errors.New("invalid output format")

	// ErrInvalidArgument indicates that an invalid argument was provided.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrCommandFailed indicates that a command run while holding the lock failed to start.
	ErrCommandFailed = errors.New("command failed")

	// ErrUnsupportedOS indicates the current operating system is not supported.
	ErrUnsupportedOS = errors.New("unsupported operating system")
)

// ExitCodeError carries an explicit process exit code through the command tree.
// When Silent is set the error has already been reported to the user and the
// top level only uses the code.
type ExitCodeError struct {
	Err    error
	Code   int
	Silent bool
}

// NewSilentExitCodeError wraps an error that was already reported.
func NewSilentExitCodeError(code int, err error) *ExitCodeError {
	return &ExitCodeError{Err: err, Code: code, Silent: true}
}

// Error implements the error interface.
func (e *ExitCodeError) Error() string {
	if e.Err == nil {
		return "exit status"
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ExitCodeError) Unwrap() error {
	return e.Err
}

// AsExitCodeError extracts an ExitCodeError from the chain.
func AsExitCodeError(err error) (*ExitCodeError, bool) {
	var e *ExitCodeError
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// IsSilent reports whether err was already shown to the user.
func IsSilent(err error) bool {
	e, ok := AsExitCodeError(err)
	return ok && e.Silent
}
