//go:build windows

package flock

import (
	"errors"
	"fmt"

	"golang.org/x/sys/windows"
)

// Windows LockFileEx/UnlockFileEx API parameters.
// See: https://learn.microsoft.com/en-us/windows/win32/api/fileapi/nf-fileapi-lockfileex
const (
	lockReserved  = 0          // Reserved parameter, must be zero
	lockBytesLow  = ^uint32(0) // Whole range, so the lock covers the entire file
	lockBytesHigh = ^uint32(0)
)

// Exclusive acquires an exclusive non-blocking lock on the file handle.
// Windows has a single byte-range primitive, so both disciplines map to
// LockFileEx over the full range.
func Exclusive(fd uintptr, d Discipline) error {
	if !d.Valid() {
		return fmt.Errorf("%w: %d", ErrUnknownDiscipline, int(d))
	}
	return windows.LockFileEx(
		windows.Handle(fd),
		windows.LOCKFILE_EXCLUSIVE_LOCK|windows.LOCKFILE_FAIL_IMMEDIATELY,
		lockReserved,
		lockBytesLow,
		lockBytesHigh,
		&windows.Overlapped{},
	)
}

// Unlock releases the lock on the file handle.
func Unlock(fd uintptr, d Discipline) error {
	if !d.Valid() {
		return fmt.Errorf("%w: %d", ErrUnknownDiscipline, int(d))
	}
	return windows.UnlockFileEx(
		windows.Handle(fd),
		lockReserved,
		lockBytesLow,
		lockBytesHigh,
		&windows.Overlapped{},
	)
}

// IsContention reports whether err means another holder owns the lock.
func IsContention(err error) bool {
	return errors.Is(err, windows.ERROR_LOCK_VIOLATION)
}
