//go:build darwin || dragonfly || freebsd || linux || netbsd || openbsd

package flock

import (
	"errors"
	"fmt"
	"io"

	"golang.org/x/sys/unix"
)

// Exclusive acquires an exclusive non-blocking lock on the file descriptor
// using the given discipline.
// Returns an error if the lock cannot be acquired immediately.
func Exclusive(fd uintptr, d Discipline) error {
	switch d {
	case Record:
		return fcntlLock(fd, unix.F_WRLCK)
	case WholeFile:
		return unix.Flock(int(fd), unix.LOCK_EX|unix.LOCK_NB)
	default:
		return fmt.Errorf("%w: %d", ErrUnknownDiscipline, int(d))
	}
}

// Unlock releases the lock on the file descriptor. d must be the discipline
// the lock was acquired with.
func Unlock(fd uintptr, d Discipline) error {
	switch d {
	case Record:
		return fcntlLock(fd, unix.F_UNLCK)
	case WholeFile:
		return unix.Flock(int(fd), unix.LOCK_UN)
	default:
		return fmt.Errorf("%w: %d", ErrUnknownDiscipline, int(d))
	}
}

// IsContention reports whether err means another holder owns the lock.
// flock returns EWOULDBLOCK; fcntl returns EAGAIN or EACCES depending on
// the system.
func IsContention(err error) bool {
	return errors.Is(err, unix.EWOULDBLOCK) ||
		errors.Is(err, unix.EAGAIN) ||
		errors.Is(err, unix.EACCES)
}

// fcntlLock sets or clears a write lock covering the whole file.
// Len 0 means "to end of file, however large it grows".
func fcntlLock(fd uintptr, lockType int16) error {
	lk := unix.Flock_t{
		Type:   lockType,
		Whence: int16(io.SeekStart),
		Start:  0,
		Len:    0,
	}
	return unix.FcntlFlock(fd, setLockCmd, &lk)
}
