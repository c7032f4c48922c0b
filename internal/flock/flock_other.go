//go:build !(darwin || dragonfly || freebsd || linux || netbsd || openbsd || windows)

package flock

import (
	"fmt"

	lockerrors "github.com/mrz1836/advlock/internal/errors"
)

// ErrUnsupported is returned on platforms without an advisory lock primitive.
var ErrUnsupported = fmt.Errorf("%w: no advisory lock primitive", lockerrors.ErrUnsupportedOS)

// Exclusive always fails on this platform.
func Exclusive(_ uintptr, _ Discipline) error {
	return ErrUnsupported
}

// Unlock always fails on this platform.
func Unlock(_ uintptr, _ Discipline) error {
	return ErrUnsupported
}

// IsContention always reports false on this platform.
func IsContention(_ error) bool {
	return false
}
