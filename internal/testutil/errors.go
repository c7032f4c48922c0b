// Package testutil provides testing utilities for advlock.
//
// This package contains mock errors and test helpers used across test files.
// It should only be imported by test files (*_test.go).
package testutil

import "errors"

// Mock errors for testing purposes.
var (
	// ErrMockPermission stands in for an OS permission failure (used in tests).
	ErrMockPermission = errors.New("permission denied")

	// ErrMockWriteFailed simulates a failing writer (used in tests).
	ErrMockWriteFailed = errors.New("write failed")
)
