// Package constants provides centralized constant values used throughout advlock.
// This package is the single source of truth for all shared constants and MUST NOT
// import any other internal packages.
package constants

import "time"

// Directory names and paths used by advlock.
const (
	// AppHome is the hidden directory name where advlock keeps its config and logs.
	// This directory is created in the user's home directory.
	AppHome = ".advlock"

	// LogsDir is the directory name where log files are stored.
	LogsDir = "logs"
)

// Environment variables.
const (
	// EnvPrefix is the prefix for configuration environment variables
	// (e.g. ADVLOCK_LOCK_DISCIPLINE).
	EnvPrefix = "ADVLOCK"

	// EnvHome overrides the advlock home directory.
	EnvHome = "ADVLOCK_HOME"
)

// Log rotation defaults for the CLI log file.
const (
	// LogMaxSizeMB is the size at which the log file is rotated.
	LogMaxSizeMB = 10

	// LogMaxBackups is the number of rotated files kept.
	LogMaxBackups = 3

	// LogMaxAgeDays is the number of days rotated files are kept.
	LogMaxAgeDays = 28

	// LogCompress compresses rotated files.
	LogCompress = true
)

// Process management.
const (
	// ProcessTerminationTimeout is how long a command run under the lock is
	// given to exit after being interrupted before it is killed.
	ProcessTerminationTimeout = 2 * time.Second

	// MaxConcurrentProbes caps parallel lock probes in one check invocation.
	MaxConcurrentProbes = 8
)
