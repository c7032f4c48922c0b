// Package config provides configuration management for advlock with layered precedence.
//
// Configuration sources are loaded in the following order (highest precedence first):
//  1. CLI flags (applied by the cli package when a flag is explicitly set)
//  2. Environment variables (ADVLOCK_* prefix, e.g. ADVLOCK_LOCK_DISCIPLINE)
//  3. Project config (./.advlock.yaml)
//  4. Global config (~/.advlock/config.yaml, or $ADVLOCK_HOME/config.yaml)
//  5. Built-in defaults
//
// IMPORTANT: This package may import internal/constants, internal/errors and
// internal/flock, but MUST NOT import other internal packages.
package config

import "github.com/mrz1836/advlock/internal/flock"

// Config is the root configuration structure for advlock.
type Config struct {
	// Lock contains the defaults for lock requests made by the CLI.
	Lock LockConfig `yaml:"lock" json:"lock" mapstructure:"lock"`

	// Log contains settings for the persistent CLI log file.
	Log LogConfig `yaml:"log" json:"log" mapstructure:"log"`
}

// LockConfig holds the default lock request settings.
type LockConfig struct {
	// Discipline selects the lock primitive: "record" (fcntl, NFS-safe) or "flock".
	// Default: record
	Discipline flock.Discipline `yaml:"discipline" json:"discipline" mapstructure:"discipline"`

	// Read opens the lock file for reading.
	// Default: true
	Read bool `yaml:"read" json:"read" mapstructure:"read"`

	// Write opens the lock file for writing. Record locks require it.
	// Default: false
	Write bool `yaml:"write" json:"write" mapstructure:"write"`

	// Create requires the lock file to be new and creates it atomically.
	// Default: false
	Create bool `yaml:"create" json:"create" mapstructure:"create"`

	// Hold keeps the lock until a line is read from stdin or a signal arrives.
	// Default: false
	Hold bool `yaml:"hold" json:"hold" mapstructure:"hold"`
}

// LogConfig controls the rotating log file.
type LogConfig struct {
	// File enables the log file under $ADVLOCK_HOME/logs.
	// Default: true
	File bool `yaml:"file" json:"file" mapstructure:"file"`

	// MaxSizeMB is the size in megabytes at which the log file rotates.
	MaxSizeMB int `yaml:"max_size_mb" json:"max_size_mb" mapstructure:"max_size_mb"`

	// MaxBackups is the number of rotated files to keep.
	MaxBackups int `yaml:"max_backups" json:"max_backups" mapstructure:"max_backups"`

	// MaxAgeDays is the number of days to keep rotated files.
	MaxAgeDays int `yaml:"max_age_days" json:"max_age_days" mapstructure:"max_age_days"`
}
