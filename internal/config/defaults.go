package config

import (
	"github.com/mrz1836/advlock/internal/constants"
	"github.com/mrz1836/advlock/internal/flock"
)

// DefaultConfig returns a new Config with the built-in default values.
// These are the base layer that config files, environment variables and
// CLI flags override.
func DefaultConfig() *Config {
	return &Config{
		Lock: LockConfig{
			// Record locks work on network filesystems; flock does not.
			Discipline: flock.Record,
			Read:       true,
			Write:      false,
			Create:     false,
			Hold:       false,
		},
		Log: LogConfig{
			File:       true,
			MaxSizeMB:  constants.LogMaxSizeMB,
			MaxBackups: constants.LogMaxBackups,
			MaxAgeDays: constants.LogMaxAgeDays,
		},
	}
}
