package config

import (
	"github.com/mrz1836/advlock/internal/errors"
)

// Validate checks the configuration for invalid or inconsistent values.
// It returns an error describing the first validation failure found.
//
// Validation rules:
//   - lock.discipline must be record or flock
//   - lock.read or lock.write must be true
//   - log sizes and retention must not be negative
//
// A record discipline without lock.write is allowed here because --write
// can still be supplied on the command line.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.ErrConfigNil
	}

	if err := validateLockConfig(&cfg.Lock); err != nil {
		return err
	}

	return validateLogConfig(&cfg.Log)
}

func validateLockConfig(cfg *LockConfig) error {
	if !cfg.Discipline.Valid() {
		return errors.Wrapf(errors.ErrConfigInvalidLock,
			"lock.discipline must be record or flock, got %s", cfg.Discipline)
	}
	if !cfg.Read && !cfg.Write {
		return errors.Wrap(errors.ErrConfigInvalidLock,
			"lock.read and lock.write cannot both be false")
	}
	return nil
}

func validateLogConfig(cfg *LogConfig) error {
	if cfg.MaxSizeMB < 0 {
		return errors.Wrapf(errors.ErrConfigInvalidLog,
			"log.max_size_mb must not be negative, got %d", cfg.MaxSizeMB)
	}
	if cfg.MaxBackups < 0 {
		return errors.Wrapf(errors.ErrConfigInvalidLog,
			"log.max_backups must not be negative, got %d", cfg.MaxBackups)
	}
	if cfg.MaxAgeDays < 0 {
		return errors.Wrapf(errors.ErrConfigInvalidLog,
			"log.max_age_days must not be negative, got %d", cfg.MaxAgeDays)
	}
	return nil
}
