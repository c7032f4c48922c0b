package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/advlock/internal/errors"
	"github.com/mrz1836/advlock/internal/flock"
)

func TestValidate_Defaults(t *testing.T) {
	require.NoError(t, Validate(DefaultConfig()))
}

func TestValidate_Nil(t *testing.T) {
	assert.ErrorIs(t, Validate(nil), errors.ErrConfigNil)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
		wantMsg string
	}{
		{
			name:    "unknown discipline",
			mutate:  func(c *Config) { c.Lock.Discipline = flock.Discipline(9) },
			wantErr: errors.ErrConfigInvalidLock,
			wantMsg: "lock.discipline",
		},
		{
			name: "neither read nor write",
			mutate: func(c *Config) {
				c.Lock.Read = false
				c.Lock.Write = false
			},
			wantErr: errors.ErrConfigInvalidLock,
			wantMsg: "cannot both be false",
		},
		{
			name:    "negative max size",
			mutate:  func(c *Config) { c.Log.MaxSizeMB = -1 },
			wantErr: errors.ErrConfigInvalidLog,
			wantMsg: "log.max_size_mb",
		},
		{
			name:    "negative backups",
			mutate:  func(c *Config) { c.Log.MaxBackups = -2 },
			wantErr: errors.ErrConfigInvalidLog,
			wantMsg: "log.max_backups",
		},
		{
			name:    "negative age",
			mutate:  func(c *Config) { c.Log.MaxAgeDays = -3 },
			wantErr: errors.ErrConfigInvalidLog,
			wantMsg: "log.max_age_days",
		},
		{
			name: "record without write is left to the caller",
			mutate: func(c *Config) {
				c.Lock.Discipline = flock.Record
				c.Lock.Write = false
			},
		},
		{
			name: "write only",
			mutate: func(c *Config) {
				c.Lock.Read = false
				c.Lock.Write = true
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := Validate(cfg)
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.wantErr)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}
