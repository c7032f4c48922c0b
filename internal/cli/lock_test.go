package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/advlock/internal/advisory"
	"github.com/mrz1836/advlock/internal/config"
	"github.com/mrz1836/advlock/internal/errors"
	"github.com/mrz1836/advlock/internal/flock"
)

func parseLockFlags(t *testing.T, args ...string) (*cobra.Command, *LockFlags) {
	t.Helper()
	flags := &LockFlags{}
	cmd := &cobra.Command{Use: "test"}
	addLockFlags(cmd, flags, true)
	require.NoError(t, cmd.ParseFlags(args))
	return cmd, flags
}

func TestBuildRequest(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		args     []string
		mutate   func(*config.Config)
		wantReq  advisory.Request
		wantHold bool
		wantErr  string
	}{
		{
			name:    "defaults need --write for record locks",
			wantErr: "record locks require --write",
		},
		{
			name:    "write with record",
			args:    []string{"--write"},
			wantReq: advisory.Request{Path: "/x", Read: true, Write: true, Discipline: flock.Record},
		},
		{
			name:    "flock read only",
			args:    []string{"--flock"},
			wantReq: advisory.Request{Path: "/x", Read: true, Discipline: flock.WholeFile},
		},
		{
			name:    "write only",
			args:    []string{"--no-read", "-w"},
			wantReq: advisory.Request{Path: "/x", Write: true, Discipline: flock.Record},
		},
		{
			name:    "no access at all",
			args:    []string{"--no-read", "--flock"},
			wantErr: "at least one of read/write",
		},
		{
			name:     "create and hold",
			args:     []string{"--flock", "--create", "--hold"},
			wantReq:  advisory.Request{Path: "/x", Read: true, Discipline: flock.WholeFile, CreateIfMissing: true},
			wantHold: true,
		},
		{
			name: "config supplies defaults",
			mutate: func(c *config.Config) {
				c.Lock.Discipline = flock.WholeFile
				c.Lock.Hold = true
			},
			wantReq:  advisory.Request{Path: "/x", Read: true, Discipline: flock.WholeFile},
			wantHold: true,
		},
		{
			name: "explicit flags override config",
			args: []string{"--flock=false", "--write", "--hold=false"},
			mutate: func(c *config.Config) {
				c.Lock.Discipline = flock.WholeFile
				c.Lock.Hold = true
			},
			wantReq: advisory.Request{Path: "/x", Read: true, Write: true, Discipline: flock.Record},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			cfg := config.DefaultConfig()
			if tc.mutate != nil {
				tc.mutate(cfg)
			}
			cmd, flags := parseLockFlags(t, tc.args...)

			req, hold, err := buildRequest(cmd, cfg, flags, "/x")
			if tc.wantErr != "" {
				require.ErrorIs(t, err, errors.ErrInvalidConfiguration)
				assert.Contains(t, err.Error(), tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantReq, req)
			assert.Equal(t, tc.wantHold, hold)
		})
	}
}

func TestExpandPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := expandPath("~/locks/a.lock")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "locks", "a.lock"), got)

	got, err = expandPath("~")
	require.NoError(t, err)
	assert.Equal(t, home, got)

	got, err = expandPath("~other/x")
	require.NoError(t, err)
	assert.Equal(t, "~other/x", got, "only the current user's home is expanded")

	_, err = expandPath("")
	require.ErrorIs(t, err, errors.ErrInvalidArgument)
}

func TestLock_Success(t *testing.T) {
	isolateCLI(t)
	path := lockFile(t)

	res := runCLI(t, "", "--write", path)
	require.NoError(t, res.err)
	assert.Equal(t, ExitSuccess, res.code)
	assert.Contains(t, res.stdout, "✓ locked "+path+" (record, rw)")

	locked, err := advisory.IsLocked(context.Background(), path)
	require.NoError(t, err)
	assert.False(t, locked, "lock must be released when advlock returns")
}

func TestLock_JSON(t *testing.T) {
	isolateCLI(t)
	path := lockFile(t)

	res := runCLI(t, "", "-o", "json", "--flock", "--no-read", "--write", path)
	require.NoError(t, res.err)

	var got lockResult
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &got))
	assert.Equal(t, lockResult{
		Path:       path,
		Discipline: "flock",
		Mode:       "w",
		Status:     "locked",
		PID:        os.Getpid(),
	}, got)
}

func TestLock_AlreadyLocked(t *testing.T) {
	isolateCLI(t)
	path := lockFile(t)

	h, err := advisory.Acquire(context.Background(), advisory.Request{
		Path: path, Read: true, Discipline: flock.WholeFile,
	})
	require.NoError(t, err)
	defer func() { _ = h.Release() }()

	res := runCLI(t, "", "--flock", path)
	require.ErrorIs(t, res.err, errors.ErrAlreadyLocked)
	assert.Equal(t, ExitLocked, res.code)
	assert.Contains(t, res.stderr, "✗ already locked")
	assert.Contains(t, res.stderr, "▸ Try:")
}

func TestLock_NotFound(t *testing.T) {
	isolateCLI(t)
	path := filepath.Join(t.TempDir(), "missing.lock")

	res := runCLI(t, "", "--flock", path)
	require.ErrorIs(t, res.err, errors.ErrNotFound)
	assert.Equal(t, ExitNotFound, res.code)

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err), "lock without --create must not create the file")
}

func TestLock_CreateNew(t *testing.T) {
	isolateCLI(t)
	path := filepath.Join(t.TempDir(), "new.lock")

	res := runCLI(t, "", "--create", "--write", path)
	require.NoError(t, res.err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestLock_CreateExisting(t *testing.T) {
	isolateCLI(t)
	path := lockFile(t)

	res := runCLI(t, "", "--create", "--flock", path)
	require.ErrorIs(t, res.err, errors.ErrAlreadyExists)
	assert.Equal(t, ExitExists, res.code)
}

func TestLock_RecordWithoutWrite(t *testing.T) {
	isolateCLI(t)
	path := lockFile(t)

	res := runCLI(t, "", path)
	require.ErrorIs(t, res.err, errors.ErrInvalidConfiguration)
	assert.Equal(t, ExitInvalidInput, res.code)
	assert.Contains(t, res.stderr, "record locks require --write")
}

func TestLock_JSONError(t *testing.T) {
	isolateCLI(t)
	path := filepath.Join(t.TempDir(), "missing.lock")

	res := runCLI(t, "", "-o", "json", "--flock", path)
	require.Error(t, res.err)

	var got map[string]string
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &got))
	assert.Equal(t, "error", got["type"])
	assert.Contains(t, got["message"], "path not found")
	assert.NotEmpty(t, got["suggestion"])
}

func TestLock_HoldReleasesOnNewline(t *testing.T) {
	isolateCLI(t)
	path := lockFile(t)

	res := runCLI(t, "\n", "--flock", "--hold", path)
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "✓ locked "+path)
	assert.Contains(t, res.stdout, "✓ released "+path)
	assert.Contains(t, res.stderr, "holding lock")
}

func TestLock_HoldReleasesOnEOF(t *testing.T) {
	isolateCLI(t)
	path := lockFile(t)

	res := runCLI(t, "", "-o", "json", "--flock", "--hold", path)
	require.NoError(t, res.err)

	var statuses []string
	scanner := bufio.NewScanner(strings.NewReader(res.stdout))
	for scanner.Scan() {
		var r lockResult
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &r))
		statuses = append(statuses, r.Status)
	}
	assert.Equal(t, []string{"locked", "released"}, statuses)
}

func TestLock_ConfigDiscipline(t *testing.T) {
	isolateCLI(t)
	t.Setenv("ADVLOCK_LOCK_DISCIPLINE", "flock")
	path := lockFile(t)

	res := runCLI(t, "", path)
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "(flock, r)")
}
