package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/advlock/internal/constants"
	"github.com/mrz1836/advlock/internal/errors"
)

func TestRootCmd_Help(t *testing.T) {
	t.Parallel()

	cmd := newRootCmd(&cliState{}, BuildInfo{Version: "test"})
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"--help"})

	require.NoError(t, cmd.Execute())

	output := buf.String()
	for _, want := range []string{
		"advlock", "--output", "--verbose", "--quiet", "--version",
		"--no-read", "--write", "--flock", "--create", "--hold",
		"check", "run", "config",
	} {
		assert.Contains(t, output, want)
	}
}

func TestRootCmd_Version(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		info           BuildInfo
		expectContains []string
	}{
		{
			name:           "full version info",
			info:           BuildInfo{Version: "1.0.0", Commit: "abc1234", Date: "2026-01-01"},
			expectContains: []string{"1.0.0", "abc1234", "2026-01-01"},
		},
		{
			name:           "default dev version",
			info:           BuildInfo{},
			expectContains: []string{"dev", "none", "unknown"},
		},
		{
			name:           "partial version info",
			info:           BuildInfo{Version: "2.0.0-beta"},
			expectContains: []string{"2.0.0-beta", "none", "unknown"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			cmd := newRootCmd(&cliState{}, tc.info)
			buf := new(bytes.Buffer)
			cmd.SetOut(buf)
			cmd.SetArgs([]string{"--version"})

			require.NoError(t, cmd.Execute())
			for _, want := range tc.expectContains {
				assert.Contains(t, buf.String(), want)
			}
		})
	}
}

func TestExecute_MissingPath(t *testing.T) {
	isolateCLI(t)

	res := runCLI(t, "")
	require.Error(t, res.err)
	assert.Equal(t, ExitInvalidInput, res.code)
	assert.Contains(t, res.stderr, "accepts 1 arg(s)")
}

func TestExecute_InvalidOutputFormat(t *testing.T) {
	isolateCLI(t)

	res := runCLI(t, "", "--output", "yaml", lockFile(t))
	require.ErrorIs(t, res.err, errors.ErrInvalidOutputFormat)
	assert.Equal(t, ExitInvalidInput, res.code)
	assert.Contains(t, res.stderr, "Try:")
}

func TestExecute_OutputFromEnv(t *testing.T) {
	isolateCLI(t)
	t.Setenv("ADVLOCK_OUTPUT", "json")

	res := runCLI(t, "", "--flock", lockFile(t))
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, `"status":"locked"`)
}

func TestExecute_InvalidConfigFile(t *testing.T) {
	home := isolateCLI(t)
	require.NoError(t, os.WriteFile(filepath.Join(home, constants.GlobalConfigName),
		[]byte("lock:\n  read: false\n  write: false\n"), 0o600))

	res := runCLI(t, "", "--flock", lockFile(t))
	require.ErrorIs(t, res.err, errors.ErrConfigInvalidLock)
	assert.Equal(t, ExitInvalidInput, res.code)
}

func TestExecute_VerboseAndQuietConflict(t *testing.T) {
	isolateCLI(t)

	res := runCLI(t, "", "-v", "-q", lockFile(t))
	require.Error(t, res.err)
	assert.Equal(t, ExitInvalidInput, res.code)
}

func TestExecute_LogsRunID(t *testing.T) {
	home := isolateCLI(t)

	res := runCLI(t, "", "--flock", lockFile(t))
	require.NoError(t, res.err)

	data, err := os.ReadFile(filepath.Join(home, constants.LogsDir, constants.CLILogFileName))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"run_id":`)
	assert.Contains(t, string(data), "lock acquired")
}
