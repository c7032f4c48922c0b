package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mrz1836/advlock/internal/constants"
)

// cliResult captures one CLI invocation.
type cliResult struct {
	stdout string
	stderr string
	err    error
	code   int
}

// isolateCLI points ADVLOCK_HOME and the working directory at temp dirs so
// no user config or log file is touched. It returns the home dir.
func isolateCLI(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv(constants.EnvHome, home)
	t.Setenv("NO_COLOR", "1")
	t.Chdir(t.TempDir())
	return home
}

// runCLI executes the CLI in-process with the given stdin and arguments.
func runCLI(t *testing.T, stdin string, args ...string) cliResult {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := execute(context.Background(), BuildInfo{Version: "test"}, args,
		strings.NewReader(stdin), &stdout, &stderr)
	return cliResult{
		stdout: stdout.String(),
		stderr: stderr.String(),
		err:    err,
		code:   ExitCodeForError(err),
	}
}

// lockFile creates an empty file in a temp dir and returns its path.
func lockFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.lock")
	require.NoError(t, os.WriteFile(path, nil, 0o600))
	return path
}
