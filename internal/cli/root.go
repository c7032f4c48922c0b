// Package cli provides the command-line interface for advlock.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mrz1836/advlock/internal/config"
	"github.com/mrz1836/advlock/internal/errors"
	"github.com/mrz1836/advlock/internal/tui"
)

// BuildInfo contains version information set at build time via ldflags.
type BuildInfo struct {
	// Version is the semantic version (e.g., "1.0.0").
	Version string
	// Commit is the git commit hash.
	Commit string
	// Date is the build date.
	Date string
}

// cliState is shared by the root command and its subcommands. It is filled
// in by the root PersistentPreRunE before any RunE executes.
type cliState struct {
	flags GlobalFlags
	cfg   *config.Config

	// out receives command results; errOut receives failures.
	out    tui.Output
	errOut tui.Output
}

// newRootCmd creates the root command. Invoked with a PATH it acquires the
// lock, reports it, optionally holds it, and releases it.
func newRootCmd(st *cliState, info BuildInfo) *cobra.Command {
	v := viper.New()
	lockFlags := &LockFlags{}

	cmd := &cobra.Command{
		Use:   "advlock [flags] PATH",
		Short: "Take an exclusive advisory lock on a file",
		Long: `advlock takes an exclusive, non-blocking advisory lock on PATH, reports the
result, and releases it. It never waits: a lock held elsewhere fails at once
with exit code 3.

Two lock disciplines are available:
  record  fcntl(2) whole-file record lock (default; works on NFS, needs --write)
  flock   flock(2) whole-file lock

The final path component is never followed if it is a symbolic link.

Exit codes:
  0  success            3  already locked
  1  error              4  path not found
  2  invalid input      5  path already exists (--create)

Examples:
  advlock --write /var/run/app.lock      # probe-and-release with a record lock
  advlock --flock --hold ~/work.lock     # hold until Enter, EOF, or Ctrl-C
  advlock --create --write /tmp/new.lock # create the lock file atomically`,
		Version: formatVersion(info),
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLock(cmd, st, lockFlags, args[0])
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return st.prepare(cmd, v)
		},
		// Errors are reported by Execute through tui.Output.
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	AddGlobalFlags(cmd, &st.flags)
	addLockFlags(cmd, lockFlags, true)

	AddCheckCommand(cmd, st)
	AddRunCommand(cmd, st)
	AddConfigCommand(cmd, st)

	return cmd
}

// prepare validates global flags, loads configuration and installs the
// logger (tagged with a fresh run_id) in the command context.
func (st *cliState) prepare(cmd *cobra.Command, v *viper.Viper) error {
	if err := BindGlobalFlags(v, cmd); err != nil {
		return fmt.Errorf("failed to bind flags: %w", err)
	}

	format := v.GetString("output")
	if !IsValidOutputFormat(format) {
		return fmt.Errorf("%w: %q must be one of %v", errors.ErrInvalidOutputFormat, format, ValidOutputFormats())
	}
	st.flags.Output = format
	st.out = tui.NewOutput(cmd.OutOrStdout(), format)
	st.errOut = newErrorOutput(cmd, format)

	ctx := cmd.Context()
	cfg, err := config.Load(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to load configuration")
	}
	st.cfg = cfg

	logger := InitLogger(cmd.ErrOrStderr(), v.GetBool("verbose"), v.GetBool("quiet"), cfg.Log)
	logger = logger.With().Str("run_id", uuid.NewString()).Str("command", cmd.Name()).Logger()
	cmd.SetContext(logger.WithContext(ctx))

	logger.Debug().Strs("args", cmd.Flags().Args()).Msg("starting")
	return nil
}

// newErrorOutput sends text errors to stderr and JSON errors to stdout,
// where scripts read the JSON stream.
func newErrorOutput(cmd *cobra.Command, format string) tui.Output {
	if format == OutputJSON {
		return tui.NewJSONOutput(cmd.OutOrStdout())
	}
	return tui.NewTTYOutput(cmd.ErrOrStderr())
}

// formatVersion creates the version string from build info.
func formatVersion(info BuildInfo) string {
	if info.Version == "" {
		info.Version = "dev"
	}
	if info.Commit == "" {
		info.Commit = "none"
	}
	if info.Date == "" {
		info.Date = "unknown"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", info.Version, info.Commit, info.Date)
}

// Execute runs the CLI with os.Args and the standard streams. Errors are
// reported to the user here; the caller only maps them to an exit code with
// ExitCodeForError.
func Execute(ctx context.Context, info BuildInfo) error {
	return execute(ctx, info, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
}

func execute(ctx context.Context, info BuildInfo, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	defer CloseLogFile()

	st := &cliState{}
	//nolint:contextcheck // Cobra command pattern uses cmd.Context() internally
	cmd := newRootCmd(st, info)
	cmd.SetArgs(args)
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(ctx)
	if err != nil && !errors.IsSilent(err) {
		errOut := st.errOut
		if errOut == nil {
			errOut = tui.NewTTYOutput(stderr)
		}
		errOut.Error(err)
	}
	return err
}
