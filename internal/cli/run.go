package cli

import (
	"context"
	stderrors "errors"
	"os"
	"os/exec"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/mrz1836/advlock/internal/advisory"
	"github.com/mrz1836/advlock/internal/constants"
	"github.com/mrz1836/advlock/internal/errors"
	"github.com/mrz1836/advlock/internal/signal"
)

// EnvHeldPath is set in the child's environment to the locked path.
const EnvHeldPath = "ADVLOCK_HELD_PATH"

// AddRunCommand adds the run subcommand.
func AddRunCommand(root *cobra.Command, st *cliState) {
	flags := &LockFlags{}

	cmd := &cobra.Command{
		Use:   "run [flags] PATH -- COMMAND [ARGS...]",
		Short: "Run a command while holding the lock",
		Long: `Acquire the lock on PATH, run COMMAND with the terminal's stdin, stdout and
stderr, and release the lock when COMMAND exits. advlock exits with COMMAND's
exit code.

The lock descriptor is not inherited by COMMAND. The locked path is passed to
it in the ADVLOCK_HELD_PATH environment variable.

SIGINT and SIGTERM are forwarded to COMMAND as an interrupt; if it has not
exited shortly afterwards it is killed.

Examples:
  advlock run --write /var/run/backup.lock -- rsync -a src/ dst/
  advlock run --flock ~/deploy.lock -- make deploy`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			argv := args[1:]
			// Flag parsing stops at PATH, so a separating "--" arrives as an argument.
			if argv[0] == "--" {
				argv = argv[1:]
			}
			if len(argv) == 0 {
				return errors.Classify(errors.ErrInvalidArgument, nil, "missing COMMAND after %s", args[0])
			}
			return runWithLock(cmd, st, flags, args[0], argv)
		},
	}

	addLockFlags(cmd, flags, false)
	// Everything after PATH belongs to COMMAND, including its flags.
	cmd.Flags().SetInterspersed(false)
	root.AddCommand(cmd)
}

// runWithLock runs argv while holding the lock described by the flags.
func runWithLock(cmd *cobra.Command, st *cliState, flags *LockFlags, path string, argv []string) error {
	req, _, err := buildRequest(cmd, st.cfg, flags, path)
	if err != nil {
		return err
	}

	handler := signal.NewHandler(cmd.Context())
	defer handler.Stop()
	ctx := handler.Context()

	return advisory.With(ctx, req, func(h *advisory.Handle) error {
		logger := zerolog.Ctx(ctx).With().
			Str("path", h.Path()).
			Stringer("discipline", h.Discipline()).
			Str("child", argv[0]).
			Logger()

		if st.flags.Output != OutputJSON {
			st.errOut.Info("locked " + h.Path() + "; running " + argv[0])
		}

		err := runChild(ctx, cmd, h.Path(), argv)
		code := childExitCode(err)
		logger.Info().Int("exit_code", code).Err(err).Msg("command finished")

		switch {
		case err == nil:
			return nil
		case code > 0:
			// The child reported its own failure.
			return errors.NewSilentExitCodeError(code, err)
		default:
			return errors.Classify(errors.ErrCommandFailed, err, "%s", argv[0])
		}
	})
}

// runChild starts argv with inherited stdio and waits for it. Cancelling ctx
// interrupts the child, then kills it after ProcessTerminationTimeout.
func runChild(ctx context.Context, cmd *cobra.Command, path string, argv []string) error {
	//nolint:gosec // running the user's command is the purpose of run
	child := exec.CommandContext(ctx, argv[0], argv[1:]...)
	child.Stdin = cmd.InOrStdin()
	child.Stdout = cmd.OutOrStdout()
	child.Stderr = cmd.ErrOrStderr()
	child.Env = append(os.Environ(), EnvHeldPath+"="+path)
	child.Cancel = func() error {
		return child.Process.Signal(os.Interrupt)
	}
	child.WaitDelay = constants.ProcessTerminationTimeout

	return child.Run()
}

// childExitCode returns the child's exit status, or -1 if it never ran or
// was killed by a signal.
func childExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if stderrors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}
