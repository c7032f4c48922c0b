package cli

import (
	stderrors "errors"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mrz1836/advlock/internal/constants"
	"github.com/mrz1836/advlock/internal/errors"
	"github.com/mrz1836/advlock/internal/tui"
)

// Exit codes for the CLI.
const (
	// ExitSuccess indicates successful execution.
	ExitSuccess = 0
	// ExitError indicates a general or I/O error.
	ExitError = 1
	// ExitInvalidInput indicates invalid user input or configuration.
	ExitInvalidInput = 2
	// ExitLocked indicates the path is locked by another holder.
	ExitLocked = 3
	// ExitNotFound indicates the path does not exist.
	ExitNotFound = 4
	// ExitExists indicates the path exists although --create was given.
	ExitExists = 5
)

// Output format constants.
const (
	// OutputText is the default human-readable output format.
	OutputText = tui.FormatText
	// OutputJSON is the machine-readable JSON output format.
	OutputJSON = tui.FormatJSON
)

// GlobalFlags holds flags available to all commands.
type GlobalFlags struct {
	// Output specifies the output format (text or json).
	Output string
	// Verbose enables debug-level logging.
	Verbose bool
	// Quiet suppresses non-essential output (warn level only).
	Quiet bool
}

// AddGlobalFlags adds global flags to a command.
// These flags are available to all subcommands via PersistentFlags.
func AddGlobalFlags(cmd *cobra.Command, flags *GlobalFlags) {
	cmd.PersistentFlags().StringVarP(&flags.Output, "output", "o", OutputText, "output format (text|json)")
	cmd.PersistentFlags().BoolVarP(&flags.Verbose, "verbose", "v", false, "enable debug logging")
	cmd.PersistentFlags().BoolVarP(&flags.Quiet, "quiet", "q", false, "log warnings and errors only")
	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")
}

// BindGlobalFlags binds global flags to Viper so they can also come from
// ADVLOCK_OUTPUT, ADVLOCK_VERBOSE and ADVLOCK_QUIET.
func BindGlobalFlags(v *viper.Viper, cmd *cobra.Command) error {
	// Root().PersistentFlags() finds the flags even from a subcommand.
	rootFlags := cmd.Root().PersistentFlags()

	for _, name := range []string{"output", "verbose", "quiet"} {
		if err := v.BindPFlag(name, rootFlags.Lookup(name)); err != nil {
			return err
		}
	}

	v.SetEnvPrefix(constants.EnvPrefix)
	v.AutomaticEnv()

	return nil
}

// ValidOutputFormats returns the list of valid output format values.
func ValidOutputFormats() []string {
	return []string{OutputText, OutputJSON}
}

// IsValidOutputFormat checks if the given format is a valid output format.
func IsValidOutputFormat(format string) bool {
	return slices.Contains(ValidOutputFormats(), format)
}

// exitCodes maps error categories to exit codes. The first match wins.
//
//nolint:gochecknoglobals // Static lookup table
var exitCodes = []struct {
	err  error
	code int
}{
	{errors.ErrAlreadyLocked, ExitLocked},
	{errors.ErrNotFound, ExitNotFound},
	{errors.ErrAlreadyExists, ExitExists},
	{errors.ErrInvalidConfiguration, ExitInvalidInput},
	{errors.ErrInvalidOutputFormat, ExitInvalidInput},
	{errors.ErrInvalidArgument, ExitInvalidInput},
	{errors.ErrConfigInvalidLock, ExitInvalidInput},
	{errors.ErrConfigInvalidLog, ExitInvalidInput},
}

// ExitCodeForError returns the process exit code for err.
//
// An ExitCodeError anywhere in the chain decides the code. Otherwise lock
// errors map to their dedicated codes, user input errors (including Cobra's
// own flag and argument errors) map to ExitInvalidInput, and everything else
// is ExitError.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	if ece, ok := errors.AsExitCodeError(err); ok {
		return ece.Code
	}

	for _, entry := range exitCodes {
		if stderrors.Is(err, entry.err) {
			return entry.code
		}
	}

	if isInvalidInputError(err.Error()) {
		return ExitInvalidInput
	}

	return ExitError
}

// isInvalidInputError checks if an error message indicates invalid user input.
// This catches Cobra's built-in flag and argument validation errors.
func isInvalidInputError(errMsg string) bool {
	invalidInputPatterns := []string{
		"unknown flag",
		"unknown shorthand flag",
		"flag needs an argument",
		"invalid argument",
		"if any flags in the group",
		"required flag",
		"unknown command",
		"arg(s)",
	}

	for _, pattern := range invalidInputPatterns {
		if strings.Contains(errMsg, pattern) {
			return true
		}
	}
	return false
}
