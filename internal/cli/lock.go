package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/mrz1836/advlock/internal/advisory"
	"github.com/mrz1836/advlock/internal/config"
	"github.com/mrz1836/advlock/internal/errors"
	"github.com/mrz1836/advlock/internal/flock"
	"github.com/mrz1836/advlock/internal/signal"
)

// Lock result statuses.
const (
	statusLocked   = "locked"
	statusReleased = "released"
	statusUnlocked = "unlocked"
)

// LockFlags holds the flags that shape a lock request.
type LockFlags struct {
	NoRead bool
	Write  bool
	Flock  bool
	Create bool
	Hold   bool
}

// lockResult is the JSON form of a lock report.
type lockResult struct {
	Path       string `json:"path"`
	Discipline string `json:"discipline"`
	Mode       string `json:"mode"`
	Status     string `json:"status"`
	PID        int    `json:"pid"`
}

// addLockFlags registers the lock request flags. --hold only makes sense
// for the root command.
func addLockFlags(cmd *cobra.Command, flags *LockFlags, withHold bool) {
	cmd.Flags().BoolVar(&flags.NoRead, "no-read", false, "do not open the file for reading")
	cmd.Flags().BoolVarP(&flags.Write, "write", "w", false, "open the file for writing (required for record locks)")
	cmd.Flags().BoolVar(&flags.Flock, "flock", false, "use a flock(2) lock instead of an fcntl(2) record lock")
	cmd.Flags().BoolVar(&flags.Create, "create", false, "create the file atomically; fail if it exists")
	if withHold {
		cmd.Flags().BoolVar(&flags.Hold, "hold", false, "hold the lock until Enter, EOF, SIGINT or SIGTERM")
	}
}

// buildRequest merges configuration defaults with the flags that were
// explicitly set and returns the lock request and whether to hold.
func buildRequest(cmd *cobra.Command, cfg *config.Config, flags *LockFlags, path string) (advisory.Request, bool, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	lc := cfg.Lock
	changed := cmd.Flags().Changed

	if changed("no-read") {
		lc.Read = !flags.NoRead
	}
	if changed("write") {
		lc.Write = flags.Write
	}
	if changed("flock") {
		lc.Discipline = flock.Record
		if flags.Flock {
			lc.Discipline = flock.WholeFile
		}
	}
	if changed("create") {
		lc.Create = flags.Create
	}
	if changed("hold") {
		lc.Hold = flags.Hold
	}

	expanded, err := expandPath(path)
	if err != nil {
		return advisory.Request{}, false, err
	}

	req := advisory.Request{
		Path:            expanded,
		Read:            lc.Read,
		Write:           lc.Write,
		Discipline:      lc.Discipline,
		CreateIfMissing: lc.Create,
	}

	if req.Discipline.NeedsWrite() && req.Read && !req.Write {
		return req, false, errors.Classify(errors.ErrInvalidConfiguration, nil,
			"record locks require --write; add --write or use --flock")
	}
	if err := req.Validate(); err != nil {
		return req, false, err
	}
	return req, lc.Hold, nil
}

// expandPath expands a leading "~" to the user's home directory.
func expandPath(path string) (string, error) {
	if path == "" {
		return "", errors.Classify(errors.ErrInvalidArgument, nil, "PATH must not be empty")
	}
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "failed to expand ~")
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

// runLock acquires the lock, reports it, optionally holds it, and releases it.
func runLock(cmd *cobra.Command, st *cliState, flags *LockFlags, path string) error {
	ctx := cmd.Context()
	req, hold, err := buildRequest(cmd, st.cfg, flags, path)
	if err != nil {
		return err
	}

	h, err := advisory.Acquire(ctx, req)
	if err != nil {
		return err
	}
	logger := zerolog.Ctx(ctx).With().Str("path", h.Path()).Stringer("discipline", h.Discipline()).Logger()
	logger.Info().Msg("lock acquired")

	reportErr := st.report(req, statusLocked)
	if reportErr == nil && hold {
		reportErr = holdLock(ctx, cmd, st, logger)
	}

	if err := h.Release(); err != nil {
		logger.Warn().Err(err).Msg("lock release incomplete")
		st.errOut.Warning(err.Error())
	} else {
		logger.Info().Msg("lock released")
	}

	if reportErr != nil {
		return reportErr
	}
	if hold {
		return st.report(req, statusReleased)
	}
	return nil
}

// report prints the outcome of a lock request.
func (st *cliState) report(req advisory.Request, status string) error {
	if st.flags.Output == OutputJSON {
		return st.out.JSON(lockResult{
			Path:       req.Path,
			Discipline: req.Discipline.String(),
			Mode:       req.Mode(),
			Status:     status,
			PID:        os.Getpid(),
		})
	}
	st.out.Success(fmt.Sprintf("%s %s (%s, %s)", status, req.Path, req.Discipline, req.Mode()))
	return nil
}

// holdLock blocks until a line or EOF arrives on stdin, a signal arrives,
// or ctx ends. The stdin reader may outlive the call; it only ever reads.
func holdLock(ctx context.Context, cmd *cobra.Command, st *cliState, logger zerolog.Logger) error {
	handler := signal.NewHandler(ctx)
	defer handler.Stop()

	stdin := cmd.InOrStdin()
	if st.flags.Output != OutputJSON {
		if f, ok := stdin.(*os.File); ok && isTerminal(f) {
			st.errOut.Info("holding lock; press Enter or Ctrl-C to release")
		} else {
			st.errOut.Info("holding lock until EOF on stdin, SIGINT or SIGTERM")
		}
	}

	lineRead := make(chan struct{})
	go func() {
		defer close(lineRead)
		waitForLine(stdin)
	}()

	select {
	case <-lineRead:
		logger.Debug().Msg("release requested on stdin")
	case <-handler.Interrupted():
		logger.Info().Stringer("signal", handler.Signal()).Msg("interrupted; releasing lock")
	case <-handler.Context().Done():
		logger.Info().Err(context.Cause(handler.Context())).Msg("context ended; releasing lock")
	}
	return nil
}

// waitForLine reads until the first newline or EOF.
func waitForLine(r io.Reader) {
	_, _ = bufio.NewReader(r).ReadString('\n')
}
