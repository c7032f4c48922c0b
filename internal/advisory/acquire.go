package advisory

import (
	"context"
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/rs/zerolog"

	"github.com/mrz1836/advlock/internal/ctxutil"
	lockerrors "github.com/mrz1836/advlock/internal/errors"
	"github.com/mrz1836/advlock/internal/flock"
)

// Acquire opens req.Path and takes an exclusive, non-blocking advisory lock
// on it. It never waits for a competing holder.
//
// Errors wrap one of ErrInvalidConfiguration, ErrNotFound, ErrAlreadyExists,
// ErrAlreadyLocked, or ErrIO. The descriptor is closed on every failure.
// The context is only checked before any syscall is made; it also carries
// the zerolog logger.
func Acquire(ctx context.Context, req Request) (*Handle, error) {
	flags, err := req.openFlags()
	if err != nil {
		return nil, err
	}
	if err := ctxutil.Canceled(ctx); err != nil {
		return nil, err
	}

	logger := zerolog.Ctx(ctx).With().
		Str("component", "advisory").
		Str("path", req.Path).
		Stringer("discipline", req.Discipline).
		Str("mode", req.Mode()).
		Bool("create", req.CreateIfMissing).
		Logger()

	f, err := openLockFile(req.Path, flags)
	if err != nil {
		return nil, classifyOpenError(req.Path, err)
	}
	if err := checkLockable(f, req.Path); err != nil {
		_ = f.Close()
		return nil, err
	}

	if err := flock.Exclusive(f.Fd(), req.Discipline); err != nil {
		_ = f.Close()
		if flock.IsContention(err) {
			logger.Debug().Err(err).Msg("lock held elsewhere")
			return nil, lockerrors.Classify(lockerrors.ErrAlreadyLocked, err, "%s (%s)", req.Path, req.Discipline)
		}
		return nil, lockerrors.Classify(lockerrors.ErrIO, err, "lock %s (%s)", req.Path, req.Discipline)
	}

	logger.Debug().Msg("advisory lock acquired")
	return &Handle{
		file:       f,
		path:       req.Path,
		discipline: req.Discipline,
	}, nil
}

// classifyOpenError maps an open failure onto the lock error taxonomy while
// keeping the errno in the chain.
func classifyOpenError(path string, err error) error {
	cause := err
	var pathErr *fs.PathError
	if stderrors.As(err, &pathErr) {
		cause = pathErr.Err
	}

	switch {
	case stderrors.Is(err, fs.ErrNotExist):
		return lockerrors.Classify(lockerrors.ErrNotFound, cause, "open %s", path)
	case stderrors.Is(err, fs.ErrExist):
		return lockerrors.Classify(lockerrors.ErrAlreadyExists, cause, "open %s", path)
	case isSymlinkError(err):
		return fmt.Errorf("%w: %w: open %s: %w", lockerrors.ErrIO, lockerrors.ErrSymlink, path, cause)
	default:
		return lockerrors.Classify(lockerrors.ErrIO, cause, "open %s", path)
	}
}

// checkLockable refuses anything other than a regular file or a directory.
// FIFOs and devices open without blocking but make no sense as lock files.
func checkLockable(f *os.File, path string) error {
	info, err := f.Stat()
	if err != nil {
		return lockerrors.Classify(lockerrors.ErrIO, err, "stat %s", path)
	}
	if info.Mode().IsRegular() || info.IsDir() {
		return nil
	}
	return fmt.Errorf("%w: %w: %s (%s)", lockerrors.ErrIO, lockerrors.ErrNotLockable, path, info.Mode().Type())
}

// With acquires the lock described by req, runs fn while holding it, and
// releases it afterwards. Release runs on normal return, on error, and when
// fn panics. A release warning is logged, never returned.
func With(ctx context.Context, req Request, fn func(*Handle) error) error {
	h, err := Acquire(ctx, req)
	if err != nil {
		return err
	}
	defer releaseAndLog(ctx, h)

	return fn(h)
}

// IsLocked reports whether another holder currently has path locked, probing
// with write access and the default record discipline.
func IsLocked(ctx context.Context, path string) (bool, error) {
	return IsLockedWith(ctx, path, flock.Record)
}

// IsLockedWith probes path with the given discipline. Whole-file probes open
// read-only so they also work on files the caller cannot write. A successful
// probe is released before returning; any error other than contention is
// returned unchanged.
func IsLockedWith(ctx context.Context, path string, d flock.Discipline) (bool, error) {
	req := Request{Path: path, Discipline: d}
	if d.NeedsWrite() {
		req.Write = true
	} else {
		req.Read = true
	}

	h, err := Acquire(ctx, req)
	if stderrors.Is(err, lockerrors.ErrAlreadyLocked) {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	releaseAndLog(ctx, h)
	return false, nil
}

func releaseAndLog(ctx context.Context, h *Handle) {
	if err := h.Release(); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("path", h.Path()).Msg("advisory lock release incomplete")
		return
	}
	zerolog.Ctx(ctx).Debug().Str("path", h.Path()).Msg("advisory lock released")
}
