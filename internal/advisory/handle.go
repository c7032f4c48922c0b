package advisory

import (
	stderrors "errors"
	"fmt"
	"os"
	"sync"

	lockerrors "github.com/mrz1836/advlock/internal/errors"
	"github.com/mrz1836/advlock/internal/flock"
)

// noCopy makes `go vet` flag copies of a Handle. A copied handle would let
// two owners release the same descriptor.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// Handle is a held advisory lock. It is owned by the caller that acquired
// it and must not be copied or shared.
type Handle struct {
	_ noCopy

	file       *os.File
	path       string
	discipline flock.Discipline
	once       sync.Once
}

// Path returns the path the lock was requested for.
func (h *Handle) Path() string {
	return h.path
}

// Discipline returns the primitive the lock was acquired with.
func (h *Handle) Discipline() flock.Discipline {
	return h.discipline
}

// Fd returns the locked descriptor. It is only meaningful before Release.
func (h *Handle) Fd() uintptr {
	return h.file.Fd()
}

// Release unlocks with the acquiring discipline and then closes the
// descriptor. Both steps always run. The first call does the work; later
// calls return nil.
//
// A non-nil error wraps ErrReleaseWarning. The lock is gone either way
// because closing the descriptor drops it.
func (h *Handle) Release() error {
	if h == nil {
		return nil
	}

	var err error
	h.once.Do(func() {
		err = h.release()
	})
	return err
}

func (h *Handle) release() error {
	var errs []error
	if err := flock.Unlock(h.file.Fd(), h.discipline); err != nil {
		errs = append(errs, fmt.Errorf("unlock (%s): %w", h.discipline, err))
	}
	if err := h.file.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close: %w", err))
	}
	if len(errs) == 0 {
		return nil
	}
	return lockerrors.Classify(lockerrors.ErrReleaseWarning, stderrors.Join(errs...), "%s", h.path)
}
