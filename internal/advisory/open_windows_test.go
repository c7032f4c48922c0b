//go:build windows

package advisory

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	lockerrors "github.com/mrz1836/advlock/internal/errors"
	"github.com/mrz1836/advlock/internal/flock"
)

func TestOpenLockFile_RefusesSymlink(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "target")
	link := filepath.Join(dir, "link")
	require.NoError(t, os.WriteFile(target, nil, 0o600))
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("creating symlinks needs developer mode or admin rights: %v", err)
	}

	_, err := Acquire(context.Background(), Request{Path: link, Write: true, Discipline: flock.WholeFile})
	require.ErrorIs(t, err, lockerrors.ErrIO)
	require.ErrorIs(t, err, lockerrors.ErrSymlink)

	h, err := Acquire(context.Background(), Request{Path: target, Write: true, Discipline: flock.WholeFile})
	require.NoError(t, err)
	assert.NoError(t, h.Release())
}

func TestOpenLockFile_MapsExistence(t *testing.T) {
	dir := t.TempDir()
	missing := filepath.Join(dir, "missing")

	_, err := Acquire(context.Background(), Request{Path: missing, Write: true})
	require.ErrorIs(t, err, lockerrors.ErrNotFound)

	h, err := Acquire(context.Background(), Request{Path: missing, Write: true, CreateIfMissing: true})
	require.NoError(t, err)
	require.NoError(t, h.Release())

	_, err = Acquire(context.Background(), Request{Path: missing, Write: true, CreateIfMissing: true})
	require.ErrorIs(t, err, lockerrors.ErrAlreadyExists)
}
