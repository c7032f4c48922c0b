//go:build linux

package flock

import "golang.org/x/sys/unix"

// setLockCmd uses open file description locks: they are owned by the open
// file rather than the process, so closing an unrelated descriptor for the
// same file does not drop them.
const setLockCmd = unix.F_OFD_SETLK
