//go:build darwin || dragonfly || freebsd || netbsd || openbsd

package flock

import "golang.org/x/sys/unix"

// setLockCmd is the classic process-owned record lock.
const setLockCmd = unix.F_SETLK
