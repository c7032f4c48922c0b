//go:build darwin || dragonfly || freebsd || linux || netbsd || openbsd

package advisory

import (
	stderrors "errors"
	"os"

	"golang.org/x/sys/unix"
)

const noFollow = unix.O_NOFOLLOW

// openLockFile opens path with O_NONBLOCK so a FIFO without a peer cannot
// stall the open. The flag has no effect on regular files or on the lock
// calls that follow.
func openLockFile(path string, flags int) (*os.File, error) {
	return os.OpenFile(path, flags|unix.O_NONBLOCK, filePerm) // #nosec G304 -- locking caller-chosen paths is the purpose
}

// isSymlinkError reports an O_NOFOLLOW refusal. Linux and macOS return
// ELOOP; FreeBSD and DragonFly return EMLINK.
func isSymlinkError(err error) bool {
	return stderrors.Is(err, unix.ELOOP) || stderrors.Is(err, unix.EMLINK)
}
