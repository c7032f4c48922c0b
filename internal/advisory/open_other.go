//go:build !(darwin || dragonfly || freebsd || linux || netbsd || openbsd || windows)

package advisory

import "os"

const noFollow = 0

func openLockFile(path string, flags int) (*os.File, error) {
	return os.OpenFile(path, flags, filePerm) // #nosec G304 -- locking caller-chosen paths is the purpose
}

func isSymlinkError(_ error) bool {
	return false
}
