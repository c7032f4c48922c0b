//go:build windows

package advisory

import (
	stderrors "errors"
	"io/fs"
	"os"

	"golang.org/x/sys/windows"
)

// Windows has no O_NOFOLLOW; openLockFile opens reparse points as themselves
// instead.
const noFollow = 0

// errReparsePoint reports a final path component that is a symbolic link or
// junction.
var errReparsePoint = stderrors.New("path is a reparse point")

// openLockFile opens path with FILE_FLAG_OPEN_REPARSE_POINT so a symbolic
// link in the final component is opened as the link itself, then refuses
// it. Errors are *fs.PathError values carrying the Windows errno, so
// fs.ErrNotExist and fs.ErrExist still match.
func openLockFile(path string, flags int) (*os.File, error) {
	name, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return nil, &fs.PathError{Op: "open", Path: path, Err: err}
	}

	var access uint32
	switch flags & (os.O_RDONLY | os.O_WRONLY | os.O_RDWR) {
	case os.O_RDWR:
		access = windows.GENERIC_READ | windows.GENERIC_WRITE
	case os.O_WRONLY:
		access = windows.GENERIC_WRITE
	default:
		access = windows.GENERIC_READ
	}

	disposition := uint32(windows.OPEN_EXISTING)
	if flags&os.O_CREATE != 0 && flags&os.O_EXCL != 0 {
		disposition = windows.CREATE_NEW
	}

	h, err := windows.CreateFile(
		name,
		access,
		windows.FILE_SHARE_READ|windows.FILE_SHARE_WRITE|windows.FILE_SHARE_DELETE,
		nil,
		disposition,
		windows.FILE_ATTRIBUTE_NORMAL|windows.FILE_FLAG_OPEN_REPARSE_POINT|windows.FILE_FLAG_BACKUP_SEMANTICS,
		0,
	)
	if err != nil {
		return nil, &fs.PathError{Op: "open", Path: path, Err: err}
	}

	var info windows.ByHandleFileInformation
	if err := windows.GetFileInformationByHandle(h, &info); err != nil {
		_ = windows.CloseHandle(h)
		return nil, &fs.PathError{Op: "open", Path: path, Err: err}
	}
	if info.FileAttributes&windows.FILE_ATTRIBUTE_REPARSE_POINT != 0 {
		_ = windows.CloseHandle(h)
		return nil, &fs.PathError{Op: "open", Path: path, Err: errReparsePoint}
	}

	return os.NewFile(uintptr(h), path), nil
}

func isSymlinkError(err error) bool {
	return stderrors.Is(err, errReparsePoint)
}
