// Package advisory implements the advisory lock guard: open a path, take an
// exclusive non-blocking advisory lock on it, hand the caller a Handle, and
// unlock-then-close exactly once when the caller is done.
//
// The final path component is never followed if it is a symbolic link, and
// exclusive creation is a single O_CREAT|O_EXCL open rather than a separate
// existence check. On Windows the path is opened with
// FILE_FLAG_OPEN_REPARSE_POINT and refused if it is a link.
//
// Only regular files and directories are locked. The open never blocks on a
// FIFO; a FIFO or device is refused with ErrNotLockable.
//
// Locks attach to the opened inode, not to the path. Without
// Request.CreateIfMissing another process can unlink or replace the path
// between open and lock; the lock is still taken on the file that was
// opened. With CreateIfMissing the exclusive create closes that window.
//
// Prefer the scoped form, which releases on every exit path:
//
//	err := advisory.With(ctx, advisory.Request{Path: p, Write: true}, func(h *advisory.Handle) error {
//	    return doWork(h.Path())
//	})
package advisory
