// Package ctxutil provides context utility functions.
package ctxutil

import "context"

// Canceled returns the context error if ctx is done (Canceled or
// DeadlineExceeded), nil otherwise. Lock acquisition calls it before the
// first syscall, since the syscalls themselves cannot be interrupted.
func Canceled(ctx context.Context) error {
	return ctx.Err()
}
