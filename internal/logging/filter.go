// Package logging provides zerolog helpers for advlock's persistent log file:
// a hook stamping the process ID on every event and a writer that rewrites
// the user's home directory to "~" before anything reaches disk.
package logging

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

// homeShorthand replaces the user's home directory in filtered output.
const homeShorthand = "~"

// PIDHook is a zerolog hook that adds the current process ID to every event.
// Several advlock processes commonly share one log file, and the pid tells
// the holder and the contender apart.
type PIDHook struct {
	pid int
}

// NewPIDHook creates a PIDHook for the running process.
func NewPIDHook() *PIDHook {
	return &PIDHook{pid: os.Getpid()}
}

// Run implements the zerolog.Hook interface.
func (h *PIDHook) Run(e *zerolog.Event, _ zerolog.Level, _ string) {
	e.Int("pid", h.pid)
}

// ShortenHome replaces a leading home directory in path with "~".
// Paths outside home are returned unchanged.
func ShortenHome(path, home string) string {
	if home == "" || path == "" {
		return path
	}
	home = filepath.Clean(home)
	if path == home {
		return homeShorthand
	}
	if rest, ok := strings.CutPrefix(path, home+string(filepath.Separator)); ok {
		return homeShorthand + string(filepath.Separator) + rest
	}
	return path
}

// FilteringWriter wraps an io.Writer and rewrites every occurrence of the
// user's home directory to "~". It wraps the log file writer so log files
// can be shared without leaking account names.
type FilteringWriter struct {
	w    io.Writer
	home []byte
}

// NewFilteringWriter creates a FilteringWriter for the current user's home
// directory. When the home directory is unknown, writes pass through.
func NewFilteringWriter(w io.Writer) *FilteringWriter {
	home, _ := os.UserHomeDir()
	return NewFilteringWriterForHome(w, home)
}

// NewFilteringWriterForHome creates a FilteringWriter for an explicit home directory.
func NewFilteringWriterForHome(w io.Writer, home string) *FilteringWriter {
	fw := &FilteringWriter{w: w}
	if home != "" && home != string(filepath.Separator) {
		fw.home = []byte(filepath.Clean(home))
	}
	return fw
}

// Write implements io.Writer, filtering the home directory before writing.
func (fw *FilteringWriter) Write(p []byte) (n int, err error) {
	filtered := p
	if len(fw.home) > 0 {
		filtered = bytes.ReplaceAll(p, fw.home, []byte(homeShorthand))
	}
	if _, err = fw.w.Write(filtered); err != nil {
		return 0, err
	}
	// Report the original length so callers don't see a short write.
	return len(p), nil
}
