package errors

import "errors"

// ErrorInfo holds user-facing message and suggested action for an error.
type ErrorInfo struct {
	// Message is the user-friendly error description.
	Message string
	// Action is a suggested action to resolve the issue (empty if none).
	Action string
}

// errorEntry pairs a sentinel error with its user-facing info.
type errorEntry struct {
	err  error
	info ErrorInfo
}

// errorInfoEntries maps sentinel errors to their user-facing messages.
// Order matters for wrapped errors: the first errors.Is() match wins, so
// ErrSymlink and ErrNotLockable sit ahead of ErrIO.
//
//nolint:gochecknoglobals // Pre-built mapping for efficiency
var errorInfoEntries = []errorEntry{
	// ===================
	// Lock acquisition
	// ===================
	{
		err: ErrAlreadyLocked,
		info: ErrorInfo{
			Message: "The path is already locked by another holder.",
			Action:  "Retry later, or find the holder with 'lsof <path>' or 'fuser <path>'.",
		},
	},
	{
		err: ErrNotFound,
		info: ErrorInfo{
			Message: "The path to lock does not exist.",
			Action:  "Create the file first, or pass --create to create it atomically.",
		},
	},
	{
		err: ErrAlreadyExists,
		info: ErrorInfo{
			Message: "The path already exists, so it cannot be created exclusively.",
			Action:  "Drop --create to lock the existing file.",
		},
	},
	{
		err: ErrInvalidConfiguration,
		info: ErrorInfo{
			Message: "The lock request is invalid.",
			Action:  "Request read or write access; record locks need --write, or use --flock.",
		},
	},
	{
		err: ErrSymlink,
		info: ErrorInfo{
			Message: "The final path component is a symbolic link and will not be followed.",
			Action:  "Lock the link target directly.",
		},
	},
	{
		err: ErrNotLockable,
		info: ErrorInfo{
			Message: "The path is not a regular file or directory.",
			Action:  "Lock a regular file next to the FIFO or device instead.",
		},
	},
	{
		err: ErrIO,
		info: ErrorInfo{
			Message: "The operating system refused to open or lock the path.",
			Action:  "Check permissions on the path and its parent directory.",
		},
	},
	{
		err: ErrReleaseWarning,
		info: ErrorInfo{
			Message: "The lock was not released cleanly; the descriptor was closed anyway.",
			Action:  "",
		},
	},

	// ===================
	// Configuration
	// ===================
	{
		err: ErrConfigNil,
		info: ErrorInfo{
			Message: "Configuration is not loaded.",
			Action:  "Ensure the config file exists and is valid YAML.",
		},
	},
	{
		err: ErrConfigInvalidLock,
		info: ErrorInfo{
			Message: "Invalid lock configuration.",
			Action:  "Check the 'lock' section in your advlock config for invalid values.",
		},
	},
	{
		err: ErrConfigInvalidLog,
		info: ErrorInfo{
			Message: "Invalid log configuration.",
			Action:  "Check the 'log' section in your advlock config for invalid values.",
		},
	},

	// ===================
	// Misc
	// ===================
	{
		err: ErrInvalidOutputFormat,
		info: ErrorInfo{
			Message: "Invalid output format.",
			Action:  "Use --output text or --output json.",
		},
	},
	{
		err: ErrInvalidArgument,
		info: ErrorInfo{
			Message: "An invalid argument was provided.",
			Action:  "Check the command help for valid arguments.",
		},
	},
	{
		err: ErrCommandFailed,
		info: ErrorInfo{
			Message: "The command could not be started while holding the lock.",
			Action:  "Check that the command exists and is executable.",
		},
	},
	{
		err: ErrUnsupportedOS,
		info: ErrorInfo{
			Message: "Your operating system is not supported for this operation.",
			Action:  "advlock supports Linux, macOS, the BSDs, and Windows.",
		},
	},
}

// errorInfoMap provides O(1) lookup for direct sentinel error matches.
//
//nolint:gochecknoglobals // Pre-built mapping for O(1) lookup performance
var errorInfoMap = buildErrorInfoMap()

func buildErrorInfoMap() map[error]ErrorInfo {
	m := make(map[error]ErrorInfo, len(errorInfoEntries))
	for _, entry := range errorInfoEntries {
		m[entry.err] = entry.info
	}
	return m
}

// getErrorInfo looks up the ErrorInfo for a given error.
// Direct sentinels hit the map; wrapped errors fall back to errors.Is().
// Returns an ErrorInfo with the original error message if not found.
func getErrorInfo(err error) ErrorInfo {
	if info, ok := errorInfoMap[err]; ok {
		return info
	}

	for _, entry := range errorInfoEntries {
		if errors.Is(err, entry.err) {
			return entry.info
		}
	}

	return ErrorInfo{Message: err.Error()}
}

// Actionable returns a user-friendly error message along with a suggested
// action the user can take to resolve or work around the issue.
//
// For errors that have no clear action, the action string will be empty.
func Actionable(err error) (message, action string) {
	if err == nil {
		return "", ""
	}
	info := getErrorInfo(err)
	return info.Message, info.Action
}
