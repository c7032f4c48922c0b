package tui

import "io"

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Output provides methods for reporting command results.
type Output interface {
	// Success prints a success message.
	Success(msg string)
	// Error prints an error along with a suggested next step when one is known.
	Error(err error)
	// Warning prints a warning message.
	Warning(msg string)
	// Info prints an informational message.
	Info(msg string)
	// Table prints rows under the given column headers.
	Table(headers []string, rows [][]string)
	// JSON outputs a value as JSON.
	JSON(v any) error
}

// NewOutput creates the Output for format. Anything other than "json"
// gets the styled text output.
func NewOutput(w io.Writer, format string) Output {
	if format == FormatJSON {
		return NewJSONOutput(w)
	}
	return NewTTYOutput(w)
}
