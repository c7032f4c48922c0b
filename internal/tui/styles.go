// Package tui renders advlock's command results for people and for scripts.
//
// Two Output implementations exist: TTYOutput styles messages with Lip Gloss
// (icon plus color plus text, so nothing depends on color alone) and
// JSONOutput emits one JSON object per message.
//
// Call CheckNoColor before styled output to honor NO_COLOR and TERM=dumb.
package tui

import (
	"os"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

//nolint:gochecknoglobals // Package-level palette shared by all styles
var (
	// ColorPrimary is blue, used for informational messages and paths.
	ColorPrimary = lipgloss.AdaptiveColor{Light: "#005F87", Dark: "#5FD7FF"}

	// ColorSuccess is green, used when a lock was taken or a path is free.
	ColorSuccess = lipgloss.AdaptiveColor{Light: "#008700", Dark: "#5FFF87"}

	// ColorWarning is yellow, used for release warnings.
	ColorWarning = lipgloss.AdaptiveColor{Light: "#AF8700", Dark: "#FFD75F"}

	// ColorError is red, used for failures and held locks.
	ColorError = lipgloss.AdaptiveColor{Light: "#AF0000", Dark: "#FF5F5F"}

	// ColorMuted is gray, used for hints and secondary text.
	ColorMuted = lipgloss.AdaptiveColor{Light: "#585858", Dark: "#808080"}
)

// Status icons. Each is always paired with a color and a word.
const (
	IconSuccess = "✓"
	IconError   = "✗"
	IconWarning = "⚠"
	IconInfo    = "ℹ"
	IconAction  = "▸"
)

// OutputStyles holds the message styles used by TTYOutput.
type OutputStyles struct {
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style
	Dim     lipgloss.Style
	Header  lipgloss.Style
}

// NewOutputStyles creates the message styles using adaptive colors for
// light and dark terminals.
func NewOutputStyles() *OutputStyles {
	return &OutputStyles{
		Success: lipgloss.NewStyle().Foreground(ColorSuccess).Bold(true),
		Error:   lipgloss.NewStyle().Foreground(ColorError).Bold(true),
		Warning: lipgloss.NewStyle().Foreground(ColorWarning),
		Info:    lipgloss.NewStyle().Foreground(ColorPrimary),
		Dim:     lipgloss.NewStyle().Foreground(ColorMuted),
		Header:  lipgloss.NewStyle().Bold(true),
	}
}

// CheckNoColor switches Lip Gloss to plain ASCII when colors are unwanted.
func CheckNoColor() {
	if !HasColorSupport() {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
}

// HasColorSupport returns false if NO_COLOR is present (any value, including
// empty, per https://no-color.org/) or TERM is "dumb".
func HasColorSupport() bool {
	if _, exists := os.LookupEnv("NO_COLOR"); exists {
		return false
	}
	return os.Getenv("TERM") != "dumb"
}

// padRight pads s with spaces to width runes.
func padRight(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}
