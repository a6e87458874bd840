package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// Adaptive palette for CLI output.
var (
	ColorPending = lipgloss.AdaptiveColor{
		Light: "#f2ae49",
		Dark:  "#ffb454",
	}
	ColorDone = lipgloss.AdaptiveColor{
		Light: "#86b300",
		Dark:  "#c2d94c",
	}
	ColorFail = lipgloss.AdaptiveColor{
		Light: "#f07171",
		Dark:  "#f07178",
	}
	ColorMuted = lipgloss.AdaptiveColor{
		Light: "#828c99",
		Dark:  "#6c7680",
	}
	ColorAccent = lipgloss.AdaptiveColor{
		Light: "#399ee6",
		Dark:  "#59c2ff",
	}
)

var (
	PendingStyle = lipgloss.NewStyle().Foreground(ColorPending)
	DoneStyle    = lipgloss.NewStyle().Foreground(ColorDone)
	FailStyle    = lipgloss.NewStyle().Foreground(ColorFail)
	MutedStyle   = lipgloss.NewStyle().Foreground(ColorMuted)
	AccentStyle  = lipgloss.NewStyle().Foreground(ColorAccent)

	// LaneStyle renders lane headers in bold accent.
	LaneStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorAccent)
)

// Lane marker icons used by the list command.
const (
	IconPending = "○"
	IconDone    = "✓"
	IconFail    = "✗"
)

// colorDisabled is set by DisableColor (the --no-color flag).
var colorDisabled bool

// DisableColor forces plain output regardless of terminal capabilities.
func DisableColor() {
	colorDisabled = true
	lipgloss.SetColorProfile(termenv.Ascii)
}

// ShouldUseColor reports whether styled output is appropriate: stdout is a
// terminal, NO_COLOR is unset, and --no-color was not given.
func ShouldUseColor() bool {
	if colorDisabled {
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return term.IsTerminal(int(os.Stdout.Fd()))
}
