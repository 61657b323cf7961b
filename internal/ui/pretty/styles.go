// Package pretty provides Lipgloss-based styled output utilities.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Styles contains all styled renderers for CLI output.
type Styles struct {
	// Status styles
	Error   lipgloss.Style
	Warning lipgloss.Style
	Success lipgloss.Style
	Failure lipgloss.Style

	// Record components
	Label    lipgloss.Style
	Offset   lipgloss.Style
	Path     lipgloss.Style
	Node     lipgloss.Style
	Selected lipgloss.Style
	Context  lipgloss.Style
	Caret    lipgloss.Style

	// Table styles
	TableHeader    lipgloss.Style
	TableSeparator lipgloss.Style
	Enabled        lipgloss.Style
	Disabled       lipgloss.Style

	// Misc
	Dim  lipgloss.Style
	Bold lipgloss.Style
}

// NewStyles creates a new Styles with the given color mode.
func NewStyles(colorEnabled bool) *Styles {
	if !colorEnabled {
		return newNoColorStyles()
	}
	return newColorStyles()
}

// newColorStyles creates styles with ANSI 256 colors.
func newColorStyles() *Styles {
	return &Styles{
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
		Failure: lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),

		Label:  lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Offset: lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),
		Path:   lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
		Node:   lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		// The selection itself is shown in reverse video so that
		// whitespace-only selections stay visible.
		Selected: lipgloss.NewStyle().Reverse(true),
		Context:  lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
		Caret:    lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),

		TableHeader:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7")),
		TableSeparator: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Enabled:        lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Disabled:       lipgloss.NewStyle().Foreground(lipgloss.Color("9")),

		Dim:  lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Bold: lipgloss.NewStyle().Bold(true),
	}
}

// newNoColorStyles creates styles with no color formatting.
func newNoColorStyles() *Styles {
	plain := lipgloss.NewStyle()
	return &Styles{
		Error:          plain,
		Warning:        plain,
		Success:        plain,
		Failure:        plain,
		Label:          plain,
		Offset:         plain,
		Path:           plain,
		Node:           plain,
		Selected:       plain,
		Context:        plain,
		Caret:          plain,
		TableHeader:    plain,
		TableSeparator: plain,
		Enabled:        plain,
		Disabled:       plain,
		Dim:            plain,
		Bold:           plain,
	}
}

// IsColorEnabled determines if color should be enabled based on mode and writer.
// Mode values: "auto" (default), "always", "never".
// In auto mode, color is enabled only if the writer is a TTY and NO_COLOR is not set.
func IsColorEnabled(mode string, writer io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default: // "auto"
		// https://no-color.org/
		if os.Getenv("NO_COLOR") != "" {
			return false
		}
		if f, ok := writer.(*os.File); ok {
			return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
		}
		return false
	}
}
