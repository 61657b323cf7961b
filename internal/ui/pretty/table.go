package pretty

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yaklabco/gotexty/pkg/texty"
)

// Table formatting constants.
const (
	tablePadding   = 2
	heavySeparator = "="
	enabledSymbol  = "yes"
	disabledSymbol = "no"
)

// capabilityRow is one line of the capabilities table.
type capabilityRow struct {
	name        string
	enabled     bool
	description string
}

// FormatCapabilities formats detected capabilities as a table, followed by
// an overall supported/unsupported line.
func (s *Styles) FormatCapabilities(caps texty.Capabilities) string {
	rows := []capabilityRow{
		{"selection_start", caps.HasSelectionStart, "fields expose cursor offsets"},
		{"window_selection", caps.HasWindowSelection, "live selection service"},
		{"document_selection", caps.HasDocumentSelection, "legacy document selection"},
		{"proper_lines", caps.HasProperLines, "fields report \\n line breaks"},
	}

	nameWidth := len("CAPABILITY")
	for _, row := range rows {
		nameWidth = max(nameWidth, len(row.name))
	}
	stateWidth := len("STATE")

	var builder strings.Builder
	header := padRight("CAPABILITY", nameWidth) + strings.Repeat(" ", tablePadding) +
		padRight("STATE", stateWidth) + strings.Repeat(" ", tablePadding) + "DESCRIPTION"
	builder.WriteString(s.TableHeader.Render(header) + "\n")
	builder.WriteString(s.TableSeparator.Render(strings.Repeat(heavySeparator, lipgloss.Width(header)+tablePadding*4)) + "\n")

	for _, row := range rows {
		state := s.Disabled.Render(padRight(disabledSymbol, stateWidth))
		if row.enabled {
			state = s.Enabled.Render(padRight(enabledSymbol, stateWidth))
		}
		builder.WriteString(padRight(row.name, nameWidth) + strings.Repeat(" ", tablePadding) +
			state + strings.Repeat(" ", tablePadding) + s.Dim.Render(row.description) + "\n")
	}

	builder.WriteString("\n")
	if caps.Supported() {
		builder.WriteString(s.Success.Render("selection supported") + "\n")
	} else {
		builder.WriteString(s.Failure.Render("selection unsupported") + "\n")
	}

	return builder.String()
}

// padRight pads str with spaces to width display columns.
func padRight(str string, width int) string {
	if gap := width - lipgloss.Width(str); gap > 0 {
		return str + strings.Repeat(" ", gap)
	}
	return str
}
