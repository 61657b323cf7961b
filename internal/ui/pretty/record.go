package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/gotexty/pkg/texty"
	"github.com/yaklabco/gotexty/pkg/textutil"
)

// contextWidth is how many UTF-16 units of surrounding content a preview
// keeps on each side of the selection.
const contextWidth = 40

// ellipsis marks trimmed preview text.
const ellipsis = "…"

// FormatRecord formats a selection record: its offsets on one line, then
// a one-line preview with the selection highlighted and a caret line under
// collapsed selections.
func (s *Styles) FormatRecord(rec texty.Selection) string {
	var builder strings.Builder

	builder.WriteString(fmt.Sprintf("%s %s  %s %s  %s %s\n",
		s.Label.Render("start"), s.Offset.Render(fmt.Sprint(rec.Start)),
		s.Label.Render("end"), s.Offset.Render(fmt.Sprint(rec.End)),
		s.Label.Render("length"), s.Offset.Render(fmt.Sprint(rec.Length())),
	))

	before := Escape(trimLeft(rec.ContentBefore, contextWidth))
	after := Escape(trimRight(rec.ContentAfter, contextWidth))
	content := Escape(rec.Content)

	builder.WriteString("  ")
	builder.WriteString(s.Context.Render(before))
	if content != "" {
		builder.WriteString(s.Selected.Render(content))
	}
	builder.WriteString(s.Context.Render(after))
	builder.WriteString("\n")

	if rec.IsCollapsed() {
		pad := strings.Repeat(" ", textutil.Len16(before)+2)
		builder.WriteString(pad + s.Caret.Render("^") + "\n")
	}

	return builder.String()
}

// FormatPoint formats a structural position as "path:offset (node)".
func (s *Styles) FormatPoint(label, path string, offset int, node string) string {
	if path == "" {
		path = "."
	}
	return fmt.Sprintf("%s %s:%s %s\n",
		s.Label.Render(fmt.Sprintf("%-6s", label)),
		s.Path.Render(path),
		s.Offset.Render(fmt.Sprint(offset)),
		s.Node.Render(node),
	)
}

// FormatNoSelection reports that nothing is selected.
func (s *Styles) FormatNoSelection() string {
	return s.Warning.Render("no selection") + "\n"
}

// Escape makes control characters in s visible on one line.
func Escape(s string) string {
	replacer := strings.NewReplacer("\r", `\r`, "\n", `\n`, "\t", `\t`)
	return replacer.Replace(s)
}

// trimLeft keeps the last n UTF-16 units of s.
func trimLeft(s string, n int) string {
	length := textutil.Len16(s)
	if length <= n {
		return s
	}
	return ellipsis + textutil.Slice16(s, length-n, length)
}

// trimRight keeps the first n UTF-16 units of s.
func trimRight(s string, n int) string {
	if textutil.Len16(s) <= n {
		return s
	}
	return textutil.Slice16(s, 0, n) + ellipsis
}
