// Package field provides an in-memory editable text field with the cursor
// semantics of an HTML textarea: a text buffer plus a start/end selection
// measured in UTF-16 code units.
package field

import (
	"github.com/yaklabco/gotexty/pkg/textutil"
)

// TextArea is a plain-text field. The zero value is an empty field with
// the cursor at 0.
type TextArea struct {
	value      string
	start, end int
}

// NewTextArea returns a field holding value with the cursor at the end.
func NewTextArea(value string) *TextArea {
	f := &TextArea{}
	f.SetValue(value)
	return f
}

// Value returns the buffer.
func (f *TextArea) Value() string {
	return f.value
}

// SetValue replaces the buffer and moves the cursor to its end.
func (f *TextArea) SetValue(value string) {
	f.value = value
	n := textutil.Len16(value)
	f.start, f.end = n, n
}

// SelectionStart returns the start of the selection.
func (f *TextArea) SelectionStart() int {
	return f.start
}

// SelectionEnd returns the end of the selection.
func (f *TextArea) SelectionEnd() int {
	return f.end
}

// SetSelectionRange moves the selection. Both offsets are clamped to the
// buffer; an end before start collapses the selection to end.
func (f *TextArea) SetSelectionRange(start, end int) {
	n := textutil.Len16(f.value)
	end = min(max(end, 0), n)
	start = min(max(start, 0), end)
	f.start, f.end = start, end
}

// Selected returns the selected text.
func (f *TextArea) Selected() string {
	return textutil.Slice16(f.value, f.start, f.end)
}
