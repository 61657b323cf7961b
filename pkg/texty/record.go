package texty

import (
	"fmt"

	"golang.org/x/net/html"

	"github.com/yaklabco/gotexty/pkg/textutil"
)

// Selection is a flat description of a selection: two UTF-16 offsets into
// ContentAll plus the three substrings they cut it into.
//
// For a text field ContentAll is the field's buffer. For a rich region it
// is the serialized content of Scope, and the offsets count markup, not
// rendered text.
type Selection struct {
	// Scope is the region a structural selection was measured against.
	// Nil for field selections.
	Scope *html.Node `json:"-" yaml:"-"`

	Start         int    `json:"start"          yaml:"start"`
	End           int    `json:"end"            yaml:"end"`
	Content       string `json:"content"        yaml:"content"`
	ContentBefore string `json:"content_before" yaml:"content_before"`
	ContentAfter  string `json:"content_after"  yaml:"content_after"`
	ContentAll    string `json:"content_all"    yaml:"content_all"`
}

// NewSelection builds a record over all with the derived substrings filled
// in. It fails unless 0 <= start <= end <= len16(all) and neither offset
// falls inside a surrogate pair.
func NewSelection(all string, start, end int) (Selection, error) {
	n := textutil.Len16(all)
	if start < 0 || start > end || end > n {
		return Selection{}, fmt.Errorf("start %d, end %d, length %d: %w", start, end, n, ErrInvalidSelection)
	}
	if !textutil.IsBoundary(all, start) || !textutil.IsBoundary(all, end) {
		return Selection{}, fmt.Errorf("start %d, end %d split a surrogate pair: %w", start, end, ErrInvalidSelection)
	}
	before, rest := textutil.Split16(all, start)
	content, after := textutil.Split16(rest, end-start)
	return Selection{
		Start:         start,
		End:           end,
		Content:       content,
		ContentBefore: before,
		ContentAfter:  after,
		ContentAll:    all,
	}, nil
}

// Normalize returns the record rebuilt from Start, End and ContentAll,
// discarding whatever the derived fields held.
func (s Selection) Normalize() (Selection, error) {
	out, err := NewSelection(s.ContentAll, s.Start, s.End)
	if err != nil {
		return Selection{}, err
	}
	out.Scope = s.Scope
	return out, nil
}

// Length returns End - Start.
func (s Selection) Length() int {
	return s.End - s.Start
}

// IsCollapsed reports whether the selection is empty.
func (s Selection) IsCollapsed() bool {
	return s.Start == s.End
}

// StartOffset returns Start.
func (s Selection) StartOffset() int { return s.Start }

// EndOffset returns End.
func (s Selection) EndOffset() int { return s.End }

// Markup returns ContentAll.
func (s Selection) Markup() string { return s.ContentAll }
