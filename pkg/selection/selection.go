package selection

import (
	"fmt"

	"golang.org/x/net/html"

	"github.com/yaklabco/gotexty/pkg/dom"
)

// Selection holds at most one range. The zero value has no range.
type Selection struct {
	current *Range
}

// New returns an empty selection.
func New() *Selection {
	return &Selection{}
}

// Range returns the current range, if any.
func (s *Selection) Range() (Range, bool) {
	if s.current == nil {
		return Range{}, false
	}
	return *s.current, true
}

// RangeCount returns 0 or 1.
func (s *Selection) RangeCount() int {
	if s.current == nil {
		return 0
	}
	return 1
}

// RemoveAllRanges clears the selection.
func (s *Selection) RemoveAllRanges() {
	s.current = nil
}

// AddRange makes r the current range, replacing any previous one.
func (s *Selection) AddRange(r Range) error {
	checked, err := NewRange(r.Start, r.End)
	if err != nil {
		return fmt.Errorf("add range: %w", err)
	}
	s.current = &checked
	return nil
}

// Collapse replaces the selection with a collapsed range at p.
func (s *Selection) Collapse(p Point) error {
	r, err := Collapsed(p)
	if err != nil {
		return fmt.Errorf("collapse: %w", err)
	}
	s.current = &r
	return nil
}

// SetBaseAndExtent replaces the selection with the range spanning start
// to end.
func (s *Selection) SetBaseAndExtent(start, end Point) error {
	r, err := NewRange(start, end)
	if err != nil {
		return fmt.Errorf("set base and extent: %w", err)
	}
	s.current = &r
	return nil
}

// SelectNode replaces the selection with a range around n itself, from
// just before it to just after it in its parent.
func (s *Selection) SelectNode(n *html.Node) error {
	if n == nil || n.Parent == nil {
		return fmt.Errorf("select %s: %w", dom.Describe(n), ErrNoParent)
	}
	idx := dom.Index(n)
	return s.SetBaseAndExtent(
		Point{Node: n.Parent, Offset: idx},
		Point{Node: n.Parent, Offset: idx + 1},
	)
}

// IsCollapsed reports whether the selection is empty or collapsed.
func (s *Selection) IsCollapsed() bool {
	return s.current == nil || s.current.IsCollapsed()
}
