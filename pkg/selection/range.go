// Package selection models a live selection over an HTML tree: boundary
// points, a two-point range, and a single-range selection service.
package selection

import (
	"errors"
	"fmt"

	"golang.org/x/net/html"

	"github.com/yaklabco/gotexty/pkg/dom"
)

var (
	// ErrInvalidPoint is returned for a point whose offset does not fit its
	// node, or whose node is nil.
	ErrInvalidPoint = errors.New("invalid boundary point")

	// ErrDisconnected is returned when two points are not in the same tree.
	ErrDisconnected = errors.New("points are in different trees")

	// ErrNoParent is returned when selecting a node that has no parent.
	ErrNoParent = errors.New("node has no parent")
)

// Point is a boundary point: a node and an offset inside it. For text
// nodes the offset counts UTF-16 units; for elements it counts children.
type Point struct {
	Node   *html.Node
	Offset int
}

// Validate checks that the offset fits the node.
func (p Point) Validate() error {
	if p.Node == nil {
		return fmt.Errorf("nil node: %w", ErrInvalidPoint)
	}
	if p.Node.Type == html.DoctypeNode {
		return fmt.Errorf("doctype: %w", ErrInvalidPoint)
	}
	if p.Offset < 0 || p.Offset > dom.Length(p.Node) {
		return fmt.Errorf("offset %d of %s (length %d): %w",
			p.Offset, dom.Describe(p.Node), dom.Length(p.Node), ErrInvalidPoint)
	}
	return nil
}

// Range is a pair of boundary points with Start not after End.
type Range struct {
	Start Point
	End   Point
}

// NewRange returns the range between start and end. As with a DOM range,
// an end that precedes start collapses the range to end.
func NewRange(start, end Point) (Range, error) {
	if err := start.Validate(); err != nil {
		return Range{}, fmt.Errorf("start: %w", err)
	}
	if err := end.Validate(); err != nil {
		return Range{}, fmt.Errorf("end: %w", err)
	}
	order, err := Compare(start, end)
	if err != nil {
		return Range{}, err
	}
	if order > 0 {
		start = end
	}
	return Range{Start: start, End: end}, nil
}

// Collapsed returns a range with both points at p.
func Collapsed(p Point) (Range, error) {
	return NewRange(p, p)
}

// IsCollapsed reports whether start and end are the same point.
func (r Range) IsCollapsed() bool {
	return r.Start == r.End
}

// CommonAncestor returns the deepest node containing both points.
func (r Range) CommonAncestor() *html.Node {
	return commonAncestor(r.Start.Node, r.End.Node)
}

// Compare orders two boundary points in document order: -1 if a is
// before b, 0 if equal, 1 if after.
func Compare(a, b Point) (int, error) {
	if a.Node == b.Node {
		return cmpInt(a.Offset, b.Offset), nil
	}

	if child := childTowards(a.Node, b.Node); child != nil {
		// b is inside a.Node, under the child at index dom.Index(child).
		if a.Offset <= dom.Index(child) {
			return -1, nil
		}
		return 1, nil
	}
	if child := childTowards(b.Node, a.Node); child != nil {
		if b.Offset <= dom.Index(child) {
			return 1, nil
		}
		return -1, nil
	}

	ancestor := commonAncestor(a.Node, b.Node)
	if ancestor == nil {
		return 0, ErrDisconnected
	}
	ia := dom.Index(childTowards(ancestor, a.Node))
	ib := dom.Index(childTowards(ancestor, b.Node))
	return cmpInt(ia, ib), nil
}

// childTowards returns the child of ancestor that contains n, or nil if
// n is not a strict descendant of ancestor.
func childTowards(ancestor, n *html.Node) *html.Node {
	for cur := n; cur != nil; cur = cur.Parent {
		if cur.Parent == ancestor {
			return cur
		}
	}
	return nil
}

func commonAncestor(a, b *html.Node) *html.Node {
	seen := make(map[*html.Node]struct{})
	for n := a; n != nil; n = n.Parent {
		seen[n] = struct{}{}
	}
	for n := b; n != nil; n = n.Parent {
		if _, ok := seen[n]; ok {
			return n
		}
	}
	return nil
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
