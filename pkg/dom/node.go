package dom

import (
	"errors"
	"fmt"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/yaklabco/gotexty/pkg/textutil"
)

// Errors returned by position helpers.
var (
	// ErrOffsetOutOfRange is returned when an offset exceeds the length of
	// its container.
	ErrOffsetOutOfRange = errors.New("offset out of range")

	// ErrInvalidContainer is returned when a node cannot hold a position.
	ErrInvalidContainer = errors.New("node cannot contain a position")
)

// Clone returns a deep copy of n. The copy is detached.
func Clone(n *html.Node) *html.Node {
	if n == nil {
		return nil
	}
	dup := &html.Node{
		Type:      n.Type,
		DataAtom:  n.DataAtom,
		Data:      n.Data,
		Namespace: n.Namespace,
	}
	if len(n.Attr) > 0 {
		dup.Attr = make([]html.Attribute, len(n.Attr))
		copy(dup.Attr, n.Attr)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		dup.AppendChild(Clone(c))
	}
	return dup
}

// IsText reports whether n is a text node.
func IsText(n *html.Node) bool {
	return n != nil && n.Type == html.TextNode
}

// voidElements cannot have children; the serializer refuses to render them
// if they do.
//
//nolint:gochecknoglobals // Read-only lookup table
var voidElements = map[atom.Atom]bool{
	atom.Area:   true,
	atom.Base:   true,
	atom.Br:     true,
	atom.Col:    true,
	atom.Embed:  true,
	atom.Hr:     true,
	atom.Img:    true,
	atom.Input:  true,
	atom.Keygen: true,
	atom.Link:   true,
	atom.Meta:   true,
	atom.Param:  true,
	atom.Source: true,
	atom.Track:  true,
	atom.Wbr:    true,
}

// IsVoid reports whether n is an HTML void element such as <br>.
func IsVoid(n *html.Node) bool {
	return IsElement(n) && n.Namespace == "" && voidElements[atom.Lookup([]byte(n.Data))]
}

// IsElement reports whether n is an element node.
func IsElement(n *html.Node) bool {
	return n != nil && n.Type == html.ElementNode
}

// Index returns the position of n among its parent's children, counting
// every node kind. A detached node has index 0.
func Index(n *html.Node) int {
	i := 0
	for s := n.PrevSibling; s != nil; s = s.PrevSibling {
		i++
	}
	return i
}

// ChildCount returns the number of children of n.
func ChildCount(n *html.Node) int {
	count := 0
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		count++
	}
	return count
}

// ChildAt returns the i-th child of n, or nil.
func ChildAt(n *html.Node, i int) *html.Node {
	if i < 0 {
		return nil
	}
	c := n.FirstChild
	for ; c != nil && i > 0; i-- {
		c = c.NextSibling
	}
	return c
}

// Length returns the number of positions inside n: UTF-16 units for
// character data, children for everything else.
func Length(n *html.Node) int {
	switch n.Type {
	case html.TextNode, html.CommentNode:
		return textutil.Len16(n.Data)
	default:
		return ChildCount(n)
	}
}

// ClosestElement returns n if it is an element, otherwise its nearest
// element ancestor.
func ClosestElement(n *html.Node) *html.Node {
	for ; n != nil; n = n.Parent {
		if n.Type == html.ElementNode {
			return n
		}
	}
	return nil
}

// Contains reports whether n is ancestor itself or one of its descendants.
func Contains(ancestor, n *html.Node) bool {
	for ; n != nil; n = n.Parent {
		if n == ancestor {
			return true
		}
	}
	return false
}

// SplitText splits the text node n at a UTF-16 offset. n keeps the leading
// part; the trailing part becomes a new sibling, which is returned.
func SplitText(n *html.Node, off int) (*html.Node, error) {
	if !IsText(n) {
		return nil, fmt.Errorf("split %s: %w", Describe(n), ErrInvalidContainer)
	}
	if !textutil.IsBoundary(n.Data, off) {
		return nil, fmt.Errorf("split at %d of %d: %w", off, textutil.Len16(n.Data), ErrOffsetOutOfRange)
	}
	head, tail := textutil.Split16(n.Data, off)
	n.Data = head
	rest := &html.Node{Type: html.TextNode, Data: tail}
	if n.Parent != nil {
		n.Parent.InsertBefore(rest, n.NextSibling)
	}
	return rest, nil
}

// InsertAt inserts node at the position (container, off). A text container
// is split so that node lands between the two halves; no empty text node is
// left behind at either edge.
func InsertAt(container *html.Node, off int, node *html.Node) error {
	switch container.Type {
	case html.TextNode:
		length := textutil.Len16(container.Data)
		if !textutil.IsBoundary(container.Data, off) {
			return fmt.Errorf("insert at %d of %d: %w", off, length, ErrOffsetOutOfRange)
		}
		parent := container.Parent
		if parent == nil {
			return fmt.Errorf("insert into detached text: %w", ErrInvalidContainer)
		}
		switch off {
		case 0:
			parent.InsertBefore(node, container)
		case length:
			parent.InsertBefore(node, container.NextSibling)
		default:
			rest, err := SplitText(container, off)
			if err != nil {
				return err
			}
			parent.InsertBefore(node, rest)
		}
		return nil
	case html.ElementNode, html.DocumentNode:
		if IsVoid(container) {
			return fmt.Errorf("insert into %s: %w", Describe(container), ErrInvalidContainer)
		}
		count := ChildCount(container)
		if off < 0 || off > count {
			return fmt.Errorf("insert at child %d of %d: %w", off, count, ErrOffsetOutOfRange)
		}
		container.InsertBefore(node, ChildAt(container, off))
		return nil
	default:
		return fmt.Errorf("insert into %s: %w", Describe(container), ErrInvalidContainer)
	}
}

// RemoveChildren detaches every child of n.
func RemoveChildren(n *html.Node) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		n.RemoveChild(c)
		c = next
	}
}

// AdoptChildren replaces the children of n with the children of from,
// leaving from empty.
func AdoptChildren(n, from *html.Node) {
	RemoveChildren(n)
	for c := from.FirstChild; c != nil; {
		next := c.NextSibling
		from.RemoveChild(c)
		n.AppendChild(c)
		c = next
	}
}

// Attr returns the value of the named attribute of n.
func Attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// Describe names a node for logs and error messages.
func Describe(n *html.Node) string {
	if n == nil {
		return "<nil>"
	}
	switch n.Type {
	case html.ElementNode:
		return "<" + n.Data + ">"
	case html.TextNode:
		return "#text"
	case html.CommentNode:
		return "#comment"
	case html.DocumentNode:
		return "#document"
	default:
		return "#node"
	}
}
