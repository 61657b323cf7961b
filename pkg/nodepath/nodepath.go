// Package nodepath encodes a node's position below an ancestor as a
// sequence of child indices, and resolves such sequences back to nodes.
//
// Indices count every child node kind (elements, text, comments) in
// document order, matching how serialized content is scanned.
package nodepath

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/yaklabco/gotexty/pkg/dom"
)

// DefaultMaxDepth bounds how far PathTo walks up before giving up.
const DefaultMaxDepth = 512

var (
	// ErrInvalidScope is returned when a node is not a descendant of the
	// scope it is measured against.
	ErrInvalidScope = errors.New("node is not inside scope")

	// ErrPathOutOfRange is returned when a path does not fit the tree it
	// is resolved against.
	ErrPathOutOfRange = errors.New("path out of range")
)

// Path is a root-to-leaf sequence of child indices. The empty path denotes
// the scope itself.
type Path []int

// PathTo returns the path from scope down to node using DefaultMaxDepth.
func PathTo(node, scope *html.Node) (Path, error) {
	return PathToDepth(node, scope, DefaultMaxDepth)
}

// PathToDepth returns the path from scope down to node. It fails with
// ErrInvalidScope if node is not scope or one of its descendants, or if
// node sits more than maxDepth levels below scope. maxDepth <= 0 means
// DefaultMaxDepth.
func PathToDepth(node, scope *html.Node, maxDepth int) (Path, error) {
	if node == nil || scope == nil {
		return nil, fmt.Errorf("nil node or scope: %w", ErrInvalidScope)
	}
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}

	var rev Path
	for cur := node; cur != scope; cur = cur.Parent {
		if cur.Parent == nil {
			return nil, fmt.Errorf("%s has no ancestor %s: %w",
				dom.Describe(node), dom.Describe(scope), ErrInvalidScope)
		}
		if len(rev) >= maxDepth {
			return nil, fmt.Errorf("deeper than %d levels below %s: %w",
				maxDepth, dom.Describe(scope), ErrInvalidScope)
		}
		rev = append(rev, dom.Index(cur))
	}

	path := make(Path, len(rev))
	for i, idx := range rev {
		path[len(rev)-1-i] = idx
	}
	return path, nil
}

// NodeFrom follows path down from scope.
func NodeFrom(path Path, scope *html.Node) (*html.Node, error) {
	if scope == nil {
		return nil, fmt.Errorf("nil scope: %w", ErrPathOutOfRange)
	}
	node := scope
	for depth, idx := range path {
		child := dom.ChildAt(node, idx)
		if child == nil {
			return nil, fmt.Errorf("index %d at depth %d of %s (%d children): %w",
				idx, depth, path, dom.ChildCount(node), ErrPathOutOfRange)
		}
		node = child
	}
	return node, nil
}

// String formats the path as slash-separated indices, e.g. "0/2/1".
func (p Path) String() string {
	parts := make([]string, len(p))
	for i, idx := range p {
		parts[i] = strconv.Itoa(idx)
	}
	return strings.Join(parts, "/")
}

// Parse parses the String form of a path. Leading and trailing slashes
// are ignored; "" and "/" are the empty path.
func Parse(s string) (Path, error) {
	s = strings.Trim(strings.TrimSpace(s), "/")
	if s == "" {
		return Path{}, nil
	}
	parts := strings.Split(s, "/")
	path := make(Path, 0, len(parts))
	for _, part := range parts {
		idx, err := strconv.Atoi(part)
		if err != nil || idx < 0 {
			return nil, fmt.Errorf("invalid path segment %q in %q", part, s)
		}
		path = append(path, idx)
	}
	return path, nil
}

// Equal reports whether two paths are identical.
func (p Path) Equal(other Path) bool {
	return slices.Equal(p, other)
}
