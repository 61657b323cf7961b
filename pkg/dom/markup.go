// Package dom provides the HTML tree primitives the selection engine works
// on: inner-HTML serialization and parsing, deep cloning, child indexing
// and text splitting over golang.org/x/net/html nodes.
package dom

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ErrNotCanonical is returned by the strict codec when markup does not
// survive a parse/serialize round trip unchanged.
var ErrNotCanonical = errors.New("markup is not canonical")

// Compile-time interface checks.
var (
	_ Markup = HTML{}
	_ Markup = Strict{}
)

// Markup converts between an element's children and their serialized form.
type Markup interface {
	// Serialize returns the inner HTML of n.
	Serialize(n *html.Node) (string, error)

	// Deserialize builds a detached element named tag whose children are
	// parsed from markup.
	Deserialize(tag, markup string) (*html.Node, error)
}

// HTML is the permissive codec. Malformed markup is repaired the way an
// HTML5 parser would repair it.
type HTML struct{}

// Serialize implements Markup.
func (HTML) Serialize(n *html.Node) (string, error) {
	return InnerHTML(n)
}

// Deserialize implements Markup.
func (HTML) Deserialize(tag, markup string) (*html.Node, error) {
	el := NewElement(tag)
	children, err := ParseChildren(el, markup)
	if err != nil {
		return nil, err
	}
	for _, c := range children {
		el.AppendChild(c)
	}
	return el, nil
}

// Strict rejects markup that the permissive parser would have to repair.
type Strict struct{}

// Serialize implements Markup.
func (Strict) Serialize(n *html.Node) (string, error) {
	return InnerHTML(n)
}

// Deserialize implements Markup.
func (Strict) Deserialize(tag, markup string) (*html.Node, error) {
	el, err := HTML{}.Deserialize(tag, markup)
	if err != nil {
		return nil, err
	}
	again, err := InnerHTML(el)
	if err != nil {
		return nil, err
	}
	if again != markup {
		return nil, fmt.Errorf("%w: re-serialized as %q", ErrNotCanonical, truncate(again, 80))
	}
	return el, nil
}

// InnerHTML serializes the children of n.
func InnerHTML(n *html.Node) (string, error) {
	var sb strings.Builder
	raw := isRawTextElement(n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if raw && c.Type == html.TextNode {
			sb.WriteString(c.Data)
			continue
		}
		if err := html.Render(&sb, c); err != nil {
			return "", fmt.Errorf("render %s: %w", Describe(c), err)
		}
	}
	return sb.String(), nil
}

// ParseChildren parses markup as the content of an element shaped like
// context. The returned nodes are detached.
func ParseChildren(context *html.Node, markup string) ([]*html.Node, error) {
	ctx := &html.Node{
		Type:      html.ElementNode,
		Data:      context.Data,
		DataAtom:  context.DataAtom,
		Namespace: context.Namespace,
	}
	nodes, err := html.ParseFragment(strings.NewReader(markup), ctx)
	if err != nil {
		return nil, fmt.Errorf("parse fragment in <%s>: %w", context.Data, err)
	}
	return nodes, nil
}

// SetInnerHTML replaces every child of n with the parse of markup.
// Nodes previously under n are detached and must not be reused as
// positions inside n.
func SetInnerHTML(n *html.Node, markup string) error {
	children, err := ParseChildren(n, markup)
	if err != nil {
		return err
	}
	RemoveChildren(n)
	for _, c := range children {
		n.AppendChild(c)
	}
	return nil
}

// NewElement returns a detached element node named tag.
func NewElement(tag string) *html.Node {
	tag = strings.ToLower(tag)
	return &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	}
}

// isRawTextElement reports whether the children of n serialize unescaped.
func isRawTextElement(n *html.Node) bool {
	if n == nil || n.Type != html.ElementNode {
		return false
	}
	switch n.Data {
	case "iframe", "noembed", "noframes", "noscript", "plaintext", "script", "style", "xmp":
		return true
	default:
		return false
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
