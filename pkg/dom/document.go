package dom

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ErrNoBody is returned when a parsed document has no body element.
var ErrNoBody = errors.New("document has no body")

// Document is a parsed HTML document.
type Document struct {
	// Root is the document node.
	Root *html.Node

	// Format records what the document was loaded from.
	Format Format
}

// LoadHTML parses a complete HTML document.
func LoadHTML(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return &Document{Root: root, Format: FormatHTML}, nil
}

// Load parses content according to format. Markdown is rendered to HTML
// first.
func Load(content []byte, format Format, flavor string) (*Document, error) {
	switch format {
	case FormatMarkdown:
		rendered, err := RenderMarkdown(content, flavor)
		if err != nil {
			return nil, err
		}
		doc, err := LoadHTML(bytes.NewReader(rendered))
		if err != nil {
			return nil, err
		}
		doc.Format = FormatMarkdown
		return doc, nil
	case FormatHTML, "":
		return LoadHTML(bytes.NewReader(content))
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}
}

// Body returns the body element.
func (d *Document) Body() (*html.Node, error) {
	body := FindFirst(d.Root, func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.DataAtom == atom.Body
	})
	if body == nil {
		return nil, ErrNoBody
	}
	return body, nil
}

// ElementByID returns the first element whose id attribute equals id.
func (d *Document) ElementByID(id string) *html.Node {
	return ElementByID(d.Root, id)
}

// Render serializes the whole document.
func (d *Document) Render(w io.Writer) error {
	if err := html.Render(w, d.Root); err != nil {
		return fmt.Errorf("render document: %w", err)
	}
	return nil
}

// String returns the serialized document.
func (d *Document) String() string {
	var sb strings.Builder
	if err := d.Render(&sb); err != nil {
		return ""
	}
	return sb.String()
}

// FindFirst returns the first node under root, in document order and
// including root, for which match returns true. The walk uses an explicit
// stack so deep trees cannot exhaust the goroutine stack.
func FindFirst(root *html.Node, match func(n *html.Node) bool) *html.Node {
	if root == nil {
		return nil
	}
	stack := []*html.Node{root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if match(n) {
			return n
		}
		for c := n.LastChild; c != nil; c = c.PrevSibling {
			stack = append(stack, c)
		}
	}
	return nil
}

// ElementByID returns the first element under root whose id is id.
func ElementByID(root *html.Node, id string) *html.Node {
	return FindFirst(root, func(n *html.Node) bool {
		if n.Type != html.ElementNode {
			return false
		}
		v, ok := Attr(n, "id")
		return ok && v == id
	})
}
