package marker

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/net/html"

	"github.com/yaklabco/gotexty/pkg/dom"
	"github.com/yaklabco/gotexty/pkg/nodepath"
	"github.com/yaklabco/gotexty/pkg/selection"
	"github.com/yaklabco/gotexty/pkg/textutil"
)

// DefaultTag is the element name used for markers. It is a valid custom
// element name, so HTML parsers treat it as an ordinary inline element.
const DefaultTag = "texty-marker"

// ErrMarkerNotFound is returned when an inserted marker cannot be found
// again, which happens when the parser relocates or drops it (for example
// between table rows).
var ErrMarkerNotFound = errors.New("marker not found")

// Protocol converts between structural positions and flat offsets into a
// scope's serialized content. The zero value is ready to use.
type Protocol struct {
	// Tag is the marker element name. Defaults to DefaultTag.
	Tag string

	// Markup serializes and parses element content. Defaults to dom.HTML.
	Markup dom.Markup

	// IDs generates marker identifiers. Defaults to a package-level source.
	IDs *IDSource

	// MaxDepth bounds path lengths. Defaults to nodepath.DefaultMaxDepth.
	MaxDepth int

	// Logger receives debug output. Nil disables logging.
	Logger *log.Logger
}

// Locate returns the flat UTF-16 offset, within the serialized content of
// scope, of the structural position (container, offset). The live tree is
// not modified: the marker goes into a deep clone that is dropped before
// returning.
func (p *Protocol) Locate(scope, container *html.Node, offset int) (int, error) {
	path, err := nodepath.PathToDepth(container, scope, p.MaxDepth)
	if err != nil {
		return 0, fmt.Errorf("locate: %w", err)
	}

	clone := dom.Clone(scope)
	dupe, err := nodepath.NodeFrom(path, clone)
	if err != nil {
		return 0, fmt.Errorf("locate in clone: %w", err)
	}

	id := p.ids().Next()
	if err := dom.InsertAt(dupe, offset, p.element(id)); err != nil {
		return 0, fmt.Errorf("insert marker at %s:%d: %w", path, offset, err)
	}

	serialized, err := p.markup().Serialize(clone)
	if err != nil {
		return 0, fmt.Errorf("serialize clone: %w", err)
	}

	idx := Find(serialized, id)
	if idx < 0 {
		return 0, fmt.Errorf("marker %s: %w", id, ErrMarkerNotFound)
	}

	flat := textutil.Offset16(serialized, idx)
	p.debug("located structural position",
		"container", dom.Describe(container),
		"path", path.String(),
		"offset", offset,
		"flat", flat,
	)
	return flat, nil
}

// Anchor returns the structural position inside scope that corresponds to
// the flat UTF-16 offset into content, where content is (or is about to
// become) the serialized content of scope. Offsets that fall inside markup
// are first snapped back to the start of that markup.
//
// The position is found in a throwaway tree parsed from content with a
// marker spliced in, then carried over to scope by path.
func (p *Protocol) Anchor(scope *html.Node, content string, offset int) (selection.Point, error) {
	length := textutil.Len16(content)
	if !textutil.IsBoundary(content, offset) {
		return selection.Point{}, fmt.Errorf("offset %d of %d: %w", offset, length, dom.ErrOffsetOutOfRange)
	}

	snapped := dom.SnapOffset(content, offset)
	if snapped != offset {
		p.debug("snapped offset to content boundary", "offset", offset, "snapped", snapped)
	}

	id := p.ids().Next()
	before, after := textutil.Split16(content, snapped)
	built, err := p.markup().Deserialize(scope.Data, before+p.Serialized(id)+after)
	if err != nil {
		return selection.Point{}, fmt.Errorf("build marker tree: %w", err)
	}

	mk := FindNode(built, id)
	if mk == nil {
		return selection.Point{}, fmt.Errorf("marker %s at offset %d: %w", id, snapped, ErrMarkerNotFound)
	}
	if err := p.checkPlacement(built, id, content, snapped); err != nil {
		return selection.Point{}, err
	}

	var (
		anchor *html.Node
		at     int
	)
	if prev := mk.PrevSibling; dom.IsText(prev) {
		anchor, at = prev, textutil.Len16(prev.Data)
	} else {
		anchor, at = mk.Parent, dom.Index(mk)
	}

	path, err := nodepath.PathToDepth(anchor, built, p.MaxDepth)
	if err != nil {
		return selection.Point{}, fmt.Errorf("anchor path: %w", err)
	}

	node, err := nodepath.NodeFrom(path, scope)
	if err != nil {
		return selection.Point{}, fmt.Errorf("anchor in scope: %w", err)
	}
	if node.Type != anchor.Type || at > dom.Length(node) {
		return selection.Point{}, fmt.Errorf("anchor %s:%d does not fit %s: %w",
			path, at, dom.Describe(node), nodepath.ErrPathOutOfRange)
	}

	p.debug("anchored flat offset",
		"flat", offset,
		"path", path.String(),
		"container", dom.Describe(node),
		"offset", at,
	)
	return selection.Point{Node: node, Offset: at}, nil
}

// checkPlacement fails with ErrMarkerNotFound when the parser moved the
// marker away from where it was spliced in, as it does with content that
// is not allowed at that point (foster parenting out of tables). Only
// canonical content can be checked; for anything else offsets into content
// and into its serialization are not comparable.
func (p *Protocol) checkPlacement(built *html.Node, id, content string, snapped int) error {
	serialized, err := p.markup().Serialize(built)
	if err != nil {
		return fmt.Errorf("serialize marker tree: %w", err)
	}
	idx := Find(serialized, id)
	if idx < 0 {
		return fmt.Errorf("marker %s at offset %d: %w", id, snapped, ErrMarkerNotFound)
	}
	rest := serialized[:idx] + strings.TrimPrefix(serialized[idx:], p.Serialized(id))
	if rest != content {
		p.debug("content is not canonical, marker placement unchecked", "offset", snapped)
		return nil
	}
	if got := textutil.Offset16(serialized, idx); got != snapped {
		return fmt.Errorf("marker %s moved from offset %d to %d: %w", id, snapped, got, ErrMarkerNotFound)
	}
	return nil
}

// Serialized returns the markup of a marker with the given id, exactly as
// the HTML serializer writes it.
func (p *Protocol) Serialized(id string) string {
	return "<" + p.tag() + ` id="` + id + `"></` + p.tag() + ">"
}

// Find returns the byte index of the start of the tag that carries id in
// serialized markup, or -1. It matches on the identifier, not the tag
// name, so pre-existing elements with the same name are never matched.
func Find(serialized, id string) int {
	loc := regexp.MustCompile(`<[^<>]*` + regexp.QuoteMeta(id)).FindStringIndex(serialized)
	if loc == nil {
		return -1
	}
	return loc[0]
}

// FindNode returns the element under root whose id attribute is id.
func FindNode(root *html.Node, id string) *html.Node {
	return dom.ElementByID(root, id)
}

func (p *Protocol) element(id string) *html.Node {
	el := dom.NewElement(p.tag())
	el.Attr = []html.Attribute{{Key: "id", Val: id}}
	return el
}

func (p *Protocol) tag() string {
	if p.Tag == "" {
		return DefaultTag
	}
	return strings.ToLower(p.Tag)
}

//nolint:ireturn // dom.Markup is the codec abstraction
func (p *Protocol) markup() dom.Markup {
	if p.Markup == nil {
		return dom.HTML{}
	}
	return p.Markup
}

func (p *Protocol) ids() *IDSource {
	if p.IDs == nil {
		return &defaultIDs
	}
	return p.IDs
}

func (p *Protocol) debug(msg string, keyvals ...any) {
	if p.Logger != nil {
		p.Logger.Debug(msg, keyvals...)
	}
}
