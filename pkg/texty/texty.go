// Package texty reads and writes selection state on plain-text fields and
// on rich HTML regions through one flat record shape.
//
// Field selections are plain offsets into the field's buffer. Region
// selections are offsets into the serialized content of a scope element;
// converting them to and from live tree positions is done by package
// resolve.
package texty

import (
	"fmt"

	"github.com/charmbracelet/log"
	"golang.org/x/net/html"

	"github.com/yaklabco/gotexty/pkg/dom"
	"github.com/yaklabco/gotexty/pkg/marker"
	"github.com/yaklabco/gotexty/pkg/resolve"
	"github.com/yaklabco/gotexty/pkg/selection"
	"github.com/yaklabco/gotexty/pkg/textutil"
)

// Field is a plain-text input with a cursor measured in UTF-16 units.
type Field interface {
	Value() string
	SetValue(value string)
	SelectionStart() int
	SelectionEnd() int
	SetSelectionRange(start, end int)
}

// SelectionService is the live selection of a document.
type SelectionService interface {
	Range() (selection.Range, bool)
	RemoveAllRanges()
	AddRange(r selection.Range) error
	SelectNode(n *html.Node) error
}

// Compile-time interface check.
var _ SelectionService = (*selection.Selection)(nil)

// Options configures a Texty. The zero value uses the defaults of the
// marker protocol and the permissive HTML codec.
type Options struct {
	// MarkerTag overrides the marker element name.
	MarkerTag string

	// MaxDepth bounds node paths. Zero means nodepath.DefaultMaxDepth.
	MaxDepth int

	// Markup serializes and parses region content. Defaults to dom.HTML.
	Markup dom.Markup

	// Logger receives debug output. Nil disables logging.
	Logger *log.Logger
}

// Texty is the selection facade.
type Texty struct {
	caps     Capabilities
	sel      SelectionService
	markup   dom.Markup
	resolver *resolve.Resolver
	logger   *log.Logger
}

// New returns a facade over sel for an environment with caps. sel may be
// nil when only field operations are needed.
func New(caps Capabilities, sel SelectionService, opts Options) *Texty {
	markup := opts.Markup
	if markup == nil {
		markup = dom.HTML{}
	}
	t := &Texty{
		caps:   caps,
		sel:    sel,
		markup: markup,
		resolver: resolve.New(marker.Protocol{
			Tag:      opts.MarkerTag,
			Markup:   markup,
			MaxDepth: opts.MaxDepth,
			Logger:   opts.Logger,
		}),
		logger: opts.Logger,
	}
	t.debug("texty initialized",
		"supported", caps.Supported(),
		"window_selection", caps.HasWindowSelection,
		"proper_lines", caps.HasProperLines,
	)
	return t
}

// Capabilities returns the capabilities the facade was built with.
func (t *Texty) Capabilities() Capabilities {
	return t.caps
}

// GetFlat reads the buffer and cursor of f. Without proper line support
// "\r\n" pairs are folded to "\n" and the cursor is remapped to match.
func (t *Texty) GetFlat(f Field) (Selection, error) {
	if err := t.supported("get field selection"); err != nil {
		return Selection{}, err
	}

	value := f.Value()
	start, end := f.SelectionStart(), f.SelectionEnd()
	if !t.caps.HasProperLines {
		var offsets []int
		value, offsets = textutil.NormalizeNewlines(value, start, end)
		start, end = offsets[0], offsets[1]
	}

	rec, err := NewSelection(value, start, end)
	if err != nil {
		return Selection{}, fmt.Errorf("get field selection: %w", err)
	}
	return rec, nil
}

// SetFlat replaces the buffer of f with rec.ContentAll and selects
// rec.Start to rec.End.
func (t *Texty) SetFlat(f Field, rec Selection) error {
	if err := t.supported("set field selection"); err != nil {
		return err
	}
	checked, err := rec.Normalize()
	if err != nil {
		return fmt.Errorf("set field selection: %w", err)
	}
	f.SetValue(checked.ContentAll)
	f.SetSelectionRange(checked.Start, checked.End)
	return nil
}

// GetStructural describes the live selection as offsets into the
// serialized content of scope. A nil scope means the closest element
// around the selection. ok is false when nothing is selected.
func (t *Texty) GetStructural(scope *html.Node) (rec Selection, ok bool, err error) {
	if err := t.structural("get selection"); err != nil {
		return Selection{}, false, err
	}

	r, ok := t.sel.Range()
	if !ok {
		t.debug("no live selection")
		return Selection{}, false, nil
	}

	if scope == nil {
		scope = dom.ClosestElement(r.CommonAncestor())
		if scope == nil {
			return Selection{}, false, fmt.Errorf("get selection: no element around range: %w", ErrDetachedNode)
		}
	} else if !dom.IsElement(scope) {
		return Selection{}, false, fmt.Errorf("get selection in %s: %w", dom.Describe(scope), ErrInvalidScope)
	}

	all, err := t.markup.Serialize(scope)
	if err != nil {
		return Selection{}, false, fmt.Errorf("serialize %s: %w", dom.Describe(scope), err)
	}

	start, end, err := t.resolver.Offsets(r, scope)
	if err != nil {
		return Selection{}, false, fmt.Errorf("get selection: %w", err)
	}

	rec, err = NewSelection(all, start, end)
	if err != nil {
		return Selection{}, false, fmt.Errorf("get selection: %w", err)
	}
	rec.Scope = scope
	return rec, true, nil
}

// SetStructural replaces the content of scope with rec.ContentAll and
// selects rec.Start to rec.End inside the new content. Every node that
// was previously under scope is detached; positions and references into
// the old content are no longer valid. If the offsets cannot be resolved
// in the new content the selection is left empty.
func (t *Texty) SetStructural(scope *html.Node, rec Selection) error {
	if err := t.structural("set selection"); err != nil {
		return err
	}
	if !dom.IsElement(scope) {
		return fmt.Errorf("set selection in %s: %w", dom.Describe(scope), ErrInvalidScope)
	}

	checked, err := rec.Normalize()
	if err != nil {
		return fmt.Errorf("set selection: %w", err)
	}

	built, err := t.markup.Deserialize(scope.Data, checked.ContentAll)
	if err != nil {
		return fmt.Errorf("set content of %s: %w", dom.Describe(scope), err)
	}
	dom.AdoptChildren(scope, built)

	t.sel.RemoveAllRanges()
	r, err := t.resolver.Range(checked, scope)
	if err != nil {
		return fmt.Errorf("set selection: %w", err)
	}
	if err := t.sel.AddRange(r); err != nil {
		return fmt.Errorf("set selection: %w", err)
	}
	t.debug("selection installed",
		"scope", dom.Describe(scope),
		"start", checked.Start,
		"end", checked.End,
	)
	return nil
}

// SelectWholeElement selects el itself, from just before it to just after
// it in its parent.
func (t *Texty) SelectWholeElement(el *html.Node) error {
	if err := t.structural("select element"); err != nil {
		return err
	}
	if el == nil || el.Parent == nil {
		return fmt.Errorf("select %s: %w", dom.Describe(el), ErrDetachedNode)
	}

	t.sel.RemoveAllRanges()
	if err := t.sel.SelectNode(el); err != nil {
		return fmt.Errorf("select %s: %w", dom.Describe(el), err)
	}
	return nil
}

func (t *Texty) supported(op string) error {
	if !t.caps.Supported() {
		return fmt.Errorf("%s: %w", op, ErrUnsupported)
	}
	return nil
}

func (t *Texty) structural(op string) error {
	if err := t.supported(op); err != nil {
		return err
	}
	if !t.caps.HasWindowSelection || t.sel == nil {
		return fmt.Errorf("%s: no selection service: %w", op, ErrUnsupported)
	}
	return nil
}

func (t *Texty) debug(msg string, keyvals ...any) {
	if t.logger != nil {
		t.logger.Debug(msg, keyvals...)
	}
}
