// Package resolve converts selection endpoints between the two coordinate
// systems of a rich region: structural points inside the live tree, and
// flat UTF-16 offsets into the region's serialized content.
package resolve

import (
	"fmt"

	"golang.org/x/net/html"

	"github.com/yaklabco/gotexty/pkg/marker"
	"github.com/yaklabco/gotexty/pkg/selection"
)

// Endpoint picks one end of a range or record.
type Endpoint int

const (
	// Start is the first boundary point.
	Start Endpoint = iota
	// End is the second boundary point.
	End
)

// String returns "start" or "end".
func (e Endpoint) String() string {
	if e == End {
		return "end"
	}
	return "start"
}

// Record is a flat selection over serialized content.
type Record interface {
	StartOffset() int
	EndOffset() int
	Markup() string
}

// Resolver runs both conversions through a marker protocol. The zero value
// uses the protocol defaults.
type Resolver struct {
	Protocol marker.Protocol
}

// New returns a resolver using p.
func New(p marker.Protocol) *Resolver {
	return &Resolver{Protocol: p}
}

// Offset returns the flat offset, within the serialized content of scope,
// of the chosen endpoint of r.
func (res *Resolver) Offset(r selection.Range, scope *html.Node, endpoint Endpoint) (int, error) {
	pt := point(r, endpoint)
	off, err := res.Protocol.Locate(scope, pt.Node, pt.Offset)
	if err != nil {
		return 0, fmt.Errorf("resolve %s offset: %w", endpoint, err)
	}
	return off, nil
}

// Offsets returns the flat start and end offsets of r within scope.
func (res *Resolver) Offsets(r selection.Range, scope *html.Node) (int, int, error) {
	start, err := res.Offset(r, scope, Start)
	if err != nil {
		return 0, 0, err
	}
	end, err := res.Offset(r, scope, End)
	if err != nil {
		return 0, 0, err
	}
	return start, end, nil
}

// Position returns the structural point inside scope that the chosen
// endpoint of rec denotes. Scope must currently hold rec.Markup() as its
// content.
func (res *Resolver) Position(rec Record, scope *html.Node, endpoint Endpoint) (selection.Point, error) {
	off := rec.StartOffset()
	if endpoint == End {
		off = rec.EndOffset()
	}
	pt, err := res.Protocol.Anchor(scope, rec.Markup(), off)
	if err != nil {
		return selection.Point{}, fmt.Errorf("resolve %s position: %w", endpoint, err)
	}
	return pt, nil
}

// Range resolves both endpoints of rec into a range inside scope.
func (res *Resolver) Range(rec Record, scope *html.Node) (selection.Range, error) {
	start, err := res.Position(rec, scope, Start)
	if err != nil {
		return selection.Range{}, err
	}
	end, err := res.Position(rec, scope, End)
	if err != nil {
		return selection.Range{}, err
	}
	r, err := selection.NewRange(start, end)
	if err != nil {
		return selection.Range{}, fmt.Errorf("resolve range: %w", err)
	}
	return r, nil
}

func point(r selection.Range, endpoint Endpoint) selection.Point {
	if endpoint == End {
		return r.End
	}
	return r.Start
}
