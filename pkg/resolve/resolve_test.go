package resolve_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/yaklabco/gotexty/pkg/dom"
	"github.com/yaklabco/gotexty/pkg/marker"
	"github.com/yaklabco/gotexty/pkg/nodepath"
	"github.com/yaklabco/gotexty/pkg/resolve"
	"github.com/yaklabco/gotexty/pkg/selection"
)

type record struct {
	start, end int
	markup     string
}

func (r record) StartOffset() int { return r.start }
func (r record) EndOffset() int   { return r.end }
func (r record) Markup() string   { return r.markup }

func scopeOf(t *testing.T, markup string) *html.Node {
	t.Helper()
	el, err := dom.HTML{}.Deserialize("div", markup)
	require.NoError(t, err)
	return el
}

func TestEndpointString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "start", resolve.Start.String())
	assert.Equal(t, "end", resolve.End.String())
}

func TestOffsets(t *testing.T) {
	t.Parallel()

	scope := scopeOf(t, "<b>hi</b> there")
	hi := scope.FirstChild.FirstChild
	there := scope.LastChild

	r, err := selection.NewRange(
		selection.Point{Node: hi, Offset: 2},
		selection.Point{Node: there, Offset: 5},
	)
	require.NoError(t, err)

	res := &resolve.Resolver{}
	start, end, err := res.Offsets(r, scope)
	require.NoError(t, err)
	assert.Equal(t, 5, start)
	assert.Equal(t, 14, end)
}

func TestOffsetInvalidScope(t *testing.T) {
	t.Parallel()

	scope := scopeOf(t, "<b>hi</b>")
	other := scopeOf(t, "x")
	r, err := selection.Collapsed(selection.Point{Node: other.FirstChild, Offset: 1})
	require.NoError(t, err)

	_, err = (&resolve.Resolver{}).Offset(r, scope, resolve.End)
	require.ErrorIs(t, err, nodepath.ErrInvalidScope)
	assert.Contains(t, err.Error(), "end")
}

func TestPosition(t *testing.T) {
	t.Parallel()

	const content = "<b>hi</b> there"
	scope := scopeOf(t, content)
	res := resolve.New(marker.Protocol{Tag: "x-probe"})

	start, err := res.Position(record{start: 5, end: 12, markup: content}, scope, resolve.Start)
	require.NoError(t, err)
	assert.Same(t, scope.FirstChild.FirstChild, start.Node)
	assert.Equal(t, 2, start.Offset)

	end, err := res.Position(record{start: 5, end: 12, markup: content}, scope, resolve.End)
	require.NoError(t, err)
	assert.Same(t, scope.LastChild, end.Node)
	assert.Equal(t, 3, end.Offset)
}

func TestRangeRoundTrip(t *testing.T) {
	t.Parallel()

	const content = "<p>alpha <em>beta</em></p><ul><li>one</li><li>two</li></ul>"
	scope := scopeOf(t, content)
	res := &resolve.Resolver{}

	for _, pair := range [][2]int{{0, 0}, {3, 9}, {13, 17}, {26, 59}, {34, 37}} {
		r, err := res.Range(record{start: pair[0], end: pair[1], markup: content}, scope)
		require.NoError(t, err, "%v", pair)

		start, end, err := res.Offsets(r, scope)
		require.NoError(t, err, "%v", pair)
		assert.Equal(t, pair[0], start, "%v", pair)
		assert.Equal(t, pair[1], end, "%v", pair)
	}
}

func TestRangeShapeMismatch(t *testing.T) {
	t.Parallel()

	scope := scopeOf(t, "plain")
	_, err := (&resolve.Resolver{}).Range(record{start: 3, end: 4, markup: "<b>x</b>"}, scope)
	require.ErrorIs(t, err, nodepath.ErrPathOutOfRange)
}
