package selection_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/yaklabco/gotexty/pkg/dom"
	"github.com/yaklabco/gotexty/pkg/selection"
)

// tree returns a div holding: "ab" <b>"cd"</b> "ef".
func tree(t *testing.T) *html.Node {
	t.Helper()
	el, err := dom.HTML{}.Deserialize("div", "ab<b>cd</b>ef")
	require.NoError(t, err)
	return el
}

func TestCompare(t *testing.T) {
	t.Parallel()

	root := tree(t)
	ab := root.FirstChild
	b := ab.NextSibling
	cd := b.FirstChild
	ef := root.LastChild

	tests := []struct {
		name string
		a, b selection.Point
		want int
	}{
		{"same node offsets", selection.Point{Node: ab, Offset: 0}, selection.Point{Node: ab, Offset: 2}, -1},
		{"equal", selection.Point{Node: cd, Offset: 1}, selection.Point{Node: cd, Offset: 1}, 0},
		{"siblings", selection.Point{Node: ab, Offset: 2}, selection.Point{Node: ef, Offset: 0}, -1},
		{"ancestor before child", selection.Point{Node: root, Offset: 1}, selection.Point{Node: cd, Offset: 0}, -1},
		{"ancestor after child", selection.Point{Node: root, Offset: 2}, selection.Point{Node: cd, Offset: 2}, 1},
		{"descendant vs ancestor", selection.Point{Node: cd, Offset: 0}, selection.Point{Node: root, Offset: 0}, 1},
		{"cousins", selection.Point{Node: cd, Offset: 2}, selection.Point{Node: ab, Offset: 0}, 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := selection.Compare(tc.a, tc.b)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestCompareDisconnected(t *testing.T) {
	t.Parallel()

	_, err := selection.Compare(
		selection.Point{Node: tree(t).FirstChild},
		selection.Point{Node: tree(t).FirstChild},
	)
	require.ErrorIs(t, err, selection.ErrDisconnected)
}

func TestNewRange(t *testing.T) {
	t.Parallel()

	root := tree(t)
	ab := root.FirstChild
	ef := root.LastChild

	r, err := selection.NewRange(selection.Point{Node: ab, Offset: 1}, selection.Point{Node: ef, Offset: 1})
	require.NoError(t, err)
	assert.False(t, r.IsCollapsed())
	assert.Same(t, root, r.CommonAncestor())

	r, err = selection.NewRange(selection.Point{Node: ef, Offset: 1}, selection.Point{Node: ab, Offset: 1})
	require.NoError(t, err)
	assert.True(t, r.IsCollapsed(), "reversed range collapses to its end")
	assert.Same(t, ab, r.Start.Node)

	_, err = selection.NewRange(selection.Point{Node: ab, Offset: 3}, selection.Point{Node: ef, Offset: 0})
	require.ErrorIs(t, err, selection.ErrInvalidPoint)

	_, err = selection.NewRange(selection.Point{}, selection.Point{Node: ef, Offset: 0})
	require.ErrorIs(t, err, selection.ErrInvalidPoint)
}

func TestSelection(t *testing.T) {
	t.Parallel()

	root := tree(t)
	sel := selection.New()

	_, ok := sel.Range()
	assert.False(t, ok)
	assert.Equal(t, 0, sel.RangeCount())
	assert.True(t, sel.IsCollapsed())

	require.NoError(t, sel.Collapse(selection.Point{Node: root.FirstChild, Offset: 1}))
	r, ok := sel.Range()
	require.True(t, ok)
	assert.True(t, r.IsCollapsed())

	require.NoError(t, sel.SetBaseAndExtent(
		selection.Point{Node: root, Offset: 0},
		selection.Point{Node: root, Offset: 3},
	))
	assert.False(t, sel.IsCollapsed())
	assert.Equal(t, 1, sel.RangeCount())

	sel.RemoveAllRanges()
	_, ok = sel.Range()
	assert.False(t, ok)
}

func TestSelectNode(t *testing.T) {
	t.Parallel()

	root := tree(t)
	b := root.FirstChild.NextSibling
	sel := selection.New()

	require.NoError(t, sel.SelectNode(b))
	r, ok := sel.Range()
	require.True(t, ok)
	assert.Equal(t, selection.Point{Node: root, Offset: 1}, r.Start)
	assert.Equal(t, selection.Point{Node: root, Offset: 2}, r.End)

	require.ErrorIs(t, sel.SelectNode(root), selection.ErrNoParent)
}

func TestAddRangeValidates(t *testing.T) {
	t.Parallel()

	root := tree(t)
	sel := selection.New()

	err := sel.AddRange(selection.Range{
		Start: selection.Point{Node: root, Offset: 0},
		End:   selection.Point{Node: root, Offset: 9},
	})
	require.ErrorIs(t, err, selection.ErrInvalidPoint)
	assert.Equal(t, 0, sel.RangeCount())
}
