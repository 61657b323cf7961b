package nodepath_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/yaklabco/gotexty/pkg/dom"
	"github.com/yaklabco/gotexty/pkg/nodepath"
)

func scope(t *testing.T, markup string) *html.Node {
	t.Helper()
	el, err := dom.HTML{}.Deserialize("div", markup)
	require.NoError(t, err)
	return el
}

func TestPathToNodeFromRoundTrip(t *testing.T) {
	t.Parallel()

	root := scope(t, `a<p>b<b>c<i>d</i></b><!--e--></p>f<ul><li>g</li><li>h</li></ul>`)

	visited := 0
	dom.FindFirst(root, func(n *html.Node) bool {
		path, err := nodepath.PathTo(n, root)
		require.NoError(t, err)

		got, err := nodepath.NodeFrom(path, root)
		require.NoError(t, err)
		assert.Same(t, n, got, "path %s", path)
		visited++
		return false
	})
	assert.Greater(t, visited, 10)
}

func TestPathTo(t *testing.T) {
	t.Parallel()

	root := scope(t, `x<p>y<b>z</b></p>`)
	z := root.LastChild.LastChild.FirstChild

	path, err := nodepath.PathTo(z, root)
	require.NoError(t, err)
	assert.Equal(t, nodepath.Path{1, 1, 0}, path)

	path, err = nodepath.PathTo(root, root)
	require.NoError(t, err)
	assert.Empty(t, path)
}

func TestPathToInvalidScope(t *testing.T) {
	t.Parallel()

	root := scope(t, `<p>y</p>`)
	other := scope(t, `<p>z</p>`)

	_, err := nodepath.PathTo(other.FirstChild, root)
	require.ErrorIs(t, err, nodepath.ErrInvalidScope)

	_, err = nodepath.PathTo(root, root.FirstChild)
	require.ErrorIs(t, err, nodepath.ErrInvalidScope, "an ancestor is not inside its descendant")

	_, err = nodepath.PathTo(nil, root)
	require.ErrorIs(t, err, nodepath.ErrInvalidScope)
}

func TestPathToDepthLimit(t *testing.T) {
	t.Parallel()

	root := scope(t, `<b><b><b><b>deep</b></b></b></b>`)
	leaf := dom.FindFirst(root, dom.IsText)
	require.NotNil(t, leaf)

	_, err := nodepath.PathToDepth(leaf, root, 3)
	require.ErrorIs(t, err, nodepath.ErrInvalidScope)

	path, err := nodepath.PathToDepth(leaf, root, 5)
	require.NoError(t, err)
	assert.Len(t, path, 5)
}

func TestNodeFromOutOfRange(t *testing.T) {
	t.Parallel()

	root := scope(t, `<p>y</p>`)

	_, err := nodepath.NodeFrom(nodepath.Path{0, 1}, root)
	require.ErrorIs(t, err, nodepath.ErrPathOutOfRange)

	_, err = nodepath.NodeFrom(nodepath.Path{-1}, root)
	require.ErrorIs(t, err, nodepath.ErrPathOutOfRange)

	_, err = nodepath.NodeFrom(nodepath.Path{0}, nil)
	require.ErrorIs(t, err, nodepath.ErrPathOutOfRange)
}

func TestParseAndString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    nodepath.Path
		wantErr bool
	}{
		{"", nodepath.Path{}, false},
		{"/", nodepath.Path{}, false},
		{"0", nodepath.Path{0}, false},
		{"1/2/3", nodepath.Path{1, 2, 3}, false},
		{"/1/2/", nodepath.Path{1, 2}, false},
		{"1/x", nil, true},
		{"1/-2", nil, true},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			t.Parallel()

			got, err := nodepath.Parse(tc.input)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tc.want.Equal(got), "got %v", got)
		})
	}

	assert.Equal(t, "1/2/3", nodepath.Path{1, 2, 3}.String())
	assert.Empty(t, nodepath.Path{}.String())
}
