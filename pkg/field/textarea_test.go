package field_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/gotexty/pkg/field"
)

func TestZeroValue(t *testing.T) {
	t.Parallel()

	var f field.TextArea
	assert.Empty(t, f.Value())
	assert.Equal(t, 0, f.SelectionStart())
	assert.Equal(t, 0, f.SelectionEnd())
}

func TestSetValueMovesCursorToEnd(t *testing.T) {
	t.Parallel()

	f := field.NewTextArea("a😀b")
	assert.Equal(t, 4, f.SelectionStart())
	assert.Equal(t, 4, f.SelectionEnd())

	f.SetSelectionRange(0, 1)
	f.SetValue("xy")
	assert.Equal(t, 2, f.SelectionStart())
	assert.Equal(t, 2, f.SelectionEnd())
}

func TestSetSelectionRange(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		start     int
		end       int
		wantStart int
		wantEnd   int
		wantText  string
	}{
		{"inside", 0, 5, 0, 5, "hello"},
		{"collapsed", 3, 3, 3, 3, ""},
		{"end clamps", 6, 99, 6, 11, "world"},
		{"negative clamps", -4, 2, 0, 2, "he"},
		{"reversed collapses to end", 8, 2, 2, 2, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			f := field.NewTextArea("hello world")
			f.SetSelectionRange(tc.start, tc.end)
			assert.Equal(t, tc.wantStart, f.SelectionStart())
			assert.Equal(t, tc.wantEnd, f.SelectionEnd())
			assert.Equal(t, tc.wantText, f.Selected())
		})
	}
}
