package pretty_test

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gotexty/internal/ui/pretty"
)

func TestNewStyles_ColorDisabled(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	require.NotNil(t, styles)

	text := "test"
	assert.Equal(t, text, styles.Bold.Render(text), "No-color Bold should not add formatting")
	assert.Equal(t, text, styles.Selected.Render(text), "No-color Selected should not add formatting")
	assert.Equal(t, text, styles.Error.Render(text), "No-color Error should not add formatting")
}

func TestIsColorEnabled(t *testing.T) {
	t.Setenv("NO_COLOR", "")

	var buf bytes.Buffer
	tests := []struct {
		mode string
		want bool
	}{
		{"always", true},
		{"never", false},
		{"auto", false},
		{"", false},
		{"unknown", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, pretty.IsColorEnabled(tt.mode, &buf), "mode %q", tt.mode)
	}
}

func TestIsColorEnabled_NoColorEnv(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	assert.False(t, pretty.IsColorEnabled("auto", os.Stdout))
	assert.True(t, pretty.IsColorEnabled("always", os.Stdout), "always overrides NO_COLOR")
}

func TestStyles_AllFieldsRender(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(true)
	for name, style := range map[string]interface{ Render(...string) string }{
		"Error":    styles.Error,
		"Warning":  styles.Warning,
		"Success":  styles.Success,
		"Failure":  styles.Failure,
		"Label":    styles.Label,
		"Offset":   styles.Offset,
		"Path":     styles.Path,
		"Node":     styles.Node,
		"Selected": styles.Selected,
		"Context":  styles.Context,
		"Caret":    styles.Caret,
		"Enabled":  styles.Enabled,
		"Disabled": styles.Disabled,
		"Dim":      styles.Dim,
		"Bold":     styles.Bold,
	} {
		assert.Contains(t, style.Render("x"), "x", name)
	}
}
