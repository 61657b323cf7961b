package dom

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// Markdown flavors accepted by RenderMarkdown.
const (
	FlavorCommonMark = "commonmark"
	FlavorGFM        = "gfm"
)

// RenderMarkdown converts Markdown source to HTML. Unknown flavors render
// as CommonMark.
func RenderMarkdown(src []byte, flavor string) ([]byte, error) {
	var buf bytes.Buffer
	if err := newMarkdown(flavor).Convert(src, &buf); err != nil {
		return nil, fmt.Errorf("render markdown: %w", err)
	}
	return buf.Bytes(), nil
}

//nolint:ireturn // goldmark.Markdown is an external interface type
func newMarkdown(flavor string) goldmark.Markdown {
	opts := []goldmark.Option{
		// Keep inline and block HTML from the source.
		goldmark.WithRendererOptions(html.WithUnsafe()),
	}
	if flavor == FlavorGFM {
		opts = append(opts, goldmark.WithExtensions(extension.GFM))
	}
	return goldmark.New(opts...)
}
