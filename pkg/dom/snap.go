package dom

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/yaklabco/gotexty/pkg/textutil"
)

// SnapOffset moves a UTF-16 offset into markup back to the nearest content
// boundary. Offsets inside a tag, comment, doctype or character reference
// snap to the start of that token; offsets already at a boundary or inside
// plain text are returned unchanged. Offsets past the end clamp to the end.
func SnapOffset(markup string, off int) int {
	if off <= 0 {
		return 0
	}
	target, ok := textutil.ByteOffset(markup, off)
	if !ok {
		return textutil.Len16(markup)
	}

	tokenizer := html.NewTokenizer(strings.NewReader(markup))
	pos := 0
	for {
		tt := tokenizer.Next()
		if tt == html.ErrorToken || target <= pos {
			return off
		}
		end := pos + len(tokenizer.Raw())
		if target >= end {
			pos = end
			continue
		}

		// pos < target < end: strictly inside this token.
		if tt != html.TextToken {
			return textutil.Offset16(markup, pos)
		}
		if ref := referenceStart(markup[pos:target]); ref >= 0 {
			return textutil.Offset16(markup, pos+ref)
		}
		return off
	}
}

// referenceStart returns the index of an unterminated character reference
// at the end of text, or -1.
func referenceStart(text string) int {
	amp := strings.LastIndexByte(text, '&')
	if amp < 0 {
		return -1
	}
	for i := amp + 1; i < len(text); i++ {
		c := text[i]
		isRefChar := c == '#' || ('0' <= c && c <= '9') || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
		if !isRefChar {
			return -1
		}
	}
	return amp
}
