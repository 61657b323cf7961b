package dom

import (
	"bytes"
	"fmt"

	"github.com/go-enry/go-enry/v2"
)

// Format identifies the source language of a document.
type Format string

// Supported document formats.
const (
	FormatHTML     Format = "html"
	FormatMarkdown Format = "markdown"
)

// ParseFormat parses a format name. The empty string and "auto" return "",
// meaning "detect".
func ParseFormat(s string) (Format, error) {
	switch s {
	case "", "auto":
		return "", nil
	case "html", "htm":
		return FormatHTML, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	default:
		return "", fmt.Errorf("unknown input format %q; valid formats: auto, html, markdown", s)
	}
}

// DetectFormat guesses whether content is HTML or Markdown, using the file
// name first and the content second. Anything unrecognized is HTML.
func DetectFormat(filename string, content []byte) Format {
	if filename != "" {
		if lang, safe := enry.GetLanguageByExtension(filename); safe {
			if f, ok := formatOf(lang); ok {
				return f
			}
		}
	}

	if lang := enry.GetLanguage(filename, content); lang != "" {
		if f, ok := formatOf(lang); ok {
			return f
		}
	}

	trimmed := bytes.TrimSpace(content)
	if len(trimmed) > 0 && trimmed[0] != '<' {
		return FormatMarkdown
	}
	return FormatHTML
}

func formatOf(lang string) (Format, bool) {
	switch lang {
	case "HTML", "XHTML":
		return FormatHTML, true
	case "Markdown":
		return FormatMarkdown, true
	default:
		return "", false
	}
}
