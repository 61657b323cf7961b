package cli

import (
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/yaklabco/gotexty/pkg/config"
	"github.com/yaklabco/gotexty/pkg/dom"
	"github.com/yaklabco/gotexty/pkg/texty"
)

// compatibleMode matches the IE=N token of an X-UA-Compatible value.
var compatibleMode = regexp.MustCompile(`(?i)\bIE=(\d+)`)

// legacyModeCeiling is the first document mode with standard newline
// reporting in form fields.
const legacyModeCeiling = 9

// environment is the host a command runs in: a parsed document, which may
// request a legacy compatibility mode, under configured overrides.
type environment struct {
	doc       *dom.Document
	overrides config.CapabilitiesConfig
}

// Compile-time interface check.
var _ texty.Environment = environment{}

func (e environment) FieldSelectionStart() bool {
	return valueOr(e.overrides.SelectionStart, true)
}

func (e environment) WindowSelection() bool {
	return valueOr(e.overrides.WindowSelection, true)
}

func (e environment) DocumentSelection() bool {
	return valueOr(e.overrides.DocumentSelection, false)
}

// DocumentMode returns the legacy mode a document asks for through an
// X-UA-Compatible meta element, or 0. An explicit proper_lines override
// wins over the document.
func (e environment) DocumentMode() int {
	if p := e.overrides.ProperLines; p != nil {
		if *p {
			return 0
		}
		return legacyModeCeiling - 1
	}
	if e.doc == nil {
		return 0
	}

	meta := dom.FindFirst(e.doc.Root, func(n *html.Node) bool {
		if n.Type != html.ElementNode || n.DataAtom != atom.Meta {
			return false
		}
		equiv, _ := dom.Attr(n, "http-equiv")
		return strings.EqualFold(equiv, "X-UA-Compatible")
	})
	if meta == nil {
		return 0
	}
	content, _ := dom.Attr(meta, "content")
	m := compatibleMode.FindStringSubmatch(content)
	if m == nil {
		return 0
	}
	mode, err := strconv.Atoi(m[1])
	if err != nil || mode >= legacyModeCeiling {
		return 0
	}
	return mode
}

func valueOr(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}
