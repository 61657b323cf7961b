package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/net/html"

	"github.com/yaklabco/gotexty/internal/logging"
	"github.com/yaklabco/gotexty/pkg/dom"
	"github.com/yaklabco/gotexty/pkg/fsutil"
	"github.com/yaklabco/gotexty/pkg/nodepath"
	"github.com/yaklabco/gotexty/pkg/reporter"
	"github.com/yaklabco/gotexty/pkg/selection"
	"github.com/yaklabco/gotexty/pkg/texty"
)

// stdinPath names standard input in file arguments.
const stdinPath = "-"

// session is a loaded document with a facade over its live selection.
type session struct {
	rt    *runtime
	path  string
	doc   *dom.Document
	body  *html.Node
	snap  *fsutil.Snapshot
	sel   *selection.Selection
	texty *texty.Texty
}

// openSession reads and parses the document at path ("-" for stdin).
// inputFormat is "", "auto", "html" or "markdown".
func openSession(cmd *cobra.Command, path, inputFormat string) (*session, error) {
	rt, err := runtimeFrom(cmd)
	if err != nil {
		return nil, err
	}

	content, snap, err := readInput(cmd.Context(), cmd.InOrStdin(), path)
	if err != nil {
		return nil, err
	}

	format, err := dom.ParseFormat(inputFormat)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUsage, err)
	}
	if format == "" {
		name := path
		if name == stdinPath {
			name = ""
		}
		format = dom.DetectFormat(name, content)
	}

	doc, err := dom.Load(content, format, string(rt.cfg.Markup.Flavor))
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	body, err := doc.Body()
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}

	env := environment{doc: doc, overrides: rt.cfg.Capabilities}
	caps := texty.Detect(env)
	sel := selection.New()

	ctx, logger := logging.WithFields(cmd.Context(), logging.FieldPath, path)
	cmd.SetContext(ctx)
	logger.Debug("document loaded",
		logging.FieldFormat, format,
		logging.FieldSupported, caps.Supported(),
	)

	return &session{
		rt:    rt,
		path:  path,
		doc:   doc,
		body:  body,
		snap:  snap,
		sel:   sel,
		texty: texty.New(caps, sel, rt.options()),
	}, nil
}

// readInput reads path, or stdin when path is "-". The snapshot is nil
// for stdin.
func readInput(ctx context.Context, stdin io.Reader, path string) ([]byte, *fsutil.Snapshot, error) {
	if path == stdinPath {
		content, err := io.ReadAll(stdin)
		if err != nil {
			return nil, nil, fmt.Errorf("read stdin: %w", err)
		}
		return content, nil, nil
	}
	content, snap, err := fsutil.ReadDocument(ctx, path)
	if err != nil {
		return nil, nil, err
	}
	return content, snap, nil
}

// node resolves a node reference against the document body. A reference
// is either "#id" or a node path such as "0/2/1"; "" and "." are the body.
func (s *session) node(ref string) (*html.Node, error) {
	ref = strings.TrimSpace(ref)
	switch {
	case ref == "" || ref == ".":
		return s.body, nil
	case strings.HasPrefix(ref, "#"):
		n := s.doc.ElementByID(ref[1:])
		if n == nil {
			return nil, fmt.Errorf("%w: no element with id %q", ErrUsage, ref[1:])
		}
		return n, nil
	}

	path, err := nodepath.Parse(ref)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUsage, err)
	}
	n, err := nodepath.NodeFrom(path, s.body)
	if err != nil {
		return nil, fmt.Errorf("node %q: %w", ref, err)
	}
	return n, nil
}

// point parses "REF:OFFSET" into a boundary point. A bare REF means
// offset 0.
func (s *session) point(arg string) (selection.Point, error) {
	ref, offset := arg, 0
	if i := strings.LastIndex(arg, ":"); i >= 0 {
		ref = arg[:i]
		off, err := strconv.Atoi(arg[i+1:])
		if err != nil {
			return selection.Point{}, fmt.Errorf("%w: invalid offset in %q", ErrUsage, arg)
		}
		offset = off
	}

	n, err := s.node(ref)
	if err != nil {
		return selection.Point{}, err
	}
	p := selection.Point{Node: n, Offset: offset}
	if err := p.Validate(); err != nil {
		return selection.Point{}, err
	}
	return p, nil
}

// describe converts a tree position to report form, with the path taken
// from the document body.
func (s *session) describe(n *html.Node, offset int) (*reporter.Point, error) {
	path, err := nodepath.PathToDepth(n, s.body, s.rt.cfg.Limits.MaxDepth)
	if err != nil {
		return nil, fmt.Errorf("describe %s: %w", dom.Describe(n), err)
	}
	return &reporter.Point{Path: path.String(), Offset: offset, Node: dom.Describe(n)}, nil
}

// report builds a report for the current live selection measured against
// scope (nil for the closest element).
func (s *session) report(scope *html.Node) (*reporter.Report, error) {
	rec, ok, err := s.texty.GetStructural(scope)
	if err != nil {
		return nil, err
	}

	report := &reporter.Report{Source: s.path, Selected: ok}
	if !ok {
		return report, nil
	}
	report.Record = rec

	if report.Scope, err = s.describe(rec.Scope, 0); err != nil {
		return nil, err
	}
	r, _ := s.sel.Range()
	if report.Start, err = s.describe(r.Start.Node, r.Start.Offset); err != nil {
		return nil, err
	}
	if report.End, err = s.describe(r.End.Node, r.End.Offset); err != nil {
		return nil, err
	}
	return report, nil
}

// render serializes the whole document in its loaded form.
func (s *session) render() []byte {
	return []byte(s.doc.String())
}
