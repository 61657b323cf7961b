package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/gotexty/internal/ui/pretty"
)

// TextReporter formats reports as styled terminal output.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(ctx context.Context, report *Report) (err error) {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("report: %w", err)
	}
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if report == nil {
		fmt.Fprint(r.bw, r.styles.FormatNoSelection())
		return nil
	}

	if report.Capabilities != nil {
		fmt.Fprint(r.bw, r.styles.FormatCapabilities(*report.Capabilities))
		if !report.Selected && report.Source == "" {
			return nil
		}
		fmt.Fprintln(r.bw)
	}

	if report.Source != "" {
		fmt.Fprintf(r.bw, "%s %s\n", r.styles.Label.Render("source"), r.styles.Bold.Render(report.Source))
	}
	if report.Scope != nil {
		fmt.Fprint(r.bw, r.styles.FormatPoint("scope", report.Scope.Path, report.Scope.Offset, report.Scope.Node))
	}

	if !report.Selected {
		fmt.Fprint(r.bw, r.styles.FormatNoSelection())
		return nil
	}

	fmt.Fprint(r.bw, r.styles.FormatRecord(report.Record))

	if r.opts.ShowPoints {
		for _, p := range []struct {
			label string
			point *Point
		}{{"start", report.Start}, {"end", report.End}} {
			if p.point != nil {
				fmt.Fprint(r.bw, r.styles.FormatPoint(p.label, p.point.Path, p.point.Offset, p.point.Node))
			}
		}
	}

	return nil
}
