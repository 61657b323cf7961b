package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
)

// JSONReporter formats reports as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(ctx context.Context, report *Report) (err error) {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("report: %w", err)
	}
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	encoder := json.NewEncoder(r.bw)
	// Markup is the payload; keep "<" and ">" readable.
	encoder.SetEscapeHTML(false)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(buildOutput(report)); err != nil {
		return fmt.Errorf("encode JSON: %w", err)
	}
	return nil
}
