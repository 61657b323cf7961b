package reporter

import (
	"bufio"
	"context"
	"fmt"

	"gopkg.in/yaml.v3"
)

// yamlIndent matches the indentation of generated configuration files.
const yamlIndent = 2

// YAMLReporter formats reports as YAML.
type YAMLReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewYAMLReporter creates a new YAML reporter.
func NewYAMLReporter(opts Options) *YAMLReporter {
	return &YAMLReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *YAMLReporter) Report(ctx context.Context, report *Report) (err error) {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("report: %w", err)
	}
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	encoder := yaml.NewEncoder(r.bw)
	encoder.SetIndent(yamlIndent)
	if err := encoder.Encode(buildOutput(report)); err != nil {
		return fmt.Errorf("encode YAML: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return fmt.Errorf("encode YAML: %w", err)
	}
	return nil
}
