package reporter

import (
	"github.com/yaklabco/gotexty/pkg/texty"
)

// SchemaVersion is the version of the JSON and YAML output shape.
const SchemaVersion = "1"

// Report is the result of one selection command, ready to render.
type Report struct {
	// Source names the document or field the selection was read from.
	Source string

	// Scope is the region the offsets are measured against. Nil for field
	// selections.
	Scope *Point

	// Selected is false when there is no selection to report.
	Selected bool

	// Record is the flat selection. Ignored unless Selected.
	Record texty.Selection

	// Start and End are the structural endpoints, when known.
	Start *Point
	End   *Point

	// Capabilities, when set, are reported alongside or instead of a
	// selection.
	Capabilities *texty.Capabilities
}

// Point is a structural position in report form.
type Point struct {
	// Path is the node path from the document body, "" for the body itself.
	Path string `json:"path"   yaml:"path"`
	// Offset is a UTF-16 offset for text nodes or a child index otherwise.
	Offset int `json:"offset" yaml:"offset"`
	// Node describes the container, e.g. "#text" or "<p>".
	Node string `json:"node"   yaml:"node"`
}

// Output is the serialized form of a Report shared by the JSON and YAML
// reporters.
type Output struct {
	Version      string              `json:"version"                yaml:"version"`
	Source       string              `json:"source,omitempty"       yaml:"source,omitempty"`
	Scope        *Point              `json:"scope,omitempty"        yaml:"scope,omitempty"`
	Selected     bool                `json:"selected"               yaml:"selected"`
	Selection    *RecordOutput       `json:"selection,omitempty"    yaml:"selection,omitempty"`
	Range        *RangeOutput        `json:"range,omitempty"        yaml:"range,omitempty"`
	Capabilities *texty.Capabilities `json:"capabilities,omitempty" yaml:"capabilities,omitempty"`
}

// RecordOutput is a flat selection with its derived length.
type RecordOutput struct {
	Start         int    `json:"start"          yaml:"start"`
	End           int    `json:"end"            yaml:"end"`
	Length        int    `json:"length"         yaml:"length"`
	Collapsed     bool   `json:"collapsed"      yaml:"collapsed"`
	Content       string `json:"content"        yaml:"content"`
	ContentBefore string `json:"content_before" yaml:"content_before"`
	ContentAfter  string `json:"content_after"  yaml:"content_after"`
	ContentAll    string `json:"content_all"    yaml:"content_all"`
}

// RangeOutput holds both structural endpoints.
type RangeOutput struct {
	Start Point `json:"start" yaml:"start"`
	End   Point `json:"end"   yaml:"end"`
}

// buildOutput converts report to its serialized form.
func buildOutput(report *Report) *Output {
	output := &Output{Version: SchemaVersion}
	if report == nil {
		return output
	}

	output.Source = report.Source
	output.Scope = report.Scope
	output.Capabilities = report.Capabilities
	output.Selected = report.Selected

	if report.Selected {
		rec := report.Record
		output.Selection = &RecordOutput{
			Start:         rec.Start,
			End:           rec.End,
			Length:        rec.Length(),
			Collapsed:     rec.IsCollapsed(),
			Content:       rec.Content,
			ContentBefore: rec.ContentBefore,
			ContentAfter:  rec.ContentAfter,
			ContentAll:    rec.ContentAll,
		}
		if report.Start != nil && report.End != nil {
			output.Range = &RangeOutput{Start: *report.Start, End: *report.End}
		}
	}

	return output
}
