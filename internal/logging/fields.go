// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Field name constants for structured logging.
const (
	// Common fields.
	FieldError  = "error"
	FieldPath   = "path"
	FieldInput  = "input"
	FieldOutput = "output"
	FieldFormat = "format"

	// Configuration fields.
	FieldConfig    = "config"
	FieldSource    = "source"
	FieldFlavor    = "flavor"
	FieldStrict    = "strict"
	FieldMarkerTag = "marker_tag"
	FieldMaxDepth  = "max_depth"

	// Selection fields.
	FieldScope  = "scope"
	FieldStart  = "start"
	FieldEnd    = "end"
	FieldLength = "length"
	FieldNode   = "node"

	// Capability fields.
	FieldSupported = "supported"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
