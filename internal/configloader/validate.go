package configloader

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/net/html/atom"

	"github.com/yaklabco/gotexty/pkg/config"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "marker.tag").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string

	// Line is the line number in the config file (if known).
	Line int
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string

	if e.FilePath != "" {
		if e.Line > 0 {
			parts = append(parts, fmt.Sprintf("%s:%d", e.FilePath, e.Line))
		} else {
			parts = append(parts, e.FilePath)
		}
	}

	if e.Field != "" {
		parts = append(parts, e.Field)
	}

	parts = append(parts, e.Message)

	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues.
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// HasWarnings returns true if there are any warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// AllMessages returns all error and warning messages combined.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

// maxDepthCeiling bounds limits.max_depth.
const maxDepthCeiling = 1 << 16

// tagPattern matches names the HTML tokenizer reads as a single tag name.
//
//nolint:gochecknoglobals // Compiled once.
var tagPattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9._-]*$`)

// knownFormats lists valid output format values.
//
//nolint:gochecknoglobals // Read-only lookup table.
var knownFormats = map[config.OutputFormat]bool{
	config.FormatText: true,
	config.FormatJSON: true,
	config.FormatYAML: true,
}

// Validate checks a configuration for errors and warnings.
func Validate(cfg *config.Config) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	if cfg.Markup.Flavor != "" && !cfg.Markup.Flavor.IsValid() {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "markup.flavor",
			Value:   cfg.Markup.Flavor,
			Message: fmt.Sprintf("invalid flavor %q; must be one of: commonmark, gfm", cfg.Markup.Flavor),
		})
	}

	if cfg.Format != "" && !knownFormats[cfg.Format] {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "format",
			Value:   cfg.Format,
			Message: fmt.Sprintf("invalid format %q; must be one of: text, json, yaml", cfg.Format),
		})
	}

	if cfg.Limits.MaxDepth < 0 || cfg.Limits.MaxDepth > maxDepthCeiling {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "limits.max_depth",
			Value:   cfg.Limits.MaxDepth,
			Message: fmt.Sprintf("max_depth must be between 0 and %d (0 means default)", maxDepthCeiling),
		})
	}

	validateMarkerTag(cfg.Marker.Tag, result)

	if sel := cfg.Capabilities.SelectionStart; sel != nil && !*sel {
		result.Warnings = append(result.Warnings, ValidationError{
			Field:   "capabilities.selection_start",
			Value:   false,
			Message: "selection_start is off; every command will report unsupported",
		})
	}

	return result
}

// validateMarkerTag rejects names the parser may treat specially. A known
// HTML element name may be moved or closed by the parser, which would
// displace the marker.
func validateMarkerTag(tag string, result *ValidationResult) {
	if tag == "" {
		return
	}

	if !tagPattern.MatchString(tag) {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "marker.tag",
			Value:   tag,
			Message: fmt.Sprintf("invalid element name %q", tag),
		})
		return
	}

	if atom.Lookup([]byte(strings.ToLower(tag))) != 0 {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "marker.tag",
			Value:   tag,
			Message: fmt.Sprintf("%q is a known HTML name; use a custom name such as texty-marker", tag),
		})
		return
	}

	if !strings.Contains(tag, "-") {
		result.Warnings = append(result.Warnings, ValidationError{
			Field:   "marker.tag",
			Value:   tag,
			Message: "custom element names should contain a hyphen",
		})
	}
}

// ValidateWithFile validates configuration and includes file path in errors.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)

	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}

	return result
}

// IsValidFormat returns true if the format is valid.
func IsValidFormat(f config.OutputFormat) bool {
	return knownFormats[f]
}
