package config

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full writes every setting, including capability overrides.
	// If false, generates a minimal template.
	Full bool

	// Format is the output format: "yaml" or "json".
	Format string
}

// GenerateTemplate creates a configuration file template.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString(`

# Element name of the placeholder inserted while resolving positions.
# Must not occur in your content.
marker:
  tag: texty-marker

# Maximum depth of a node below its scope.
limits:
  max_depth: 512

markup:
  # Reject content that does not serialize back to itself.
  strict: false
  # Markdown flavor for .md inputs: commonmark or gfm
  flavor: gfm
`)

	if opts.Full {
		buf.WriteString(`
# Capability overrides. Omit a key to keep the detected value.
# Without selection_start every command reports "unsupported".
capabilities:
  selection_start: true
  window_selection: true
  document_selection: false
  proper_lines: true
`)
	} else {
		buf.WriteString(`
# Capability overrides. Omit a key to keep the detected value.
# capabilities:
#   selection_start: true
#   window_selection: true
#   document_selection: false
#   proper_lines: true
`)
	}

	if opts.Format == "json" {
		return templateToJSON(buf.Bytes())
	}

	return buf.Bytes(), nil
}

// templateToJSON converts a YAML template to JSON format. Comments are
// lost; commented-out keys are omitted.
func templateToJSON(yamlContent []byte) ([]byte, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(yamlContent, &doc); err != nil {
		return nil, fmt.Errorf("parse template: %w", err)
	}

	jsonBytes, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal JSON: %w", err)
	}

	return append(jsonBytes, '\n'), nil
}

// DefaultTemplateHeader returns the default header for generated configs.
func DefaultTemplateHeader() string {
	return `# gotexty configuration
# See: https://github.com/yaklabco/gotexty`
}
