package configloader

import (
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/yaklabco/gotexty/pkg/config"
)

// envVarPrefix is the prefix for all gotexty environment variables.
const envVarPrefix = "GOTEXTY_"

// envFieldType represents the type of a configuration field.
type envFieldType int

const (
	envTypeString envFieldType = iota
	envTypeBool
	envTypeInt
)

// envMapping defines an environment variable to config field mapping.
type envMapping struct {
	field       string
	typ         envFieldType
	description string
}

// envMappings maps environment variable names (without prefix) to config fields.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envMapping{
	"FORMAT":             {"format", envTypeString, "Output format: text, json, or yaml"},
	"MARKER_TAG":         {"marker.tag", envTypeString, "Element name of the resolution marker"},
	"MAX_DEPTH":          {"limits.max_depth", envTypeInt, "Maximum node depth below a scope"},
	"STRICT":             {"markup.strict", envTypeBool, "Reject non-canonical content: true or false"},
	"FLAVOR":             {"markup.flavor", envTypeString, "Markdown flavor: commonmark or gfm"},
	"SELECTION_START":    {"capabilities.selection_start", envTypeBool, "Override field cursor support"},
	"WINDOW_SELECTION":   {"capabilities.window_selection", envTypeBool, "Override live selection support"},
	"DOCUMENT_SELECTION": {"capabilities.document_selection", envTypeBool, "Override legacy selection support"},
	"PROPER_LINES":       {"capabilities.proper_lines", envTypeBool, "Override newline handling"},
}

// LoadFromEnv applies environment variable overrides to the configuration.
// Environment variables are prefixed with GOTEXTY_ (e.g., GOTEXTY_MARKER_TAG).
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	for envSuffix, mapping := range envMappings {
		envVar := envVarPrefix + envSuffix
		value := os.Getenv(envVar)
		if value == "" {
			continue
		}

		if err := applyEnvValue(cfg, mapping, value, envVar); err != nil {
			return err
		}
	}

	return nil
}

// applyEnvValue applies a single environment variable value to the config.
func applyEnvValue(cfg *config.Config, mapping envMapping, value, envVar string) error {
	switch mapping.typ {
	case envTypeString:
		return setStringField(cfg, mapping.field, value)
	case envTypeBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return &ValidationError{
				Field:   envVar,
				Value:   value,
				Message: "invalid boolean (expected true/false/1/0)",
			}
		}
		return setBoolField(cfg, mapping.field, b)
	case envTypeInt:
		i, err := strconv.Atoi(value)
		if err != nil {
			return &ValidationError{Field: envVar, Value: value, Message: "invalid integer"}
		}
		return setIntField(cfg, mapping.field, i)
	default:
		return fmt.Errorf("unknown field type for %s", envVar)
	}
}

// setStringField sets a string field on the config by field path.
func setStringField(cfg *config.Config, field, value string) error {
	switch field {
	case "format":
		cfg.Format = config.OutputFormat(value)
	case "marker.tag":
		cfg.Marker.Tag = value
	case "markup.flavor":
		cfg.Markup.Flavor = config.Flavor(value)
	default:
		return fmt.Errorf("unknown string field: %s", field)
	}
	return nil
}

// setBoolField sets a boolean field on the config by field path.
func setBoolField(cfg *config.Config, field string, value bool) error {
	switch field {
	case "markup.strict":
		cfg.Markup.Strict = value
	case "capabilities.selection_start":
		cfg.Capabilities.SelectionStart = &value
	case "capabilities.window_selection":
		cfg.Capabilities.WindowSelection = &value
	case "capabilities.document_selection":
		cfg.Capabilities.DocumentSelection = &value
	case "capabilities.proper_lines":
		cfg.Capabilities.ProperLines = &value
	default:
		return fmt.Errorf("unknown boolean field: %s", field)
	}
	return nil
}

// setIntField sets an integer field on the config by field path.
func setIntField(cfg *config.Config, field string, value int) error {
	switch field {
	case "limits.max_depth":
		cfg.Limits.MaxDepth = value
	default:
		return fmt.Errorf("unknown integer field: %s", field)
	}
	return nil
}

// GetEnvVarName returns the full environment variable name for a config field.
func GetEnvVarName(field string) string {
	for suffix, mapping := range envMappings {
		if mapping.field == field {
			return envVarPrefix + suffix
		}
	}
	return ""
}

// EnvVar describes one supported environment variable.
type EnvVar struct {
	Name        string
	Field       string
	Description string
}

// ListEnvVars returns all supported environment variables sorted by name.
func ListEnvVars() []EnvVar {
	vars := make([]EnvVar, 0, len(envMappings))
	for suffix, mapping := range envMappings {
		vars = append(vars, EnvVar{
			Name:        envVarPrefix + suffix,
			Field:       mapping.field,
			Description: mapping.description,
		})
	}
	sort.Slice(vars, func(i, j int) bool { return vars[i].Name < vars[j].Name })
	return vars
}
