// Package config defines the configuration types for gotexty.
// These are plain data structures; discovery and merging live in
// internal/configloader.
package config

import (
	"github.com/yaklabco/gotexty/pkg/dom"
	"github.com/yaklabco/gotexty/pkg/marker"
	"github.com/yaklabco/gotexty/pkg/nodepath"
)

// OutputFormat specifies how records are printed.
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
	FormatYAML OutputFormat = "yaml"
)

// Flavor specifies the Markdown flavor used for Markdown inputs.
type Flavor string

const (
	FlavorCommonMark Flavor = dom.FlavorCommonMark
	FlavorGFM        Flavor = dom.FlavorGFM
)

// IsValid returns true if the flavor is known.
func (f Flavor) IsValid() bool {
	switch f {
	case FlavorCommonMark, FlavorGFM:
		return true
	default:
		return false
	}
}

// CapabilitiesConfig overrides detected capabilities. A nil field keeps
// the detected value.
type CapabilitiesConfig struct {
	SelectionStart    *bool `mapstructure:"selection_start" yaml:"selection_start,omitempty"`
	WindowSelection   *bool `mapstructure:"window_selection" yaml:"window_selection,omitempty"`
	DocumentSelection *bool `mapstructure:"document_selection" yaml:"document_selection,omitempty"`
	ProperLines       *bool `mapstructure:"proper_lines" yaml:"proper_lines,omitempty"`
}

// MarkerConfig controls the placeholder element used during resolution.
type MarkerConfig struct {
	Tag string `mapstructure:"tag" yaml:"tag"`
}

// LimitsConfig bounds tree walks.
type LimitsConfig struct {
	MaxDepth int `mapstructure:"max_depth" yaml:"max_depth"`
}

// MarkupConfig controls how region content is parsed.
type MarkupConfig struct {
	// Strict rejects content that does not survive a parse/serialize
	// round trip unchanged.
	Strict bool `mapstructure:"strict" yaml:"strict"`

	// Flavor is the Markdown flavor for .md inputs.
	Flavor Flavor `mapstructure:"flavor" yaml:"flavor"`
}

// Config is the root configuration structure for gotexty.
type Config struct {
	Capabilities CapabilitiesConfig `mapstructure:"capabilities" yaml:"capabilities"`
	Marker       MarkerConfig       `mapstructure:"marker" yaml:"marker"`
	Limits       LimitsConfig       `mapstructure:"limits" yaml:"limits"`
	Markup       MarkupConfig       `mapstructure:"markup" yaml:"markup"`

	// CLI-level options (not persisted to config files).

	// Format specifies the output format.
	Format OutputFormat `mapstructure:"-" yaml:"-"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Marker: MarkerConfig{Tag: marker.DefaultTag},
		Limits: LimitsConfig{MaxDepth: nodepath.DefaultMaxDepth},
		Markup: MarkupConfig{Flavor: FlavorGFM},
		Format: FormatText,
	}
}
