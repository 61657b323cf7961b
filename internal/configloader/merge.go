package configloader

import "github.com/yaklabco/gotexty/pkg/config"

// merge combines two configurations, with override taking precedence over base.
// The merge follows these rules:
//   - Scalar values: override overwrites base if override is non-zero
//   - Capability overrides: a non-nil pointer in override wins
//   - Nil/unset values in override do not override values in base
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := *base

	if override.Format != "" {
		result.Format = override.Format
	}
	if override.Marker.Tag != "" {
		result.Marker.Tag = override.Marker.Tag
	}
	if override.Limits.MaxDepth != 0 {
		result.Limits.MaxDepth = override.Limits.MaxDepth
	}
	if override.Markup.Flavor != "" {
		result.Markup.Flavor = override.Markup.Flavor
	}

	// Strict is a plain bool, so a layer can turn it on but not back off.
	if override.Markup.Strict {
		result.Markup.Strict = true
	}

	result.Capabilities = mergeCapabilities(base.Capabilities, override.Capabilities)

	return &result
}

// mergeCapabilities keeps each override that is set.
func mergeCapabilities(base, override config.CapabilitiesConfig) config.CapabilitiesConfig {
	result := base
	if override.SelectionStart != nil {
		result.SelectionStart = override.SelectionStart
	}
	if override.WindowSelection != nil {
		result.WindowSelection = override.WindowSelection
	}
	if override.DocumentSelection != nil {
		result.DocumentSelection = override.DocumentSelection
	}
	if override.ProperLines != nil {
		result.ProperLines = override.ProperLines
	}
	return result
}

// MergeAll merges multiple configurations in order, with later configs taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for i := 1; i < len(configs); i++ {
		result = merge(result, configs[i])
	}
	return result
}
