package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/yaklabco/gotexty/internal/configloader"
	"github.com/yaklabco/gotexty/internal/logging"
	"github.com/yaklabco/gotexty/pkg/config"
	"github.com/yaklabco/gotexty/pkg/dom"
	"github.com/yaklabco/gotexty/pkg/reporter"
	"github.com/yaklabco/gotexty/pkg/texty"
)

// runtime is the resolved state a document command runs with.
type runtime struct {
	cfg    *config.Config
	color  string
	logger *log.Logger
}

type runtimeKey struct{}

// loadRuntime resolves configuration for cmd and stores it, with a
// command-scoped logger, in the command's context.
func loadRuntime(cmd *cobra.Command, flags *globalFlags) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	result, err := configloader.Load(ctx, configloader.LoadOptions{
		ExplicitPath: flags.configPath,
		CLIConfig:    cliConfig(cmd, flags),
	})
	if err != nil {
		return errors.Join(errors.New("failed to load configuration"), err)
	}

	logger := logging.Component(cmd.Name())
	for _, warning := range result.Warnings {
		logger.Warn(warning)
	}
	if len(result.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", "files", result.LoadedFrom)
	}
	logger.Debug("configuration loaded",
		logging.FieldMarkerTag, result.Config.Marker.Tag,
		logging.FieldMaxDepth, result.Config.Limits.MaxDepth,
		logging.FieldStrict, result.Config.Markup.Strict,
		logging.FieldFlavor, result.Config.Markup.Flavor,
	)

	rt := &runtime{cfg: result.Config, color: flags.color, logger: logger}
	ctx = context.WithValue(ctx, runtimeKey{}, rt)
	cmd.SetContext(logging.WithLogger(ctx, logger))
	return nil
}

// cliConfig builds the highest-precedence config layer from the flags the
// user actually set.
func cliConfig(cmd *cobra.Command, flags *globalFlags) *config.Config {
	cfg := &config.Config{
		Format: config.OutputFormat(flags.format),
		Marker: config.MarkerConfig{Tag: flags.markerTag},
		Limits: config.LimitsConfig{MaxDepth: flags.maxDepth},
		Markup: config.MarkupConfig{Strict: flags.strict, Flavor: config.Flavor(flags.flavor)},
	}

	changed := cmd.Flags().Changed
	caps := &cfg.Capabilities
	if changed("selection-start") {
		caps.SelectionStart = &flags.selectionStart
	}
	if changed("window-selection") {
		caps.WindowSelection = &flags.windowSelection
	}
	if changed("document-selection") {
		caps.DocumentSelection = &flags.documentSelection
	}
	if changed("proper-lines") {
		caps.ProperLines = &flags.properLines
	}
	return cfg
}

// runtimeFrom returns the state stored by loadRuntime.
func runtimeFrom(cmd *cobra.Command) (*runtime, error) {
	if ctx := cmd.Context(); ctx != nil {
		if rt, ok := ctx.Value(runtimeKey{}).(*runtime); ok {
			return rt, nil
		}
	}
	return nil, errors.New("configuration not loaded")
}

// options builds facade options from the configuration.
func (rt *runtime) options() texty.Options {
	var markup dom.Markup = dom.HTML{}
	if rt.cfg.Markup.Strict {
		markup = dom.Strict{}
	}
	return texty.Options{
		MarkerTag: rt.cfg.Marker.Tag,
		MaxDepth:  rt.cfg.Limits.MaxDepth,
		Markup:    markup,
		Logger:    rt.logger,
	}
}

// reporter creates the reporter for cmd's output streams.
func (rt *runtime) reporter(cmd *cobra.Command) (reporter.Reporter, error) {
	format, err := reporter.ParseFormat(string(rt.cfg.Format))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUsage, err)
	}

	opts := reporter.DefaultOptions()
	opts.Writer = cmd.OutOrStdout()
	opts.ErrorWriter = cmd.ErrOrStderr()
	opts.Format = format
	opts.Color = rt.color

	rep, err := reporter.New(opts)
	if err != nil {
		return nil, fmt.Errorf("create reporter: %w", err)
	}
	return rep, nil
}
