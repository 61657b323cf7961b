package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gotexty/internal/configloader"
	"github.com/yaklabco/gotexty/internal/logging"
	"github.com/yaklabco/gotexty/pkg/config"
	"github.com/yaklabco/gotexty/pkg/fsutil"
)

// configFilePermissions is the file mode for configuration files (world-readable).
const configFilePermissions = 0o644

// initFlags holds the flags for the init command.
type initFlags struct {
	force  bool
	full   bool
	format string
	output string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new gotexty configuration file",
		Long: `Create a .gotexty.yml configuration file in the current directory with
the default marker, limits and markup settings.

Examples:
  gotexty init                      Create minimal .gotexty.yml
  gotexty init --full               Include commented capability overrides
  gotexty init --format json        Create .gotexty.json instead
  gotexty init --output custom.yml  Write to a custom file path`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Overwrite existing configuration file")
	cmd.Flags().BoolVar(&flags.full, "full", false, "Generate full template with every option documented")
	cmd.Flags().StringVar(&flags.format, "format", "yaml", "Output format: yaml or json")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Output file path (default: .gotexty.yml or .gotexty.json)")

	return cmd
}

func runInit(cmd *cobra.Command, flags *initFlags) error {
	logger := logging.NewInteractive()
	logger.SetOutput(cmd.ErrOrStderr())

	if flags.format != "yaml" && flags.format != "json" {
		return fmt.Errorf("%w: invalid format %q: must be yaml or json", ErrUsage, flags.format)
	}

	outputPath := flags.output
	if outputPath == "" {
		outputPath = ".gotexty.yml"
		if flags.format == "json" {
			outputPath = ".gotexty.json"
		}
	}

	absPath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if _, err := os.Stat(absPath); err == nil && !flags.force {
		if !configloader.IsInteractive() {
			return fmt.Errorf("file %q already exists; use --force to overwrite", outputPath)
		}
		ok, err := configloader.Confirm(os.Stdin, cmd.ErrOrStderr(),
			fmt.Sprintf("%s already exists. Overwrite?", outputPath), false)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("overwrite %s: %w", outputPath, errDeclined)
		}
	}

	content, err := config.GenerateTemplate(config.TemplateOptions{
		Full:   flags.full,
		Format: flags.format,
	})
	if err != nil {
		return fmt.Errorf("generate template: %w", err)
	}

	if err := fsutil.WriteAtomic(cmd.Context(), absPath, content, configFilePermissions); err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	logger.Info("created configuration file", logging.FieldPath, outputPath)
	logger.Info("environment overrides use the GOTEXTY_ prefix", "count", len(configloader.ListEnvVars()))

	return nil
}
