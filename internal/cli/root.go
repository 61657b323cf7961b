// Package cli provides the Cobra command structure for gotexty.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gotexty/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// globalFlags are the persistent flags shared by every subcommand.
type globalFlags struct {
	debug      bool
	configPath string
	color      string
	format     string

	markerTag string
	maxDepth  int
	strict    bool
	flavor    string

	selectionStart    bool
	windowSelection   bool
	documentSelection bool
	properLines       bool
}

// NewRootCommand creates the root gotexty command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "gotexty",
		Short: "Read and write selections in text fields and HTML regions",
		Long: `gotexty converts selections between flat offsets and tree positions.

A selection inside an HTML region is described by two offsets into the
region's serialized inner HTML plus the text before, inside and after it.
gotexty reads such records from positions in a document, installs them
back into a document, and does the same for plain-text fields.

Documents may be HTML or Markdown; Markdown is rendered to HTML first.`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if flags.debug {
				logging.SetLevel("debug")
			}
			if !needsRuntime(cmd) {
				return nil
			}
			return loadRuntime(cmd, flags)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	addGlobalFlags(rootCmd, flags)

	rootCmd.AddCommand(newGetCommand())
	rootCmd.AddCommand(newSetCommand())
	rootCmd.AddCommand(newFieldCommand())
	rootCmd.AddCommand(newSelectCommand())
	rootCmd.AddCommand(newCapsCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	NewHelpFormatter(flags.color, os.Stdout).ApplyToCommand(rootCmd)

	return rootCmd
}

func addGlobalFlags(cmd *cobra.Command, flags *globalFlags) {
	pf := cmd.PersistentFlags()
	pf.BoolVar(&flags.debug, "debug", false, "enable debug logging")
	pf.StringVar(&flags.configPath, "config", "", "path to config file")
	pf.StringVar(&flags.color, "color", "auto", "colorize output: auto, always, never")
	pf.StringVar(&flags.format, "format", "", "output format: text, json, yaml")

	pf.StringVar(&flags.markerTag, "marker-tag", "", "element name of the resolution marker")
	pf.IntVar(&flags.maxDepth, "max-depth", 0, "maximum node depth below a scope")
	pf.BoolVar(&flags.strict, "strict", false, "reject content that does not round-trip unchanged")
	pf.StringVar(&flags.flavor, "flavor", "", "Markdown flavor for Markdown inputs: commonmark, gfm")

	pf.BoolVar(&flags.selectionStart, "selection-start", true, "override field cursor support")
	pf.BoolVar(&flags.windowSelection, "window-selection", true, "override live selection support")
	pf.BoolVar(&flags.documentSelection, "document-selection", false, "override legacy selection support")
	pf.BoolVar(&flags.properLines, "proper-lines", true, "override field newline handling")
}

// needsRuntime reports whether cmd works on documents and so needs the
// resolved configuration.
func needsRuntime(cmd *cobra.Command) bool {
	switch cmd.Name() {
	case "version", "init", "help", "completion":
		return false
	default:
		return cmd.Runnable()
	}
}
