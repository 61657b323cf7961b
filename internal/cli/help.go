package cli

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/yaklabco/gotexty/internal/ui/pretty"
)

// helpTemplate lays out command help. Sections without content are
// skipped.
const helpTemplate = `{{with (or .Long .Short)}}{{ trimRight . }}

{{end}}{{ heading "Usage:" }}
{{- if .Runnable}}
  {{ command .UseLine }}{{end}}
{{- if .HasAvailableSubCommands}}
  {{ command .CommandPath }} [command]{{end}}
{{- if .HasAvailableSubCommands}}

{{ heading "Commands:" }}{{range .Commands}}{{if .IsAvailableCommand}}
  {{ subcommand (pad .Name .NamePadding) }} {{ .Short }}{{end}}{{end}}{{end}}
{{- if .HasAvailableLocalFlags}}

{{ heading "Flags:" }}
{{ flags .LocalFlags }}{{end}}
{{- if .HasAvailableInheritedFlags}}

{{ heading "Global Flags:" }}
{{ flags .InheritedFlags }}{{end}}
{{- if .HasAvailableSubCommands}}

Use "{{ command (print .CommandPath " [command] --help") }}" for more information about a command.{{end}}
`

// HelpFormatter renders Cobra help with the CLI's color styles.
type HelpFormatter struct {
	styles *pretty.Styles
}

// NewHelpFormatter creates a help formatter for writer under colorMode
// ("auto", "always" or "never").
func NewHelpFormatter(colorMode string, writer io.Writer) *HelpFormatter {
	return &HelpFormatter{styles: pretty.NewStyles(pretty.IsColorEnabled(colorMode, writer))}
}

// ApplyToCommand installs the styled help and usage functions on cmd and,
// through inheritance, on its subcommands.
func (h *HelpFormatter) ApplyToCommand(cmd *cobra.Command) {
	tmpl := template.Must(template.New("help").Funcs(template.FuncMap{
		"heading":    h.styles.Bold.Render,
		"command":    h.styles.Offset.Render,
		"subcommand": h.styles.Path.Render,
		"flags":      h.flagUsages,
		"pad":        pad,
		"trimRight":  trimTrailingWhitespace,
	}).Parse(helpTemplate))

	render := func(command *cobra.Command) error {
		if err := tmpl.Execute(command.OutOrStdout(), command); err != nil {
			return fmt.Errorf("render help: %w", err)
		}
		return nil
	}

	cmd.SetUsageFunc(render)
	cmd.SetHelpFunc(func(command *cobra.Command, _ []string) {
		if err := render(command); err != nil {
			command.PrintErrln(err)
		}
	})
}

// flagUsages styles the flag names in pflag's usage listing.
func (h *HelpFormatter) flagUsages(set *pflag.FlagSet) string {
	lines := strings.Split(strings.TrimRight(set.FlagUsages(), "\n"), "\n")
	for i, line := range lines {
		trimmed := strings.TrimLeft(line, " ")
		name, rest, found := strings.Cut(trimmed, "   ")
		if !found || !strings.HasPrefix(name, "-") {
			continue
		}
		indent := line[:len(line)-len(trimmed)]
		lines[i] = indent + h.styles.Node.Render(name) + "   " + rest
	}
	return strings.Join(lines, "\n")
}

func pad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

func trimTrailingWhitespace(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}
