package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

type selectFlags struct {
	input string
	node  string
}

func newSelectCommand() *cobra.Command {
	flags := &selectFlags{}

	cmd := &cobra.Command{
		Use:   "select FILE",
		Short: "Select a whole element and print the record around it",
		Long: `Select an element itself, from just before it to just after it, and
print the selection measured against the element's parent.

Examples:
  gotexty select page.html --node 0/1
  gotexty select page.html --node '#intro' --format yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSelect(cmd, args[0], flags)
		},
	}

	cmd.Flags().StringVar(&flags.input, "input", "auto", "input format: auto, html, markdown")
	cmd.Flags().StringVar(&flags.node, "node", "", "element to select (path or #id)")

	return cmd
}

func runSelect(cmd *cobra.Command, path string, flags *selectFlags) error {
	if flags.node == "" {
		return fmt.Errorf("%w: --node is required", ErrUsage)
	}
	sess, err := openSession(cmd, path, flags.input)
	if err != nil {
		return err
	}

	el, err := sess.node(flags.node)
	if err != nil {
		return fmt.Errorf("node: %w", err)
	}
	if el == sess.body {
		return fmt.Errorf("%w: --node must be below <body>", ErrUsage)
	}

	if err := sess.texty.SelectWholeElement(el); err != nil {
		return err
	}

	report, err := sess.report(el.Parent)
	if err != nil {
		return err
	}
	rep, err := sess.rt.reporter(cmd)
	if err != nil {
		return err
	}
	if err := rep.Report(cmd.Context(), report); err != nil {
		return fmt.Errorf("report: %w", err)
	}
	return nil
}
