package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/net/html"
)

type getFlags struct {
	input string
	scope string
	start string
	end   string
}

func newGetCommand() *cobra.Command {
	flags := &getFlags{}

	cmd := &cobra.Command{
		Use:   "get FILE",
		Short: "Describe a selection in a document as a flat record",
		Long: `Select the range between two tree positions in a document and print it
as offsets into the serialized content of a scope element.

Positions are written REF:OFFSET where REF is a node path from <body>
(e.g. 0/1/0) or #id, and OFFSET counts UTF-16 units in text nodes or
children in elements. Without --end the selection is collapsed at --start.
Without --scope the closest element around the selection is used.

Examples:
  gotexty get page.html --start 0/0:2 --end 0/1:3
  gotexty get page.html --scope '#editor' --start '#editor:0'
  gotexty get notes.md --start 0/0:5 --format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGet(cmd, args[0], flags)
		},
	}

	cmd.Flags().StringVar(&flags.input, "input", "auto", "input format: auto, html, markdown")
	cmd.Flags().StringVar(&flags.scope, "scope", "", "scope element (path or #id; default: closest element)")
	cmd.Flags().StringVar(&flags.start, "start", "", "start position REF:OFFSET (default: no selection)")
	cmd.Flags().StringVar(&flags.end, "end", "", "end position REF:OFFSET (default: --start)")

	return cmd
}

func runGet(cmd *cobra.Command, path string, flags *getFlags) error {
	sess, err := openSession(cmd, path, flags.input)
	if err != nil {
		return err
	}

	if flags.start != "" {
		start, err := sess.point(flags.start)
		if err != nil {
			return fmt.Errorf("start: %w", err)
		}
		if flags.end == "" {
			if err := sess.sel.Collapse(start); err != nil {
				return err
			}
		} else {
			end, err := sess.point(flags.end)
			if err != nil {
				return fmt.Errorf("end: %w", err)
			}
			if err := sess.sel.SetBaseAndExtent(start, end); err != nil {
				return err
			}
		}
	} else if flags.end != "" {
		return fmt.Errorf("%w: --end requires --start", ErrUsage)
	}

	var scope *html.Node
	if flags.scope != "" {
		if scope, err = sess.node(flags.scope); err != nil {
			return fmt.Errorf("scope: %w", err)
		}
	}

	report, err := sess.report(scope)
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
	if !report.Selected {
		return ErrNoSelection
	}
	return nil
}
