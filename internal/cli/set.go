package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gotexty/internal/configloader"
	"github.com/yaklabco/gotexty/internal/logging"
	"github.com/yaklabco/gotexty/pkg/dom"
	"github.com/yaklabco/gotexty/pkg/fsutil"
)

// errDeclined is returned when the user answers no to a confirmation.
var errDeclined = errors.New("declined")

type setFlags struct {
	input   string
	record  string
	scope   string
	write   string
	inPlace bool
	backup  bool
	yes     bool
}

func newSetCommand() *cobra.Command {
	flags := &setFlags{}

	cmd := &cobra.Command{
		Use:   "set FILE",
		Short: "Install a flat record as the content and selection of a scope",
		Long: `Replace the content of a scope element with a record's content_all and
select the record's start to end offsets inside the new content, then print
the installed selection.

The record is JSON or YAML: either a bare record with start, end and
content_all, or the output of "gotexty get --format json|yaml".

Examples:
  gotexty get page.html --start 0/0:1 --format json > sel.json
  gotexty set page.html --record sel.json --scope 0
  gotexty set page.html --record sel.json --scope '#editor' --write out.html
  gotexty set page.html --record - --in-place --backup < sel.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSet(cmd, args[0], flags)
		},
	}

	cmd.Flags().StringVar(&flags.input, "input", "auto", "input format: auto, html, markdown")
	cmd.Flags().StringVar(&flags.record, "record", "", "record file (JSON or YAML; - for stdin)")
	cmd.Flags().StringVar(&flags.scope, "scope", "", "scope element (path or #id; default: <body>)")
	cmd.Flags().StringVarP(&flags.write, "write", "w", "", "write the updated document to this file")
	cmd.Flags().BoolVar(&flags.inPlace, "in-place", false, "overwrite FILE with the updated document")
	cmd.Flags().BoolVar(&flags.backup, "backup", false, "keep a backup of FILE when overwriting it")
	cmd.Flags().BoolVarP(&flags.yes, "yes", "y", false, "do not ask before overwriting FILE")
	cmd.MarkFlagsMutuallyExclusive("write", "in-place")

	return cmd
}

func runSet(cmd *cobra.Command, path string, flags *setFlags) error {
	if flags.record == "" {
		return fmt.Errorf("%w: --record is required", ErrUsage)
	}
	if path == stdinPath && flags.record == stdinPath {
		return fmt.Errorf("%w: FILE and --record cannot both be stdin", ErrUsage)
	}

	rec, err := readRecord(cmd, flags.record)
	if err != nil {
		return err
	}

	sess, err := openSession(cmd, path, flags.input)
	if err != nil {
		return err
	}
	if flags.inPlace {
		if sess.snap == nil {
			return fmt.Errorf("%w: --in-place needs a file, not stdin", ErrUsage)
		}
		if sess.doc.Format == dom.FormatMarkdown {
			return fmt.Errorf("%w: --in-place would replace Markdown with HTML; use --write", ErrUsage)
		}
	}

	scope, err := sess.node(flags.scope)
	if err != nil {
		return fmt.Errorf("scope: %w", err)
	}

	if err := sess.texty.SetStructural(scope, rec); err != nil {
		return err
	}

	if err := saveDocument(cmd, sess, flags); err != nil {
		return err
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
	return nil
}

// saveDocument writes the updated document where the flags ask for it.
func saveDocument(cmd *cobra.Command, sess *session, flags *setFlags) error {
	logger := logging.FromContext(cmd.Context())
	ctx := cmd.Context()

	switch {
	case flags.write != "":
		if err := fsutil.WriteAtomic(ctx, flags.write, sess.render(), 0); err != nil {
			return fmt.Errorf("write %s: %w", flags.write, err)
		}
		logger.Info("wrote document", logging.FieldOutput, flags.write)

	case flags.inPlace:
		if !flags.yes && configloader.IsInteractive() {
			ok, err := configloader.Confirm(os.Stdin, cmd.ErrOrStderr(),
				fmt.Sprintf("Overwrite %s?", sess.path), false)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("overwrite %s: %w", sess.path, errDeclined)
			}
		}
		if err := fsutil.ReplaceDocument(ctx, sess.snap, sess.render(), flags.backup); err != nil {
			return err
		}
		logger.Info("updated document", "backup", flags.backup)
	}
	return nil
}
