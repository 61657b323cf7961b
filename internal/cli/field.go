package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gotexty/internal/logging"
	"github.com/yaklabco/gotexty/pkg/field"
	"github.com/yaklabco/gotexty/pkg/fsutil"
	"github.com/yaklabco/gotexty/pkg/reporter"
	"github.com/yaklabco/gotexty/pkg/textutil"
	"github.com/yaklabco/gotexty/pkg/texty"
)

type fieldFlags struct {
	value  string
	start  int
	end    int
	record string
	write  string
}

func newFieldCommand() *cobra.Command {
	flags := &fieldFlags{}

	cmd := &cobra.Command{
		Use:   "field [FILE]",
		Short: "Read or write the selection of a plain-text field",
		Long: `Load a plain-text field from FILE (- for stdin) or --value, place its
cursor at --start..--end (UTF-16 units, clamped to the value), and print
the field's selection record.

With --record the record's content and offsets are installed into the
field first, as a text field would apply them.

Examples:
  gotexty field --value 'hello world' --start 6 --end 11
  gotexty field notes.txt --start 10
  gotexty field --record sel.json --write out.txt`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runField(cmd, args, flags)
		},
	}

	cmd.Flags().StringVar(&flags.value, "value", "", "field value")
	cmd.Flags().IntVar(&flags.start, "start", 0, "selection start")
	cmd.Flags().IntVar(&flags.end, "end", -1, "selection end (default: --start)")
	cmd.Flags().StringVar(&flags.record, "record", "", "record to install (JSON or YAML; - for stdin)")
	cmd.Flags().StringVarP(&flags.write, "write", "w", "", "write the field value to this file")

	return cmd
}

func runField(cmd *cobra.Command, args []string, flags *fieldFlags) error {
	rt, err := runtimeFrom(cmd)
	if err != nil {
		return err
	}

	source := "value"
	value := flags.value
	if len(args) == 1 {
		if cmd.Flags().Changed("value") {
			return fmt.Errorf("%w: FILE and --value are exclusive", ErrUsage)
		}
		if args[0] == stdinPath && flags.record == stdinPath {
			return fmt.Errorf("%w: FILE and --record cannot both be stdin", ErrUsage)
		}
		content, _, err := readInput(cmd.Context(), cmd.InOrStdin(), args[0])
		if err != nil {
			return err
		}
		source, value = args[0], string(content)
	}

	area := field.NewTextArea(value)
	end := flags.end
	if end < 0 {
		end = flags.start
	}
	area.SetSelectionRange(flags.start, end)

	facade := texty.New(texty.Detect(environment{overrides: rt.cfg.Capabilities}), nil, rt.options())

	if flags.record != "" {
		rec, err := readRecord(cmd, flags.record)
		if err != nil {
			return err
		}
		if err := facade.SetFlat(area, rec); err != nil {
			return err
		}
	}

	rec, err := facade.GetFlat(area)
	if err != nil {
		return err
	}
	logging.FromContext(cmd.Context()).Debug("field selection",
		logging.FieldStart, area.SelectionStart(),
		logging.FieldEnd, area.SelectionEnd(),
		logging.FieldLength, textutil.Len16(area.Selected()),
	)

	if flags.write != "" {
		if err := fsutil.WriteAtomic(cmd.Context(), flags.write, []byte(area.Value()), 0); err != nil {
			return fmt.Errorf("write %s: %w", flags.write, err)
		}
	}

	rep, err := rt.reporter(cmd)
	if err != nil {
		return err
	}
	if err := rep.Report(cmd.Context(), &reporter.Report{Source: source, Selected: true, Record: rec}); err != nil {
		return fmt.Errorf("report: %w", err)
	}
	return nil
}
