package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gotexty/pkg/reporter"
	"github.com/yaklabco/gotexty/pkg/texty"
)

func newCapsCommand() *cobra.Command {
	var input string

	cmd := &cobra.Command{
		Use:   "caps [FILE]",
		Short: "Show the selection capabilities in effect",
		Long: `Print the capabilities gotexty detects after applying configuration
overrides. With FILE, a document requesting a legacy compatibility mode
through X-UA-Compatible turns off proper line handling.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCaps(cmd, args, input)
		},
	}

	cmd.Flags().StringVar(&input, "input", "auto", "input format: auto, html, markdown")

	return cmd
}

func runCaps(cmd *cobra.Command, args []string, input string) error {
	rt, err := runtimeFrom(cmd)
	if err != nil {
		return err
	}

	report := &reporter.Report{}
	caps := texty.Detect(environment{overrides: rt.cfg.Capabilities})
	if len(args) == 1 {
		sess, err := openSession(cmd, args[0], input)
		if err != nil {
			return err
		}
		caps = sess.texty.Capabilities()
	}
	report.Capabilities = &caps

	rep, err := rt.reporter(cmd)
	if err != nil {
		return err
	}
	if err := rep.Report(cmd.Context(), report); err != nil {
		return fmt.Errorf("report: %w", err)
	}
	if !caps.Supported() {
		return fmt.Errorf("caps: %w", texty.ErrUnsupported)
	}
	return nil
}
