package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gotexty/pkg/reporter"
	"github.com/yaklabco/gotexty/pkg/texty"
)

// readRecord loads a selection record in JSON or YAML from path, or from
// stdin when path is "-".
func readRecord(cmd *cobra.Command, path string) (texty.Selection, error) {
	var (
		data []byte
		err  error
	)
	if path == stdinPath {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return texty.Selection{}, fmt.Errorf("read record %s: %w", path, err)
	}

	rec, err := reporter.DecodeRecord(data)
	if err != nil {
		return texty.Selection{}, fmt.Errorf("record %s: %w", path, err)
	}
	return rec, nil
}
