package reporter

import (
	"bytes"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/yaklabco/gotexty/pkg/texty"
)

// ErrNoRecord is returned by DecodeRecord when the input holds no
// selection.
var ErrNoRecord = errors.New("input contains no selection record")

// DecodeRecord reads a selection record from JSON or YAML. It accepts
// either a bare record or the full output of a JSON or YAML reporter, and
// returns the record rebuilt from its start, end and content_all fields.
func DecodeRecord(data []byte) (texty.Selection, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return texty.Selection{}, ErrNoRecord
	}

	// JSON is a subset of YAML, so one decoder covers both.
	var output Output
	if err := yaml.Unmarshal(data, &output); err != nil {
		return texty.Selection{}, fmt.Errorf("decode record: %w", err)
	}

	var rec texty.Selection
	switch {
	case output.Selection != nil:
		rec = texty.Selection{
			Start:      output.Selection.Start,
			End:        output.Selection.End,
			ContentAll: output.Selection.ContentAll,
		}
	case output.Version != "":
		return texty.Selection{}, ErrNoRecord
	default:
		if err := yaml.Unmarshal(data, &rec); err != nil {
			return texty.Selection{}, fmt.Errorf("decode record: %w", err)
		}
	}

	normalized, err := rec.Normalize()
	if err != nil {
		return texty.Selection{}, fmt.Errorf("decode record: %w", err)
	}
	return normalized, nil
}
