package cli

import (
	"errors"

	"github.com/yaklabco/gotexty/internal/configloader"
	"github.com/yaklabco/gotexty/pkg/dom"
	"github.com/yaklabco/gotexty/pkg/fsutil"
	"github.com/yaklabco/gotexty/pkg/marker"
	"github.com/yaklabco/gotexty/pkg/nodepath"
	"github.com/yaklabco/gotexty/pkg/reporter"
	"github.com/yaklabco/gotexty/pkg/selection"
	"github.com/yaklabco/gotexty/pkg/texty"
)

// Exit codes for gotexty.
const (
	// ExitSuccess indicates successful execution.
	ExitSuccess = 0

	// ExitNoSelection indicates the command ran but found nothing selected.
	ExitNoSelection = 1

	// ExitUnsupported indicates the environment lacks a required capability.
	ExitUnsupported = 3

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitDataError indicates a record, path or document that does not fit.
	ExitDataError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 78
)

var (
	// ErrUsage marks errors caused by bad arguments or flags.
	ErrUsage = errors.New("invalid usage")

	// ErrNoSelection is returned by commands that report a selection when
	// there is none. It only signals the exit code.
	ErrNoSelection = errors.New("no selection")
)

// ExitCode maps an error returned by a command to a process exit code.
func ExitCode(err error) int {
	var validationErr *configloader.ValidationError

	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrNoSelection):
		return ExitNoSelection
	case errors.Is(err, texty.ErrUnsupported):
		return ExitUnsupported
	case errors.Is(err, ErrUsage):
		return ExitInvalidUsage
	case errors.As(err, &validationErr):
		return ExitConfigError
	case errors.Is(err, fsutil.ErrNotFound),
		errors.Is(err, fsutil.ErrPermissionDenied),
		errors.Is(err, fsutil.ErrIsDirectory),
		errors.Is(err, fsutil.ErrModified):
		return ExitIOError
	case errors.Is(err, texty.ErrInvalidSelection),
		errors.Is(err, texty.ErrInvalidScope),
		errors.Is(err, texty.ErrDetachedNode),
		errors.Is(err, nodepath.ErrInvalidScope),
		errors.Is(err, nodepath.ErrPathOutOfRange),
		errors.Is(err, marker.ErrMarkerNotFound),
		errors.Is(err, dom.ErrNotCanonical),
		errors.Is(err, dom.ErrOffsetOutOfRange),
		errors.Is(err, dom.ErrInvalidContainer),
		errors.Is(err, selection.ErrInvalidPoint),
		errors.Is(err, selection.ErrDisconnected),
		errors.Is(err, reporter.ErrNoRecord):
		return ExitDataError
	default:
		return ExitInternalError
	}
}
