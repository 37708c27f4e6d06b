package cli

import (
	"errors"
	"io/fs"

	"github.com/yaklabco/imgtext/internal/configloader"
	"github.com/yaklabco/imgtext/pkg/fsutil"
	"github.com/yaklabco/imgtext/pkg/markup"
	"github.com/yaklabco/imgtext/pkg/resource"
)

// Exit codes for imgtext.
const (
	// ExitSuccess indicates successful execution.
	ExitSuccess = 0

	// ExitUnresolved indicates a strict layout skipped a link or image, or
	// could not load an image.
	ExitUnresolved = 1

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitDataError indicates input that is not valid markup.
	ExitDataError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 78
)

var (
	// ErrInvalidArgs is returned for malformed flags and arguments.
	ErrInvalidArgs = errors.New("invalid arguments")

	// ErrUnresolved is returned by strict layouts with skipped entities.
	ErrUnresolved = errors.New("unresolved links or images")

	// ErrConfig wraps configuration loading failures.
	ErrConfig = errors.New("configuration error")
)

// ExitCode maps an error returned by a command to a process exit code.
func ExitCode(err error) int {
	var validation *configloader.ValidationError

	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrUnresolved):
		return ExitUnresolved
	case errors.Is(err, ErrInvalidArgs):
		return ExitInvalidUsage
	case errors.Is(err, ErrConfig), errors.As(err, &validation), errors.Is(err, configloader.ErrConfigExists):
		return ExitConfigError
	case errors.Is(err, markup.ErrLinkIndexOutOfRange):
		return ExitDataError
	case errors.Is(err, fs.ErrNotExist), errors.Is(err, fs.ErrPermission),
		errors.Is(err, fsutil.ErrNotFound), errors.Is(err, fsutil.ErrPermissionDenied),
		errors.Is(err, fsutil.ErrIsDirectory), errors.Is(err, resource.ErrNotFound):
		return ExitIOError
	default:
		return ExitInternalError
	}
}
