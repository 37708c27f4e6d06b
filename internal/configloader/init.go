package configloader

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/yaklabco/imgtext/pkg/config"
	"github.com/yaklabco/imgtext/pkg/fsutil"
)

// configFilePermissions is the file mode for configuration files (world-readable).
const configFilePermissions = 0644

// DefaultProjectFile is the file name `config init` writes.
const DefaultProjectFile = ".imgtext.yml"

// ErrConfigExists is returned when the target file exists and overwriting was
// neither forced nor confirmed.
var ErrConfigExists = errors.New("config file already exists")

// InitOptions controls WriteTemplate.
type InitOptions struct {
	Template config.TemplateOptions

	// Force overwrites an existing file without asking.
	Force bool

	// NonInteractive disables the overwrite prompt.
	NonInteractive bool

	// Prompt reads the overwrite answer; defaults to stdin and stdout.
	In  io.Reader
	Out io.Writer
}

// WriteTemplate writes a configuration template to path. An existing file is
// only replaced with Force or after the user confirms on a terminal.
func WriteTemplate(path string, opts InitOptions) error {
	content, err := config.GenerateTemplate(opts.Template)
	if err != nil {
		return fmt.Errorf("generate template: %w", err)
	}

	if fileExists(path) && !opts.Force {
		if opts.NonInteractive || (opts.In == nil && !isInteractive()) {
			return fmt.Errorf("%w: %s (use --force to overwrite)", ErrConfigExists, path)
		}

		ok, err := promptOverwrite(path, opts.In, opts.Out)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: %s", ErrConfigExists, path)
		}
	}

	if err := fsutil.WriteAtomic(context.Background(), path, content, configFilePermissions); err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	return nil
}

// promptOverwrite asks the user whether to replace path.
func promptOverwrite(path string, in io.Reader, out io.Writer) (bool, error) {
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}

	if _, err := fmt.Fprintf(out, "%s already exists. Overwrite? [y/N] ", path); err != nil {
		return false, fmt.Errorf("write prompt: %w", err)
	}

	response, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("read response: %w", err)
	}

	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes", nil
}

// isInteractive returns true if stdin is a terminal.
func isInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}
