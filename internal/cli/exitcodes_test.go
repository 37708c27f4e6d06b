package cli_test

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/imgtext/internal/cli"
	"github.com/yaklabco/imgtext/internal/configloader"
	"github.com/yaklabco/imgtext/pkg/resource"
)

func TestExitCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: cli.ExitSuccess},
		{name: "unresolved", err: fmt.Errorf("layout: %w", cli.ErrUnresolved), want: cli.ExitUnresolved},
		{name: "invalid args", err: fmt.Errorf("%w: cell", cli.ErrInvalidArgs), want: cli.ExitInvalidUsage},
		{name: "config", err: fmt.Errorf("%w: boom", cli.ErrConfig), want: cli.ExitConfigError},
		{name: "validation", err: &configloader.ValidationError{Field: "shaper.mode"}, want: cli.ExitConfigError},
		{name: "config exists", err: configloader.ErrConfigExists, want: cli.ExitConfigError},
		{name: "missing file", err: fmt.Errorf("read: %w", fs.ErrNotExist), want: cli.ExitIOError},
		{name: "missing resource", err: resource.ErrNotFound, want: cli.ExitIOError},
		{name: "other", err: errors.New("boom"), want: cli.ExitInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, cli.ExitCode(tt.err))
		})
	}
}
