package cli_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/imgtext/internal/cli"
)

func testInfo() cli.BuildInfo {
	return cli.BuildInfo{
		Version: "test-version",
		Commit:  "test-commit",
		Date:    "test-date",
	}
}

func TestNewRootCommand(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())
	require.NotNil(t, cmd)

	assert.Equal(t, "imgtext", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)
}

func TestRootCommandHasSubcommands(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())

	for _, path := range [][]string{
		{"scan"}, {"strip"}, {"layout"}, {"preview"}, {"convert"}, {"version"},
		{"config", "show"}, {"config", "init"}, {"config", "env"},
	} {
		sub, _, err := cmd.Find(path)
		require.NoError(t, err, "subcommand %v", path)
		assert.Equal(t, path[len(path)-1], sub.Name())
	}
}

func TestGlobalFlags(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())

	for _, name := range []string{"debug", "config", "color", "format"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), "global flag %q", name)
	}
	assert.Equal(t, "text", cmd.PersistentFlags().Lookup("format").DefValue)
}

func TestCommandFlags(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())

	tests := []struct {
		path  []string
		flags []string
	}{
		{path: []string{"scan"}, flags: []string{"tags"}},
		{path: []string{"strip"}, flags: []string{"highlight"}},
		{path: []string{"layout"}, flags: []string{"mode", "max-columns", "click", "strict"}},
		{path: []string{"preview"}, flags: []string{"watch", "log-file"}},
		{path: []string{"convert"}, flags: []string{"output", "flavor"}},
		{path: []string{"config", "init"}, flags: []string{"force", "full", "format", "output"}},
	}

	for _, tt := range tests {
		sub, _, err := cmd.Find(tt.path)
		require.NoError(t, err)
		for _, name := range tt.flags {
			assert.NotNil(t, sub.Flags().Lookup(name), "%v --%s", tt.path, name)
		}
	}
}

func TestFileCommandsRequireOneArg(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())

	for _, name := range []string{"scan", "strip", "layout", "preview", "convert"} {
		sub, _, err := cmd.Find([]string{name})
		require.NoError(t, err)
		require.Error(t, sub.Args(sub, nil), name)
		require.NoError(t, sub.Args(sub, []string{"page.txt"}), name)
		require.Error(t, sub.Args(sub, []string{"a", "b"}), name)
	}
}
