package pretty_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/imgtext/internal/ui/pretty"
)

func TestTableFormatter_Format(t *testing.T) {
	t.Parallel()

	f := pretty.NewTableFormatter(pretty.NewStyles(false), false, 0)
	out := f.Format(pretty.Table{
		Headers: []string{"A", "BB"},
		Rows:    []pretty.TableRow{{Cells: []string{"x", "yyyyyy"}}},
	})

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, " A     BB", lines[0])
	assert.Equal(t, strings.Repeat("=", 13), lines[1])
	assert.Equal(t, " x     yyyyyy", lines[2])
	assert.Equal(t, strings.Repeat("=", 13), lines[3])
}

func TestTableFormatter_Empty(t *testing.T) {
	t.Parallel()

	f := pretty.NewTableFormatter(pretty.NewStyles(false), false, 80)
	assert.Empty(t, f.Format(pretty.Table{Headers: []string{"A"}}))
}

func TestTableFormatter_SkippedAndGroups(t *testing.T) {
	t.Parallel()

	f := pretty.NewTableFormatter(pretty.NewStyles(false), false, 80)
	out := f.Format(pretty.Table{
		Title:   "Links",
		Headers: []string{"#", "LABEL"},
		Rows: []pretty.TableRow{
			{Cells: []string{"0", "one"}},
			{Cells: []string{"1", "two"}, Skipped: true},
		},
		Groups: []int{0, 1},
	})

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 8)
	assert.Equal(t, "Links", lines[0])
	assert.True(t, strings.HasPrefix(lines[4], "---"), "group separator expected, got %q", lines[4])
	assert.True(t, strings.HasPrefix(lines[5], "!1"), "skipped marker expected, got %q", lines[5])
	assert.Contains(t, lines[7], "Legend")
}

func TestTableFormatter_FitsTerminal(t *testing.T) {
	t.Parallel()

	f := pretty.NewTableFormatter(pretty.NewStyles(false), false, 30)
	out := f.Format(pretty.Table{
		Headers: []string{"ID", "TEXT"},
		Rows:    []pretty.TableRow{{Cells: []string{"1", strings.Repeat("w", 60)}}},
	})

	for _, line := range strings.Split(strings.TrimRight(out, "\n"), "\n") {
		assert.LessOrEqual(t, len(line), 30, line)
	}
	assert.Contains(t, out, "...")
}
