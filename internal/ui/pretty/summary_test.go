package pretty_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/imgtext/internal/ui/pretty"
	"github.com/yaklabco/imgtext/pkg/markup"
)

func TestFormatSummaryOneLine(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	assert.Equal(t, "1 link (2 regions), 0 images on the legacy track, all resolved\n",
		styles.FormatSummaryOneLine(pretty.LayoutStats{Track: markup.TrackLegacy, Links: 1, Regions: 2}))

	assert.Equal(t, "2 links (1 region), 1 image on the current track, 1 skipped\n",
		styles.FormatSummaryOneLine(pretty.LayoutStats{Links: 2, Regions: 1, Images: 1, Skipped: 1}))
}

func TestFormatSummary(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	result := styles.FormatSummary(pretty.LayoutStats{
		Track:    markup.TrackCurrent,
		Vertices: 72,
		Glyphs:   12,
		Rows:     1,
		Columns:  15,
		Links:    1,
		Regions:  1,
	})

	assert.Contains(t, result, "Summary")
	assert.Contains(t, result, "Vertices:")
	assert.Contains(t, result, "72")
	assert.Contains(t, result, "15 x 1")
	assert.Contains(t, result, "resolved every link")
	assert.NotContains(t, result, "Skipped:")

	result = styles.FormatSummary(pretty.LayoutStats{Skipped: 2})
	assert.Contains(t, result, "Skipped:")
	assert.Contains(t, result, "skipped entities")
}
