package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/imgtext/pkg/markup"
)

const summaryDividerWidth = 40

// LayoutStats describes one layout pass.
type LayoutStats struct {
	Track    markup.Track
	Vertices int
	Glyphs   int
	Rows     int
	Columns  int
	Links    int
	Regions  int
	Images   int
	Skipped  int
}

// FormatSummaryOneLine formats layout statistics as a single line.
// Example: "2 links (3 regions), 1 image on the legacy track, 1 skipped".
func (s *Styles) FormatSummaryOneLine(stats LayoutStats) string {
	parts := []string{
		fmt.Sprintf("%d %s (%d %s)", stats.Links, plural(stats.Links, "link"), stats.Regions, plural(stats.Regions, "region")),
		fmt.Sprintf("%d %s on the %s track", stats.Images, plural(stats.Images, "image"), stats.Track),
	}

	if stats.Skipped > 0 {
		parts = append(parts, s.Warning.Render(fmt.Sprintf("%d skipped", stats.Skipped)))
	} else {
		parts = append(parts, s.Success.Render("all resolved"))
	}

	return strings.Join(parts, ", ") + "\n"
}

// FormatSummary formats layout statistics as a summary block.
func (s *Styles) FormatSummary(stats LayoutStats) string {
	var builder strings.Builder

	line := func(label string, value string) {
		builder.WriteString(fmt.Sprintf("  %-18s %s\n", label+":", value))
	}

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	line("Track", s.SummaryValue.Render(stats.Track.String()))
	line("Vertices", s.SummaryValue.Render(strconv.Itoa(stats.Vertices)))
	line("Glyphs", s.SummaryValue.Render(strconv.Itoa(stats.Glyphs)))
	line("Grid", s.SummaryValue.Render(fmt.Sprintf("%d x %d", stats.Columns, stats.Rows)))
	line("Links", s.SummaryValue.Render(strconv.Itoa(stats.Links)))
	line("Regions", s.SummaryValue.Render(strconv.Itoa(stats.Regions)))
	line("Images", s.SummaryValue.Render(strconv.Itoa(stats.Images)))
	if stats.Skipped > 0 {
		line("Skipped", s.Failure.Render(strconv.Itoa(stats.Skipped)))
	}

	builder.WriteString("\n")
	if stats.Skipped > 0 {
		builder.WriteString(s.Warning.Render("Layout completed with skipped entities"))
	} else {
		builder.WriteString(s.Success.Render("Layout resolved every link and image"))
	}
	builder.WriteString("\n")

	return builder.String()
}
