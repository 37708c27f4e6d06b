package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"cogentcore.org/core/math32"
	"github.com/charmbracelet/lipgloss"

	"github.com/yaklabco/imgtext/pkg/markup"
)

type spanClass int

const (
	classPlain spanClass = iota
	classTag
	classLink
	classImage
)

// HighlightMarkup styles the tag markers of text: formatting and link tags
// are dimmed, link labels are underlined and quad tags are tinted. Text that
// fails to scan is returned unchanged.
func (s *Styles) HighlightMarkup(text string) string {
	m, err := markup.Scan(text)
	if err != nil {
		return text
	}

	runes := []rune(text)
	classes := make([]spanClass, len(runes))
	mark := func(g markup.Group, c spanClass) {
		for i := g.Index; i < g.End() && i < len(runes); i++ {
			classes[i] = c
		}
	}

	for _, f := range m.Formatting {
		mark(f.Open, classTag)
		mark(f.Close, classTag)
	}
	for _, q := range m.Quads {
		mark(q.Whole, classImage)
	}
	for _, l := range m.Links {
		mark(l.Open, classTag)
		mark(l.Content, classLink)
		mark(l.Close, classTag)
	}

	var builder strings.Builder
	start := 0
	for i := 1; i <= len(runes); i++ {
		if i < len(runes) && classes[i] == classes[start] {
			continue
		}
		builder.WriteString(s.classStyle(classes[start]).Render(string(runes[start:i])))
		start = i
	}

	return builder.String()
}

func (s *Styles) classStyle(c spanClass) lipgloss.Style {
	switch c {
	case classTag:
		return s.Tag
	case classLink:
		return s.Link
	case classImage:
		return s.Image
	default:
		return lipgloss.NewStyle()
	}
}

// FormatFileHeader formats a file header for grouped output.
func (s *Styles) FormatFileHeader(path string, count int, noun string) string {
	header := s.FilePath.Render(truncateFilePath(path, defaultTermWidth))
	if count > 0 {
		header += s.Dim.Render(fmt.Sprintf(" (%d %s)", count, plural(count, noun)))
	}
	return header
}

// FormatSourceContext formats a line with a caret under column (1-based).
func (s *Styles) FormatSourceContext(line string, column int) string {
	var builder strings.Builder

	const indent = "    "

	builder.WriteString(indent + line + "\n")
	if column > 0 {
		builder.WriteString(indent + strings.Repeat(" ", column-1) + s.Caret.Render("^") + "\n")
	}

	return builder.String()
}

func plural(n int, noun string) string {
	if n == 1 {
		return noun
	}
	return noun + "s"
}

// FormatOffsets formats an inclusive character range.
func FormatOffsets(o markup.Offsets) string {
	return fmt.Sprintf("%d..%d", o.Start, o.End)
}

// FormatIndexRange formats an inclusive geometry range.
func FormatIndexRange(r markup.IndexRange) string {
	return fmt.Sprintf("[%d,%d]", r.Start, r.End)
}

// FormatBox formats a rectangle as min-max corners.
func FormatBox(b math32.Box2) string {
	return fmt.Sprintf("(%s,%s)-(%s,%s)", num(b.Min.X), num(b.Min.Y), num(b.Max.X), num(b.Max.Y))
}

// FormatPoint formats a point.
func FormatPoint(p math32.Vector2) string {
	return fmt.Sprintf("(%s,%s)", num(p.X), num(p.Y))
}

func num(f float32) string {
	return strconv.FormatFloat(float64(f), 'f', -1, 32)
}

// LinkTable lists links with their offsets on both tracks. With layout set
// it adds the chosen geometry range and one row per region.
func LinkTable(links []markup.LinkSpan, layout bool) Table {
	tbl := Table{
		Title:   "Links",
		Headers: []string{"#", "LABEL", "PARAM", "CURRENT", "LEGACY"},
	}
	if layout {
		tbl.Headers = append(tbl.Headers, "RANGE", "REGION")
	}

	for i, link := range links {
		tbl.Groups = append(tbl.Groups, len(tbl.Rows))
		row := []string{
			strconv.Itoa(i),
			link.Label,
			link.Param,
			FormatOffsets(link.Current),
			FormatOffsets(link.Legacy),
		}
		if !layout {
			tbl.Rows = append(tbl.Rows, TableRow{Cells: row})
			continue
		}

		row = append(row, FormatIndexRange(link.Range))
		if !link.Resolved || len(link.Regions) == 0 {
			tbl.Rows = append(tbl.Rows, TableRow{Cells: append(row, "-"), Skipped: !link.Resolved})
			continue
		}
		for r, box := range link.Regions {
			if r > 0 {
				row = make([]string, len(tbl.Headers)-1)
			}
			tbl.Rows = append(tbl.Rows, TableRow{Cells: append(row, FormatBox(box))})
		}
	}

	return tbl
}

// ImageTable lists inline images. With layout set it adds the chosen
// geometry range and the anchor point.
func ImageTable(images []markup.ImageMarker, layout bool) Table {
	tbl := Table{
		Title:   "Images",
		Headers: []string{"#", "PATH", "SIZE", "CURRENT", "LEGACY"},
	}
	if layout {
		tbl.Headers = append(tbl.Headers, "RANGE", "ANCHOR")
	}

	for i, img := range images {
		row := []string{
			strconv.Itoa(i),
			img.Path,
			num(img.Width) + "x" + num(img.Height),
			strconv.Itoa(img.Current.Start),
			strconv.Itoa(img.Legacy.Start),
		}
		if layout {
			anchor := "-"
			if img.Resolved {
				anchor = FormatPoint(img.Anchor)
			}
			row = append(row, FormatIndexRange(img.Range), anchor)
		}
		tbl.Rows = append(tbl.Rows, TableRow{Cells: row, Skipped: layout && !img.Resolved})
	}

	return tbl
}

// TagTable lists every tag found in a scanned string.
func TagTable(m *markup.Matches) Table {
	tbl := Table{
		Title:   "Tags",
		Headers: []string{"KIND", "AT", "LEN", "CONTENT"},
	}

	add := func(tm markup.TagMatch, content string) {
		tbl.Rows = append(tbl.Rows, TableRow{Cells: []string{
			tm.Kind.String(),
			strconv.Itoa(tm.Whole.Index),
			strconv.Itoa(tm.Whole.Length),
			content,
		}})
	}

	for _, f := range m.Formatting {
		add(f, fmt.Sprintf("%d chars", f.Content.Length))
	}
	for _, l := range m.Links {
		add(l.TagMatch, l.Label+" -> "+l.Param)
	}
	for _, img := range m.Images {
		add(img.TagMatch, img.Path)
	}
	for _, q := range m.Quads {
		add(q, "")
	}
	for _, sp := range m.Spaces {
		add(sp, "")
	}

	return tbl
}
