package pretty

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Table formatting constants.
const (
	tablePadding     = 2
	minColumnWidth   = 4
	heavySeparator   = "="
	lightSeparator   = "-"
	defaultTermWidth = 100
	skippedSymbol    = "!"
)

// TableRow is one row of a table. Skipped rows are marked and styled as
// warnings.
type TableRow struct {
	Cells   []string
	Skipped bool
}

// Table is a titled set of rows. Group starts a new lightly separated block
// before the row at each listed index.
type Table struct {
	Title   string
	Headers []string
	Rows    []TableRow
	Groups  []int
}

// TableFormatter formats tables with column widths fitted to the terminal.
type TableFormatter struct {
	styles       *Styles
	colorEnabled bool
	termWidth    int
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(styles *Styles, colorEnabled bool, termWidth int) *TableFormatter {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	return &TableFormatter{
		styles:       styles,
		colorEnabled: colorEnabled,
		termWidth:    termWidth,
	}
}

// Format renders tbl. Tables without rows render as an empty string.
func (t *TableFormatter) Format(tbl Table) string {
	if len(tbl.Rows) == 0 {
		return ""
	}

	widths := t.columnWidths(tbl)
	groupStarts := make(map[int]bool, len(tbl.Groups))
	for _, g := range tbl.Groups {
		groupStarts[g] = true
	}

	var builder strings.Builder

	if tbl.Title != "" {
		builder.WriteString(t.styles.SummaryTitle.Render(tbl.Title))
		builder.WriteString("\n")
	}

	builder.WriteString(t.styles.TableHeader.Render(formatCells(tbl.Headers, widths, " ")))
	builder.WriteString("\n")
	builder.WriteString(t.separator(widths, heavySeparator))
	builder.WriteString("\n")

	skipped := 0
	for i, row := range tbl.Rows {
		if i > 0 && groupStarts[i] {
			builder.WriteString(t.separator(widths, lightSeparator))
			builder.WriteString("\n")
		}

		cells := make([]string, len(widths))
		for c := range widths {
			if c < len(row.Cells) {
				cells[c] = truncateString(row.Cells[c], widths[c])
			}
		}

		marker := " "
		style := lipgloss.NewStyle()
		if row.Skipped {
			marker = skippedSymbol
			style = t.styles.TableSkipped
			skipped++
		}
		builder.WriteString(style.Render(formatCells(cells, widths, marker)))
		builder.WriteString("\n")
	}

	builder.WriteString(t.separator(widths, heavySeparator))
	builder.WriteString("\n")

	if skipped > 0 {
		builder.WriteString(t.formatLegend())
		builder.WriteString("\n")
	}

	return builder.String()
}

func formatCells(cells []string, widths []int, marker string) string {
	parts := make([]string, len(widths))
	for i, w := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		parts[i] = fmt.Sprintf("%-*s", w, cell)
	}
	return marker + strings.TrimRight(strings.Join(parts, strings.Repeat(" ", tablePadding)), " ")
}

// columnWidths fits each column to its content, then shrinks the widest
// column until the table fits the terminal.
func (t *TableFormatter) columnWidths(tbl Table) []int {
	cols := len(tbl.Headers)
	for _, row := range tbl.Rows {
		cols = max(cols, len(row.Cells))
	}

	widths := make([]int, cols)
	for i := range widths {
		widths[i] = minColumnWidth
		if i < len(tbl.Headers) {
			widths[i] = max(widths[i], len(tbl.Headers[i]))
		}
	}
	for _, row := range tbl.Rows {
		for i, cell := range row.Cells {
			widths[i] = max(widths[i], len(cell))
		}
	}

	for totalWidth(widths) > t.termWidth {
		widest := 0
		for i, w := range widths {
			if w > widths[widest] {
				widest = i
			}
		}
		if widths[widest] <= minColumnWidth {
			break
		}
		widths[widest] = max(minColumnWidth, widths[widest]-(totalWidth(widths)-t.termWidth))
	}

	return widths
}

func totalWidth(widths []int) int {
	total := 1
	for _, w := range widths {
		total += w
	}
	return total + tablePadding*(len(widths)-1)
}

func (t *TableFormatter) separator(widths []int, char string) string {
	return t.styles.TableSeparator.Render(strings.Repeat(char, totalWidth(widths)))
}

func (t *TableFormatter) formatLegend() string {
	if !t.colorEnabled {
		return t.styles.TableLegend.Render(
			fmt.Sprintf(" Legend: %s = skipped (geometry index out of range)", skippedSymbol),
		)
	}

	sample := t.styles.TableSkipped.Render(" skipped ")
	return t.styles.TableLegend.Render(
		fmt.Sprintf(" Legend: %s = geometry index out of range", sample),
	)
}

// truncateString truncates a string to maxLen, adding "..." if truncated.
func truncateString(str string, maxLen int) string {
	if len(str) <= maxLen {
		return str
	}
	if maxLen <= 3 {
		return str[:maxLen]
	}
	return str[:maxLen-3] + "..."
}

// truncateFilePath truncates a file path, preserving the end (filename) rather than beginning.
func truncateFilePath(path string, maxLen int) string {
	if len(path) <= maxLen {
		return path
	}
	if maxLen <= 3 {
		return path[len(path)-maxLen:]
	}
	return "..." + path[len(path)-maxLen+3:]
}
