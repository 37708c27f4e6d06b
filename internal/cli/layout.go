package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/imgtext/internal/logging"
	"github.com/yaklabco/imgtext/internal/ui/pretty"
	"github.com/yaklabco/imgtext/pkg/config"
	"github.com/yaklabco/imgtext/pkg/markup"
	"github.com/yaklabco/imgtext/pkg/shaper"
)

type layoutFlags struct {
	mode       string
	maxColumns int
	click      string
	strict     bool
}

func newLayoutCommand(flags *globalFlags) *cobra.Command {
	lf := &layoutFlags{}

	cmd := &cobra.Command{
		Use:   "layout FILE",
		Short: "Shape a markup file and print link regions and image anchors",
		Long: `Shape a markup file on the monospace grid, feed the geometry back to the
markup model and print the click regions of every link and the anchor of
every inline image.

--click COL,ROW dispatches a click at the centre of a grid cell and prints
the links it fires.

Examples:
  imgtext layout page.txt
  imgtext layout --mode legacy page.txt
  imgtext layout --max-columns 20 --click 3,1 page.txt
  imgtext layout --strict page.txt      Fail when anything is unresolved`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLayout(cmd, flags, lf, args[0])
		},
	}

	cmd.Flags().StringVar(&lf.mode, "mode", "", "shaper mode: current, legacy (default from config)")
	cmd.Flags().IntVar(&lf.maxColumns, "max-columns", 0, "wrap lines at this many columns")
	cmd.Flags().StringVar(&lf.click, "click", "", "dispatch a click at grid cell COL,ROW")
	cmd.Flags().BoolVar(&lf.strict, "strict", false, "exit non-zero when a link or image is unresolved")

	return cmd
}

// parseCell parses "COL,ROW".
func parseCell(s string) (col, row int, err error) {
	colStr, rowStr, ok := strings.Cut(s, ",")
	if !ok {
		return 0, 0, fmt.Errorf("%w: cell %q (want COL,ROW)", ErrInvalidArgs, s)
	}
	col, err = strconv.Atoi(strings.TrimSpace(colStr))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: cell column %q", ErrInvalidArgs, colStr)
	}
	row, err = strconv.Atoi(strings.TrimSpace(rowStr))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: cell row %q", ErrInvalidArgs, rowStr)
	}
	if col < 0 || row < 0 {
		return 0, 0, fmt.Errorf("%w: cell %q is negative", ErrInvalidArgs, s)
	}
	return col, row, nil
}

//nolint:cyclop,funlen // Straight-line command flow.
func runLayout(cmd *cobra.Command, flags *globalFlags, lf *layoutFlags, path string) error {
	cli := &config.Config{}
	if cmd.Flags().Changed("mode") {
		if _, err := shaper.ParseMode(lf.mode); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidArgs, err)
		}
		cli.Shaper.Mode = strings.ToLower(lf.mode)
	}
	if cmd.Flags().Changed("max-columns") {
		if lf.maxColumns < 0 {
			return fmt.Errorf("%w: --max-columns must not be negative", ErrInvalidArgs)
		}
		cli.Shaper.MaxColumns = lf.maxColumns
	}

	var click *clickJSON
	if lf.click != "" {
		col, row, err := parseCell(lf.click)
		if err != nil {
			return err
		}
		click = &clickJSON{Col: col, Row: row, Hits: []int{}, Fired: []string{}}
	}

	cfg, err := loadConfig(cmd, flags, path, cli)
	if err != nil {
		return err
	}

	source, err := readInput(cmd, path)
	if err != nil {
		return err
	}

	markupLogger := logging.Component("markup")
	text, err := newText(cfg, markupLogger)
	if err != nil {
		return err
	}
	if err := text.SetText(source); err != nil {
		return fmt.Errorf("parse markup: %w", err)
	}

	opts, err := shaperOptions(cfg)
	if err != nil {
		return err
	}

	layout, err := shaper.Shape(text.Rendered(), opts)
	if err != nil {
		return fmt.Errorf("shape: %w", err)
	}
	result := text.Populate(layout.Vertices)

	images := text.Images()
	cache := newResolver(cfg, path, logging.Component("resource"))
	loaded := make([]bool, len(images))
	missing := 0
	for i, img := range images {
		if _, ok := cache.Get(img.Path); ok {
			loaded[i] = true
		} else {
			missing++
		}
	}

	if click != nil {
		for i := range text.Links() {
			if _, err := text.AddClickLinkEvent(i, func(param string) {
				click.Fired = append(click.Fired, param)
			}); err != nil {
				return fmt.Errorf("attach click handler: %w", err)
			}
		}
		p := opts.CellCenter(click.Col, click.Row)
		click.Hits = append(click.Hits, text.HitTest(p)...)
		text.Click(p)
	}

	out := newOutput(cmd, flags)
	links := text.Links()

	switch cfg.Format {
	case config.FormatJSON:
		report := newLayoutReport(text, layout, opts, result, loaded)
		report.Click = click
		if err := out.json(report); err != nil {
			return err
		}

	case config.FormatTable:
		out.table(pretty.LinkTable(links, true))
		out.table(pretty.ImageTable(images, true))
		fmt.Fprint(out.w, out.styles.FormatSummary(layoutStats(layout, result, links, images)))
		printClick(out, click)

	default:
		s := out.styles
		for i, l := range links {
			for _, r := range l.Regions {
				fmt.Fprintf(out.w, "%s %s %s %s\n",
					s.Dim.Render(fmt.Sprintf("link %d", i)),
					s.Link.Render(l.Label),
					s.Range.Render(pretty.FormatIndexRange(l.Range)),
					pretty.FormatBox(r),
				)
			}
			if !l.Resolved {
				fmt.Fprintf(out.w, "%s %s %s\n", s.Dim.Render(fmt.Sprintf("link %d", i)),
					s.Link.Render(l.Label), s.Warning.Render("skipped"))
			}
		}
		for i, img := range images {
			where := s.Warning.Render("skipped")
			if img.Resolved {
				where = pretty.FormatPoint(img.Anchor)
			}
			state := ""
			if !loaded[i] {
				state = " " + s.Failure.Render("missing")
			}
			fmt.Fprintf(out.w, "%s %s %s%s\n",
				s.Dim.Render(fmt.Sprintf("image %d", i)), s.Image.Render(img.Path), where, state)
		}
		fmt.Fprint(out.w, s.FormatSummaryOneLine(layoutStats(layout, result, links, images)))
		printClick(out, click)
	}

	if lf.strict && (result.Skipped > 0 || missing > 0) {
		return fmt.Errorf("%w: %d skipped, %d images missing", ErrUnresolved, result.Skipped, missing)
	}
	return nil
}

func layoutStats(layout *shaper.Layout, result markup.PopulateResult,
	links []markup.LinkSpan, images []markup.ImageMarker,
) pretty.LayoutStats {
	stats := pretty.LayoutStats{
		Track:    result.Track,
		Vertices: len(layout.Vertices),
		Glyphs:   len(layout.Glyphs),
		Rows:     layout.Rows,
		Columns:  layout.Columns,
		Links:    len(links),
		Images:   len(images),
		Skipped:  result.Skipped,
	}
	for _, l := range links {
		stats.Regions += len(l.Regions)
	}
	return stats
}

func printClick(out *output, click *clickJSON) {
	if click == nil {
		return
	}
	if len(click.Fired) == 0 {
		fmt.Fprintf(out.w, "click %d,%d: no link\n", click.Col, click.Row)
		return
	}
	for _, param := range click.Fired {
		fmt.Fprintf(out.w, "click %d,%d: %s\n", click.Col, click.Row, out.styles.Param.Render(param))
	}
}
