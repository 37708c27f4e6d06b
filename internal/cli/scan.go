package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/imgtext/internal/logging"
	"github.com/yaklabco/imgtext/internal/ui/pretty"
	"github.com/yaklabco/imgtext/pkg/config"
	"github.com/yaklabco/imgtext/pkg/markup"
)

func newScanCommand(flags *globalFlags) *cobra.Command {
	var tags bool

	cmd := &cobra.Command{
		Use:   "scan FILE",
		Short: "List the links, images and tags of a markup file",
		Long: `Scan a markup file and list every link and inline image with its
character offsets on both the current and the legacy track.

Use "-" to read from standard input.

Examples:
  imgtext scan page.txt                 List links and images
  imgtext scan --tags page.txt          Also list every tag match
  imgtext scan --format json page.txt   Print a JSON report`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(cmd, flags, args[0], tags)
		},
	}

	cmd.Flags().BoolVar(&tags, "tags", false, "list every tag match (table format)")

	return cmd
}

func runScan(cmd *cobra.Command, flags *globalFlags, path string, tags bool) error {
	cfg, err := loadConfig(cmd, flags, path, nil)
	if err != nil {
		return err
	}

	source, err := readInput(cmd, path)
	if err != nil {
		return err
	}

	text, err := newText(cfg, logging.Component("markup"))
	if err != nil {
		return err
	}
	if err := text.SetText(source); err != nil {
		return fmt.Errorf("parse markup: %w", err)
	}

	out := newOutput(cmd, flags)
	links := text.Links()
	images := text.Images()

	switch cfg.Format {
	case config.FormatJSON:
		return out.json(scanReport{
			Source:   source,
			Rendered: text.Rendered(),
			Links:    linksJSON(links, false),
			Images:   imagesJSON(images, false, nil),
		})

	case config.FormatTable:
		if tags {
			m, err := markup.Scan(source)
			if err != nil {
				return fmt.Errorf("scan tags: %w", err)
			}
			out.table(pretty.TagTable(m))
		}
		out.table(pretty.LinkTable(links, false))
		out.table(pretty.ImageTable(images, false))
		return nil

	default:
		s := out.styles
		fmt.Fprintln(out.w, s.FormatFileHeader(path, len(links), "link"))
		for i, l := range links {
			fmt.Fprintf(out.w, "  %s %s -> %s  current %s  legacy %s\n",
				s.Dim.Render(fmt.Sprintf("#%d", i)),
				s.Link.Render(l.Label),
				s.Param.Render(l.Param),
				s.Range.Render(pretty.FormatOffsets(l.Current)),
				s.Range.Render(pretty.FormatOffsets(l.Legacy)),
			)
		}
		for i, img := range images {
			fmt.Fprintf(out.w, "  %s %s %gx%g  current %s  legacy %s\n",
				s.Dim.Render(fmt.Sprintf("img%d", i)),
				s.Image.Render(img.Path),
				img.Width, img.Height,
				s.Range.Render(pretty.FormatOffsets(img.Current)),
				s.Range.Render(pretty.FormatOffsets(img.Legacy)),
			)
		}
		return nil
	}
}
