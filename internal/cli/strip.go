package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/imgtext/internal/logging"
	"github.com/yaklabco/imgtext/pkg/config"
)

type stripReport struct {
	Rendered         string `json:"rendered"`
	LegacyVertexSize int    `json:"legacy_vertex_count"`
}

func newStripCommand(flags *globalFlags) *cobra.Command {
	var highlight bool

	cmd := &cobra.Command{
		Use:   "strip FILE",
		Short: "Print the renderable string of a markup file",
		Long: `Remove the link tags of a markup file and wrap every link label in the
configured link color, producing the string a rich text shaper renders.

Examples:
  imgtext strip page.txt
  imgtext strip --highlight page.txt    Style tags and link labels`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStrip(cmd, flags, args[0], highlight)
		},
	}

	cmd.Flags().BoolVar(&highlight, "highlight", false, "style tags and link labels in the output")

	return cmd
}

func runStrip(cmd *cobra.Command, flags *globalFlags, path string, highlight bool) error {
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
	rendered := text.Rendered()

	if cfg.Format == config.FormatJSON {
		return out.json(stripReport{
			Rendered:         rendered,
			LegacyVertexSize: text.ExpectedLegacyVertexCount(),
		})
	}

	if highlight {
		rendered = out.styles.HighlightMarkup(rendered)
	}
	fmt.Fprintln(out.w, rendered)
	return nil
}
