// Package cli provides the Cobra command structure for imgtext.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/imgtext/internal/logging"
	"github.com/yaklabco/imgtext/pkg/config"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// globalFlags are the persistent flags every subcommand reads.
type globalFlags struct {
	debug      bool
	configPath string
	color      string
	format     string
}

// NewRootCommand creates the root imgtext command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "imgtext",
		Short: "Inspect, lay out and preview rich text markup with clickable links and inline images",
		Long: `imgtext works with rich text markup that carries clickable links and
inline images:

  Go to <url param=baidu.com>Baidu</url> <quad img=icons/star size=16 width=1 height=1/>

It strips the link tags into renderable text, remaps every link and image
onto the glyph geometry of a shaped layout, builds click regions, and hosts
the result in an interactive terminal preview.`,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			if flags.debug {
				logging.SetLevel("debug")
			}
			if !config.OutputFormat(flags.format).IsValid() {
				return fmt.Errorf("%w: format %q (want text, table or json)", ErrInvalidArgs, flags.format)
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVar(&flags.debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&flags.color, "color", "auto",
		"colorize output: auto, always, never")
	rootCmd.PersistentFlags().StringVar(&flags.format, "format", string(config.FormatText),
		"output format: text, table, json")

	rootCmd.AddCommand(newScanCommand(flags))
	rootCmd.AddCommand(newStripCommand(flags))
	rootCmd.AddCommand(newLayoutCommand(flags))
	rootCmd.AddCommand(newPreviewCommand(flags))
	rootCmd.AddCommand(newConvertCommand(flags))
	rootCmd.AddCommand(newConfigCommand(flags))
	rootCmd.AddCommand(newVersionCommand(info))

	helpFormatter := NewHelpFormatter(flags.color, os.Stdout)
	helpFormatter.ApplyToCommand(rootCmd)

	return rootCmd
}
