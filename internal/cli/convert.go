package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/imgtext/internal/logging"
	"github.com/yaklabco/imgtext/pkg/config"
	"github.com/yaklabco/imgtext/pkg/fsutil"
	"github.com/yaklabco/imgtext/pkg/mdconv"
)

// outputFilePermissions is the file mode of converted output files.
const outputFilePermissions = 0o644

type convertFlags struct {
	output string
	flavor string
}

func newConvertCommand(flags *globalFlags) *cobra.Command {
	cf := &convertFlags{}

	cmd := &cobra.Command{
		Use:   "convert FILE.md",
		Short: "Convert Markdown into imgtext markup",
		Long: `Convert a Markdown document into imgtext markup: links become url tags,
images become inline quad tags, and emphasis and headings map to the bold,
italic and size tags.

Examples:
  imgtext convert README.md
  imgtext convert --flavor gfm -o page.txt README.md`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, flags, cf, args[0])
		},
	}

	cmd.Flags().StringVarP(&cf.output, "output", "o", "", "write markup to this file instead of stdout")
	cmd.Flags().StringVar(&cf.flavor, "flavor", "", "Markdown flavor: commonmark, gfm (default from config)")

	return cmd
}

func runConvert(cmd *cobra.Command, flags *globalFlags, cf *convertFlags, path string) error {
	cli := &config.Config{}
	if cmd.Flags().Changed("flavor") {
		cli.Convert.Flavor = config.Flavor(cf.flavor)
	}

	cfg, err := loadConfig(cmd, flags, path, cli)
	if err != nil {
		return err
	}

	src, err := readInput(cmd, path)
	if err != nil {
		return err
	}

	ctx := commandContext(cmd)
	markup, err := mdconv.Convert(ctx, []byte(src), convertOptions(cfg))
	if err != nil {
		return fmt.Errorf("convert: %w", err)
	}

	if cf.output == "" {
		fmt.Fprintln(cmd.OutOrStdout(), markup)
		return nil
	}

	written, err := fsutil.WriteAtomicIfChanged(ctx, cf.output, []byte(markup+"\n"), outputFilePermissions)
	if err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	logging.FromContext(ctx).Debug("converted",
		logging.FieldInput, path,
		logging.FieldOutput, cf.output,
		"unchanged", !written,
	)
	return nil
}
