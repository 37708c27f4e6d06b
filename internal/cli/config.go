package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/yaklabco/imgtext/internal/configloader"
	"github.com/yaklabco/imgtext/internal/logging"
	"github.com/yaklabco/imgtext/internal/ui/pretty"
	"github.com/yaklabco/imgtext/pkg/config"
)

func newConfigCommand(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show, create and document configuration",
		Long: `Configuration is layered, later sources winning:

  /etc/imgtext/config.yaml
  $XDG_CONFIG_HOME/imgtext/config.yaml
  .imgtext.yml (searched upward from the input file, stopping at the repository root)
  --config FILE
  IMGTEXT_* environment variables
  command-line flags`,
	}

	cmd.AddCommand(newConfigShowCommand(flags))
	cmd.AddCommand(newConfigInitCommand())
	cmd.AddCommand(newConfigEnvCommand(flags))

	return cmd
}

func newConfigShowCommand(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "show [FILE]",
		Short: "Print the effective configuration",
		Long: `Print the configuration every command would use. With FILE, project
config discovery starts in the file's directory.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}

			cfg, err := loadConfig(cmd, flags, path, nil)
			if err != nil {
				return err
			}

			content, err := cfg.ToYAML()
			if err != nil {
				return fmt.Errorf("encode config: %w", err)
			}

			out := newOutput(cmd, flags)
			if cfg.Format == config.FormatJSON {
				var doc map[string]any
				if err := yaml.Unmarshal(content, &doc); err != nil {
					return fmt.Errorf("decode config: %w", err)
				}
				return out.json(doc)
			}

			fmt.Fprint(out.w, string(content))
			return nil
		},
	}
}

type initFlags struct {
	force  bool
	full   bool
	format string
	output string
}

func newConfigInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a configuration file",
		Long: `Create a new .imgtext.yml configuration file in the current directory.

Examples:
  imgtext config init                     Create a minimal .imgtext.yml
  imgtext config init --full              Uncomment every setting
  imgtext config init --format json       Create .imgtext.json instead
  imgtext config init -o custom.yml       Write to a custom path`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigInit(cmd, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "overwrite an existing file without asking")
	cmd.Flags().BoolVar(&flags.full, "full", false, "uncomment every setting")
	cmd.Flags().StringVar(&flags.format, "format", "yaml", "file format: yaml or json")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "",
		"output file path (default: .imgtext.yml or .imgtext.json)")

	return cmd
}

func runConfigInit(cmd *cobra.Command, flags *initFlags) error {
	logger := logging.NewInteractive()

	if flags.format != "yaml" && flags.format != "json" {
		return fmt.Errorf("%w: format %q (want yaml or json)", ErrInvalidArgs, flags.format)
	}

	outputPath := flags.output
	if outputPath == "" {
		outputPath = configloader.DefaultProjectFile
		if flags.format == "json" {
			outputPath = ".imgtext.json"
		}
	}

	absPath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	opts := configloader.InitOptions{
		Template: config.TemplateOptions{Full: flags.full, Format: flags.format},
		Force:    flags.force,
		Out:      cmd.ErrOrStderr(),
	}
	// A redirected command input answers the overwrite prompt; otherwise
	// the prompt only appears on a terminal.
	if in := cmd.InOrStdin(); in != os.Stdin {
		opts.In = in
	}

	if err := configloader.WriteTemplate(absPath, opts); err != nil {
		return err
	}

	logger.Info("created configuration file", logging.FieldPath, outputPath)
	return nil
}

func newConfigEnvCommand(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "env",
		Short: "List supported environment variables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			vars := configloader.ListEnvVars()
			out := newOutput(cmd, flags)

			if config.OutputFormat(flags.format) == config.FormatJSON {
				return out.json(vars)
			}

			tbl := pretty.Table{
				Title:   "Environment",
				Headers: []string{"VARIABLE", "SETTING", "DESCRIPTION"},
			}
			for _, v := range vars {
				tbl.Rows = append(tbl.Rows, pretty.TableRow{Cells: []string{v.Name, v.Field, v.Description}})
			}
			out.table(tbl)
			return nil
		},
	}
}
