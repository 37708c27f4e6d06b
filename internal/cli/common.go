package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yaklabco/imgtext/internal/configloader"
	"github.com/yaklabco/imgtext/internal/logging"
	"github.com/yaklabco/imgtext/internal/ui/pretty"
	"github.com/yaklabco/imgtext/pkg/config"
	"github.com/yaklabco/imgtext/pkg/fsutil"
	"github.com/yaklabco/imgtext/pkg/markup"
	"github.com/yaklabco/imgtext/pkg/mdconv"
	"github.com/yaklabco/imgtext/pkg/resource"
	"github.com/yaklabco/imgtext/pkg/shaper"
)

// stdinPath names standard input as a command argument.
const stdinPath = "-"

// commandContext returns the command's context, or a background context when
// the command runs outside Execute.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// loadConfig resolves the effective configuration for a command reading
// inputPath. Project config discovery starts in the input's directory.
func loadConfig(cmd *cobra.Command, flags *globalFlags, inputPath string, cli *config.Config) (*config.Config, error) {
	ctx := commandContext(cmd)
	logger := logging.FromContext(ctx)

	workDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}
	if inputPath != "" && inputPath != stdinPath {
		abs, err := filepath.Abs(inputPath)
		if err != nil {
			return nil, fmt.Errorf("resolve input path: %w", err)
		}
		workDir = filepath.Dir(abs)
	}

	if cli == nil {
		cli = &config.Config{}
	}
	cli.Format = config.OutputFormat(flags.format)

	result, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: flags.configPath,
		CLIConfig:    cli,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}

	for _, warning := range result.Warnings {
		logger.Warn(warning)
	}
	if len(result.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", "files", result.LoadedFrom)
	}

	return result.Config, nil
}

// readInput reads a command's input file, or standard input for "-".
func readInput(cmd *cobra.Command, path string) (string, error) {
	var (
		data []byte
		err  error
	)
	if path == stdinPath {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, _, err = fsutil.ReadFile(commandContext(cmd), path)
	}
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	return string(data), nil
}

// newText builds a markup Text configured from cfg.
func newText(cfg *config.Config, logger *log.Logger) (*markup.Text, error) {
	underline, err := configloader.ParseColor(cfg.Underline.Color)
	if err != nil {
		return nil, fmt.Errorf("%w: underline color: %w", ErrConfig, err)
	}

	profile := markup.CurrentProfile()
	profile.Spaces = config.BoolValue(cfg.Layout.CollapseWhitespace, true)
	profile.QuadSpaces = config.IntValue(cfg.Layout.QuadSpaces, markup.DefaultQuadSpaces)
	profile.LinkSpaces = config.IntValue(cfg.Layout.LinkSpaces, markup.DefaultLinkSpaces)

	width := cfg.Underline.Width
	if width <= 0 {
		width = markup.DefaultUnderlineWidth
	}

	return markup.New(
		markup.WithLinkColor(cfg.LinkColor),
		markup.WithProfile(profile),
		markup.WithUnderline(width, underline),
		markup.WithLogger(logger),
	), nil
}

// shaperOptions converts the shaper section of cfg.
func shaperOptions(cfg *config.Config) (shaper.Options, error) {
	mode, err := shaper.ParseMode(cfg.Shaper.Mode)
	if err != nil {
		return shaper.Options{}, fmt.Errorf("%w: %w", ErrConfig, err)
	}

	return shaper.Options{
		Mode:        mode,
		GlyphWidth:  cfg.Shaper.GlyphWidth,
		GlyphHeight: cfg.Shaper.GlyphHeight,
		LineHeight:  cfg.Shaper.LineHeight,
		MaxColumns:  cfg.Shaper.MaxColumns,
	}, nil
}

// newResolver returns an image cache rooted at the configured resource root,
// or at the input file's directory when none is set.
func newResolver(cfg *config.Config, inputPath string, logger *log.Logger) *resource.Cache {
	root := cfg.Resources.Root
	if root == "" {
		root = "."
		if inputPath != "" && inputPath != stdinPath {
			root = filepath.Dir(inputPath)
		}
	}

	loader := resource.NewFSLoader(os.DirFS(root))
	if len(cfg.Resources.Extensions) > 0 {
		loader.Extensions = cfg.Resources.Extensions
	}

	opts := []resource.CacheOption{resource.WithLogger(logger)}
	if cfg.Resources.CacheSize > 0 {
		opts = append(opts, resource.WithPolicy(resource.LRU(cfg.Resources.CacheSize)))
	}

	return resource.NewCache(loader, opts...)
}

// convertOptions converts the convert section of cfg.
func convertOptions(cfg *config.Config) mdconv.Options {
	opts := mdconv.DefaultOptions()
	opts.Flavor = string(cfg.Convert.Flavor)
	opts.ImageSize = cfg.Convert.ImageSize
	opts.ImageWidth = cfg.Convert.ImageWidth
	opts.ImageHeight = cfg.Convert.ImageHeight
	return opts
}

// output bundles the styles and writers a command prints with.
type output struct {
	w      io.Writer
	color  bool
	styles *pretty.Styles
	tables *pretty.TableFormatter
}

func newOutput(cmd *cobra.Command, flags *globalFlags) *output {
	w := cmd.OutOrStdout()
	color := pretty.IsColorEnabled(flags.color, w)
	styles := pretty.NewStyles(color)

	return &output{
		w:      w,
		color:  color,
		styles: styles,
		tables: pretty.NewTableFormatter(styles, color, terminalWidth(w)),
	}
}

// terminalWidth returns the width of w when it is a terminal, else zero.
func terminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok {
		return 0
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return width
}

func (o *output) table(tbl pretty.Table) {
	fmt.Fprint(o.w, o.tables.Format(tbl))
}

func (o *output) json(v any) error {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}
