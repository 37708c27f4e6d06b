package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/yaklabco/imgtext/internal/logging"
	"github.com/yaklabco/imgtext/internal/preview"
)

// logFilePermissions is the file mode of the preview log file.
const logFilePermissions = 0o600

type previewFlags struct {
	watch   bool
	logFile string
}

func newPreviewCommand(flags *globalFlags) *cobra.Command {
	pf := &previewFlags{}

	cmd := &cobra.Command{
		Use:   "preview FILE",
		Short: "Open a markup file in an interactive terminal preview",
		Long: `Render a markup file in the terminal with underlined links and inline
image cells. Click a link to fire it; the followed links are printed when
the preview closes.

Keys:
  m           toggle the current and legacy shaper modes
  q, Esc      quit

Examples:
  imgtext preview page.txt
  imgtext preview --watch page.txt      Reload whenever the file changes`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPreview(cmd, flags, pf, args[0])
		},
	}

	cmd.Flags().BoolVarP(&pf.watch, "watch", "w", false, "reload when the file changes")
	cmd.Flags().StringVar(&pf.logFile, "log-file", "", "write logs to this file while the preview runs")

	return cmd
}

// previewLogger returns the logger used while the screen is active; the
// terminal belongs to tcell, so records go to a file or nowhere.
func previewLogger(path string, debug bool) (*log.Logger, func(), error) {
	if path == "" {
		return logging.Discard(), func() {}, nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePermissions)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	logger := log.NewWithOptions(f, log.Options{ReportTimestamp: true})
	if debug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger, func() { _ = f.Close() }, nil
}

func runPreview(cmd *cobra.Command, flags *globalFlags, pf *previewFlags, path string) error {
	if path == stdinPath {
		return fmt.Errorf("%w: preview needs a file, not standard input", ErrInvalidArgs)
	}

	cfg, err := loadConfig(cmd, flags, path, nil)
	if err != nil {
		return err
	}

	source, err := readInput(cmd, path)
	if err != nil {
		return err
	}

	logger, closeLog, err := previewLogger(pf.logFile, flags.debug)
	if err != nil {
		return err
	}
	defer closeLog()

	text, err := newText(cfg, logger.WithPrefix("markup"))
	if err != nil {
		return err
	}
	opts, err := shaperOptions(cfg)
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init terminal: %w", err)
	}

	var followed []string
	host := preview.New(screen, text, preview.Options{
		Shaper:   opts,
		Resolver: newResolver(cfg, path, logger.WithPrefix("resource")),
		OnClick: func(_ int, param string) {
			followed = append(followed, param)
		},
		Logger: logger.WithPrefix("preview"),
	})

	if err := host.Load(source); err != nil {
		screen.Fini()
		return fmt.Errorf("load markup: %w", err)
	}

	ctx, cancel := context.WithCancel(commandContext(cmd))
	defer cancel()

	if pf.watch {
		go func() {
			if err := preview.Watch(ctx, path, host.Reload, logger.WithPrefix("watch")); err != nil {
				logger.Error("watch failed", logging.FieldPath, path, logging.FieldError, err)
			}
		}()
	}

	runErr := host.Run(ctx)
	screen.Fini()
	if runErr != nil {
		return fmt.Errorf("run preview: %w", runErr)
	}

	out := cmd.OutOrStdout()
	for _, param := range followed {
		fmt.Fprintln(out, param)
	}
	return nil
}
