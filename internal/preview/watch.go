package preview

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"

	"github.com/yaklabco/imgtext/internal/logging"
	"github.com/yaklabco/imgtext/pkg/fsutil"
)

// ReloadFunc receives the new contents of a watched file, or the error
// reading it.
type ReloadFunc func(source string, err error)

// Watch calls reload whenever path is written, created or renamed into place,
// until ctx is done. It watches the parent directory so editors that replace
// the file atomically are followed.
func Watch(ctx context.Context, path string, reload ReloadFunc, logger *log.Logger) error {
	if logger == nil {
		logger = logging.Component("watch")
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	// Editors often emit several events per save; only changed content
	// triggers a reload.
	_, last, _ := fsutil.ReadFile(ctx, abs)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			logger.Debug("file changed", logging.FieldPath, abs, "op", event.Op.String())
			content, info, err := fsutil.ReadFile(ctx, abs)
			if err != nil {
				if errors.Is(err, fsutil.ErrNotFound) {
					continue
				}
				reload("", err)
				continue
			}
			if info.SameContent(last) {
				continue
			}
			last = info
			reload(string(content), nil)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", logging.FieldError, err)
		}
	}
}
