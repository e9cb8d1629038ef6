package watcher

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce batches rapid saves into one reload
const DefaultDebounce = 300 * time.Millisecond

// Watcher calls OnChange once a burst of filesystem events under its
// directories has settled
type Watcher struct {
	dirs     []string
	debounce time.Duration
	onChange func(ctx context.Context) error
	logger   *zap.Logger
}

// New creates a watcher over dirs. Directories that do not exist are skipped.
func New(dirs []string, debounce time.Duration, onChange func(ctx context.Context) error, logger *zap.Logger) *Watcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Watcher{dirs: dirs, debounce: debounce, onChange: onChange, logger: logger}
}

// Run watches until ctx is cancelled. OnChange errors are logged and
// watching continues.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer fw.Close()

	for _, dir := range w.dirs {
		if _, err := os.Stat(dir); err != nil {
			w.logger.Debug("not watching missing directory", zap.String("dir", dir))
			continue
		}
		if err := w.addTree(fw, dir); err != nil {
			return err
		}
	}

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()
	pending := false

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !relevant(event) {
				continue
			}
			w.logger.Debug("change detected", zap.String("path", event.Name), zap.String("op", event.Op.String()))

			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := w.addTree(fw, event.Name); err != nil {
						w.logger.Warn("failed to watch new directory", zap.String("dir", event.Name), zap.Error(err))
					}
				}
			}

			if pending && !timer.Stop() {
				<-timer.C
			}
			timer.Reset(w.debounce)
			pending = true

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watcher error", zap.Error(err))

		case <-timer.C:
			pending = false
			if err := w.onChange(ctx); err != nil {
				w.logger.Error("reload failed, keeping previous content", zap.Error(err))
				continue
			}
			w.logger.Info("content reloaded")
		}
	}
}

// addTree watches root and every non-hidden directory below it
func (w *Watcher) addTree(fw *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if err := fw.Add(path); err != nil {
			return fmt.Errorf("failed to watch %s: %w", path, err)
		}
		return nil
	})
}

// relevant drops chmod-only events and editor swap files
func relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}
	base := filepath.Base(event.Name)
	return !strings.HasPrefix(base, ".") && !strings.HasSuffix(base, "~")
}
