package reload

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/devserve-go/devserve/core/logger"
)

// Watch blocks watching the configured directories until ctx is canceled.
// Filesystem changes are coalesced within the debounce window and then
// broadcast to all connected browsers. Missing watch directories are
// skipped with a warning rather than failing the whole watcher.
func (rl *Reloader) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("reload: creating watcher: %w", err)
	}
	defer watcher.Close()
	defer rl.hub.close()

	for _, dir := range rl.watch {
		if err := addRecursive(watcher, dir); err != nil {
			rl.log.Warn("skipping watch directory", logger.Path(dir), logger.Error(err))
		}
	}

	var debounce *time.Timer
	defer func() {
		if debounce != nil {
			debounce.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			// New subdirectories must be watched too.
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					_ = addRecursive(watcher, event.Name)
				}
			}

			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
				event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				rl.log.Debug("change detected", logger.Path(event.Name))
				if debounce != nil {
					debounce.Stop()
				}
				debounce = time.AfterFunc(rl.debounce, rl.hub.broadcast)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			rl.log.Warn("watcher error", logger.Error(err))
		}
	}
}

// addRecursive watches dir and every subdirectory beneath it.
func addRecursive(watcher *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return watcher.Add(path)
		}
		return nil
	})
}
