package config

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"organix/internal/logging"
)

// Watch reloads path whenever it is written or replaced and sends the new
// configuration on out. The directory is watched rather than the file so
// atomic renames are seen. Watch returns once the watcher is installed; the
// watching goroutine stops when ctx is done.
func Watch(ctx context.Context, path string, out chan<- Config) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("config: watcher: %w", err)
	}
	dir := filepath.Dir(path)
	if err := w.Add(dir); err != nil {
		w.Close()
		return fmt.Errorf("config: watch %s: %w", dir, err)
	}

	target := filepath.Clean(path)
	go func() {
		defer w.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != target {
					continue
				}
				if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
					continue
				}
				cfg, err := Load(path)
				if err != nil {
					logging.L().Warn("config reload failed", "path", path, "err", err)
					continue
				}
				logging.L().Debug("config reloaded", "path", path)
				select {
				case out <- cfg:
				case <-ctx.Done():
					return
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				logging.L().Warn("config watcher error", "err", err)
			}
		}
	}()
	return nil
}
