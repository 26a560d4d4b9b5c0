package cli

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/aretw0/formation"
	"github.com/fsnotify/fsnotify"
)

// settleDelay lets editors finish writing before a reload.
const settleDelay = 100 * time.Millisecond

// WatchFile reports on the returned channel whenever path is written or
// replaced. The parent directory is watched so that editors saving through a
// rename are seen. The channel closes when ctx is done.
func WatchFile(ctx context.Context, path string, logger *slog.Logger) (<-chan string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", path, err)
	}

	ch := make(chan string, 1)
	go func() {
		defer close(ch)
		defer w.Close()

		var settle <-chan time.Time
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-w.Events:
				if !ok {
					return
				}
				name, err := filepath.Abs(event.Name)
				if err != nil || name != abs {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}
				logger.Debug("Change detected", "path", path, "op", event.Op.String())
				settle = time.After(settleDelay)
			case <-settle:
				settle = nil
				select {
				case ch <- path:
				default:
					// A reload is already pending.
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				logger.Warn("Watcher error", "err", err)
			}
		}
	}()
	return ch, nil
}

// reloadOnChange decodes path after every change and hands valid documents
// to replace. A document that fails to decode is logged and the previous
// formation stays in place.
func reloadOnChange(ctx context.Context, env *Env, path string, replace func(*formation.Formation)) error {
	changes, err := WatchFile(ctx, path, env.Logger)
	if err != nil {
		return err
	}
	go func() {
		for range changes {
			f, err := env.Load(path)
			if err != nil {
				env.Logger.Error("Reload rejected, keeping previous formation", "path", path, "err", err)
				continue
			}
			replace(f)
			env.Logger.Info("Formation reloaded", "path", path, "method", f.MethodName())
		}
	}()
	return nil
}
