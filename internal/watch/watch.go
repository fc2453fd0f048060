// Package watch re-renders the page when its manifest file changes.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher calls a reload function after the watched file is written.
// Bursts of events within the debounce window trigger a single reload.
type Watcher struct {
	path     string
	debounce time.Duration
	reload   func() error
	log      *slog.Logger

	fsw    *fsnotify.Watcher
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates a watcher for path. The parent directory is watched, since
// editors often replace files instead of writing them in place.
func New(path string, debounce time.Duration, reload func() error, log *slog.Logger) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %q: %w", path, err)
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch dir %q: %w", filepath.Dir(abs), err)
	}
	return &Watcher{
		path:     abs,
		debounce: debounce,
		reload:   reload,
		log:      log,
		fsw:      fsw,
	}, nil
}

// Start launches the event loop.
func (w *Watcher) Start(ctx context.Context) {
	watchCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		var timer *time.Timer
		defer func() {
			if timer != nil {
				timer.Stop()
			}
		}()
		for {
			select {
			case <-watchCtx.Done():
				return
			case event, ok := <-w.fsw.Events:
				if !ok {
					return
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
					continue
				}
				if abs, _ := filepath.Abs(event.Name); abs != w.path {
					continue
				}
				if timer != nil {
					timer.Stop()
				}
				timer = time.AfterFunc(w.debounce, w.fire)
			case err, ok := <-w.fsw.Errors:
				if !ok {
					return
				}
				w.log.Error("manifest watcher error", "error", err)
			}
		}
	}()

	w.log.Info("watching manifest", "path", w.path)
}

func (w *Watcher) fire() {
	if err := w.reload(); err != nil {
		w.log.Error("manifest reload failed, keeping previous page", "path", w.path, "error", err)
		return
	}
	w.log.Info("manifest reloaded", "path", w.path)
}

// Stop ends the event loop and releases the underlying watcher.
func (w *Watcher) Stop() {
	if w.cancel != nil {
		w.cancel()
	}
	w.fsw.Close()
	w.wg.Wait()
}
