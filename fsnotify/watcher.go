// Package fsnotify implements themec.Watcher on top of fsnotify.
package fsnotify

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	fsnotifylib "github.com/fsnotify/fsnotify"
	"github.com/nyoom-engineering/themec"
)

// Compile-time interface verification.
var _ themec.Watcher = (*Watcher)(nil)

// DefaultDebounce is the quiet period after the last event before onChange runs.
const DefaultDebounce = 150 * time.Millisecond

const relevantOps = fsnotifylib.Write | fsnotifylib.Create | fsnotifylib.Rename | fsnotifylib.Remove

// Watcher watches a single file. The parent directory is watched so editors
// that replace files by rename are still observed.
type Watcher struct {
	Debounce time.Duration
	Logger   *slog.Logger
}

// NewWatcher creates a Watcher with the default debounce.
func NewWatcher(logger *slog.Logger) *Watcher {
	return &Watcher{Debounce: DefaultDebounce, Logger: logger}
}

// Watch blocks until ctx is cancelled or the underlying watcher closes.
// Errors reported by the watcher are logged and do not stop it.
func (w *Watcher) Watch(ctx context.Context, path string, onChange func(context.Context) error) error {
	logger := w.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	debounce := w.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	fw, err := fsnotifylib.NewWatcher()
	if err != nil {
		return err
	}
	defer fw.Close()

	if err := fw.Add(filepath.Dir(abs)); err != nil {
		return err
	}
	logger.Info("watching", "path", abs, "debounce", debounce)

	return loop(ctx, fw.Events, fw.Errors, abs, debounce, logger, onChange)
}

func loop(ctx context.Context, events <-chan fsnotifylib.Event, errs <-chan error, abs string, debounce time.Duration, logger *slog.Logger, onChange func(context.Context) error) error {
	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-events:
			if !ok {
				return nil
			}
			if !matches(event, abs) {
				continue
			}
			logger.Debug("change detected", "path", event.Name, "op", event.Op.String())
			timer.Reset(debounce)
		case err, ok := <-errs:
			if !ok {
				return nil
			}
			logger.Warn("watch error", "path", abs, "err", err)
		case <-timer.C:
			if err := onChange(ctx); err != nil {
				logger.Error("rebuild failed", "path", abs, "err", err)
			}
		}
	}
}

func matches(event fsnotifylib.Event, path string) bool {
	if event.Op&relevantOps == 0 {
		return false
	}
	name, err := filepath.Abs(event.Name)
	if err != nil {
		return false
	}
	return filepath.Base(name) == filepath.Base(path) && filepath.Dir(name) == filepath.Dir(path)
}
