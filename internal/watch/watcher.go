// Package watch re-runs a callback whenever another process writes the
// profile database.
//
// SQLite in WAL mode touches the main file, the -wal file and the -shm file.
// Any filesystem event on those files marks the database dirty; after a short
// debounce the store's write seq is compared with the last one seen and the
// callback fires only when it moved.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/roach88/shipcheck/internal/store"
)

// DefaultDebounce batches the burst of events a single commit produces.
const DefaultDebounce = 150 * time.Millisecond

// OnChange is called with the new write seq.
type OnChange func(ctx context.Context, seq int64) error

// Watcher watches one database file.
type Watcher struct {
	path     string
	log      store.Log
	onChange OnChange
	logger   *slog.Logger
	debounce time.Duration
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce overrides DefaultDebounce.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) { w.debounce = d }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(w *Watcher) { w.logger = l }
}

// New creates a watcher for the database at path, reading seq from log.
func New(path string, log store.Log, onChange OnChange, opts ...Option) *Watcher {
	w := &Watcher{
		path:     path,
		log:      log,
		onChange: onChange,
		logger:   slog.Default(),
		debounce: DefaultDebounce,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run blocks until ctx is cancelled or the watcher fails. A callback error
// stops the loop and is returned.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fsw.Close()

	dir := filepath.Dir(w.path)
	if err := fsw.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	last, err := w.log.LastSeq(ctx)
	if err != nil {
		return err
	}
	w.logger.Info("watching database", "path", w.path, "seq", last)

	ticker := time.NewTicker(w.debounce)
	defer ticker.Stop()
	dirty := false

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("watcher stopping: context cancelled")
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if w.relevant(event) {
				w.logger.Debug("database event", "op", event.Op.String(), "file", event.Name)
				dirty = true
			}

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watcher error", "error", err)

		case <-ticker.C:
			if !dirty {
				continue
			}
			dirty = false

			seq, err := w.log.LastSeq(ctx)
			if err != nil {
				return err
			}
			if seq == last {
				continue
			}
			if err := w.onChange(ctx, seq); err != nil {
				return err
			}
			// The callback may write too (a proof page load persists the
			// status); absorb those writes so they do not re-trigger it.
			if last, err = w.log.LastSeq(ctx); err != nil {
				return err
			}
		}
	}
}

// relevant reports whether event touches the database or its WAL/SHM files.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename|fsnotify.Remove) == 0 {
		return false
	}
	base := filepath.Base(w.path)
	name := filepath.Base(event.Name)
	return name == base || strings.HasPrefix(name, base+"-")
}
