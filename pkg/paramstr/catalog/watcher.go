package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.opentelemetry.io/otel/attribute"

	"github.com/randalmurphal/paramstr/pkg/paramstr/observability"
)

// ErrWatcherRunning is returned when Watch is called on a running Watcher.
var ErrWatcherRunning = errors.New("watcher already running")

// Watcher reloads a catalog whenever its definition file changes.
//
// The directory containing the file is watched, so editors that replace the
// file through a rename are handled. Bursts of events are debounced into a
// single reload. A reload that fails leaves the previous contents active.
type Watcher struct {
	catalog  *Catalog
	path     string
	watcher  *fsnotify.Watcher
	logger   *slog.Logger
	debounce *Debouncer
	interval time.Duration
	onReload func(error)

	mu       sync.Mutex
	started  bool
	stopCh   chan struct{}
	stopOnce sync.Once
	doneCh   chan struct{}
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithDebounce sets the quiet period before a reload.
//
// Default: the catalog's Defaults().WatchDebounce
func WithDebounce(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		w.interval = d
	}
}

// WithReloadHook sets a function called after every reload with its result.
func WithReloadHook(fn func(error)) WatcherOption {
	return func(w *Watcher) {
		w.onReload = fn
	}
}

// NewWatcher creates a Watcher that reloads c from path. Call Watch to start it.
func (c *Catalog) NewWatcher(path string, opts ...WatcherOption) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve watch path: %w", err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	w := &Watcher{
		catalog:  c,
		path:     abs,
		watcher:  fw,
		logger:   c.logger,
		interval: c.defaults.WatchDebounce,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.debounce = NewDebouncer(w.interval)
	return w, nil
}

// Path returns the absolute path of the watched file.
func (w *Watcher) Path() string {
	return w.path
}

// Watch blocks, reloading the catalog on changes, until ctx is cancelled or
// Stop is called. It does not load the file initially; call LoadFile first.
func (w *Watcher) Watch(ctx context.Context) error {
	w.mu.Lock()
	if w.started {
		w.mu.Unlock()
		return ErrWatcherRunning
	}
	w.started = true
	w.mu.Unlock()

	defer close(w.doneCh)
	defer w.watcher.Close()
	defer w.debounce.Stop()

	if err := w.watcher.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("failed to watch path: %w", err)
	}

	w.logger.Info("catalog watcher started",
		slog.String("path", w.path),
		slog.Int64("debounce_ms", w.interval.Milliseconds()),
	)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("catalog watcher stopped (context cancelled)")
			return nil

		case <-w.stopCh:
			w.logger.Info("catalog watcher stopped")
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return errors.New("watcher events channel closed")
			}
			if !w.shouldReload(event) {
				continue
			}

			op := event.Op.String()
			w.debounce.Trigger(func() {
				w.reload(ctx, op)
			})

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return errors.New("watcher errors channel closed")
			}
			// Keep watching; the next event may still reload.
			w.logger.Error("catalog watcher error", slog.String("error", err.Error()))
		}
	}
}

func (w *Watcher) reload(ctx context.Context, op string) {
	observability.LogCatalogReload(w.logger, w.path, op)
	w.catalog.spans.AddSpanEvent(ctx, "catalog_reload", attribute.String("op", op))

	err := w.catalog.LoadFile(ctx, w.path)
	if w.onReload != nil {
		w.onReload(err)
	}
}

// shouldReload reports whether event changed the watched file's content.
func (w *Watcher) shouldReload(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create)
}

// Stop stops a running Watch and waits for it to return. Calling Stop on a
// Watcher that was never started releases its resources.
func (w *Watcher) Stop() error {
	w.stopOnce.Do(func() {
		close(w.stopCh)
	})

	w.mu.Lock()
	started := w.started
	w.mu.Unlock()

	if started {
		<-w.doneCh
		return nil
	}
	w.debounce.Stop()
	if err := w.watcher.Close(); err != nil {
		return fmt.Errorf("failed to close watcher: %w", err)
	}
	return nil
}
