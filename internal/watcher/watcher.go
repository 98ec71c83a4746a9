// Package watcher reloads the retrieval engine when the knowledge-base
// file changes on disk.
package watcher

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce coalesces rapid editor events (write + rename + chmod)
// into one reload.
const DefaultDebounce = 200 * time.Millisecond

// Options configures the watcher.
type Options struct {
	// Debounce is the quiet period before OnChange fires. Defaults to
	// DefaultDebounce when zero.
	Debounce time.Duration

	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// Watcher watches a single knowledge-base file and invokes a callback
// after changes settle. The parent directory is watched rather than the
// file itself, because editors typically replace files via rename.
type Watcher struct {
	path     string
	debounce time.Duration
	onChange func()
	logger   *slog.Logger
	fsw      *fsnotify.Watcher
}

// New creates a watcher for path. onChange runs on the watcher goroutine;
// it must not block for long.
func New(path string, onChange func(), opts Options) (*Watcher, error) {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		_ = fsw.Close()
		return nil, err
	}

	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		_ = fsw.Close()
		return nil, err
	}

	return &Watcher{
		path:     abs,
		debounce: opts.Debounce,
		onChange: onChange,
		logger:   opts.Logger,
		fsw:      fsw,
	}, nil
}

// Run processes events until the context is cancelled. It returns the
// context error on cancellation and nil when the event stream closes.
func (w *Watcher) Run(ctx context.Context) error {
	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if !w.matches(event) {
				continue
			}
			w.logger.Debug("knowledge_base_event",
				slog.String("op", event.Op.String()),
				slog.String("path", event.Name))

			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watcher_error", slog.String("error", err.Error()))

		case <-fire:
			fire = nil
			w.logger.Info("knowledge_base_changed", slog.String("path", w.path))
			w.onChange()
		}
	}
}

// Close stops the underlying filesystem watcher.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}

// matches reports whether the event concerns the watched file with an
// operation that changes its content.
func (w *Watcher) matches(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}
	return event.Op.Has(fsnotify.Write) ||
		event.Op.Has(fsnotify.Create) ||
		event.Op.Has(fsnotify.Rename)
}
