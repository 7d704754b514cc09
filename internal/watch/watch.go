// Package watch reparses Leo sources whenever they change on disk.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/zkcircuit/leoparse/internal/cli"
	"github.com/zkcircuit/leoparse/internal/driver"
)

// DefaultDebounce is how long a file must stay quiet before it is parsed.
const DefaultDebounce = 100 * time.Millisecond

// Handler receives the result of every reparse.
type Handler func(*driver.Result)

// Watcher follows .leo files and directories with fsnotify.
type Watcher struct {
	fs       *fsnotify.Watcher
	driver   *driver.Driver
	logger   *cli.Logger
	handle   Handler
	debounce time.Duration

	mu      sync.Mutex
	pending map[string]*time.Timer
	ready   chan string

	done      chan struct{}
	closeOnce sync.Once
	closeErr  error
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce overrides DefaultDebounce.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) { w.debounce = d }
}

// WithLogger sets the logger used for watch events and errors.
func WithLogger(l *cli.Logger) Option {
	return func(w *Watcher) { w.logger = l }
}

// New creates a watcher that parses changed files with drv and hands the
// results to handle.
func New(drv *driver.Driver, handle Handler, opts ...Option) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	w := &Watcher{
		fs:       fsw,
		driver:   drv,
		logger:   cli.NewLogger(false, false),
		handle:   handle,
		debounce: DefaultDebounce,
		pending:  make(map[string]*time.Timer),
		ready:    make(chan string, 64),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Add starts watching a file or a directory.
func (w *Watcher) Add(path string) error {
	if err := w.fs.Add(path); err != nil {
		return fmt.Errorf("failed to watch %s: %w", path, err)
	}
	w.logger.Debug("watching %s", path)
	return nil
}

// Run processes file events until ctx is done, then closes the watcher.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.Close()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if relevant(ev) {
				w.schedule(ev.Name)
			}

		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("watch: %v", err)

		case path := <-w.ready:
			w.mu.Lock()
			delete(w.pending, path)
			w.mu.Unlock()
			w.logger.Info("reparsing %s", path)
			w.handle(w.driver.ParseFile(path))
		}
	}
}

// Close stops the watcher. It may be called more than once and from any
// goroutine; a running Run returns once the fsnotify channels close.
func (w *Watcher) Close() error {
	w.closeOnce.Do(func() {
		close(w.done)
		w.mu.Lock()
		for path, t := range w.pending {
			t.Stop()
			delete(w.pending, path)
		}
		w.mu.Unlock()
		w.closeErr = w.fs.Close()
	})
	return w.closeErr
}

// schedule (re)arms the debounce timer for path.
func (w *Watcher) schedule(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	select {
	case <-w.done:
		return
	default:
	}
	if t, ok := w.pending[path]; ok {
		t.Reset(w.debounce)
		return
	}
	w.pending[path] = time.AfterFunc(w.debounce, func() {
		select {
		case w.ready <- path:
		case <-w.done:
		}
	})
}

// relevant reports whether ev is a write or create of a .leo file.
func relevant(ev fsnotify.Event) bool {
	if filepath.Ext(ev.Name) != ".leo" {
		return false
	}
	return ev.Op&(fsnotify.Write|fsnotify.Create) != 0
}
