package confloader

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/yndnr/redislight-go/internal/telemetry/logger"
)

// DefaultDebounce is how long a file must stay quiet before onChange runs.
const DefaultDebounce = 100 * time.Millisecond

// Watcher reports changes to configuration files. Bursts of events for
// one file (an editor's truncate, write and chmod) collapse into a single
// onChange call once the file has been quiet for the debounce interval.
type Watcher struct {
	fs       *fsnotify.Watcher
	onChange func(path string)
	debounce time.Duration
	log      logger.Logger

	mu      sync.Mutex
	files   map[string]struct{}
	pending map[string]*time.Timer
	closed  bool
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithWatcherLogger sets the logger for the watcher.
func WithWatcherLogger(l logger.Logger) WatcherOption {
	return func(w *Watcher) {
		w.log = l
	}
}

// WithDebounce sets the quiet interval. Zero delivers every event.
func WithDebounce(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		w.debounce = d
	}
}

// NewWatcher creates a watcher that calls onChange with the path of a
// watched file after it changes.
func NewWatcher(onChange func(path string), opts ...WatcherOption) (*Watcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		fs:       fs,
		onChange: onChange,
		debounce: DefaultDebounce,
		log:      logger.Default(),
		files:    make(map[string]struct{}),
		pending:  make(map[string]*time.Timer),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Watch adds a file. Its directory is observed so editors that replace
// the file by rename are still seen; events for other files there are
// dropped.
func (w *Watcher) Watch(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if err := w.fs.Add(filepath.Dir(abs)); err != nil {
		return err
	}

	w.mu.Lock()
	w.files[abs] = struct{}{}
	w.mu.Unlock()

	w.log.Debug("watching config file", "path", abs)
	return nil
}

// Run delivers changes until ctx is done or the watcher is closed, then
// closes the watcher.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.Close()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				w.handle(event.Name)
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("config watcher error", "error", err)
		}
	}
}

func (w *Watcher) handle(name string) {
	abs, err := filepath.Abs(name)
	if err != nil {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if _, ok := w.files[abs]; !ok || w.closed {
		return
	}

	if w.debounce <= 0 {
		go w.fire(abs)
		return
	}
	if t, ok := w.pending[abs]; ok {
		t.Reset(w.debounce)
		return
	}
	w.pending[abs] = time.AfterFunc(w.debounce, func() { w.fire(abs) })
}

func (w *Watcher) fire(path string) {
	w.mu.Lock()
	delete(w.pending, path)
	closed := w.closed
	w.mu.Unlock()
	if closed {
		return
	}

	w.log.Debug("config file changed", "path", path)
	w.onChange(path)
}

// Close stops the watcher and cancels pending notifications. It is safe
// to call more than once.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	for path, t := range w.pending {
		t.Stop()
		delete(w.pending, path)
	}
	w.mu.Unlock()

	return w.fs.Close()
}
