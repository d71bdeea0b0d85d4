package tagraph

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/poiesic/tagraph/corpus"
)

// DefaultDebounce is how long a corpus file must stay quiet before a reload.
const DefaultDebounce = 500 * time.Millisecond

const reloadChannelBuffer = 8

// ReloadEvent reports the outcome of one corpus reload.
type ReloadEvent struct {
	Path  string
	Index *Index // nil when Err is set
	Err   error
}

// CorpusWatcher rebuilds an engine's index whenever its corpus file changes.
// A failed reload leaves the published index untouched.
type CorpusWatcher struct {
	engine   *Engine
	path     string
	debounce time.Duration
	watcher  *fsnotify.Watcher

	mu        sync.Mutex
	dirty     bool
	lastEvent time.Time

	reloads chan ReloadEvent
	started atomic.Bool
	done    chan struct{}

	droppedEvents atomic.Int64
}

// WatchOption configures a CorpusWatcher.
type WatchOption func(*CorpusWatcher)

// WithDebounce sets the quiet period before a reload. Default is DefaultDebounce.
func WithDebounce(d time.Duration) WatchOption {
	return func(w *CorpusWatcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WatchCorpus creates a watcher that rebuilds e from the corpus at path.
// Call Start to begin watching.
func (e *Engine) WatchCorpus(path string, opts ...WatchOption) (*CorpusWatcher, error) {
	return NewCorpusWatcher(e, path, opts...)
}

// NewCorpusWatcher creates a corpus watcher for engine.
func NewCorpusWatcher(engine *Engine, path string, opts ...WatchOption) (*CorpusWatcher, error) {
	if engine == nil {
		return nil, ErrEngineRequired
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &CorpusWatcher{
		engine:   engine,
		path:     abs,
		debounce: DefaultDebounce,
		watcher:  fsw,
		reloads:  make(chan ReloadEvent, reloadChannelBuffer),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Reloads returns the channel of reload outcomes.
// Events are dropped when the channel is full.
func (w *CorpusWatcher) Reloads() <-chan ReloadEvent {
	return w.reloads
}

// DroppedEvents returns how many reload events were dropped.
func (w *CorpusWatcher) DroppedEvents() int64 {
	return w.droppedEvents.Load()
}

// Start begins watching the corpus file. The directory is watched so that
// editors replacing the file are seen too.
func (w *CorpusWatcher) Start(ctx context.Context) error {
	dir := filepath.Dir(w.path)
	if _, err := os.Stat(dir); err != nil {
		return err
	}
	if err := w.watcher.Add(dir); err != nil {
		return err
	}

	w.started.Store(true)
	go w.processEvents(ctx)

	w.engine.logger.Info("corpus watcher started",
		"path", w.path,
		"debounce", w.debounce)
	return nil
}

// Stop stops the watcher and waits for the event loop to exit.
func (w *CorpusWatcher) Stop() error {
	err := w.watcher.Close()
	if w.started.Load() {
		<-w.done
	}
	return err
}

// processEvents handles fsnotify events with debouncing.
func (w *CorpusWatcher) processEvents(ctx context.Context) {
	defer close(w.done)
	defer close(w.reloads)

	ticker := time.NewTicker(max(w.debounce/4, time.Millisecond))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleFSEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.engine.logger.Error("corpus watcher error", "err", err)

		case <-ticker.C:
			if w.due() {
				w.reload(ctx)
			}
		}
	}
}

func (w *CorpusWatcher) handleFSEvent(event fsnotify.Event) {
	if filepath.Clean(event.Name) != w.path {
		return
	}
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return
	}

	w.mu.Lock()
	w.dirty = true
	w.lastEvent = time.Now()
	w.mu.Unlock()

	w.engine.logger.Debug("corpus change detected", "path", w.path, "op", event.Op.String())
}

// due reports whether a change is pending and the file has been quiet for
// the debounce period, and clears the pending flag if so.
func (w *CorpusWatcher) due() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.dirty || time.Since(w.lastEvent) < w.debounce {
		return false
	}
	w.dirty = false
	return true
}

func (w *CorpusWatcher) reload(ctx context.Context) {
	event := ReloadEvent{Path: w.path}

	items, err := corpus.Load(w.path)
	if err == nil {
		event.Index, err = w.engine.Build(ctx, items)
	}
	if err != nil {
		event.Err = err
		w.engine.logger.Warn("corpus reload failed, keeping current index", "path", w.path, "err", err)
	}

	select {
	case w.reloads <- event:
	default:
		w.droppedEvents.Add(1)
	}
}
