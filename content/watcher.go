package content

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/gabrielmiguelok/healthpredictor/pkg/logging"
)

// ErrNoFile is returned when watching a provider that serves embedded content.
var ErrNoFile = errors.New("content provider has no file to watch")

// Watcher reloads a Provider when its file changes on disk. The parent
// directory is watched so editors that replace the file are handled.
type Watcher struct {
	provider *Provider
	logger   logging.Logger
	watcher  *fsnotify.Watcher
	file     string
	debounce time.Duration
	onReload func(*Site)

	stopCh  chan struct{}
	doneCh  chan struct{}
	running bool
	mu      sync.Mutex
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithDebounce sets how long writes must settle before reloading.
func WithDebounce(d time.Duration) WatcherOption {
	return func(w *Watcher) { w.debounce = d }
}

// WithOnReload registers a callback run after every successful reload.
func WithOnReload(fn func(*Site)) WatcherOption {
	return func(w *Watcher) { w.onReload = fn }
}

// NewWatcher prepares a watcher for p's file.
func NewWatcher(p *Provider, logger logging.Logger, opts ...WatcherOption) (*Watcher, error) {
	if p.Path() == "" {
		return nil, ErrNoFile
	}
	abs, err := filepath.Abs(p.Path())
	if err != nil {
		return nil, err
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logging.NopLogger{}
	}

	w := &Watcher{
		provider: p,
		logger:   logger.With(logging.String("component", "content-watcher")),
		watcher:  fw,
		file:     abs,
		debounce: 200 * time.Millisecond,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Start begins watching. It does not block.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return nil
	}
	if err := w.watcher.Add(filepath.Dir(w.file)); err != nil {
		return err
	}
	w.running = true
	go w.run(ctx)
	w.logger.Info("watching site content", logging.String("path", w.file))
	return nil
}

// Stop ends the watch loop and releases the OS watcher.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	running := w.running
	w.running = false
	w.mu.Unlock()

	if running {
		close(w.stopCh)
		<-w.doneCh
	}
	return w.watcher.Close()
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return

		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.file {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("content watcher error", logging.Err(err))

		case <-fire:
			fire = nil
			w.reload()
		}
	}
}

func (w *Watcher) reload() {
	if err := w.provider.Reload(); err != nil {
		w.logger.Warn("site content reload failed, keeping previous copy", logging.Err(err))
		return
	}
	w.logger.Info("site content reloaded")
	if w.onReload != nil {
		w.onReload(w.provider.Site())
	}
}
