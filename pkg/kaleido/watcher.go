package kaleido

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultWatchDebounce is the default debounce interval for file watch events.
const DefaultWatchDebounce = 500 * time.Millisecond

// configWatcher calls onReload after the configuration file changed and
// then stayed quiet for the debounce interval.
type configWatcher struct {
	fsw      *fsnotify.Watcher
	target   string // cleaned absolute path of the watched file
	debounce time.Duration
	onReload func() error
	onError  func(error)

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// newConfigWatcher watches the directory containing path, so a save that
// replaces the file by rename is still seen. Errors from onReload and from
// fsnotify are passed to onError, which may be nil.
func newConfigWatcher(path string, debounce time.Duration, onReload func() error, onError func(error)) (*configWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, err
	}
	if debounce <= 0 {
		debounce = DefaultWatchDebounce
	}
	return &configWatcher{
		fsw:      fsw,
		target:   filepath.Clean(abs),
		debounce: debounce,
		onReload: onReload,
		onError:  onError,
	}, nil
}

// Start launches the event loop. Calling Start on a started watcher does
// nothing.
func (cw *configWatcher) Start() {
	cw.mu.Lock()
	defer cw.mu.Unlock()
	if cw.cancel != nil {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	cw.cancel = cancel
	cw.done = make(chan struct{})
	go cw.loop(ctx)
}

// Stop ends the event loop, waits for it and releases the fsnotify handle.
func (cw *configWatcher) Stop() {
	cw.mu.Lock()
	cancel, done := cw.cancel, cw.done
	cw.mu.Unlock()

	if cancel == nil {
		cw.fsw.Close()
		return
	}
	cancel()
	<-done
}

// relevant reports whether e changes the watched file's content.
func (cw *configWatcher) relevant(e fsnotify.Event) bool {
	if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) && !e.Has(fsnotify.Rename) {
		return false
	}
	name, err := filepath.Abs(e.Name)
	if err != nil {
		return false
	}
	return filepath.Clean(name) == cw.target
}

func (cw *configWatcher) loop(ctx context.Context) {
	defer close(cw.done)
	defer cw.fsw.Close()

	// The timer exists but is stopped until the first relevant event.
	timer := time.NewTimer(cw.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case e, ok := <-cw.fsw.Events:
			if !ok {
				return
			}
			if cw.relevant(e) {
				timer.Reset(cw.debounce)
			}

		case <-timer.C:
			if cw.onReload == nil {
				continue
			}
			if err := cw.onReload(); err != nil {
				cw.report(err)
			}

		case err, ok := <-cw.fsw.Errors:
			if !ok {
				return
			}
			cw.report(err)
		}
	}
}

func (cw *configWatcher) report(err error) {
	if cw.onError != nil {
		cw.onError(err)
	}
}
