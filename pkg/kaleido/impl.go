package kaleido

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/opd-ai/go-kaleido/internal/config"
	"github.com/opd-ai/go-kaleido/internal/kaleido"
	"github.com/opd-ai/go-kaleido/internal/replay"
)

// appImpl is the private implementation of the App interface.
type appImpl struct {
	// Configuration
	cfg          *config.Config
	opts         Options
	configSource string
	configPath   string // empty unless created with New
	configLoader func() (*config.Config, error)

	// Components
	controls   *kaleido.Controls
	gameRunner *gameRunner
	watcher    *configWatcher
	metrics    *Metrics

	// State
	running   atomic.Bool
	startTime time.Time
	lastError atomic.Value // stores errorBox

	// Handlers
	errorHandler ErrorHandler
	eventHandler EventHandler

	// Synchronization
	mu     sync.RWMutex
	cancel context.CancelFunc
	done   chan struct{}
}

// errorBox keeps the dynamic type stored in lastError constant.
type errorBox struct{ err error }

// Verify interface implementation at compile time.
var _ App = (*appImpl)(nil)

// Run opens the window, or waits for cancellation in headless mode.
func (a *appImpl) Run(ctx context.Context) error {
	a.mu.Lock()
	if a.running.Load() {
		a.mu.Unlock()
		return ErrAlreadyRunning
	}
	if !a.opts.Headless && !windowAvailable {
		a.mu.Unlock()
		return ErrWindowUnavailable
	}

	runCtx, cancel := context.WithCancel(ctx)
	a.cancel = cancel
	a.done = make(chan struct{})
	a.initComponents()

	// Set running state before releasing the lock so Stop sees it.
	a.running.Store(true)
	a.startTime = time.Now()
	a.mu.Unlock()

	a.metrics.IncrementStarts()
	a.metrics.SetRunning(true)
	a.startWatcher()

	a.logger().Info("instance started", "source", a.configSource, "headless", a.opts.Headless)
	a.emitEvent(EventStarted, "Instance started")

	defer a.finishRun(cancel)

	if a.opts.Headless {
		<-runCtx.Done()
		return nil
	}
	return a.runRenderLoop(runCtx)
}

// finishRun releases everything Run acquired.
func (a *appImpl) finishRun(cancel context.CancelFunc) {
	cancel()
	a.stopWatcher()

	a.mu.Lock()
	a.gameRunner = nil
	done := a.done
	a.mu.Unlock()

	a.running.Store(false)
	a.metrics.SetRunning(false)
	a.metrics.IncrementStops()
	a.logger().Info("instance stopped", a.metrics.Snapshot().LogArgs()...)
	close(done)

	a.emitEvent(EventStopped, "Instance stopped")
}

// Stop cancels Run and waits for it to return.
func (a *appImpl) Stop() error {
	if !a.running.Load() {
		return nil
	}

	a.mu.RLock()
	cancel := a.cancel
	done := a.done
	a.mu.RUnlock()

	if cancel != nil {
		cancel()
	}

	timeout := a.opts.ShutdownTimeout
	if timeout <= 0 {
		timeout = DefaultShutdownTimeout
	}

	select {
	case <-done:
		return nil
	case <-time.After(timeout):
		err := NewCategorizedError(
			fmt.Errorf("shutdown timeout after %v: render loop did not stop", timeout),
			ErrorCategoryRender, SeverityCritical)
		a.notifyError(err)
		return err
	}
}

// ReloadConfig reloads the configuration and applies it to the live
// components, if any.
func (a *appImpl) ReloadConfig() error {
	if err := a.reload(); err != nil {
		a.notifyError(err)
		return err
	}
	return nil
}

// reload is ReloadConfig without error notification; the watcher reports
// its errors through its own callback.
func (a *appImpl) reload() error {
	if a.configLoader == nil {
		return NewCategorizedError(fmt.Errorf("no config loader available"), ErrorCategoryConfig, SeverityError)
	}

	newCfg, err := a.configLoader()
	if err == nil {
		err = validateConfig(newCfg, a.opts.StrictValidation)
	}
	if err != nil {
		return NewCategorizedError(fmt.Errorf("config reload failed: %w", err), ErrorCategoryConfig, SeverityWarning).
			WithContext("source", a.configSource)
	}

	a.mu.Lock()
	a.cfg = newCfg
	controls := a.controls
	gr := a.gameRunner
	a.mu.Unlock()

	if controls != nil {
		controls.SetParams(newCfg.Drawing.Params())
		controls.SetPalettes(newCfg.Palette.Stroke, newCfg.Palette.Background)
	}
	if gr != nil {
		a.applyConfigToGame(gr, newCfg)
	}

	a.metrics.IncrementConfigReloads()
	a.logger().Info("configuration reloaded", "source", a.configSource)
	a.emitEvent(EventConfigReloaded, "Configuration reloaded in-place")
	return nil
}

// Replay runs a gesture script against a private off-screen canvas.
func (a *appImpl) Replay(ctx context.Context, r io.Reader) error {
	steps, err := replay.Parse(r)
	if err != nil {
		cerr := NewCategorizedError(fmt.Errorf("replay: %w", err), ErrorCategoryScript, SeverityError)
		a.notifyError(cerr)
		return cerr
	}

	a.mu.RLock()
	cfg := a.cfg.Clone()
	a.mu.RUnlock()

	controls := kaleido.NewControls(cfg.Drawing.Params(), cfg.Palette.Stroke, cfg.Palette.Background)
	renderer := kaleido.NewRenderer(controls)
	renderer.SetEventHandler(a.rendererEvents())
	renderer.Resize(cfg.Window.Width, cfg.Window.Height)

	exportDir := cfg.Export.Dir
	if a.opts.ExportDir != "" {
		exportDir = a.opts.ExportDir
	}

	start := time.Now()
	err = replay.Run(ctx, steps, replay.Target{
		Canvas:     renderer,
		Params:     controls,
		ExportDir:  exportDir,
		ExportName: cfg.Export.Name,
		OnExport: func(path string) {
			a.logger().Info("image exported", "path", path)
			a.emitEvent(EventExported, path)
		},
	})
	if err != nil {
		category := ErrorCategoryScript
		if ctx.Err() != nil {
			category = ErrorCategoryUnknown
		} else if errors.Is(err, replay.ErrExport) {
			category = ErrorCategoryIO
			a.metrics.IncrementExportErrors()
		}
		cerr := NewCategorizedError(fmt.Errorf("replay: %w", err), category, SeverityError)
		a.notifyError(cerr)
		return cerr
	}

	elapsed := time.Since(start)
	a.metrics.RecordReplay(elapsed)
	a.logger().Info("replay finished", "steps", len(steps), "elapsed", elapsed)
	a.emitEvent(EventReplayFinished, fmt.Sprintf("%d steps in %v", len(steps), elapsed))
	return nil
}

// IsRunning returns true if Run is active.
func (a *appImpl) IsRunning() bool {
	return a.running.Load()
}

// Status returns detailed status information about the instance.
func (a *appImpl) Status() Status {
	a.mu.RLock()
	startTime := a.startTime
	configSource := a.configSource
	a.mu.RUnlock()

	return Status{
		Running:      a.running.Load(),
		StartTime:    startTime,
		Strokes:      a.metrics.Snapshot().Strokes,
		LastError:    a.getError(),
		ConfigSource: configSource,
	}
}

// SetErrorHandler registers a callback for runtime errors.
func (a *appImpl) SetErrorHandler(handler ErrorHandler) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.errorHandler = handler
}

// SetEventHandler registers a callback for lifecycle events.
func (a *appImpl) SetEventHandler(handler EventHandler) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.eventHandler = handler
}

// Metrics returns the metrics collector for this instance.
func (a *appImpl) Metrics() *Metrics {
	return a.metrics
}

// initComponents creates the parameter controls for a run. Callers hold a.mu.
func (a *appImpl) initComponents() {
	a.controls = kaleido.NewControls(a.cfg.Drawing.Params(), a.cfg.Palette.Stroke, a.cfg.Palette.Background)
}

// newRenderer creates a renderer reading from the run's controls and
// reporting to the metrics collector.
func (a *appImpl) newRenderer() *kaleido.Renderer {
	a.mu.RLock()
	controls := a.controls
	a.mu.RUnlock()

	r := kaleido.NewRenderer(controls)
	r.SetEventHandler(a.rendererEvents())
	return r
}

// rendererEvents translates renderer events into metrics and debug logs.
func (a *appImpl) rendererEvents() kaleido.EventHandler {
	log := a.logger()
	return func(e kaleido.Event) {
		switch e.Kind {
		case kaleido.EventStrokeBegin:
			a.metrics.IncrementStrokes()
			log.Debug("stroke begin", "session", e.Session, "x", e.From.X, "y", e.From.Y)
		case kaleido.EventReplicate:
			a.metrics.RecordReplication(len(e.Segments))
		case kaleido.EventStrokeEnd:
			log.Debug("stroke end", "session", e.Session)
		case kaleido.EventClear:
			a.metrics.IncrementClears()
			log.Debug("canvas cleared")
		case kaleido.EventResize:
			a.metrics.RecordResize(e.Width, e.Height)
			log.Debug("canvas resized", "width", e.Width, "height", e.Height)
		case kaleido.EventExport:
			a.metrics.RecordExport(e.Bytes)
			log.Debug("png encoded", "bytes", e.Bytes, "width", e.Width, "height", e.Height)
		}
	}
}

// startWatcher starts the file watcher when enabled and possible.
func (a *appImpl) startWatcher() {
	if !a.opts.WatchConfig {
		return
	}
	if a.configPath == "" {
		a.logger().Warn("config watching needs a file source", "source", a.configSource)
		return
	}

	w, err := newConfigWatcher(a.configPath, a.opts.WatchDebounce, a.reload, a.watchError)
	if err != nil {
		a.notifyError(NewCategorizedError(fmt.Errorf("watch config: %w", err), ErrorCategoryIO, SeverityWarning))
		return
	}
	w.Start()

	a.mu.Lock()
	a.watcher = w
	a.mu.Unlock()
	a.logger().Debug("watching config", "path", a.configPath)
}

func (a *appImpl) stopWatcher() {
	a.mu.Lock()
	w := a.watcher
	a.watcher = nil
	a.mu.Unlock()
	if w != nil {
		w.Stop()
	}
}

// watchError reports reload and fsnotify failures.
func (a *appImpl) watchError(err error) {
	if CategoryOf(err) == ErrorCategoryUnknown {
		err = NewCategorizedError(fmt.Errorf("watch config: %w", err), ErrorCategoryIO, SeverityWarning)
	}
	a.notifyError(err)
}

// logger returns the configured logger or a discarding one.
func (a *appImpl) logger() Logger {
	if a.opts.Logger != nil {
		return a.opts.Logger
	}
	return NopLogger()
}

// getError retrieves the last error.
func (a *appImpl) getError() error {
	if v, ok := a.lastError.Load().(errorBox); ok {
		return v.err
	}
	return nil
}

// notifyError stores an error and invokes the error handler if registered.
func (a *appImpl) notifyError(err error) {
	a.lastError.Store(errorBox{err: err})
	a.metrics.IncrementErrors()

	a.mu.RLock()
	handler := a.errorHandler
	a.mu.RUnlock()
	logger := a.logger()

	logger.Error("runtime error", "category", CategoryOf(err).String(), "error", err)

	if handler != nil {
		go func() {
			defer func() {
				if r := recover(); r != nil {
					logger.Error("error handler panicked", "panic", r, "original_error", err)
				}
			}()
			handler(err)
		}()
	}

	a.emitEvent(EventError, err.Error())
}

// emitEvent sends an event to the event handler if configured.
func (a *appImpl) emitEvent(eventType EventType, message string) {
	a.metrics.IncrementEventsEmitted()

	a.mu.RLock()
	handler := a.eventHandler
	a.mu.RUnlock()

	if handler == nil {
		return
	}
	event := Event{
		Type:      eventType,
		Timestamp: time.Now(),
		Message:   message,
	}
	go func() {
		defer func() {
			if r := recover(); r != nil {
				a.mu.RLock()
				errHandler := a.errorHandler
				a.mu.RUnlock()
				if errHandler != nil {
					if err, ok := r.(error); ok {
						errHandler(fmt.Errorf("panic in event handler: %w", err))
					} else {
						errHandler(fmt.Errorf("panic in event handler: %v", r))
					}
				}
			}
		}()
		handler(event)
	}()
}
