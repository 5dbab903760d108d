package kaleido

import "time"

// DefaultShutdownTimeout is the default timeout for graceful shutdown.
// This can be overridden via Options.ShutdownTimeout.
const DefaultShutdownTimeout = 5 * time.Second

// Options configures the App behavior.
type Options struct {
	// WindowTitle overrides the window title.
	// Empty string means use the configuration file's value.
	WindowTitle string

	// Headless runs without creating a window. Run then only waits for
	// cancellation; Replay works either way.
	Headless bool

	// ExportDir overrides the configured export directory.
	ExportDir string

	// StrictValidation treats configuration warnings as errors.
	StrictValidation bool

	// ShutdownTimeout sets the maximum time Stop waits for Run to return.
	// Zero means use DefaultShutdownTimeout (5 seconds).
	ShutdownTimeout time.Duration

	// Logger sets a custom logger for debug/info messages.
	// If nil, no logging is performed.
	Logger Logger

	// Metrics sets a custom metrics collector.
	// If nil, each instance gets its own collector.
	Metrics *Metrics

	// WatchConfig enables automatic configuration hot-reloading when the
	// configuration file changes on disk. Only instances created with New
	// can watch their source.
	WatchConfig bool

	// WatchDebounce sets the debounce interval for file change events.
	// Multiple rapid file modifications within this window trigger only
	// a single reload. Zero means use the default (500ms).
	WatchDebounce time.Duration
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		ShutdownTimeout: DefaultShutdownTimeout,
		WatchDebounce:   DefaultWatchDebounce,
	}
}

// Logger interface for custom logging.
// It follows the slog-style signature for compatibility with Go's structured logging.
type Logger interface {
	// Debug logs a debug-level message with optional key-value pairs.
	Debug(msg string, args ...any)
	// Info logs an info-level message with optional key-value pairs.
	Info(msg string, args ...any)
	// Warn logs a warning-level message with optional key-value pairs.
	Warn(msg string, args ...any)
	// Error logs an error-level message with optional key-value pairs.
	Error(msg string, args ...any)
}
