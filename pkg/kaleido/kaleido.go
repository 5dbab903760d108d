package kaleido

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"io/fs"

	"github.com/opd-ai/go-kaleido/internal/config"
)

// Configuration format constants for use with NewFromReader.
const (
	// FormatLegacy indicates the key/value text format.
	FormatLegacy = "legacy"
	// FormatLua indicates the Lua configuration format.
	FormatLua = "lua"
)

// App is an embedded go-kaleido instance with lifecycle control.
// It is safe for concurrent use from multiple goroutines.
type App interface {
	// Run opens the drawing window and blocks until it is closed, ctx is
	// cancelled or Stop is called. The window backend must own the main
	// goroutine, so call Run from main. With Options.Headless, Run only
	// waits for cancellation.
	// Returns ErrAlreadyRunning if the instance is already running.
	Run(ctx context.Context) error

	// Stop cancels a running instance and waits for Run to return, up to
	// Options.ShutdownTimeout. Safe to call multiple times; calls on a
	// stopped instance are no-ops.
	Stop() error

	// ReloadConfig reloads the configuration from its original source and
	// applies it in place. Style parameters and palettes take effect on the
	// next stroke; a changed background color clears the canvas.
	// On error the previous configuration remains active.
	ReloadConfig() error

	// Replay draws the gesture script read from r onto an off-screen
	// canvas sized like the configured window, writing any images the
	// script exports. It does not need a window and may run alongside Run.
	Replay(ctx context.Context, r io.Reader) error

	// IsRunning returns true if Run is active.
	IsRunning() bool

	// Status returns detailed status information about the instance.
	Status() Status

	// SetErrorHandler registers a callback for runtime errors.
	// The handler is invoked asynchronously; panics in it are recovered.
	SetErrorHandler(handler ErrorHandler)

	// SetEventHandler registers a callback for lifecycle events.
	SetEventHandler(handler EventHandler)

	// Health returns a health check result for the instance.
	Health() HealthCheck

	// Metrics returns the metrics collector for this instance.
	// Use Metrics().Snapshot() for a point-in-time copy of all metrics.
	// Use Metrics().RegisterExpvar() to expose metrics via /debug/vars.
	Metrics() *Metrics
}

// New creates an App from a configuration file on disk, in either the
// legacy or the Lua format. Only instances created with New can watch their
// configuration file (Options.WatchConfig).
//
// Example:
//
//	app, err := kaleido.New("/home/user/.config/kaleido.lua", nil)
//	if err != nil {
//		log.Fatal(err)
//	}
//	if err := app.Run(context.Background()); err != nil {
//		log.Fatal(err)
//	}
func New(configPath string, opts *Options) (App, error) {
	loader := func() (*config.Config, error) {
		p, err := config.NewParser()
		if err != nil {
			return nil, err
		}
		defer p.Close()
		return p.ParseFile(configPath)
	}
	app, err := newApp(loader, configPath, opts)
	if err != nil {
		return nil, err
	}
	app.configPath = configPath
	return app, nil
}

// NewFromFS creates an App using a configuration file from fsys, such as an
// embed.FS bundled into the binary.
//
// Example:
//
//	//go:embed configs/*
//	var configFS embed.FS
//
//	app, err := kaleido.NewFromFS(configFS, "configs/kaleido.lua", nil)
func NewFromFS(fsys fs.FS, configPath string, opts *Options) (App, error) {
	loader := func() (*config.Config, error) {
		p, err := config.NewParser()
		if err != nil {
			return nil, err
		}
		defer p.Close()
		return p.ParseFromFS(fsys, configPath)
	}
	return newApp(loader, "embedded:"+configPath, opts)
}

// NewFromReader creates an App from configuration content in r. format
// must be FormatLua or FormatLegacy. The content is read once and kept, so
// ReloadConfig re-applies the same settings.
func NewFromReader(r io.Reader, format string, opts *Options) (App, error) {
	if format != FormatLegacy && format != FormatLua {
		return nil, fmt.Errorf("invalid format: %s (expected '%s' or '%s')", format, FormatLua, FormatLegacy)
	}

	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	loader := func() (*config.Config, error) {
		p, err := config.NewParser()
		if err != nil {
			return nil, err
		}
		defer p.Close()
		return p.ParseReader(bytes.NewReader(content), format)
	}
	return newApp(loader, "reader", opts)
}

// NewDefault creates an App with the built-in default configuration.
func NewDefault(opts *Options) (App, error) {
	loader := func() (*config.Config, error) {
		cfg := config.DefaultConfig()
		return &cfg, nil
	}
	return newApp(loader, "defaults", opts)
}

// newApp loads and validates the first configuration through loader.
func newApp(loader func() (*config.Config, error), source string, opts *Options) (*appImpl, error) {
	if opts == nil {
		defaultOpts := DefaultOptions()
		opts = &defaultOpts
	}

	cfg, err := loader()
	if err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := validateConfig(cfg, opts.StrictValidation); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	metrics := opts.Metrics
	if metrics == nil {
		metrics = NewMetrics()
	}

	return &appImpl{
		cfg:          cfg,
		opts:         *opts,
		configSource: source,
		configLoader: loader,
		metrics:      metrics,
	}, nil
}

func validateConfig(cfg *config.Config, strict bool) error {
	if strict {
		return config.ValidateConfigStrict(cfg)
	}
	return config.ValidateConfig(cfg)
}
