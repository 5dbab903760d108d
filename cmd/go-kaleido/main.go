// Package main provides the entry point for go-kaleido, an interactive
// kaleidoscope drawing surface. Every pointer movement is drawn N times
// around the canvas center plus its mirror image. The window uses Ebiten;
// configuration may be written in Lua.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/opd-ai/go-kaleido/internal/config"
	"github.com/opd-ai/go-kaleido/pkg/kaleido"
)

// Version is the current version of go-kaleido.
// This default value can be overridden at build time using:
//
//	go build -ldflags "-X main.Version=x.y.z"
var Version = "0.1.0-dev"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("go-kaleido", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("c", "", "Path to configuration file (legacy or Lua); built-in defaults if empty")
	version := fs.Bool("v", false, "Print version and exit")
	watch := fs.Bool("watch", false, "Reload the configuration file when it changes")
	replayPath := fs.String("replay", "", "Draw a gesture script headlessly and exit")
	exportDir := fs.String("o", "", "Directory for exported images (overrides export_dir)")
	title := fs.String("title", "", "Window title (overrides title)")
	headless := fs.Bool("headless", false, "Run without a window until interrupted")
	logLevel := fs.String("log-level", "info", "Log level: debug, info, warn or error")
	logJSON := fs.Bool("log-json", false, "Write logs as JSON")
	convert := fs.String("convert", "", "Convert a legacy configuration to Lua format and print to stdout")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if *version {
		fmt.Fprintf(stdout, "go-kaleido version %s\n", Version)
		return 0
	}

	// Handle -convert for legacy config migration
	if *convert != "" {
		return runConvert(*convert, stdout, stderr)
	}

	level, err := kaleido.ParseLevel(*logLevel)
	if err != nil {
		fmt.Fprintf(stderr, "Invalid -log-level: %v\n", err)
		return 2
	}
	logger := kaleido.NewLogger(stderr, level, *logJSON)

	opts := kaleido.DefaultOptions()
	opts.Logger = logger
	opts.WatchConfig = *watch
	opts.ExportDir = *exportDir
	opts.WindowTitle = *title
	opts.Headless = *headless || *replayPath != ""

	app, err := newApp(*configPath, &opts, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Error creating kaleido instance: %v\n", err)
		return 1
	}

	app.SetErrorHandler(func(err error) {
		logger.Warn("runtime error", "error", err)
	})
	app.SetEventHandler(func(e kaleido.Event) {
		logger.Debug("event", "type", e.Type.String(), "message", e.Message)
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *replayPath != "" {
		return runReplay(ctx, app, *replayPath, stderr)
	}

	// SIGHUP reloads the configuration in place.
	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)
	go func() {
		for {
			select {
			case <-hup:
				logger.Info("received SIGHUP, reloading configuration")
				if err := app.ReloadConfig(); err != nil {
					fmt.Fprintf(stderr, "Reload failed: %v\n", err)
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	logger.Info("go-kaleido starting", "version", Version, "config", app.Status().ConfigSource)

	// Run owns the main goroutine until the window closes or a signal arrives.
	if err := app.Run(ctx); err != nil {
		fmt.Fprintf(stderr, "Run failed: %v\n", err)
		return 1
	}
	return 0
}

// newApp creates the instance from path, or from the defaults when path
// is empty.
func newApp(path string, opts *kaleido.Options, stderr io.Writer) (kaleido.App, error) {
	if path == "" {
		if opts.WatchConfig {
			fmt.Fprintln(stderr, "Warning: -watch needs a configuration file (-c)")
		}
		return kaleido.NewDefault(opts)
	}

	// Verify config file exists and is accessible
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("configuration file not found: %s", path)
		}
		return nil, fmt.Errorf("accessing configuration file %s: %w", path, err)
	}
	return kaleido.New(path, opts)
}

// runReplay draws the script at path and exits.
func runReplay(ctx context.Context, app kaleido.App, path string, stderr io.Writer) int {
	f, err := os.Open(path)
	if err != nil {
		fmt.Fprintf(stderr, "Error opening script: %v\n", err)
		return 1
	}
	defer f.Close()

	if err := app.Replay(ctx, f); err != nil {
		fmt.Fprintf(stderr, "Replay failed: %v\n", err)
		return 1
	}
	return 0
}

// runConvert converts a legacy configuration file to Lua format and
// writes it to stdout.
func runConvert(path string, stdout, stderr io.Writer) int {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			fmt.Fprintf(stderr, "Configuration file not found: %s\n", path)
		} else {
			fmt.Fprintf(stderr, "Error accessing configuration file %s: %v\n", path, err)
		}
		return 1
	}

	luaContent, err := config.MigrateLegacyFile(path)
	if err != nil {
		fmt.Fprintf(stderr, "Error converting configuration: %v\n", err)
		return 1
	}

	fmt.Fprint(stdout, string(luaContent))
	return 0
}
