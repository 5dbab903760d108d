//go:build !noebiten

package kaleido

import (
	"context"
	"errors"
	"fmt"

	"github.com/opd-ai/go-kaleido/internal/config"
	"github.com/opd-ai/go-kaleido/internal/render"
)

// windowAvailable reports whether this build can open a window.
const windowAvailable = true

// gameRunner holds the window of a running instance for hot reload.
type gameRunner struct {
	game *render.Game
}

// renderConfig derives the window settings from cfg, with opts overrides.
func renderConfig(cfg *config.Config, opts Options) render.Config {
	rc := render.DefaultConfig()
	if cfg.Window.Width > 0 {
		rc.Width = cfg.Window.Width
	}
	if cfg.Window.Height > 0 {
		rc.Height = cfg.Window.Height
	}
	if cfg.Window.Title != "" {
		rc.Title = cfg.Window.Title
	}
	if opts.WindowTitle != "" {
		rc.Title = opts.WindowTitle
	}
	rc.Resizable = cfg.Window.Resizable
	rc.ShowHUD = cfg.Window.ShowHUD
	if cfg.Export.Dir != "" {
		rc.ExportDir = cfg.Export.Dir
	}
	if opts.ExportDir != "" {
		rc.ExportDir = opts.ExportDir
	}
	if cfg.Export.Name != "" {
		rc.ExportName = cfg.Export.Name
	}
	return rc
}

// runRenderLoop opens the window and blocks until it closes or ctx ends.
func (a *appImpl) runRenderLoop(ctx context.Context) error {
	a.mu.RLock()
	rc := renderConfig(a.cfg, a.opts)
	controls := a.controls
	a.mu.RUnlock()

	game := render.NewGame(rc, a.newRenderer(), controls)
	game.SetContext(ctx)
	game.SetErrorHandler(func(err error) {
		a.metrics.IncrementExportErrors()
		a.notifyError(NewCategorizedError(err, ErrorCategoryIO, SeverityWarning))
	})
	game.SetExportHandler(func(path string) {
		a.logger().Info("image exported", "path", path)
		a.emitEvent(EventExported, path)
	})

	a.mu.Lock()
	a.gameRunner = &gameRunner{game: game}
	a.mu.Unlock()

	// ErrGameTerminated is expected when ctx is cancelled.
	if err := game.Run(); err != nil && !errors.Is(err, render.ErrGameTerminated) {
		cerr := NewCategorizedError(fmt.Errorf("render loop error: %w", err), ErrorCategoryRender, SeverityCritical)
		a.notifyError(cerr)
		return cerr
	}
	return nil
}

// applyConfigToGame pushes reloaded window settings into the running game.
func (a *appImpl) applyConfigToGame(gr *gameRunner, cfg *config.Config) {
	a.mu.RLock()
	opts := a.opts
	a.mu.RUnlock()
	gr.game.SetConfig(renderConfig(cfg, opts))
}
