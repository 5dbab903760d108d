package config

import (
	"image/color"
	"testing"

	"github.com/opd-ai/go-kaleido/internal/kaleido"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Window.Width != DefaultWidth || cfg.Window.Height != DefaultHeight {
		t.Errorf("expected window %dx%d, got %dx%d", DefaultWidth, DefaultHeight, cfg.Window.Width, cfg.Window.Height)
	}
	if cfg.Window.Title != DefaultTitle {
		t.Errorf("expected title %q, got %q", DefaultTitle, cfg.Window.Title)
	}
	if !cfg.Window.Resizable || !cfg.Window.ShowHUD {
		t.Error("expected Resizable and ShowHUD to be true")
	}

	if got := cfg.Drawing.Params(); got != kaleido.DefaultParams() {
		t.Errorf("expected default params %+v, got %+v", kaleido.DefaultParams(), got)
	}

	if len(cfg.Palette.Stroke) != 10 {
		t.Errorf("expected 10 stroke swatches, got %d", len(cfg.Palette.Stroke))
	}
	if len(cfg.Palette.Background) != 6 {
		t.Errorf("expected 6 background swatches, got %d", len(cfg.Palette.Background))
	}
	if cfg.Palette.Background[0] != kaleido.DefaultBackgroundColor {
		t.Errorf("first background swatch %v is not the default background", cfg.Palette.Background[0])
	}

	if cfg.Export.Name != kaleido.DefaultExportName {
		t.Errorf("expected export name %q, got %q", kaleido.DefaultExportName, cfg.Export.Name)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
}

func TestDefaultConfigPalettesAreCopies(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Palette.Stroke[0] = color.RGBA{A: 1}
	if DefaultStrokePalette[0] == cfg.Palette.Stroke[0] {
		t.Error("DefaultConfig shares its palette with DefaultStrokePalette")
	}
}

func TestConfigClone(t *testing.T) {
	cfg := DefaultConfig()
	clone := cfg.Clone()
	clone.Palette.Background[0] = color.RGBA{R: 1, A: 255}
	clone.Window.Title = "changed"

	if cfg.Palette.Background[0] == clone.Palette.Background[0] {
		t.Error("Clone shares the background palette")
	}
	if cfg.Window.Title == "changed" {
		t.Error("Clone shares scalar fields")
	}
}

func TestDrawingConfigParams(t *testing.T) {
	d := DrawingConfig{
		Symmetry:        12,
		StrokeWeight:    7,
		StrokeColor:     color.RGBA{R: 0xFF, A: 0xFF},
		BackgroundColor: color.RGBA{A: 0xFF},
	}
	p := d.Params()
	if p.Symmetry != 12 || p.StrokeWeight != 7 || p.StrokeColor != d.StrokeColor || p.BackgroundColor != d.BackgroundColor {
		t.Errorf("Params() = %+v, does not match %+v", p, d)
	}
}
