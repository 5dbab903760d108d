package config

import (
	"image/color"

	"github.com/opd-ai/go-kaleido/internal/kaleido"
)

// Default values for configuration options.
const (
	// DefaultWidth is the default window width in pixels.
	DefaultWidth = 800
	// DefaultHeight is the default window height in pixels.
	DefaultHeight = 600
	// DefaultTitle is the default window title.
	DefaultTitle = "go-kaleido"
	// MaxPaletteSize is the number of swatches reachable from the keyboard.
	MaxPaletteSize = 10
)

// DefaultStrokePalette is the default set of stroke swatches.
var DefaultStrokePalette = []color.RGBA{
	{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}, // white
	{R: 0xFF, G: 0x00, B: 0x00, A: 0xFF}, // red
	{R: 0x00, G: 0xFF, B: 0x00, A: 0xFF}, // green
	{R: 0x00, G: 0x00, B: 0xFF, A: 0xFF}, // blue
	{R: 0xFF, G: 0xFF, B: 0x00, A: 0xFF}, // yellow
	{R: 0xFF, G: 0x00, B: 0xFF, A: 0xFF}, // magenta
	{R: 0x00, G: 0xFF, B: 0xFF, A: 0xFF}, // cyan
	{R: 0xFF, G: 0xA5, B: 0x00, A: 0xFF}, // orange
	{R: 0x80, G: 0x00, B: 0x80, A: 0xFF}, // purple
	{R: 0xFF, G: 0xC0, B: 0xCB, A: 0xFF}, // pink
}

// DefaultBackgroundPalette is the default set of background swatches.
var DefaultBackgroundPalette = []color.RGBA{
	{R: 0x32, G: 0x32, B: 0x32, A: 0xFF}, // dark gray
	{R: 0x00, G: 0x00, B: 0x00, A: 0xFF}, // black
	{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}, // white
	{R: 0x0A, G: 0x0A, B: 0x2A, A: 0xFF}, // midnight
	{R: 0x2A, G: 0x0A, B: 0x0A, A: 0xFF}, // wine
	{R: 0x0A, G: 0x2A, B: 0x0A, A: 0xFF}, // forest
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() Config {
	return Config{
		Window: WindowConfig{
			Width:     DefaultWidth,
			Height:    DefaultHeight,
			Title:     DefaultTitle,
			Resizable: true,
			ShowHUD:   true,
		},
		Drawing: DrawingConfig{
			Symmetry:        kaleido.DefaultSymmetry,
			StrokeWeight:    kaleido.DefaultStrokeWeight,
			StrokeColor:     kaleido.DefaultStrokeColor,
			BackgroundColor: kaleido.DefaultBackgroundColor,
		},
		Palette: PaletteConfig{
			Stroke:     append([]color.RGBA(nil), DefaultStrokePalette...),
			Background: append([]color.RGBA(nil), DefaultBackgroundPalette...),
		},
		Export: ExportConfig{
			Dir:  ".",
			Name: kaleido.DefaultExportName,
		},
	}
}
