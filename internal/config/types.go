// Package config provides configuration data structures for go-kaleido.
// It defines the settings read from either the Lua or the legacy key/value
// configuration format and converts them into renderer parameters.
package config

import (
	"image/color"

	"github.com/opd-ai/go-kaleido/internal/kaleido"
)

// Config represents the complete go-kaleido configuration.
type Config struct {
	// Window contains window-related configuration options.
	Window WindowConfig
	// Drawing contains the initial style parameters of the renderer.
	Drawing DrawingConfig
	// Palette contains the colors offered by the keyboard shortcuts.
	Palette PaletteConfig
	// Export controls where saved images go.
	Export ExportConfig
}

// WindowConfig holds window-related configuration options.
type WindowConfig struct {
	// Width is the initial window width in pixels.
	Width int
	// Height is the initial window height in pixels.
	Height int
	// Title is the window title.
	Title string
	// Resizable allows the user to resize the window. Every resize clears
	// the drawing.
	Resizable bool
	// ShowHUD enables the parameter overlay at startup.
	ShowHUD bool
}

// DrawingConfig holds the style parameters a session starts with.
type DrawingConfig struct {
	// Symmetry is the number of rotational copies (2-24).
	Symmetry int
	// StrokeWeight is the line width in pixels (1-10).
	StrokeWeight int
	// StrokeColor is the line color.
	StrokeColor color.RGBA
	// BackgroundColor fills the canvas on start, resize and clear.
	BackgroundColor color.RGBA
}

// PaletteConfig holds the color swatches.
type PaletteConfig struct {
	// Stroke colors are selected with the number keys 1-9 and 0.
	Stroke []color.RGBA
	// Background colors are cycled with B.
	Background []color.RGBA
}

// ExportConfig holds PNG export settings.
type ExportConfig struct {
	// Dir is the directory exported images are written to.
	Dir string
	// Name is the file name of exported images.
	Name string
}

// Params converts the drawing settings into renderer parameters.
func (d DrawingConfig) Params() kaleido.Params {
	return kaleido.Params{
		Symmetry:        d.Symmetry,
		StrokeColor:     d.StrokeColor,
		StrokeWeight:    d.StrokeWeight,
		BackgroundColor: d.BackgroundColor,
	}
}

// Validate checks if the Config has valid values using the comprehensive validator.
// It returns the first validation error found, or nil if the config is valid.
// For detailed validation results including warnings, use NewValidator().Validate().
func (c *Config) Validate() error {
	return ValidateConfig(c)
}

// Clone returns a deep copy of the configuration.
func (c Config) Clone() Config {
	c.Palette.Stroke = append([]color.RGBA(nil), c.Palette.Stroke...)
	c.Palette.Background = append([]color.RGBA(nil), c.Palette.Background...)
	return c
}
