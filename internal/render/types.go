// Package render hosts the kaleidoscope renderer in an Ebiten window.
// It translates mouse, touch and keyboard input into renderer calls,
// uploads the raster to the screen and draws a small parameter overlay.
package render

import (
	"fmt"
	"image/color"
	"time"

	"github.com/opd-ai/go-kaleido/internal/kaleido"
)

// Config holds the window configuration options.
type Config struct {
	// Width is the initial window width in pixels.
	Width int
	// Height is the initial window height in pixels.
	Height int
	// Title is the window title.
	Title string
	// Resizable lets the user resize the window. The canvas follows the
	// window size and every resize clears the drawing.
	Resizable bool
	// ShowHUD enables the parameter overlay.
	ShowHUD bool
	// HUDColor is the overlay text color.
	HUDColor color.RGBA
	// ExportDir is the directory the save shortcut writes to.
	ExportDir string
	// ExportName is the file name the save shortcut writes.
	ExportName string
	// StatusDuration is how long a status message stays in the overlay.
	StatusDuration time.Duration
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() Config {
	return Config{
		Width:          800,
		Height:         600,
		Title:          "go-kaleido",
		Resizable:      true,
		ShowHUD:        true,
		HUDColor:       color.RGBA{R: 0xDD, G: 0xDD, B: 0xDD, A: 0xFF},
		ExportDir:      ".",
		ExportName:     kaleido.DefaultExportName,
		StatusDuration: 3 * time.Second,
	}
}

// Validate checks if the Config has valid values.
// Returns an error if Width or Height are not positive.
func (c Config) Validate() error {
	if c.Width <= 0 {
		return fmt.Errorf("width must be positive, got %d", c.Width)
	}
	if c.Height <= 0 {
		return fmt.Errorf("height must be positive, got %d", c.Height)
	}
	if c.ExportName == "" {
		return fmt.Errorf("export name must not be empty")
	}
	return nil
}

// TextLine represents a line of text to be rendered.
type TextLine struct {
	// Text is the string content that will be rendered.
	Text string
	// X is the horizontal position of the text's origin, in pixels from the
	// left edge of the window.
	X float64
	// Y is the vertical position of the text's top, in pixels from the top
	// edge of the window.
	Y float64
	// Color is the text color.
	Color color.RGBA
}
