package kaleido

import (
	"fmt"
	"image/color"
)

// Parameter ranges accepted by the renderer.
const (
	MinSymmetry     = 2
	MaxSymmetry     = 24
	MinStrokeWeight = 1
	MaxStrokeWeight = 10
)

// Default parameter values.
const (
	DefaultSymmetry     = 6
	DefaultStrokeWeight = 3
)

var (
	// DefaultStrokeColor is white.
	DefaultStrokeColor = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	// DefaultBackgroundColor is a dark gray (#323232).
	DefaultBackgroundColor = color.RGBA{R: 0x32, G: 0x32, B: 0x32, A: 0xFF}
)

// Params are the style parameters of a draw, clear or resize.
// Colors carry straight (non-premultiplied) alpha.
type Params struct {
	// Symmetry is the number of rotational copies, N.
	Symmetry int
	// StrokeColor is the color of every replicated segment.
	StrokeColor color.RGBA
	// StrokeWeight is the line width in pixels.
	StrokeWeight int
	// BackgroundColor fills the surface on mount, resize and clear.
	BackgroundColor color.RGBA
}

// DefaultParams returns the parameters a fresh session starts with.
func DefaultParams() Params {
	return Params{
		Symmetry:        DefaultSymmetry,
		StrokeColor:     DefaultStrokeColor,
		StrokeWeight:    DefaultStrokeWeight,
		BackgroundColor: DefaultBackgroundColor,
	}
}

// Normalize returns p with Symmetry and StrokeWeight clamped into their
// valid ranges.
func (p Params) Normalize() Params {
	p.Symmetry = clampInt(p.Symmetry, MinSymmetry, MaxSymmetry)
	p.StrokeWeight = clampInt(p.StrokeWeight, MinStrokeWeight, MaxStrokeWeight)
	return p
}

// Validate reports the first out-of-range field.
func (p Params) Validate() error {
	if p.Symmetry < MinSymmetry || p.Symmetry > MaxSymmetry {
		return fmt.Errorf("symmetry must be in [%d,%d], got %d", MinSymmetry, MaxSymmetry, p.Symmetry)
	}
	if p.StrokeWeight < MinStrokeWeight || p.StrokeWeight > MaxStrokeWeight {
		return fmt.Errorf("stroke weight must be in [%d,%d], got %d", MinStrokeWeight, MaxStrokeWeight, p.StrokeWeight)
	}
	return nil
}

// ParamSource supplies the current parameters. The renderer reads it at the
// moment each draw, clear or resize executes and keeps nothing between
// calls.
type ParamSource interface {
	Params() Params
}

// StaticParams is a ParamSource that always returns the same value.
type StaticParams Params

// Params implements ParamSource.
func (s StaticParams) Params() Params {
	return Params(s)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
