package kaleido

import (
	"image/color"
	"slices"
	"sync"
)

// Controls is the live parameter set the renderer reads on every draw. It
// is safe for concurrent use: the game loop adjusts it from keyboard input
// while a configuration reload may replace it from another goroutine.
type Controls struct {
	mu          sync.RWMutex
	params      Params
	strokes     []color.RGBA
	backgrounds []color.RGBA
	bgIndex     int
	bgGen       uint64
}

// NewControls creates controls starting at p with the given swatches.
func NewControls(p Params, strokes, backgrounds []color.RGBA) *Controls {
	c := &Controls{params: p.Normalize()}
	c.setPalettes(strokes, backgrounds)
	return c
}

// Params implements ParamSource.
func (c *Controls) Params() Params {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.params
}

// SetParams replaces every parameter at once. Out-of-range values are
// clamped.
func (c *Controls) SetParams(p Params) {
	c.mu.Lock()
	defer c.mu.Unlock()
	bg := c.params.BackgroundColor
	c.params = p.Normalize()
	c.backgroundChanged(bg)
}

// SetSymmetry sets the number of rotational copies and returns the clamped
// value in effect.
func (c *Controls) SetSymmetry(n int) int {
	return c.updateSymmetry(func(int) int { return n })
}

// AdjustSymmetry adds delta to the symmetry and returns the new value.
func (c *Controls) AdjustSymmetry(delta int) int {
	return c.updateSymmetry(func(n int) int { return n + delta })
}

// SetWeight sets the stroke weight and returns the clamped value in effect.
func (c *Controls) SetWeight(w int) int {
	return c.updateWeight(func(int) int { return w })
}

// AdjustWeight adds delta to the stroke weight and returns the new value.
func (c *Controls) AdjustWeight(delta int) int {
	return c.updateWeight(func(w int) int { return w + delta })
}

// updateSymmetry and updateWeight read, change and clamp in one critical
// section so a concurrent SetParams is never overwritten by a stale value.
func (c *Controls) updateSymmetry(f func(int) int) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.params.Symmetry = f(c.params.Symmetry)
	c.params = c.params.Normalize()
	return c.params.Symmetry
}

func (c *Controls) updateWeight(f func(int) int) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.params.StrokeWeight = f(c.params.StrokeWeight)
	c.params = c.params.Normalize()
	return c.params.StrokeWeight
}

// SetStrokeColor sets the color of subsequent strokes.
func (c *Controls) SetStrokeColor(col color.RGBA) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.params.StrokeColor = col
}

// SetBackgroundColor sets the background color. The canvas picks it up on
// the next clear; BackgroundGeneration changes so the host can clear
// immediately.
func (c *Controls) SetBackgroundColor(col color.RGBA) {
	c.mu.Lock()
	defer c.mu.Unlock()
	bg := c.params.BackgroundColor
	c.params.BackgroundColor = col
	c.backgroundChanged(bg)
}

// SelectStroke makes stroke swatch i current. It reports false when i is
// outside the palette.
func (c *Controls) SelectStroke(i int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if i < 0 || i >= len(c.strokes) {
		return false
	}
	c.params.StrokeColor = c.strokes[i]
	return true
}

// SelectBackground makes background swatch i current. It reports false
// when i is outside the palette.
func (c *Controls) SelectBackground(i int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if i < 0 || i >= len(c.backgrounds) {
		return false
	}
	bg := c.params.BackgroundColor
	c.bgIndex = i
	c.params.BackgroundColor = c.backgrounds[i]
	c.backgroundChanged(bg)
	return true
}

// CycleBackground advances to the next background swatch and returns it.
// With an empty palette the current background is returned unchanged.
func (c *Controls) CycleBackground() color.RGBA {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.backgrounds) == 0 {
		return c.params.BackgroundColor
	}
	bg := c.params.BackgroundColor
	c.bgIndex = (c.bgIndex + 1) % len(c.backgrounds)
	c.params.BackgroundColor = c.backgrounds[c.bgIndex]
	c.backgroundChanged(bg)
	return c.params.BackgroundColor
}

// SetPalettes replaces the swatches.
func (c *Controls) SetPalettes(strokes, backgrounds []color.RGBA) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setPalettes(strokes, backgrounds)
}

// StrokePalette returns a copy of the stroke swatches.
func (c *Controls) StrokePalette() []color.RGBA {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.strokes)
}

// BackgroundGeneration increases every time the background color actually
// changes.
func (c *Controls) BackgroundGeneration() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.bgGen
}

func (c *Controls) setPalettes(strokes, backgrounds []color.RGBA) {
	c.strokes = slices.Clone(strokes)
	c.backgrounds = slices.Clone(backgrounds)
	// Position the cycle on the current background so the first B press
	// moves to the swatch after it. -1 makes an unknown color start at 0.
	c.bgIndex = slices.Index(c.backgrounds, c.params.BackgroundColor)
}

func (c *Controls) backgroundChanged(prev color.RGBA) {
	if c.params.BackgroundColor != prev {
		c.bgGen++
	}
}
