package render

import (
	"bytes"
	"fmt"
	"image/color"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/gomonobold"

	"github.com/opd-ai/go-kaleido/internal/config"
	"github.com/opd-ai/go-kaleido/internal/kaleido"
)

// defaultFontSize is the default font size in points.
const defaultFontSize = 14.0

// hudMargin is the distance of the overlay from the window corner.
const hudMargin = 8.0

// TextRenderer draws the overlay with the embedded Go Mono Bold font.
type TextRenderer struct {
	fontSource *text.GoTextFaceSource
	fontSize   float64
	mu         sync.RWMutex
}

// NewTextRenderer creates a new TextRenderer with the default monospace font.
func NewTextRenderer() *TextRenderer {
	fontSource, err := text.NewGoTextFaceSource(bytes.NewReader(gomonobold.TTF))
	if err != nil {
		// The font is compiled in; failure means a broken build.
		panic("failed to load embedded font: " + err.Error())
	}

	return &TextRenderer{
		fontSource: fontSource,
		fontSize:   defaultFontSize,
	}
}

// SetFontSize sets the font size. Non-positive sizes restore the default.
func (tr *TextRenderer) SetFontSize(size float64) {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	if size <= 0 {
		size = defaultFontSize
	}
	tr.fontSize = size
}

// FontSize returns the current font size.
func (tr *TextRenderer) FontSize() float64 {
	tr.mu.RLock()
	defer tr.mu.RUnlock()
	return tr.fontSize
}

// DrawText renders text with its top-left corner at x, y.
func (tr *TextRenderer) DrawText(screen *ebiten.Image, textStr string, x, y float64, clr color.RGBA) {
	tr.mu.RLock()
	defer tr.mu.RUnlock()

	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	op.LineSpacing = tr.fontSize * 1.2

	text.Draw(screen, textStr, tr.face(), op)
}

// MeasureText returns the width and height of the given text string.
func (tr *TextRenderer) MeasureText(textStr string) (width, height float64) {
	tr.mu.RLock()
	defer tr.mu.RUnlock()
	return text.Measure(textStr, tr.face(), tr.fontSize*1.2)
}

// LineHeight returns the height of a single line of text.
func (tr *TextRenderer) LineHeight() float64 {
	tr.mu.RLock()
	defer tr.mu.RUnlock()
	return tr.fontSize * 1.2
}

func (tr *TextRenderer) face() *text.GoTextFace {
	return &text.GoTextFace{
		Source: tr.fontSource,
		Size:   tr.fontSize,
	}
}

// HUDLines lays out the parameter overlay in the top-left corner. A
// non-empty status adds a final line.
func HUDLines(p kaleido.Params, status string, lineHeight float64, clr color.RGBA) []TextLine {
	texts := []string{
		fmt.Sprintf("symmetry %d  weight %d", p.Symmetry, p.StrokeWeight),
		fmt.Sprintf("stroke %s  background %s",
			config.FormatColor(p.StrokeColor), config.FormatColor(p.BackgroundColor)),
	}
	if status != "" {
		texts = append(texts, status)
	}

	lines := make([]TextLine, len(texts))
	for i, s := range texts {
		lines[i] = TextLine{
			Text:  s,
			X:     hudMargin,
			Y:     hudMargin + float64(i)*lineHeight,
			Color: clr,
		}
	}
	return lines
}
