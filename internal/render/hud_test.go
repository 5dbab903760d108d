//go:build !noebiten

package render

import (
	"image/color"
	"testing"

	"github.com/opd-ai/go-kaleido/internal/kaleido"
)

func TestHUDLines(t *testing.T) {
	clr := color.RGBA{R: 1, G: 2, B: 3, A: 255}
	p := kaleido.DefaultParams()

	lines := HUDLines(p, "", 20, clr)
	want := []string{
		"symmetry 6  weight 3",
		"stroke #FFFFFF  background #323232",
	}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines, want %d", len(lines), len(want))
	}
	for i, line := range lines {
		if line.Text != want[i] {
			t.Errorf("line %d = %q, want %q", i, line.Text, want[i])
		}
		if line.X != hudMargin || line.Y != hudMargin+float64(i)*20 {
			t.Errorf("line %d at (%v, %v)", i, line.X, line.Y)
		}
		if line.Color != clr {
			t.Errorf("line %d color = %v", i, line.Color)
		}
	}

	lines = HUDLines(p, "saved flower.png", 20, clr)
	if len(lines) != 3 || lines[2].Text != "saved flower.png" || lines[2].Y != hudMargin+40 {
		t.Errorf("status line missing or misplaced: %+v", lines)
	}
}

func TestTextRendererFontSize(t *testing.T) {
	tr := NewTextRenderer()

	if tr.FontSize() != defaultFontSize {
		t.Errorf("FontSize() = %v, want %v", tr.FontSize(), defaultFontSize)
	}
	tr.SetFontSize(24)
	if tr.FontSize() != 24 {
		t.Errorf("FontSize() = %v, want 24", tr.FontSize())
	}
	if tr.LineHeight() != 24*1.2 {
		t.Errorf("LineHeight() = %v, want %v", tr.LineHeight(), 24*1.2)
	}
	tr.SetFontSize(-5)
	if tr.FontSize() != defaultFontSize {
		t.Errorf("negative size not reset: %v", tr.FontSize())
	}
}

func TestTextRendererMeasureText(t *testing.T) {
	tr := NewTextRenderer()

	w, h := tr.MeasureText("symmetry 6")
	if w <= 0 || h <= 0 {
		t.Errorf("MeasureText = (%v, %v), want positive", w, h)
	}
	longer, _ := tr.MeasureText("symmetry 6  weight 3")
	if longer <= w {
		t.Errorf("longer text measured %v <= %v", longer, w)
	}
	empty, _ := tr.MeasureText("")
	if empty != 0 {
		t.Errorf("empty text width = %v", empty)
	}
}
