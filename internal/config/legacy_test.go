package config

import (
	"image/color"
	"strings"
	"testing"
)

func TestLegacyParserParseBasic(t *testing.T) {
	content := `
# go-kaleido legacy configuration
width 1024
height	768
title My Flowers
resizable no
show_hud

symmetry 8
stroke_weight 5
stroke_color #FF00FF
background_color black
stroke_palette #FFF, #000000, orange
background_palette #0A0A2A,#2A0A0A
export_dir /tmp/out
export_name flower.png
`
	cfg, err := NewLegacyParser().Parse([]byte(content))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if cfg.Window.Width != 1024 || cfg.Window.Height != 768 {
		t.Errorf("expected 1024x768, got %dx%d", cfg.Window.Width, cfg.Window.Height)
	}
	if cfg.Window.Title != "My Flowers" {
		t.Errorf("expected title 'My Flowers', got %q", cfg.Window.Title)
	}
	if cfg.Window.Resizable {
		t.Error("expected resizable=false")
	}
	if !cfg.Window.ShowHUD {
		t.Error("expected bare show_hud flag to enable the HUD")
	}
	if cfg.Drawing.Symmetry != 8 || cfg.Drawing.StrokeWeight != 5 {
		t.Errorf("expected symmetry 8 weight 5, got %d/%d", cfg.Drawing.Symmetry, cfg.Drawing.StrokeWeight)
	}
	if want := (color.RGBA{R: 255, B: 255, A: 255}); cfg.Drawing.StrokeColor != want {
		t.Errorf("expected stroke color %v, got %v", want, cfg.Drawing.StrokeColor)
	}
	if want := (color.RGBA{A: 255}); cfg.Drawing.BackgroundColor != want {
		t.Errorf("expected background %v, got %v", want, cfg.Drawing.BackgroundColor)
	}

	wantStroke := []color.RGBA{
		{R: 255, G: 255, B: 255, A: 255},
		{A: 255},
		{R: 255, G: 165, A: 255},
	}
	if len(cfg.Palette.Stroke) != len(wantStroke) {
		t.Fatalf("expected %d stroke swatches, got %d", len(wantStroke), len(cfg.Palette.Stroke))
	}
	for i, c := range wantStroke {
		if cfg.Palette.Stroke[i] != c {
			t.Errorf("stroke swatch %d: expected %v, got %v", i, c, cfg.Palette.Stroke[i])
		}
	}
	if len(cfg.Palette.Background) != 2 {
		t.Errorf("expected 2 background swatches, got %d", len(cfg.Palette.Background))
	}
	if cfg.Export.Dir != "/tmp/out" || cfg.Export.Name != "flower.png" {
		t.Errorf("unexpected export config %+v", cfg.Export)
	}
}

func TestLegacyParserDefaults(t *testing.T) {
	cfg, err := NewLegacyParser().Parse(nil)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	def := DefaultConfig()
	if cfg.Drawing != def.Drawing || cfg.Window != def.Window || cfg.Export != def.Export {
		t.Errorf("empty content should yield defaults, got %+v", cfg)
	}
}

func TestLegacyParserErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantMsg string
	}{
		{"bad width", "width wide", "line 1: invalid width"},
		{"bad symmetry", "# c\nsymmetry six", "line 2: invalid symmetry"},
		{"bad weight", "stroke_weight 2.5", "invalid stroke_weight"},
		{"bad color", "stroke_color #GGGGGG", "invalid stroke_color"},
		{"bad background", "background_color not-a-color", "invalid background_color"},
		{"bad palette entry", "stroke_palette #FFF, nope", "invalid stroke_palette"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewLegacyParser().Parse([]byte(tt.content))
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error %q does not contain %q", err, tt.wantMsg)
			}
		})
	}
}

func TestLegacyParserIgnoresUnknownDirectives(t *testing.T) {
	cfg, err := NewLegacyParser().Parse([]byte("own_window yes\nsymmetry 3\n"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if cfg.Drawing.Symmetry != 3 {
		t.Errorf("expected symmetry 3, got %d", cfg.Drawing.Symmetry)
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		input   string
		want    color.RGBA
		wantErr bool
	}{
		{"white", color.RGBA{R: 255, G: 255, B: 255, A: 255}, false},
		{"  Pink ", color.RGBA{R: 255, G: 192, B: 203, A: 255}, false},
		{"#323232", color.RGBA{R: 0x32, G: 0x32, B: 0x32, A: 255}, false},
		{"0A2A0A", color.RGBA{R: 0x0A, G: 0x2A, B: 0x0A, A: 255}, false},
		{"#f80", color.RGBA{R: 0xFF, G: 0x88, B: 0x00, A: 255}, false},
		{"#FF000080", color.RGBA{R: 0xFF, A: 0x80}, false},
		{"#FF00", color.RGBA{}, true},
		{"#GG0000", color.RGBA{}, true},
		{"", color.RGBA{}, true},
		{"chartreuse-ish", color.RGBA{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseColor(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseColor(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseColor(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatColor(t *testing.T) {
	tests := []struct {
		in   color.RGBA
		want string
	}{
		{color.RGBA{R: 0x32, G: 0x32, B: 0x32, A: 0xFF}, "#323232"},
		{color.RGBA{R: 0xFF, G: 0xA5, A: 0xFF}, "#FFA500"},
		{color.RGBA{R: 0x10, G: 0x20, B: 0x30, A: 0x40}, "#10203040"},
	}
	for _, tt := range tests {
		if got := FormatColor(tt.in); got != tt.want {
			t.Errorf("FormatColor(%v) = %q, want %q", tt.in, got, tt.want)
		}
		back, err := ParseColor(tt.want)
		if err != nil || back != tt.in {
			t.Errorf("ParseColor(FormatColor(%v)) = %v, %v", tt.in, back, err)
		}
	}
}

func TestParseBool(t *testing.T) {
	for _, s := range []string{"yes", "TRUE", "1", "on"} {
		if !parseBool(s) {
			t.Errorf("parseBool(%q) = false", s)
		}
	}
	for _, s := range []string{"no", "false", "0", "", "maybe"} {
		if parseBool(s) {
			t.Errorf("parseBool(%q) = true", s)
		}
	}
}
