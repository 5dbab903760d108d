package config

import (
	"image/color"
	"strings"
	"testing"
)

func TestValidatorValidate(t *testing.T) {
	tests := []struct {
		name       string
		modify     func(*Config)
		wantErrors []string
		wantWarns  []string
	}{
		{
			name:   "defaults",
			modify: func(*Config) {},
		},
		{
			name:       "zero width",
			modify:     func(c *Config) { c.Window.Width = 0 },
			wantErrors: []string{"window.width"},
		},
		{
			name:      "huge height",
			modify:    func(c *Config) { c.Window.Height = 20000 },
			wantWarns: []string{"window.height"},
		},
		{
			name:       "symmetry too low",
			modify:     func(c *Config) { c.Drawing.Symmetry = 1 },
			wantErrors: []string{"drawing.symmetry"},
		},
		{
			name:       "symmetry too high",
			modify:     func(c *Config) { c.Drawing.Symmetry = 25 },
			wantErrors: []string{"drawing.symmetry"},
		},
		{
			name:       "weight out of range",
			modify:     func(c *Config) { c.Drawing.StrokeWeight = 11 },
			wantErrors: []string{"drawing.stroke_weight"},
		},
		{
			name:      "invisible stroke",
			modify:    func(c *Config) { c.Drawing.StrokeColor = color.RGBA{R: 255} },
			wantWarns: []string{"drawing.stroke_color"},
		},
		{
			name:      "stroke equals background",
			modify:    func(c *Config) { c.Drawing.StrokeColor = c.Drawing.BackgroundColor },
			wantWarns: []string{"drawing.stroke_color"},
		},
		{
			name:      "translucent background",
			modify:    func(c *Config) { c.Drawing.BackgroundColor.A = 0x80 },
			wantWarns: []string{"drawing.background_color"},
		},
		{
			name:       "empty palettes",
			modify:     func(c *Config) { c.Palette.Stroke = nil; c.Palette.Background = nil },
			wantErrors: []string{"palette.stroke", "palette.background"},
		},
		{
			name: "oversized stroke palette",
			modify: func(c *Config) {
				c.Palette.Stroke = append(c.Palette.Stroke, color.RGBA{A: 255})
			},
			wantWarns: []string{"palette.stroke"},
		},
		{
			name:       "empty export name",
			modify:     func(c *Config) { c.Export.Name = " " },
			wantErrors: []string{"export.name"},
		},
		{
			name:       "export name with path",
			modify:     func(c *Config) { c.Export.Name = "../flower.png" },
			wantErrors: []string{"export.name"},
		},
		{
			name:      "export name without png",
			modify:    func(c *Config) { c.Export.Name = "flower.jpg" },
			wantWarns: []string{"export.name"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(&cfg)
			result := NewValidator().Validate(&cfg)

			assertFields(t, "error", result.Errors, tt.wantErrors)
			assertFields(t, "warning", result.Warnings, tt.wantWarns)
			if result.IsValid() != (len(tt.wantErrors) == 0) {
				t.Errorf("IsValid() = %v with errors %v", result.IsValid(), result.Errors)
			}
		})
	}
}

func assertFields(t *testing.T, kind string, got []ValidationError, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d %ss %v, want fields %v", len(got), kind, got, want)
	}
	for i, f := range want {
		if got[i].Field != f {
			t.Errorf("%s %d: field %q, want %q", kind, i, got[i].Field, f)
		}
	}
}

func TestValidatorStrictMode(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Export.Name = "flower.bmp"

	if err := ValidateConfig(&cfg); err != nil {
		t.Errorf("lenient validation failed: %v", err)
	}
	err := ValidateConfigStrict(&cfg)
	if err == nil || !strings.Contains(err.Error(), "export.name") {
		t.Errorf("strict validation error = %v, want export.name", err)
	}
}

func TestValidateConfigNil(t *testing.T) {
	if err := ValidateConfig(nil); err == nil {
		t.Error("expected error for nil config")
	}
	if err := ValidateConfigStrict(nil); err == nil {
		t.Error("expected error for nil config")
	}
}

func TestValidationResultError(t *testing.T) {
	var vr ValidationResult
	if vr.Error() != nil {
		t.Error("empty result should have nil error")
	}
	vr.AddError("a", "first")
	other := &ValidationResult{}
	other.AddError("b", "second")
	other.AddWarning("c", "note")
	vr.Merge(other)
	vr.Merge(nil)

	err := vr.Error()
	if err == nil {
		t.Fatal("expected an error")
	}
	if msg := err.Error(); !strings.Contains(msg, "a: first") || !strings.Contains(msg, "b: second") {
		t.Errorf("unexpected message %q", msg)
	}
	if len(vr.Warnings) != 1 {
		t.Errorf("expected 1 warning after merge, got %d", len(vr.Warnings))
	}
}
