package config

import (
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestMigratorMigrateToLua(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Drawing.Symmetry = 9
	cfg.Drawing.StrokeColor = color.RGBA{R: 0xFF, G: 0xA5, A: 0xFF}
	cfg.Window.Title = `My "Flowers"`

	out, err := NewMigrator().MigrateToLua(&cfg)
	if err != nil {
		t.Fatalf("MigrateToLua failed: %v", err)
	}
	s := string(out)

	for _, want := range []string{
		"-- go-kaleido configuration",
		"kaleido.config = {",
		"    symmetry = 9,",
		`    stroke_color = "#FFA500",`,
		`    title = "My \"Flowers\"",`,
	} {
		if !strings.Contains(s, want) {
			t.Errorf("output missing %q:\n%s", want, s)
		}
	}
	for _, unwanted := range []string{"stroke_weight", "width =", "stroke_palette"} {
		if strings.Contains(s, unwanted) {
			t.Errorf("output contains default setting %q:\n%s", unwanted, s)
		}
	}
}

func TestMigratorOptions(t *testing.T) {
	cfg := DefaultConfig()
	out, err := NewMigrator(WithComments(false), WithDefaults(true)).MigrateToLua(&cfg)
	if err != nil {
		t.Fatalf("MigrateToLua failed: %v", err)
	}
	s := string(out)
	if strings.Contains(s, "--") {
		t.Errorf("comments present with WithComments(false):\n%s", s)
	}
	for _, key := range []string{"width", "height", "title", "resizable", "show_hud", "symmetry",
		"stroke_weight", "stroke_color", "background_color", "stroke_palette", "background_palette",
		"export_dir", "export_name"} {
		if !strings.Contains(s, "    "+key+" = ") {
			t.Errorf("WithDefaults(true) output missing %s:\n%s", key, s)
		}
	}
}

func TestMigratorNilConfig(t *testing.T) {
	if _, err := NewMigrator().MigrateToLua(nil); err == nil {
		t.Error("expected error for nil config")
	}
}

// Migrated output parsed back through the Lua parser yields the same config.
func TestMigrateLegacyRoundTrip(t *testing.T) {
	legacy := `
width 1280
height 720
title Round Trip
show_hud no
symmetry 16
stroke_weight 6
stroke_color #FF00FF80
background_color #0A0A2A
stroke_palette red, green, blue
background_palette #000000
export_dir /tmp/rt
export_name rt.png
`
	want, err := NewLegacyParser().Parse([]byte(legacy))
	if err != nil {
		t.Fatalf("legacy Parse failed: %v", err)
	}

	for _, opts := range [][]MigratorOption{
		nil,
		{WithComments(false), WithDefaults(true)},
	} {
		luaSrc, err := MigrateLegacyContent([]byte(legacy), opts...)
		if err != nil {
			t.Fatalf("MigrateLegacyContent failed: %v", err)
		}
		if !isLuaConfig(luaSrc) {
			t.Fatalf("migrated output is not detected as Lua:\n%s", luaSrc)
		}

		p := newTestLuaParser(t)
		got, err := p.Parse(luaSrc)
		if err != nil {
			t.Fatalf("Lua Parse of migrated output failed: %v\n%s", err, luaSrc)
		}
		if got.Window != want.Window || got.Drawing != want.Drawing || got.Export != want.Export {
			t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, want)
		}
		if len(got.Palette.Stroke) != 3 || len(got.Palette.Background) != 1 {
			t.Errorf("palettes lost in round trip: %+v", got.Palette)
		}
	}
}

func TestMigrateLegacyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kaleido.conf")
	if err := os.WriteFile(path, []byte("symmetry 3\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	out, err := MigrateLegacyFile(path)
	if err != nil {
		t.Fatalf("MigrateLegacyFile failed: %v", err)
	}
	if !strings.Contains(string(out), "symmetry = 3") {
		t.Errorf("unexpected output:\n%s", out)
	}

	if _, err := MigrateLegacyFile(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("expected error for missing file")
	}
	bad := filepath.Join(t.TempDir(), "bad.conf")
	if err := os.WriteFile(bad, []byte("symmetry x\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := MigrateLegacyFile(bad); err == nil {
		t.Error("expected error for invalid legacy content")
	}
}
