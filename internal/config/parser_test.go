package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"
)

func newTestParser(t *testing.T) *Parser {
	t.Helper()
	p, err := NewParser()
	if err != nil {
		t.Fatalf("NewParser failed: %v", err)
	}
	t.Cleanup(func() { p.Close() })
	return p
}

func TestIsLuaConfig(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    bool
	}{
		{"lua", "kaleido.config = {}", true},
		{"lua indented", "  kaleido.config={ symmetry = 4 }", true},
		{"lua after comment", "-- settings\nkaleido.config = {}", true},
		{"legacy", "symmetry 6\nstroke_weight 3", false},
		{"legacy comment mentions lua", "# see kaleido.config = {} for Lua", false},
		{"empty", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isLuaConfig([]byte(tt.content)); got != tt.want {
				t.Errorf("isLuaConfig(%q) = %v, want %v", tt.content, got, tt.want)
			}
		})
	}
}

func TestParserAutoDetect(t *testing.T) {
	p := newTestParser(t)

	legacy, err := p.Parse([]byte("symmetry 5\n"))
	if err != nil {
		t.Fatalf("legacy Parse failed: %v", err)
	}
	lua, err := p.Parse([]byte("kaleido.config = { symmetry = 5 }\n"))
	if err != nil {
		t.Fatalf("lua Parse failed: %v", err)
	}
	if legacy.Drawing.Symmetry != 5 || lua.Drawing.Symmetry != 5 {
		t.Errorf("symmetry legacy=%d lua=%d, want 5", legacy.Drawing.Symmetry, lua.Drawing.Symmetry)
	}
}

func TestParserParseFile(t *testing.T) {
	t.Setenv("KALEIDO_TEST_OUT", "/var/tmp/art")
	dir := t.TempDir()
	path := filepath.Join(dir, "kaleido.lua")
	content := `kaleido.config = {
    title = "${KALEIDO_TEST_TITLE:-Flowers}",
    export_dir = "$KALEIDO_TEST_OUT",
}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := newTestParser(t).ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile failed: %v", err)
	}
	if cfg.Window.Title != "Flowers" {
		t.Errorf("expected title default 'Flowers', got %q", cfg.Window.Title)
	}
	if cfg.Export.Dir != "/var/tmp/art" {
		t.Errorf("expected export dir from env, got %q", cfg.Export.Dir)
	}
}

func TestParserParseFileErrors(t *testing.T) {
	p := newTestParser(t)

	if _, err := p.ParseFile(filepath.Join(t.TempDir(), "missing.conf")); err == nil {
		t.Error("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.conf")
	if err := os.WriteFile(path, []byte("symmetry lots\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := p.ParseFile(path)
	if err == nil || !strings.Contains(err.Error(), path) {
		t.Errorf("expected error naming %s, got %v", path, err)
	}
}

func TestParserParseFromFS(t *testing.T) {
	fsys := fstest.MapFS{
		"configs/legacy.conf": {Data: []byte("stroke_weight 7\n")},
		"configs/modern.lua":  {Data: []byte("kaleido.config = { stroke_weight = 8 }")},
	}
	p := newTestParser(t)

	tests := []struct {
		path string
		want int
	}{
		{"configs/legacy.conf", 7},
		{"configs/modern.lua", 8},
	}
	for _, tt := range tests {
		cfg, err := p.ParseFromFS(fsys, tt.path)
		if err != nil {
			t.Fatalf("ParseFromFS(%s) failed: %v", tt.path, err)
		}
		if cfg.Drawing.StrokeWeight != tt.want {
			t.Errorf("%s: stroke weight %d, want %d", tt.path, cfg.Drawing.StrokeWeight, tt.want)
		}
	}

	if _, err := p.ParseFromFS(fsys, "configs/none.conf"); err == nil {
		t.Error("expected error for missing file in FS")
	}
}

func TestParserParseReader(t *testing.T) {
	p := newTestParser(t)

	cfg, err := p.ParseReader(strings.NewReader("symmetry 9"), "legacy")
	if err != nil || cfg.Drawing.Symmetry != 9 {
		t.Errorf("legacy reader: cfg=%v err=%v", cfg, err)
	}
	cfg, err = p.ParseReader(strings.NewReader("kaleido.config = { symmetry = 10 }"), "lua")
	if err != nil || cfg.Drawing.Symmetry != 10 {
		t.Errorf("lua reader: cfg=%v err=%v", cfg, err)
	}
	if _, err := p.ParseReader(strings.NewReader(""), "yaml"); err == nil {
		t.Error("expected error for unknown format")
	}
}
