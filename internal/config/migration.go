// Package config provides configuration parsing and migration for go-kaleido.
// This file converts configurations to the Lua format.
package config

import (
	"bytes"
	"fmt"
	"image/color"
	"os"
	"slices"
	"strconv"
)

// Migrator writes a Config as a Lua configuration file.
type Migrator struct {
	// includeComments adds explanatory comments to the output.
	includeComments bool
	// preserveDefaults includes settings even when they match defaults.
	preserveDefaults bool
}

// MigratorOption is a functional option for configuring a Migrator.
type MigratorOption func(*Migrator)

// WithComments enables adding explanatory comments to the Lua output.
func WithComments(include bool) MigratorOption {
	return func(m *Migrator) {
		m.includeComments = include
	}
}

// WithDefaults includes settings that match default values in the output.
func WithDefaults(preserve bool) MigratorOption {
	return func(m *Migrator) {
		m.preserveDefaults = preserve
	}
}

// NewMigrator creates a new Migrator with the given options.
func NewMigrator(opts ...MigratorOption) *Migrator {
	m := &Migrator{
		includeComments:  true,
		preserveDefaults: false,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// MigrateToLua converts a Config to the Lua configuration format.
func (m *Migrator) MigrateToLua(cfg *Config) ([]byte, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is nil")
	}

	var buf bytes.Buffer
	if m.includeComments {
		buf.WriteString("-- go-kaleido configuration\n")
		buf.WriteString("-- Colors are #RRGGBB or #RRGGBBAA strings.\n\n")
	}

	buf.WriteString("kaleido.config = {\n")
	m.writeConfigTable(&buf, cfg)
	buf.WriteString("}\n")

	return buf.Bytes(), nil
}

// writeConfigTable writes the kaleido.config table contents.
func (m *Migrator) writeConfigTable(buf *bytes.Buffer, cfg *Config) {
	def := DefaultConfig()

	if m.includeComments {
		buf.WriteString("    -- Window\n")
	}
	if m.preserveDefaults || cfg.Window.Width != def.Window.Width {
		m.writeInt(buf, "width", cfg.Window.Width)
	}
	if m.preserveDefaults || cfg.Window.Height != def.Window.Height {
		m.writeInt(buf, "height", cfg.Window.Height)
	}
	if m.preserveDefaults || cfg.Window.Title != def.Window.Title {
		m.writeString(buf, "title", cfg.Window.Title)
	}
	if m.preserveDefaults || cfg.Window.Resizable != def.Window.Resizable {
		m.writeBool(buf, "resizable", cfg.Window.Resizable)
	}
	if m.preserveDefaults || cfg.Window.ShowHUD != def.Window.ShowHUD {
		m.writeBool(buf, "show_hud", cfg.Window.ShowHUD)
	}

	if m.includeComments {
		buf.WriteString("\n    -- Drawing\n")
	}
	if m.preserveDefaults || cfg.Drawing.Symmetry != def.Drawing.Symmetry {
		m.writeInt(buf, "symmetry", cfg.Drawing.Symmetry)
	}
	if m.preserveDefaults || cfg.Drawing.StrokeWeight != def.Drawing.StrokeWeight {
		m.writeInt(buf, "stroke_weight", cfg.Drawing.StrokeWeight)
	}
	if m.preserveDefaults || cfg.Drawing.StrokeColor != def.Drawing.StrokeColor {
		m.writeString(buf, "stroke_color", FormatColor(cfg.Drawing.StrokeColor))
	}
	if m.preserveDefaults || cfg.Drawing.BackgroundColor != def.Drawing.BackgroundColor {
		m.writeString(buf, "background_color", FormatColor(cfg.Drawing.BackgroundColor))
	}
	if m.preserveDefaults || !slices.Equal(cfg.Palette.Stroke, def.Palette.Stroke) {
		m.writeColors(buf, "stroke_palette", cfg.Palette.Stroke)
	}
	if m.preserveDefaults || !slices.Equal(cfg.Palette.Background, def.Palette.Background) {
		m.writeColors(buf, "background_palette", cfg.Palette.Background)
	}

	if m.includeComments {
		buf.WriteString("\n    -- Export\n")
	}
	if m.preserveDefaults || cfg.Export.Dir != def.Export.Dir {
		m.writeString(buf, "export_dir", cfg.Export.Dir)
	}
	if m.preserveDefaults || cfg.Export.Name != def.Export.Name {
		m.writeString(buf, "export_name", cfg.Export.Name)
	}
}

func (m *Migrator) writeBool(buf *bytes.Buffer, name string, value bool) {
	fmt.Fprintf(buf, "    %s = %t,\n", name, value)
}

func (m *Migrator) writeString(buf *bytes.Buffer, name, value string) {
	fmt.Fprintf(buf, "    %s = %s,\n", name, strconv.Quote(value))
}

func (m *Migrator) writeInt(buf *bytes.Buffer, name string, value int) {
	fmt.Fprintf(buf, "    %s = %d,\n", name, value)
}

func (m *Migrator) writeColors(buf *bytes.Buffer, name string, colors []color.RGBA) {
	fmt.Fprintf(buf, "    %s = {", name)
	for i, c := range colors {
		if i > 0 {
			buf.WriteString(", ")
		}
		fmt.Fprintf(buf, "%q", FormatColor(c))
	}
	buf.WriteString("},\n")
}

// MigrateLegacyFile reads a legacy configuration file and converts it to Lua format.
func MigrateLegacyFile(path string, opts ...MigratorOption) ([]byte, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return MigrateLegacyContent(content, opts...)
}

// MigrateLegacyContent converts legacy configuration content to Lua format.
func MigrateLegacyContent(content []byte, opts ...MigratorOption) ([]byte, error) {
	cfg, err := NewLegacyParser().Parse(content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse legacy config: %w", err)
	}
	return NewMigrator(opts...).MigrateToLua(cfg)
}
