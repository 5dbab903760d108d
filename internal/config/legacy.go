// Package config provides configuration parsing for go-kaleido.
// This file implements the legacy key/value parser.

package config

import (
	"bufio"
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// LegacyParser parses key/value configuration files. Each non-empty line
// that is not a comment holds one directive: a key, whitespace, and the
// rest of the line as value.
type LegacyParser struct{}

// NewLegacyParser creates a new LegacyParser instance.
func NewLegacyParser() *LegacyParser {
	return &LegacyParser{}
}

// Parse parses a legacy configuration from content bytes.
// It returns a Config with parsed values or an error if parsing fails.
func (p *LegacyParser) Parse(content []byte) (*Config, error) {
	cfg := DefaultConfig()
	scanner := bufio.NewScanner(strings.NewReader(string(content)))

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		trimmed := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		if err := p.parseDirective(&cfg, trimmed, lineNum); err != nil {
			return nil, err
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading configuration: %w", err)
	}

	return &cfg, nil
}

// parseDirective parses a single configuration directive line.
// Format: "key value" or "key" (for boolean flags).
func (p *LegacyParser) parseDirective(cfg *Config, line string, lineNum int) error {
	key, value := line, ""
	if i := strings.IndexAny(line, " \t"); i >= 0 {
		key, value = line[:i], strings.TrimSpace(line[i+1:])
	}
	key = strings.ToLower(key)

	switch key {
	// Window settings
	case "width":
		w, err := parseInt(value)
		if err != nil {
			return fmt.Errorf("line %d: invalid width: %w", lineNum, err)
		}
		cfg.Window.Width = w
	case "height":
		h, err := parseInt(value)
		if err != nil {
			return fmt.Errorf("line %d: invalid height: %w", lineNum, err)
		}
		cfg.Window.Height = h
	case "title":
		cfg.Window.Title = value
	case "resizable":
		cfg.Window.Resizable = parseBoolDefault(value, true)
	case "show_hud":
		cfg.Window.ShowHUD = parseBoolDefault(value, true)

	// Drawing settings
	case "symmetry":
		n, err := parseInt(value)
		if err != nil {
			return fmt.Errorf("line %d: invalid symmetry: %w", lineNum, err)
		}
		cfg.Drawing.Symmetry = n
	case "stroke_weight":
		n, err := parseInt(value)
		if err != nil {
			return fmt.Errorf("line %d: invalid stroke_weight: %w", lineNum, err)
		}
		cfg.Drawing.StrokeWeight = n
	case "stroke_color":
		c, err := parseColor(value)
		if err != nil {
			return fmt.Errorf("line %d: invalid stroke_color: %w", lineNum, err)
		}
		cfg.Drawing.StrokeColor = c
	case "background_color":
		c, err := parseColor(value)
		if err != nil {
			return fmt.Errorf("line %d: invalid background_color: %w", lineNum, err)
		}
		cfg.Drawing.BackgroundColor = c

	// Palettes (comma-separated lists)
	case "stroke_palette":
		colors, err := parseColorList(value)
		if err != nil {
			return fmt.Errorf("line %d: invalid stroke_palette: %w", lineNum, err)
		}
		cfg.Palette.Stroke = colors
	case "background_palette":
		colors, err := parseColorList(value)
		if err != nil {
			return fmt.Errorf("line %d: invalid background_palette: %w", lineNum, err)
		}
		cfg.Palette.Background = colors

	// Export settings
	case "export_dir":
		cfg.Export.Dir = value
	case "export_name":
		cfg.Export.Name = value

	// Unknown directives are silently ignored to maintain forward compatibility
	default:
	}

	return nil
}

// parseBool parses a boolean value from common string representations.
// Accepts: yes, no, true, false, 1, 0
func parseBool(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "yes", "true", "1", "on":
		return true
	default:
		return false
	}
}

// parseBoolDefault is parseBool, except that a bare flag with no value
// yields def.
func parseBoolDefault(s string, def bool) bool {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return parseBool(s)
}

// parseInt parses an int from a string.
func parseInt(s string) (int, error) {
	s = strings.TrimSpace(s)
	return strconv.Atoi(s)
}

// colorNames maps common color names to RGBA values.
var colorNames = map[string]color.RGBA{
	"white":   {R: 255, G: 255, B: 255, A: 255},
	"black":   {R: 0, G: 0, B: 0, A: 255},
	"red":     {R: 255, G: 0, B: 0, A: 255},
	"green":   {R: 0, G: 255, B: 0, A: 255},
	"lime":    {R: 0, G: 255, B: 0, A: 255},
	"blue":    {R: 0, G: 0, B: 255, A: 255},
	"yellow":  {R: 255, G: 255, B: 0, A: 255},
	"cyan":    {R: 0, G: 255, B: 255, A: 255},
	"magenta": {R: 255, G: 0, B: 255, A: 255},
	"grey":    {R: 128, G: 128, B: 128, A: 255},
	"gray":    {R: 128, G: 128, B: 128, A: 255},
	"orange":  {R: 255, G: 165, B: 0, A: 255},
	"purple":  {R: 128, G: 0, B: 128, A: 255},
	"pink":    {R: 255, G: 192, B: 203, A: 255},
}

// parseColor parses a color from a name or hex value.
// Hex values can be RGB, RRGGBB or RRGGBBAA, with or without a leading #.
func parseColor(s string) (color.RGBA, error) {
	s = strings.TrimSpace(strings.ToLower(s))

	// Check named colors first
	if c, ok := colorNames[s]; ok {
		return c, nil
	}

	hex := strings.TrimPrefix(s, "#")
	switch len(hex) {
	case 3:
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]}) + "ff"
	case 6:
		hex += "ff"
	case 8:
	default:
		return color.RGBA{}, fmt.Errorf("invalid color format: %s", s)
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid hex digits in color: %s", s)
	}

	return color.RGBA{
		R: uint8(v >> 24),
		G: uint8(v >> 16),
		B: uint8(v >> 8),
		A: uint8(v),
	}, nil
}

// parseColorList parses a comma-separated list of colors.
func parseColorList(s string) ([]color.RGBA, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	parts := strings.Split(s, ",")
	colors := make([]color.RGBA, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		c, err := parseColor(part)
		if err != nil {
			return nil, err
		}
		colors = append(colors, c)
	}
	return colors, nil
}

// ParseColor parses a color value the way configuration files do.
func ParseColor(s string) (color.RGBA, error) {
	return parseColor(s)
}

// FormatColor returns c as #RRGGBB, or #RRGGBBAA when it is not opaque.
func FormatColor(c color.RGBA) string {
	if c.A == 0xFF {
		return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02X%02X%02X%02X", c.R, c.G, c.B, c.A)
}
