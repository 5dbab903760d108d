// Package config provides configuration parsing for go-kaleido.
// This file implements the Lua configuration parser.

package config

import (
	"fmt"
	"image/color"
	"io"
	"os"
	"sync"

	"github.com/arnodel/golua/lib"
	rt "github.com/arnodel/golua/runtime"
)

// LuaConfigParser parses Lua configuration files. It uses the Golua runtime
// to execute Lua code and extracts configuration values from the
// kaleido.config table.
type LuaConfigParser struct {
	runtime *rt.Runtime
	cleanup func()
	stdout  io.Writer
	mu      sync.Mutex
}

// NewLuaConfigParser creates a new LuaConfigParser with a fresh Lua runtime.
func NewLuaConfigParser() (*LuaConfigParser, error) {
	return NewLuaConfigParserWithOutput(io.Discard)
}

// NewLuaConfigParserWithOutput creates a LuaConfigParser with custom output.
// Lua print calls write to stdout.
func NewLuaConfigParserWithOutput(stdout io.Writer) (*LuaConfigParser, error) {
	if stdout == nil {
		stdout = os.Stdout
	}

	runtime := rt.New(stdout)
	cleanup := lib.LoadAll(runtime)

	return &LuaConfigParser{
		runtime: runtime,
		cleanup: cleanup,
		stdout:  stdout,
	}, nil
}

// Parse parses a Lua configuration from content bytes.
// Exceeding the CPU or memory limit aborts the script with an error.
func (p *LuaConfigParser) Parse(content []byte) (cfg *Config, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	// golua panics when a hard limit is hit; the runtime is rebuilt afterwards.
	defer func() {
		if r := recover(); r != nil {
			cfg, err = nil, fmt.Errorf("failed to execute Lua configuration: %v", r)
			p.resetRuntime()
		}
	}()

	p.initKaleidoGlobal()

	closure, err := p.runtime.CompileAndLoadLuaChunk(
		"config",
		content,
		rt.TableValue(p.runtime.GlobalEnv()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to compile Lua configuration: %w", err)
	}

	// Execute with resource limits
	ctx := rt.RuntimeContextDef{
		HardLimits: rt.RuntimeResources{
			Cpu:    10_000_000,
			Memory: 50 * 1024 * 1024, // 50 MB
		},
	}
	p.runtime.PushContext(ctx)
	defer p.runtime.PopContext()

	thread := p.runtime.MainThread()
	if _, err := rt.Call1(thread, rt.FunctionValue(closure)); err != nil {
		return nil, fmt.Errorf("failed to execute Lua configuration: %w", err)
	}

	return p.extractConfig()
}

// resetRuntime replaces the Lua runtime with a fresh one.
func (p *LuaConfigParser) resetRuntime() {
	if p.cleanup != nil {
		p.cleanup()
	}
	p.runtime = rt.New(p.stdout)
	p.cleanup = lib.LoadAll(p.runtime)
}

// initKaleidoGlobal resets the kaleido global table so a parser can be
// reused across reloads.
func (p *LuaConfigParser) initKaleidoGlobal() {
	kaleidoTable := rt.NewTable()
	kaleidoTable.Set(rt.StringValue("config"), rt.TableValue(rt.NewTable()))
	p.runtime.GlobalEnv().Set(rt.StringValue("kaleido"), rt.TableValue(kaleidoTable))
}

// extractConfig extracts configuration values from the kaleido global table.
func (p *LuaConfigParser) extractConfig() (*Config, error) {
	cfg := DefaultConfig()

	kaleidoVal := p.runtime.GlobalEnv().Get(rt.StringValue("kaleido"))
	if kaleidoVal == rt.NilValue {
		return &cfg, nil
	}

	kaleidoTable, ok := kaleidoVal.TryTable()
	if !ok {
		return nil, fmt.Errorf("kaleido is not a table")
	}

	configVal := kaleidoTable.Get(rt.StringValue("config"))
	if configTable, ok := configVal.TryTable(); ok {
		if err := p.extractConfigTable(&cfg, configTable); err != nil {
			return nil, err
		}
	}

	return &cfg, nil
}

// extractConfigTable extracts configuration values from the kaleido.config table.
func (p *LuaConfigParser) extractConfigTable(cfg *Config, table *rt.Table) error {
	// Window
	if val := getTableInt(table, "width"); val != nil {
		cfg.Window.Width = *val
	}
	if val := getTableInt(table, "height"); val != nil {
		cfg.Window.Height = *val
	}
	if val := getTableString(table, "title"); val != nil {
		cfg.Window.Title = *val
	}
	if val := getTableBool(table, "resizable"); val != nil {
		cfg.Window.Resizable = *val
	}
	if val := getTableBool(table, "show_hud"); val != nil {
		cfg.Window.ShowHUD = *val
	}

	// Drawing
	if val := getTableInt(table, "symmetry"); val != nil {
		cfg.Drawing.Symmetry = *val
	}
	if val := getTableInt(table, "stroke_weight"); val != nil {
		cfg.Drawing.StrokeWeight = *val
	}
	colorFields := []struct {
		key    string
		target *color.RGBA
	}{
		{"stroke_color", &cfg.Drawing.StrokeColor},
		{"background_color", &cfg.Drawing.BackgroundColor},
	}
	for _, cf := range colorFields {
		if val := getTableString(table, cf.key); val != nil {
			c, err := parseColor(*val)
			if err != nil {
				return fmt.Errorf("invalid %s: %w", cf.key, err)
			}
			*cf.target = c
		}
	}

	// Palettes
	paletteFields := []struct {
		key    string
		target *[]color.RGBA
	}{
		{"stroke_palette", &cfg.Palette.Stroke},
		{"background_palette", &cfg.Palette.Background},
	}
	for _, pf := range paletteFields {
		colors, ok, err := getTableColors(table, pf.key)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", pf.key, err)
		}
		if ok {
			*pf.target = colors
		}
	}

	// Export
	if val := getTableString(table, "export_dir"); val != nil {
		cfg.Export.Dir = *val
	}
	if val := getTableString(table, "export_name"); val != nil {
		cfg.Export.Name = *val
	}

	return nil
}

// Close releases resources associated with the parser's Lua runtime.
func (p *LuaConfigParser) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cleanup != nil {
		p.cleanup()
		p.cleanup = nil
	}
	return nil
}

// getTableBool retrieves a boolean value from a Lua table.
// Returns nil if the key doesn't exist or is not a boolean.
func getTableBool(table *rt.Table, key string) *bool {
	val := table.Get(rt.StringValue(key))
	if val == rt.NilValue {
		return nil
	}

	if b, ok := val.TryBool(); ok {
		return &b
	}

	// Handle string "true"/"false" for compatibility
	if s, ok := val.TryString(); ok {
		b := parseBool(s)
		return &b
	}

	return nil
}

// getTableString retrieves a string value from a Lua table.
// Returns nil if the key doesn't exist or is not a string.
func getTableString(table *rt.Table, key string) *string {
	val := table.Get(rt.StringValue(key))
	if val == rt.NilValue {
		return nil
	}

	if s, ok := val.TryString(); ok {
		return &s
	}

	return nil
}

// getTableInt retrieves an int value from a Lua table.
// Returns nil if the key doesn't exist or is not a number.
func getTableInt(table *rt.Table, key string) *int {
	val := table.Get(rt.StringValue(key))
	if val == rt.NilValue {
		return nil
	}

	if n, ok := val.TryInt(); ok {
		i := int(n)
		return &i
	}

	// Try float conversion (truncate)
	if f, ok := val.TryFloat(); ok {
		i := int(f)
		return &i
	}

	return nil
}

// getTableColors retrieves a color list stored either as a Lua array of
// strings or as one comma-separated string. The boolean is false if the key
// doesn't exist.
func getTableColors(table *rt.Table, key string) ([]color.RGBA, bool, error) {
	val := table.Get(rt.StringValue(key))
	if val == rt.NilValue {
		return nil, false, nil
	}

	if s, ok := val.TryString(); ok {
		colors, err := parseColorList(s)
		return colors, true, err
	}

	arr, ok := val.TryTable()
	if !ok {
		return nil, false, fmt.Errorf("expected a table of colors or a comma-separated string")
	}

	var colors []color.RGBA
	for i := int64(1); ; i++ {
		item := arr.Get(rt.IntValue(i))
		if item == rt.NilValue {
			break
		}
		s, ok := item.TryString()
		if !ok {
			return nil, false, fmt.Errorf("entry %d is not a string", i)
		}
		c, err := parseColor(s)
		if err != nil {
			return nil, false, fmt.Errorf("entry %d: %w", i, err)
		}
		colors = append(colors, c)
	}
	return colors, true, nil
}
