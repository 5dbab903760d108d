package render

import (
	"testing"
	"time"

	"github.com/opd-ai/go-kaleido/internal/kaleido"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if config.Width != 800 {
		t.Errorf("Width = %d, want 800", config.Width)
	}
	if config.Height != 600 {
		t.Errorf("Height = %d, want 600", config.Height)
	}
	if config.Title != "go-kaleido" {
		t.Errorf("Title = %q, want %q", config.Title, "go-kaleido")
	}
	if !config.Resizable || !config.ShowHUD {
		t.Error("default window should be resizable with the overlay on")
	}
	if config.ExportName != kaleido.DefaultExportName {
		t.Errorf("ExportName = %q, want %q", config.ExportName, kaleido.DefaultExportName)
	}
	if config.StatusDuration != 3*time.Second {
		t.Errorf("StatusDuration = %v, want 3s", config.StatusDuration)
	}
	if err := config.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{"valid", func(*Config) {}, false},
		{"zero width", func(c *Config) { c.Width = 0 }, true},
		{"negative width", func(c *Config) { c.Width = -100 }, true},
		{"zero height", func(c *Config) { c.Height = 0 }, true},
		{"empty export name", func(c *Config) { c.ExportName = "" }, true},
		{"minimal", func(c *Config) { c.Width, c.Height = 1, 1 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			tt.modify(&config)
			if err := config.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
