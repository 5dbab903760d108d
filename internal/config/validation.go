// Package config provides configuration parsing and validation for go-kaleido.
// This file implements validation for configuration values.
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/opd-ai/go-kaleido/internal/kaleido"
)

// ValidationError represents a configuration validation error.
// It contains the field name and a description of the issue.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (ve ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", ve.Field, ve.Message)
}

// ValidationResult holds the results of a configuration validation.
type ValidationResult struct {
	// Errors contains all validation errors found.
	Errors []ValidationError
	// Warnings contains non-fatal issues.
	Warnings []ValidationError
}

// IsValid returns true if there are no validation errors.
func (vr *ValidationResult) IsValid() bool {
	return len(vr.Errors) == 0
}

// Error returns a combined error message if there are errors, nil otherwise.
func (vr *ValidationResult) Error() error {
	if len(vr.Errors) == 0 {
		return nil
	}

	messages := make([]string, 0, len(vr.Errors))
	for _, e := range vr.Errors {
		messages = append(messages, e.Error())
	}
	return fmt.Errorf("validation failed: %s", strings.Join(messages, "; "))
}

// AddError adds a validation error.
func (vr *ValidationResult) AddError(field, message string) {
	vr.Errors = append(vr.Errors, ValidationError{Field: field, Message: message})
}

// AddWarning adds a validation warning.
func (vr *ValidationResult) AddWarning(field, message string) {
	vr.Warnings = append(vr.Warnings, ValidationError{Field: field, Message: message})
}

// Merge combines another ValidationResult into this one.
func (vr *ValidationResult) Merge(other *ValidationResult) {
	if other == nil {
		return
	}
	vr.Errors = append(vr.Errors, other.Errors...)
	vr.Warnings = append(vr.Warnings, other.Warnings...)
}

// Validator checks configuration values.
type Validator struct {
	// strictMode turns warnings about unusual values into errors.
	strictMode bool
}

// NewValidator creates a new Validator with default settings.
func NewValidator() *Validator {
	return &Validator{}
}

// WithStrictMode enables strict validation where warnings become errors.
func (v *Validator) WithStrictMode(strict bool) *Validator {
	v.strictMode = strict
	return v
}

// Validate performs validation of a Config.
func (v *Validator) Validate(cfg *Config) *ValidationResult {
	result := &ValidationResult{}

	v.validateWindow(&cfg.Window, result)
	v.validateDrawing(&cfg.Drawing, result)
	v.validatePalette(&cfg.Palette, result)
	v.validateExport(&cfg.Export, result)

	if v.strictMode {
		result.Errors = append(result.Errors, result.Warnings...)
		result.Warnings = nil
	}
	return result
}

// validateWindow validates WindowConfig settings.
func (v *Validator) validateWindow(wc *WindowConfig, result *ValidationResult) {
	if wc.Width <= 0 {
		result.AddError("window.width", fmt.Sprintf("must be positive, got %d", wc.Width))
	}
	if wc.Height <= 0 {
		result.AddError("window.height", fmt.Sprintf("must be positive, got %d", wc.Height))
	}

	const maxDimension = 10000
	if wc.Width > maxDimension {
		result.AddWarning("window.width", fmt.Sprintf("unusually large value %d", wc.Width))
	}
	if wc.Height > maxDimension {
		result.AddWarning("window.height", fmt.Sprintf("unusually large value %d", wc.Height))
	}
}

// validateDrawing validates the initial style parameters.
func (v *Validator) validateDrawing(dc *DrawingConfig, result *ValidationResult) {
	if dc.Symmetry < kaleido.MinSymmetry || dc.Symmetry > kaleido.MaxSymmetry {
		result.AddError("drawing.symmetry", fmt.Sprintf("must be in [%d,%d], got %d",
			kaleido.MinSymmetry, kaleido.MaxSymmetry, dc.Symmetry))
	}
	if dc.StrokeWeight < kaleido.MinStrokeWeight || dc.StrokeWeight > kaleido.MaxStrokeWeight {
		result.AddError("drawing.stroke_weight", fmt.Sprintf("must be in [%d,%d], got %d",
			kaleido.MinStrokeWeight, kaleido.MaxStrokeWeight, dc.StrokeWeight))
	}
	if dc.StrokeColor.A == 0 {
		result.AddWarning("drawing.stroke_color", "fully transparent strokes are invisible")
	}
	if dc.BackgroundColor.A != 0xFF {
		result.AddWarning("drawing.background_color", "translucent backgrounds are exported with alpha")
	}
	if dc.StrokeColor == dc.BackgroundColor {
		result.AddWarning("drawing.stroke_color", "same as background_color")
	}
}

// validatePalette validates the color swatches.
func (v *Validator) validatePalette(pc *PaletteConfig, result *ValidationResult) {
	if len(pc.Stroke) == 0 {
		result.AddError("palette.stroke", "must contain at least one color")
	}
	if len(pc.Background) == 0 {
		result.AddError("palette.background", "must contain at least one color")
	}
	if len(pc.Stroke) > MaxPaletteSize {
		result.AddWarning("palette.stroke", fmt.Sprintf("only the first %d of %d colors have keys",
			MaxPaletteSize, len(pc.Stroke)))
	}
}

// validateExport validates ExportConfig settings.
func (v *Validator) validateExport(ec *ExportConfig, result *ValidationResult) {
	name := strings.TrimSpace(ec.Name)
	switch {
	case name == "":
		result.AddError("export.name", "must not be empty")
	case strings.ContainsAny(name, `/\`) || name != filepath.Base(name):
		result.AddError("export.name", fmt.Sprintf("must be a plain file name, got %q", ec.Name))
	case !strings.EqualFold(filepath.Ext(name), ".png"):
		result.AddWarning("export.name", fmt.Sprintf("%q does not end in .png", ec.Name))
	}
}

// ValidateConfig validates a configuration and returns an error if invalid.
// Warnings are ignored; use NewValidator().Validate() to inspect them.
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}
	return NewValidator().Validate(cfg).Error()
}

// ValidateConfigStrict validates a configuration treating warnings as errors.
func ValidateConfigStrict(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}
	return NewValidator().WithStrictMode(true).Validate(cfg).Error()
}
