package configloader

import (
	"fmt"
	"image/color"
	"strings"

	"cogentcore.org/core/colors"

	"github.com/yaklabco/imgtext/pkg/config"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "shaper.mode").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string

	// Line is the line number in the config file (if known).
	Line int
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string

	if e.FilePath != "" {
		if e.Line > 0 {
			parts = append(parts, fmt.Sprintf("%s:%d", e.FilePath, e.Line))
		} else {
			parts = append(parts, e.FilePath)
		}
	}

	if e.Field != "" {
		parts = append(parts, e.Field)
	}

	parts = append(parts, e.Message)

	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues.
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// HasWarnings returns true if there are any warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// AllMessages returns all error and warning messages combined.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

func (r *ValidationResult) errorf(field string, value any, format string, args ...any) {
	r.Errors = append(r.Errors, ValidationError{
		Field:   field,
		Value:   value,
		Message: fmt.Sprintf(format, args...),
	})
}

func (r *ValidationResult) warnf(field string, value any, format string, args ...any) {
	r.Warnings = append(r.Warnings, ValidationError{
		Field:   field,
		Value:   value,
		Message: fmt.Sprintf(format, args...),
	})
}

// knownFlavors lists valid flavor values.
//
//nolint:gochecknoglobals // Read-only lookup table.
var knownFlavors = map[config.Flavor]bool{
	config.FlavorCommonMark: true,
	config.FlavorGFM:        true,
}

// knownModes lists valid shaper mode values.
//
//nolint:gochecknoglobals // Read-only lookup table.
var knownModes = map[string]bool{
	config.ModeCurrent: true,
	config.ModeLegacy:  true,
}

// Validate checks a configuration for errors and warnings. Zero values are
// treated as unset so partial file layers validate too.
func Validate(cfg *config.Config) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	if cfg.LinkColor != "" && strings.ContainsAny(cfg.LinkColor, "<> \t\n") {
		result.errorf("link_color", cfg.LinkColor,
			"invalid link color %q; must not contain spaces or angle brackets", cfg.LinkColor)
	}

	if cfg.Format != "" && !cfg.Format.IsValid() {
		result.errorf("format", cfg.Format,
			"invalid format %q; must be one of: text, table, json", cfg.Format)
	}

	validateUnderline(cfg, result)
	validateLayout(cfg, result)
	validateShaper(cfg, result)
	validateResources(cfg, result)
	validateConvert(cfg, result)

	return result
}

func validateUnderline(cfg *config.Config, result *ValidationResult) {
	if cfg.Underline.Width < 0 {
		result.errorf("underline.width", cfg.Underline.Width, "underline width must be >= 0")
	}

	if cfg.Underline.Color != "" {
		if _, err := ParseColor(cfg.Underline.Color); err != nil {
			result.errorf("underline.color", cfg.Underline.Color, "invalid color %q: %v", cfg.Underline.Color, err)
		}
	}
}

func validateLayout(cfg *config.Config, result *ValidationResult) {
	if p := cfg.Layout.QuadSpaces; p != nil && *p < 0 {
		result.errorf("layout.quad_spaces", *p, "quad_spaces must be >= 0")
	}
	if p := cfg.Layout.LinkSpaces; p != nil && *p < 0 {
		result.errorf("layout.link_spaces", *p, "link_spaces must be >= 0")
	}
}

func validateShaper(cfg *config.Config, result *ValidationResult) {
	s := cfg.Shaper

	if s.Mode != "" && !knownModes[strings.ToLower(s.Mode)] {
		result.errorf("shaper.mode", s.Mode, "invalid shaper mode %q; must be one of: current, legacy", s.Mode)
	}

	metrics := []struct {
		field string
		value float32
	}{
		{"shaper.glyph_width", s.GlyphWidth},
		{"shaper.glyph_height", s.GlyphHeight},
		{"shaper.line_height", s.LineHeight},
	}
	for _, m := range metrics {
		if m.value < 0 {
			result.errorf(m.field, m.value, "glyph metrics must be > 0")
		}
	}

	if s.GlyphHeight > 0 && s.LineHeight > 0 && s.LineHeight <= s.GlyphHeight {
		result.warnf("shaper.line_height", s.LineHeight,
			"line_height %g does not exceed glyph_height %g; it will be raised", s.LineHeight, s.GlyphHeight)
	}

	if s.MaxColumns < 0 {
		result.errorf("shaper.max_columns", s.MaxColumns, "max_columns must be >= 0 (0 disables wrapping)")
	}
}

func validateResources(cfg *config.Config, result *ValidationResult) {
	if cfg.Resources.CacheSize < 0 {
		result.errorf("resources.cache_size", cfg.Resources.CacheSize, "cache_size must be >= 0 (0 means unbounded)")
	}

	for i, ext := range cfg.Resources.Extensions {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			result.errorf(fmt.Sprintf("resources.extensions[%d]", i), ext,
				"invalid extension %q; must start with a dot", ext)
		}
	}
}

func validateConvert(cfg *config.Config, result *ValidationResult) {
	c := cfg.Convert

	if c.Flavor != "" && !knownFlavors[c.Flavor] {
		result.errorf("convert.flavor", c.Flavor, "invalid flavor %q; must be one of: commonmark, gfm", c.Flavor)
	}
	if c.ImageSize < 0 {
		result.errorf("convert.image_size", c.ImageSize, "image_size must be > 0")
	}
	if c.ImageWidth < 0 || c.ImageHeight < 0 {
		result.errorf("convert.image_width", c.ImageWidth, "image scale factors must be > 0")
	}
}

// ValidateWithFile validates configuration and includes file path in errors.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)

	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}

	return result
}

// ParseColor parses a color name, #rrggbb, rgb() or hsl() value. Relative
// forms such as lighten-20 apply to black.
func ParseColor(s string) (color.RGBA, error) {
	c, err := colors.FromString(s, color.Black)
	if err != nil {
		return c, fmt.Errorf("parse color: %w", err)
	}
	return c, nil
}

// IsValidFlavor returns true if the flavor is valid.
func IsValidFlavor(f config.Flavor) bool {
	return knownFlavors[f]
}

// IsValidMode returns true if the shaper mode is valid.
func IsValidMode(mode string) bool {
	return knownModes[strings.ToLower(mode)]
}
