// Package config defines core configuration types for imgtext.
// These types are pure data structures with no dependency on the loader.
package config

// OutputFormat specifies how the CLI prints results.
type OutputFormat string

const (
	FormatText  OutputFormat = "text"
	FormatTable OutputFormat = "table"
	FormatJSON  OutputFormat = "json"
)

// IsValid returns true if the output format is known.
func (f OutputFormat) IsValid() bool {
	switch f {
	case FormatText, FormatTable, FormatJSON:
		return true
	default:
		return false
	}
}

// Flavor specifies the Markdown flavor the converter parses.
type Flavor string

const (
	FlavorCommonMark Flavor = "commonmark"
	FlavorGFM        Flavor = "gfm"
)

// Shaper modes.
const (
	ModeCurrent = "current"
	ModeLegacy  = "legacy"
)

// Default values shared by NewConfig and the template.
const (
	DefaultLinkColor      = "blue"
	DefaultUnderlineColor = "#0000ff"
	DefaultUnderlineWidth = 1
	DefaultGlyphWidth     = 8
	DefaultGlyphHeight    = 14
	DefaultLineHeight     = 16
	DefaultQuadSpaces     = 4
	DefaultLinkSpaces     = 1
	DefaultImageSize      = 16
)

// UnderlineConfig styles link underline bars.
type UnderlineConfig struct {
	Width float32 `mapstructure:"width" yaml:"width"`
	Color string  `mapstructure:"color" yaml:"color"`
}

// LayoutConfig tunes the offset walk of the current track.
type LayoutConfig struct {
	// CollapseWhitespace subtracts whitespace from link offsets. Shapers that
	// draw spaces as glyphs need it off.
	CollapseWhitespace *bool `mapstructure:"collapse_whitespace" yaml:"collapse_whitespace,omitempty"`

	// QuadSpaces is the number of spaces inside a quad tag.
	QuadSpaces *int `mapstructure:"quad_spaces" yaml:"quad_spaces,omitempty"`

	// LinkSpaces is the number of spaces inside a link opening tag.
	LinkSpaces *int `mapstructure:"link_spaces" yaml:"link_spaces,omitempty"`
}

// ShaperConfig configures the grid shaper.
type ShaperConfig struct {
	Mode        string  `mapstructure:"mode" yaml:"mode"`
	GlyphWidth  float32 `mapstructure:"glyph_width" yaml:"glyph_width"`
	GlyphHeight float32 `mapstructure:"glyph_height" yaml:"glyph_height"`
	LineHeight  float32 `mapstructure:"line_height" yaml:"line_height"`
	MaxColumns  int     `mapstructure:"max_columns" yaml:"max_columns"`
}

// ResourcesConfig configures image loading.
type ResourcesConfig struct {
	// Root is the directory image paths resolve against. Empty means the
	// directory of the input file.
	Root string `mapstructure:"root" yaml:"root,omitempty"`

	// Extensions are tried in order for extensionless image paths.
	Extensions []string `mapstructure:"extensions" yaml:"extensions,omitempty"`

	// CacheSize bounds the image cache; zero keeps every image.
	CacheSize int `mapstructure:"cache_size" yaml:"cache_size"`
}

// ConvertConfig configures Markdown conversion.
type ConvertConfig struct {
	Flavor      Flavor  `mapstructure:"flavor" yaml:"flavor"`
	ImageSize   int     `mapstructure:"image_size" yaml:"image_size"`
	ImageWidth  float64 `mapstructure:"image_width" yaml:"image_width"`
	ImageHeight float64 `mapstructure:"image_height" yaml:"image_height"`
}

// Config is the root configuration structure for imgtext.
type Config struct {
	// LinkColor is the color value link labels are wrapped in.
	LinkColor string `mapstructure:"link_color" yaml:"link_color"`

	Underline UnderlineConfig `mapstructure:"underline" yaml:"underline"`
	Layout    LayoutConfig    `mapstructure:"layout" yaml:"layout"`
	Shaper    ShaperConfig    `mapstructure:"shaper" yaml:"shaper"`
	Resources ResourcesConfig `mapstructure:"resources" yaml:"resources"`
	Convert   ConvertConfig   `mapstructure:"convert" yaml:"convert"`

	// CLI-level options (not persisted to config files).

	// Format specifies the output format.
	Format OutputFormat `mapstructure:"-" yaml:"-"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		LinkColor: DefaultLinkColor,
		Underline: UnderlineConfig{
			Width: DefaultUnderlineWidth,
			Color: DefaultUnderlineColor,
		},
		Layout: LayoutConfig{
			CollapseWhitespace: Bool(true),
			QuadSpaces:         Int(DefaultQuadSpaces),
			LinkSpaces:         Int(DefaultLinkSpaces),
		},
		Shaper: ShaperConfig{
			Mode:        ModeCurrent,
			GlyphWidth:  DefaultGlyphWidth,
			GlyphHeight: DefaultGlyphHeight,
			LineHeight:  DefaultLineHeight,
		},
		Convert: ConvertConfig{
			Flavor:      FlavorCommonMark,
			ImageSize:   DefaultImageSize,
			ImageWidth:  1,
			ImageHeight: 1,
		},
		Format: FormatText,
	}
}

// Bool returns a pointer to v.
func Bool(v bool) *bool { return &v }

// Int returns a pointer to v.
func Int(v int) *int { return &v }

// BoolValue returns *p, or def when p is nil.
func BoolValue(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}

// IntValue returns *p, or def when p is nil.
func IntValue(p *int, def int) int {
	if p == nil {
		return def
	}
	return *p
}
