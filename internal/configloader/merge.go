package configloader

import "github.com/yaklabco/imgtext/pkg/config"

// merge combines two configurations, with override taking precedence over base.
// The merge follows these rules:
//   - Scalar values: override overwrites base if override is non-zero
//   - Pointers: override overwrites base if non-nil, so false and 0 can be set
//   - Slices: override replaces base entirely if override is non-nil
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := *base

	if override.LinkColor != "" {
		result.LinkColor = override.LinkColor
	}
	if override.Format != "" {
		result.Format = override.Format
	}

	if override.Underline.Width != 0 {
		result.Underline.Width = override.Underline.Width
	}
	if override.Underline.Color != "" {
		result.Underline.Color = override.Underline.Color
	}

	if override.Layout.CollapseWhitespace != nil {
		result.Layout.CollapseWhitespace = override.Layout.CollapseWhitespace
	}
	if override.Layout.QuadSpaces != nil {
		result.Layout.QuadSpaces = override.Layout.QuadSpaces
	}
	if override.Layout.LinkSpaces != nil {
		result.Layout.LinkSpaces = override.Layout.LinkSpaces
	}

	result.Shaper = mergeShaper(base.Shaper, override.Shaper)

	if override.Resources.Root != "" {
		result.Resources.Root = override.Resources.Root
	}
	if override.Resources.Extensions != nil {
		result.Resources.Extensions = override.Resources.Extensions
	}
	if override.Resources.CacheSize != 0 {
		result.Resources.CacheSize = override.Resources.CacheSize
	}

	if override.Convert.Flavor != "" {
		result.Convert.Flavor = override.Convert.Flavor
	}
	if override.Convert.ImageSize != 0 {
		result.Convert.ImageSize = override.Convert.ImageSize
	}
	if override.Convert.ImageWidth != 0 {
		result.Convert.ImageWidth = override.Convert.ImageWidth
	}
	if override.Convert.ImageHeight != 0 {
		result.Convert.ImageHeight = override.Convert.ImageHeight
	}

	return &result
}

func mergeShaper(base, override config.ShaperConfig) config.ShaperConfig {
	result := base

	if override.Mode != "" {
		result.Mode = override.Mode
	}
	if override.GlyphWidth != 0 {
		result.GlyphWidth = override.GlyphWidth
	}
	if override.GlyphHeight != 0 {
		result.GlyphHeight = override.GlyphHeight
	}
	if override.LineHeight != 0 {
		result.LineHeight = override.LineHeight
	}
	if override.MaxColumns != 0 {
		result.MaxColumns = override.MaxColumns
	}

	return result
}

// MergeAll merges multiple configurations in order, with later configs taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for i := 1; i < len(configs); i++ {
		result = merge(result, configs[i])
	}
	return result
}
