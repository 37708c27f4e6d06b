package configloader

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/yaklabco/imgtext/pkg/config"
)

// envVarPrefix is the prefix for all imgtext environment variables.
const envVarPrefix = "IMGTEXT_"

// envFieldType represents the type of a configuration field.
type envFieldType int

const (
	envTypeString envFieldType = iota
	envTypeBool
	envTypeInt
	envTypeFloat
	envTypeSlice
)

// envMapping defines environment variable to config field mappings.
type envMapping struct {
	field       string
	typ         envFieldType
	description string
}

// envMappings maps environment variable names (without prefix) to config fields.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envMapping{
	"LINK_COLOR":          {"link_color", envTypeString, "Color value link labels are wrapped in"},
	"UNDERLINE_WIDTH":     {"underline.width", envTypeFloat, "Underline bar thickness"},
	"UNDERLINE_COLOR":     {"underline.color", envTypeString, "Underline color: a name or #rrggbb"},
	"COLLAPSE_WHITESPACE": {"layout.collapse_whitespace", envTypeBool, "Subtract whitespace from link offsets: true or false"},
	"SHAPER_MODE":         {"shaper.mode", envTypeString, "Shaper mode: current or legacy"},
	"MAX_COLUMNS":         {"shaper.max_columns", envTypeInt, "Wrap lines at this many columns (0 = no wrap)"},
	"RESOURCE_ROOT":       {"resources.root", envTypeString, "Directory image paths resolve against"},
	"RESOURCE_EXTENSIONS": {"resources.extensions", envTypeSlice, "Comma-separated image extensions to try"},
	"CACHE_SIZE":          {"resources.cache_size", envTypeInt, "Image cache capacity (0 = unbounded)"},
	"FLAVOR":              {"convert.flavor", envTypeString, "Markdown flavor: commonmark or gfm"},
	"FORMAT":              {"format", envTypeString, "Output format: text, table, or json"},
}

// LoadFromEnv applies environment variable overrides to the configuration.
// Environment variables are prefixed with IMGTEXT_ (e.g., IMGTEXT_SHAPER_MODE).
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	for envSuffix, mapping := range envMappings {
		envVar := envVarPrefix + envSuffix
		value := os.Getenv(envVar)
		if value == "" {
			continue
		}

		if err := applyEnvValue(cfg, mapping, value, envVar); err != nil {
			return err
		}
	}

	return nil
}

// applyEnvValue applies a single environment variable value to the config.
func applyEnvValue(cfg *config.Config, mapping envMapping, value, envVar string) error {
	switch mapping.typ {
	case envTypeString:
		return setStringField(cfg, mapping.field, value)
	case envTypeBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for %s: %q (expected true/false/1/0)", envVar, value)
		}
		return setBoolField(cfg, mapping.field, b)
	case envTypeInt:
		i, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer for %s: %q", envVar, value)
		}
		return setIntField(cfg, mapping.field, i)
	case envTypeFloat:
		f, err := strconv.ParseFloat(value, 32)
		if err != nil {
			return fmt.Errorf("invalid number for %s: %q", envVar, value)
		}
		return setFloatField(cfg, mapping.field, float32(f))
	case envTypeSlice:
		return setSliceField(cfg, mapping.field, parseSliceValue(value))
	default:
		return fmt.Errorf("unknown field type for %s", envVar)
	}
}

// parseSliceValue parses a comma-separated string into a slice.
// Each element is trimmed of whitespace.
func parseSliceValue(value string) []string {
	if value == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func setStringField(cfg *config.Config, field, value string) error {
	switch field {
	case "link_color":
		cfg.LinkColor = value
	case "underline.color":
		cfg.Underline.Color = value
	case "shaper.mode":
		cfg.Shaper.Mode = value
	case "resources.root":
		cfg.Resources.Root = value
	case "convert.flavor":
		cfg.Convert.Flavor = config.Flavor(value)
	case "format":
		cfg.Format = config.OutputFormat(value)
	default:
		return fmt.Errorf("unknown string field: %s", field)
	}
	return nil
}

func setBoolField(cfg *config.Config, field string, value bool) error {
	switch field {
	case "layout.collapse_whitespace":
		cfg.Layout.CollapseWhitespace = config.Bool(value)
	default:
		return fmt.Errorf("unknown boolean field: %s", field)
	}
	return nil
}

func setIntField(cfg *config.Config, field string, value int) error {
	switch field {
	case "shaper.max_columns":
		cfg.Shaper.MaxColumns = value
	case "resources.cache_size":
		cfg.Resources.CacheSize = value
	default:
		return fmt.Errorf("unknown integer field: %s", field)
	}
	return nil
}

func setFloatField(cfg *config.Config, field string, value float32) error {
	switch field {
	case "underline.width":
		cfg.Underline.Width = value
	default:
		return fmt.Errorf("unknown number field: %s", field)
	}
	return nil
}

func setSliceField(cfg *config.Config, field string, value []string) error {
	switch field {
	case "resources.extensions":
		cfg.Resources.Extensions = value
	default:
		return fmt.Errorf("unknown slice field: %s", field)
	}
	return nil
}

// GetEnvVarName returns the full environment variable name for a config field.
func GetEnvVarName(field string) string {
	for suffix, mapping := range envMappings {
		if mapping.field == field {
			return envVarPrefix + suffix
		}
	}
	return ""
}

// EnvVar describes one supported environment variable.
type EnvVar struct {
	Name        string
	Field       string
	Description string
}

// ListEnvVars returns every supported environment variable sorted by name.
func ListEnvVars() []EnvVar {
	vars := make([]EnvVar, 0, len(envMappings))
	for suffix, mapping := range envMappings {
		vars = append(vars, EnvVar{
			Name:        envVarPrefix + suffix,
			Field:       mapping.field,
			Description: mapping.description,
		})
	}
	sort.Slice(vars, func(i, j int) bool { return vars[i].Name < vars[j].Name })
	return vars
}
