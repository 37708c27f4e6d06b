package configloader

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yaklabco/imgtext/pkg/config"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func isolated(dir string) LoadOptions {
	return LoadOptions{
		WorkingDir:         dir,
		IgnoreSystemConfig: true,
		IgnoreUserConfig:   true,
		IgnoreEnv:          true,
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	result, err := Load(context.Background(), isolated(t.TempDir()))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config == nil {
		t.Fatal("Load() returned nil config")
	}
	if result.Config.LinkColor != config.DefaultLinkColor {
		t.Errorf("expected link color %q, got %q", config.DefaultLinkColor, result.Config.LinkColor)
	}
	if result.Config.Shaper.Mode != config.ModeCurrent {
		t.Errorf("expected mode %q, got %q", config.ModeCurrent, result.Config.Shaper.Mode)
	}
	if len(result.LoadedFrom) != 0 {
		t.Errorf("expected no loaded files, got %v", result.LoadedFrom)
	}
}

func TestLoad_ProjectConfig(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".imgtext.yml"), `
link_color: red
layout:
  collapse_whitespace: false
shaper:
  mode: legacy
`)

	result, err := Load(context.Background(), isolated(tmpDir))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	cfg := result.Config
	if cfg.LinkColor != "red" {
		t.Errorf("expected link color red, got %q", cfg.LinkColor)
	}
	if config.BoolValue(cfg.Layout.CollapseWhitespace, true) {
		t.Error("expected collapse_whitespace false from project config")
	}
	if cfg.Shaper.Mode != config.ModeLegacy {
		t.Errorf("expected mode legacy, got %q", cfg.Shaper.Mode)
	}
	if cfg.Shaper.GlyphWidth != config.DefaultGlyphWidth {
		t.Errorf("expected default glyph width to survive, got %v", cfg.Shaper.GlyphWidth)
	}
	if config.IntValue(cfg.Layout.QuadSpaces, -1) != config.DefaultQuadSpaces {
		t.Error("expected default quad_spaces to survive")
	}
	if len(result.LoadedFrom) != 1 {
		t.Errorf("expected 1 loaded file, got %d", len(result.LoadedFrom))
	}
}

func TestLoad_ProjectConfigUpward(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	if err := os.Mkdir(filepath.Join(root, ".git"), 0o755); err != nil {
		t.Fatal(err)
	}
	nested := filepath.Join(root, "docs", "guide")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, filepath.Join(root, "imgtext.yaml"), "link_color: green\n")

	result, err := Load(context.Background(), isolated(nested))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if result.Config.LinkColor != "green" {
		t.Errorf("expected link color green, got %q", result.Config.LinkColor)
	}
}

func TestLoad_ExplicitConfig(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".imgtext.yml"), "link_color: red\nresources:\n  cache_size: 4\n")
	customPath := filepath.Join(tmpDir, "custom-config.yml")
	writeFile(t, customPath, "link_color: yellow\n")

	opts := isolated(tmpDir)
	opts.ExplicitPath = customPath

	result, err := Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config.LinkColor != "yellow" {
		t.Errorf("expected explicit link color yellow, got %q", result.Config.LinkColor)
	}
	if result.Config.Resources.CacheSize != 4 {
		t.Errorf("expected project cache_size 4, got %d", result.Config.Resources.CacheSize)
	}
	if len(result.LoadedFrom) != 2 || result.LoadedFrom[1] != customPath {
		t.Errorf("expected explicit config loaded last, got %v", result.LoadedFrom)
	}
}

func TestLoad_CLIOverrides(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".imgtext.yml"), "shaper:\n  mode: legacy\n  max_columns: 10\n")

	opts := isolated(tmpDir)
	opts.CLIConfig = &config.Config{
		Shaper: config.ShaperConfig{Mode: config.ModeCurrent},
		Format: config.FormatJSON,
	}

	result, err := Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config.Shaper.Mode != config.ModeCurrent {
		t.Errorf("expected mode current (CLI override), got %q", result.Config.Shaper.Mode)
	}
	if result.Config.Shaper.MaxColumns != 10 {
		t.Errorf("expected max_columns 10 from project, got %d", result.Config.Shaper.MaxColumns)
	}
	if result.Config.Format != config.FormatJSON {
		t.Errorf("expected format json (CLI override), got %q", result.Config.Format)
	}
}

func TestLoad_InvalidConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		field   string
	}{
		{"mode", "shaper:\n  mode: fancy\n", "shaper.mode"},
		{"flavor", "convert:\n  flavor: rst\n", "convert.flavor"},
		{"link color", "link_color: \"<red>\"\n", "link_color"},
		{"underline color", "underline:\n  color: notacolor\n", "underline.color"},
		{"extension", "resources:\n  extensions: [png]\n", "resources.extensions[0]"},
		{"cache size", "resources:\n  cache_size: -1\n", "resources.cache_size"},
		{"quad spaces", "layout:\n  quad_spaces: -2\n", "layout.quad_spaces"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tmpDir := t.TempDir()
			path := filepath.Join(tmpDir, ".imgtext.yml")
			writeFile(t, path, tt.content)

			_, err := Load(context.Background(), isolated(tmpDir))
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected validation error, got %v", err)
			}
			if verr.Field != tt.field {
				t.Errorf("expected field %q, got %q", tt.field, verr.Field)
			}
			if verr.FilePath != path {
				t.Errorf("expected file path %q, got %q", path, verr.FilePath)
			}
		})
	}
}

func TestLoad_Warnings(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".imgtext.yml"), "shaper:\n  glyph_height: 20\n  line_height: 18\n")

	result, err := Load(context.Background(), isolated(tmpDir))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(result.Warnings) == 0 || !strings.Contains(result.Warnings[0], "line_height") {
		t.Errorf("expected line_height warning, got %v", result.Warnings)
	}
}

func TestLoad_MalformedYAML(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".imgtext.yml"), "shaper: [\n")

	if _, err := Load(context.Background(), isolated(tmpDir)); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestLoad_ContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := Load(ctx, isolated(t.TempDir())); err == nil {
		t.Fatal("expected context cancellation error")
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("IMGTEXT_SHAPER_MODE", "legacy")
	t.Setenv("IMGTEXT_COLLAPSE_WHITESPACE", "false")
	t.Setenv("IMGTEXT_MAX_COLUMNS", "32")
	t.Setenv("IMGTEXT_UNDERLINE_WIDTH", "2.5")
	t.Setenv("IMGTEXT_RESOURCE_EXTENSIONS", ".png, .webp")

	cfg := config.NewConfig()
	if err := LoadFromEnv(cfg); err != nil {
		t.Fatalf("LoadFromEnv() error = %v", err)
	}

	if cfg.Shaper.Mode != config.ModeLegacy {
		t.Errorf("expected mode legacy, got %q", cfg.Shaper.Mode)
	}
	if config.BoolValue(cfg.Layout.CollapseWhitespace, true) {
		t.Error("expected collapse_whitespace false")
	}
	if cfg.Shaper.MaxColumns != 32 {
		t.Errorf("expected max_columns 32, got %d", cfg.Shaper.MaxColumns)
	}
	if cfg.Underline.Width != 2.5 {
		t.Errorf("expected underline width 2.5, got %v", cfg.Underline.Width)
	}
	if got := strings.Join(cfg.Resources.Extensions, "|"); got != ".png|.webp" {
		t.Errorf("expected extensions .png|.webp, got %q", got)
	}
}

func TestLoadFromEnv_Invalid(t *testing.T) {
	t.Setenv("IMGTEXT_CACHE_SIZE", "lots")

	err := LoadFromEnv(config.NewConfig())
	if err == nil || !strings.Contains(err.Error(), "IMGTEXT_CACHE_SIZE") {
		t.Fatalf("expected error naming IMGTEXT_CACHE_SIZE, got %v", err)
	}
}

func TestEnvVarNames(t *testing.T) {
	t.Parallel()

	if got := GetEnvVarName("shaper.mode"); got != "IMGTEXT_SHAPER_MODE" {
		t.Errorf("GetEnvVarName(shaper.mode) = %q", got)
	}

	vars := ListEnvVars()
	if len(vars) != len(envMappings) {
		t.Fatalf("expected %d env vars, got %d", len(envMappings), len(vars))
	}
	for i := 1; i < len(vars); i++ {
		if vars[i-1].Name > vars[i].Name {
			t.Fatalf("env vars not sorted: %q before %q", vars[i-1].Name, vars[i].Name)
		}
	}
}

func TestMergeAll(t *testing.T) {
	t.Parallel()

	merged := MergeAll(
		config.NewConfig(),
		&config.Config{LinkColor: "red"},
		&config.Config{Layout: config.LayoutConfig{CollapseWhitespace: config.Bool(false)}},
		&config.Config{Resources: config.ResourcesConfig{Extensions: []string{".gif"}}},
	)

	if merged.LinkColor != "red" {
		t.Errorf("expected red, got %q", merged.LinkColor)
	}
	if *merged.Layout.CollapseWhitespace {
		t.Error("expected false to override true")
	}
	if len(merged.Resources.Extensions) != 1 {
		t.Errorf("expected replaced extensions, got %v", merged.Resources.Extensions)
	}
	if MergeAll() != nil {
		t.Error("expected nil for no configs")
	}
}

func TestParseColor(t *testing.T) {
	t.Parallel()

	c, err := ParseColor("#ff0000")
	if err != nil {
		t.Fatalf("ParseColor() error = %v", err)
	}
	if c.R != 0xff || c.G != 0 || c.B != 0 {
		t.Errorf("unexpected color %v", c)
	}

	if _, err := ParseColor("blue"); err != nil {
		t.Errorf("expected named color to parse: %v", err)
	}
	if _, err := ParseColor("notacolor"); err == nil {
		t.Error("expected error for unknown color name")
	}
}

func TestWriteTemplate(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), DefaultProjectFile)

	if err := WriteTemplate(path, InitOptions{NonInteractive: true}); err != nil {
		t.Fatalf("WriteTemplate() error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "# imgtext configuration") {
		t.Errorf("unexpected template header: %q", data)
	}

	err = WriteTemplate(path, InitOptions{NonInteractive: true})
	if !errors.Is(err, ErrConfigExists) {
		t.Fatalf("expected ErrConfigExists, got %v", err)
	}

	var out bytes.Buffer
	err = WriteTemplate(path, InitOptions{In: strings.NewReader("n\n"), Out: &out})
	if !errors.Is(err, ErrConfigExists) {
		t.Fatalf("expected declined overwrite, got %v", err)
	}
	if !strings.Contains(out.String(), "Overwrite?") {
		t.Errorf("expected prompt, got %q", out.String())
	}

	opts := InitOptions{In: strings.NewReader("yes\n"), Out: &out}
	opts.Template.Full = true
	if err := WriteTemplate(path, opts); err != nil {
		t.Fatalf("expected confirmed overwrite, got %v", err)
	}

	opts = InitOptions{Force: true}
	opts.Template.Format = "json"
	if err := WriteTemplate(path, opts); err != nil {
		t.Fatalf("expected forced overwrite, got %v", err)
	}
}
