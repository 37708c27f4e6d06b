package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full writes every key with its default value. A minimal template
	// comments out everything except the link color.
	Full bool

	// Format is the output format: "yaml" or "json".
	Format string
}

// GenerateTemplate creates a configuration file template.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString("\n\n")

	for _, section := range templateSections() {
		buf.WriteString("# " + section.comment + "\n")
		body := strings.TrimRight(section.body, "\n")
		if !opts.Full && !section.always {
			body = commentOut(body)
		}
		buf.WriteString(body)
		buf.WriteString("\n\n")
	}

	out := bytes.TrimRight(buf.Bytes(), "\n")
	out = append(out, '\n')

	if opts.Format == "json" {
		return templateToJSON(out)
	}

	return out, nil
}

type templateSection struct {
	comment string
	body    string
	always  bool
}

func templateSections() []templateSection {
	return []templateSection{
		{
			comment: "Color value link labels are wrapped in: a name or #rrggbb",
			body:    "link_color: " + DefaultLinkColor,
			always:  true,
		},
		{
			comment: "Underline bars drawn under link labels",
			body: `underline:
  width: 1
  color: "` + DefaultUnderlineColor + `"`,
		},
		{
			comment: "Offset walk of the current geometry track",
			body: `layout:
  collapse_whitespace: true
  quad_spaces: 4
  link_spaces: 1`,
		},
		{
			comment: "Grid shaper: mode is current or legacy; max_columns 0 disables wrapping",
			body: `shaper:
  mode: current
  glyph_width: 8
  glyph_height: 14
  line_height: 16
  max_columns: 0`,
		},
		{
			comment: "Image loading: root defaults to the input file's directory; cache_size 0 is unbounded",
			body: `resources:
  root: ""
  extensions: [".png", ".jpg", ".jpeg", ".gif", ".bmp", ".webp"]
  cache_size: 0`,
		},
		{
			comment: "Markdown conversion: flavor is commonmark or gfm",
			body: `convert:
  flavor: commonmark
  image_size: 16
  image_width: 1
  image_height: 1`,
		},
	}
}

func commentOut(body string) string {
	lines := strings.Split(body, "\n")
	for i, line := range lines {
		lines[i] = "# " + line
	}
	return strings.Join(lines, "\n")
}

// templateToJSON converts a YAML template to JSON. Comments, and with them
// commented-out keys, are dropped.
func templateToJSON(yamlContent []byte) ([]byte, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(yamlContent, &doc); err != nil {
		return nil, fmt.Errorf("parse template: %w", err)
	}

	jsonBytes, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal JSON: %w", err)
	}

	return append(jsonBytes, '\n'), nil
}

// DefaultTemplateHeader returns the default header for generated configs.
func DefaultTemplateHeader() string {
	return `# imgtext configuration
# See: https://github.com/yaklabco/imgtext`
}
