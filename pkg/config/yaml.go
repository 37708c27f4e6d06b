package config

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ToYAML serializes the configuration to YAML format.
func (c *Config) ToYAML() ([]byte, error) {
	if c == nil {
		return nil, nil
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(YAMLIndent())

	if err := encoder.Encode(c); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}

	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("close encoder: %w", err)
	}

	return buf.Bytes(), nil
}

// ToYAMLWithHeader serializes the configuration with a header comment.
func (c *Config) ToYAMLWithHeader(header string) ([]byte, error) {
	yamlBytes, err := c.ToYAML()
	if err != nil {
		return nil, err
	}

	if header == "" {
		return yamlBytes, nil
	}

	var buf bytes.Buffer
	buf.WriteString(header)
	if header[len(header)-1] != '\n' {
		buf.WriteByte('\n')
	}
	buf.WriteByte('\n')
	buf.Write(yamlBytes)

	return buf.Bytes(), nil
}

// FromYAML parses a configuration from YAML bytes. Keys absent from data keep
// their zero value; layer it over NewConfig with the loader to get defaults.
func FromYAML(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}

	return cfg, nil
}

// Clone creates a deep copy of the configuration.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}

	yamlBytes, err := c.ToYAML()
	if err != nil {
		return c.deepCopy()
	}

	clone, err := FromYAML(yamlBytes)
	if err != nil {
		return c.deepCopy()
	}

	clone.Format = c.Format

	return clone
}

// deepCopy is the fallback when the YAML round-trip fails.
func (c *Config) deepCopy() *Config {
	clone := *c

	if c.Resources.Extensions != nil {
		clone.Resources.Extensions = make([]string, len(c.Resources.Extensions))
		copy(clone.Resources.Extensions, c.Resources.Extensions)
	}
	if c.Layout.CollapseWhitespace != nil {
		clone.Layout.CollapseWhitespace = Bool(*c.Layout.CollapseWhitespace)
	}
	if c.Layout.QuadSpaces != nil {
		clone.Layout.QuadSpaces = Int(*c.Layout.QuadSpaces)
	}
	if c.Layout.LinkSpaces != nil {
		clone.Layout.LinkSpaces = Int(*c.Layout.LinkSpaces)
	}

	return &clone
}

// YAMLIndent returns the default YAML indentation.
func YAMLIndent() int {
	return 2
}
