package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// FromFile reads path and decodes it into a Config, picking the decoder from
// the file extension. Recognized extensions are .yaml, .yml, and .json.
func FromFile(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		return FromYAML(raw)
	case ".json":
		return FromJSON(raw)
	default:
		return Config{}, fmt.Errorf("config: unrecognized extension %q (want .yaml, .yml, or .json)", ext)
	}
}

// FromYAML decodes a YAML document into a Config. The top level must be a
// mapping.
func FromYAML(raw []byte) (Config, error) {
	var data map[string]any
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return Config{}, fmt.Errorf("config: decode yaml: %w", err)
	}
	return New(data), nil
}

// FromJSON decodes a JSON document into a Config. The top level must be an
// object.
func FromJSON(raw []byte) (Config, error) {
	var data map[string]any
	if err := json.Unmarshal(raw, &data); err != nil {
		return Config{}, fmt.Errorf("config: decode json: %w", err)
	}
	return New(data), nil
}
