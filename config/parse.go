package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml"
	"gopkg.in/yaml.v3"
)

// Format is a configuration document encoding.
type Format string

const (
	JSON Format = "json"
	YAML Format = "yaml"
	TOML Format = "toml"
)

// FormatFromPath picks the format from a file extension. Unknown extensions
// are treated as JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML
	case ".toml":
		return TOML
	default:
		return JSON
	}
}

// Parse decodes a configuration document on top of Default, so fields the
// document leaves out keep their default values, then validates it.
func Parse(data []byte, format Format) (Configuration, error) {
	doc := data
	switch format {
	case JSON, "":
	case YAML:
		var m map[string]any
		if err := yaml.Unmarshal(data, &m); err != nil {
			return Configuration{}, fmt.Errorf("%w: yaml: %w", ErrConfigParse, err)
		}
		b, err := json.Marshal(m)
		if err != nil {
			return Configuration{}, fmt.Errorf("%w: yaml: %w", ErrConfigParse, err)
		}
		doc = b
	case TOML:
		tree, err := toml.LoadBytes(data)
		if err != nil {
			return Configuration{}, fmt.Errorf("%w: toml: %w", ErrConfigParse, err)
		}
		b, err := json.Marshal(tree.ToMap())
		if err != nil {
			return Configuration{}, fmt.Errorf("%w: toml: %w", ErrConfigParse, err)
		}
		doc = b
	default:
		return Configuration{}, fmt.Errorf("%w: unsupported format %q", ErrConfigParse, format)
	}

	cfg := Default()
	if len(strings.TrimSpace(string(doc))) > 0 && string(doc) != "null" {
		if err := json.Unmarshal(doc, &cfg); err != nil {
			return Configuration{}, fmt.Errorf("%w: %w", ErrConfigParse, err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return Configuration{}, err
	}
	return cfg, nil
}

// ParseJSON is Parse for JSON documents, the format hosts send over the
// control API.
func ParseJSON(data []byte) (Configuration, error) {
	return Parse(data, JSON)
}

// LoadFile reads and parses the configuration at path.
func LoadFile(path string) (Configuration, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Configuration{}, fmt.Errorf("%w: %w", ErrConfigParse, err)
	}
	return Parse(data, FormatFromPath(path))
}

// Marshal encodes c in the given format.
func Marshal(c Configuration, format Format) ([]byte, error) {
	switch format {
	case YAML, TOML:
		var m map[string]any
		b, err := json.Marshal(c)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(b, &m); err != nil {
			return nil, err
		}
		if format == YAML {
			return yaml.Marshal(m)
		}
		tree, err := toml.TreeFromMap(pruneNil(m))
		if err != nil {
			return nil, err
		}
		return []byte(tree.String()), nil
	default:
		return json.MarshalIndent(c, "", "  ")
	}
}

// pruneNil drops unset bindings; TOML has no null.
func pruneNil(m map[string]any) map[string]any {
	for k, v := range m {
		switch t := v.(type) {
		case nil:
			delete(m, k)
		case map[string]any:
			m[k] = pruneNil(t)
		}
	}
	return m
}
