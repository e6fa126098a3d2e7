package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"
)

// LoadSpec reads a manifest source descriptor. Files ending in .yaml or .yml
// are decoded as YAML; everything else as JSON.
func LoadSpec(path string) (Spec, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseSpecYAML(data, path)
	default:
		return ParseSpecJSON(data, path)
	}
}

// ParseSpecJSON decodes a JSON descriptor. Numbers are kept as json.Number so
// they are written back unchanged.
func ParseSpecJSON(data []byte, path string) (Spec, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var spec Spec
	if err := dec.Decode(&spec); err != nil {
		return nil, fmt.Errorf("parsing manifest spec %s: %w", path, err)
	}
	if spec == nil {
		return nil, fmt.Errorf("manifest spec %s: top-level value must be an object", path)
	}
	return spec, nil
}

// ParseSpecYAML decodes a YAML descriptor into JSON-compatible values.
func ParseSpecYAML(data []byte, path string) (Spec, error) {
	var raw interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing manifest spec %s: %w", path, err)
	}

	normalized, err := normalizeYAML(raw)
	if err != nil {
		return nil, fmt.Errorf("manifest spec %s: %w", path, err)
	}
	obj, ok := normalized.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("manifest spec %s: top-level value must be a mapping", path)
	}
	return Spec(obj), nil
}

// LoadSchema reads the schema document copied next to each manifest. The
// content is opaque; it only has to be valid JSON.
func LoadSchema(path string) ([]byte, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	if !json.Valid(data) {
		return nil, fmt.Errorf("schema document %s is not valid JSON", path)
	}
	return data, nil
}

// normalizeYAML recursively converts YAML-decoded values to JSON-compatible
// types. Mappings with non-string keys cannot be represented in a manifest.
func normalizeYAML(v interface{}) (interface{}, error) {
	switch val := v.(type) {
	case map[string]interface{}:
		m := make(map[string]interface{}, len(val))
		for k, item := range val {
			n, err := normalizeYAML(item)
			if err != nil {
				return nil, err
			}
			m[k] = n
		}
		return m, nil
	case map[interface{}]interface{}:
		m := make(map[string]interface{}, len(val))
		for k, item := range val {
			key, ok := k.(string)
			if !ok {
				return nil, fmt.Errorf("mapping key %v is not a string", k)
			}
			n, err := normalizeYAML(item)
			if err != nil {
				return nil, err
			}
			m[key] = n
		}
		return m, nil
	case []interface{}:
		a := make([]interface{}, len(val))
		for i, item := range val {
			n, err := normalizeYAML(item)
			if err != nil {
				return nil, err
			}
			a[i] = n
		}
		return a, nil
	default:
		return val, nil
	}
}

// readFile reads the contents of a file at the given path.
func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	return data, nil
}
