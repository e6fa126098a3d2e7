package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/extbuild-labs/extbuild/internal/target"
)

// indent matches the four-space layout the extension stores have always
// received.
const indent = "    "

// WriteManifest assembles, validates and writes dir/manifest.json.
func WriteManifest(spec Spec, env target.Env, browser target.Browser, dir string, opts Options) error {
	m, err := Assemble(spec, env, browser, opts)
	if err != nil {
		return fmt.Errorf("assembling %s %s manifest: %w", browser, env, err)
	}

	result, err := Validate(m)
	if err != nil {
		return fmt.Errorf("validating %s %s manifest: %w", browser, env, err)
	}
	if !result.Valid {
		return fmt.Errorf("%s %s: %w", browser, env, &InvalidManifestError{Issues: result.Issues})
	}

	data, err := Marshal(m)
	if err != nil {
		return fmt.Errorf("encoding %s %s manifest: %w", browser, env, err)
	}

	path := filepath.Join(dir, ManifestFile)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// WriteSchema writes the schema document to dir/schema.json. The document is
// re-indented but otherwise copied as is; env and browser do not affect it.
func WriteSchema(schema []byte, env target.Env, browser target.Browser, dir string) error {
	var buf bytes.Buffer
	if err := json.Indent(&buf, schema, "", indent); err != nil {
		return fmt.Errorf("formatting schema for %s %s: %w", browser, env, err)
	}
	buf.WriteByte('\n')

	path := filepath.Join(dir, SchemaFile)
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// Marshal encodes a manifest as indented JSON. HTML escaping is disabled so
// "<all_urls>" is written literally.
func Marshal(m Manifest) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", indent)
	if err := enc.Encode(m); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
