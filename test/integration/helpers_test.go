//go:build integration

package integration_test

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/extbuild-labs/extbuild/internal/config"
	"github.com/extbuild-labs/extbuild/internal/stage"
	"github.com/spf13/viper"
)

// testEnv holds paths to an isolated extension project.
type testEnv struct {
	ProjectDir string // holds src/, assets/ and build/
	PublishDir string // sibling web app assets directory
}

const specJSON = `{
    "$schema": "./manifest.schema.json",
    "name": "Sourcegraph",
    "manifest_version": 2,
    "description": "Adds code intelligence to code hosts",
    "key": "MIIBIjANBgkqhkiG9w0BAQEFAAOCAQ8AMIIBCgKCAQEA",
    "applications": {"gecko": {"id": "sourcegraph-for-firefox@sourcegraph.com"}},
    "background": {"page": "background.html"},
    "options_ui": {"page": "options.html", "open_in_tab": true},
    "storage": {"managed_schema": "schema.json"},
    "permissions": ["activeTab", "storage", "contextMenus"],
    "dev": {"version": "0.0.0"},
    "prod": {}
}`

const schemaJSON = `{"$schema": "http://json-schema.org/draft-07/schema#", "type": "object", "properties": {"sourcegraphURL": {"type": "string"}}}`

// setupTestEnv creates a project with sources, static assets and bundler
// output, and points the build configuration at it. Environment variables
// that steer the build are cleared for the test.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)

	for _, name := range []string{"TARGETS", "EXTENSION_PERMISSIONS_ALL_URLS", "USE_CAMPAIGN_RULES"} {
		t.Setenv(name, "")
	}

	env := &testEnv{
		ProjectDir: t.TempDir(),
		PublishDir: filepath.Join(t.TempDir(), "ui", "assets", "extension"),
	}

	src := filepath.Join(env.ProjectDir, "src")
	writeFile(t, filepath.Join(src, "browser-extension", "manifest.spec.json"), specJSON)
	writeFile(t, filepath.Join(src, "browser-extension", "schema.json"), schemaJSON)
	writeFile(t, filepath.Join(src, "browser-extension", "pages", "background.html"), "<html></html>")
	writeFile(t, filepath.Join(src, "browser-extension", "pages", "options.html"), "<html></html>")
	writeFile(t, filepath.Join(src, "native-integration", "extensionHostFrame.html"), "<html></html>")
	writeFile(t, filepath.Join(env.ProjectDir, "assets", "img", "icon-128.png"), "png")

	writeFile(t, config.FilePath(env.ProjectDir), "publish_dir: "+env.PublishDir+"\n")

	return env
}

// writeBundlerOutput fills dist/ with every declared bundle.
func writeBundlerOutput(t *testing.T, l stage.Layout) {
	t.Helper()
	for _, table := range [][]stage.Bundle{stage.ExtensionBundles, stage.IntegrationBundles} {
		for _, b := range table {
			path := filepath.Join(l.DistDir(), filepath.FromSlash(b.File))
			if _, err := os.Stat(path); err == nil {
				continue
			}
			writeFile(t, path, "/* "+b.Name+" */")
		}
	}
}

func requireZip(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("zip"); err != nil {
		t.Skip("zip not installed")
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("creating dir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

func assertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file to exist: %s", path)
	}
}

func assertFileNotExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err == nil {
		t.Errorf("expected file NOT to exist: %s", path)
	}
}

func assertFileContains(t *testing.T, path, substr string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	if !strings.Contains(string(data), substr) {
		t.Errorf("file %s does not contain %q", path, substr)
	}
}
