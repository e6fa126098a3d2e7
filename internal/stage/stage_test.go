package stage

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/extbuild-labs/extbuild/internal/progress"
	"github.com/extbuild-labs/extbuild/internal/target"
)

func newLayout(t *testing.T) Layout {
	t.Helper()
	root := t.TempDir()
	return Layout{
		BuildsDir:        filepath.Join(root, "build"),
		AssetsDir:        filepath.Join(root, "assets"),
		PagesDir:         filepath.Join(root, "src", "pages"),
		IntegrationFrame: filepath.Join(root, "src", "native-integration", "extensionHostFrame.html"),
		PublishDir:       filepath.Join(root, "..", filepath.Base(root)+"-ui", "assets", "extension"),
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func assertFile(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Errorf("expected %s: %v", path, err)
		return
	}
	if !info.Mode().IsRegular() {
		t.Errorf("%s is not a regular file", path)
	}
}

func assertMissing(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err == nil {
		t.Errorf("%s should not exist", path)
	}
}

// populateDist writes every declared bundle and one image into dist/.
func populateDist(t *testing.T, l Layout) {
	t.Helper()
	for _, b := range append(append([]Bundle{}, ExtensionBundles...), IntegrationBundles...) {
		writeFile(t, filepath.Join(l.DistDir(), filepath.FromSlash(b.File)), b.Name)
	}
	writeFile(t, filepath.Join(l.DistDir(), "img", "icon-128.png"), "png")
	writeFile(t, filepath.Join(l.DistDir(), "img", "logos", "github.svg"), "svg")
}

func TestEnsurePaths(t *testing.T) {
	l := newLayout(t)
	if err := EnsurePaths(l); err != nil {
		t.Fatalf("EnsurePaths: %v", err)
	}
	for _, dir := range []string{l.DistDir(), l.BundlesDir(), l.BrowserDir(target.Chrome), l.BrowserDir(target.Firefox)} {
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			t.Errorf("expected directory %s", dir)
		}
	}
}

func TestBundlePath(t *testing.T) {
	l := Layout{BuildsDir: "/w/build"}
	if got := l.BundlePath(target.Firefox); got != filepath.Join("/w/build", "bundles", "firefox-bundle.xpi") {
		t.Errorf("BundlePath(firefox) = %q", got)
	}
}

func TestCopyAssets(t *testing.T) {
	l := newLayout(t)
	writeFile(t, filepath.Join(l.AssetsDir, "img", "icon.png"), "png")
	writeFile(t, filepath.Join(l.AssetsDir, "css", "base.css"), "css")
	writeFile(t, filepath.Join(l.AssetsDir, ".DS_Store"), "")
	writeFile(t, filepath.Join(l.AssetsDir, ".hidden"), "")
	writeFile(t, filepath.Join(l.PagesDir, "options.html"), "<html>")
	writeFile(t, filepath.Join(l.DistDir(), "stale.js"), "old")

	if err := CopyAssets(l, nil); err != nil {
		t.Fatalf("CopyAssets: %v", err)
	}

	dist := l.DistDir()
	assertFile(t, filepath.Join(dist, "img", "icon.png"))
	assertFile(t, filepath.Join(dist, "css", "base.css"))
	assertFile(t, filepath.Join(dist, "options.html"))
	assertMissing(t, filepath.Join(dist, "stale.js"))
	assertMissing(t, filepath.Join(dist, ".DS_Store"))
	assertMissing(t, filepath.Join(dist, ".hidden"))
}

func TestCopyAssetsReportsProgress(t *testing.T) {
	l := newLayout(t)
	writeFile(t, filepath.Join(l.AssetsDir, "img", "icon.png"), "png")
	writeFile(t, filepath.Join(l.PagesDir, "options.html"), "<html>")

	var buf bytes.Buffer
	if err := CopyAssets(l, progress.New(&buf)); err != nil {
		t.Fatalf("CopyAssets: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 progress lines, got %q", buf.String())
	}
	if !strings.Contains(lines[0], "Copy assets") || !strings.Contains(lines[1], "Assets copied") {
		t.Errorf("progress lines = %q", lines)
	}
}

// Project directories may contain glob metacharacters; only the pattern
// below the source directory is expanded.
func TestStagingUnderMetacharacterRoot(t *testing.T) {
	for _, dirName := range []string{"ext{v2}", "ext[1]"} {
		t.Run(dirName, func(t *testing.T) {
			root := filepath.Join(t.TempDir(), dirName)
			l := Layout{
				BuildsDir:        filepath.Join(root, "build"),
				AssetsDir:        filepath.Join(root, "assets"),
				PagesDir:         filepath.Join(root, "src", "pages"),
				IntegrationFrame: filepath.Join(root, "src", "extensionHostFrame.html"),
				PublishDir:       filepath.Join(root, "ui", "assets", "extension"),
			}
			writeFile(t, filepath.Join(l.AssetsDir, "img", "icon.png"), "png")
			writeFile(t, filepath.Join(l.PagesDir, "options.html"), "<html>")
			writeFile(t, l.IntegrationFrame, "<html>")

			if err := CopyAssets(l, nil); err != nil {
				t.Fatalf("CopyAssets: %v", err)
			}
			assertFile(t, filepath.Join(l.DistDir(), "img", "icon.png"))
			assertFile(t, filepath.Join(l.DistDir(), "options.html"))

			populateDist(t, l)
			dir := l.BrowserDir(target.Firefox)
			if err := CopyExtensionAssets(l, dir); err != nil {
				t.Fatalf("CopyExtensionAssets: %v", err)
			}
			assertFile(t, filepath.Join(dir, "img", "icon.png"))
			assertFile(t, filepath.Join(dir, "img", "logos", "github.svg"))

			if err := CopyIntegrationAssets(l); err != nil {
				t.Fatalf("CopyIntegrationAssets: %v", err)
			}
			assertFile(t, filepath.Join(l.PublishDir, "scripts", "integration.bundle.js"))
			assertFile(t, filepath.Join(l.PublishDir, "extensionHostFrame.html"))
		})
	}
}

func TestCopyAssetsMissingSources(t *testing.T) {
	l := newLayout(t)
	writeFile(t, filepath.Join(l.PagesDir, "options.html"), "<html>")
	writeFile(t, filepath.Join(l.DistDir(), "keep.js"), "x")

	if err := CopyAssets(l, nil); err == nil {
		t.Fatal("expected error when the assets directory is missing")
	}
	// A failed precondition must not wipe dist/.
	assertFile(t, filepath.Join(l.DistDir(), "keep.js"))
}

func TestCopyExtensionAssets(t *testing.T) {
	l := newLayout(t)
	populateDist(t, l)
	dir := l.BrowserDir(target.Chrome)

	if err := CopyExtensionAssets(l, dir); err != nil {
		t.Fatalf("CopyExtensionAssets: %v", err)
	}

	for _, rel := range []string{
		"js/background.bundle.js",
		"js/inject.bundle.js",
		"js/options.bundle.js",
		"css/style.bundle.css",
		"css/options-style.bundle.css",
		"background.html",
		"options.html",
		"img/icon-128.png",
		"img/logos/github.svg",
	} {
		assertFile(t, filepath.Join(dir, filepath.FromSlash(rel)))
	}
	// Integration-only bundles stay out of the extension.
	assertMissing(t, filepath.Join(dir, "js", "phabricator.bundle.js"))
}

func TestCopyExtensionAssetsReportsAllMissingBundles(t *testing.T) {
	l := newLayout(t)
	populateDist(t, l)
	if err := os.Remove(filepath.Join(l.DistDir(), "js", "inject.bundle.js")); err != nil {
		t.Fatal(err)
	}
	if err := os.Remove(filepath.Join(l.DistDir(), "options.html")); err != nil {
		t.Fatal(err)
	}
	dir := l.BrowserDir(target.Firefox)

	err := CopyExtensionAssets(l, dir)
	var missing *MissingBundlesError
	if !errors.As(err, &missing) {
		t.Fatalf("error = %v, want MissingBundlesError", err)
	}
	if len(missing.Missing) != 2 {
		t.Fatalf("missing = %v, want 2 bundles", missing.Missing)
	}
	if missing.Missing[0].Name != "inject-script" || missing.Missing[1].Name != "options-page" {
		t.Errorf("missing = %v", missing.Missing)
	}
	// Validation happens before anything is copied.
	assertMissing(t, filepath.Join(dir, "js", "background.bundle.js"))
}

func TestCopyIntegrationAssets(t *testing.T) {
	l := newLayout(t)
	populateDist(t, l)
	writeFile(t, l.IntegrationFrame, "<html>")

	if err := CopyIntegrationAssets(l); err != nil {
		t.Fatalf("CopyIntegrationAssets: %v", err)
	}

	for _, root := range []string{l.IntegrationDir(), l.PublishDir} {
		assertFile(t, filepath.Join(root, "scripts", "phabricator.bundle.js"))
		assertFile(t, filepath.Join(root, "scripts", "integration.bundle.js"))
		assertFile(t, filepath.Join(root, "scripts", "extensionHostWorker.bundle.js"))
		assertFile(t, filepath.Join(root, "css", "style.bundle.css"))
		assertFile(t, filepath.Join(root, "extensionHostFrame.html"))
	}
}

func TestCopyIntegrationAssetsMissingFrame(t *testing.T) {
	l := newLayout(t)
	populateDist(t, l)

	if err := CopyIntegrationAssets(l); err == nil {
		t.Fatal("expected error when the frame page is missing")
	}
}

func TestValidateBundlesRejectsDirectories(t *testing.T) {
	dist := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dist, "background.html"), 0755); err != nil {
		t.Fatal(err)
	}
	err := ValidateBundles(dist, []Bundle{{Name: "background-page", File: "background.html", Dest: "."}})
	if err == nil {
		t.Fatal("expected a directory to count as missing")
	}
}

func TestShouldExclude(t *testing.T) {
	tests := []struct {
		name     string
		expected bool
	}{
		{".DS_Store", true},
		{"background.html", false},
		{"img", false},
	}

	for _, tt := range tests {
		if got := shouldExclude(tt.name); got != tt.expected {
			t.Errorf("shouldExclude(%q) = %v, want %v", tt.name, got, tt.expected)
		}
	}
}
