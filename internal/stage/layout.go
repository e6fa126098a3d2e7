package stage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/extbuild-labs/extbuild/internal/target"
)

// Layout locates the inputs and outputs of a build. All fields are
// absolute paths.
type Layout struct {
	// BuildsDir holds dist/, bundles/, integration/ and one directory per browser.
	BuildsDir string
	// AssetsDir holds static assets copied verbatim into dist/.
	AssetsDir string
	// PagesDir holds the extension HTML pages copied into dist/.
	PagesDir string
	// IntegrationFrame is the extension host frame page of the integration bundle.
	IntegrationFrame string
	// PublishDir receives a mirror of the integration bundle for the web app.
	PublishDir string
}

// DistDir is the shared staging directory the bundler writes into.
func (l Layout) DistDir() string { return filepath.Join(l.BuildsDir, "dist") }

// BundlesDir holds the packaged archives.
func (l Layout) BundlesDir() string { return filepath.Join(l.BuildsDir, "bundles") }

// IntegrationDir holds the native integration bundle.
func (l Layout) IntegrationDir() string { return filepath.Join(l.BuildsDir, "integration") }

// BrowserDir is the unpacked extension directory for a browser.
func (l Layout) BrowserDir(b target.Browser) string { return filepath.Join(l.BuildsDir, b.String()) }

// BundlePath is the archive written for a browser.
func (l Layout) BundlePath(b target.Browser) string {
	return filepath.Join(l.BundlesDir(), b.BundleName())
}

// EnsurePaths creates the dist, bundles and per-browser directories.
func EnsurePaths(l Layout) error {
	dirs := []string{l.DistDir(), l.BundlesDir()}
	for _, b := range target.AllBrowsers() {
		dirs = append(dirs, l.BrowserDir(b))
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
	}
	return nil
}
