package stage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/extbuild-labs/extbuild/internal/progress"
)

// CopyAssets clears dist/ and fills it with the static assets and the
// extension pages. Run it once, before the bundler and before any browser
// is staged; it must not run concurrently with CopyExtensionAssets.
// Progress is reported to r, which may be nil.
func CopyAssets(l Layout, r *progress.Reporter) error {
	r.Await("Copy assets")

	if err := requireDir(l.AssetsDir, "assets directory"); err != nil {
		return err
	}
	if err := requireDir(l.PagesDir, "pages directory"); err != nil {
		return err
	}

	dist := l.DistDir()
	if err := os.RemoveAll(dist); err != nil {
		return fmt.Errorf("removing %s: %w", dist, err)
	}
	if err := os.MkdirAll(dist, 0755); err != nil {
		return fmt.Errorf("creating %s: %w", dist, err)
	}

	if err := copyGlob(l.AssetsDir, "*", dist); err != nil {
		return fmt.Errorf("copying assets: %w", err)
	}
	if err := copyGlob(l.PagesDir, "*", dist); err != nil {
		return fmt.Errorf("copying pages: %w", err)
	}
	r.Success("Assets copied")
	return nil
}

// CopyExtensionAssets stages the declared extension bundles and the image
// directory into dir.
func CopyExtensionAssets(l Layout, dir string) error {
	dist := l.DistDir()
	if err := ValidateBundles(dist, ExtensionBundles); err != nil {
		return err
	}

	for _, sub := range []string{"js", "css", "img"} {
		if err := os.MkdirAll(filepath.Join(dir, sub), 0755); err != nil {
			return fmt.Errorf("creating %s: %w", filepath.Join(dir, sub), err)
		}
	}

	if err := copyBundles(dist, dir, ExtensionBundles); err != nil {
		return err
	}

	if err := requireDir(filepath.Join(dist, "img"), "image directory"); err != nil {
		return err
	}
	if err := copyGlob(filepath.Join(dist, "img"), "*", filepath.Join(dir, "img")); err != nil {
		return fmt.Errorf("copying images: %w", err)
	}
	return nil
}

// CopyIntegrationAssets builds the native integration bundle and mirrors it
// into the publish directory so the web app can serve it.
func CopyIntegrationAssets(l Layout) error {
	dist := l.DistDir()
	if err := ValidateBundles(dist, IntegrationBundles); err != nil {
		return err
	}
	if _, err := os.Stat(l.IntegrationFrame); err != nil {
		return fmt.Errorf("integration frame page: %w", err)
	}

	out := l.IntegrationDir()
	for _, sub := range []string{"scripts", "css"} {
		if err := os.MkdirAll(filepath.Join(out, sub), 0755); err != nil {
			return fmt.Errorf("creating %s: %w", filepath.Join(out, sub), err)
		}
	}

	if err := copyBundles(dist, out, IntegrationBundles); err != nil {
		return err
	}
	if err := copyFile(l.IntegrationFrame, filepath.Join(out, filepath.Base(l.IntegrationFrame))); err != nil {
		return fmt.Errorf("copying integration frame page: %w", err)
	}

	if err := os.MkdirAll(l.PublishDir, 0755); err != nil {
		return fmt.Errorf("creating publish directory %s: %w", l.PublishDir, err)
	}
	if err := copyGlob(out, "*", l.PublishDir); err != nil {
		return fmt.Errorf("publishing integration bundle: %w", err)
	}
	return nil
}
