package stage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Bundle maps a logical bundle name to the file the bundler writes under
// dist/ and the subdirectory it is copied into.
type Bundle struct {
	Name string
	File string // relative to dist/, slash-separated
	Dest string // relative to the target directory; "." for the root
}

// ExtensionBundles are copied into every browser directory.
var ExtensionBundles = []Bundle{
	{Name: "background-script", File: "js/background.bundle.js", Dest: "js"},
	{Name: "inject-script", File: "js/inject.bundle.js", Dest: "js"},
	{Name: "options-script", File: "js/options.bundle.js", Dest: "js"},
	{Name: "style", File: "css/style.bundle.css", Dest: "css"},
	{Name: "options-style", File: "css/options-style.bundle.css", Dest: "css"},
	{Name: "background-page", File: "background.html", Dest: "."},
	{Name: "options-page", File: "options.html", Dest: "."},
}

// IntegrationBundles make up the native integration bundle.
var IntegrationBundles = []Bundle{
	{Name: "phabricator-script", File: "js/phabricator.bundle.js", Dest: "scripts"},
	{Name: "integration-script", File: "js/integration.bundle.js", Dest: "scripts"},
	{Name: "extension-host-worker", File: "js/extensionHostWorker.bundle.js", Dest: "scripts"},
	{Name: "style", File: "css/style.bundle.css", Dest: "css"},
}

// MissingBundlesError lists every declared bundle absent from dist/.
type MissingBundlesError struct {
	Dir     string
	Missing []Bundle
}

func (e *MissingBundlesError) Error() string {
	parts := make([]string, len(e.Missing))
	for i, b := range e.Missing {
		parts[i] = fmt.Sprintf("%s (%s)", b.Name, b.File)
	}
	return fmt.Sprintf("missing bundles in %s: %s", e.Dir, strings.Join(parts, ", "))
}

// ValidateBundles checks that every bundle exists as a regular file under
// distDir. It reports all missing bundles at once.
func ValidateBundles(distDir string, bundles []Bundle) error {
	var missing []Bundle
	for _, b := range bundles {
		info, err := os.Stat(filepath.Join(distDir, filepath.FromSlash(b.File)))
		if err != nil || !info.Mode().IsRegular() {
			missing = append(missing, b)
		}
	}
	if len(missing) > 0 {
		return &MissingBundlesError{Dir: distDir, Missing: missing}
	}
	return nil
}

// copyBundles copies each bundle from distDir into its destination under dstDir.
func copyBundles(distDir, dstDir string, bundles []Bundle) error {
	for _, b := range bundles {
		src := filepath.Join(distDir, filepath.FromSlash(b.File))
		dst := filepath.Join(dstDir, filepath.FromSlash(b.Dest), filepath.Base(b.File))
		if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
			return fmt.Errorf("creating %s: %w", filepath.Dir(dst), err)
		}
		if err := copyFile(src, dst); err != nil {
			return fmt.Errorf("copying bundle %s: %w", b.Name, err)
		}
	}
	return nil
}
