package cli

import (
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/extbuild-labs/extbuild/internal/config"
	"github.com/extbuild-labs/extbuild/internal/manifest"
	"github.com/extbuild-labs/extbuild/internal/stage"
	"github.com/extbuild-labs/extbuild/internal/stamp"
	"github.com/extbuild-labs/extbuild/internal/target"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check that the project is ready to build",
	Long: `Run diagnostic checks on the build inputs: the archive command, the manifest
spec and schema, and the bundler output in the dist directory.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSettings()
		if err != nil {
			return err
		}
		if failures := runDoctor(cmd.OutOrStdout(), s); failures > 0 {
			return fmt.Errorf("%d check(s) failed", failures)
		}
		return nil
	},
}

// runDoctor prints every check and returns the number that failed. Missing
// bundler output is a warning since it only exists after the bundler ran.
func runDoctor(w io.Writer, s *config.Settings) int {
	failures := 0

	fmt.Fprintln(w, "Tools:")
	if path, err := exec.LookPath(s.ZipCommand); err != nil {
		fmt.Fprintf(w, "  [FAIL] %s not found\n", s.ZipCommand)
		failures++
	} else {
		fmt.Fprintf(w, "  [ OK ] %s found at %s\n", s.ZipCommand, path)
	}

	fmt.Fprintln(w, "Manifest:")
	failures += checkManifests(w, s)

	fmt.Fprintln(w, "Schema:")
	if schema, err := manifest.LoadSchema(s.Schema); err != nil {
		fmt.Fprintf(w, "  [FAIL] %v\n", err)
		failures++
	} else if err := manifest.CheckSchemaDocument(schema); err != nil {
		fmt.Fprintf(w, "  [WARN] %s is not a usable JSON Schema: %v\n", s.Schema, err)
	} else {
		fmt.Fprintf(w, "  [ OK ] %s\n", s.Schema)
	}

	fmt.Fprintln(w, "Bundles:")
	l := layoutFor(s)
	checkBundles(w, l.DistDir(), "extension", stage.ExtensionBundles)
	checkBundles(w, l.DistDir(), "integration", stage.IntegrationBundles)

	return failures
}

func checkManifests(w io.Writer, s *config.Settings) int {
	spec, err := manifest.LoadSpec(s.ManifestSpec)
	if err != nil {
		fmt.Fprintf(w, "  [FAIL] %v\n", err)
		return 1
	}

	failures := 0
	opts := manifest.Options{Version: stamp.Now().String()}
	for _, browser := range target.AllBrowsers() {
		for _, env := range []target.Env{target.Dev, target.Prod} {
			m, err := manifest.Assemble(spec, env, browser, opts)
			if err != nil {
				fmt.Fprintf(w, "  [FAIL] %s %s: %v\n", browser, env, err)
				failures++
				continue
			}
			result, err := manifest.Validate(m)
			if err != nil {
				fmt.Fprintf(w, "  [FAIL] %s %s: %v\n", browser, env, err)
				failures++
				continue
			}
			if !result.Valid {
				fmt.Fprintf(w, "  [FAIL] %s %s: %d validation issue(s):\n", browser, env, len(result.Issues))
				for _, issue := range result.Issues {
					fmt.Fprintf(w, "    - %s\n", issue)
				}
				failures++
				continue
			}
			fmt.Fprintf(w, "  [ OK ] %s %s\n", browser, env)
		}
	}
	return failures
}

func checkBundles(w io.Writer, distDir, name string, bundles []stage.Bundle) {
	err := stage.ValidateBundles(distDir, bundles)
	var missing *stage.MissingBundlesError
	switch {
	case err == nil:
		fmt.Fprintf(w, "  [ OK ] %s bundles present\n", name)
	case errors.As(err, &missing):
		names := make([]string, len(missing.Missing))
		for i, b := range missing.Missing {
			names[i] = b.Name
		}
		fmt.Fprintf(w, "  [WARN] %s bundles missing: %s (run the bundler first)\n", name, strings.Join(names, ", "))
	default:
		fmt.Fprintf(w, "  [WARN] %s bundles: %v\n", name, err)
	}
}
