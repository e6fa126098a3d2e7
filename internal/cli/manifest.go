package cli

import (
	"fmt"

	"github.com/extbuild-labs/extbuild/internal/manifest"
	"github.com/extbuild-labs/extbuild/internal/stamp"
	"github.com/extbuild-labs/extbuild/internal/target"
	"github.com/spf13/cobra"
)

var (
	manifestEnv     string
	manifestBrowser string
	manifestOut     string
	manifestVersion string
	manifestPrint   bool
)

func init() {
	manifestCmd.Flags().StringVar(&manifestEnv, "env", string(target.Dev), "Build environment (dev, prod)")
	manifestCmd.Flags().StringVar(&manifestBrowser, "browser", string(target.Chrome), "Target browser (chrome, firefox)")
	manifestCmd.Flags().StringVar(&manifestOut, "out", "", "Output directory (default: the browser's build directory)")
	manifestCmd.Flags().StringVar(&manifestVersion, "version", "", "Version stamped into prod manifests (default: current UTC time)")
	manifestCmd.Flags().BoolVar(&manifestPrint, "print", false, "Print the manifest instead of writing it")
	rootCmd.AddCommand(manifestCmd)
}

var manifestCmd = &cobra.Command{
	Use:   "manifest",
	Short: "Write manifest.json and schema.json for one browser and environment",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := target.ParseEnv(manifestEnv)
		if err != nil {
			return err
		}
		browser, err := target.ParseBrowser(manifestBrowser)
		if err != nil {
			return err
		}

		version := manifestVersion
		if version == "" {
			version = stamp.Now().String()
		} else if _, err := stamp.Parse(version); err != nil {
			return err
		}

		s, err := loadSettings()
		if err != nil {
			return err
		}
		spec, err := manifest.LoadSpec(s.ManifestSpec)
		if err != nil {
			return err
		}
		opts := manifest.Options{
			AllURLs:  s.PermissionsAllURLs,
			Version:  version,
			Reporter: reporterFor(cmd),
		}

		if manifestPrint {
			m, err := manifest.Assemble(spec, env, browser, opts)
			if err != nil {
				return err
			}
			data, err := manifest.Marshal(m)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		}

		schema, err := manifest.LoadSchema(s.Schema)
		if err != nil {
			return err
		}
		out := manifestOut
		if out == "" {
			out = layoutFor(s).BrowserDir(browser)
		}
		if err := manifest.WriteManifest(spec, env, browser, out, opts); err != nil {
			return err
		}
		if err := manifest.WriteSchema(schema, env, browser, out); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s %s manifest to %s\n", browser.Title(), env, out)
		return nil
	},
}
