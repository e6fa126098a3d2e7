package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/extbuild-labs/extbuild/internal/pipeline"
	"github.com/extbuild-labs/extbuild/internal/stage"
	"github.com/extbuild-labs/extbuild/internal/stamp"
	"github.com/extbuild-labs/extbuild/internal/target"
	"github.com/spf13/cobra"
)

var (
	buildEnv         string
	buildBrowsers    string
	buildJobs        int
	buildIntegration bool
	buildSkipAssets  bool
)

func init() {
	buildCmd.Flags().StringVar(&buildEnv, "env", string(target.Prod), "Build environment (dev, prod)")
	buildCmd.Flags().StringVar(&buildBrowsers, "browsers", "", "Comma-separated browsers to build (default: all)")
	buildCmd.Flags().IntVarP(&buildJobs, "jobs", "j", 1, "Number of browsers to package at once")
	buildCmd.Flags().BoolVar(&buildIntegration, "integration", false, "Also stage and publish the native integration bundle")
	buildCmd.Flags().BoolVar(&buildSkipAssets, "skip-assets", false, "Reuse the existing dist directory")
	rootCmd.AddCommand(buildCmd)
}

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build and package the extension for each browser",
	Long: `Stage the bundler output into the dist directory, write a manifest and schema
for each browser, and package each browser directory into its bundle.

The TARGETS variable restricts which browsers are packaged; manifests are
written for every requested browser regardless.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := target.ParseEnv(buildEnv)
		if err != nil {
			return err
		}
		browsers, err := target.ParseBrowsers(buildBrowsers)
		if err != nil {
			return err
		}

		s, err := loadSettings()
		if err != nil {
			return err
		}
		deps, err := pipelineDeps(cmd, s, stamp.Now())
		if err != nil {
			return err
		}

		if !buildSkipAssets {
			if err := stage.CopyAssets(deps.Layout, deps.Reporter); err != nil {
				return fmt.Errorf("staging assets: %w", err)
			}
		}

		builds, err := pipeline.Run(cmd.Context(), deps, pipeline.RunOptions{
			Env:      env,
			Browsers: browsers,
			Jobs:     buildJobs,
		})
		printBuildTable(cmd, builds, env, deps)
		if err != nil {
			return err
		}

		if buildIntegration {
			if err := stage.CopyIntegrationAssets(deps.Layout); err != nil {
				return fmt.Errorf("staging integration assets: %w", err)
			}
			deps.Reporter.Success("Published the integration bundle to %s", deps.Layout.PublishDir)
		}
		return nil
	},
}

func printBuildTable(cmd *cobra.Command, builds []*pipeline.Build, env target.Env, deps pipeline.Deps) {
	if len(builds) == 0 {
		return
	}
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "BROWSER\tENV\tSTATE\tBUNDLE")
	for _, b := range builds {
		bundle := "-"
		if b.State() == pipeline.StateArchived {
			bundle = deps.Layout.BundlePath(b.Browser())
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", b.Browser(), env, b.State(), bundle)
	}
	w.Flush()
}
