package cli

import (
	"fmt"

	"github.com/extbuild-labs/extbuild/internal/stage"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(assetsCmd)
	rootCmd.AddCommand(integrationCmd)
}

var assetsCmd = &cobra.Command{
	Use:   "assets",
	Short: "Recreate the dist directory from static assets and pages",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSettings()
		if err != nil {
			return err
		}
		l := layoutFor(s)
		if err := stage.EnsurePaths(l); err != nil {
			return err
		}
		if err := stage.CopyAssets(l, reporterFor(cmd)); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Staged assets into %s\n", l.DistDir())
		return nil
	},
}

var integrationCmd = &cobra.Command{
	Use:   "integration",
	Short: "Stage the native integration bundle and publish it to the web app",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSettings()
		if err != nil {
			return err
		}
		l := layoutFor(s)
		r := reporterFor(cmd)
		r.Await("Staging the integration bundle")
		if err := stage.CopyIntegrationAssets(l); err != nil {
			return err
		}
		r.Success("Published the integration bundle to %s", l.PublishDir)
		return nil
	},
}
