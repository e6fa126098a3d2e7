package cli

import (
	"github.com/extbuild-labs/extbuild/internal/branding"
	"github.com/spf13/cobra"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

// projectRoot is the directory holding the extension sources and extbuild.yaml.
var projectRoot string

func init() {
	rootCmd.PersistentFlags().StringVarP(&projectRoot, "root", "C", ".", "Project root directory")
}

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` stages a browser extension's compiled output, writes a manifest per
browser and environment, packages the per-browser bundles, and publishes the
native integration bundle to the web app.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	return rootCmd.Execute()
}
