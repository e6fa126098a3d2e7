package cli

import (
	"io"

	"github.com/extbuild-labs/extbuild/internal/archive"
	"github.com/extbuild-labs/extbuild/internal/config"
	"github.com/extbuild-labs/extbuild/internal/manifest"
	"github.com/extbuild-labs/extbuild/internal/pipeline"
	"github.com/extbuild-labs/extbuild/internal/progress"
	"github.com/extbuild-labs/extbuild/internal/stage"
	"github.com/extbuild-labs/extbuild/internal/stamp"
	"github.com/spf13/cobra"
)

func loadSettings() (*config.Settings, error) {
	return config.Resolve(projectRoot)
}

func layoutFor(s *config.Settings) stage.Layout {
	return stage.Layout{
		BuildsDir:        s.BuildsDir,
		AssetsDir:        s.AssetsDir,
		PagesDir:         s.PagesDir,
		IntegrationFrame: s.IntegrationFrame,
		PublishDir:       s.PublishDir,
	}
}

func zipperFor(s *config.Settings, out io.Writer) archive.Zipper {
	return archive.Zipper{Command: s.ZipCommand, Stdout: out}
}

func reporterFor(cmd *cobra.Command) *progress.Reporter {
	return progress.New(cmd.ErrOrStderr())
}

// pipelineDeps loads the manifest spec and schema and stamps the run's
// version. Every browser of the run shares the version.
func pipelineDeps(cmd *cobra.Command, s *config.Settings, version stamp.Version) (pipeline.Deps, error) {
	spec, err := manifest.LoadSpec(s.ManifestSpec)
	if err != nil {
		return pipeline.Deps{}, err
	}
	schema, err := manifest.LoadSchema(s.Schema)
	if err != nil {
		return pipeline.Deps{}, err
	}
	return pipeline.Deps{
		Layout: layoutFor(s),
		Spec:   spec,
		Schema: schema,
		Manifest: manifest.Options{
			AllURLs: s.PermissionsAllURLs,
			Version: version.String(),
		},
		Targets:  s.Targets,
		Archiver: zipperFor(s, io.Discard),
		Reporter: reporterFor(cmd),
	}, nil
}
