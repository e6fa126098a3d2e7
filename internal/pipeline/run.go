package pipeline

import (
	"context"
	"fmt"

	"github.com/extbuild-labs/extbuild/internal/target"
	"golang.org/x/sync/errgroup"
)

// RunOptions selects what a run builds.
type RunOptions struct {
	Env      target.Env
	Browsers []target.Browser
	// Jobs bounds how many browsers are packaged at once. Values below one
	// package browsers one at a time.
	Jobs int
}

// Run builds every requested browser for one environment. Metadata for all
// browsers is written first, one browser at a time; packaging then runs with
// at most opts.Jobs browsers in flight. The first failure cancels the
// remaining packaging steps. The returned builds report how far each got.
func Run(ctx context.Context, deps Deps, opts RunOptions) ([]*Build, error) {
	if !opts.Env.Valid() {
		return nil, fmt.Errorf("%w %q", target.ErrUnknownEnv, opts.Env)
	}
	if deps.Archiver == nil {
		return nil, fmt.Errorf("no archiver configured")
	}

	builds := make([]*Build, 0, len(opts.Browsers))
	for _, browser := range opts.Browsers {
		b, err := New(browser, deps)
		if err != nil {
			return builds, err
		}
		builds = append(builds, b)
		if err := b.WriteMetadata(opts.Env); err != nil {
			return builds, err
		}
	}

	jobs := opts.Jobs
	if jobs < 1 {
		jobs = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for _, b := range builds {
		g.Go(func() error {
			return b.Package(gctx)
		})
	}
	return builds, g.Wait()
}
