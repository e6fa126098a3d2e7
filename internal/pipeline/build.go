package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/extbuild-labs/extbuild/internal/manifest"
	"github.com/extbuild-labs/extbuild/internal/progress"
	"github.com/extbuild-labs/extbuild/internal/stage"
	"github.com/extbuild-labs/extbuild/internal/target"
)

// ErrOutOfOrder is returned when a build step is invoked before the step
// that must precede it.
var ErrOutOfOrder = errors.New("build step out of order")

// State is the last completed step of a browser build.
type State int

const (
	StateNew State = iota
	StatePathsEnsured
	StateManifestWritten
	StateSchemaWritten
	StateAssetsCopied
	StateArchived
	// StateSkipped means the TARGETS filter excluded the browser from packaging.
	StateSkipped
)

var stateNames = map[State]string{
	StateNew:             "new",
	StatePathsEnsured:    "paths-ensured",
	StateManifestWritten: "manifest-written",
	StateSchemaWritten:   "schema-written",
	StateAssetsCopied:    "assets-copied",
	StateArchived:        "archived",
	StateSkipped:         "skipped",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Archiver packages a directory into an archive file.
type Archiver interface {
	Zip(ctx context.Context, srcDir, dest string) error
}

// Deps are the inputs shared by every browser build in a run.
type Deps struct {
	Layout stage.Layout
	Spec   manifest.Spec
	Schema []byte

	// Manifest carries the wildcard-permission flag and the run's build
	// version. Its Reporter is ignored in favour of Reporter below.
	Manifest manifest.Options

	// Targets restricts packaging to browsers whose name occurs in it.
	// Empty selects every browser.
	Targets string

	Archiver Archiver
	Reporter *progress.Reporter
}

// Selected reports whether the TARGETS filter lets browser be packaged.
// The filter is a plain substring match, so "chrome,firefox" and
// "chromefirefox" both select both browsers.
func Selected(targets string, browser target.Browser) bool {
	return targets == "" || strings.Contains(targets, browser.String())
}

// Build is one browser's build.
type Build struct {
	browser target.Browser
	deps    Deps

	mu    sync.Mutex
	env   target.Env
	state State
}

// New ensures the build directories exist and returns a build ready for
// WriteMetadata.
func New(browser target.Browser, deps Deps) (*Build, error) {
	if !browser.Valid() {
		return nil, fmt.Errorf("%w %q", target.ErrUnknownBrowser, browser)
	}
	if err := stage.EnsurePaths(deps.Layout); err != nil {
		return nil, fmt.Errorf("ensuring build paths: %w", err)
	}
	return &Build{browser: browser, deps: deps, state: StatePathsEnsured}, nil
}

// Browser returns the browser being built.
func (b *Build) Browser() target.Browser { return b.browser }

// State returns the last completed step.
func (b *Build) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// Dir is the unpacked extension directory for this build.
func (b *Build) Dir() string { return b.deps.Layout.BrowserDir(b.browser) }

// WriteMetadata writes manifest.json and schema.json for env into the
// browser directory.
func (b *Build) WriteMetadata(env target.Env) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state != StatePathsEnsured {
		return fmt.Errorf("%w: writing %s metadata in state %s", ErrOutOfOrder, b.browser, b.state)
	}

	opts := b.deps.Manifest
	opts.Reporter = b.deps.Reporter
	if err := manifest.WriteManifest(b.deps.Spec, env, b.browser, b.Dir(), opts); err != nil {
		return err
	}
	b.state = StateManifestWritten

	if err := manifest.WriteSchema(b.deps.Schema, env, b.browser, b.Dir()); err != nil {
		return err
	}
	b.state = StateSchemaWritten
	b.env = env
	return nil
}

// Package stages the extension assets and archives the browser directory.
// It does nothing when the TARGETS filter excludes the browser.
func (b *Build) Package(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state != StateSchemaWritten {
		return fmt.Errorf("%w: packaging %s in state %s", ErrOutOfOrder, b.browser, b.state)
	}

	if !Selected(b.deps.Targets, b.browser) {
		b.state = StateSkipped
		return nil
	}

	title := b.browser.Title()
	b.deps.Reporter.Await("Building the %s %s bundle", title, b.env)

	if err := stage.CopyExtensionAssets(b.deps.Layout, b.Dir()); err != nil {
		return fmt.Errorf("staging %s assets: %w", b.browser, err)
	}
	b.state = StateAssetsCopied

	if err := ctx.Err(); err != nil {
		return err
	}

	dest := b.deps.Layout.BundlePath(b.browser)
	if err := b.deps.Archiver.Zip(ctx, b.Dir(), dest); err != nil {
		return fmt.Errorf("archiving %s bundle: %w", b.browser, err)
	}
	b.state = StateArchived

	b.deps.Reporter.Success("Done building the %s %s bundle", title, b.env)
	return nil
}

// MetadataStage writes the manifest and schema for an environment and
// returns the packaging stage.
type MetadataStage func(env target.Env) (PackageStage, error)

// PackageStage copies assets and archives the bundle.
type PackageStage func(ctx context.Context) error

// ForBrowser ensures the build paths and returns the two-stage build for
// browser: the first stage takes the environment, the second packages.
func ForBrowser(browser target.Browser, deps Deps) (MetadataStage, error) {
	b, err := New(browser, deps)
	if err != nil {
		return nil, err
	}
	return func(env target.Env) (PackageStage, error) {
		if err := b.WriteMetadata(env); err != nil {
			return nil, err
		}
		return b.Package, nil
	}, nil
}
