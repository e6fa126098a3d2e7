// Package cli defines the Cobra command tree for the extbuild CLI. Each file
// in this package registers one top-level command (build, manifest, assets,
// etc.) with the root command. Command implementations delegate to internal
// packages for the build steps and only handle flag parsing and output.
package cli
