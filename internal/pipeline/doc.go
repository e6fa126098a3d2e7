// Package pipeline drives the per-browser build: ensure paths, write the
// manifest and schema, stage the extension assets, then archive the bundle.
// Each browser build moves through these steps strictly in order. Run
// coordinates several browsers for one environment.
package pipeline
