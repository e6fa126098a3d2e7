// Package target defines the browsers and build environments an extension
// bundle can be produced for, along with the per-browser metadata (title,
// bundle file name, manifest key blocklist) that drives assembly and packaging.
package target
