// Package stage copies compiled extension output into per-browser and
// integration directories. Every file the bundler is expected to produce is
// declared in a bundle table, and the table is checked before anything is
// copied so a renamed or missing bundle fails with its logical name.
package stage
