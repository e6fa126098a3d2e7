// Package manifest assembles browser extension manifests from a source
// descriptor. A descriptor holds the shared manifest keys plus "dev" and
// "prod" sub-objects; assembly merges the selected environment, applies the
// browser's key blocklist and permission policy, and stamps production
// builds with the run's build version. Assembled manifests are validated
// against an embedded JSON Schema before they are written.
package manifest
