package manifest

import "github.com/extbuild-labs/extbuild/internal/progress"

// Spec is the manifest source descriptor, as decoded from manifest.spec.json.
type Spec map[string]interface{}

// Manifest is an assembled, browser- and environment-specific manifest.
type Manifest map[string]interface{}

// Options carries the per-run inputs of manifest assembly.
type Options struct {
	// AllURLs adds the wildcard host permission to every manifest. End-to-end
	// test builds need it because the permission prompt cannot be accepted
	// from an automated browser.
	AllURLs bool

	// Version is stamped into production manifests. It is computed once per
	// build run and shared by every browser.
	Version string

	// Reporter receives informational lines. May be nil.
	Reporter *progress.Reporter
}

// Well-known manifest keys.
const (
	KeyPermissions = "permissions"
	KeyStorage     = "storage"
	KeySchemaRef   = "$schema"
	KeyVersion     = "version"
)

// AllURLsPermission is the wildcard host permission.
const AllURLsPermission = "<all_urls>"

// Output file names written into a browser build directory.
const (
	ManifestFile = "manifest.json"
	SchemaFile   = "schema.json"
)

// Permissions returns the manifest's permission list, or nil if absent or
// not a list of strings.
func (m Manifest) Permissions() []string {
	raw, ok := m[KeyPermissions].([]interface{})
	if !ok {
		return nil
	}
	perms := make([]string, 0, len(raw))
	for _, p := range raw {
		s, ok := p.(string)
		if !ok {
			return nil
		}
		perms = append(perms, s)
	}
	return perms
}
