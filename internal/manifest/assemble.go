package manifest

import (
	"fmt"

	"github.com/extbuild-labs/extbuild/internal/target"
)

// Assemble builds the manifest for env and browser from spec. The spec is
// not modified; nested values are copied so repeated assembly for the same
// target always yields the same result.
func Assemble(spec Spec, env target.Env, browser target.Browser, opts Options) (Manifest, error) {
	if !env.Valid() {
		return nil, fmt.Errorf("%w %q", target.ErrUnknownEnv, env)
	}
	if !browser.Valid() {
		return nil, fmt.Errorf("%w %q", target.ErrUnknownBrowser, browser)
	}

	blocked := make(map[string]bool)
	for _, key := range browser.Blocklist() {
		blocked[key] = true
	}

	m := make(Manifest, len(spec))
	for key, value := range spec {
		if key == string(target.Dev) || key == string(target.Prod) || blocked[key] {
			continue
		}
		m[key] = deepCopy(value)
	}

	if raw, ok := spec[string(env)]; ok && raw != nil {
		overrides, ok := raw.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("manifest spec %q section must be an object, got %T", env, raw)
		}
		for key, value := range overrides {
			if blocked[key] {
				continue
			}
			m[key] = deepCopy(value)
		}
	}

	if opts.AllURLs {
		if err := m.addPermission(AllURLsPermission); err != nil {
			return nil, err
		}
		opts.Reporter.Info("Adding %s to permissions because of env var setting", AllURLsPermission)
	}

	// Firefox always gets the wildcard permission and has no managed storage.
	if browser == target.Firefox {
		if err := m.addPermission(AllURLsPermission); err != nil {
			return nil, err
		}
		delete(m, KeyStorage)
	}

	delete(m, KeySchemaRef)

	if env == target.Prod {
		if opts.Version == "" {
			return nil, fmt.Errorf("production manifest for %s requires a build version", browser)
		}
		m[KeyVersion] = opts.Version
	}

	m.dedupePermissions()
	return m, nil
}

// addPermission appends perm to the permission list, creating it if absent.
func (m Manifest) addPermission(perm string) error {
	raw, ok := m[KeyPermissions]
	if !ok || raw == nil {
		m[KeyPermissions] = []interface{}{perm}
		return nil
	}
	list, ok := raw.([]interface{})
	if !ok {
		return fmt.Errorf("manifest %q must be a list, got %T", KeyPermissions, raw)
	}
	m[KeyPermissions] = append(list, perm)
	return nil
}

// dedupePermissions drops repeated permission entries, keeping the first
// occurrence of each.
func (m Manifest) dedupePermissions() {
	list, ok := m[KeyPermissions].([]interface{})
	if !ok {
		return
	}
	seen := make(map[interface{}]bool, len(list))
	out := make([]interface{}, 0, len(list))
	for _, p := range list {
		if !isComparable(p) {
			out = append(out, p)
			continue
		}
		if seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	m[KeyPermissions] = out
}

func isComparable(v interface{}) bool {
	switch v.(type) {
	case map[string]interface{}, []interface{}:
		return false
	default:
		return true
	}
}

func deepCopy(v interface{}) interface{} {
	switch val := v.(type) {
	case map[string]interface{}:
		m := make(map[string]interface{}, len(val))
		for k, item := range val {
			m[k] = deepCopy(item)
		}
		return m
	case []interface{}:
		a := make([]interface{}, len(val))
		for i, item := range val {
			a[i] = deepCopy(item)
		}
		return a
	default:
		return val
	}
}
