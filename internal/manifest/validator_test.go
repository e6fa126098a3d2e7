package manifest

import (
	"testing"

	"github.com/extbuild-labs/extbuild/internal/target"
)

func TestValidate_AssembledManifests(t *testing.T) {
	spec, err := LoadSpec(testPath("manifest.spec.json"))
	if err != nil {
		t.Fatalf("LoadSpec: %v", err)
	}

	for _, browser := range target.AllBrowsers() {
		for _, env := range []target.Env{target.Dev, target.Prod} {
			t.Run(browser.String()+"/"+env.String(), func(t *testing.T) {
				m, err := Assemble(spec, env, browser, Options{AllURLs: true, Version: testVersion})
				if err != nil {
					t.Fatalf("Assemble: %v", err)
				}
				result, err := Validate(m)
				if err != nil {
					t.Fatalf("Validate: %v", err)
				}
				if !result.Valid {
					for _, issue := range result.Issues {
						t.Errorf("  path=%s keyword=%s message=%s", issue.Path, issue.Keyword, issue.Message)
					}
				}
			})
		}
	}
}

func TestValidate_InvalidManifests(t *testing.T) {
	tests := []struct {
		name     string
		manifest Manifest
		keyword  string
	}{
		{"duplicate permissions", Manifest{"permissions": []interface{}{"tabs", "tabs"}}, "uniqueItems"},
		{"permission not a string", Manifest{"permissions": []interface{}{"tabs", true}}, "type"},
		{"version not a string", Manifest{"version": true}, "type"},
		{"schema reference left", Manifest{"$schema": "./x.json"}, "not"},
		{"environment section left", Manifest{"prod": map[string]interface{}{}}, "not"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Validate(tt.manifest)
			if err != nil {
				t.Fatalf("Validate: %v", err)
			}
			if result.Valid {
				t.Fatal("expected invalid result")
			}
			found := false
			for _, issue := range result.Issues {
				if issue.Keyword == tt.keyword {
					found = true
				}
				if issue.Message == "" {
					t.Errorf("issue %+v has empty message", issue)
				}
			}
			if !found {
				t.Errorf("expected an issue with keyword %q, got %+v", tt.keyword, result.Issues)
			}
		})
	}
}

func TestValidate_AcceptsArbitraryValues(t *testing.T) {
	m := Manifest{
		"version":                   "0.0.0-dev",
		"storage":                   "local",
		"web_accessible_resources":  []interface{}{map[string]interface{}{"resources": []interface{}{"img/*"}}},
		"browser_specific_settings": map[string]interface{}{"gecko": map[string]interface{}{"strict_min_version": "91.0"}},
	}
	result, err := Validate(m)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if !result.Valid {
		t.Errorf("expected valid result, got %+v", result.Issues)
	}
}

func TestCheckSchemaDocument(t *testing.T) {
	data, err := LoadSchema(testPath("schema.json"))
	if err != nil {
		t.Fatalf("LoadSchema: %v", err)
	}
	if err := CheckSchemaDocument(data); err != nil {
		t.Errorf("CheckSchemaDocument: %v", err)
	}

	if err := CheckSchemaDocument([]byte(`{"type": 12}`)); err == nil {
		t.Error("expected error for a schema with an invalid type keyword")
	}
}
