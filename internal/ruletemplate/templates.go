package ruletemplate

// Form describes the fields a template asks for. It is what the built-in
// renderers return; UI layers translate it into widgets.
type Form struct {
	TemplateID string
	Fields     []Field
	Disabled   bool
}

// Field is a single form input.
type Field struct {
	Name        string
	Label       string
	Placeholder string
	Multiline   bool
}

func formRenderer(id string, fields ...Field) FormRenderer {
	return func(ctx FormContext) any {
		return Form{
			TemplateID: id,
			Fields:     append([]Field(nil), fields...),
			Disabled:   ctx.Disabled || ctx.IsLoading,
		}
	}
}

func packageJSONDependency() Template {
	return Template{
		ID:     "package-json-dependency",
		Title:  "package.json dependency",
		Detail: "Upgrade, ban, or consolidate an npm dependency across repositories.",
		Icon:   "npm",
		RenderForm: formRenderer("package-json-dependency",
			Field{Name: "packageName", Label: "Package name", Placeholder: "lodash"},
			Field{Name: "versionRange", Label: "Version range", Placeholder: "^4.17.0"},
			Field{Name: "action", Label: "Action", Placeholder: "upgrade"},
		),
	}
}

func npmCredentials() Template {
	return Template{
		ID:     "npm-credentials",
		Title:  "npm credentials",
		Detail: "Find and remove npm tokens committed to .npmrc files.",
		Icon:   "npm",
		RenderForm: formRenderer("npm-credentials",
			Field{Name: "matchTokens", Label: "Token patterns", Placeholder: "_authToken=", Multiline: true},
		),
	}
}

func rubyGemDependency() Template {
	return Template{
		ID:     "ruby-gem-dependency",
		Title:  "Ruby gem dependency",
		Detail: "Upgrade or ban a gem across Gemfiles.",
		Icon:   "ruby",
		RenderForm: formRenderer("ruby-gem-dependency",
			Field{Name: "gemName", Label: "Gem name", Placeholder: "rails"},
			Field{Name: "versionRange", Label: "Version requirement", Placeholder: "~> 6.0"},
		),
	}
}

func findReplace() Template {
	return Template{
		ID:     "find-replace",
		Title:  "Find and replace",
		Detail: "Replace matches of a search query across repositories.",
		Icon:   "find-replace",
		RenderForm: formRenderer("find-replace",
			Field{Name: "matchTemplate", Label: "Find", Placeholder: "fmt.Println(:[args])"},
			Field{Name: "rewriteTemplate", Label: "Replace with", Placeholder: "log.Println(:[args])"},
		),
	}
}

func triageSearchResults() Template {
	return Template{
		ID:     "triage-search-results",
		Title:  "Triage search results",
		Detail: "Create a thread for each result of a search query.",
		Icon:   "search",
		RenderForm: formRenderer("triage-search-results",
			Field{Name: "query", Label: "Search query", Placeholder: "repo:^github\\.com/ TODO", Multiline: true},
		),
	}
}

func existingChangesetsAndIssues() Template {
	return Template{
		ID:     "existing-changesets-and-issues",
		Title:  "Track existing changesets and issues",
		Detail: "Group changesets and issues that already exist on code hosts.",
		Icon:   "changeset",
		RenderForm: formRenderer("existing-changesets-and-issues",
			Field{Name: "urls", Label: "Changeset and issue URLs", Multiline: true},
		),
	}
}
