package ruletemplate

// Registry is an immutable, ordered list of rule templates.
type Registry struct {
	templates []Template
}

// Build returns the template list. Campaign rule templates are only offered
// when useCampaignRules is set. Build has no side effects; the same flag
// always yields the same list.
func Build(useCampaignRules bool) Registry {
	var templates []Template
	if useCampaignRules {
		templates = append(templates,
			packageJSONDependency(),
			npmCredentials(),
			rubyGemDependency(),
			findReplace(),
			triageSearchResults(),
		)
	}
	templates = append(templates, existingChangesetsAndIssues(), emptyTemplate())
	return Registry{templates: templates}
}

// All returns a copy of the templates in display order.
func (r Registry) All() []Template {
	return append([]Template(nil), r.templates...)
}

// Len returns the number of templates, including the sentinel.
func (r Registry) Len() int { return len(r.templates) }

// Lookup returns the template with the given ID.
func (r Registry) Lookup(id string) (Template, bool) {
	for _, t := range r.templates {
		if t.ID == id {
			return t, true
		}
	}
	return Template{}, false
}

// Sentinel returns the trailing empty template.
func (r Registry) Sentinel() Template {
	if len(r.templates) == 0 {
		return emptyTemplate()
	}
	return r.templates[len(r.templates)-1]
}
