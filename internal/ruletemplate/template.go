package ruletemplate

// RuleInput is the rule definition a template form edits. Definition is
// opaque JSON owned by the rule engine.
type RuleInput struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Definition  string `json:"definition"`
}

// CampaignPatch carries campaign fields a template may fill in on the
// surrounding campaign form.
type CampaignPatch struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

// FormContext is handed to a template's form renderer.
type FormContext struct {
	Value            RuleInput
	OnChange         func(RuleInput)
	OnCampaignChange func(CampaignPatch)

	Disabled  bool
	IsLoading bool

	// LocationSearch is the query string of the page the form is shown on.
	LocationSearch string
}

// FormRenderer renders a template's form. The returned value is owned by the
// UI layer; nil renders nothing.
type FormRenderer func(ctx FormContext) any

// Template describes one selectable rule template.
type Template struct {
	ID         string       `json:"id"`
	Title      string       `json:"title"`
	Detail     string       `json:"detail,omitempty"`
	Icon       string       `json:"icon,omitempty"`
	RenderForm FormRenderer `json:"-"`
	IsEmpty    bool         `json:"isEmpty,omitempty"`
}

// EmptyID identifies the sentinel template.
const EmptyID = "empty"

// emptyTemplate is the sentinel template that represents "no template".
func emptyTemplate() Template {
	return Template{
		ID:         EmptyID,
		Title:      "",
		RenderForm: func(FormContext) any { return nil },
		IsEmpty:    true,
	}
}
