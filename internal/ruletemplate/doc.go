// Package ruletemplate holds the ordered list of rule templates offered when
// a campaign is created. The list is built once from a single feature flag
// and is read-only afterwards; it always ends with the empty template that
// stands for "no template selected".
package ruletemplate
