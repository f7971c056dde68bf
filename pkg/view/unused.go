// Unused-property pass: declared view custom and param properties that
// nothing in the document references. A property counts as referenced when
// its expression form (view.custom.X), script form (self.view.custom.X),
// or a propConfig binding key (custom.X) appears anywhere in the document.
package view

import (
	"fmt"
	"strings"

	"github.com/ignition-tooling/ignition-lint/pkg/issue"
)

func checkUnusedProperties(doc *Document) []issue.Issue {
	if len(doc.Custom) == 0 && len(doc.Params) == 0 {
		return nil
	}

	var sb strings.Builder
	collectStrings(doc.raw, &sb)
	allText := sb.String()
	configKeys := map[string]bool{}
	collectPropConfigKeys(doc.raw, configKeys)

	var issues []issue.Issue
	for _, name := range sortedKeys(doc.Custom) {
		if referenced(allText, configKeys, "custom", name) {
			continue
		}
		issues = append(issues, issue.Issue{
			Severity:      issue.SeverityWarning,
			Code:          "UNUSED_CUSTOM_PROPERTY",
			Message:       fmt.Sprintf("Custom property %q appears unreferenced in this view", name),
			File:          doc.File,
			ComponentPath: "custom." + name,
			ComponentType: "view",
			Suggestion:    "Remove if unused, or verify it is referenced by an embedding view",
		})
	}
	for _, name := range sortedKeys(doc.Params) {
		if referenced(allText, configKeys, "params", name) {
			continue
		}
		issues = append(issues, issue.Issue{
			Severity:      issue.SeverityInfo,
			Code:          "UNUSED_PARAM_PROPERTY",
			Message:       fmt.Sprintf("Param property %q appears unreferenced in this view", name),
			File:          doc.File,
			ComponentPath: "params." + name,
			ComponentType: "view",
			Suggestion:    "Params may be set by embedding views; verify before removing",
		})
	}
	return issues
}

func referenced(allText string, configKeys map[string]bool, kind, name string) bool {
	return strings.Contains(allText, fmt.Sprintf("view.%s.%s", kind, name)) ||
		strings.Contains(allText, fmt.Sprintf("self.view.%s.%s", kind, name)) ||
		configKeys[kind+"."+name]
}

// collectStrings concatenates every string value in the document so
// expression and script references can be found with plain substring
// search.
func collectStrings(obj any, sb *strings.Builder) {
	switch v := obj.(type) {
	case string:
		sb.WriteString(v)
		sb.WriteByte('\n')
	case map[string]any:
		for _, key := range sortedKeys(v) {
			collectStrings(v[key], sb)
		}
	case []any:
		for _, item := range v {
			collectStrings(item, sb)
		}
	}
}

// collectPropConfigKeys gathers every propConfig key path in the document,
// at the view level and on every component.
func collectPropConfigKeys(obj any, keys map[string]bool) {
	switch v := obj.(type) {
	case map[string]any:
		if pc, ok := v["propConfig"].(map[string]any); ok {
			for key := range pc {
				keys[key] = true
			}
		}
		for _, value := range v {
			collectPropConfigKeys(value, keys)
		}
	case []any:
		for _, item := range v {
			collectPropConfigKeys(item, keys)
		}
	}
}
