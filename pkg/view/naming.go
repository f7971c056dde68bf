// Naming convention checks for component names and view custom/param keys.
package view

import (
	"fmt"
	"regexp"

	"github.com/ignition-tooling/ignition-lint/pkg/issue"
)

// StyleChecker validates names against a predefined style or a custom
// regex. The zero value accepts anything.
type StyleChecker struct {
	style   string
	pattern *regexp.Regexp
	desc    string
}

var styleDescriptions = map[string]string{
	"snake_case": "lowercase with underscores (e.g. my_variable)",
	"camelCase":  "starts lowercase, uppercase for word separation (e.g. myVariable)",
	"PascalCase": "starts uppercase, uppercase for word separation (e.g. MyClass)",
	"UPPER_CASE": "all uppercase with underscores (e.g. CONSTANT_VALUE)",
	"Title Case": "words capitalized with spaces (e.g. My Variable Name)",
	"any":        "any naming style accepted",
}

func stylePatterns(allowAcronyms bool) map[string]string {
	if allowAcronyms {
		return map[string]string{
			"snake_case": `^[a-z]+(_[a-zA-Z]+)*$`,
			"camelCase":  `^[a-z]+([A-Z][a-zA-Z]*)*$`,
			"PascalCase": `^[A-Z][a-zA-Z]*([A-Z][a-zA-Z]*)*$`,
			"UPPER_CASE": `^[A-Z]+(_[A-Z]+)*$`,
			"Title Case": `^[A-Z][a-zA-Z]*( [A-Z][a-zA-Z]*)*$`,
			"any":        `.*`,
		}
	}
	return map[string]string{
		"snake_case": `^[a-z]+(_[a-z]+)*$`,
		"camelCase":  `^[a-z]+([A-Z][a-z]*)*$`,
		"PascalCase": `^[A-Z][a-z]*([A-Z][a-z]*)*$`,
		"UPPER_CASE": `^[A-Z]+(_[A-Z]+)*$`,
		"Title Case": `^[A-Z][a-z]*( [A-Z][a-z]*)*$`,
		"any":        `.*`,
	}
}

// NewStyleChecker builds a checker for a named style. customRegex, when
// non-empty, overrides the style entirely. Unrecognized styles fall back
// to accepting anything.
func NewStyleChecker(style string, allowAcronyms bool, customRegex string) (*StyleChecker, error) {
	if customRegex != "" {
		pattern, err := regexp.Compile(customRegex)
		if err != nil {
			return nil, fmt.Errorf("invalid naming regex %q: %w", customRegex, err)
		}
		return &StyleChecker{style: style, pattern: pattern, desc: "custom pattern " + customRegex}, nil
	}

	patterns := stylePatterns(allowAcronyms)
	src, ok := patterns[style]
	if !ok {
		src = patterns["any"]
	}
	desc := styleDescriptions[style]
	if desc == "" {
		desc = styleDescriptions["any"]
	}
	return &StyleChecker{style: style, pattern: regexp.MustCompile(src), desc: desc}, nil
}

// Matches reports whether a name conforms. A nil checker accepts anything.
func (c *StyleChecker) Matches(name string) bool {
	if c == nil || c.pattern == nil {
		return true
	}
	return c.pattern.MatchString(name)
}

// Description returns the human-readable style summary for suggestions.
func (c *StyleChecker) Description() string {
	if c == nil {
		return styleDescriptions["any"]
	}
	return c.desc
}

// NamingOptions configures the document-level naming pass. Nil checkers
// skip their respective check.
type NamingOptions struct {
	Components *StyleChecker
	Parameters *StyleChecker
}

// checkNaming validates component names and custom/param keys. The root
// node is exempt: its name is fixed by the document format.
func (v *Validator) checkNaming(doc *Document) []issue.Issue {
	var issues []issue.Issue

	if v.Naming.Components != nil {
		doc.walk(func(n *ComponentNode) {
			if n.Path == "root" || n.Name == "" {
				return
			}
			if !v.Naming.Components.Matches(n.Name) {
				issues = append(issues, issue.Issue{
					Severity:      issue.SeverityStyle,
					Code:          "COMPONENT_NAMING",
					Message:       fmt.Sprintf("Component name %q does not match the configured style", n.Name),
					File:          doc.File,
					ComponentPath: n.Path,
					ComponentType: n.TypeID,
					Suggestion:    "Use " + v.Naming.Components.Description(),
				})
			}
		})
	}

	if v.Naming.Parameters != nil {
		for _, group := range []struct {
			kind  string
			props map[string]any
		}{
			{kind: "custom", props: doc.Custom},
			{kind: "params", props: doc.Params},
		} {
			for _, name := range sortedKeys(group.props) {
				if v.Naming.Parameters.Matches(name) {
					continue
				}
				issues = append(issues, issue.Issue{
					Severity:      issue.SeverityStyle,
					Code:          "PARAMETER_NAMING",
					Message:       fmt.Sprintf("Property name %q does not match the configured style", name),
					File:          doc.File,
					ComponentPath: group.kind + "." + name,
					ComponentType: "view",
					Suggestion:    "Use " + v.Naming.Parameters.Description(),
				})
			}
		}
	}

	return issues
}
