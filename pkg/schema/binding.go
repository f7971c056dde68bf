// Binding and transform checks over a node's propConfig block. These run
// for every accepted node regardless of whether the type has a structural
// schema; binding shape is uniform across component types.
package schema

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ignition-tooling/ignition-lint/pkg/issue"
)

var validBindingTypes = map[string]bool{
	"property":    true,
	"expr":        true,
	"tag":         true,
	"expr-struct": true,
	"query":       true,
	"tag-history": true,
}

var validTransformTypes = map[string]bool{
	"map":        true,
	"script":     true,
	"expression": true,
	"format":     true,
}

// Binding describes one extracted binding so callers can fan its payload
// out to the expression and script analyzers.
type Binding struct {
	PropertyPath string
	Kind         string
	Expression   string
	TagPath      string
	SourcePath   string
	StructExprs  map[string]string
	Transforms   []Transform
	OnChange     string
}

// Transform is one entry of a binding's ordered transform chain.
type Transform struct {
	Kind       string
	Code       string
	Expression string
}

// ExtractBindings pulls the bindings out of a raw node in property-path
// order. Malformed entries are skipped here; checkBindings reports them.
func ExtractBindings(raw map[string]any) []Binding {
	pc, _ := raw["propConfig"].(map[string]any)
	if len(pc) == 0 {
		return nil
	}
	paths := make([]string, 0, len(pc))
	for path := range pc {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	var bindings []Binding
	for _, path := range paths {
		entry, _ := pc[path].(map[string]any)
		binding, _ := entry["binding"].(map[string]any)
		if binding == nil {
			continue
		}
		b := Binding{PropertyPath: path}
		b.Kind, _ = binding["type"].(string)
		config, _ := binding["config"].(map[string]any)
		if config != nil {
			b.Expression, _ = config["expression"].(string)
			b.TagPath, _ = config["tagPath"].(string)
			b.SourcePath, _ = config["path"].(string)
			if members, ok := config["struct"].(map[string]any); ok {
				b.StructExprs = make(map[string]string, len(members))
				for member, v := range members {
					if expr, ok := v.(string); ok {
						b.StructExprs[member] = expr
					}
				}
			}
		}
		if transforms, ok := binding["transforms"].([]any); ok {
			for _, t := range transforms {
				tm, _ := t.(map[string]any)
				if tm == nil {
					continue
				}
				tr := Transform{}
				tr.Kind, _ = tm["type"].(string)
				tr.Code, _ = tm["code"].(string)
				tr.Expression, _ = tm["expression"].(string)
				b.Transforms = append(b.Transforms, tr)
			}
		}
		if onChange, ok := binding["onChange"].(map[string]any); ok {
			b.OnChange, _ = onChange["script"].(string)
		}
		bindings = append(bindings, b)
	}
	return bindings
}

// checkBindings validates binding and transform kinds and their mandatory
// per-kind fields.
func checkBindings(n Node) []issue.Issue {
	pc, _ := n.Raw["propConfig"].(map[string]any)
	if len(pc) == 0 {
		return nil
	}
	paths := make([]string, 0, len(pc))
	for path := range pc {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	var issues []issue.Issue
	at := func(sev issue.Severity, code, msg, suggestion string) {
		issues = append(issues, issue.Issue{
			Severity:      sev,
			Code:          code,
			Message:       msg,
			File:          n.File,
			ComponentPath: n.Path,
			ComponentType: n.TypeID,
			Suggestion:    suggestion,
		})
	}

	for _, path := range paths {
		entry, _ := pc[path].(map[string]any)
		binding, _ := entry["binding"].(map[string]any)
		if binding == nil {
			continue
		}
		kind, _ := binding["type"].(string)
		config, _ := binding["config"].(map[string]any)

		if !validBindingTypes[kind] {
			at(issue.SeverityError, "INVALID_BINDING_TYPE",
				fmt.Sprintf("Binding on %s has invalid type %q", path, kind),
				"Valid binding types: property, expr, tag, expr-struct, query, tag-history")
		} else {
			switch kind {
			case "tag", "tag-history":
				tagPath, _ := config["tagPath"].(string)
				if strings.TrimSpace(tagPath) == "" {
					at(issue.SeverityError, "MISSING_TAG_PATH",
						fmt.Sprintf("Tag binding on %s has no tagPath", path), "")
				}
				if kind == "tag" {
					if _, ok := config["fallbackDelay"]; !ok {
						at(issue.SeverityInfo, "MISSING_TAG_FALLBACK",
							fmt.Sprintf("Tag binding on %s sets no fallbackDelay", path),
							"A fallbackDelay keeps the property stable while the tag is stale")
					}
				}
			case "expr":
				expr, _ := config["expression"].(string)
				if strings.TrimSpace(expr) == "" {
					at(issue.SeverityError, "MISSING_EXPRESSION",
						fmt.Sprintf("Expression binding on %s has no expression", path), "")
				}
			case "property":
				src, _ := config["path"].(string)
				if strings.TrimSpace(src) == "" {
					at(issue.SeverityError, "MISSING_PROPERTY_PATH",
						fmt.Sprintf("Property binding on %s has no source path", path), "")
				}
			}
		}

		transforms, _ := binding["transforms"].([]any)
		for i, t := range transforms {
			tm, _ := t.(map[string]any)
			if tm == nil {
				continue
			}
			tKind, _ := tm["type"].(string)
			if !validTransformTypes[tKind] {
				at(issue.SeverityError, "INVALID_TRANSFORM_TYPE",
					fmt.Sprintf("Transform %d on %s has invalid type %q", i+1, path, tKind),
					"Valid transform types: map, script, expression, format")
				continue
			}
			switch tKind {
			case "script":
				code, _ := tm["code"].(string)
				if strings.TrimSpace(code) == "" {
					at(issue.SeverityError, "MISSING_SCRIPT_CODE",
						fmt.Sprintf("Script transform %d on %s has no code", i+1, path), "")
				}
			case "expression":
				expr, _ := tm["expression"].(string)
				if strings.TrimSpace(expr) == "" {
					at(issue.SeverityError, "MISSING_TRANSFORM_EXPRESSION",
						fmt.Sprintf("Expression transform %d on %s has no expression", i+1, path), "")
				}
			case "map":
				mappings, _ := tm["mappings"].([]any)
				if len(mappings) == 0 {
					at(issue.SeverityWarning, "MISSING_MAP_MAPPINGS",
						fmt.Sprintf("Map transform %d on %s declares no mappings", i+1, path),
						"A map transform without mappings passes every value to the fallback")
				}
				if _, ok := tm["fallback"]; !ok {
					at(issue.SeverityInfo, "MISSING_MAP_FALLBACK",
						fmt.Sprintf("Map transform %d on %s has no fallback", i+1, path),
						"Unmatched input values produce null without a fallback")
				}
			}
		}
	}
	return issues
}
