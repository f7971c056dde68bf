// Component-level checks: type acceptance, structural schema validation,
// and the advisory heuristics that run on every node regardless of mode.
package schema

import (
	"fmt"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/santhosh-tekuri/jsonschema/v6/kind"

	"github.com/ignition-tooling/ignition-lint/pkg/issue"
)

// Node is the registry's view of one component: the decoded raw map plus
// the location fields carried onto every emitted issue. ChildCount covers
// container heuristics without the registry knowing the tree shape.
type Node struct {
	TypeID     string
	Name       string
	Raw        map[string]any
	File       string
	Path       string
	ParentType string
	ChildCount int
	IsLeaf     bool
}

// genericNames are placeholder names the designer assigns by default.
var genericNames = map[string]bool{
	"root":      true,
	"component": true,
	"container": true,
	"label":     true,
	"button":    true,
	"image":     true,
	"icon":      true,
	"table":     true,
	"view":      true,
	"flex":      true,
	"coord":     true,
}

// heavyTypes render large numbers of DOM nodes or poll data sources and
// deserve a look when many instances share one view.
var heavyTypes = map[string]string{
	"ia.display.table":         "tables re-render on every data update; prefer narrow column sets",
	"ia.display.flex-repeater": "each repeated instance is a full embedded view",
	"ia.chart.xy":              "XY charts repaint on every series change; bound data should be rate limited",
}

// ValidateNode runs every node-level check and returns the findings in a
// stable order: acceptance, structure, bindings, then heuristics.
func (r *Registry) ValidateNode(n Node) []issue.Issue {
	var issues []issue.Issue

	sch, known := r.Resolve(n.TypeID)
	if !known && !r.Accepts(n.TypeID) {
		issues = append(issues, issue.Issue{
			Severity:      issue.SeverityError,
			Code:          "UNKNOWN_COMPONENT_TYPE",
			Message:       fmt.Sprintf("Unknown component type %q", n.TypeID),
			File:          n.File,
			ComponentPath: n.Path,
			ComponentType: n.TypeID,
			Suggestion:    "Check the type identifier for typos, or run with --mode permissive if this is a custom module component",
		})
	}
	if known {
		issues = append(issues, r.validateStructure(sch, n)...)
	}

	issues = append(issues, checkBindings(n)...)
	issues = append(issues, checkHeuristics(n)...)
	return issues
}

// validateStructure applies the compiled schema to the raw node. Missing
// required properties get their own code so they can be suppressed apart
// from value-shape violations.
func (r *Registry) validateStructure(sch *jsonschema.Schema, n Node) []issue.Issue {
	err := sch.Validate(n.Raw)
	if err == nil {
		return nil
	}
	verr, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return []issue.Issue{{
			Severity:      issue.SeverityError,
			Code:          "SCHEMA_VALIDATION",
			Message:       fmt.Sprintf("Component does not match the %s schema: %v", n.TypeID, err),
			File:          n.File,
			ComponentPath: n.Path,
			ComponentType: n.TypeID,
		}}
	}

	var issues []issue.Issue
	for _, leaf := range leafCauses(verr) {
		if req, ok := leaf.ErrorKind.(*kind.Required); ok {
			for _, missing := range req.Missing {
				// A binding on the property satisfies the requirement at
				// runtime even though the literal value is absent.
				if hasBindingFor(n.Raw, instancePath(leaf, missing)) {
					continue
				}
				issues = append(issues, issue.Issue{
					Severity:      issue.SeverityError,
					Code:          "MISSING_REQUIRED_PROPERTY",
					Message:       fmt.Sprintf("Component %q is missing required property %q", n.TypeID, instancePath(leaf, missing)),
					File:          n.File,
					ComponentPath: n.Path,
					ComponentType: n.TypeID,
					Suggestion:    fmt.Sprintf("Add %q under %s", missing, propertyScope(leaf)),
				})
			}
			continue
		}
		issues = append(issues, issue.Issue{
			Severity:      issue.SeverityError,
			Code:          "SCHEMA_VALIDATION",
			Message:       fmt.Sprintf("Invalid value at %s: %v", instanceLocation(leaf), leaf.ErrorKind),
			File:          n.File,
			ComponentPath: n.Path,
			ComponentType: n.TypeID,
		})
	}
	return issues
}

// leafCauses flattens a validation error into its most specific causes.
func leafCauses(err *jsonschema.ValidationError) []*jsonschema.ValidationError {
	if len(err.Causes) == 0 {
		return []*jsonschema.ValidationError{err}
	}
	var leaves []*jsonschema.ValidationError
	for _, cause := range err.Causes {
		leaves = append(leaves, leafCauses(cause)...)
	}
	return leaves
}

func instanceLocation(err *jsonschema.ValidationError) string {
	if len(err.InstanceLocation) == 0 {
		return "(component root)"
	}
	return strings.Join(err.InstanceLocation, ".")
}

func instancePath(err *jsonschema.ValidationError, field string) string {
	if len(err.InstanceLocation) == 0 {
		return field
	}
	return strings.Join(err.InstanceLocation, ".") + "." + field
}

func propertyScope(err *jsonschema.ValidationError) string {
	if len(err.InstanceLocation) == 0 {
		return "the component root"
	}
	return strings.Join(err.InstanceLocation, ".")
}

// checkHeuristics covers the advisory findings. None of these are errors;
// they flag designs that work but age badly.
func checkHeuristics(n Node) []issue.Issue {
	var issues []issue.Issue

	loc := func(sev issue.Severity, code, msg, suggestion string) issue.Issue {
		return issue.Issue{
			Severity:      sev,
			Code:          code,
			Message:       msg,
			File:          n.File,
			ComponentPath: n.Path,
			ComponentType: n.TypeID,
			Suggestion:    suggestion,
		}
	}

	name := strings.TrimSpace(n.Name)
	switch {
	case name == "":
		issues = append(issues, loc(issue.SeverityWarning, "EMPTY_COMPONENT_NAME",
			"Component has an empty name",
			"Give every component a descriptive name; empty names break script component lookups"))
	case genericNames[strings.ToLower(name)] && n.Path != "root":
		issues = append(issues, loc(issue.SeverityStyle, "GENERIC_COMPONENT_NAME",
			fmt.Sprintf("Component name %q is a generic placeholder", name),
			"Rename to describe the component's purpose, e.g. MotorStatusLabel instead of Label"))
	}

	if n.TypeID == "ia.container.flex" {
		props, _ := n.Raw["props"].(map[string]any)
		if _, ok := props["direction"]; !ok {
			issues = append(issues, loc(issue.SeverityInfo, "MISSING_FLEX_DIRECTION",
				"Flex container does not set props.direction",
				"Set direction explicitly (row or column); the implicit default hides layout intent"))
		}
		if n.ChildCount == 1 {
			issues = append(issues, loc(issue.SeverityStyle, "SINGLE_CHILD_FLEX",
				"Flex container wraps a single child",
				"A flex container with one child usually adds no layout value; consider removing the wrapper"))
		}
	}

	if n.TypeID == "ia.display.label" {
		props, _ := n.Raw["props"].(map[string]any)
		text, hasText := props["text"]
		bound := hasBindingFor(n.Raw, "props.text")
		if !bound && (!hasText || text == "" || text == nil) {
			issues = append(issues, loc(issue.SeverityWarning, "MISSING_LABEL_TEXT",
				"Label has no text and no binding on props.text",
				"Set props.text or bind it; an empty label renders as blank space"))
		}
	}

	if hint, heavy := heavyTypes[n.TypeID]; heavy {
		issues = append(issues, loc(issue.SeverityInfo, "PERFORMANCE_CONSIDERATION",
			fmt.Sprintf("Component type %q can be expensive: %s", n.TypeID, hint), ""))
	}

	if _, hasMeta := n.Raw["meta"]; !hasMeta {
		issues = append(issues, loc(issue.SeverityInfo, "MISSING_META_PROPERTY",
			"Component has no meta block",
			"Designer-authored components always carry a meta block with a name entry"))
	}

	if n.ParentType == "ia.container.coord" {
		if _, ok := n.Raw["position"].(map[string]any); !ok {
			issues = append(issues, loc(issue.SeverityWarning, "MISSING_CHILD_POSITION",
				"Child of a coordinate container has no position block",
				"Coordinate containers place children by position; a child without one stacks at the origin"))
		}
	}

	if n.TypeID == "ia.display.image" || n.TypeID == "ia.display.icon" {
		props, _ := n.Raw["props"].(map[string]any)
		if _, ok := props["altText"]; !ok {
			if !hasBindingFor(n.Raw, "props.altText") {
				issues = append(issues, loc(issue.SeverityInfo, "ACCESSIBILITY_LABELING",
					fmt.Sprintf("%s has no altText", n.TypeID),
					"Set props.altText so screen readers can describe the graphic"))
			}
		}
	}

	return issues
}

// hasBindingFor reports whether propConfig declares a binding on the given
// property path.
func hasBindingFor(raw map[string]any, propPath string) bool {
	pc, _ := raw["propConfig"].(map[string]any)
	entry, _ := pc[propPath].(map[string]any)
	if entry == nil {
		return false
	}
	_, ok := entry["binding"]
	return ok
}
