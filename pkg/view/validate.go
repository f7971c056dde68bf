package view

import (
	"github.com/ignition-tooling/ignition-lint/pkg/expression"
	"github.com/ignition-tooling/ignition-lint/pkg/issue"
	"github.com/ignition-tooling/ignition-lint/pkg/logger"
	"github.com/ignition-tooling/ignition-lint/pkg/schema"
	"github.com/ignition-tooling/ignition-lint/pkg/script"
)

var validateLog = logger.New("view:validate")

// Validator runs the per-document pipeline. Build once and share; the
// registry and naming checkers are read-only.
type Validator struct {
	Registry *schema.Registry
	Naming   NamingOptions
}

// Validate walks the component tree depth first in document order. Issue
// order is deterministic: per node the registry findings come first, then
// binding payload analysis, then events; the document-level passes
// (naming, unused properties) run last.
func (v *Validator) Validate(doc *Document) []issue.Issue {
	var issues []issue.Issue

	// View-level propConfig carries bindings on custom/param properties.
	if len(doc.PropConfig) > 0 {
		viewNode := schema.Node{
			TypeID: "view",
			Name:   "view",
			Raw:    map[string]any{"propConfig": doc.PropConfig, "meta": map[string]any{"name": "view"}},
			File:   doc.File,
			Path:   "view",
		}
		issues = append(issues, checkBindingPayloads(viewNode)...)
	}

	count := 0
	doc.walk(func(n *ComponentNode) {
		count++
		node := schema.Node{
			TypeID:     n.TypeID,
			Name:       n.Name,
			Raw:        n.Raw,
			File:       doc.File,
			Path:       n.Path,
			ParentType: n.parentType,
			ChildCount: len(n.Children),
			IsLeaf:     len(n.Children) == 0,
		}
		issues = append(issues, v.Registry.ValidateNode(node)...)
		issues = append(issues, checkBindingPayloads(node)...)
		issues = append(issues, checkEventScripts(n, doc.File)...)
	})
	validateLog.Printf("Validated %d components in %s", count, doc.File)

	issues = append(issues, v.checkNaming(doc)...)
	issues = append(issues, checkUnusedProperties(doc)...)
	return issues
}

// checkBindingPayloads fans a node's binding payloads out to the
// expression and embedded-script analyzers.
func checkBindingPayloads(node schema.Node) []issue.Issue {
	var issues []issue.Issue

	loc := expression.Location{
		File:          node.File,
		ComponentPath: node.Path,
		ComponentType: node.TypeID,
	}
	sctx := script.Context{
		File:          node.File,
		ComponentPath: node.Path,
		ComponentType: node.TypeID,
	}

	for _, b := range schema.ExtractBindings(node.Raw) {
		if b.Kind == "expr" && b.Expression != "" {
			issues = append(issues, expression.Analyze(b.Expression, loc)...)
		}
		for _, member := range sortedKeys(b.StructExprs) {
			if expr := b.StructExprs[member]; expr != "" {
				issues = append(issues, expression.Analyze(expr, loc)...)
			}
		}
		for _, tr := range b.Transforms {
			switch tr.Kind {
			case "script":
				if tr.Code != "" {
					ctx := sctx
					ctx.Origin = script.OriginTransform
					issues = append(issues, script.AnalyzeFragment(tr.Code, ctx)...)
				}
			case "expression":
				if tr.Expression != "" {
					issues = append(issues, expression.Analyze(tr.Expression, loc)...)
				}
			}
		}
		if b.OnChange != "" {
			ctx := sctx
			ctx.Origin = script.OriginOnChange
			issues = append(issues, script.AnalyzeFragment(b.OnChange, ctx)...)
		}
	}
	return issues
}

// checkEventScripts runs every script event handler through the embedded
// analyzer. Handlers sit under events.<category>.<eventName>, either one
// handler object or a list of them.
func checkEventScripts(n *ComponentNode, file string) []issue.Issue {
	events, ok := n.Raw["events"].(map[string]any)
	if !ok {
		return nil
	}

	var issues []issue.Issue
	ctx := script.Context{
		File:          file,
		ComponentPath: n.Path,
		ComponentType: n.TypeID,
		Origin:        script.OriginEventHandler,
	}

	for _, category := range sortedKeys(events) {
		handlers, ok := events[category].(map[string]any)
		if !ok {
			continue
		}
		for _, eventName := range sortedKeys(handlers) {
			var list []any
			switch h := handlers[eventName].(type) {
			case []any:
				list = h
			case map[string]any:
				list = []any{h}
			}
			for _, entry := range list {
				handler, ok := entry.(map[string]any)
				if !ok {
					continue
				}
				if kind, _ := handler["type"].(string); kind != "script" {
					continue
				}
				config, _ := handler["config"].(map[string]any)
				code, _ := config["script"].(string)
				if code != "" {
					issues = append(issues, script.AnalyzeFragment(code, ctx)...)
				}
			}
		}
	}
	return issues
}
