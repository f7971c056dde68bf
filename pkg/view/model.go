// Package view models a Perspective view document and walks its component
// tree through the full validation pipeline: structural schema checks,
// binding field checks, expression analysis, embedded script analysis,
// naming conventions, and the unused-property pass.
package view

import (
	"encoding/json"
	"fmt"
	"sort"
)

// ComponentNode is one component in the tree. Raw keeps the decoded JSON
// map so the structural checks can see everything the model does not
// explicitly name.
type ComponentNode struct {
	TypeID   string
	Name     string
	Path     string
	Raw      map[string]any
	Children []*ComponentNode

	parentType string
}

// Document is a decoded view.json.
type Document struct {
	File       string
	Custom     map[string]any
	Params     map[string]any
	PropConfig map[string]any
	Root       *ComponentNode

	raw map[string]any
}

// Decode parses view.json bytes into a Document. A JSON error is returned
// to the caller; it is reported as one finding per file, not a run abort.
func Decode(file string, data []byte) (*Document, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", file, err)
	}

	doc := &Document{File: file, raw: raw}
	doc.Custom, _ = raw["custom"].(map[string]any)
	doc.Params, _ = raw["params"].(map[string]any)
	doc.PropConfig, _ = raw["propConfig"].(map[string]any)

	if root, ok := raw["root"].(map[string]any); ok {
		doc.Root = buildNode(root, "root", "")
	}
	return doc, nil
}

func buildNode(raw map[string]any, path, parentType string) *ComponentNode {
	node := &ComponentNode{
		Path:       path,
		Raw:        raw,
		parentType: parentType,
	}
	node.TypeID, _ = raw["type"].(string)
	if meta, ok := raw["meta"].(map[string]any); ok {
		node.Name, _ = meta["name"].(string)
	}

	if children, ok := raw["children"].([]any); ok {
		for i, child := range children {
			childRaw, ok := child.(map[string]any)
			if !ok {
				continue
			}
			childPath := fmt.Sprintf("%s.children[%d]", path, i)
			node.Children = append(node.Children, buildNode(childRaw, childPath, node.TypeID))
		}
	}
	return node
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// walk visits nodes depth first in document order.
func (d *Document) walk(visit func(*ComponentNode)) {
	if d.Root == nil {
		return
	}
	var rec func(*ComponentNode)
	rec = func(n *ComponentNode) {
		visit(n)
		for _, child := range n.Children {
			rec(child)
		}
	}
	rec(d.Root)
}
