package script

import (
	"context"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"

	"github.com/ignition-tooling/ignition-lint/pkg/logger"
)

var parseLog = logger.New("script:parse")

// syntaxError is the first parse defect found in a source tree. Positions
// are 1-based.
type syntaxError struct {
	Line    int
	Column  int
	Message string
}

// parsePython parses source with the tree-sitter Python grammar. The
// grammar always produces a tree; defects show up as error or missing
// nodes, so the caller gets both the tree and the first defect (if any).
// Callers must Close the returned tree.
func parsePython(src []byte) (*sitter.Tree, *syntaxError, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(python.GetLanguage())

	tree, err := parser.ParseCtx(context.Background(), nil, src)
	if err != nil {
		return nil, nil, err
	}

	if serr := firstSyntaxError(tree.RootNode()); serr != nil {
		parseLog.Printf("Syntax error at %d:%d", serr.Line, serr.Column)
		return tree, serr, nil
	}
	return tree, nil, nil
}

// firstSyntaxError walks the tree in document order for the first error or
// missing node.
func firstSyntaxError(node *sitter.Node) *syntaxError {
	if node.Type() == "ERROR" || node.IsMissing() {
		msg := "invalid syntax"
		if node.IsMissing() {
			msg = "incomplete statement"
		}
		return &syntaxError{
			Line:    int(node.StartPoint().Row) + 1,
			Column:  int(node.StartPoint().Column) + 1,
			Message: msg,
		}
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		if serr := firstSyntaxError(node.Child(i)); serr != nil {
			return serr
		}
	}
	return nil
}

// walkTree visits every node depth first, document order.
func walkTree(node *sitter.Node, visit func(*sitter.Node)) {
	visit(node)
	for i := 0; i < int(node.NamedChildCount()); i++ {
		walkTree(node.NamedChild(i), visit)
	}
}

// functionDocstring returns whether a function_definition node's body opens
// with a string expression.
func functionDocstring(fn *sitter.Node) bool {
	body := fn.ChildByFieldName("body")
	if body == nil || body.NamedChildCount() == 0 {
		return false
	}
	first := body.NamedChild(0)
	if first.Type() != "expression_statement" || first.NamedChildCount() == 0 {
		return false
	}
	return first.NamedChild(0).Type() == "string"
}
