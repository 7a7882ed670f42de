package imports

import (
	"context"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
)

// interfaceExportVariable is the conventional module-scope export-list
// name (spec.md GLOSSARY "Interface members").
const interfaceExportVariable = "__all__"

// ExtractInterfaceMembers returns the list of strings assigned to the
// conventional export-list variable at module scope in sourceCode, or nil
// if absent. Per spec.md §9, a dedicated visitor halts on the first
// assignment to that name; the absence of the assignment is empty, never
// an error.
func ExtractInterfaceMembers(sourceCode []byte) ([]string, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(python.GetLanguage())
	defer parser.Close()

	tree, err := parser.ParseCtx(context.Background(), nil, sourceCode)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	root := tree.RootNode()
	for i := 0; i < int(root.ChildCount()); i++ {
		stmt := root.Child(i)
		if stmt.Type() != "expression_statement" {
			continue
		}
		assign := stmt.Child(0)
		if assign == nil || assign.Type() != "assignment" {
			continue
		}
		left := assign.ChildByFieldName("left")
		if left == nil || left.Type() != "identifier" || left.Content(sourceCode) != interfaceExportVariable {
			continue
		}
		right := assign.ChildByFieldName("right")
		if right == nil {
			return nil, nil
		}
		return listStringLiterals(right, sourceCode), nil
	}
	return nil, nil
}

func listStringLiterals(node *sitter.Node, src []byte) []string {
	var out []string
	switch node.Type() {
	case "list", "tuple":
		for i := 0; i < int(node.ChildCount()); i++ {
			child := node.Child(i)
			if child.Type() == "string" {
				out = append(out, stringLiteralContent(child, src))
			}
		}
	}
	return out
}
