package extract

import (
	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/flytohub/flyto-indexer/internal/parser"
	"github.com/flytohub/flyto-indexer/internal/symbol"
)

// heritageFieldNames are the grammar field names that carry a class's base
// classes or implemented interfaces, checked in order since the name
// varies per language grammar (Python's "superclasses", Java/PHP's
// "superclass"/"interfaces", C++'s "base_class_clause", ...).
var heritageFieldNames = []string{"superclasses", "superclass", "interfaces", "base_class_clause", "heritage"}

// extractHeritage returns the base-class/interface names a class node
// declares, tagged symbol.RefExtends for the graph builder. TypeScript and
// JavaScript nest their extends/implements clause under an unnamed
// "class_heritage" child rather than a named field, so that kind is also
// checked directly among the node's children.
func extractHeritage(node *tree_sitter.Node, source []byte) []symbol.Ref {
	var names []string
	for _, field := range heritageFieldNames {
		if child := node.ChildByFieldName(field); child != nil {
			names = append(names, heritageIdentifiers(child, source)...)
		}
	}
	for i := uint(0); i < node.ChildCount(); i++ {
		if child := node.Child(i); child != nil && child.Kind() == "class_heritage" {
			names = append(names, heritageIdentifiers(child, source)...)
		}
	}

	seen := make(map[string]bool, len(names))
	var refs []symbol.Ref
	for _, n := range names {
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		refs = append(refs, symbol.Ref{Name: n, Kind: symbol.RefExtends})
	}
	return refs
}

func heritageIdentifiers(node *tree_sitter.Node, source []byte) []string {
	var names []string
	parser.Walk(node, func(n *tree_sitter.Node) bool {
		switch n.Kind() {
		case "identifier", "type_identifier", "scoped_identifier", "qualified_identifier":
			names = append(names, parser.NodeText(n, source))
			return false
		}
		return true
	})
	return names
}
