package extract

import (
	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/flytohub/flyto-indexer/internal/lang"
	"github.com/flytohub/flyto-indexer/internal/symbol"
)

func toSet(items []string) map[string]bool {
	m := make(map[string]bool, len(items))
	for _, item := range items {
		m[item] = true
	}
	return m
}

func findChildByKind(node *tree_sitter.Node, kind string) *tree_sitter.Node {
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child != nil && child.Kind() == kind {
			return child
		}
	}
	return nil
}

// funcNameNode resolves the name node of a function-like node. Most
// grammars expose a "name" field; a handful of dialects need a fallback —
// C++ nests the identifier inside a function_declarator, and JS/TS arrow
// functions carry their name on the enclosing variable_declarator instead
// of the function node itself.
func funcNameNode(node *tree_sitter.Node, language lang.Language) *tree_sitter.Node {
	if n := node.ChildByFieldName("name"); n != nil {
		return n
	}
	if language == lang.CPP {
		if decl := node.ChildByFieldName("declarator"); decl != nil {
			if n := decl.ChildByFieldName("declarator"); n != nil {
				return n
			}
			return findChildByKind(decl, "identifier")
		}
	}
	if node.Kind() == "arrow_function" || node.Kind() == "function_expression" {
		if p := node.Parent(); p != nil && p.Kind() == "variable_declarator" {
			return p.ChildByFieldName("name")
		}
	}
	return nil
}

// isExported applies a per-language visibility heuristic, since most
// grammars don't attach a single boolean to every definable node.
func isExported(name string, language lang.Language, node *tree_sitter.Node) bool {
	if name == "" {
		return false
	}
	switch language {
	case lang.Go:
		return name[0] >= 'A' && name[0] <= 'Z'
	case lang.Python:
		return name[0] != '_'
	case lang.Java, lang.CSharp, lang.Kotlin, lang.Scala:
		return name[0] >= 'A' && name[0] <= 'Z'
	default:
		return true
	}
}

// classKind maps a grammar's own class-like node kind to a SymbolID kind.
func classKind(nodeKind string, language lang.Language) symbol.Kind {
	switch nodeKind {
	case "interface_declaration":
		return symbol.KindInterface
	case "trait_item", "trait_definition", "trait_declaration":
		return symbol.KindTrait
	case "enum_declaration", "enum_item", "enum_specifier":
		return symbol.KindEnum
	case "struct_item", "struct_specifier", "type_spec", "type_alias_declaration", "type_alias", "type_item":
		if language == lang.Go {
			return symbol.KindStruct
		}
		return symbol.KindType
	default:
		return symbol.KindClass
	}
}
