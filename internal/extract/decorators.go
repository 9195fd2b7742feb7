package extract

import (
	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/flytohub/flyto-indexer/internal/lang"
	"github.com/flytohub/flyto-indexer/internal/parser"
)

// extractDecorators collects the decorator/annotation siblings attached to
// a definition node, in source order. The grammar attaches decorators as
// preceding siblings of the node they apply to (Python, TS/JS) or as
// children of a modifiers node (Java); LanguageSpec.DecoratorNodeTypes
// names which node kinds count, so this is one function for every language
// instead of a per-language extractor.
func extractDecorators(node *tree_sitter.Node, source []byte, spec *lang.LanguageSpec) []string {
	if len(spec.DecoratorNodeTypes) == 0 {
		return nil
	}
	kinds := toSet(spec.DecoratorNodeTypes)

	var decorators []string
	if mods := node.ChildByFieldName("modifiers"); mods != nil {
		for i := uint(0); i < mods.ChildCount(); i++ {
			child := mods.Child(i)
			if child != nil && kinds[child.Kind()] {
				decorators = append(decorators, parser.NodeText(child, source))
			}
		}
		if len(decorators) > 0 {
			return decorators
		}
	}

	parent := node.Parent()
	if parent == nil {
		return nil
	}
	var preceding []string
	for i := uint(0); i < parent.ChildCount(); i++ {
		child := parent.Child(i)
		if child == nil {
			continue
		}
		if child.StartByte() >= node.StartByte() {
			break
		}
		if kinds[child.Kind()] {
			preceding = append(preceding, parser.NodeText(child, source))
		} else if child.StartByte() > 0 {
			preceding = nil
		}
	}
	return preceding
}
