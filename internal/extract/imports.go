package extract

import (
	"regexp"
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/flytohub/flyto-indexer/internal/lang"
	"github.com/flytohub/flyto-indexer/internal/parser"
	"github.com/flytohub/flyto-indexer/internal/symbol"
)

var (
	pyImportRe   = regexp.MustCompile(`from\s+([\w.]+)\s+import\s+(\w+)`)
	pyPlainImpRe = regexp.MustCompile(`^import\s+([\w.]+)(?:\s+as\s+(\w+))?`)
	jsImportRe   = regexp.MustCompile(`import\s+(?:\{[^}]*\}|\*\s+as\s+\w+|\w+)\s+from\s+["']([^"']+)["']`)
	jsRequireRe  = regexp.MustCompile(`(?:const|let|var)\s+(\w+)\s*=\s*require\(\s*["']([^"']+)["']`)
)

// extractImports returns the file's import/use declarations. Go, Rust and
// Java are read from the AST (import_spec, use_declaration and
// import_declaration nodes); Python and the JS family are read off the
// source text with regexes, which is adequate here because imports never
// need byte-exact spans. Any other language yields no imports.
func extractImports(root *tree_sitter.Node, source []byte, language lang.Language) []symbol.Import {
	switch language {
	case lang.Go:
		return goImports(root, source)
	case lang.Python:
		return pythonImports(string(source))
	case lang.JavaScript, lang.TypeScript, lang.TSX, lang.Vue:
		return jsImports(string(source))
	case lang.Rust:
		return useImports(root, source, "use_declaration")
	case lang.Java:
		return useImports(root, source, "import_declaration")
	default:
		return nil
	}
}

func goImports(root *tree_sitter.Node, source []byte) []symbol.Import {
	var imports []symbol.Import
	parser.Walk(root, func(node *tree_sitter.Node) bool {
		if node.Kind() != "import_spec" {
			return true
		}
		pathNode := node.ChildByFieldName("path")
		if pathNode == nil {
			return true
		}
		module := strings.Trim(parser.NodeText(pathNode, source), `"`)
		alias := ""
		if nameNode := node.ChildByFieldName("name"); nameNode != nil {
			alias = parser.NodeText(nameNode, source)
		}
		imports = append(imports, symbol.Import{Module: module, Alias: alias})
		return true
	})
	return imports
}

func pythonImports(source string) []symbol.Import {
	var imports []symbol.Import
	for _, line := range strings.Split(source, "\n") {
		line = strings.TrimSpace(line)
		if m := pyImportRe.FindStringSubmatch(line); m != nil {
			imports = append(imports, symbol.Import{Module: m[1], Alias: m[2]})
			continue
		}
		if m := pyPlainImpRe.FindStringSubmatch(line); m != nil {
			imports = append(imports, symbol.Import{Module: m[1], Alias: m[2]})
		}
	}
	return imports
}

func jsImports(source string) []symbol.Import {
	var imports []symbol.Import
	for _, m := range jsImportRe.FindAllStringSubmatch(source, -1) {
		imports = append(imports, symbol.Import{Module: m[1]})
	}
	for _, m := range jsRequireRe.FindAllStringSubmatch(source, -1) {
		imports = append(imports, symbol.Import{Module: m[2], Alias: m[1]})
	}
	return imports
}

func useImports(root *tree_sitter.Node, source []byte, nodeKind string) []symbol.Import {
	var imports []symbol.Import
	parser.Walk(root, func(node *tree_sitter.Node) bool {
		if node.Kind() == nodeKind {
			imports = append(imports, symbol.Import{Module: strings.TrimSuffix(strings.TrimSpace(parser.NodeText(node, source)), ";")})
			return false
		}
		return true
	})
	return imports
}
