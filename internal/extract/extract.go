// Package extract turns a parsed tree-sitter AST (or, for Vue, a sliced
// script block) into the uniform symbol.Record / symbol.FileRecord stream
// every downstream stage consumes. One dispatch table per language, the
// same way internal/lang registers one node-kind table per language:
// dynamic dispatch on Language, no per-language parser interface hierarchy.
package extract

import (
	"context"
	"strings"
	"unicode/utf8"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/flytohub/flyto-indexer/internal/hashutil"
	"github.com/flytohub/flyto-indexer/internal/lang"
	"github.com/flytohub/flyto-indexer/internal/parser"
	"github.com/flytohub/flyto-indexer/internal/symbol"
)

// Result is everything one file's extraction produces.
type Result struct {
	File    symbol.FileRecord
	Symbols []symbol.Record
}

// File parses file content and extracts its symbols, imports, routes, and
// call sites. It never returns an error for a syntactically broken
// construct: per the parser contract, a bad construct is skipped and
// extraction continues. The error paths are non-UTF-8 content, a language
// with no registered spec, and any parser.Parse failure (a timeout, an
// unsupported grammar, or no tree); each is reported as ParseError with
// zero symbols rather than failing the caller.
func File(ctx context.Context, project, relPath string, language lang.Language, content []byte) Result {
	if !utf8.Valid(content) {
		return Result{File: errorRecord(project, relPath, language, content)}
	}

	if language == lang.Vue {
		return extractVue(ctx, project, relPath, content)
	}

	spec := lang.ForLanguage(language)
	if spec == nil {
		return Result{File: errorRecord(project, relPath, language, content)}
	}

	tree, err := parser.Parse(ctx, language, content)
	if err != nil {
		return Result{File: errorRecord(project, relPath, language, content)}
	}
	defer tree.Close()

	return fromTree(project, relPath, language, spec, content, tree.RootNode())
}

func errorRecord(project, relPath string, language lang.Language, content []byte) symbol.FileRecord {
	return symbol.FileRecord{
		Path:        relPath,
		Project:     project,
		Language:    string(language),
		ContentHash: hashutil.Hash(content),
		Status:      symbol.ParseError,
	}
}

// fromTree walks a parsed tree and produces the file's symbols. Shared by
// every tree-sitter-backed language and by Vue's delegated script block.
func fromTree(project, relPath string, language lang.Language, spec *lang.LanguageSpec, source []byte, root *tree_sitter.Node) Result {
	funcTypes := toSet(spec.FunctionNodeTypes)
	classTypes := toSet(spec.ClassNodeTypes)

	var records []symbol.Record
	var ids []symbol.ID

	parser.Walk(root, func(node *tree_sitter.Node) bool {
		kind := node.Kind()

		if language == lang.Rust && kind == "impl_item" {
			records = append(records, extractRustImpl(node, source, project, relPath, spec)...)
			return false
		}

		if funcTypes[kind] {
			if rec, ok := extractFunction(node, source, project, relPath, language, spec, ""); ok {
				records = append(records, rec)
			}
			return false
		}

		if classTypes[kind] {
			rec, methods := extractClass(node, source, project, relPath, language, spec)
			if rec.ID.Name != "" {
				records = append(records, rec)
				records = append(records, methods...)
			}
			return false
		}

		return true
	})

	for _, r := range records {
		ids = append(ids, r.ID)
	}

	imports := extractImports(root, source, language)
	routes, calls := extractAPI(project, relPath, language, source, records)

	file := symbol.FileRecord{
		Path:          relPath,
		Project:       project,
		Language:      string(language),
		ContentHash:   hashutil.Hash(source),
		Symbols:       ids,
		Imports:       imports,
		DefinedRoutes: routes,
		OutboundCalls: calls,
	}
	return Result{File: file, Symbols: records}
}

func extractFunction(node *tree_sitter.Node, source []byte, project, relPath string, language lang.Language, spec *lang.LanguageSpec, owner string) (symbol.Record, bool) {
	nameNode := funcNameNode(node, language)
	if nameNode == nil {
		return symbol.Record{}, false
	}
	name := parser.NodeText(nameNode, source)
	if name == "" {
		return symbol.Record{}, false
	}

	kind := symbol.KindFunction
	recvNode := node.ChildByFieldName("receiver")
	switch {
	case owner != "":
		kind = symbol.KindMethod
		name = symbol.MethodName(owner, name)
	case recvNode != nil:
		kind = symbol.KindMethod
		if recvName := goReceiverType(recvNode, source); recvName != "" {
			name = symbol.MethodName(recvName, name)
		}
	}

	id := symbol.New(project, relPath, kind, name)

	var sig string
	if params := node.ChildByFieldName("parameters"); params != nil {
		sig = parser.NodeText(params, source)
	}
	bodyNode := node.ChildByFieldName("body")
	bodyText := parser.NodeText(node, source)
	if bodyNode != nil {
		bodyText = parser.NodeText(bodyNode, source)
	}

	rec := symbol.Record{
		ID:   id,
		Kind: kind,
		Span: symbol.Span{
			StartLine: int(node.StartPosition().Row) + 1,
			EndLine:   int(node.EndPosition().Row) + 1,
		},
		Signature:  sig,
		Doc:        extractDocstring(node, source, language),
		Decorators: extractDecorators(node, source, spec),
		Exports:    isExported(name, language, node),
		RefsOut:    sweepRefs(bodyText, language),
		BodyHash:   hashutil.HashString(bodyText),
	}
	return rec, true
}

func extractClass(node *tree_sitter.Node, source []byte, project, relPath string, language lang.Language, spec *lang.LanguageSpec) (symbol.Record, []symbol.Record) {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		nameNode = findChildByKind(node, "identifier")
	}
	if nameNode == nil {
		return symbol.Record{}, nil
	}
	name := parser.NodeText(nameNode, source)
	if name == "" {
		return symbol.Record{}, nil
	}

	kind := classKind(node.Kind(), language)
	id := symbol.New(project, relPath, kind, name)
	bodyText := parser.NodeText(node, source)
	sweepText := bodyText
	if body := node.ChildByFieldName("body"); body != nil {
		sweepText = parser.NodeText(body, source)
	}

	refsOut := append([]symbol.Ref{}, extractHeritage(node, source)...)
	refsOut = append(refsOut, sweepRefs(sweepText, language)...)

	rec := symbol.Record{
		ID:   id,
		Kind: kind,
		Span: symbol.Span{
			StartLine: int(node.StartPosition().Row) + 1,
			EndLine:   int(node.EndPosition().Row) + 1,
		},
		Doc:        extractDocstring(node, source, language),
		Decorators: extractDecorators(node, source, spec),
		Exports:    isExported(name, language, node),
		RefsOut:    refsOut,
		BodyHash:   hashutil.HashString(bodyText),
	}

	var methods []symbol.Record
	funcTypes := toSet(spec.FunctionNodeTypes)
	body := node.ChildByFieldName("body")
	if body == nil {
		body = node
	}
	parser.Walk(body, func(n *tree_sitter.Node) bool {
		if n == node {
			return true
		}
		if funcTypes[n.Kind()] {
			if m, ok := extractFunction(n, source, project, relPath, language, spec, name); ok {
				methods = append(methods, m)
			}
			return false
		}
		return classTypesStop(n, spec)
	})

	return rec, methods
}

func classTypesStop(n *tree_sitter.Node, spec *lang.LanguageSpec) bool {
	for _, t := range spec.ClassNodeTypes {
		if n.Kind() == t {
			return false
		}
	}
	return true
}

// extractRustImpl attributes every method in an `impl Type { ... }` (or
// `impl Trait for Type`) block to Type, the same ownership rule applied to
// Go's method receivers.
func extractRustImpl(node *tree_sitter.Node, source []byte, project, relPath string, spec *lang.LanguageSpec) []symbol.Record {
	typeNode := node.ChildByFieldName("type")
	if typeNode == nil {
		return nil
	}
	owner := parser.NodeText(typeNode, source)
	owner = strings.TrimSpace(owner)

	var methods []symbol.Record
	funcTypes := toSet(spec.FunctionNodeTypes)
	body := node.ChildByFieldName("body")
	if body == nil {
		return nil
	}
	parser.Walk(body, func(n *tree_sitter.Node) bool {
		if funcTypes[n.Kind()] {
			if m, ok := extractFunction(n, source, project, relPath, lang.Rust, spec, owner); ok {
				methods = append(methods, m)
			}
			return false
		}
		return true
	})
	return methods
}

func goReceiverType(recv *tree_sitter.Node, source []byte) string {
	text := parser.NodeText(recv, source)
	text = strings.Trim(text, "()")
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return ""
	}
	t := fields[len(fields)-1]
	return strings.TrimPrefix(t, "*")
}
