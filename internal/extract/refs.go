package extract

import (
	"regexp"
	"strings"

	"github.com/flytohub/flyto-indexer/internal/lang"
	"github.com/flytohub/flyto-indexer/internal/symbol"
)

// identifierRe matches a bare identifier or a dotted chain of up to three
// segments (a.b.c) — the "refs_out" vocabulary the graph resolver consumes.
var identifierRe = regexp.MustCompile(`\b[A-Za-z_][A-Za-z0-9_]*(?:\.[A-Za-z_][A-Za-z0-9_]*){0,2}\b`)

// reservedWords are filtered out of a refs_out sweep per language, covering
// control-flow keywords and the handful of builtins common enough to be
// noise in every file. Grounded on the language's own keyword set, not an
// exhaustive lexer — the sweep is a heuristic by design.
var reservedWords = map[lang.Language]map[string]bool{
	lang.Python: setOf("def", "class", "if", "elif", "else", "for", "while", "try",
		"except", "finally", "with", "as", "import", "from", "return", "yield",
		"pass", "break", "continue", "lambda", "self", "None", "True", "False",
		"and", "or", "not", "in", "is", "async", "await", "raise", "global", "nonlocal"),
	lang.Go: setOf("func", "package", "import", "var", "const", "type", "struct",
		"interface", "if", "else", "for", "range", "switch", "case", "default",
		"return", "go", "defer", "chan", "select", "break", "continue", "nil",
		"true", "false", "map", "make", "new", "len", "cap", "append"),
	lang.Rust: setOf("fn", "let", "mut", "impl", "trait", "struct", "enum", "mod",
		"use", "pub", "if", "else", "for", "while", "loop", "match", "return",
		"self", "Self", "true", "false", "async", "await", "where", "dyn"),
	lang.Java: setOf("public", "private", "protected", "static", "final", "class",
		"interface", "extends", "implements", "new", "this", "super", "if", "else",
		"for", "while", "return", "void", "true", "false", "null", "import", "package"),
	lang.TypeScript: jsReserved(),
	lang.JavaScript: jsReserved(),
	lang.TSX:        jsReserved(),
	lang.Vue:        jsReserved(),
}

func jsReserved() map[string]bool {
	return setOf("function", "const", "let", "var", "if", "else", "for", "while",
		"return", "class", "extends", "new", "this", "true", "false", "null",
		"undefined", "import", "export", "from", "async", "await", "default",
		"typeof", "instanceof", "in", "of")
}

func setOf(words ...string) map[string]bool {
	m := make(map[string]bool, len(words))
	for _, w := range words {
		m[w] = true
	}
	return m
}

// sweepRefs extracts the unresolved textual references a symbol's body
// emits: bare identifiers and dotted chains, minus reserved words and
// minus anything inside a string or comment literal. Every hit is tagged
// RefCall — the graph builder reclassifies it to imports if the resolver
// matches it through an import alias.
func sweepRefs(body string, language lang.Language) []symbol.Ref {
	stripped := stripStringsAndComments(body, language)
	reserved := reservedWords[language]

	seen := make(map[string]bool)
	var out []symbol.Ref
	for _, match := range identifierRe.FindAllString(stripped, -1) {
		head := match
		if i := strings.IndexByte(head, '.'); i >= 0 {
			head = head[:i]
		}
		if reserved != nil && reserved[head] {
			continue
		}
		if seen[match] {
			continue
		}
		seen[match] = true
		out = append(out, symbol.Ref{Name: match, Kind: symbol.RefCall})
	}
	return out
}
