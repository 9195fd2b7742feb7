package extract

import (
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/flytohub/flyto-indexer/internal/lang"
	"github.com/flytohub/flyto-indexer/internal/parser"
)

// extractDocstring returns the leading documentation for a definition node.
// Python follows PEP 257 (a string literal as the first body statement);
// every other language is scanned backwards from the definition for
// contiguous leading comment lines.
func extractDocstring(node *tree_sitter.Node, source []byte, language lang.Language) string {
	if language == lang.Python {
		return pythonDocstring(node, source)
	}
	return leadingCommentLines(source, int(node.StartPosition().Row))
}

func pythonDocstring(node *tree_sitter.Node, source []byte) string {
	body := node.ChildByFieldName("body")
	if body == nil || body.NamedChildCount() == 0 {
		return ""
	}
	first := body.NamedChild(0)
	if first == nil || first.Kind() != "expression_statement" || first.NamedChildCount() == 0 {
		return ""
	}
	strNode := first.NamedChild(0)
	if strNode == nil || strNode.Kind() != "string" {
		return ""
	}
	return dedentPythonDocstring(parser.NodeText(strNode, source))
}

func dedentPythonDocstring(s string) string {
	for _, delim := range []string{`"""`, `'''`} {
		if strings.HasPrefix(s, delim) && strings.HasSuffix(s, delim) && len(s) >= 6 {
			s = s[3 : len(s)-3]
			break
		}
	}
	lines := strings.Split(s, "\n")
	if len(lines) <= 1 {
		return strings.TrimSpace(s)
	}
	minIndent := -1
	for _, line := range lines[1:] {
		trimmed := strings.TrimLeft(line, " \t")
		if trimmed == "" {
			continue
		}
		if indent := len(line) - len(trimmed); minIndent < 0 || indent < minIndent {
			minIndent = indent
		}
	}
	if minIndent > 0 {
		for i := 1; i < len(lines); i++ {
			if len(lines[i]) >= minIndent {
				lines[i] = lines[i][minIndent:]
			}
		}
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

var commentPrefixes = []string{"//", "#", "*", "/*", "///", "'''", `"""`}

// leadingCommentLines walks source lines upward from startRow, collecting
// contiguous comment lines, then returns them top-down, joined.
func leadingCommentLines(source []byte, startRow int) string {
	lines := strings.Split(string(source), "\n")
	if startRow <= 0 || startRow > len(lines) {
		return ""
	}
	var collected []string
	for row := startRow - 1; row >= 0; row-- {
		trimmed := strings.TrimSpace(lines[row])
		if trimmed == "" {
			if len(collected) > 0 {
				break
			}
			continue
		}
		if !isCommentLine(trimmed) {
			break
		}
		collected = append([]string{stripCommentMarkers(trimmed)}, collected...)
	}
	return strings.TrimSpace(strings.Join(collected, "\n"))
}

func isCommentLine(line string) bool {
	for _, p := range commentPrefixes {
		if strings.HasPrefix(line, p) {
			return true
		}
	}
	return false
}

func stripCommentMarkers(line string) string {
	line = strings.TrimPrefix(line, "///")
	line = strings.TrimPrefix(line, "//")
	line = strings.TrimPrefix(line, "#")
	line = strings.TrimPrefix(line, "/*")
	line = strings.TrimSuffix(line, "*/")
	line = strings.TrimPrefix(line, "*")
	return strings.TrimSpace(line)
}
