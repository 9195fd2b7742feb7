package extract

import "github.com/flytohub/flyto-indexer/internal/lang"

// stripStringsAndComments blanks out string and comment contents while
// preserving byte length and line numbers (so callers doing line-oriented
// regex matching afterward keep correct line numbers). This is the
// preprocessing spec §9 calls for before the identifier (refs_out) sweep:
// a naive regex over raw bytes would treat a name inside a comment or a
// string literal as a real reference. The call-site sweep uses
// stripComments instead, because it needs the quoted URL literal intact.
func stripStringsAndComments(src string, language lang.Language) string {
	out := []byte(src)
	n := len(out)

	lineComment, blockOpen, blockClose := commentMarkers(language)

	i := 0
	for i < n {
		c := out[i]

		if lineComment != "" && hasPrefixAt(out, i, lineComment) {
			for i < n && out[i] != '\n' {
				out[i] = ' '
				i++
			}
			continue
		}
		if blockOpen != "" && hasPrefixAt(out, i, blockOpen) {
			start := i
			i += len(blockOpen)
			for i < n && !hasPrefixAt(out, i, blockClose) {
				if out[i] != '\n' {
					out[i] = ' '
				}
				i++
			}
			if i < n {
				i += len(blockClose)
			}
			for j := start; j < i && j < n; j++ {
				if out[j] != '\n' {
					out[j] = ' '
				}
			}
			continue
		}
		if c == '"' || c == '\'' || c == '`' {
			quote := c
			out[i] = ' '
			i++
			for i < n && out[i] != quote {
				if out[i] == '\\' && i+1 < n {
					out[i] = ' '
					i++
				}
				if out[i] != '\n' {
					out[i] = ' '
				}
				i++
			}
			if i < n {
				out[i] = ' '
				i++
			}
			continue
		}
		i++
	}
	return string(out)
}

// stripComments blanks out comments only, leaving string literals (quotes
// and contents) untouched. Used ahead of a call-site sweep that needs the
// quoted URL literal intact, unlike stripStringsAndComments which also
// blanks strings for the identifier/refs_out sweep.
func stripComments(src string, language lang.Language) string {
	out := []byte(src)
	n := len(out)

	lineComment, blockOpen, blockClose := commentMarkers(language)

	i := 0
	for i < n {
		c := out[i]

		if lineComment != "" && hasPrefixAt(out, i, lineComment) {
			for i < n && out[i] != '\n' {
				out[i] = ' '
				i++
			}
			continue
		}
		if blockOpen != "" && hasPrefixAt(out, i, blockOpen) {
			start := i
			i += len(blockOpen)
			for i < n && !hasPrefixAt(out, i, blockClose) {
				if out[i] != '\n' {
					out[i] = ' '
				}
				i++
			}
			if i < n {
				i += len(blockClose)
			}
			for j := start; j < i && j < n; j++ {
				if out[j] != '\n' {
					out[j] = ' '
				}
			}
			continue
		}
		if c == '"' || c == '\'' || c == '`' {
			quote := c
			i++
			for i < n && out[i] != quote {
				if out[i] == '\\' && i+1 < n {
					i++
				}
				i++
			}
			if i < n {
				i++
			}
			continue
		}
		i++
	}
	return string(out)
}

func hasPrefixAt(b []byte, i int, prefix string) bool {
	if i+len(prefix) > len(b) {
		return false
	}
	return string(b[i:i+len(prefix)]) == prefix
}

func commentMarkers(language lang.Language) (line, blockOpen, blockClose string) {
	switch language {
	case lang.Python:
		return "#", "", ""
	case lang.Lua:
		return "--", "--[[", "]]"
	case lang.Go, lang.Rust, lang.Java, lang.JavaScript, lang.TypeScript, lang.TSX,
		lang.Vue, lang.CPP, lang.CSharp, lang.Scala, lang.Kotlin, lang.PHP:
		return "//", "/*", "*/"
	default:
		return "//", "/*", "*/"
	}
}
