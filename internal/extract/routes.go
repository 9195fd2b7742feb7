package extract

import (
	"regexp"
	"strings"

	"github.com/flytohub/flyto-indexer/internal/lang"
	"github.com/flytohub/flyto-indexer/internal/symbol"
)

// pyDecoratorRouteRe matches a FastAPI/Flask/Starlette route decorator:
// @app.get("/path"), @router.post('/path'), @bp.route("/path") and similar.
var pyDecoratorRouteRe = regexp.MustCompile(`@(\w+)\.(get|post|put|delete|patch|route)\(\s*["']([^"']*)["']`)

// jsCallSiteRe matches fetch(...), axios.get(...)/.post(...)/etc,
// $http.get(...), and .request(...) whose first argument is a string
// literal — spec's named call-site vocabulary for frontend HTTP calls.
var jsCallSiteRe = regexp.MustCompile(
	`(\bfetch|\baxios(?:\.(get|post|put|delete|patch))?|\$http(?:\.(get|post|put|delete|patch))?|\b\w+\.request)\(\s*["'` + "`" + `]([^"'` + "`" + `]+)["'` + "`" + `]`)

// extractAPI extracts RouteDecl entries (server side) from already-parsed
// decorated function records, and CallSite entries (client side) by
// scanning the comment-stripped source (string literals kept, since the
// URL literal is what gets recorded) for HTTP call vocabulary.
func extractAPI(project, relPath string, language lang.Language, source []byte, records []symbol.Record) ([]symbol.RouteDecl, []symbol.CallSite) {
	switch language {
	case lang.Python:
		return pythonRoutes(records), nil
	case lang.JavaScript, lang.TypeScript, lang.TSX, lang.Vue:
		return nil, jsCallSites(project, relPath, language, source, records)
	default:
		return nil, nil
	}
}

func pythonRoutes(records []symbol.Record) []symbol.RouteDecl {
	var routes []symbol.RouteDecl
	for _, rec := range records {
		if rec.Kind != symbol.KindFunction && rec.Kind != symbol.KindMethod {
			continue
		}
		for _, dec := range rec.Decorators {
			m := pyDecoratorRouteRe.FindStringSubmatch(dec)
			if m == nil {
				continue
			}
			method := strings.ToUpper(m[2])
			if method == "ROUTE" {
				method = "GET"
			}
			routes = append(routes, symbol.RouteDecl{
				Method:        method,
				PathPattern:   m[3],
				HandlerSymbol: rec.ID,
				Framework:     pythonFramework(m[1]),
			})
		}
	}
	return routes
}

func pythonFramework(receiver string) symbol.Framework {
	switch strings.ToLower(receiver) {
	case "app":
		return symbol.FrameworkFastAPI
	case "bp", "blueprint":
		return symbol.FrameworkFlask
	case "router":
		return symbol.FrameworkStarlette
	default:
		return symbol.FrameworkOther
	}
}

// jsCallSites scans for HTTP call vocabulary and attributes each hit to the
// symbol whose span contains the matched line — the "containing_symbol"
// spec §3 asks for.
func jsCallSites(project, relPath string, language lang.Language, source []byte, records []symbol.Record) []symbol.CallSite {
	stripped := stripComments(string(source), language)
	var calls []symbol.CallSite

	lineOffsets := buildLineOffsets(stripped)
	for _, m := range jsCallSiteRe.FindAllStringSubmatchIndex(stripped, -1) {
		full := stripped[m[0]:m[1]]
		method := "GET"
		switch {
		case strings.HasPrefix(full, "axios.") || strings.Contains(full, "$http."):
			if i := strings.IndexByte(full, '.'); i >= 0 {
				rest := full[i+1:]
				if j := strings.IndexByte(rest, '('); j > 0 {
					method = strings.ToUpper(rest[:j])
				}
			}
		}
		literalGroup := m[len(m)-2]
		urlLiteral := stripped[literalGroup:m[len(m)-1]]
		line := lineForOffset(lineOffsets, m[0])

		calls = append(calls, symbol.CallSite{
			Method:           method,
			URLLiteral:       urlLiteral,
			File:             relPath,
			Line:             line,
			ContainingSymbol: containingSymbol(project, relPath, records, line),
		})
	}
	return calls
}

func buildLineOffsets(s string) []int {
	offsets := []int{0}
	for i, c := range s {
		if c == '\n' {
			offsets = append(offsets, i+1)
		}
	}
	return offsets
}

func lineForOffset(offsets []int, byteOffset int) int {
	lo, hi := 0, len(offsets)-1
	line := 1
	for lo <= hi {
		mid := (lo + hi) / 2
		if offsets[mid] <= byteOffset {
			line = mid + 1
			lo = mid + 1
		} else {
			hi = mid - 1
		}
	}
	return line
}

func containingSymbol(project, relPath string, records []symbol.Record, line int) symbol.ID {
	for _, rec := range records {
		if line >= rec.Span.StartLine && line <= rec.Span.EndLine {
			return rec.ID
		}
	}
	return symbol.ID{}
}
