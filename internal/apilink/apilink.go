// Package apilink joins server-side route declarations to client-side call
// sites by normalized (method, path), producing routes_to edges — the
// cross-language correlation the teacher's internal/httplink performs for
// a wider set of frameworks, narrowed here to the spec's named join rule.
package apilink

import (
	"regexp"
	"strings"

	"github.com/flytohub/flyto-indexer/internal/symbol"
)

var (
	bracePlaceholderRe    = regexp.MustCompile(`\{[^}/]+\}`)
	colonPlaceholderRe    = regexp.MustCompile(`:[A-Za-z_][A-Za-z0-9_]*`)
	templatePlaceholderRe = regexp.MustCompile(`\$\{[^}]+\}`)
	numericSegmentRe      = regexp.MustCompile(`/\d+(/|$)`)
	uuidSegmentRe         = regexp.MustCompile(`/[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}(/|$)`)
)

// Link is one resolved route-to-caller correlation.
type Link struct {
	Route      symbol.RouteDecl
	Call       symbol.CallSite
	Confidence symbol.Confidence
}

// normalize applies §4.5's rules: lowercase method, collapse every
// placeholder style (and any concrete numeric/UUID segment, so a route
// declared with a placeholder still joins a call made against a literal
// id) to a single sentinel "*", strip a trailing slash.
func normalize(method, path string) (string, string, bool) {
	collapsed := path
	hadPlaceholder := false
	for _, re := range []*regexp.Regexp{bracePlaceholderRe, colonPlaceholderRe, templatePlaceholderRe} {
		if re.MatchString(collapsed) {
			hadPlaceholder = true
			collapsed = re.ReplaceAllString(collapsed, "*")
		}
	}
	if uuidSegmentRe.MatchString(collapsed) {
		hadPlaceholder = true
		collapsed = uuidSegmentRe.ReplaceAllString(collapsed, "/*$1")
	}
	if numericSegmentRe.MatchString(collapsed) {
		hadPlaceholder = true
		collapsed = numericSegmentRe.ReplaceAllString(collapsed, "/*$1")
	}
	collapsed = strings.TrimSuffix(collapsed, "/")
	return strings.ToLower(method), collapsed, hadPlaceholder
}

// Join correlates every RouteDecl against every CallSite and returns one
// Link per (route, call) pair that normalizes to the same (method, path).
// Exact confidence requires both the literal path and method to match
// with no placeholder collapse; any join that needed collapsing is
// heuristic, matching the resolver's tier vocabulary so both subsystems
// share a confidence scale.
func Join(routes []symbol.RouteDecl, calls []symbol.CallSite) []Link {
	type key struct{ method, path string }
	byKey := make(map[key][]symbol.RouteDecl)

	for _, r := range routes {
		m, p, _ := normalize(r.Method, r.PathPattern)
		byKey[key{m, p}] = append(byKey[key{m, p}], r)
	}

	var links []Link
	for _, c := range calls {
		m, p, collapsedCall := normalize(c.Method, c.URLLiteral)
		for _, r := range byKey[key{m, p}] {
			_, _, collapsedRoute := normalize(r.Method, r.PathPattern)
			confidence := symbol.ConfidenceLikely
			exactLiteral := strings.EqualFold(r.Method, c.Method) && strings.TrimSuffix(r.PathPattern, "/") == strings.TrimSuffix(c.URLLiteral, "/")
			switch {
			case exactLiteral:
				confidence = symbol.ConfidenceExact
			case collapsedCall || collapsedRoute:
				confidence = symbol.ConfidenceHeuristic
			}
			links = append(links, Link{Route: r, Call: c, Confidence: confidence})
		}
	}
	return links
}

// Edges converts Links into routes_to graph edges, call site -> handler.
func Edges(links []Link) []symbol.Edge {
	edges := make([]symbol.Edge, 0, len(links))
	for _, l := range links {
		edges = append(edges, symbol.Edge{
			From:       l.Call.ContainingSymbol,
			To:         l.Route.HandlerSymbol,
			Kind:       symbol.EdgeRoutesTo,
			Confidence: l.Confidence,
		})
	}
	return edges
}
