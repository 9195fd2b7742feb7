package apilink

import (
	"testing"

	"github.com/flytohub/flyto-indexer/internal/symbol"
)

func TestJoinCrossLanguageAPI(t *testing.T) {
	handler := symbol.New("backend", "routes.py", symbol.KindFunction, "get_user")
	caller := symbol.New("frontend", "api.ts", symbol.KindFunction, "loadUser")

	routes := []symbol.RouteDecl{{
		Method: "GET", PathPattern: "/api/users/{id}", HandlerSymbol: handler, Framework: symbol.FrameworkFastAPI,
	}}
	calls := []symbol.CallSite{{
		Method: "GET", URLLiteral: "/api/users/42", File: "api.ts", Line: 3, ContainingSymbol: caller,
	}}

	links := Join(routes, calls)
	if len(links) != 1 {
		t.Fatalf("expected 1 link, got %d: %+v", len(links), links)
	}
	if links[0].Confidence != symbol.ConfidenceHeuristic {
		t.Fatalf("expected heuristic confidence after placeholder collapse, got %v", links[0].Confidence)
	}
	if links[0].Route.HandlerSymbol != handler || links[0].Call.ContainingSymbol != caller {
		t.Fatalf("unexpected link endpoints: %+v", links[0])
	}
}

func TestJoinExactMatch(t *testing.T) {
	handler := symbol.New("backend", "routes.py", symbol.KindFunction, "health")
	caller := symbol.New("frontend", "api.ts", symbol.KindFunction, "checkHealth")

	routes := []symbol.RouteDecl{{Method: "GET", PathPattern: "/health", HandlerSymbol: handler}}
	calls := []symbol.CallSite{{Method: "GET", URLLiteral: "/health", File: "api.ts", ContainingSymbol: caller}}

	links := Join(routes, calls)
	if len(links) != 1 || links[0].Confidence != symbol.ConfidenceExact {
		t.Fatalf("expected 1 exact link, got %+v", links)
	}
}

func TestJoinNoMatch(t *testing.T) {
	routes := []symbol.RouteDecl{{Method: "GET", PathPattern: "/api/orders"}}
	calls := []symbol.CallSite{{Method: "POST", URLLiteral: "/api/orders"}}

	if links := Join(routes, calls); len(links) != 0 {
		t.Fatalf("expected no links for mismatched method, got %+v", links)
	}
}
