package query

import (
	"testing"

	"github.com/flytohub/flyto-indexer/internal/graph"
	"github.com/flytohub/flyto-indexer/internal/search"
	"github.com/flytohub/flyto-indexer/internal/symbol"
)

func chainGraph() *graph.Graph {
	g := graph.New()
	f := symbol.New("demo", "f.py", symbol.KindFunction, "f")
	h := symbol.New("demo", "g.py", symbol.KindFunction, "g")
	hh := symbol.New("demo", "h.py", symbol.KindFunction, "h")
	g.Symbols[f.String()] = symbol.Record{ID: f}
	g.Symbols[h.String()] = symbol.Record{ID: h}
	g.Symbols[hh.String()] = symbol.Record{ID: hh}
	g.AddEdge(symbol.Edge{From: f, To: h, Kind: symbol.EdgeCalls, Confidence: symbol.ConfidenceExact})
	g.AddEdge(symbol.Edge{From: h, To: hh, Kind: symbol.EdgeCalls, Confidence: symbol.ConfidenceLikely})
	return g
}

func TestImpactRespectsDepth(t *testing.T) {
	g := chainGraph()
	e := New(g, search.NewIndex(), map[string]string{})

	hh := symbol.New("demo", "h.py", symbol.KindFunction, "h").String()

	one, err := e.Impact(hh, 1)
	if err != nil {
		t.Fatalf("Impact depth 1: %v", err)
	}
	if len(one) != 1 || one[0].SymbolID != symbol.New("demo", "g.py", symbol.KindFunction, "g").String() {
		t.Fatalf("expected only g at depth 1, got %+v", one)
	}

	two, err := e.Impact(hh, 2)
	if err != nil {
		t.Fatalf("Impact depth 2: %v", err)
	}
	if len(two) != 2 {
		t.Fatalf("expected g and f at depth 2, got %+v", two)
	}
	var sawF bool
	for _, n := range two {
		if n.SymbolID == symbol.New("demo", "f.py", symbol.KindFunction, "f").String() && n.Depth == 2 {
			sawF = true
		}
	}
	if !sawF {
		t.Fatalf("expected f at depth 2, got %+v", two)
	}
}

func TestImpactUnknownSymbolErrors(t *testing.T) {
	e := New(graph.New(), search.NewIndex(), map[string]string{})
	if _, err := e.Impact("demo:missing.py:function:missing", 2); err == nil {
		t.Fatal("expected an error for an unknown symbol")
	}
}

func TestReferencesListsIncomingEdgesSorted(t *testing.T) {
	g := chainGraph()
	e := New(g, search.NewIndex(), map[string]string{})

	hh := symbol.New("demo", "h.py", symbol.KindFunction, "h").String()
	refs, err := e.References(hh)
	if err != nil {
		t.Fatalf("References: %v", err)
	}
	if len(refs) != 1 || refs[0].From != symbol.New("demo", "g.py", symbol.KindFunction, "g").String() {
		t.Fatalf("expected g -> h, got %+v", refs)
	}
}

func TestFileInfoLookup(t *testing.T) {
	g := graph.New()
	fr := symbol.FileRecord{Project: "demo", Path: "a.py", Language: "python"}
	g.AddFile(fr, nil)
	e := New(g, search.NewIndex(), map[string]string{})

	got, ok := e.FileInfo("demo", "a.py")
	if !ok || got.Language != "python" {
		t.Fatalf("expected a.py's FileRecord, got %+v ok=%v", got, ok)
	}
	if _, ok := e.FileInfo("demo", "missing.py"); ok {
		t.Fatal("expected no match for an unindexed file")
	}
}

func TestAPIsIncludesUnlinkedRoutes(t *testing.T) {
	g := graph.New()
	handler := symbol.New("demo", "app.py", symbol.KindFunction, "list_users")
	g.Routes = append(g.Routes, symbol.RouteDecl{Method: "GET", PathPattern: "/users", HandlerSymbol: handler, Framework: symbol.FrameworkFastAPI})

	e := New(g, search.NewIndex(), map[string]string{})
	links := e.APIs()
	if len(links) != 1 {
		t.Fatalf("expected 1 unlinked route surfaced, got %+v", links)
	}
	if links[0].CallerFile != "" {
		t.Fatalf("expected no caller for an unlinked route, got %+v", links[0])
	}
}
