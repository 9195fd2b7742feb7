package graph

import (
	"testing"

	"github.com/flytohub/flyto-indexer/internal/symbol"
)

func rec(project, path string, kind symbol.Kind, name string, exports bool, refs ...string) symbol.Record {
	refsOut := make([]symbol.Ref, len(refs))
	for i, r := range refs {
		refsOut[i] = symbol.Ref{Name: r, Kind: symbol.RefCall}
	}
	return symbol.Record{
		ID:      symbol.New(project, path, kind, name),
		Exports: exports,
		RefsOut: refsOut,
	}
}

func TestResolveEdgesExactBeatsHeuristic(t *testing.T) {
	g := New()
	g.Files[fileKey("demo", "a.py")] = symbol.FileRecord{Project: "demo", Path: "a.py"}
	g.Files[fileKey("demo", "b.py")] = symbol.FileRecord{Project: "demo", Path: "b.py"}

	caller := rec("demo", "a.py", symbol.KindFunction, "caller", true, "helper")
	localHelper := rec("demo", "a.py", symbol.KindFunction, "helper", false)
	otherHelper := rec("demo", "b.py", symbol.KindFunction, "helper", true)

	g.Symbols[caller.ID.String()] = caller
	g.Symbols[localHelper.ID.String()] = localHelper
	g.Symbols[otherHelper.ID.String()] = otherHelper
	g.Files[fileKey("demo", "a.py")] = symbol.FileRecord{Project: "demo", Path: "a.py", Symbols: []symbol.ID{caller.ID, localHelper.ID}}
	g.Files[fileKey("demo", "b.py")] = symbol.FileRecord{Project: "demo", Path: "b.py", Symbols: []symbol.ID{otherHelper.ID}}

	g.ResolveEdges()

	if len(g.Edges) != 1 {
		t.Fatalf("expected 1 edge, got %+v", g.Edges)
	}
	edge := g.Edges[0]
	if edge.To != localHelper.ID {
		t.Fatalf("expected intra-file helper to win, got edge to %s", edge.To)
	}
	if edge.Confidence != symbol.ConfidenceExact {
		t.Fatalf("expected exact confidence, got %s", edge.Confidence)
	}
}

func TestResolveEdgesAmbiguousNameYieldsNoEdge(t *testing.T) {
	g := New()
	caller := rec("demo", "a.py", symbol.KindFunction, "caller", true, "helper")
	helperA := rec("demo", "b.py", symbol.KindFunction, "helper", true)
	helperB := rec("demo", "c.py", symbol.KindFunction, "helper", true)

	g.Symbols[caller.ID.String()] = caller
	g.Symbols[helperA.ID.String()] = helperA
	g.Symbols[helperB.ID.String()] = helperB
	g.Files[fileKey("demo", "a.py")] = symbol.FileRecord{Project: "demo", Path: "a.py", Symbols: []symbol.ID{caller.ID}}
	g.Files[fileKey("demo", "b.py")] = symbol.FileRecord{Project: "demo", Path: "b.py", Symbols: []symbol.ID{helperA.ID}}
	g.Files[fileKey("demo", "c.py")] = symbol.FileRecord{Project: "demo", Path: "c.py", Symbols: []symbol.ID{helperB.ID}}

	g.ResolveEdges()

	if len(g.Edges) != 0 {
		t.Fatalf("expected no edge for an ambiguous reference, got %+v", g.Edges)
	}
	candidates, ok := g.Unresolved["helper"]
	if !ok || len(candidates) != 2 {
		t.Fatalf("expected 2 unresolved candidates for %q, got %+v", "helper", candidates)
	}
}

func TestCheckInvariantsCatchesDanglingReverseEntry(t *testing.T) {
	g := New()
	a := rec("demo", "a.py", symbol.KindFunction, "a", true)
	b := rec("demo", "b.py", symbol.KindFunction, "b", true)
	g.Symbols[a.ID.String()] = a
	g.Symbols[b.ID.String()] = b
	g.AddEdge(symbol.Edge{From: a.ID, To: b.ID, Kind: symbol.EdgeCalls, Confidence: symbol.ConfidenceExact})

	if err := g.CheckInvariants(); err != nil {
		t.Fatalf("expected a well-formed graph to pass, got %v", err)
	}

	g.Reverse[b.ID.String()] = append(g.Reverse[b.ID.String()], "demo:ghost.py:function:ghost")
	if err := g.CheckInvariants(); err == nil {
		t.Fatal("expected a dangling reverse-index entry to fail invariant check")
	}
}

func TestRemoveFileRetractsEdgesAndReoffersUnresolvedName(t *testing.T) {
	g := New()
	caller := rec("demo", "a.py", symbol.KindFunction, "caller", true, "helper")
	helper := rec("demo", "b.py", symbol.KindFunction, "helper", true)
	otherHelper := rec("demo", "c.py", symbol.KindFunction, "helper", false)

	g.AddFile(symbol.FileRecord{Project: "demo", Path: "a.py", Symbols: []symbol.ID{caller.ID}}, []symbol.Record{caller})
	g.AddFile(symbol.FileRecord{Project: "demo", Path: "b.py", Symbols: []symbol.ID{helper.ID}}, []symbol.Record{helper})
	g.AddFile(symbol.FileRecord{Project: "demo", Path: "c.py", Symbols: []symbol.ID{otherHelper.ID}}, []symbol.Record{otherHelper})
	g.AddEdge(symbol.Edge{From: caller.ID, To: helper.ID, Kind: symbol.EdgeCalls, Confidence: symbol.ConfidenceHeuristic})

	g.RemoveFile("demo", "b.py")

	if len(g.Edges) != 0 {
		t.Fatalf("expected the edge into the removed file's symbol to be retracted, got %+v", g.Edges)
	}
	if _, ok := g.Symbols[helper.ID.String()]; ok {
		t.Fatal("expected helper's symbol to be gone")
	}
	candidates, ok := g.Unresolved["helper"]
	if !ok || len(candidates) != 1 || candidates[0] != otherHelper.ID.String() {
		t.Fatalf("expected otherHelper to be re-offered as the sole remaining candidate, got %+v", candidates)
	}
}

func TestFileSymbolsReflectsCurrentFile(t *testing.T) {
	g := New()
	a := rec("demo", "a.py", symbol.KindFunction, "a", true)
	g.AddFile(symbol.FileRecord{Project: "demo", Path: "a.py", Symbols: []symbol.ID{a.ID}}, []symbol.Record{a})

	ids := g.FileSymbols("demo", "a.py")
	if len(ids) != 1 || ids[0] != a.ID {
		t.Fatalf("expected [%s], got %+v", a.ID, ids)
	}
	if got := g.FileSymbols("demo", "missing.py"); got != nil {
		t.Fatalf("expected nil for an unknown file, got %+v", got)
	}
}
