package graph

import "github.com/flytohub/flyto-indexer/internal/symbol"

// ResolveEdges runs the three-tier resolver over every symbol's refs_out,
// replacing whatever edges the graph currently holds. Called once per scan
// after all files are added, since resolution needs the complete symbol
// table (a reference can resolve to a symbol defined in a file parsed
// after the one that referenced it).
func (g *Graph) ResolveEdges() {
	g.Edges = nil
	g.Reverse = make(map[string][]string)
	g.Unresolved = make(map[string][]string)

	registry := NewRegistry(g.Symbols)

	for _, id := range g.SortedSymbolIDs() {
		rec := g.Symbols[id]
		file := g.Files[fileKey(rec.ID.Project, rec.ID.Path)]

		for _, ref := range rec.RefsOut {
			res, ok := registry.Resolve(ref.Name, rec.ID, file)
			if !ok {
				if res.Ambiguous {
					g.MarkUnresolved(ref.Name, idStrings(res.Candidates))
				}
				continue
			}
			g.AddEdge(symbol.Edge{
				From:       rec.ID,
				To:         res.Target,
				Kind:       edgeKind(ref, res),
				Confidence: res.Confidence,
			})
		}
	}
}

// edgeKind picks the edge relationship from the reference's own origin
// (an extends/heritage ref or a Vue composable/prop ref keeps its tag
// regardless of which tier resolved it), falling back to imports when the
// resolver matched through an import alias (Tier 2, confidence=likely),
// and to calls otherwise.
func edgeKind(ref symbol.Ref, res Resolution) symbol.EdgeKind {
	switch ref.Kind {
	case symbol.RefExtends:
		return symbol.EdgeExtends
	case symbol.RefReference:
		return symbol.EdgeReferences
	}
	if res.Confidence == symbol.ConfidenceLikely {
		return symbol.EdgeImports
	}
	return symbol.EdgeCalls
}

func idStrings(ids []symbol.ID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}
