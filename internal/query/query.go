// Package query implements the read-only surface of §6: impact,
// references, search, file_info, apis and reindex, all against an
// in-memory snapshot loaded from the store. Every query is a pure read
// and safe under a concurrent reindex, since Snapshot is never mutated
// after store.LoadAll returns it.
//
// Grounded on the teacher's internal/store BFS/impact helpers
// (traverse.go, impact.go), generalized from a SQLite-backed node/edge
// table to the in-memory graph.Graph this module persists as JSON.
package query

import (
	"fmt"
	"sort"

	"github.com/flytohub/flyto-indexer/internal/apilink"
	"github.com/flytohub/flyto-indexer/internal/graph"
	"github.com/flytohub/flyto-indexer/internal/search"
	"github.com/flytohub/flyto-indexer/internal/symbol"
)

// Engine answers queries against one loaded snapshot.
type Engine struct {
	Graph   *graph.Graph
	BM25    *search.Index
	Content map[string]string
	Session *search.Session
}

// New wraps a graph/index pair (typically store.Snapshot's fields) into a
// query Engine.
func New(g *graph.Graph, idx *search.Index, content map[string]string) *Engine {
	return &Engine{Graph: g, BM25: idx, Content: content, Session: search.NewSession()}
}

// ImpactNode is one symbol in an impact closure, tagged with its hop
// distance and the confidence of the edge that reached it.
type ImpactNode struct {
	SymbolID   string
	Project    string
	Depth      int
	Confidence symbol.Confidence
}

// Impact returns every symbol that transitively depends on id — the
// reverse-edge closure up to depth, grouped by project. depth<=0 defaults
// to 2, matching §6.
func (e *Engine) Impact(id string, depth int) ([]ImpactNode, error) {
	if depth <= 0 {
		depth = 2
	}
	if _, ok := e.Graph.Symbols[id]; !ok {
		return nil, fmt.Errorf("query: unknown symbol %q", id)
	}

	type queued struct {
		id  string
		hop int
	}
	visited := map[string]int{id: 0}
	queue := []queued{{id, 0}}
	var out []ImpactNode

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur.hop >= depth {
			continue
		}
		froms := append([]string{}, e.Graph.Reverse[cur.id]...)
		sort.Strings(froms)
		for _, from := range froms {
			if _, seen := visited[from]; seen {
				continue
			}
			visited[from] = cur.hop + 1
			conf := edgeConfidence(e.Graph, from, cur.id)
			rec, ok := e.Graph.Symbols[from]
			project := ""
			if ok {
				project = rec.ID.Project
			}
			out = append(out, ImpactNode{SymbolID: from, Project: project, Depth: cur.hop + 1, Confidence: conf})
			queue = append(queue, queued{from, cur.hop + 1})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Project < out[j].Project })
	return out, nil
}

func edgeConfidence(g *graph.Graph, from, to string) symbol.Confidence {
	for _, e := range g.Edges {
		if e.From.String() == from && e.To.String() == to {
			return e.Confidence
		}
	}
	return ""
}

// Reference is one reverse edge into a symbol, with the calling context.
type Reference struct {
	From             string
	File             string
	Line             int
	ContainingSymbol string
	Confidence       symbol.Confidence
}

// References returns every edge terminating at id.
func (e *Engine) References(id string) ([]Reference, error) {
	if _, ok := e.Graph.Symbols[id]; !ok {
		return nil, fmt.Errorf("query: unknown symbol %q", id)
	}
	var out []Reference
	for _, edge := range e.Graph.Edges {
		if edge.To.String() != id {
			continue
		}
		rec := e.Graph.Symbols[edge.From.String()]
		out = append(out, Reference{
			From:             edge.From.String(),
			File:             rec.ID.Path,
			Line:             rec.Span.StartLine,
			ContainingSymbol: edge.From.String(),
			Confidence:       edge.Confidence,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].From < out[j].From })
	return out, nil
}

// SearchHit is one ranked result with its boost breakdown.
type SearchHit struct {
	SymbolID   string
	BM25       float64
	Boost      float64
	TotalScore float64
}

// Search runs BM25 plus the session recency boost and records the query
// itself as a session event. A search event carries no file path, so it
// adds no boost to this or any later search.
func (e *Engine) Search(q string, max int) []SearchHit {
	hits := e.BM25.Search(q, max)
	e.Session.Record(search.EventSearched, "", q)

	fileOf := make(map[string]string, len(e.Graph.Symbols))
	for id, rec := range e.Graph.Symbols {
		fileOf[id] = rec.ID.Project + ":" + rec.ID.Path
	}
	ranked := search.RankWithBoost(hits, fileOf, e.Session.Snapshot())

	rawByID := make(map[string]float64, len(hits))
	for _, h := range hits {
		rawByID[h.SymbolID] = h.Score
	}

	out := make([]SearchHit, len(ranked))
	for i, h := range ranked {
		raw := rawByID[h.SymbolID]
		out[i] = SearchHit{SymbolID: h.SymbolID, BM25: raw, Boost: h.Score - raw, TotalScore: h.Score}
	}
	return out
}

// FileInfo returns the FileRecord for path, and whether it was found.
func (e *Engine) FileInfo(project, path string) (symbol.FileRecord, bool) {
	for _, f := range e.Graph.Files {
		if f.Project == project && f.Path == path {
			return f, true
		}
	}
	return symbol.FileRecord{}, false
}

// APILink is one joined route/call pair, flattened from apilink.Link for
// callers that don't need the symbol.RouteDecl/CallSite structs directly.
type APILink struct {
	Method        string
	PathPattern   string
	HandlerSymbol string
	CallerFile    string
	CallerLine    int
	Confidence    symbol.Confidence
}

// APIs returns every route paired with its known callers, plus routes
// with no caller found (CallerFile empty). Re-runs the join live against
// the snapshot's routes/calls rather than reading precomputed routes_to
// edges, so the confidence breakdown is always in apilink's own terms.
func (e *Engine) APIs() []APILink {
	links := apilink.Join(e.Graph.Routes, e.Graph.Calls)
	linked := make(map[string]bool, len(links))

	out := make([]APILink, 0, len(links))
	for _, l := range links {
		out = append(out, APILink{
			Method:        l.Route.Method,
			PathPattern:   l.Route.PathPattern,
			HandlerSymbol: l.Route.HandlerSymbol.String(),
			CallerFile:    l.Call.File,
			CallerLine:    l.Call.Line,
			Confidence:    l.Confidence,
		})
		linked[l.Route.HandlerSymbol.String()+"|"+l.Route.Method+"|"+l.Route.PathPattern] = true
	}
	for _, r := range e.Graph.Routes {
		k := r.HandlerSymbol.String() + "|" + r.Method + "|" + r.PathPattern
		if !linked[k] {
			out = append(out, APILink{Method: r.Method, PathPattern: r.PathPattern, HandlerSymbol: r.HandlerSymbol.String()})
		}
	}
	return out
}
